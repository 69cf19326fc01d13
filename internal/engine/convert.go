package engine

import (
	"retirement-planner/internal/model"
	"retirement-planner/internal/money"
	"retirement-planner/internal/planner"
)

func toInputs(in model.RetirementInputs) planner.Inputs {
	return planner.Inputs{
		CurrentAge:     in.CurrentAge,
		RetirementAge:  in.RetirementAge,
		MonthlyPension: in.MonthlyPension,
		SavedMoney:     in.SavedMoney,
	}
}

// Render converts a planner result into its wire and display forms.
func Render(res planner.Result, retirementAge int) (*model.CalculationResult, *model.Display) {
	return toResult(res, retirementAge), buildDisplay(res)
}

func toResult(res planner.Result, retirementAge int) *model.CalculationResult {
	savings := make([]model.AnnualSaving, 0, len(res.AnnualSavings))
	for _, row := range res.AnnualSavings {
		savings = append(savings, model.AnnualSaving{
			Year:         row.Year,
			Amount:       row.Amount,
			IncreaseRate: row.IncreaseRate,
		})
	}

	sol := res.Solutions
	return &model.CalculationResult{
		GoalAmount:        res.GoalAmount,
		EstimatedAmount:   res.EstimatedAmount,
		ShortfallAmount:   res.ShortfallAmount,
		RetirementAge:     retirementAge,
		YearsToRetirement: res.YearsToRetirement,
		TargetYear:        res.TargetYear,
		EscalationRatePct: res.EscalationRatePct,
		AnnualSavings:     savings,
		Solutions: model.Solutions{
			NoActionNeeded:   sol.NoActionNeeded,
			InvestmentReturn: rangeLever(sol.InvestmentReturn),
			MonthlySaving: model.AmountLever{
				Amount:   sol.MonthlySaving.To,
				Feasible: sol.MonthlySaving.Feasible,
			},
			RetirementAge: rangeLever(sol.RetirementAge),
		},
	}
}

func rangeLever(s planner.Solution) model.RangeLever {
	return model.RangeLever{From: s.From, To: s.To, Feasible: s.Feasible}
}

// buildDisplay formats the result for the result screen. The first row is
// shown as the amount to start saving now, later rows carry a growth badge.
func buildDisplay(res planner.Result) *model.Display {
	d := &model.Display{
		GoalAmount:      money.FormatKRW(res.GoalAmount),
		EstimatedAmount: money.FormatKRW(res.EstimatedAmount),
		ShortfallAmount: money.FormatKRW(res.ShortfallAmount),
		MonthlySaving:   money.FormatKRW(res.Solutions.MonthlySaving.To),
		ProgressPercent: money.Progress(res.EstimatedAmount, res.GoalAmount),
		AnnualSavings:   make([]model.DisplaySaving, 0, len(res.AnnualSavings)),
	}
	for i, row := range res.AnnualSavings {
		ds := model.DisplaySaving{
			Year:   money.YearLabel(row.Year),
			Amount: money.FormatKRW(row.Amount),
		}
		if i == 0 {
			ds.Amount = "+" + ds.Amount + " 저축"
		}
		if row.IncreaseRate != nil {
			ds.Badge = money.IncreaseBadge(*row.IncreaseRate)
		}
		d.AnnualSavings = append(d.AnnualSavings, ds)
	}
	return d
}
