package planner

import "math"

// lever finds the value of one variable that closes the shortfall while the
// other inputs stay fixed.
type lever interface {
	current(p *Planner, in Inputs) float64
	solve(p *Planner, in Inputs, pr projection) (Solution, error)
}

var levers = map[string]lever{
	LeverInvestmentReturn: investmentReturnLever{},
	LeverMonthlySaving:    monthlySavingLever{},
	LeverRetirementAge:    retirementAgeLever{},
}

func (p *Planner) solve(in Inputs, pr projection) (Solutions, error) {
	out := Solutions{}
	slots := []struct {
		name string
		dst  *Solution
	}{
		{LeverInvestmentReturn, &out.InvestmentReturn},
		{LeverMonthlySaving, &out.MonthlySaving},
		{LeverRetirementAge, &out.RetirementAge},
	}

	if pr.shortfall() == 0 {
		out.NoActionNeeded = true
		for _, s := range slots {
			cur := levers[s.name].current(p, in)
			*s.dst = Solution{Lever: s.name, From: cur, To: cur, Feasible: true}
		}
		return out, nil
	}

	for _, s := range slots {
		sol, err := levers[s.name].solve(p, in, pr)
		if err != nil {
			return Solutions{}, err
		}
		sol.Lever = s.name
		*s.dst = sol
	}
	return out, nil
}

// investmentReturnLever inverts goal = saved*(1+r/12)^m for r.
type investmentReturnLever struct{}

func (investmentReturnLever) current(p *Planner, _ Inputs) float64 {
	return round2(p.a.AccumulationRate * 100)
}

func (l investmentReturnLever) solve(p *Planner, in Inputs, pr projection) (Solution, error) {
	from := l.current(p, in)
	if in.SavedMoney <= 0 {
		return Solution{From: from, To: from}, nil
	}

	months := float64(in.YearsToRetirement() * monthsPerYear)
	rate := monthsPerYear * (math.Pow(pr.goal/in.SavedMoney, 1/months) - 1)
	if !finite(rate) {
		return Solution{}, nonFinite("investment_return", "required rate", rate)
	}
	if rate > p.a.MaxInvestmentReturn {
		return Solution{From: from, To: from}, nil
	}
	return Solution{From: from, To: ceil2(rate * 100), Feasible: true}, nil
}

// monthlySavingLever finds the flat extra monthly deposit whose future
// value at the current return equals the shortfall.
type monthlySavingLever struct{}

func (monthlySavingLever) current(*Planner, Inputs) float64 {
	return 0
}

func (monthlySavingLever) solve(p *Planner, in Inputs, pr projection) (Solution, error) {
	months := in.YearsToRetirement() * monthsPerYear
	factor := futureValueAnnuity(1, monthlyRate(p.a.AccumulationRate), months)
	monthly := pr.shortfall() / factor
	if !finite(monthly) {
		return Solution{}, nonFinite("monthly_saving", "required deposit", monthly)
	}
	return Solution{From: 0, To: math.Ceil(monthly), Feasible: true}, nil
}

// retirementAgeLever bisects over whole ages. The shortfall never grows as
// the retirement age rises: the payout horizon shrinks and savings compound
// longer.
type retirementAgeLever struct{}

func (retirementAgeLever) current(_ *Planner, in Inputs) float64 {
	return float64(in.RetirementAge)
}

func (retirementAgeLever) solve(p *Planner, in Inputs, _ projection) (Solution, error) {
	from := float64(in.RetirementAge)
	hi := p.a.MaxRetirementAge
	if limit := p.a.LifeExpectancy - 1; limit < hi {
		hi = limit
	}
	lo := in.RetirementAge
	if hi <= lo {
		return Solution{From: from, To: from}, nil
	}

	gapAt := func(age int) (float64, error) {
		pr, err := p.project(in, age, p.a.AccumulationRate)
		if err != nil {
			return 0, err
		}
		return pr.shortfall(), nil
	}

	gap, err := gapAt(hi)
	if err != nil {
		return Solution{}, err
	}
	if gap > 0 {
		return Solution{From: from, To: from}, nil
	}

	// invariant: gapAt(lo) > 0, gapAt(hi) == 0
	for hi-lo > 1 {
		mid := lo + (hi-lo)/2
		gap, err := gapAt(mid)
		if err != nil {
			return Solution{}, err
		}
		if gap == 0 {
			hi = mid
		} else {
			lo = mid
		}
	}
	return Solution{From: from, To: float64(hi), Feasible: true}, nil
}
