package planner

import (
	"errors"
	"math"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPlanner(t *testing.T, mutate func(*Assumptions)) *Planner {
	t.Helper()
	a := DefaultAssumptions()
	a.BaseYear = 2025
	if mutate != nil {
		mutate(&a)
	}
	p, err := New(a)
	require.NoError(t, err)
	return p
}

func exampleInputs() Inputs {
	return Inputs{
		CurrentAge:     30,
		RetirementAge:  65,
		MonthlyPension: 2_000_000,
		SavedMoney:     50_000_000,
	}
}

// scheduleValue is the value at retirement of the deposits in rows.
func scheduleValue(p *Planner, rows []YearlySaving) float64 {
	g := monthlyRate(p.a.AccumulationRate)
	years := len(rows)
	var total float64
	for k, row := range rows {
		atYearEnd := futureValueAnnuity(row.Amount/monthsPerYear, g, monthsPerYear)
		total += compound(atYearEnd, g, (years-1-k)*monthsPerYear)
	}
	return total
}

func TestCompute_Example(t *testing.T) {
	p := newTestPlanner(t, nil)

	res, err := p.Compute(exampleInputs())
	require.NoError(t, err)

	assert.True(t, res.GoalAmount > 0 && finite(res.GoalAmount))
	assert.True(t, res.EstimatedAmount > 0 && finite(res.EstimatedAmount))
	require.Greater(t, res.GoalAmount, res.EstimatedAmount)
	assert.Equal(t, res.GoalAmount-res.EstimatedAmount, res.ShortfallAmount)

	assert.Equal(t, 35, res.YearsToRetirement)
	assert.Equal(t, 2060, res.TargetYear)
	assert.Equal(t, 10.0, res.EscalationRatePct)

	// goal: 2,000,000 for 300 months at 3.5%/12, roughly 399.5M
	assert.InDelta(t, 399_500_000, res.GoalAmount, 1_000_000)
	// estimate: 50M over 420 months at 4%/12, roughly 202M
	assert.InDelta(t, 202_300_000, res.EstimatedAmount, 1_000_000)
}

func TestCompute_ScheduleShape(t *testing.T) {
	p := newTestPlanner(t, nil)
	in := exampleInputs()

	res, err := p.Compute(in)
	require.NoError(t, err)
	require.Len(t, res.AnnualSavings, in.RetirementAge-in.CurrentAge)

	first := res.AnnualSavings[0]
	assert.Equal(t, 2025, first.Year)
	assert.Nil(t, first.IncreaseRate)

	for i := 1; i < len(res.AnnualSavings); i++ {
		prev, row := res.AnnualSavings[i-1], res.AnnualSavings[i]
		assert.Equal(t, prev.Year+1, row.Year)
		require.NotNil(t, row.IncreaseRate)
		assert.Equal(t, round2((row.Amount/prev.Amount-1)*100), *row.IncreaseRate)
		assert.Equal(t, 10.0, *row.IncreaseRate)
	}
}

func TestCompute_ScheduleClosesShortfall(t *testing.T) {
	p := newTestPlanner(t, nil)

	res, err := p.Compute(exampleInputs())
	require.NoError(t, err)

	assert.InEpsilon(t, res.ShortfallAmount, scheduleValue(p, res.AnnualSavings), 1e-9)
}

func TestCompute_FlatScheduleWithoutEscalation(t *testing.T) {
	p := newTestPlanner(t, func(a *Assumptions) { a.EscalationRate = 0 })

	res, err := p.Compute(exampleInputs())
	require.NoError(t, err)

	for _, row := range res.AnnualSavings[1:] {
		require.NotNil(t, row.IncreaseRate)
		assert.Equal(t, 0.0, *row.IncreaseRate)
		assert.InDelta(t, res.AnnualSavings[0].Amount, row.Amount, 1e-6)
	}
	assert.InEpsilon(t, res.ShortfallAmount, scheduleValue(p, res.AnnualSavings), 1e-9)
}

func TestCompute_NoShortfallAtZeroGrowth(t *testing.T) {
	p := newTestPlanner(t, func(a *Assumptions) {
		a.DiscountRate = 0
		a.AccumulationRate = 0
	})

	in := Inputs{CurrentAge: 40, RetirementAge: 65, MonthlyPension: 1_000_000, SavedMoney: 400_000_000}
	res, err := p.Compute(in)
	require.NoError(t, err)

	// 25 years of payouts at zero rate
	assert.Equal(t, 300_000_000.0, res.GoalAmount)
	assert.Equal(t, 400_000_000.0, res.EstimatedAmount)
	assert.Equal(t, 0.0, res.ShortfallAmount)
	assert.Empty(t, res.AnnualSavings)

	sol := res.Solutions
	assert.True(t, sol.NoActionNeeded)
	assert.Equal(t, Solution{Lever: LeverInvestmentReturn, From: 0, To: 0, Feasible: true}, sol.InvestmentReturn)
	assert.Equal(t, Solution{Lever: LeverMonthlySaving, From: 0, To: 0, Feasible: true}, sol.MonthlySaving)
	assert.Equal(t, Solution{Lever: LeverRetirementAge, From: 65, To: 65, Feasible: true}, sol.RetirementAge)
}

func TestCompute_GoalMonotoneInPension(t *testing.T) {
	p := newTestPlanner(t, nil)
	in := exampleInputs()

	prev := -1.0
	for pension := 100_000.0; pension <= 100_000_000; pension *= 1.7 {
		in.MonthlyPension = pension
		res, err := p.Compute(in)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, res.GoalAmount, prev, "pension %.0f", pension)
		prev = res.GoalAmount
	}
}

func TestCompute_ShortfallMonotoneInRetirementAge(t *testing.T) {
	p := newTestPlanner(t, nil)
	in := exampleInputs()

	prev := math.Inf(1)
	for age := MinRetirementAge; age < p.a.LifeExpectancy; age++ {
		in.RetirementAge = age
		res, err := p.Compute(in)
		require.NoError(t, err)
		assert.LessOrEqual(t, res.ShortfallAmount, prev, "retirement age %d", age)
		prev = res.ShortfallAmount
	}
}

func TestCompute_Idempotent(t *testing.T) {
	p := newTestPlanner(t, nil)

	a, err := p.Compute(exampleInputs())
	require.NoError(t, err)
	b, err := p.Compute(exampleInputs())
	require.NoError(t, err)

	ab, err := json.Marshal(a)
	require.NoError(t, err)
	bb, err := json.Marshal(b)
	require.NoError(t, err)
	assert.Equal(t, ab, bb)
}

func TestCompute_MinimalHorizon(t *testing.T) {
	p := newTestPlanner(t, nil)
	in := exampleInputs()
	in.CurrentAge = in.RetirementAge - 1

	res, err := p.Compute(in)
	require.NoError(t, err)
	require.Len(t, res.AnnualSavings, 1)
	assert.Nil(t, res.AnnualSavings[0].IncreaseRate)
	assert.InEpsilon(t, res.ShortfallAmount, scheduleValue(p, res.AnnualSavings), 1e-9)
}

func TestCompute_InvalidInputs(t *testing.T) {
	p := newTestPlanner(t, nil)

	tests := []struct {
		name  string
		in    Inputs
		field string
	}{
		{"current age equals retirement age", Inputs{CurrentAge: 65, RetirementAge: 65, MonthlyPension: 1, SavedMoney: 0}, "current_age"},
		{"current age above retirement age", Inputs{CurrentAge: 70, RetirementAge: 65, MonthlyPension: 1, SavedMoney: 0}, "current_age"},
		{"minor", Inputs{CurrentAge: 17, RetirementAge: 65, MonthlyPension: 1, SavedMoney: 0}, "current_age"},
		{"retirement too early", Inputs{CurrentAge: 30, RetirementAge: 54, MonthlyPension: 1, SavedMoney: 0}, "retirement_age"},
		{"retirement too late", Inputs{CurrentAge: 30, RetirementAge: 101, MonthlyPension: 1, SavedMoney: 0}, "retirement_age"},
		{"zero pension", Inputs{CurrentAge: 30, RetirementAge: 65, MonthlyPension: 0, SavedMoney: 0}, "monthly_pension"},
		{"negative savings", Inputs{CurrentAge: 30, RetirementAge: 65, MonthlyPension: 1, SavedMoney: -1}, "saved_money"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := p.Compute(tc.in)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidInput))
			assert.False(t, errors.Is(err, ErrComputation))

			var iie *InvalidInputError
			require.True(t, errors.As(err, &iie))
			assert.Equal(t, tc.field, iie.Field)
		})
	}
}

func TestCompute_NonFiniteAmounts(t *testing.T) {
	p := newTestPlanner(t, nil)

	for _, in := range []Inputs{
		{CurrentAge: 30, RetirementAge: 65, MonthlyPension: math.NaN(), SavedMoney: 0},
		{CurrentAge: 30, RetirementAge: 65, MonthlyPension: math.Inf(1), SavedMoney: 0},
		{CurrentAge: 30, RetirementAge: 65, MonthlyPension: 1, SavedMoney: math.Inf(-1)},
	} {
		_, err := p.Compute(in)
		assert.ErrorIs(t, err, ErrComputation)
	}
}

func TestCompute_DegenerateHorizon(t *testing.T) {
	p := newTestPlanner(t, nil)

	for _, age := range []int{90, 95, 100} {
		in := exampleInputs()
		in.RetirementAge = age
		_, err := p.Compute(in)

		var ce *ComputationError
		require.True(t, errors.As(err, &ce), "retirement age %d", age)
		assert.Equal(t, "goal", ce.Op)
	}
}

func TestNew_RejectsBadAssumptions(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Assumptions)
	}{
		{"negative discount", func(a *Assumptions) { a.DiscountRate = -0.01 }},
		{"nan accumulation", func(a *Assumptions) { a.AccumulationRate = math.NaN() }},
		{"escalation of 100%", func(a *Assumptions) { a.EscalationRate = 1 }},
		{"short life", func(a *Assumptions) { a.LifeExpectancy = 50 }},
		{"low age ceiling", func(a *Assumptions) { a.MaxRetirementAge = 40 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a := DefaultAssumptions()
			tc.mutate(&a)
			_, err := New(a)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestWithBaseYear(t *testing.T) {
	p := newTestPlanner(t, nil)
	shifted := p.WithBaseYear(2030)

	assert.Equal(t, 2025, p.Assumptions().BaseYear)
	assert.Equal(t, 2030, shifted.Assumptions().BaseYear)

	res, err := shifted.Compute(exampleInputs())
	require.NoError(t, err)
	assert.Equal(t, 2030, res.AnnualSavings[0].Year)
	assert.Equal(t, 2065, res.TargetYear)
}
