// Package planner projects a retirement savings gap: the nest egg needed to
// fund a monthly pension, what current savings grow into, the escalating
// yearly savings that close the difference and the single levers that would
// close it on their own.
package planner

import (
	"fmt"
)

// Planner evaluates Inputs under a fixed set of Assumptions. It holds no
// mutable state and is safe for concurrent use.
type Planner struct {
	a Assumptions
}

func New(a Assumptions) (*Planner, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return &Planner{a: a}, nil
}

func (p *Planner) Assumptions() Assumptions {
	return p.a
}

// WithBaseYear returns a copy whose schedule starts at year.
func (p *Planner) WithBaseYear(year int) *Planner {
	a := p.a
	a.BaseYear = year
	return &Planner{a: a}
}

// projection is the goal/estimate pair for one retirement age and return.
type projection struct {
	goal      float64
	estimated float64
}

func (pr projection) shortfall() float64 {
	if pr.goal > pr.estimated {
		return pr.goal - pr.estimated
	}
	return 0
}

// project evaluates goal and estimate for retiring at retirementAge with
// savings compounding at accumulation.
func (p *Planner) project(in Inputs, retirementAge int, accumulation float64) (projection, error) {
	horizon := (p.a.LifeExpectancy - retirementAge) * monthsPerYear
	if horizon <= 0 {
		return projection{}, &ComputationError{
			Op:     "goal",
			Reason: fmt.Sprintf("retirement age %d leaves no payout horizon before life expectancy %d", retirementAge, p.a.LifeExpectancy),
		}
	}
	goal := presentValueAnnuity(in.MonthlyPension, monthlyRate(p.a.DiscountRate), horizon)
	if !finite(goal) {
		return projection{}, nonFinite("goal", "goal amount", goal)
	}

	months := (retirementAge - in.CurrentAge) * monthsPerYear
	estimated := compound(in.SavedMoney, monthlyRate(accumulation), months)
	if !finite(estimated) {
		return projection{}, nonFinite("estimate", "estimated amount", estimated)
	}
	return projection{goal: goal, estimated: estimated}, nil
}

// Compute runs the full projection. It fails with *InvalidInputError or
// *ComputationError and never returns a partial result.
func (p *Planner) Compute(in Inputs) (Result, error) {
	if err := in.Validate(); err != nil {
		return Result{}, err
	}

	pr, err := p.project(in, in.RetirementAge, p.a.AccumulationRate)
	if err != nil {
		return Result{}, err
	}

	years := in.YearsToRetirement()
	res := Result{
		GoalAmount:        pr.goal,
		EstimatedAmount:   pr.estimated,
		ShortfallAmount:   pr.shortfall(),
		YearsToRetirement: years,
		TargetYear:        p.a.BaseYear + years,
		EscalationRatePct: round2(p.a.EscalationRate * 100),
		AnnualSavings:     []YearlySaving{},
	}

	if res.ShortfallAmount > 0 {
		res.AnnualSavings, err = p.schedule(res.ShortfallAmount, years)
		if err != nil {
			return Result{}, err
		}
	}

	res.Solutions, err = p.solve(in, pr)
	if err != nil {
		return Result{}, err
	}
	return res, nil
}
