package planner

import "math"

// schedule spreads gap over years of escalating contributions. Year k pays
// C0*(1+e)^k in twelve equal monthly deposits, each compounding at the
// accumulation rate until retirement; C0 is chosen so the deposits are worth
// exactly gap at retirement.
func (p *Planner) schedule(gap float64, years int) ([]YearlySaving, error) {
	g := monthlyRate(p.a.AccumulationRate)
	e := p.a.EscalationRate

	// value at the end of its year of one won of annual contribution
	yearFactor := futureValueAnnuity(1.0/monthsPerYear, g, monthsPerYear)

	var weight float64
	for k := 0; k < years; k++ {
		weight += math.Pow(1+e, float64(k)) * compound(1, g, (years-1-k)*monthsPerYear)
	}

	first := gap / (yearFactor * weight)
	if !finite(first) {
		return nil, nonFinite("schedule", "first contribution", first)
	}

	out := make([]YearlySaving, 0, years)
	for k := 0; k < years; k++ {
		row := YearlySaving{
			Year:   p.a.BaseYear + k,
			Amount: first * math.Pow(1+e, float64(k)),
		}
		if k > 0 {
			prev := out[k-1].Amount
			rate := round2((row.Amount/prev - 1) * 100)
			row.IncreaseRate = &rate
		}
		if !finite(row.Amount) {
			return nil, nonFinite("schedule", "contribution", row.Amount)
		}
		out = append(out, row)
	}
	return out, nil
}
