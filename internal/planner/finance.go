package planner

import "math"

const monthsPerYear = 12

// monthlyRate converts an annual rate to the per-month rate used for
// monthly compounding.
func monthlyRate(annual float64) float64 {
	return annual / monthsPerYear
}

// presentValueAnnuity is the lump sum that funds n end-of-period payments of
// pmt at rate r per period. r == 0 uses the limit pmt*n.
func presentValueAnnuity(pmt, r float64, n int) float64 {
	if n <= 0 {
		return 0
	}
	if r == 0 {
		return pmt * float64(n)
	}
	return pmt * (1 - math.Pow(1+r, -float64(n))) / r
}

// futureValueAnnuity is the balance after n end-of-period deposits of pmt.
func futureValueAnnuity(pmt, r float64, n int) float64 {
	if n <= 0 {
		return 0
	}
	if r == 0 {
		return pmt * float64(n)
	}
	return pmt * (math.Pow(1+r, float64(n)) - 1) / r
}

func compound(pv, r float64, n int) float64 {
	return pv * math.Pow(1+r, float64(n))
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ceil2 rounds up to two decimals so a rounded lever still closes the gap.
func ceil2(v float64) float64 {
	return math.Ceil(v*100) / 100
}
