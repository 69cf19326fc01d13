// Package money formats won amounts the way the result screen shows them:
// 억 (10^8) and 만 (10^4) units with thousands grouping.
package money

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	eokUnit = decimal.NewFromInt(100_000_000)
	manUnit = decimal.NewFromInt(10_000)
)

// FormatKRW renders amount truncated to whole won, e.g. "3억 3,900만원",
// "3억 원", "1,104만원" or "5,000원". NaN, infinities and zero give "0원".
func FormatKRW(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return "0원"
	}

	won := decimal.NewFromFloat(amount).Truncate(0)
	if won.IsZero() {
		return "0원"
	}

	sign := ""
	if won.IsNegative() {
		sign = "-"
		won = won.Abs()
	}

	eok := won.Div(eokUnit).Truncate(0)
	man := won.Mod(eokUnit).Div(manUnit).Truncate(0)

	switch {
	case eok.IsPositive() && man.IsPositive():
		return sign + group(eok.IntPart()) + "억 " + group(man.IntPart()) + "만원"
	case eok.IsPositive():
		return sign + group(eok.IntPart()) + "억 원"
	case man.IsPositive():
		return sign + group(man.IntPart()) + "만원"
	default:
		return sign + group(won.IntPart()) + "원"
	}
}

// Progress is estimated as a whole percentage of goal, capped at 100.
func Progress(estimated, goal float64) int {
	if goal <= 0 || math.IsNaN(estimated) {
		return 0
	}
	p := math.Round(estimated / goal * 100)
	if p > 100 {
		return 100
	}
	if p < 0 {
		return 0
	}
	return int(p)
}

// IncreaseBadge renders a year-over-year rate as "10%↑".
func IncreaseBadge(pct float64) string {
	return strconv.FormatFloat(pct, 'f', -1, 64) + "%↑"
}

func YearLabel(year int) string {
	return strconv.Itoa(year) + "년"
}

func group(n int64) string {
	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	head := len(s) % 3
	if head > 0 {
		b.WriteString(s[:head])
	}
	for i := head; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
