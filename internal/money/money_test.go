package money

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatKRW(t *testing.T) {
	tests := []struct {
		amount   float64
		expected string
	}{
		{0, "0원"},
		{math.NaN(), "0원"},
		{math.Inf(1), "0원"},
		{0.4, "0원"},
		{5_000, "5,000원"},
		{11_040_000, "1,104만원"},
		{20_910_000, "2,091만원"},
		{300_000_000, "3억 원"},
		{339_000_000, "3억 3,900만원"},
		{339_009_999.9, "3억 3,900만원"},
		{123_456_789_012, "1,234억 5,678만원"},
		{-11_040_000, "-1,104만원"},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.expected, FormatKRW(tc.amount), "amount %v", tc.amount)
	}
}

func TestProgress(t *testing.T) {
	assert.Equal(t, 0, Progress(100, 0))
	assert.Equal(t, 51, Progress(202_288_489, 399_501_765))
	assert.Equal(t, 100, Progress(500, 400))
	assert.Equal(t, 0, Progress(math.NaN(), 400))
}

func TestBadgeAndYear(t *testing.T) {
	assert.Equal(t, "10%↑", IncreaseBadge(10))
	assert.Equal(t, "12.5%↑", IncreaseBadge(12.5))
	assert.Equal(t, "2025년", YearLabel(2025))
}
