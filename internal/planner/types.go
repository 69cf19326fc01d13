package planner

import "math"

// Input bounds enforced by Inputs.Validate.
const (
	MinCurrentAge    = 18
	MinRetirementAge = 55
	MaxRetirementAge = 100
)

// Inputs is one calculation request. Amounts are in won.
type Inputs struct {
	CurrentAge     int
	RetirementAge  int
	MonthlyPension float64
	SavedMoney     float64
}

// Validate reports non-finite amounts as *ComputationError and range
// violations as *InvalidInputError.
func (in Inputs) Validate() error {
	if !finite(in.MonthlyPension) {
		return nonFinite("inputs", "monthly_pension", in.MonthlyPension)
	}
	if !finite(in.SavedMoney) {
		return nonFinite("inputs", "saved_money", in.SavedMoney)
	}

	if in.RetirementAge < MinRetirementAge || in.RetirementAge > MaxRetirementAge {
		return invalid("retirement_age", in.RetirementAge, "must be between 55 and 100")
	}
	if in.CurrentAge < MinCurrentAge {
		return invalid("current_age", in.CurrentAge, "must be at least 18")
	}
	if in.CurrentAge >= in.RetirementAge {
		return invalid("current_age", in.CurrentAge, "must be below retirement_age")
	}
	if in.MonthlyPension <= 0 {
		return invalid("monthly_pension", in.MonthlyPension, "must be positive")
	}
	if in.SavedMoney < 0 {
		return invalid("saved_money", in.SavedMoney, "must not be negative")
	}
	return nil
}

// YearsToRetirement is always positive for validated inputs.
func (in Inputs) YearsToRetirement() int {
	return in.RetirementAge - in.CurrentAge
}

// Assumptions are the model constants. Rates are annual decimals.
type Assumptions struct {
	LifeExpectancy      int     `yaml:"life_expectancy" mapstructure:"life_expectancy" json:"life_expectancy"`
	DiscountRate        float64 `yaml:"discount_rate" mapstructure:"discount_rate" json:"discount_rate"`
	AccumulationRate    float64 `yaml:"accumulation_rate" mapstructure:"accumulation_rate" json:"accumulation_rate"`
	EscalationRate      float64 `yaml:"escalation_rate" mapstructure:"escalation_rate" json:"escalation_rate"`
	MaxInvestmentReturn float64 `yaml:"max_investment_return" mapstructure:"max_investment_return" json:"max_investment_return"`
	MaxRetirementAge    int     `yaml:"max_retirement_age" mapstructure:"max_retirement_age" json:"max_retirement_age"`
	BaseYear            int     `yaml:"base_year,omitempty" mapstructure:"base_year" json:"base_year,omitempty"`
}

// DefaultAssumptions matches the figures quoted on the result screen
// (life expectancy 90, 10% yearly escalation).
func DefaultAssumptions() Assumptions {
	return Assumptions{
		LifeExpectancy:      90,
		DiscountRate:        0.035,
		AccumulationRate:    0.04,
		EscalationRate:      0.10,
		MaxInvestmentReturn: 0.30,
		MaxRetirementAge:    MaxRetirementAge,
	}
}

// Validate rejects assumption sets the model cannot evaluate.
func (a Assumptions) Validate() error {
	rates := []struct {
		field string
		v     float64
	}{
		{"discount_rate", a.DiscountRate},
		{"accumulation_rate", a.AccumulationRate},
		{"escalation_rate", a.EscalationRate},
		{"max_investment_return", a.MaxInvestmentReturn},
	}
	for _, r := range rates {
		if math.IsNaN(r.v) || r.v < 0 || r.v >= 1 {
			return invalid("assumptions."+r.field, r.v, "must be in [0, 1)")
		}
	}
	if a.LifeExpectancy <= MinRetirementAge || a.LifeExpectancy > 120 {
		return invalid("assumptions.life_expectancy", a.LifeExpectancy, "must be between 56 and 120")
	}
	if a.MaxRetirementAge < MinRetirementAge {
		return invalid("assumptions.max_retirement_age", a.MaxRetirementAge, "must be at least 55")
	}
	if a.BaseYear < 0 {
		return invalid("assumptions.base_year", a.BaseYear, "must not be negative")
	}
	return nil
}

// YearlySaving is one row of the savings schedule. IncreaseRate is the
// percentage growth over the previous row and is nil for the first row.
type YearlySaving struct {
	Year         int
	Amount       float64
	IncreaseRate *float64
}

// Lever names.
const (
	LeverInvestmentReturn = "investment_return"
	LeverMonthlySaving    = "monthly_saving"
	LeverRetirementAge    = "retirement_age"
)

// Solution is one single-variable adjustment that closes the shortfall on
// its own. From is the current value of the lever, To the required one:
// percent for investment_return, won per month for monthly_saving, years
// of age for retirement_age.
type Solution struct {
	Lever    string
	From     float64
	To       float64
	Feasible bool
}

type Solutions struct {
	NoActionNeeded   bool
	InvestmentReturn Solution
	MonthlySaving    Solution
	RetirementAge    Solution
}

// Result is the projection for one Inputs value.
type Result struct {
	GoalAmount        float64
	EstimatedAmount   float64
	ShortfallAmount   float64
	YearsToRetirement int
	TargetYear        int
	EscalationRatePct float64
	AnnualSavings     []YearlySaving
	Solutions         Solutions
}
