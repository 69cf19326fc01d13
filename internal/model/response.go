package model

type CalculationResponse struct {
	CalculationMetadata CalculationMetadata  `json:"calculation_metadata"`
	CalculationResult   *CalculationResult   `json:"calculation_result"`
	Display             *Display             `json:"display"`
	Messages            []CalculationMessage `json:"messages"`
}

type CalculationMetadata struct {
	CalculationID          string `json:"calculation_id"`
	TenantID               string `json:"tenant_id"`
	Profile                string `json:"profile"`
	CalculationStartedAt   string `json:"calculation_started_at"`
	CalculationCompletedAt string `json:"calculation_completed_at"`
	CalculationDurationMs  int64  `json:"calculation_duration_ms"`
	CalculationOutcome     string `json:"calculation_outcome"`
}

type CalculationResult struct {
	GoalAmount        float64        `json:"goal_amount"`
	EstimatedAmount   float64        `json:"estimated_amount"`
	ShortfallAmount   float64        `json:"shortfall_amount"`
	RetirementAge     int            `json:"retirement_age"`
	YearsToRetirement int            `json:"years_to_retirement"`
	TargetYear        int            `json:"target_year"`
	EscalationRatePct float64        `json:"escalation_rate_pct"`
	AnnualSavings     []AnnualSaving `json:"annual_savings"`
	Solutions         Solutions      `json:"solutions"`
}

type AnnualSaving struct {
	Year         int      `json:"year"`
	Amount       float64  `json:"amount"`
	IncreaseRate *float64 `json:"increase_rate,omitempty"`
}

type Solutions struct {
	NoActionNeeded   bool        `json:"no_action_needed"`
	InvestmentReturn RangeLever  `json:"investment_return"`
	MonthlySaving    AmountLever `json:"monthly_saving"`
	RetirementAge    RangeLever  `json:"retirement_age"`
}

// RangeLever moves an existing value (return %, retirement age) from From to To.
type RangeLever struct {
	From     float64 `json:"from"`
	To       float64 `json:"to"`
	Feasible bool    `json:"feasible"`
}

// AmountLever is an additional amount on top of the current plan.
type AmountLever struct {
	Amount   float64 `json:"amount"`
	Feasible bool    `json:"feasible"`
}

// Display carries the result pre-formatted in 억/만원 units for the result screen.
type Display struct {
	GoalAmount      string          `json:"goal_amount"`
	EstimatedAmount string          `json:"estimated_amount"`
	ShortfallAmount string          `json:"shortfall_amount"`
	MonthlySaving   string          `json:"monthly_saving"`
	ProgressPercent int             `json:"progress_percent"`
	AnnualSavings   []DisplaySaving `json:"annual_savings"`
}

type DisplaySaving struct {
	Year   string `json:"year"`
	Amount string `json:"amount"`
	Badge  string `json:"badge,omitempty"`
}

type ErrorResponse struct {
	Status  int          `json:"status"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ProfileInfo struct {
	Name             string  `json:"name"`
	LifeExpectancy   int     `json:"life_expectancy"`
	DiscountRate     float64 `json:"discount_rate"`
	AccumulationRate float64 `json:"accumulation_rate"`
	EscalationRate   float64 `json:"escalation_rate"`
}

const (
	OutcomeSuccess = "SUCCESS"
	OutcomeFailure = "FAILURE"
)
