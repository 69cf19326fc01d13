package model

type CalculationRequest struct {
	TenantID string           `json:"tenant_id"`
	Profile  string           `json:"profile,omitempty"`
	Inputs   RetirementInputs `json:"inputs"`
}

type RetirementInputs struct {
	CurrentAge     int     `json:"current_age"`
	RetirementAge  int     `json:"retirement_age"`
	MonthlyPension float64 `json:"monthly_pension"`
	SavedMoney     float64 `json:"saved_money"`
}
