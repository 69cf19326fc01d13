package model

type CalculationMessage struct {
	ID      int    `json:"id"`
	Level   string `json:"level"`
	Code    string `json:"code"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

const (
	LevelCritical = "CRITICAL"
	LevelWarning  = "WARNING"
)

const (
	CodeInvalidInput      = "INVALID_INPUT"
	CodeComputationFailed = "COMPUTATION_FAILED"
	CodeUnknownProfile    = "UNKNOWN_PROFILE"
	CodeNoActionNeeded    = "NO_ACTION_NEEDED"
	CodeLeverInfeasible   = "LEVER_INFEASIBLE"
)
