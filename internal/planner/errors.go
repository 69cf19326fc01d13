package planner

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput matches every *InvalidInputError.
	ErrInvalidInput = errors.New("invalid input")
	// ErrComputation matches every *ComputationError.
	ErrComputation = errors.New("computation failed")
)

// InvalidInputError reports a caller-supplied value outside its domain range
// or an inconsistent combination of values. It is never clamped.
type InvalidInputError struct {
	Field  string
	Value  any
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s (%v): %s", e.Field, e.Value, e.Reason)
}

func (e *InvalidInputError) Is(target error) bool {
	return target == ErrInvalidInput
}

// ComputationError reports a numeric failure inside the model: non-finite
// amounts, overflow, or a degenerate payout horizon.
type ComputationError struct {
	Op     string
	Reason string
}

func (e *ComputationError) Error() string {
	return fmt.Sprintf("computation failed in %s: %s", e.Op, e.Reason)
}

func (e *ComputationError) Is(target error) bool {
	return target == ErrComputation
}

func invalid(field string, value any, reason string) error {
	return &InvalidInputError{Field: field, Value: value, Reason: reason}
}

func nonFinite(op string, what string, v float64) error {
	return &ComputationError{Op: op, Reason: fmt.Sprintf("%s is not finite (%v)", what, v)}
}
