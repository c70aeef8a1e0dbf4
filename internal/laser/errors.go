package laser

import (
	"errors"
	"fmt"
	"math"
)

// ErrValidation is matched by every *ValidationError via errors.Is.
var ErrValidation = errors.New("invalid calculator input")

// ValidationError identifies the first input field that failed validation
// and the range it was checked against. Min and Max are NaN when the bound
// does not apply (enum fields, open-ended ranges).
type ValidationError struct {
	Field  string
	Value  float64
	Min    float64
	Max    float64
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("%s: %g is outside the allowed range %s", e.Field, e.Value, e.Range())
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Range renders the allowed bounds, e.g. "[0.5, 30]" or "> 0".
func (e *ValidationError) Range() string {
	switch {
	case !math.IsNaN(e.Min) && !math.IsNaN(e.Max):
		return fmt.Sprintf("[%g, %g]", e.Min, e.Max)
	case !math.IsNaN(e.Min):
		return fmt.Sprintf(">= %g", e.Min)
	case !math.IsNaN(e.Max):
		return fmt.Sprintf("<= %g", e.Max)
	}
	return "finite"
}

// Bound is an inclusive numeric range for one input field.
type Bound struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

func (b Bound) check(field string, v float64) error {
	return checkRange(field, v, b.Min, b.Max)
}

// checkRange requires lo <= v <= hi. NaN fails every comparison and is
// rejected with the same error.
func checkRange(field string, v, lo, hi float64) error {
	if v >= lo && v <= hi {
		return nil
	}
	return &ValidationError{Field: field, Value: v, Min: lo, Max: hi}
}

func checkPositive(field string, v float64) error {
	if v > 0 && !math.IsInf(v, 1) {
		return nil
	}
	return &ValidationError{Field: field, Value: v, Min: math.NaN(), Max: math.NaN(), Reason: fmt.Sprintf("%g must be a finite number > 0", v)}
}

func checkNonNegative(field string, v float64) error {
	if v >= 0 && !math.IsInf(v, 1) {
		return nil
	}
	return &ValidationError{Field: field, Value: v, Min: 0, Max: math.NaN()}
}

func checkFinite(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return &ValidationError{Field: field, Value: v, Min: math.NaN(), Max: math.NaN(), Reason: "must be a finite number"}
	}
	return nil
}

// checkResult rejects a non-finite intermediate result, blaming the input
// field that drives it.
func checkResult(field string, input, result float64) error {
	if math.IsNaN(result) || math.IsInf(result, 0) {
		return &ValidationError{Field: field, Value: input, Min: math.NaN(), Max: math.NaN(), Reason: "value is too large, the result overflows"}
	}
	return nil
}

func unknownVariant(field, value string) error {
	return &ValidationError{
		Field:  field,
		Value:  math.NaN(),
		Min:    math.NaN(),
		Max:    math.NaN(),
		Reason: fmt.Sprintf("unsupported value %q", value),
	}
}

// firstError returns the first non-nil error, giving fail-fast validation
// in declaration order.
func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
