package calc

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"
)

// ErrValidation is the sentinel wrapped by every ValidationError.
var ErrValidation = errors.New("calc: invalid input")

// ValidationError names the input field that failed validation.
type ValidationError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func invalid(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// guard accumulates the first validation failure so a calculator can list its
// checks without an if-block per field.
type guard struct {
	err *ValidationError
}

func (g *guard) fail(field, reason string) {
	if g.err == nil {
		g.err = invalid(field, reason)
	}
}

// Every input lies within [-maxMagnitude, maxMagnitude] and every positive
// input is at least minMagnitude, so no formula can overflow float64.
const (
	minMagnitude = 1e-6
	maxMagnitude = 1e9
)

func (g *guard) finite(field string, v float64) bool {
	if g.err != nil {
		return false
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		g.fail(field, "must be a finite number")
		return false
	}
	if math.Abs(v) > maxMagnitude {
		g.fail(field, fmt.Sprintf("must not exceed %g in magnitude", float64(maxMagnitude)))
		return false
	}
	return true
}

func (g *guard) positive(field string, v float64) {
	if g.finite(field, v) && v < minMagnitude {
		g.fail(field, fmt.Sprintf("must be at least %g", minMagnitude))
	}
}

func (g *guard) nonNegative(field string, v float64) {
	if g.finite(field, v) && v < 0 {
		g.fail(field, "must not be negative")
	}
}

func (g *guard) between(field string, v, lo, hi float64) {
	if g.finite(field, v) && (v < lo || v > hi) {
		g.fail(field, fmt.Sprintf("must be between %g and %g", lo, hi))
	}
}

func (g *guard) below(field string, v, limit float64, limitName string) {
	if g.finite(field, v) && v >= limit {
		g.fail(field, fmt.Sprintf("must be less than %s (%g)", limitName, limit))
	}
}

func (g *guard) optionalPositive(field string, v *float64) {
	if v != nil {
		g.positive(field, *v)
	}
}

// result returns the recorded failure as an error, or nil. Returning the
// typed nil pointer directly would yield a non-nil error interface.
func (g *guard) result() error {
	if g.err == nil {
		return nil
	}
	return g.err
}

// saturate clamps overflowed values so results stay serializable. NaN is
// passed through for settle to reject.
func saturate(v float64) float64 {
	switch {
	case math.IsInf(v, 1):
		return math.MaxFloat64
	case math.IsInf(v, -1):
		return -math.MaxFloat64
	}
	return v
}

// settle saturates every float in res, including nested structs and slices,
// and rejects a result holding NaN instead of returning a made-up number.
func settle[T any](res T) (T, error) {
	if field, ok := settleValue(reflect.ValueOf(&res).Elem(), ""); !ok {
		var zero T
		return zero, invalid(field, "has no finite value for these inputs")
	}
	return res, nil
}

func settleValue(v reflect.Value, path string) (string, bool) {
	switch v.Kind() {
	case reflect.Float64:
		f := v.Float()
		if math.IsNaN(f) {
			return path, false
		}
		v.SetFloat(saturate(f))
	case reflect.Struct:
		t := v.Type()
		for i := 0; i < v.NumField(); i++ {
			name, _, _ := strings.Cut(t.Field(i).Tag.Get("json"), ",")
			if path != "" {
				name = path + "." + name
			}
			if field, ok := settleValue(v.Field(i), name); !ok {
				return field, false
			}
		}
	case reflect.Slice:
		for i := 0; i < v.Len(); i++ {
			if field, ok := settleValue(v.Index(i), fmt.Sprintf("%s[%d]", path, i)); !ok {
				return field, false
			}
		}
	}
	return "", true
}
