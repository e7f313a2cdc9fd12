package calc

import (
	"errors"
	"fmt"
)

// ErrUnknownCalculator is returned by Run for names outside Calculators.
var ErrUnknownCalculator = errors.New("calc: unknown calculator")

// Calculators lists the names accepted by Run.
var Calculators = []string{
	"mse",
	"ecd",
	"swab-surge",
	"kick-tolerance",
	"torque-drag",
	"dogleg",
	"bit-hydraulics",
	"flow-friction",
}

// Run decodes a request for the named calculator and evaluates it. decode
// receives a pointer to the calculator's request struct.
func (e Engine) Run(name string, decode func(req any) error) (any, error) {
	switch name {
	case "mse":
		return run(decode, e.MSE)
	case "ecd":
		return run(decode, e.ECD)
	case "swab-surge":
		return run(decode, e.SwabSurge)
	case "kick-tolerance":
		return run(decode, e.KickTolerance)
	case "torque-drag":
		return run(decode, e.TorqueDrag)
	case "dogleg":
		return run(decode, e.Dogleg)
	case "bit-hydraulics":
		return run(decode, e.BitHydraulics)
	case "flow-friction":
		return run(decode, e.FlowFriction)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownCalculator, name)
}

// DecodeError wraps a failure to decode a calculator request.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string { return "decode request: " + e.Err.Error() }

func (e *DecodeError) Unwrap() error { return e.Err }

func run[Req, Res any](decode func(any) error, calc func(Req) (Res, error)) (any, error) {
	var req Req
	if err := decode(&req); err != nil {
		return nil, &DecodeError{Err: err}
	}
	res, err := calc(req)
	if err != nil {
		return nil, err
	}
	return res, nil
}
