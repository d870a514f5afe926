// Package steppers implements the concrete integration methods: the
// fixed-step Euler, Trapezoidal and RK4 steppers, and the adaptive
// step-size controller built from an embedded pair of RK4 instances.
//
// All fixed steppers advance the caller's state in place, own their scratch
// derivative buffers, and count completed steps. Call AdjustSize after any
// external change to the state's length.
package steppers

import "github.com/kvanta/numint/internal/ode"

// ensure enforces the scratch/state length precondition at the start of a
// step. buf is a representative scratch buffer (AdjustSize sizes all of a
// stepper's buffers together). A never-sized stepper is sized lazily to the
// incoming state; a sized stepper whose buffers disagree with the state
// reports the mismatch instead of reading out of bounds.
func ensure(buf ode.State, x ode.State, adjust func(ode.State)) error {
	if len(buf) == len(x) {
		return nil
	}
	if buf != nil {
		return ode.ErrDimensionMismatch
	}
	adjust(x)
	return nil
}
