package ode

import (
	"errors"
	"fmt"
)

// Domain errors for integration operations.
var (
	// ErrDimensionMismatch indicates a state whose length disagrees with a
	// stepper's scratch buffers. Call AdjustSize after resizing the state.
	ErrDimensionMismatch = errors.New("ode: state length does not match stepper buffers")

	// ErrInvalidState indicates a state vector containing NaN or Inf.
	ErrInvalidState = errors.New("ode: invalid state (NaN or Inf detected)")

	// ErrNonPositiveStep indicates a zero or negative step size.
	ErrNonPositiveStep = errors.New("ode: step size must be positive")

	// ErrNonPositiveTolerance indicates a zero or negative error tolerance.
	ErrNonPositiveTolerance = errors.New("ode: tolerance must be positive")

	// ErrNotInitialized indicates an adaptive step attempted before Initialize.
	ErrNotInitialized = errors.New("ode: adaptive stepper not initialized")
)

// StepError wraps an error with the step at which it occurred.
type StepError struct {
	Step    int
	Time    float64
	Wrapped error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %v", e.Step, e.Time, e.Wrapped)
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
