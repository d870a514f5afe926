package ode

import "math"

// State is the system's state vector. It is owned by the caller; steppers
// mutate it in place.
type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

// IsValid reports whether every component is finite.
func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Norm returns the Euclidean norm of the state.
func (s State) Norm() float64 {
	sum := 0.0
	for _, v := range s {
		sum += v * v
	}
	return math.Sqrt(sum)
}

// System computes the derivative dx/dt at time t, writing it into dxdt.
// Implementations must fill every component of dxdt and must not resize it.
// dxdt is scratch memory owned by the calling stepper; do not retain it
// across calls.
type System func(x State, dxdt State, t float64)

// Stepper advances a state vector by one time increment. Implementations
// are stateful and must not be copied: each instance exclusively owns its
// scratch buffers and step counter.
type Stepper interface {
	// OrderStep returns the order of the local truncation error, or 0 for
	// methods whose order is variable or unspecified.
	OrderStep() int

	// AdjustSize resizes the internal scratch buffers to match the
	// reference state. Must be called after any external change to the
	// state's length; a no-op when the lengths already agree.
	AdjustSize(reference State)

	// Steps returns the number of completed integration steps.
	Steps() uint64

	// DoStep advances x in place by one increment of size dt.
	DoStep(sys System, x State, t, dt float64) error

	// Adaptive reports whether the stepper adjusts its own step size.
	Adaptive() bool
}

// AdaptiveStepper is a stepper that owns its run state and re-derives its
// own step size on every advance.
type AdaptiveStepper interface {
	Stepper

	// Initialize resets the run; it must precede the first Advance.
	Initialize(state State, t, dt float64) error

	// Advance moves the internal state forward by the current step size
	// and rescales it for the next call.
	Advance(sys System) error

	CurrentState() State
	CurrentTime() float64
	CurrentStepSize() float64
}

// Config holds the parameters of an integration run.
type Config struct {
	Dt            float64
	Duration      float64
	Tolerance     float64
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Dt:            0.01,
		Duration:      10.0,
		Tolerance:     1e-6,
		ValidateState: true,
	}
}

// Result collects the trajectory of an integration run.
type Result struct {
	States     []State
	Times      []float64
	StepsTaken int
	FinalDt    float64
	Errors     []error
}
