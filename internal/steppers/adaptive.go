package steppers

import (
	"math"

	"github.com/kvanta/numint/internal/ode"
)

// Norm selects how the adaptive controller measures the local error between
// its two embedded estimates.
type Norm int

const (
	// NormAbsolute uses the maximum absolute componentwise difference.
	// This is the default.
	NormAbsolute Norm = iota

	// NormRelative divides each componentwise difference by the component's
	// magnitude. A zero component divides by zero; this is a known sharp
	// edge of the policy, guarded only by the global error floor.
	NormRelative

	// NormMixed takes, per component, the tighter of the absolute and
	// relative measures.
	NormMixed
)

// errorFloor prevents a zero error estimate from zeroing the next step size.
const errorFloor = 1e-15

// dtSentinel is the step size an uninitialized controller carries.
const dtSentinel = 1e-12

// AdaptiveOption configures an AdaptiveRK4 at construction.
type AdaptiveOption func(*AdaptiveRK4)

// WithErrorNorm selects the controller's error-norm policy.
func WithErrorNorm(n Norm) AdaptiveOption {
	return func(a *AdaptiveRK4) { a.norm = n }
}

// AdaptiveRK4 is a heuristic step-size controller over an embedded pair of
// RK4 steppers: one full step against two half steps estimate the local
// error, and the step size for the next call is rescaled from it. The
// controller never rejects a step; it only grows or shrinks dt for
// subsequent calls. Its state and time always hold the higher-accuracy
// half-step estimate.
//
// The two RK4 instances are owned separately because each carries private
// scratch buffers and a private step counter; sharing one would alias the
// two error estimates.
type AdaptiveRK4 struct {
	stepper1 *RK4
	stepper2 *RK4

	state ode.State
	time  float64
	dt    float64

	tolerance float64
	norm      Norm

	safety   float64
	minScale float64
	maxScale float64

	steps       uint64
	initialized bool
}

// NewAdaptiveRK4 constructs a controller with the given error tolerance.
// The tolerance must be positive; Initialize must be called before the
// first adaptive step.
func NewAdaptiveRK4(tolerance float64, opts ...AdaptiveOption) *AdaptiveRK4 {
	a := &AdaptiveRK4{
		stepper1:  NewRK4(),
		stepper2:  NewRK4(),
		dt:        dtSentinel,
		tolerance: tolerance,
		norm:      NormAbsolute,
		safety:    0.9,
		minScale:  0.3,
		maxScale:  1.5,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// OrderStep returns 0: the controller's effective order is variable.
func (a *AdaptiveRK4) OrderStep() int { return 0 }

func (a *AdaptiveRK4) Adaptive() bool { return true }

// Steps returns the number of completed adaptive steps.
func (a *AdaptiveRK4) Steps() uint64 { return a.steps }

// AdjustSize resizes the scratch buffers of both embedded steppers.
func (a *AdaptiveRK4) AdjustSize(reference ode.State) {
	a.stepper1.AdjustSize(reference)
	a.stepper2.AdjustSize(reference)
}

// Initialize resets the controller for a new run, discarding any prior one.
// It copies the state; the caller's slice is not retained.
func (a *AdaptiveRK4) Initialize(state ode.State, t, dt float64) error {
	if a.tolerance <= 0 {
		return ode.ErrNonPositiveTolerance
	}
	if dt <= 0 {
		return ode.ErrNonPositiveStep
	}

	a.state = state.Clone()
	a.time = t
	a.dt = dt
	a.steps = 0
	a.AdjustSize(a.state)
	a.initialized = true
	return nil
}

// CurrentState returns a copy of the controller's state.
func (a *AdaptiveRK4) CurrentState() ode.State { return a.state.Clone() }

// CurrentTime returns the time the controller has advanced to.
func (a *AdaptiveRK4) CurrentTime() float64 { return a.time }

// CurrentStepSize returns the step size the next Advance will use.
func (a *AdaptiveRK4) CurrentStepSize() float64 { return a.dt }

// Advance performs one adaptive step: the internal state and time move
// forward by the current dt, and dt is rescaled for the next call as
//
//	dt = 0.9 * dt * clamp((tol/(2*err))^0.2, 0.3, 1.5)
//
// The 1/5 exponent reflects the 4th/5th-order relationship of embedded
// Runge-Kutta pairs; the safety factor and clamp keep dt from oscillating
// between calls.
func (a *AdaptiveRK4) Advance(sys ode.System) error {
	if !a.initialized {
		return ode.ErrNotInitialized
	}

	// Full step of size dt on a copy of the state.
	y0 := a.state.Clone()
	if err := a.stepper1.DoStep(sys, y0, a.time, a.dt); err != nil {
		return err
	}

	// Two half steps on the state itself; this is the estimate we keep.
	half := 0.5 * a.dt
	if err := a.stepper2.DoStep(sys, a.state, a.time, half); err != nil {
		return err
	}
	if err := a.stepper2.DoStep(sys, a.state, a.time+half, half); err != nil {
		return err
	}

	a.time += a.dt

	errEst := a.localError(a.state, y0)
	if errEst == 0 {
		errEst = errorFloor
	}

	scale := math.Pow(a.tolerance/(2*errEst), 0.2)
	scale = math.Min(math.Max(scale, a.minScale), a.maxScale)
	a.dt = a.safety * a.dt * scale

	a.steps++
	return nil
}

// DoStep delegates a single fixed step of size dt to embedded stepper #1,
// bypassing the adaptive state entirely. It satisfies ode.Stepper so the
// controller can stand in wherever a fixed method is expected.
func (a *AdaptiveRK4) DoStep(sys ode.System, x ode.State, t, dt float64) error {
	return a.stepper1.DoStep(sys, x, t, dt)
}

// localError measures the disagreement between the half-step estimate y and
// the full-step estimate y0 under the configured norm.
func (a *AdaptiveRK4) localError(y, y0 ode.State) float64 {
	maxErr := 0.0
	switch a.norm {
	case NormRelative:
		for i := range y {
			err := math.Abs((y[i] - y0[i]) / y[i])
			maxErr = math.Max(maxErr, err)
		}
	case NormMixed:
		for i := range y {
			abs := math.Abs(y[i] - y0[i])
			rel := math.Abs((y[i] - y0[i]) / y[i])
			maxErr = math.Max(maxErr, math.Min(abs, rel))
		}
	default:
		for i := range y {
			maxErr = math.Max(maxErr, math.Abs(y[i]-y0[i]))
		}
	}
	return maxErr
}
