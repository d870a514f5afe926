// Package driver runs complete integrations: it repeatedly steps a system,
// fans the state out to observers after every completed step, and collects
// the trajectory.
package driver

import (
	"context"
	"fmt"

	"github.com/kvanta/numint/internal/observers"
	"github.com/kvanta/numint/internal/ode"
)

// Driver owns one system/stepper pair for the duration of a run. It is not
// thread-safe; use one Driver per goroutine.
type Driver struct {
	sys       ode.System
	stepper   ode.Stepper
	observers []observers.Observer
}

func New(sys ode.System, stepper ode.Stepper) *Driver {
	return &Driver{sys: sys, stepper: stepper}
}

func (d *Driver) AddObserver(o observers.Observer) {
	d.observers = append(d.observers, o)
}

func (d *Driver) observe(x ode.State, t float64) {
	for _, o := range d.observers {
		o.Observe(x, t)
	}
}

// Run integrates from x0 over cfg.Duration with fixed steps of cfg.Dt.
// The caller's x0 is not mutated. Cancellation is honored between steps.
func (d *Driver) Run(ctx context.Context, x0 ode.State, cfg ode.Config) (*ode.Result, error) {
	if err := validate(cfg); err != nil {
		return nil, err
	}

	steps := int(cfg.Duration / cfg.Dt)
	result := &ode.Result{
		States: make([]ode.State, 0, steps+1),
		Times:  make([]float64, 0, steps+1),
	}

	x := x0.Clone()
	t := 0.0
	d.stepper.AdjustSize(x)

	result.States = append(result.States, x.Clone())
	result.Times = append(result.Times, t)

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		if err := d.stepper.DoStep(d.sys, x, t, cfg.Dt); err != nil {
			return result, &ode.StepError{Step: i, Time: t, Wrapped: err}
		}
		t += cfg.Dt

		if cfg.ValidateState && !x.IsValid() {
			result.Errors = append(result.Errors,
				&ode.StepError{Step: i, Time: t, Wrapped: ode.ErrInvalidState})
			break
		}

		result.StepsTaken++
		result.States = append(result.States, x.Clone())
		result.Times = append(result.Times, t)
		d.observe(x, t)
	}

	result.FinalDt = cfg.Dt
	return result, nil
}

// RunAdaptive integrates from x0 until the adaptive stepper's time reaches
// cfg.Duration, starting from step size cfg.Dt. The driver's stepper must
// implement ode.AdaptiveStepper.
func (d *Driver) RunAdaptive(ctx context.Context, x0 ode.State, cfg ode.Config) (*ode.Result, error) {
	if err := validate(cfg); err != nil {
		return nil, err
	}
	if cfg.Tolerance <= 0 {
		return nil, ode.ErrNonPositiveTolerance
	}

	ad, ok := d.stepper.(ode.AdaptiveStepper)
	if !ok {
		return nil, fmt.Errorf("driver: stepper %T is not adaptive", d.stepper)
	}

	if err := ad.Initialize(x0, 0, cfg.Dt); err != nil {
		return nil, err
	}

	result := &ode.Result{
		States: []ode.State{x0.Clone()},
		Times:  []float64{0},
	}

	step := 0
	for ad.CurrentTime() < cfg.Duration {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		if err := ad.Advance(d.sys); err != nil {
			return result, &ode.StepError{Step: step, Time: ad.CurrentTime(), Wrapped: err}
		}
		step++

		x := ad.CurrentState()
		t := ad.CurrentTime()

		if cfg.ValidateState && !x.IsValid() {
			result.Errors = append(result.Errors,
				&ode.StepError{Step: step, Time: t, Wrapped: ode.ErrInvalidState})
			break
		}

		result.StepsTaken++
		result.States = append(result.States, x)
		result.Times = append(result.Times, t)
		d.observe(x, t)
	}

	result.FinalDt = ad.CurrentStepSize()
	return result, nil
}

// RunWithCallback streams fixed steps to fn instead of collecting them;
// returning false from fn stops the run.
func (d *Driver) RunWithCallback(ctx context.Context, x0 ode.State, cfg ode.Config, fn func(x ode.State, t float64) bool) error {
	if err := validate(cfg); err != nil {
		return err
	}

	x := x0.Clone()
	t := 0.0
	d.stepper.AdjustSize(x)

	for t < cfg.Duration {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err := d.stepper.DoStep(d.sys, x, t, cfg.Dt); err != nil {
			return err
		}
		t += cfg.Dt

		if cfg.ValidateState && !x.IsValid() {
			return fmt.Errorf("driver: invalid state at t=%.4f: %w", t, ode.ErrInvalidState)
		}

		if !fn(x, t) {
			return nil
		}
	}

	return nil
}

func validate(cfg ode.Config) error {
	if cfg.Dt <= 0 {
		return ode.ErrNonPositiveStep
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("driver: duration must be positive, got %f", cfg.Duration)
	}
	return nil
}
