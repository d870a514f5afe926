package driver

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/kvanta/numint/internal/observers"
	"github.com/kvanta/numint/internal/ode"
	"github.com/kvanta/numint/internal/steppers"
	"github.com/kvanta/numint/internal/systems"
)

func TestRun_FixedStepDecay(t *testing.T) {
	d := New(systems.Decay(1.0), steppers.NewRK4())

	cfg := ode.DefaultConfig()
	cfg.Dt = 0.01
	cfg.Duration = 1.0

	result, err := d.Run(context.Background(), ode.State{1.0}, cfg)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if result.StepsTaken != 100 {
		t.Errorf("StepsTaken = %d, want 100", result.StepsTaken)
	}

	final := result.States[len(result.States)-1][0]
	exact := math.Exp(-1.0)
	if math.Abs(final-exact) > 1e-8 {
		t.Errorf("final state = %.10f, want %.10f", final, exact)
	}
}

func TestRun_DoesNotMutateInitialState(t *testing.T) {
	d := New(systems.Decay(1.0), steppers.NewEuler())
	x0 := ode.State{1.0}

	cfg := ode.DefaultConfig()
	cfg.Duration = 0.1

	if _, err := d.Run(context.Background(), x0, cfg); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if x0[0] != 1.0 {
		t.Errorf("x0 mutated: %v", x0)
	}
}

func TestRun_ConfigValidation(t *testing.T) {
	d := New(systems.Decay(1.0), steppers.NewEuler())

	cfg := ode.DefaultConfig()
	cfg.Dt = 0
	if _, err := d.Run(context.Background(), ode.State{1}, cfg); !errors.Is(err, ode.ErrNonPositiveStep) {
		t.Errorf("zero dt: err = %v", err)
	}

	cfg = ode.DefaultConfig()
	cfg.Duration = -1
	if _, err := d.Run(context.Background(), ode.State{1}, cfg); err == nil {
		t.Error("negative duration accepted")
	}
}

func TestRun_ContextCancellation(t *testing.T) {
	d := New(systems.Decay(1.0), steppers.NewEuler())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := ode.DefaultConfig()
	_, err := d.Run(ctx, ode.State{1.0}, cfg)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestRun_ObserversInvokedPerStep(t *testing.T) {
	d := New(systems.Decay(1.0), steppers.NewEuler())
	hist := observers.NewHistory(0)
	d.AddObserver(hist)

	cfg := ode.DefaultConfig()
	cfg.Dt = 0.1
	cfg.Duration = 1.0

	if _, err := d.Run(context.Background(), ode.State{1.0}, cfg); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if hist.Len() != 10 {
		t.Errorf("observer invoked %d times, want 10", hist.Len())
	}
}

func TestRun_ValidateStateStopsOnNaN(t *testing.T) {
	blowUp := func(x ode.State, dxdt ode.State, _t float64) {
		dxdt[0] = math.NaN()
	}

	d := New(blowUp, steppers.NewEuler())
	cfg := ode.DefaultConfig()
	cfg.Dt = 0.1
	cfg.Duration = 1.0

	result, err := d.Run(context.Background(), ode.State{1.0}, cfg)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(result.Errors) == 0 {
		t.Fatal("expected a recorded state error")
	}
	if !errors.Is(result.Errors[0], ode.ErrInvalidState) {
		t.Errorf("recorded error = %v, want ErrInvalidState", result.Errors[0])
	}
	if result.StepsTaken != 0 {
		t.Errorf("StepsTaken = %d after immediate NaN, want 0", result.StepsTaken)
	}
}

func TestRunAdaptive_ReachesDuration(t *testing.T) {
	d := New(systems.Decay(1.0), steppers.NewAdaptiveRK4(1e-8))

	cfg := ode.DefaultConfig()
	cfg.Dt = 0.01
	cfg.Duration = 2.0
	cfg.Tolerance = 1e-8

	result, err := d.RunAdaptive(context.Background(), ode.State{1.0}, cfg)
	if err != nil {
		t.Fatalf("RunAdaptive failed: %v", err)
	}

	finalT := result.Times[len(result.Times)-1]
	if finalT < cfg.Duration {
		t.Errorf("final time %v short of duration %v", finalT, cfg.Duration)
	}

	final := result.States[len(result.States)-1][0]
	exact := math.Exp(-finalT)
	if math.Abs(final-exact) > 1e-5 {
		t.Errorf("final state = %.10f, want %.10f", final, exact)
	}

	if result.FinalDt <= 0 {
		t.Errorf("FinalDt = %v", result.FinalDt)
	}
}

func TestRunAdaptive_RequiresAdaptiveStepper(t *testing.T) {
	d := New(systems.Decay(1.0), steppers.NewRK4())

	cfg := ode.DefaultConfig()
	if _, err := d.RunAdaptive(context.Background(), ode.State{1.0}, cfg); err == nil {
		t.Error("fixed stepper accepted for adaptive run")
	}
}

func TestRunAdaptive_RequiresTolerance(t *testing.T) {
	d := New(systems.Decay(1.0), steppers.NewAdaptiveRK4(1e-6))

	cfg := ode.DefaultConfig()
	cfg.Tolerance = 0
	if _, err := d.RunAdaptive(context.Background(), ode.State{1.0}, cfg); !errors.Is(err, ode.ErrNonPositiveTolerance) {
		t.Errorf("err = %v, want ErrNonPositiveTolerance", err)
	}
}

func TestRunWithCallback_EarlyStop(t *testing.T) {
	d := New(systems.Decay(1.0), steppers.NewEuler())

	cfg := ode.DefaultConfig()
	cfg.Dt = 0.1
	cfg.Duration = 10.0

	calls := 0
	err := d.RunWithCallback(context.Background(), ode.State{1.0}, cfg, func(x ode.State, t float64) bool {
		calls++
		return calls < 5
	})
	if err != nil {
		t.Fatalf("RunWithCallback failed: %v", err)
	}

	if calls != 5 {
		t.Errorf("callback invoked %d times, want 5", calls)
	}
}
