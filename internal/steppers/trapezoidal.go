package steppers

import (
	"github.com/kvanta/numint/internal/algebra"
	"github.com/kvanta/numint/internal/ode"
)

// Trapezoidal is a two-stage first-order method: it averages the derivative
// at the start and end of the interval.
//
// Both derivatives are evaluated at the unmodified state x — the end
// evaluation uses (x, t+dt), not a predicted next state. This is a
// deliberate simplification of the implicit trapezoidal rule and keeps the
// method at order 1; changing it would silently change results for
// existing callers.
//
// Do not copy a Trapezoidal after first use; it owns its scratch buffers.
type Trapezoidal struct {
	dxdtStart ode.State
	dxdtEnd   ode.State
	steps     uint64
}

func NewTrapezoidal() *Trapezoidal {
	return &Trapezoidal{}
}

func (tr *Trapezoidal) OrderStep() int { return 1 }
func (tr *Trapezoidal) Adaptive() bool { return false }
func (tr *Trapezoidal) Steps() uint64  { return tr.steps }

func (tr *Trapezoidal) AdjustSize(reference ode.State) {
	if len(tr.dxdtStart) != len(reference) {
		tr.dxdtStart = make(ode.State, len(reference))
		tr.dxdtEnd = make(ode.State, len(reference))
	}
}

// DoStep advances x in place:
//
//	x += 0.5*dt*f(x, t) + 0.5*dt*f(x, t+dt)
func (tr *Trapezoidal) DoStep(sys ode.System, x ode.State, t, dt float64) error {
	if err := ensure(tr.dxdtStart, x, tr.AdjustSize); err != nil {
		return err
	}

	sys(x, tr.dxdtStart, t)
	sys(x, tr.dxdtEnd, t+dt)

	algebra.AccumulateAdd(x,
		algebra.Scaled(0.5*dt, tr.dxdtStart),
		algebra.Scaled(0.5*dt, tr.dxdtEnd),
	)

	tr.steps++
	return nil
}
