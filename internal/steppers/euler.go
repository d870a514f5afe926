package steppers

import (
	"github.com/kvanta/numint/internal/algebra"
	"github.com/kvanta/numint/internal/ode"
)

// Euler is the explicit first-order Euler method.
//
// Do not copy an Euler after first use; it owns its scratch buffer.
type Euler struct {
	dxdt  ode.State
	steps uint64
}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) OrderStep() int { return 1 }
func (e *Euler) Adaptive() bool { return false }
func (e *Euler) Steps() uint64  { return e.steps }

func (e *Euler) AdjustSize(reference ode.State) {
	if len(e.dxdt) != len(reference) {
		e.dxdt = make(ode.State, len(reference))
	}
}

// DoStep advances x in place: x += dt*f(x, t).
func (e *Euler) DoStep(sys ode.System, x ode.State, t, dt float64) error {
	if err := ensure(e.dxdt, x, e.AdjustSize); err != nil {
		return err
	}

	sys(x, e.dxdt, t)
	algebra.AccumulateAdd(x, algebra.Scaled(dt, e.dxdt))

	e.steps++
	return nil
}
