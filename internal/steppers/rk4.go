package steppers

import (
	"github.com/kvanta/numint/internal/algebra"
	"github.com/kvanta/numint/internal/ode"
)

// RK4 is the classic four-stage fourth-order Runge-Kutta method.
//
// Do not copy an RK4 after first use; it owns its scratch buffers.
type RK4 struct {
	k1, k2, k3, k4 ode.State
	tmp            ode.State
	steps          uint64
}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) OrderStep() int { return 4 }
func (r *RK4) Adaptive() bool { return false }
func (r *RK4) Steps() uint64  { return r.steps }

func (r *RK4) AdjustSize(reference ode.State) {
	if len(r.k1) != len(reference) {
		r.k1 = make(ode.State, len(reference))
		r.k2 = make(ode.State, len(reference))
		r.k3 = make(ode.State, len(reference))
		r.k4 = make(ode.State, len(reference))
		r.tmp = make(ode.State, len(reference))
	}
}

// DoStep advances x in place:
//
//	x += dt/6 * (k1 + 2*k2 + 2*k3 + k4)
//
// with k1..k4 evaluated at the standard Runge-Kutta sub-points.
func (r *RK4) DoStep(sys ode.System, x ode.State, t, dt float64) error {
	if err := ensure(r.k1, x, r.AdjustSize); err != nil {
		return err
	}

	sys(x, r.k1, t)

	copy(r.tmp, x)
	algebra.AccumulateAdd(r.tmp, algebra.Scaled(0.5*dt, r.k1))
	sys(r.tmp, r.k2, t+0.5*dt)

	copy(r.tmp, x)
	algebra.AccumulateAdd(r.tmp, algebra.Scaled(0.5*dt, r.k2))
	sys(r.tmp, r.k3, t+0.5*dt)

	copy(r.tmp, x)
	algebra.AccumulateAdd(r.tmp, algebra.Scaled(dt, r.k3))
	sys(r.tmp, r.k4, t+dt)

	algebra.AccumulateAdd(x,
		algebra.Scaled(dt/6, r.k1),
		algebra.Scaled(dt/3, r.k2),
		algebra.Scaled(dt/3, r.k3),
		algebra.Scaled(dt/6, r.k4),
	)

	r.steps++
	return nil
}
