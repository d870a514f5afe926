// Package observers provides the post-step observation hooks invoked by the
// integration driver. The set is closed: a no-op, a decimating counter, a
// decimated printer, and a history recorder for plots and the live view.
package observers

import (
	"fmt"
	"io"

	"github.com/kvanta/numint/internal/ode"
)

// Observer receives the state after each completed integration step.
type Observer interface {
	Observe(x ode.State, t float64)
}

// Nop observes nothing.
type Nop struct{}

func (Nop) Observe(x ode.State, t float64) {}

// Decimate triggers exactly every Nth invocation. N == 0 triggers on every
// invocation. The counter resets on trigger.
type Decimate struct {
	n     uint
	count uint
}

func NewDecimate(n uint) *Decimate {
	return &Decimate{n: n}
}

// ShouldObserve advances the counter and reports whether this invocation
// triggers.
func (d *Decimate) ShouldObserve() bool {
	if d.n == 0 {
		return true
	}
	d.count++
	if d.count == d.n {
		d.count = 0
		return true
	}
	return false
}

func (d *Decimate) Observe(x ode.State, t float64) {
	d.ShouldObserve()
}

// Print writes "<time> <state>" lines to a sink, decimated by n.
type Print struct {
	dec Decimate
	w   io.Writer
}

func NewPrint(w io.Writer, n uint) *Print {
	return &Print{dec: Decimate{n: n}, w: w}
}

func (p *Print) Observe(x ode.State, t float64) {
	if p.dec.ShouldObserve() {
		fmt.Fprintf(p.w, "%v %v\n", t, x)
	}
}
