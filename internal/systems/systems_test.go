package systems

import (
	"math"
	"testing"

	"github.com/kvanta/numint/internal/ode"
)

func TestDecay_Derivative(t *testing.T) {
	sys := Decay(2.0)
	dxdt := make(ode.State, 2)
	sys(ode.State{1.0, -3.0}, dxdt, 0)

	if dxdt[0] != -2.0 || dxdt[1] != 6.0 {
		t.Errorf("Decay derivative = %v, want [-2 6]", dxdt)
	}
}

func TestHarmonic_Derivative(t *testing.T) {
	sys := Harmonic(2.0)
	dxdt := make(ode.State, 2)
	sys(ode.State{0.5, 1.0}, dxdt, 0)

	if dxdt[0] != 1.0 {
		t.Errorf("dxdt[0] = %v, want 1.0", dxdt[0])
	}
	if dxdt[1] != -2.0 {
		t.Errorf("dxdt[1] = %v, want -2.0", dxdt[1])
	}
}

func TestLorenz_FixedPointAtOrigin(t *testing.T) {
	sys := Lorenz(10, 28, 8.0/3.0)
	dxdt := make(ode.State, 3)
	sys(ode.State{0, 0, 0}, dxdt, 0)

	for i, v := range dxdt {
		if v != 0 {
			t.Errorf("dxdt[%d] = %v at origin, want 0", i, v)
		}
	}
}

func TestVanDerPol_ReducesToHarmonic(t *testing.T) {
	// mu = 0 degenerates to x'' = -x.
	sys := VanDerPol(0)
	dxdt := make(ode.State, 2)
	sys(ode.State{1.0, 0.5}, dxdt, 0)

	if dxdt[0] != 0.5 || dxdt[1] != -1.0 {
		t.Errorf("derivative = %v, want [0.5 -1]", dxdt)
	}
}

func TestRegistry(t *testing.T) {
	reg := Registry()

	for name, m := range reg {
		if m.Dim != len(m.Init) {
			t.Errorf("%s: Dim %d disagrees with Init length %d", name, m.Dim, len(m.Init))
		}
		dxdt := make(ode.State, m.Dim)
		m.Sys(m.Init, dxdt, 0)
		for i, v := range dxdt {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				t.Errorf("%s: dxdt[%d] = %v at initial state", name, i, v)
			}
		}
	}
}
