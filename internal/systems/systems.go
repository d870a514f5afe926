// Package systems provides canonical ODE systems used by the CLI and as
// test fixtures.
package systems

import "github.com/kvanta/numint/internal/ode"

// Model bundles a system with its dimension and a default initial state.
type Model struct {
	Name string
	Dim  int
	Init ode.State
	Sys  ode.System
}

// Decay is exponential decay: dx/dt = -k*x, per component.
func Decay(k float64) ode.System {
	return func(x ode.State, dxdt ode.State, t float64) {
		for i := range dxdt {
			dxdt[i] = -k * x[i]
		}
	}
}

// Linear is dx/dt = k*x, per component.
func Linear(k float64) ode.System {
	return func(x ode.State, dxdt ode.State, t float64) {
		for i := range dxdt {
			dxdt[i] = k * x[i]
		}
	}
}

// Harmonic is the simple harmonic oscillator x'' = -omega^2 * x, with state
// [position, velocity].
func Harmonic(omega float64) ode.System {
	w2 := omega * omega
	return func(x ode.State, dxdt ode.State, t float64) {
		dxdt[0] = x[1]
		dxdt[1] = -w2 * x[0]
	}
}

// VanDerPol is the Van der Pol oscillator with damping mu, state
// [position, velocity].
func VanDerPol(mu float64) ode.System {
	return func(x ode.State, dxdt ode.State, t float64) {
		dxdt[0] = x[1]
		dxdt[1] = mu*(1-x[0]*x[0])*x[1] - x[0]
	}
}

// Lorenz is the Lorenz attractor, state [x, y, z].
func Lorenz(sigma, rho, beta float64) ode.System {
	return func(x ode.State, dxdt ode.State, t float64) {
		dxdt[0] = sigma * (x[1] - x[0])
		dxdt[1] = x[0]*(rho-x[2]) - x[1]
		dxdt[2] = x[0]*x[1] - beta*x[2]
	}
}

// Registry returns the named models the CLI can run.
func Registry() map[string]Model {
	return map[string]Model{
		"decay": {
			Name: "decay",
			Dim:  1,
			Init: ode.State{1.0},
			Sys:  Decay(1.0),
		},
		"harmonic": {
			Name: "harmonic",
			Dim:  2,
			Init: ode.State{1.0, 0.0},
			Sys:  Harmonic(1.0),
		},
		"vanderpol": {
			Name: "vanderpol",
			Dim:  2,
			Init: ode.State{2.0, 0.0},
			Sys:  VanDerPol(1.0),
		},
		"lorenz": {
			Name: "lorenz",
			Dim:  3,
			Init: ode.State{1.0, 1.0, 1.0},
			Sys:  Lorenz(10.0, 28.0, 8.0/3.0),
		},
	}
}
