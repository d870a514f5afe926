// Package ode defines the core types for numerical integration of ordinary
// differential equations:
//
//   - [State]: vector representing the system state, mutated in place
//   - [System]: derivative callback (dx/dt = f(x, t) written into a buffer)
//   - [Stepper]: one-step integration method interface
//   - [Config], [Result]: run parameters and collected trajectory
//
// Concrete methods live in the steppers package; the driver package runs
// complete integrations.
//
// # Example
//
//	st := steppers.NewRK4()
//	st.AdjustSize(x)
//	err := st.DoStep(sys, x, t, dt)
//
// # Thread safety
//
// Steppers are NOT thread-safe: each instance owns scratch buffers that a
// DoStep call writes to. Use one instance per goroutine.
package ode
