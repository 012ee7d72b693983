// Package lake models solute concentration in a well-mixed lake with
// constant inflow and outflow.
//
// The governing equation is the first-order linear ODE
//
//	dσ/dt + (v/V)σ = m/V, σ(0) = 0
//
// where v is the volumetric flow rate, V the lake volume, and m the
// solute mass input rate. [Solve] returns the closed-form solution
//
//	σ(t) = (m/v)(1 − exp(−(v/V)t))
//
// and [Evaluate] samples it over a time grid. [System] exposes the same
// equation to the numeric integrators for cross-checking.
package lake
