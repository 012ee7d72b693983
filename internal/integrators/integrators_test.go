package integrators

import (
	"math"
	"testing"

	"github.com/jacobbriones1/DynoDiff/internal/sim"
)

// mixing is dσ/dt = q − k·σ, the affine form of the lake equation,
// with exact solution (q/k)(1 − exp(−kt)) for σ(0)=0.
type mixing struct {
	q, k float64
}

func (m *mixing) Derivative(x sim.State, t float64) sim.State {
	return sim.State{m.q - m.k*x[0]}
}

func (m *mixing) StateDim() int { return 1 }

func (m *mixing) exact(t float64) float64 {
	return m.q / m.k * (1 - math.Exp(-m.k*t))
}

func integrate(integ sim.Integrator, dyn sim.Dynamics, x0 sim.State, dt float64, steps int) sim.State {
	x := x0
	for i := 0; i < steps; i++ {
		x = integ.Step(dyn, x, float64(i)*dt, dt)
	}
	return x
}

func TestEulerConverges(t *testing.T) {
	dyn := &mixing{q: 0.01, k: 0.02}

	x := integrate(NewEuler(), dyn, sim.State{0}, 0.01, 10000)
	want := dyn.exact(100)
	if math.Abs(x[0]-want) > 1e-3 {
		t.Errorf("euler at t=100: got %.8f, expected %.8f", x[0], want)
	}
}

func TestRK4Accuracy(t *testing.T) {
	dyn := &mixing{q: 0.01, k: 0.02}

	x := integrate(NewRK4(), dyn, sim.State{0}, 0.1, 1000)
	want := dyn.exact(100)
	if math.Abs(x[0]-want) > 1e-9 {
		t.Errorf("rk4 at t=100: got %.12f, expected %.12f", x[0], want)
	}
}

func TestRK4BeatsEuler(t *testing.T) {
	dyn := &mixing{q: 0.5, k: 0.5}
	dt := 0.1
	steps := 100
	want := dyn.exact(float64(steps) * dt)

	euler := integrate(NewEuler(), dyn, sim.State{0}, dt, steps)
	rk4 := integrate(NewRK4(), dyn, sim.State{0}, dt, steps)

	eulerErr := math.Abs(euler[0] - want)
	rk4Err := math.Abs(rk4[0] - want)
	if rk4Err >= eulerErr {
		t.Errorf("rk4 error %.3e not smaller than euler error %.3e", rk4Err, eulerErr)
	}
}
