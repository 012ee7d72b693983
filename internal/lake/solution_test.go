package lake

import (
	"errors"
	"math"
	"testing"
)

func textbook(t *testing.T) *Solution {
	t.Helper()
	sol, err := Solve(Parameters{FlowRate: 2, Volume: 100, InputRate: 1})
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}
	return sol
}

func TestSolveRejectsIllPosed(t *testing.T) {
	_, err := Solve(Parameters{FlowRate: 0, Volume: 100, InputRate: 1})
	if !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("expected ErrInvalidParameter, got %v", err)
	}

	_, err = Solve(Parameters{FlowRate: 2, Volume: 0, InputRate: 1})
	if !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("expected ErrInvalidParameter, got %v", err)
	}
}

func TestInitialConditionExact(t *testing.T) {
	sol := textbook(t)
	if got := sol.Concentration(0); got != 0 {
		t.Errorf("σ(0) must be exactly zero, got %v", got)
	}
}

func TestTextbookScenario(t *testing.T) {
	// v=2, V=100, m=1: σ(t) = 0.5(1 − exp(−0.02t)).
	sol := textbook(t)

	want := 0.5 * (1 - math.Exp(-2))
	if got := sol.Concentration(100); math.Abs(got-want) > 1e-12 {
		t.Errorf("σ(100): expected %v, got %v", want, got)
	}
	if math.Abs(sol.Concentration(100)-0.4323) > 1e-4 {
		t.Errorf("σ(100) should be ≈0.4323, got %v", sol.Concentration(100))
	}
}

func TestConvergesToSteadyState(t *testing.T) {
	sol := textbook(t)
	if got := sol.Concentration(1e6); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("σ(1e6): expected convergence to 0.5 within 1e-9, got %v", got)
	}
}

func TestMonotoneAndBounded(t *testing.T) {
	sol := textbook(t)
	steady := sol.SteadyState()

	prev := -1.0
	for t1 := 0.0; t1 <= 1000; t1 += 0.5 {
		c := sol.Concentration(t1)
		if c < prev {
			t.Fatalf("σ decreased at t=%v: %v < %v", t1, c, prev)
		}
		if c < 0 || c >= steady {
			t.Fatalf("σ(%v)=%v outside [0, %v)", t1, c, steady)
		}
		prev = c
	}
}

func TestResidualSatisfiesEquation(t *testing.T) {
	sol := textbook(t)
	for _, tt := range []float64{0, 0.1, 1, 10, 100, 1000, 1e5} {
		if res := sol.Residual(tt); math.Abs(res) > 1e-12 {
			t.Errorf("residual at t=%v: %v", tt, res)
		}
	}
}

func TestRateIsDerivative(t *testing.T) {
	sol := textbook(t)
	const h = 1e-6
	for _, tt := range []float64{0.5, 10, 100} {
		numeric := (sol.Concentration(tt+h) - sol.Concentration(tt-h)) / (2 * h)
		if got := sol.Rate(tt); math.Abs(got-numeric) > 1e-7 {
			t.Errorf("Rate(%v)=%v disagrees with finite difference %v", tt, got, numeric)
		}
	}
}

func TestSettlingTime(t *testing.T) {
	sol := textbook(t)

	th := sol.SettlingTime(0.5)
	want := 0.5 * sol.SteadyState()
	if got := sol.Concentration(th); math.Abs(got-want) > 1e-12 {
		t.Errorf("σ at half-life: expected %v, got %v", want, got)
	}

	if !math.IsNaN(sol.SettlingTime(0)) || !math.IsNaN(sol.SettlingTime(1.5)) {
		t.Error("fractions outside (0,1) should yield NaN")
	}
}

func TestPristineInput(t *testing.T) {
	sol, err := Solve(Parameters{FlowRate: 2, Volume: 100, InputRate: 0})
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}
	for _, tt := range []float64{0, 1, 100} {
		if got := sol.Concentration(tt); got != 0 {
			t.Errorf("σ(%v) with m=0: expected 0, got %v", tt, got)
		}
	}
}
