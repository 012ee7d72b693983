package sim

import (
	"context"
	"math"
	"testing"
)

type decayDynamics struct{}

func (d *decayDynamics) Derivative(x State, t float64) State {
	return State{-x[0]}
}

func (d *decayDynamics) StateDim() int { return 1 }

type eulerStep struct{}

func (e *eulerStep) Step(dyn Dynamics, x State, t float64, dt float64) State {
	dx := dyn.Derivative(x, t)
	return State{x[0] + dt*dx[0]}
}

func TestSimulatorRun(t *testing.T) {
	s := New(&decayDynamics{}, &eulerStep{})

	cfg := Config{Dt: 0.1, Duration: 1.0}
	result, err := s.Run(context.Background(), State{1.0}, cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(result.States) != 11 {
		t.Errorf("expected 11 states, got %d", len(result.States))
	}
	if len(result.Times) != 11 {
		t.Errorf("expected 11 times, got %d", len(result.Times))
	}

	final := result.States[len(result.States)-1][0]
	expected := math.Exp(-1.0)
	if math.Abs(final-expected) > 0.2 {
		t.Errorf("expected final state ~%.4f, got %.4f", expected, final)
	}
}

func TestSimulatorInvalidConfig(t *testing.T) {
	s := New(&decayDynamics{}, &eulerStep{})

	tests := []struct {
		name string
		cfg  Config
	}{
		{"zero dt", Config{Dt: 0, Duration: 1.0}},
		{"negative dt", Config{Dt: -0.1, Duration: 1.0}},
		{"zero duration", Config{Dt: 0.1, Duration: 0}},
		{"negative duration", Config{Dt: 0.1, Duration: -1.0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := s.Run(context.Background(), State{1.0}, tt.cfg); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestSimulatorContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := New(&decayDynamics{}, &eulerStep{})
	_, err := s.Run(ctx, State{1.0}, Config{Dt: 0.1, Duration: 1.0})
	if err == nil {
		t.Error("expected context error, got nil")
	}
}

type meanMetric struct {
	count int
	sum   float64
}

func (m *meanMetric) Name() string { return "mean" }
func (m *meanMetric) Observe(x State, t float64) {
	m.count++
	m.sum += x[0]
}
func (m *meanMetric) Value() float64 {
	if m.count == 0 {
		return 0
	}
	return m.sum / float64(m.count)
}
func (m *meanMetric) Reset() {
	m.count = 0
	m.sum = 0
}

func TestSimulatorMetrics(t *testing.T) {
	s := New(&decayDynamics{}, &eulerStep{})

	metric := &meanMetric{}
	s.AddMetric(metric)

	result, err := s.Run(context.Background(), State{1.0}, Config{Dt: 0.1, Duration: 1.0})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if _, ok := result.Metrics["mean"]; !ok {
		t.Error("metric not found in result")
	}
	if metric.count != 10 {
		t.Errorf("expected 10 observations, got %d", metric.count)
	}
}

type blowupDynamics struct{}

func (b *blowupDynamics) Derivative(x State, t float64) State {
	return State{math.NaN()}
}

func (b *blowupDynamics) StateDim() int { return 1 }

func TestSimulatorRejectsInvalidState(t *testing.T) {
	s := New(&blowupDynamics{}, &eulerStep{})
	_, err := s.Run(context.Background(), State{1.0}, Config{Dt: 0.1, Duration: 1.0})
	if err == nil {
		t.Error("expected error for NaN state")
	}
}
