package lake

import (
	"errors"
	"testing"
)

func TestUniformTimes(t *testing.T) {
	times, err := UniformTimes(400, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(times) != 5 {
		t.Fatalf("expected 5 samples, got %d", len(times))
	}
	if times[0] != 0 {
		t.Errorf("first sample must be 0, got %v", times[0])
	}
	if times[len(times)-1] != 400 {
		t.Errorf("last sample must be tmax, got %v", times[len(times)-1])
	}
	if times[2] != 200 {
		t.Errorf("midpoint: expected 200, got %v", times[2])
	}
}

func TestUniformTimesRejectsBadInput(t *testing.T) {
	if _, err := UniformTimes(400, 1); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("n=1: expected ErrInvalidParameter, got %v", err)
	}
	if _, err := UniformTimes(0, 10); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("tmax=0: expected ErrInvalidParameter, got %v", err)
	}
}

func TestEvaluate(t *testing.T) {
	sol := textbook(t)
	times := []float64{0, 50, 100, 200}

	series, err := Evaluate(sol, times)
	if err != nil {
		t.Fatalf("evaluate failed: %v", err)
	}
	if len(series) != len(times) {
		t.Fatalf("expected %d samples, got %d", len(times), len(series))
	}
	for i, smp := range series {
		if smp.Time != times[i] {
			t.Errorf("sample %d: time %v, expected %v", i, smp.Time, times[i])
		}
		if smp.Concentration != sol.Concentration(times[i]) {
			t.Errorf("sample %d: concentration mismatch", i)
		}
	}
}

func TestEvaluateDoesNotMutateInput(t *testing.T) {
	sol := textbook(t)
	times := []float64{0, 1, 2}

	if _, err := Evaluate(sol, times); err != nil {
		t.Fatalf("evaluate failed: %v", err)
	}
	if times[0] != 0 || times[1] != 1 || times[2] != 2 {
		t.Error("input slice was mutated")
	}
}

func TestEvaluateRejectsUnorderedTimes(t *testing.T) {
	sol := textbook(t)

	tests := []struct {
		name  string
		times []float64
	}{
		{"decreasing", []float64{0, 2, 1}},
		{"duplicate", []float64{0, 1, 1}},
		{"negative", []float64{-1, 0, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Evaluate(sol, tt.times)
			if !errors.Is(err, ErrUnorderedTimes) {
				t.Errorf("expected ErrUnorderedTimes, got %v", err)
			}
		})
	}
}

func TestSeriesColumns(t *testing.T) {
	s := Series{{Time: 0, Concentration: 0}, {Time: 1, Concentration: 0.5}}

	times := s.Times()
	concs := s.Concentrations()
	if len(times) != 2 || len(concs) != 2 {
		t.Fatal("column lengths wrong")
	}
	if times[1] != 1 || concs[1] != 0.5 {
		t.Error("column values wrong")
	}
}
