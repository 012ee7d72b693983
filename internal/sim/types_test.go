package sim

import (
	"math"
	"testing"
)

func TestStateClone(t *testing.T) {
	s := State{1.0, 2.0}
	c := s.Clone()
	c[0] = 99

	if s[0] != 1.0 {
		t.Error("clone aliases the original")
	}
}

func TestStateIsValid(t *testing.T) {
	if !(State{1, 2}).IsValid() {
		t.Error("finite state reported invalid")
	}
	if (State{1, math.NaN()}).IsValid() {
		t.Error("NaN state reported valid")
	}
	if (State{math.Inf(1)}).IsValid() {
		t.Error("Inf state reported valid")
	}
}

func TestStateNorm(t *testing.T) {
	if got := (State{3, 4}).Norm(); got != 5 {
		t.Errorf("expected norm 5, got %v", got)
	}
}
