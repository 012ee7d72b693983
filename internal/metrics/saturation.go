package metrics

import (
	"github.com/jacobbriones1/DynoDiff/internal/sim"
)

// Saturation tracks how far the concentration has come toward the
// steady state m/v, as a fraction in [0, 1). The value is the fraction
// at the last observed sample.
type Saturation struct {
	name   string
	steady float64
	last   float64
	seen   bool
}

func NewSaturation(steady float64) *Saturation {
	return &Saturation{name: "saturation", steady: steady}
}

func (s *Saturation) Name() string { return s.name }

func (s *Saturation) Observe(x sim.State, t float64) {
	if len(x) == 0 {
		return
	}
	s.last = x[0]
	s.seen = true
}

func (s *Saturation) Value() float64 {
	if !s.seen || s.steady == 0 {
		return 0
	}
	return s.last / s.steady
}

func (s *Saturation) Reset() {
	s.last = 0
	s.seen = false
}
