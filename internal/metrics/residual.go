package metrics

import (
	"math"

	"github.com/jacobbriones1/DynoDiff/internal/lake"
	"github.com/jacobbriones1/DynoDiff/internal/sim"
)

// Residual measures how well observed samples satisfy the governing
// equation dσ/dt + (v/V)σ = m/V, using a midpoint finite-difference
// derivative between consecutive observations. Value is the maximum
// absolute residual seen.
type Residual struct {
	name     string
	params   lake.Parameters
	max      float64
	prev     float64
	prevTime float64
	samples  int
}

func NewResidual(p lake.Parameters) *Residual {
	return &Residual{name: "residual", params: p}
}

func (r *Residual) Name() string { return r.name }

func (r *Residual) Observe(x sim.State, t float64) {
	if len(x) == 0 {
		return
	}
	cur := x[0]
	if r.samples > 0 && t > r.prevTime {
		dt := t - r.prevTime
		deriv := (cur - r.prev) / dt
		mid := (cur + r.prev) / 2
		res := deriv + r.params.TurnoverRate()*mid - r.params.InputRate/r.params.Volume
		r.max = math.Max(r.max, math.Abs(res))
	}
	r.prev = cur
	r.prevTime = t
	r.samples++
}

func (r *Residual) Value() float64 { return r.max }

func (r *Residual) Reset() {
	r.max = 0
	r.prev = 0
	r.prevTime = 0
	r.samples = 0
}
