package metrics

import (
	"math"

	"github.com/jacobbriones1/DynoDiff/internal/lake"
	"github.com/jacobbriones1/DynoDiff/internal/sim"
)

// MassBalance checks conservation: the solute mass in the lake, V·σ(t),
// must equal input-to-date minus outflow-to-date, m·t − ∫v·σ dt. The
// integral is accumulated by trapezoid between observations; Value is
// the maximum absolute imbalance.
type MassBalance struct {
	name     string
	params   lake.Parameters
	outflow  float64
	prev     float64
	prevTime float64
	max      float64
	samples  int
}

func NewMassBalance(p lake.Parameters) *MassBalance {
	return &MassBalance{name: "mass_balance", params: p}
}

func (m *MassBalance) Name() string { return m.name }

func (m *MassBalance) Observe(x sim.State, t float64) {
	if len(x) == 0 {
		return
	}
	cur := x[0]
	if m.samples > 0 && t > m.prevTime {
		dt := t - m.prevTime
		m.outflow += m.params.FlowRate * (cur + m.prev) / 2 * dt
	}
	inLake := m.params.Volume * cur
	expected := m.params.InputRate*t - m.outflow
	if m.samples > 0 {
		m.max = math.Max(m.max, math.Abs(inLake-expected))
	}
	m.prev = cur
	m.prevTime = t
	m.samples++
}

func (m *MassBalance) Value() float64 { return m.max }

func (m *MassBalance) Reset() {
	m.outflow = 0
	m.prev = 0
	m.prevTime = 0
	m.max = 0
	m.samples = 0
}
