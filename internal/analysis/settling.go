package analysis

import (
	"math"

	"github.com/jacobbriones1/DynoDiff/internal/lake"
)

// Approach is one row of the approach-to-steady-state table.
type Approach struct {
	Fraction float64
	Time     float64
	Turnover float64 // time expressed in lake turnovers (v/V)·t
}

// Halflife returns the time to reach half the steady state,
// ln(2)·(V/v).
func Halflife(sol *lake.Solution) float64 {
	return math.Ln2 / sol.TurnoverRate()
}

// ApproachTable reports when the concentration crosses each fraction of
// the steady state. Fractions outside (0, 1) yield NaN rows, matching
// lake.Solution.SettlingTime.
func ApproachTable(sol *lake.Solution, fractions []float64) []Approach {
	out := make([]Approach, len(fractions))
	for i, f := range fractions {
		t := sol.SettlingTime(f)
		out[i] = Approach{
			Fraction: f,
			Time:     t,
			Turnover: t * sol.TurnoverRate(),
		}
	}
	return out
}

// DefaultFractions is the table used by the CLI.
var DefaultFractions = []float64{0.5, 0.9, 0.95, 0.99}
