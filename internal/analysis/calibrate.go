package analysis

import (
	"context"
	"math"

	"github.com/jacobbriones1/DynoDiff/internal/lake"
)

// CalibrateRange is one searched axis: inclusive Min..Max in Steps
// increments.
type CalibrateRange struct {
	Min, Max float64
	Steps    int
}

func (r CalibrateRange) values() []float64 {
	if r.Steps < 2 || r.Max <= r.Min {
		return []float64{r.Min}
	}
	out := make([]float64, r.Steps)
	step := (r.Max - r.Min) / float64(r.Steps-1)
	for i := range out {
		out[i] = r.Min + float64(i)*step
	}
	return out
}

// Calibrate grid-searches flow rate and input rate (volume held fixed)
// for the parameters whose closed form best fits the observed series,
// by sum of squared error. Returns the best parameters and their score.
func Calibrate(ctx context.Context, observed lake.Series, volume float64, flow, input CalibrateRange) (lake.Parameters, float64, error) {
	best := math.Inf(1)
	var bestParams lake.Parameters

	for _, v := range flow.values() {
		for _, m := range input.values() {
			if err := ctx.Err(); err != nil {
				return bestParams, best, err
			}

			p := lake.Parameters{FlowRate: v, Volume: volume, InputRate: m}
			sol, err := lake.Solve(p)
			if err != nil {
				continue
			}

			score := 0.0
			for _, smp := range observed {
				d := sol.Concentration(smp.Time) - smp.Concentration
				score += d * d
			}

			if score < best {
				best = score
				bestParams = p
			}
		}
	}

	return bestParams, best, nil
}
