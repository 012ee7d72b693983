package lake

import (
	"context"
	"sync"
)

// SweepResult pairs one parameter variant with its evaluated series.
type SweepResult struct {
	Params Parameters
	Series Series
	Err    error
}

// Sweep evaluates the closed form for each parameter variant over the
// same time grid, one goroutine per variant. Evaluation is pointwise
// and independent, so this parallelizes trivially. Results keep the
// order of the variants; per-variant failures land in Err rather than
// aborting the sweep.
func Sweep(ctx context.Context, variants []Parameters, times []float64) []SweepResult {
	results := make([]SweepResult, len(variants))

	var wg sync.WaitGroup
	for i, p := range variants {
		wg.Add(1)
		go func(idx int, p Parameters) {
			defer wg.Done()

			results[idx].Params = p
			if err := ctx.Err(); err != nil {
				results[idx].Err = err
				return
			}

			sol, err := Solve(p)
			if err != nil {
				results[idx].Err = err
				return
			}
			results[idx].Series, results[idx].Err = Evaluate(sol, times)
		}(i, p)
	}
	wg.Wait()

	return results
}
