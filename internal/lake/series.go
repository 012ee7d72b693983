package lake

import "fmt"

// Sample is one (t, σ(t)) pair.
type Sample struct {
	Time          float64
	Concentration float64
}

// Series is an ordered sequence of samples.
type Series []Sample

// Times returns the time column.
func (s Series) Times() []float64 {
	out := make([]float64, len(s))
	for i, smp := range s {
		out[i] = smp.Time
	}
	return out
}

// Concentrations returns the concentration column.
func (s Series) Concentrations() []float64 {
	out := make([]float64, len(s))
	for i, smp := range s {
		out[i] = smp.Concentration
	}
	return out
}

// Evaluate samples the solution at the given times. The grid must be
// non-negative and strictly increasing; the result is a fresh series of
// the same length and order. The input slice is not modified.
func Evaluate(sol *Solution, times []float64) (Series, error) {
	prev := -1.0
	for i, t := range times {
		if !isFinite(t) || t < 0 || t <= prev {
			return nil, fmt.Errorf("%w: index %d (t=%v)", ErrUnorderedTimes, i, t)
		}
		prev = t
	}

	out := make(Series, len(times))
	for i, t := range times {
		c := sol.Concentration(t)
		if !isFinite(c) {
			return nil, fmt.Errorf("%w: t=%v", ErrNotFinite, t)
		}
		out[i] = Sample{Time: t, Concentration: c}
	}
	return out, nil
}

// UniformTimes returns n samples evenly spaced over [0, tmax],
// endpoints included. n must be at least 2 and tmax positive.
func UniformTimes(tmax float64, n int) ([]float64, error) {
	if n < 2 {
		return nil, fmt.Errorf("%w: need at least 2 samples, got %d", ErrInvalidParameter, n)
	}
	if !isFinite(tmax) || tmax <= 0 {
		return nil, fmt.Errorf("%w: tmax must be positive, got %v", ErrInvalidParameter, tmax)
	}
	times := make([]float64, n)
	step := tmax / float64(n-1)
	for i := range times {
		times[i] = float64(i) * step
	}
	times[n-1] = tmax
	return times, nil
}
