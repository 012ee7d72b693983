package lake

import "math"

// Solution is the closed-form concentration curve for one parameter set.
// It is immutable once constructed and safe for concurrent use.
type Solution struct {
	params Parameters
	steady float64 // m/v
	rate   float64 // v/V
}

// Solve returns the closed-form solution of
//
//	dσ/dt + (v/V)σ = m/V, σ(0) = 0
//
// obtained with the integrating factor exp((v/V)t). It fails with
// ErrInvalidParameter before any evaluation if the parameters are
// ill-posed.
func Solve(p Parameters) (*Solution, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &Solution{
		params: p,
		steady: p.InputRate / p.FlowRate,
		rate:   p.FlowRate / p.Volume,
	}, nil
}

// Params returns the parameters the solution is bound to.
func (s *Solution) Params() Parameters { return s.params }

// Concentration returns σ(t) = (m/v)(1 − exp(−(v/V)t)).
//
// For t ≥ 0 the value lies in [0, m/v), starts at exactly zero, and
// increases monotonically toward the steady state. Large t underflows
// the exponential toward zero rather than overflowing.
func (s *Solution) Concentration(t float64) float64 {
	return s.steady * (1 - math.Exp(-s.rate*t))
}

// Rate returns dσ/dt = (m/V)·exp(−(v/V)t).
func (s *Solution) Rate(t float64) float64 {
	return s.params.InputRate / s.params.Volume * math.Exp(-s.rate*t)
}

// SteadyState returns the limiting concentration m/v.
func (s *Solution) SteadyState() float64 { return s.steady }

// TurnoverRate returns v/V.
func (s *Solution) TurnoverRate() float64 { return s.rate }

// Residual substitutes the closed form back into the equation and
// returns σ'(t) + (v/V)σ(t) − m/V. Zero up to rounding for every t;
// a prefactor other than m/v would leave a nonzero residual whenever
// v ≠ V, which is how such a mistake gets caught.
func (s *Solution) Residual(t float64) float64 {
	return s.Rate(t) + s.rate*s.Concentration(t) - s.params.InputRate/s.params.Volume
}

// SettlingTime returns the time at which σ reaches the given fraction
// of the steady state: t = −(V/v)·ln(1 − fraction). NaN outside (0, 1).
func (s *Solution) SettlingTime(fraction float64) float64 {
	if fraction <= 0 || fraction >= 1 {
		return math.NaN()
	}
	return -math.Log(1-fraction) / s.rate
}
