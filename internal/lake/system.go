package lake

import "github.com/jacobbriones1/DynoDiff/internal/sim"

// System exposes the mixing equation dσ/dt = m/V − (v/V)σ as a
// sim.Dynamics so the numeric integrators can be run against the
// closed form.
type System struct {
	params Parameters
}

// NewSystem returns the one-dimensional mixing system.
func NewSystem(p Parameters) (*System, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &System{params: p}, nil
}

func (l *System) Derivative(x sim.State, t float64) sim.State {
	p := l.params
	return sim.State{p.InputRate/p.Volume - p.TurnoverRate()*x[0]}
}

func (l *System) StateDim() int { return 1 }
