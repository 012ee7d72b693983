package lake

import (
	"fmt"
	"math"
)

// Parameters describes the mixing model.
type Parameters struct {
	// FlowRate is the volumetric inflow/outflow rate v. Must be positive;
	// inflow and outflow are equal so the volume stays constant.
	FlowRate float64

	// Volume is the lake volume V. Must be positive.
	Volume float64

	// InputRate is the solute mass input rate m. Must be non-negative;
	// zero models a pristine inflow.
	InputRate float64
}

// Validate reports whether the parameters define a well-posed equation.
func (p Parameters) Validate() error {
	if !isFinite(p.FlowRate) || p.FlowRate <= 0 {
		return fmt.Errorf("%w: flow rate must be positive, got %v", ErrInvalidParameter, p.FlowRate)
	}
	if !isFinite(p.Volume) || p.Volume <= 0 {
		return fmt.Errorf("%w: volume must be positive, got %v", ErrInvalidParameter, p.Volume)
	}
	if !isFinite(p.InputRate) || p.InputRate < 0 {
		return fmt.Errorf("%w: input rate must be non-negative, got %v", ErrInvalidParameter, p.InputRate)
	}
	return nil
}

// TurnoverRate returns v/V, the reciprocal of the lake residence time.
func (p Parameters) TurnoverRate() float64 {
	return p.FlowRate / p.Volume
}

// SteadyState returns m/v, the limiting concentration as t grows.
func (p Parameters) SteadyState() float64 {
	return p.InputRate / p.FlowRate
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
