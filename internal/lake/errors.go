package lake

import "errors"

// Domain errors for model construction and evaluation.
var (
	// ErrInvalidParameter indicates a flow rate or volume that makes the
	// equation ill-posed (non-positive or non-finite).
	ErrInvalidParameter = errors.New("lake: invalid parameter")

	// ErrUnorderedTimes indicates a sample grid that is not strictly
	// increasing or contains negative times.
	ErrUnorderedTimes = errors.New("lake: time samples must be non-negative and strictly increasing")

	// ErrNotFinite indicates a NaN or Inf produced during evaluation.
	ErrNotFinite = errors.New("lake: evaluation produced a non-finite value")
)
