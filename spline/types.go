package spline

import "errors"

// Sentinel errors for curve fitting and inversion.
var (
	// ErrTooFewSamples indicates fewer than two sample points.
	ErrTooFewSamples = errors.New("spline: at least two samples are required")
	// ErrNotIncreasing indicates xs is not strictly increasing.
	ErrNotIncreasing = errors.New("spline: sample abscissae must be strictly increasing")
	// ErrBadInput indicates mismatched lengths or non-finite sample values.
	ErrBadInput = errors.New("spline: samples must be finite and of equal length")
	// ErrNotMonotone indicates an inversion request on a non-monotone curve.
	ErrNotMonotone = errors.New("spline: inversion requires strictly monotone ordinates")
	// ErrOutOfRange indicates an inversion target outside the curve's range.
	ErrOutOfRange = errors.New("spline: inversion target outside curve range")
)
