// Functional configuration for the solver. This file defines documented
// default constants, the Options struct, WithX constructors with strict
// validation (panic on nonsensical values — programmer error), and the
// internal gatherOptions resolver that enforces cross-field invariants.
package opf

import "math"

// DEFAULTS — single source of truth for zero-value behavior.
const (
	// DefaultSamples is the initial per-bus elimination grid density.
	DefaultSamples = 257

	// DefaultMaxSamples caps the adaptive density-doubling of the
	// eliminator; past it the best fit is kept with a Warning.
	DefaultMaxSamples = 2049

	// DefaultRootSamples is the density of the reference-magnitude sweep
	// fed to the vectorized objective.
	DefaultRootSamples = 513

	// DefaultGridLo / DefaultGridHi bound the global voltage-magnitude
	// grid (per-unit) over which feasible relations are sampled.
	DefaultGridLo = 0.5
	DefaultGridHi = 1.5

	// DefaultFitTol is the residual bound a fitted relation must meet
	// before the eliminator stops refining its grid.
	DefaultFitTol = 1e-5

	// DefaultRefineIters bounds the golden-section polish of the best
	// sampled reference point; 0 disables refinement entirely.
	DefaultRefineIters = 48

	// DefaultWorkers runs elimination serially; higher values eliminate
	// independent sibling subtrees concurrently with identical results.
	DefaultWorkers = 1

	// DefaultEpsilon is the tolerance used by interval membership checks.
	DefaultEpsilon = 1e-9
)

// minSamples is the smallest admissible elimination grid; a surviving run
// thinner than this triggers grid densification before a relation is
// accepted.
const minSamples = 8

// Internal panic messages (no magic strings).
const (
	panicSamplesInvalid     = "opf: WithSamples: need at least 8 samples"
	panicMaxSamplesInvalid  = "opf: WithMaxSamples: need at least 8 samples"
	panicRootSamplesInvalid = "opf: WithRootSamples: need at least 2 samples"
	panicGridInvalid        = "opf: WithGrid: need finite 0 < lo < hi"
	panicFitTolInvalid      = "opf: WithFitTol: tolerance must be finite and positive"
	panicRefineInvalid      = "opf: WithRefineIters: iterations must be non-negative"
	panicWorkersInvalid     = "opf: WithWorkers: need at least one worker"
	panicEpsilonInvalid     = "opf: WithEpsilon: epsilon must be finite, non-negative"
)

// Options stores the effective solver configuration after applying Option
// setters. Zero values never reach the solver; construct via DefaultOptions
// or let Solve resolve ...Option against the defaults.
type Options struct {
	// Samples / MaxSamples control the adaptive elimination grid.
	Samples    int
	MaxSamples int
	// RootSamples controls the reference-magnitude sweep density.
	RootSamples int
	// GridLo / GridHi bound the global magnitude grid (per-unit).
	GridLo, GridHi float64
	// FitTol is the target residual bound for fitted relations.
	FitTol float64
	// RefineIters bounds the golden-section polish (0 disables it).
	RefineIters int
	// Workers bounds concurrent sibling-subtree elimination.
	Workers int
	// Epsilon is the interval-membership tolerance.
	Epsilon float64
}

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		Samples:     DefaultSamples,
		MaxSamples:  DefaultMaxSamples,
		RootSamples: DefaultRootSamples,
		GridLo:      DefaultGridLo,
		GridHi:      DefaultGridHi,
		FitTol:      DefaultFitTol,
		RefineIters: DefaultRefineIters,
		Workers:     DefaultWorkers,
		Epsilon:     DefaultEpsilon,
	}
}

// Option mutates Options. Constructors panic only on nonsensical values.
type Option func(*Options)

// WithSamples sets the initial elimination grid density (≥ 8).
func WithSamples(n int) Option {
	if n < minSamples {
		panic(panicSamplesInvalid)
	}

	return func(o *Options) { o.Samples = n }
}

// WithMaxSamples caps the adaptive elimination density (≥ 8; raised to
// Samples when set lower).
func WithMaxSamples(n int) Option {
	if n < minSamples {
		panic(panicMaxSamplesInvalid)
	}

	return func(o *Options) { o.MaxSamples = n }
}

// WithRootSamples sets the reference-sweep density (≥ 2).
func WithRootSamples(n int) Option {
	if n < 2 {
		panic(panicRootSamplesInvalid)
	}

	return func(o *Options) { o.RootSamples = n }
}

// WithGrid bounds the global voltage-magnitude grid; requires finite
// 0 < lo < hi. Relations are only representable inside this interval, so
// widen it when bus magnitude bounds exceed [0.5, 1.5] per-unit.
func WithGrid(lo, hi float64) Option {
	if math.IsNaN(lo) || math.IsInf(lo, 0) || math.IsNaN(hi) || math.IsInf(hi, 0) || lo <= 0 || lo >= hi {
		panic(panicGridInvalid)
	}

	return func(o *Options) {
		o.GridLo = lo
		o.GridHi = hi
	}
}

// WithFitTol sets the target residual bound for fitted relations.
func WithFitTol(tol float64) Option {
	if math.IsNaN(tol) || math.IsInf(tol, 0) || tol <= 0 {
		panic(panicFitTolInvalid)
	}

	return func(o *Options) { o.FitTol = tol }
}

// WithRefineIters bounds the golden-section polish; 0 disables it.
func WithRefineIters(n int) Option {
	if n < 0 {
		panic(panicRefineInvalid)
	}

	return func(o *Options) { o.RefineIters = n }
}

// WithWorkers bounds concurrent sibling-subtree elimination (≥ 1).
// Results are identical for any worker count.
func WithWorkers(n int) Option {
	if n < 1 {
		panic(panicWorkersInvalid)
	}

	return func(o *Options) { o.Workers = n }
}

// WithEpsilon sets the interval-membership tolerance.
func WithEpsilon(eps float64) Option {
	if math.IsNaN(eps) || math.IsInf(eps, 0) || eps < 0 {
		panic(panicEpsilonInvalid)
	}

	return func(o *Options) { o.Epsilon = eps }
}

// gatherOptions resolves setters against defaults (last-writer-wins) and
// enforces cross-field invariants in one place.
func gatherOptions(user ...Option) Options {
	o := DefaultOptions()
	for _, set := range user {
		set(&o)
	}
	// The budget can never undercut the initial density.
	if o.MaxSamples < o.Samples {
		o.MaxSamples = o.Samples
	}

	return o
}
