package opf

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// ErrConstraint is the umbrella sentinel for every malformed-constraint
// failure; the specific sentinels below all wrap it, so callers may match
// either the family or the exact cause with errors.Is.
var ErrConstraint = errors.New("opf: invalid bus constraints")

// Constraint-catalog sentinels (all wrap ErrConstraint).
var (
	// ErrDuplicateBus indicates a bus declared in more than one of the
	// PQ / PV / reference roles.
	ErrDuplicateBus = fmt.Errorf("%w: bus declared in more than one role", ErrConstraint)
	// ErrUnknownBus indicates a PQ or PV row referencing a bus outside the tree.
	ErrUnknownBus = fmt.Errorf("%w: declared bus does not exist", ErrConstraint)
	// ErrInvertedBounds indicates an interval with min > max (or a negative
	// magnitude lower bound).
	ErrInvertedBounds = fmt.Errorf("%w: interval lower bound exceeds upper bound", ErrConstraint)
	// ErrInternalPV indicates a PV declaration on a non-leaf bus; only
	// leaves may be PV in a restricted radial network.
	ErrInternalPV = fmt.Errorf("%w: only leaf buses may be PV", ErrConstraint)
	// ErrUndeclaredLeaf indicates a leaf bus with neither a PQ nor a PV
	// row; a leaf without a declaration has no defined injection.
	ErrUndeclaredLeaf = fmt.Errorf("%w: every leaf bus needs a PQ or PV declaration", ErrConstraint)
)

// Solver sentinels.
var (
	// ErrNilObjective indicates a nil objective callback.
	ErrNilObjective = errors.New("opf: objective callback must be non-nil")
	// ErrBadObjective indicates an objective returning the wrong number of values.
	ErrBadObjective = errors.New("opf: objective must return one value per sample")
	// ErrInfeasibleSubtree indicates a subtree whose feasible relation
	// collapsed to the empty set during elimination; the wrapping error
	// names the offending bus.
	ErrInfeasibleSubtree = errors.New("opf: subtree feasible set is empty")
	// ErrInfeasibleProblem indicates that no reference-bus sample yields a
	// finite objective value.
	ErrInfeasibleProblem = errors.New("opf: no sample yields a finite objective")
)

// PQSpec declares a PQ bus: a fixed complex power injection S (generation
// positive, load negative) and a voltage-magnitude interval [VMin, VMax].
// Internal buses are PQ-typed; an internal bus without a PQSpec defaults
// to zero injection with an unbounded magnitude interval.
type PQSpec struct {
	Bus  int
	S    complex128
	VMin float64
	VMax float64
}

// PVSpec declares a PV leaf bus: fixed real power P and voltage magnitude
// VSet, with the reactive power bounded to [QMin, QMax].
type PVSpec struct {
	Bus  int
	P    float64
	VSet float64
	QMin float64
	QMax float64
}

// RefSpec bounds the reference bus (bus 0, angle fixed at 0): voltage
// magnitude in [VMin, VMax], injected real power in [PMin, PMax] and
// injected reactive power in [QMin, QMax].
type RefSpec struct {
	VMin, VMax float64
	PMin, PMax float64
	QMin, QMax float64
}

// Objective is the user-supplied vectorized objective. v and s are
// buses×samples complex matrices of candidate voltages and injections; the
// callback must return exactly one real value per sample (column).
// Returning math.Inf(1) for a sample encodes an externally imposed
// infeasibility. The callback must be pure: same matrices, same values.
type Objective func(v, s *mat.CDense) []float64

// WarningKind classifies non-fatal solver diagnostics.
type WarningKind int

const (
	// WarnApproximation: a fitted relation's residual bound stayed above
	// the fit tolerance at the maximum sample budget; the best fit is used.
	WarnApproximation WarningKind = iota
	// WarnNoConvergence: local refinement did not improve on the best
	// sampled point within its iteration budget; the sampled point is used.
	WarnNoConvergence
	// WarnNumericInstability: an ill-conditioned inversion during
	// back-substitution; the result is still returned.
	WarnNumericInstability
)

// String returns a stable name for the warning kind.
func (k WarningKind) String() string {
	switch k {
	case WarnApproximation:
		return "approximation"
	case WarnNoConvergence:
		return "no-convergence"
	case WarnNumericInstability:
		return "numeric-instability"
	default:
		return "unknown"
	}
}

// Warning is a non-fatal diagnostic attached to a Solution. Bus is −1 when
// the warning is not tied to a particular bus.
type Warning struct {
	Kind   WarningKind
	Bus    int
	Detail string
}

// Solution is the solver output: per-bus voltage phasors V, per-bus complex
// injections S (both indexed by bus id), the achieved objective value, and
// any non-fatal diagnostics. The caller owns the slices.
type Solution struct {
	V        []complex128
	S        []complex128
	Optval   float64
	Warnings []Warning
}
