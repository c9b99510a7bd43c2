package opf

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// invphi is 1/φ, the golden-section interior-point ratio.
const invphi = 0.6180339887498949

// optimize searches the reference magnitude interval for the candidate
// minimizing the user objective: dense grid scan over the full batch
// first, then golden-section refinement over the two sample intervals
// flanking the grid minimum. Returns the chosen root magnitude and
// objective value.
func (s *solver) optimize(obj Objective) (bestX, bestVal float64, warns []Warning, err error) {
	root := s.tree.Root
	lo, hi := s.cat[root].vmin, s.cat[root].vmax
	for _, k := range s.tree.Children[root] {
		r := s.rel[k]
		if r.lo > lo {
			lo = r.lo
		}
		if r.hi < hi {
			hi = r.hi
		}
	}
	if lo >= hi {
		return 0, 0, nil, ErrInfeasibleProblem
	}

	xs := make([]float64, s.opts.RootSamples)
	floats.Span(xs, lo, hi)
	v, sm, feasible := s.evaluateBatch(xs)
	vals := obj(v, sm)
	if len(vals) != len(xs) {
		return 0, 0, nil, fmt.Errorf("%w: got %d values for %d candidates", ErrBadObjective, len(vals), len(xs))
	}
	masked := make([]float64, len(xs))
	for j, val := range vals {
		if feasible[j] && !math.IsNaN(val) {
			masked[j] = val
		} else {
			masked[j] = math.Inf(1)
		}
	}
	best := floats.MinIdx(masked)
	bestVal = masked[best]
	if math.IsInf(bestVal, 1) {
		return 0, 0, nil, ErrInfeasibleProblem
	}
	bestX = xs[best]

	if s.opts.RefineIters == 0 {
		return bestX, bestVal, nil, nil
	}

	// One-column re-evaluations around the grid minimum; infeasible or
	// non-finite probes count as +Inf so the bracket pulls away from them.
	probe := func(x float64) float64 {
		pv, ps, pf := s.evaluateBatch([]float64{x})
		if !pf[0] {
			return math.Inf(1)
		}
		out := obj(pv, ps)
		if len(out) != 1 || math.IsNaN(out[0]) {
			return math.Inf(1)
		}

		return out[0]
	}

	a := xs[max(best-1, 0)]
	b := xs[min(best+1, len(xs)-1)]
	c := b - invphi*(b-a)
	d := a + invphi*(b-a)
	fc, fd := probe(c), probe(d)
	for i := 2; i < s.opts.RefineIters; i++ {
		if fc < fd {
			b, d, fd = d, c, fc
			c = b - invphi*(b-a)
			fc = probe(c)
		} else {
			a, c, fc = c, d, fd
			d = a + invphi*(b-a)
			fd = probe(d)
		}
	}

	improved := false
	if fc < bestVal {
		bestX, bestVal = c, fc
		improved = true
	}
	if fd < bestVal {
		bestX, bestVal = d, fd
		improved = true
	}
	if !improved {
		warns = append(warns, Warning{
			Kind:   WarnNoConvergence,
			Bus:    root,
			Detail: fmt.Sprintf("refinement did not improve on the sampled minimum at %.6g", bestX),
		})
	}

	return bestX, bestVal, warns, nil
}
