package opf

import (
	"fmt"
	"math"
	"math/cmplx"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/lvlopf/radial"
	"github.com/katalvlaran/lvlopf/spline"
)

// Root-finding parameters for internal-bus relations.
const (
	// scanPoints is the descending grid used to bracket the high-voltage
	// root of the consistency equation.
	scanPoints = 129
	// bisectIters narrows a bracket to ~2^-64 of its width.
	bisectIters = 64
)

// relation is the fitted feasible relation of one non-root bus. Every
// stored curve is a function of x, the voltage magnitude at the bus's
// parent-facing terminal; rotation covariance of the branch equations makes
// this single real parameter sufficient. The relation covers x ∈ [lo, hi];
// outside it the subtree has no feasible configuration.
type relation struct {
	lo, hi float64

	m            *spline.Curve // own voltage magnitude |v_c|(x)
	vre, vim     *spline.Curve // own voltage phasor, parent voltage taken real
	supRe, supIm *spline.Curve // complex power delivered into the parent terminal
	q            *spline.Curve // PV reactive injection q(x); nil otherwise

	residual float64 // largest residual bound across the fitted curves
}

// localPoint is one solved elimination sample at parent magnitude x.
type localPoint struct {
	x    float64
	m    float64
	vrel complex128
	sup  complex128
	q    float64
	ok   bool
}

// solver carries per-solve state: immutable inputs (tree, catalog,
// options) plus the relations and warnings produced along the way.
type solver struct {
	tree *radial.Tree
	cat  []busConstraint
	opts Options

	rel        []*relation
	warnsByBus [][]Warning
}

// eliminate collapses every non-root subtree bottom-up. Buses on the same
// depth level head disjoint subtrees, so a level may be processed
// concurrently once all deeper levels are done; each bus writes only its
// own slot, which keeps the outcome schedule-independent.
func (s *solver) eliminate() error {
	for _, level := range s.tree.Levels() {
		g := new(errgroup.Group)
		g.SetLimit(s.opts.Workers)
		for _, bus := range level {
			if bus == s.tree.Root {
				continue
			}
			c := bus
			g.Go(func() error { return s.eliminateBus(c) })
		}
		if err := g.Wait(); err != nil {
			return err
		}
	}

	return nil
}

// eliminateBus samples bus c's feasible relation, adaptively doubling the
// grid density until the residual bound meets FitTol or the sample budget
// runs out — then the best fit is kept and a Warning attached (soft
// failure; only an empty feasible set at full budget is fatal).
//
// A thin surviving run densifies exactly like a coarse fit does: a narrow
// feasible window (a tight PV reactive box, say) can sit between grid
// points at low density, so too few survivors is a resolution problem
// first and an infeasibility verdict only once the budget is spent.
func (s *solver) eliminateBus(c int) error {
	n := s.opts.Samples
	for {
		rel, survived, err := s.sampleRelation(c, n)
		if err != nil {
			return err
		}
		next := 2*n - 1 // doubled density keeps the previous abscissae
		atBudget := next > s.opts.MaxSamples

		if survived < minSamples && !atBudget {
			n = next
			continue
		}
		if rel == nil {
			return fmt.Errorf("bus %d: %w", c, ErrInfeasibleSubtree)
		}
		if survived >= minSamples && rel.residual <= s.opts.FitTol {
			s.rel[c] = rel

			return nil
		}
		if atBudget {
			detail := fmt.Sprintf("residual %.3g above tolerance %.3g at %d samples", rel.residual, s.opts.FitTol, n)
			if survived < minSamples {
				detail = fmt.Sprintf("only %d feasible samples on a %d-point grid", survived, n)
			}
			s.rel[c] = rel
			s.warnsByBus[c] = append(s.warnsByBus[c], Warning{Kind: WarnApproximation, Bus: c, Detail: detail})

			return nil
		}
		n = next
	}
}

// sampleRelation solves bus c's local branch relation on an n-point parent
// magnitude grid and fits curves through the surviving samples. It reports
// how many samples survived; with fewer than two no curve can be fitted
// and the relation comes back nil.
func (s *solver) sampleRelation(c, n int) (*relation, int, error) {
	xs := make([]float64, n)
	floats.Span(xs, s.opts.GridLo, s.opts.GridHi)

	pts := make([]localPoint, n)
	for i, x := range xs {
		pts[i] = s.solveLocal(c, x)
		pts[i].x = x
	}

	// The feasible domain of a radial subtree is an interval; keep the
	// longest contiguous surviving run and discard stray roots beyond it.
	start, length := longestRun(pts)
	if length < 2 {
		return nil, length, nil
	}

	kx := make([]float64, 0, length)
	km := make([]float64, 0, length)
	kvre := make([]float64, 0, length)
	kvim := make([]float64, 0, length)
	ksre := make([]float64, 0, length)
	ksim := make([]float64, 0, length)
	kq := make([]float64, 0, length)
	for i := start; i < start+length; i++ {
		p := pts[i]
		kx = append(kx, p.x)
		km = append(km, p.m)
		kvre = append(kvre, real(p.vrel))
		kvim = append(kvim, imag(p.vrel))
		ksre = append(ksre, real(p.sup))
		ksim = append(ksim, imag(p.sup))
		kq = append(kq, p.q)
	}

	rel := &relation{lo: kx[0], hi: kx[len(kx)-1]}
	var err error
	if rel.m, err = spline.Fit(kx, km); err != nil {
		return nil, length, fmt.Errorf("bus %d: %w", c, err)
	}
	if rel.vre, err = spline.Fit(kx, kvre); err != nil {
		return nil, length, fmt.Errorf("bus %d: %w", c, err)
	}
	if rel.vim, err = spline.Fit(kx, kvim); err != nil {
		return nil, length, fmt.Errorf("bus %d: %w", c, err)
	}
	if rel.supRe, err = spline.Fit(kx, ksre); err != nil {
		return nil, length, fmt.Errorf("bus %d: %w", c, err)
	}
	if rel.supIm, err = spline.Fit(kx, ksim); err != nil {
		return nil, length, fmt.Errorf("bus %d: %w", c, err)
	}
	curves := []*spline.Curve{rel.m, rel.vre, rel.vim, rel.supRe, rel.supIm}
	if s.cat[c].kind == busPV {
		if rel.q, err = spline.Fit(kx, kq); err != nil {
			return nil, length, fmt.Errorf("bus %d: %w", c, err)
		}
		curves = append(curves, rel.q)
	}
	for _, cu := range curves {
		if cu.Residual() > rel.residual {
			rel.residual = cu.Residual()
		}
	}

	return rel, length, nil
}

// solveLocal solves bus c's branch relation for one parent magnitude x:
// find the bus's own voltage and net power such that the branch equation
// toward the parent, the bus's own constraint, and every child relation
// hold simultaneously. A zero-value localPoint (ok=false) means the sample
// is physically invalid and is dropped from the relation.
func (s *solver) solveLocal(c int, x float64) localPoint {
	var (
		m, q float64
		n    complex128
		ok   bool
	)
	switch {
	case s.cat[c].kind == busPV:
		m, q, n, ok = s.solvePVLeaf(c, x)
	case s.tree.IsLeaf(c):
		m, n, ok = s.solvePQLeaf(c, x)
	default:
		m, n, ok = s.solveInternal(c, x)
	}
	if !ok {
		return localPoint{}
	}

	return s.finishPoint(c, x, m, q, n)
}

// finishPoint turns a solved local root (magnitude m, net power n) into
// the recorded sample: the bus voltage phasor with the parent voltage
// taken real, and the power delivered into the parent terminal.
//
// Derivation: with upward current I = conj(n)/conj(v) and branch equation
// v = x + z·I, multiplying by conj(v) gives conj(v) = (m² − z·conj(n))/x.
func (s *solver) finishPoint(c int, x, m, q float64, n complex128) localPoint {
	z := s.tree.Z[c]
	vrel := cmplx.Conj((complex(m*m, 0) - z*cmplx.Conj(n)) / complex(x, 0))
	if cmplx.Abs(vrel) < s.opts.Epsilon {
		return localPoint{}
	}
	sup := complex(x, 0) * n / vrel

	return localPoint{m: m, vrel: vrel, sup: sup, q: q, ok: true}
}

// solvePQLeaf solves the closed-form relation of a PQ leaf: the magnitude
// consistency equation |m² − z·conj(s)| = m·x reduces to a quadratic in
// m², of which the high-voltage root is taken.
func (s *solver) solvePQLeaf(c int, x float64) (float64, complex128, bool) {
	cst := &s.cat[c]
	w := s.tree.Z[c] * cmplx.Conj(cst.s)
	b := 2*real(w) + x*x
	w2 := real(w)*real(w) + imag(w)*imag(w)
	disc := b*b - 4*w2
	if disc < 0 {
		return 0, 0, false
	}
	u := 0.5 * (b + math.Sqrt(disc)) // high-voltage root
	if u <= 0 {
		return 0, 0, false
	}
	m := math.Sqrt(u)
	if m < cst.vmin-s.opts.Epsilon || m > cst.vmax+s.opts.Epsilon {
		return 0, 0, false
	}

	return m, cst.s, true
}

// solvePVLeaf solves the closed-form relation of a PV leaf: with the
// magnitude pinned at VSet, the same consistency equation becomes a
// quadratic in the reactive injection q.
func (s *solver) solvePVLeaf(c int, x float64) (float64, float64, complex128, bool) {
	cst := &s.cat[c]
	z := s.tree.Z[c]
	v := cst.vset

	// |A + Bq| = v·x with A = v² − z·p and B = i·z.
	a0 := complex(v*v, 0) - z*complex(cst.p, 0)
	b0 := complex(0, 1) * z
	qa := real(b0)*real(b0) + imag(b0)*imag(b0)
	qb := 2 * (real(a0)*real(b0) + imag(a0)*imag(b0))
	qc := real(a0)*real(a0) + imag(a0)*imag(a0) - v*v*x*x
	disc := qb*qb - 4*qa*qc
	if disc < 0 {
		return 0, 0, 0, false
	}
	sq := math.Sqrt(disc)

	// Citardauq split keeps both roots accurate: qa = |z|² is tiny, so the
	// naive formula would cancel catastrophically on the physical root.
	qbig := -0.5 * (qb + math.Copysign(sq, qb))
	var r1, r2 float64
	if qbig == 0 {
		r1, r2 = 0, 0
	} else {
		r1, r2 = qbig/qa, qc/qbig
	}

	q, ok := pickReactive(r1, r2, cst.qmin, cst.qmax, s.opts.Epsilon)
	if !ok {
		return 0, 0, 0, false
	}

	return v, q, complex(cst.p, q), true
}

// solveInternal solves the relation of an internal bus: the net power is
// its own fixed injection plus every child's fitted delivered power, both
// functions of the bus's own magnitude m, so the consistency equation is
// solved by bracketing the largest (high-voltage) root on a descending
// scan and narrowing by bisection.
func (s *solver) solveInternal(c int, x float64) (float64, complex128, bool) {
	cst := &s.cat[c]
	mLo, mHi := cst.vmin, cst.vmax
	if mLo < s.opts.GridLo {
		mLo = s.opts.GridLo
	}
	if mHi > s.opts.GridHi {
		mHi = s.opts.GridHi
	}
	for _, k := range s.tree.Children[c] {
		if r := s.rel[k]; r != nil {
			if r.lo > mLo {
				mLo = r.lo
			}
			if r.hi < mHi {
				mHi = r.hi
			}
		}
	}
	if mLo >= mHi {
		return 0, 0, false
	}

	gap := func(m float64) float64 { return s.internalGap(c, m, x) }
	step := (mHi - mLo) / float64(scanPoints-1)
	prevM := mHi
	prevG := gap(prevM)
	if prevG == 0 {
		return prevM, s.netPower(c, prevM), true
	}
	for i := 1; i < scanPoints; i++ {
		m := mHi - step*float64(i)
		g := gap(m)
		if g == 0 {
			return m, s.netPower(c, m), true
		}
		if (g < 0) != (prevG < 0) {
			root := bisect(gap, m, prevM, g)

			return root, s.netPower(c, root), true
		}
		prevM, prevG = m, g
	}

	return 0, 0, false
}

// internalGap is the scalar consistency equation g(m) = |m² − z·conj(N(m))| − m·x.
func (s *solver) internalGap(c int, m, x float64) float64 {
	n := s.netPower(c, m)
	d := complex(m*m, 0) - s.tree.Z[c]*cmplx.Conj(n)

	return cmplx.Abs(d) - m*x
}

// netPower is the net complex power entering bus c's terminal — its own
// injection plus every child subtree's delivered power (Kirchhoff's
// current law) — as a function of its own magnitude m.
func (s *solver) netPower(c int, m float64) complex128 {
	n := s.cat[c].s
	for _, k := range s.tree.Children[c] {
		r := s.rel[k]
		n += complex(r.supRe.At(m), r.supIm.At(m))
	}

	return n
}

// pickReactive chooses the admissible quadratic root of smaller magnitude;
// the huge companion root is an artifact of the tiny |z|² leading
// coefficient, not a physical operating point.
func pickReactive(r1, r2, qmin, qmax, eps float64) (float64, bool) {
	in1 := !math.IsNaN(r1) && r1 >= qmin-eps && r1 <= qmax+eps
	in2 := !math.IsNaN(r2) && r2 >= qmin-eps && r2 <= qmax+eps
	switch {
	case in1 && in2:
		if math.Abs(r1) <= math.Abs(r2) {
			return clampF(r1, qmin, qmax), true
		}

		return clampF(r2, qmin, qmax), true
	case in1:
		return clampF(r1, qmin, qmax), true
	case in2:
		return clampF(r2, qmin, qmax), true
	default:
		return 0, false
	}
}

// bisect narrows a sign-change bracket [a, b] of g to a root; ga is g(a).
func bisect(g func(float64) float64, a, b, ga float64) float64 {
	for i := 0; i < bisectIters; i++ {
		mid := 0.5 * (a + b)
		gm := g(mid)
		if gm == 0 {
			return mid
		}
		if (gm < 0) == (ga < 0) {
			a, ga = mid, gm
		} else {
			b = mid
		}
	}

	return 0.5 * (a + b)
}

// longestRun finds the longest contiguous run of surviving samples.
func longestRun(pts []localPoint) (start, length int) {
	curStart, curLen := 0, 0
	for i := range pts {
		if !pts[i].ok {
			curLen = 0
			continue
		}
		if curLen == 0 {
			curStart = i
		}
		curLen++
		if curLen > length {
			start, length = curStart, curLen
		}
	}

	return start, length
}

// clampF limits v to [lo, hi].
func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}

	return v
}
