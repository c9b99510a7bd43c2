package spline

import (
	"math"
	"sort"
)

// invertIters bounds the bisection loop in Invert; 2^-96 of the domain
// span is far below any tolerance the solver works at.
const invertIters = 96

// Curve is a cubic-Hermite interpolant over strictly increasing sample
// abscissae. It interpolates every sample exactly; between samples it uses
// Catmull-Rom tangents (one-sided at the ends). Immutable once fitted.
type Curve struct {
	xs, ys []float64
	d      []float64 // tangent per sample
	res    float64   // residual bound, precomputed by Fit
}

// Fit builds a Curve through the given samples.
//
// Contracts:
//   - len(xs) == len(ys) ≥ 2, all values finite;
//   - xs strictly increasing.
//
// With exactly two samples the curve degrades to the chord.
//
// Errors: ErrTooFewSamples, ErrNotIncreasing, ErrBadInput.
//
// Complexity: O(n) time, O(n) space.
func Fit(xs, ys []float64) (*Curve, error) {
	n := len(xs)
	if n < 2 {
		return nil, ErrTooFewSamples
	}
	if len(ys) != n {
		return nil, ErrBadInput
	}
	for i := 0; i < n; i++ {
		if isNonFinite(xs[i]) || isNonFinite(ys[i]) {
			return nil, ErrBadInput
		}
		if i > 0 && xs[i] <= xs[i-1] {
			return nil, ErrNotIncreasing
		}
	}

	c := &Curve{
		xs: append([]float64(nil), xs...),
		ys: append([]float64(nil), ys...),
		d:  make([]float64, n),
	}

	// Catmull-Rom tangents: centered differences inside, second-order
	// three-point estimates at the ends (a plain end chord is only
	// first-order and visibly degrades the outermost intervals).
	if n == 2 {
		chord := (ys[1] - ys[0]) / (xs[1] - xs[0])
		c.d[0], c.d[1] = chord, chord
	} else {
		c.d[0] = endTangent(xs[0], xs[1], xs[2], ys[0], ys[1], ys[2])
		c.d[n-1] = endTangent(xs[n-1], xs[n-2], xs[n-3], ys[n-1], ys[n-2], ys[n-3])
	}
	for i := 1; i < n-1; i++ {
		c.d[i] = (ys[i+1] - ys[i-1]) / (xs[i+1] - xs[i-1])
	}

	// Residual bound: the largest midpoint gap between the cubic and the
	// chord. For a smooth relation this shrinks with the sample spacing,
	// so denser sampling never reports a larger bound.
	for i := 0; i+1 < n; i++ {
		mid := 0.5 * (xs[i] + xs[i+1])
		chord := 0.5 * (ys[i] + ys[i+1])
		if gap := math.Abs(c.eval(i, mid) - chord); gap > c.res {
			c.res = gap
		}
	}

	return c, nil
}

// At evaluates the curve at x. Arguments outside the fitted domain are
// clamped to the nearest end, so extrapolation never extrapolates.
func (c *Curve) At(x float64) float64 {
	n := len(c.xs)
	if x <= c.xs[0] {
		return c.ys[0]
	}
	if x >= c.xs[n-1] {
		return c.ys[n-1]
	}
	// Largest i with xs[i] <= x; sort.SearchFloat64s returns the first
	// index with xs[idx] >= x.
	i := sort.SearchFloat64s(c.xs, x)
	if c.xs[i] > x {
		i--
	}
	if i == n-1 {
		i--
	}

	return c.eval(i, x)
}

// Invert returns the x with At(x) == y for a strictly monotone curve,
// by bracketing bisection over the full domain.
//
// Errors: ErrNotMonotone when the sampled ordinates are not strictly
// monotone, ErrOutOfRange when y lies outside the curve's range.
//
// Complexity: O(log n) per bisection step, fixed step budget.
func (c *Curve) Invert(y float64) (float64, error) {
	n := len(c.ys)
	increasing := c.ys[n-1] > c.ys[0]
	for i := 1; i < n; i++ {
		step := c.ys[i] - c.ys[i-1]
		if step == 0 || (step > 0) != increasing {
			return 0, ErrNotMonotone
		}
	}

	lo, hi := c.ys[0], c.ys[n-1]
	if !increasing {
		lo, hi = hi, lo
	}
	if y < lo || y > hi {
		return 0, ErrOutOfRange
	}

	a, b := c.xs[0], c.xs[len(c.xs)-1]
	fa := c.At(a) - y
	// An exact endpoint hit breaks the sign test below: fa == 0 matches
	// every interior sign, so the bracket would walk to the wrong end.
	if fa == 0 {
		return a, nil
	}
	if c.At(b) == y {
		return b, nil
	}
	for iter := 0; iter < invertIters && b-a > 0; iter++ {
		m := 0.5 * (a + b)
		fm := c.At(m) - y
		if fm == 0 {
			return m, nil
		}
		if (fa < 0) == (fm < 0) {
			a, fa = m, fm
		} else {
			b = m
		}
	}

	return 0.5 * (a + b), nil
}

// Residual returns the interpolation-error bound computed during Fit.
func (c *Curve) Residual() float64 { return c.res }

// Lo returns the lower end of the fitted domain.
func (c *Curve) Lo() float64 { return c.xs[0] }

// Hi returns the upper end of the fitted domain.
func (c *Curve) Hi() float64 { return c.xs[len(c.xs)-1] }

// endTangent is the second-order one-sided derivative estimate at x0 from
// the three nearest samples (Lagrange differentiation at x0).
func endTangent(x0, x1, x2, y0, y1, y2 float64) float64 {
	return y0*(2*x0-x1-x2)/((x0-x1)*(x0-x2)) +
		y1*(x0-x2)/((x1-x0)*(x1-x2)) +
		y2*(x0-x1)/((x2-x0)*(x2-x1))
}

// eval computes the Hermite cubic on interval i at x.
func (c *Curve) eval(i int, x float64) float64 {
	h := c.xs[i+1] - c.xs[i]
	t := (x - c.xs[i]) / h
	t2 := t * t
	t3 := t2 * t
	h00 := 2*t3 - 3*t2 + 1
	h10 := t3 - 2*t2 + t
	h01 := -2*t3 + 3*t2
	h11 := t3 - t2

	return h00*c.ys[i] + h10*h*c.d[i] + h01*c.ys[i+1] + h11*h*c.d[i+1]
}

// isNonFinite reports NaN or ±Inf.
func isNonFinite(v float64) bool {
	return math.IsNaN(v) || math.IsInf(v, 0)
}
