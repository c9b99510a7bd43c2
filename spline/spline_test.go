package spline_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvlopf/spline"
)

// sinSamples returns n equispaced samples of sin over [0, 3].
func sinSamples(n int) (xs, ys []float64) {
	xs = make([]float64, n)
	ys = make([]float64, n)
	for i := 0; i < n; i++ {
		xs[i] = 3 * float64(i) / float64(n-1)
		ys[i] = math.Sin(xs[i])
	}

	return xs, ys
}

// TestFit_Rejections covers every construction failure mode.
func TestFit_Rejections(t *testing.T) {
	_, err := spline.Fit([]float64{1}, []float64{2})
	assert.ErrorIs(t, err, spline.ErrTooFewSamples, "single sample")

	_, err = spline.Fit([]float64{1, 2}, []float64{1})
	assert.ErrorIs(t, err, spline.ErrBadInput, "length mismatch")

	_, err = spline.Fit([]float64{1, 1}, []float64{0, 1})
	assert.ErrorIs(t, err, spline.ErrNotIncreasing, "duplicate abscissa")

	_, err = spline.Fit([]float64{2, 1}, []float64{0, 1})
	assert.ErrorIs(t, err, spline.ErrNotIncreasing, "decreasing abscissae")

	_, err = spline.Fit([]float64{0, math.NaN()}, []float64{0, 1})
	assert.ErrorIs(t, err, spline.ErrBadInput, "NaN abscissa")

	_, err = spline.Fit([]float64{0, 1}, []float64{0, math.Inf(1)})
	assert.ErrorIs(t, err, spline.ErrBadInput, "infinite ordinate")
}

// TestCurve_InterpolatesSamples verifies exact interpolation at the nodes.
func TestCurve_InterpolatesSamples(t *testing.T) {
	xs, ys := sinSamples(17)
	c, err := spline.Fit(xs, ys)
	require.NoError(t, err)

	for i := range xs {
		assert.InDelta(t, ys[i], c.At(xs[i]), 1e-12, "node %d", i)
	}
}

// TestCurve_AccuracyBetweenSamples checks midpoint accuracy on a smooth
// relation at a realistic density.
func TestCurve_AccuracyBetweenSamples(t *testing.T) {
	xs, ys := sinSamples(65)
	c, err := spline.Fit(xs, ys)
	require.NoError(t, err)

	for i := 0; i+1 < len(xs); i++ {
		mid := 0.5 * (xs[i] + xs[i+1])
		assert.InDelta(t, math.Sin(mid), c.At(mid), 1e-5, "interval %d", i)
	}
}

// TestCurve_ClampedEvaluation verifies end clamping outside the domain.
func TestCurve_ClampedEvaluation(t *testing.T) {
	c, err := spline.Fit([]float64{0, 1, 2}, []float64{5, 7, 6})
	require.NoError(t, err)

	assert.Equal(t, 5.0, c.At(-10), "below the domain")
	assert.Equal(t, 6.0, c.At(99), "above the domain")
	assert.Equal(t, 0.0, c.Lo())
	assert.Equal(t, 2.0, c.Hi())
}

// TestCurve_TwoSamplesIsChord verifies the degenerate linear case.
func TestCurve_TwoSamplesIsChord(t *testing.T) {
	c, err := spline.Fit([]float64{0, 2}, []float64{1, 5})
	require.NoError(t, err)

	assert.InDelta(t, 3.0, c.At(1), 1e-12, "midpoint of the chord")
	assert.Equal(t, 0.0, c.Residual(), "a chord has no curvature gap")
}

// TestCurve_ResidualMonotoneUnderRefinement is the approximation
// contract: denser sampling of a fixed smooth relation never increases
// the reported residual bound.
func TestCurve_ResidualMonotoneUnderRefinement(t *testing.T) {
	prev := math.Inf(1)
	for _, n := range []int{9, 17, 33, 65, 129} {
		xs, ys := sinSamples(n)
		c, err := spline.Fit(xs, ys)
		require.NoError(t, err)

		assert.LessOrEqual(t, c.Residual(), prev, "residual must not grow at n=%d", n)
		prev = c.Residual()
	}
	assert.Greater(t, prev, 0.0, "a curved relation keeps a positive bound")
}

// TestCurve_InvertRoundTrip verifies Invert on a monotone curve.
func TestCurve_InvertRoundTrip(t *testing.T) {
	xs := []float64{0, 0.5, 1, 1.5, 2}
	ys := make([]float64, len(xs))
	for i, x := range xs {
		ys[i] = math.Exp(x) // strictly increasing
	}
	c, err := spline.Fit(xs, ys)
	require.NoError(t, err)

	for _, y := range []float64{1.0, 1.7, 3.2, math.Exp(2)} {
		x, err := c.Invert(y)
		require.NoError(t, err)
		assert.InDelta(t, y, c.At(x), 1e-9, "round trip at y=%v", y)
	}
}

// TestCurve_InvertEndpoints hits the exact ends of the range, where the
// bisection sign test alone cannot bracket the root.
func TestCurve_InvertEndpoints(t *testing.T) {
	c, err := spline.Fit([]float64{0, 1, 2}, []float64{2, 5, 11})
	require.NoError(t, err)

	x, err := c.Invert(2)
	require.NoError(t, err)
	assert.Equal(t, 0.0, x, "lower end of the range")

	x, err = c.Invert(11)
	require.NoError(t, err)
	assert.Equal(t, 2.0, x, "upper end of the range")
}

// TestCurve_ReproducesQuadratics: centered interior tangents and the
// three-point end tangents are exact for quadratics, so the fitted cubic
// must reproduce one everywhere, end intervals included.
func TestCurve_ReproducesQuadratics(t *testing.T) {
	xs := []float64{0, 0.5, 1, 1.5, 2}
	ys := make([]float64, len(xs))
	for i, x := range xs {
		ys[i] = 3*x*x - 2*x + 1
	}
	c, err := spline.Fit(xs, ys)
	require.NoError(t, err)

	for i := 0; i <= 40; i++ {
		x := float64(i) * 0.05
		assert.InDelta(t, 3*x*x-2*x+1, c.At(x), 1e-12, "x=%v", x)
	}
}

// TestCurve_InvertDecreasing verifies inversion of a decreasing curve.
func TestCurve_InvertDecreasing(t *testing.T) {
	c, err := spline.Fit([]float64{0, 1, 2, 3}, []float64{9, 6, 4, 1})
	require.NoError(t, err)

	x, err := c.Invert(6)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, x, 1e-9)
}

// TestCurve_InvertRejections covers inversion failure modes.
func TestCurve_InvertRejections(t *testing.T) {
	bump, err := spline.Fit([]float64{0, 1, 2}, []float64{0, 1, 0})
	require.NoError(t, err)
	_, err = bump.Invert(0.5)
	assert.ErrorIs(t, err, spline.ErrNotMonotone, "non-monotone ordinates")

	mono, err := spline.Fit([]float64{0, 1, 2}, []float64{0, 1, 3})
	require.NoError(t, err)
	_, err = mono.Invert(5)
	assert.ErrorIs(t, err, spline.ErrOutOfRange, "target above range")
	_, err = mono.Invert(-1)
	assert.ErrorIs(t, err, spline.ErrOutOfRange, "target below range")
}
