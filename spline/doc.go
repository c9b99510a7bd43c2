// Package spline fits compact numerical stand-ins for sampled feasible
// relations: one-dimensional cubic-Hermite interpolants with Catmull-Rom
// tangents, plus a residual-error diagnostic.
//
// 🚀 Why a local cubic?
//
//	The relations produced by subtree elimination are smooth but have no
//	closed form. A local Hermite cubic interpolates every sample exactly,
//	needs no linear solve, evaluates in O(log n), and degrades gracefully
//	to the chord when only two samples survive.
//
// ✨ Key operations:
//   - Fit(xs, ys)      — build the interpolant over strictly increasing xs
//   - (*Curve).At      — clamped evaluation anywhere on the domain
//   - (*Curve).Invert  — bisection inverse for monotone relations
//   - (*Curve).Residual — curvature-based interpolation-error estimate:
//     the maximum gap between the cubic and the chord at interval
//     midpoints. Refining the sample density of a fixed smooth relation
//     never increases this bound (tested property).
//
// ⚙️ Usage:
//
//	c, err := spline.Fit(xs, ys)
//	if err != nil {
//	  // ErrTooFewSamples, ErrNotIncreasing, ErrBadInput
//	}
//	y := c.At(1.003)
//	x, err := c.Invert(y) // monotone curves only
//
// Complexity: Fit O(n), At/Invert O(log n) per call, Residual O(1)
// (precomputed during Fit).
package spline
