// Package opf solves the optimal power-flow problem on restricted radial
// networks: trees of buses joined by nonzero complex impedances, with one
// reference bus (index 0, angle fixed at 0), PQ- or PV-typed leaves, and
// PQ-typed internal buses.
//
// 🚀 Algorithm outline:
//
//  1. Validate the topology (radial package) and the per-bus constraints.
//  2. Eliminate subtrees bottom-up: each non-root bus is collapsed into a
//     one-parameter feasible relation — its voltage magnitude, relative
//     voltage phasor and delivered power as functions of the parent
//     terminal's voltage magnitude. Rotation covariance of the branch
//     equations makes one real parameter sufficient; angles are restored
//     during back-substitution. Samples with no physically valid root are
//     dropped, which is exactly how bound constraints propagate upward.
//  3. Fit each sampled relation with cubic-Hermite curves (spline
//     package), adaptively doubling the sample density until the residual
//     bound meets the fit tolerance or the sample budget is exhausted
//     (then the best fit is kept and a Warning attached).
//  4. Combine the root's children by Kirchhoff's current law, sample the
//     reference voltage magnitude over its feasible interval, evaluate the
//     user objective once over the whole batch, and polish the best finite
//     sample with a bounded golden-section search.
//  5. Back-substitute top-down to recover every bus voltage and injection.
//
// ✨ Contracts:
//   - deterministic: identical inputs give identical outputs, serial or
//     parallel (WithWorkers only parallelizes independent sibling subtrees);
//   - structural errors (topology, constraints) surface before any numeric
//     work; mid-algorithm infeasibility names the offending bus;
//   - approximation shortfall and refinement non-convergence are soft:
//     a best-effort Solution with Warnings is preferred over failure.
//
// ⚙️ Usage:
//
//	obj := func(v, s *mat.CDense) []float64 { ... } // buses×samples in, one value per sample out
//	sol, err := opf.Solve(obj, z,
//	  []opf.PQSpec{{Bus: 2, S: -5 - 1i, VMin: 0.9, VMax: 1.1}},
//	  []opf.PVSpec{{Bus: 1, P: 4.9, VSet: 1.01, QMin: -10, QMax: 10}},
//	  opf.RefSpec{VMin: 0.93, VMax: 1.1, PMin: 0, PMax: 5, QMin: -10, QMax: 10},
//	)
//
// Returning math.Inf(1) from the objective marks a sample infeasible; if
// every sample is infeasible, Solve fails with ErrInfeasibleProblem.
//
// Complexity: elimination O(buses · samples · log samples), optimization
// O(buses · root samples) plus one vectorized objective call.
package opf
