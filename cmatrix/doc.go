// Package cmatrix provides the sparse symmetric complex matrix that carries
// a radial network's branch impedances into the solver.
//
// A nonzero entry (i, j) is the complex impedance of the branch between
// buses i and j. The matrix is symmetric by construction: Set(i, j, z) and
// Set(j, i, z) write the same storage cell, and At reads either orientation.
// The diagonal is structurally zero — a bus has no impedance to itself —
// and writes to it are rejected.
//
// Validation happens at ingestion, so downstream packages never see a zero
// or non-finite impedance:
//   - z == 0            → ErrZeroImpedance
//   - NaN/±Inf in z     → ErrNonFinite
//   - i == j            → ErrDiagonalEntry
//   - index out of 0..n → ErrIndexOutOfRange
//
// Edges() returns the nonzero upper-triangle entries in lexicographic
// (i, j) order, so every traversal of the same matrix is deterministic.
//
// ⚙️ Usage:
//
//	z, err := cmatrix.NewSparse(5)
//	if err != nil { ... }
//	_ = z.Set(0, 1, 0.0017+0.0003i)
//	_ = z.Set(0, 2, 0.0006+0.0001i)
//	for _, e := range z.Edges() {
//	  fmt.Println(e.I, e.J, e.Z)
//	}
//
// Complexity: Set/At are O(1) amortized; Edges is O(nnz·log nnz).
package cmatrix
