package cmatrix

import (
	"errors"
	"math"
	"sort"
)

// Sentinel errors for impedance-matrix construction.
var (
	// ErrBadOrder indicates a requested matrix order below 1.
	ErrBadOrder = errors.New("cmatrix: matrix order must be at least 1")
	// ErrIndexOutOfRange indicates a row or column index outside [0, n).
	ErrIndexOutOfRange = errors.New("cmatrix: index out of range")
	// ErrDiagonalEntry indicates a write to the (structurally zero) diagonal.
	ErrDiagonalEntry = errors.New("cmatrix: diagonal entries must stay zero")
	// ErrZeroImpedance indicates an attempt to store a zero impedance.
	ErrZeroImpedance = errors.New("cmatrix: branch impedance must be nonzero")
	// ErrNonFinite indicates an impedance with a NaN or infinite component.
	ErrNonFinite = errors.New("cmatrix: branch impedance must be finite")
)

// EdgeZ is one nonzero upper-triangle entry of a Sparse matrix:
// the branch between buses I and J (I < J) with impedance Z.
type EdgeZ struct {
	I, J int
	Z    complex128
}

// Sparse is an n×n symmetric complex sparse matrix with a zero diagonal.
// Storage is the upper triangle only; both (i,j) and (j,i) resolve to the
// same cell. The zero value is not usable; construct via NewSparse.
type Sparse struct {
	n    int
	data map[[2]int]complex128
}

// NewSparse returns an empty n×n symmetric sparse matrix.
// Returns ErrBadOrder when n < 1.
func NewSparse(n int) (*Sparse, error) {
	if n < 1 {
		return nil, ErrBadOrder
	}

	return &Sparse{n: n, data: make(map[[2]int]complex128)}, nil
}

// N returns the matrix order (the number of buses).
func (m *Sparse) N() int { return m.n }

// NNZ returns the number of stored (upper-triangle) nonzero entries.
func (m *Sparse) NNZ() int { return len(m.data) }

// Set stores impedance z on the branch between buses i and j.
// The write is symmetric: Set(i, j, z) and Set(j, i, z) are equivalent.
//
// Errors: ErrIndexOutOfRange, ErrDiagonalEntry, ErrZeroImpedance, ErrNonFinite.
func (m *Sparse) Set(i, j int, z complex128) error {
	if i < 0 || i >= m.n || j < 0 || j >= m.n {
		return ErrIndexOutOfRange
	}
	if i == j {
		return ErrDiagonalEntry
	}
	if z == 0 {
		return ErrZeroImpedance
	}
	if !isFinite(z) {
		return ErrNonFinite
	}
	m.data[key(i, j)] = z

	return nil
}

// At returns the impedance between buses i and j, or zero when the branch
// is absent. Reads outside [0, n) return zero rather than panicking, so
// callers may probe freely.
func (m *Sparse) At(i, j int) complex128 {
	if i < 0 || i >= m.n || j < 0 || j >= m.n || i == j {
		return 0
	}

	return m.data[key(i, j)]
}

// Edges returns every stored branch as an upper-triangle EdgeZ slice,
// sorted lexicographically by (I, J). The order is stable across calls,
// which keeps all downstream traversals deterministic.
func (m *Sparse) Edges() []EdgeZ {
	out := make([]EdgeZ, 0, len(m.data))
	for k, z := range m.data {
		out = append(out, EdgeZ{I: k[0], J: k[1], Z: z})
	}
	sort.Slice(out, func(a, b int) bool {
		if out[a].I != out[b].I {
			return out[a].I < out[b].I
		}

		return out[a].J < out[b].J
	})

	return out
}

// key normalizes an index pair to the upper triangle (smaller index first).
func key(i, j int) [2]int {
	if i > j {
		i, j = j, i
	}

	return [2]int{i, j}
}

// isFinite reports whether both components of z are finite numbers.
func isFinite(z complex128) bool {
	re, im := real(z), imag(z)

	return !math.IsNaN(re) && !math.IsInf(re, 0) && !math.IsNaN(im) && !math.IsInf(im, 0)
}
