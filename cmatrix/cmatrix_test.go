package cmatrix_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvlopf/cmatrix"
)

// TestNewSparse_BadOrder verifies that orders below 1 are rejected.
func TestNewSparse_BadOrder(t *testing.T) {
	_, err := cmatrix.NewSparse(0)
	assert.ErrorIs(t, err, cmatrix.ErrBadOrder, "order 0 must be rejected")

	_, err = cmatrix.NewSparse(-3)
	assert.ErrorIs(t, err, cmatrix.ErrBadOrder, "negative order must be rejected")
}

// TestSparse_SetRejections exercises every ingestion failure mode.
func TestSparse_SetRejections(t *testing.T) {
	m, err := cmatrix.NewSparse(3)
	require.NoError(t, err)

	assert.ErrorIs(t, m.Set(0, 3, 1+1i), cmatrix.ErrIndexOutOfRange, "column past n")
	assert.ErrorIs(t, m.Set(-1, 1, 1+1i), cmatrix.ErrIndexOutOfRange, "negative row")
	assert.ErrorIs(t, m.Set(1, 1, 1+1i), cmatrix.ErrDiagonalEntry, "diagonal write")
	assert.ErrorIs(t, m.Set(0, 1, 0), cmatrix.ErrZeroImpedance, "zero impedance")
	assert.ErrorIs(t, m.Set(0, 1, complex(math.NaN(), 0)), cmatrix.ErrNonFinite, "NaN real part")
	assert.ErrorIs(t, m.Set(0, 1, complex(0, math.Inf(1))), cmatrix.ErrNonFinite, "infinite imag part")
	assert.Equal(t, 0, m.NNZ(), "no rejected write may be stored")
}

// TestSparse_SymmetricAccess verifies that Set and At ignore orientation.
func TestSparse_SymmetricAccess(t *testing.T) {
	m, err := cmatrix.NewSparse(4)
	require.NoError(t, err)

	require.NoError(t, m.Set(2, 0, 0.5+0.25i))
	assert.Equal(t, 0.5+0.25i, m.At(0, 2), "upper-triangle read")
	assert.Equal(t, 0.5+0.25i, m.At(2, 0), "lower-triangle read")
	assert.Equal(t, complex128(0), m.At(1, 3), "absent branch reads zero")
	assert.Equal(t, complex128(0), m.At(1, 1), "diagonal reads zero")
	assert.Equal(t, complex128(0), m.At(0, 9), "out-of-range reads zero")

	// Overwriting through the other orientation updates the same cell.
	require.NoError(t, m.Set(0, 2, 1-1i))
	assert.Equal(t, 1-1i, m.At(2, 0))
	assert.Equal(t, 1, m.NNZ())
}

// TestSparse_EdgesDeterministic verifies the lexicographic edge order.
func TestSparse_EdgesDeterministic(t *testing.T) {
	m, err := cmatrix.NewSparse(5)
	require.NoError(t, err)

	require.NoError(t, m.Set(3, 1, 2i))
	require.NoError(t, m.Set(4, 0, 1i))
	require.NoError(t, m.Set(2, 1, 3i))

	want := []cmatrix.EdgeZ{
		{I: 0, J: 4, Z: 1i},
		{I: 1, J: 2, Z: 3i},
		{I: 1, J: 3, Z: 2i},
	}
	for i := 0; i < 10; i++ {
		assert.Equal(t, want, m.Edges(), "edge order must be stable across calls")
	}
}
