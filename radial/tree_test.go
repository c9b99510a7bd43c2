package radial_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvlopf/cmatrix"
	"github.com/katalvlaran/lvlopf/radial"
)

// feeder builds the five-bus test network:
//
//	0───1
//	0───2, 2───3, 2───4
func feeder(t *testing.T) *cmatrix.Sparse {
	t.Helper()
	z, err := cmatrix.NewSparse(5)
	require.NoError(t, err)
	require.NoError(t, z.Set(0, 1, 0.0017+0.0003i))
	require.NoError(t, z.Set(0, 2, 0.0006+0.0001i))
	require.NoError(t, z.Set(2, 3, 0.0007+0.0003i))
	require.NoError(t, z.Set(2, 4, 0.0009+0.0005i))

	return z
}

// TestBuildTree_NilMatrix verifies ErrNilMatrix.
func TestBuildTree_NilMatrix(t *testing.T) {
	_, err := radial.BuildTree(nil, 0)
	assert.ErrorIs(t, err, radial.ErrNilMatrix)
}

// TestBuildTree_RootOutOfRange verifies root index validation.
func TestBuildTree_RootOutOfRange(t *testing.T) {
	z := feeder(t)
	_, err := radial.BuildTree(z, 5)
	assert.ErrorIs(t, err, radial.ErrRootOutOfRange)
	_, err = radial.BuildTree(z, -1)
	assert.ErrorIs(t, err, radial.ErrRootOutOfRange)
}

// TestBuildTree_Cycle rejects a cyclic pattern (3 buses, 3 branches).
func TestBuildTree_Cycle(t *testing.T) {
	z, err := cmatrix.NewSparse(3)
	require.NoError(t, err)
	require.NoError(t, z.Set(0, 1, 1i))
	require.NoError(t, z.Set(1, 2, 1i))
	require.NoError(t, z.Set(0, 2, 1i))

	_, err = radial.BuildTree(z, 0)
	assert.ErrorIs(t, err, radial.ErrNotATree)
}

// TestBuildTree_Disconnected rejects a pattern with n−1 branches that
// still leaves buses unreachable (cycle in one component, island in another).
func TestBuildTree_Disconnected(t *testing.T) {
	z, err := cmatrix.NewSparse(5)
	require.NoError(t, err)
	require.NoError(t, z.Set(0, 1, 1i))
	require.NoError(t, z.Set(2, 3, 1i))
	require.NoError(t, z.Set(3, 4, 1i))
	require.NoError(t, z.Set(2, 4, 1i))

	_, err = radial.BuildTree(z, 0)
	assert.ErrorIs(t, err, radial.ErrNotATree)
}

// TestBuildTree_MissingBranch rejects too few branches.
func TestBuildTree_MissingBranch(t *testing.T) {
	z, err := cmatrix.NewSparse(4)
	require.NoError(t, err)
	require.NoError(t, z.Set(0, 1, 1i))
	require.NoError(t, z.Set(1, 2, 1i))

	_, err = radial.BuildTree(z, 0)
	assert.ErrorIs(t, err, radial.ErrNotATree)
}

// TestBuildTree_Feeder checks the derived structure of the five-bus feeder.
func TestBuildTree_Feeder(t *testing.T) {
	tree, err := radial.BuildTree(feeder(t), 0)
	require.NoError(t, err)

	assert.Equal(t, 5, tree.N)
	assert.Equal(t, 0, tree.Root)
	assert.Equal(t, []int{-1, 0, 0, 2, 2}, tree.Parent)
	assert.Equal(t, []int{0, 1, 1, 2, 2}, tree.Depth)
	assert.Equal(t, []int{1, 2}, tree.Children[0])
	assert.Equal(t, []int{3, 4}, tree.Children[2])
	assert.True(t, tree.IsLeaf(1))
	assert.True(t, tree.IsLeaf(3))
	assert.False(t, tree.IsLeaf(2))
	assert.Equal(t, 0.0007+0.0003i, tree.Z[3], "parent-branch impedance recorded per bus")
	assert.Equal(t, complex128(0), tree.Z[0], "root has no parent branch")
}

// TestBuildTree_OrderIsPostOrder verifies the elimination-order invariant:
// every bus appears only after all of its children.
func TestBuildTree_OrderIsPostOrder(t *testing.T) {
	tree, err := radial.BuildTree(feeder(t), 0)
	require.NoError(t, err)
	require.Len(t, tree.Order, tree.N)

	pos := make(map[int]int, tree.N)
	for i, bus := range tree.Order {
		pos[bus] = i
	}
	for bus, kids := range tree.Children {
		for _, c := range kids {
			assert.Less(t, pos[c], pos[bus], "child %d must precede parent %d", c, bus)
		}
	}
	assert.Equal(t, tree.Root, tree.Order[tree.N-1], "root is eliminated last")
}

// TestBuildTree_AlternateRoot re-roots the same pattern at a leaf.
func TestBuildTree_AlternateRoot(t *testing.T) {
	tree, err := radial.BuildTree(feeder(t), 3)
	require.NoError(t, err)

	assert.Equal(t, 3, tree.Root)
	assert.Equal(t, -1, tree.Parent[3])
	assert.Equal(t, 3, tree.Parent[2])
	assert.Equal(t, 2, tree.Parent[0])
	assert.Equal(t, []int{0, 4}, tree.Children[2])
}

// TestLevels groups buses by depth, deepest first.
func TestLevels(t *testing.T) {
	tree, err := radial.BuildTree(feeder(t), 0)
	require.NoError(t, err)

	levels := tree.Levels()
	require.Len(t, levels, 3)
	assert.Equal(t, []int{3, 4}, levels[0], "deepest level first")
	assert.Equal(t, []int{1, 2}, levels[1])
	assert.Equal(t, []int{0}, levels[2])
}

// TestBuildTree_SingleBus accepts the degenerate one-bus network.
func TestBuildTree_SingleBus(t *testing.T) {
	z, err := cmatrix.NewSparse(1)
	require.NoError(t, err)

	tree, err := radial.BuildTree(z, 0)
	require.NoError(t, err)
	assert.Equal(t, []int{0}, tree.Order)
	assert.True(t, tree.IsLeaf(0))
}
