package radial

import "errors"

// Sentinel errors for topology validation.
var (
	// ErrNilMatrix indicates a nil impedance matrix.
	ErrNilMatrix = errors.New("radial: impedance matrix must be non-nil")
	// ErrRootOutOfRange indicates a reference bus index outside [0, n).
	ErrRootOutOfRange = errors.New("radial: reference bus index out of range")
	// ErrNotATree indicates a nonzero pattern that is not a connected
	// spanning tree (wrong branch count, a cycle, or unreachable buses).
	ErrNotATree = errors.New("radial: impedance pattern must form a connected tree")
)

// Tree is the validated radial topology: an arena of bus records indexed
// by bus id, plus the bottom-up elimination order. All fields are derived
// once by BuildTree and never mutated afterwards.
type Tree struct {
	// N is the number of buses; Root is the reference bus index.
	N    int
	Root int

	// Parent[i] is bus i's parent index, −1 at the root.
	Parent []int
	// Z[i] is the impedance of bus i's parent branch, 0 at the root.
	Z []complex128
	// Children[i] lists bus i's children in ascending index order.
	Children [][]int
	// Depth[i] is the branch count from the root to bus i.
	Depth []int
	// Order is a post-order elimination sequence over all buses:
	// every bus appears only after all of its children.
	Order []int
}

// IsLeaf reports whether bus i has no children.
func (t *Tree) IsLeaf(i int) bool { return len(t.Children[i]) == 0 }
