// Package radial validates a restricted radial network's topology and
// derives the structures every later solver stage relies on.
//
// 🚀 What does it do?
//
//	Given a sparse symmetric impedance matrix and a reference (root) bus,
//	BuildTree checks that the nonzero pattern forms a connected tree with
//	exactly n−1 branches and produces:
//	  • Parent   — parent-pointer array (−1 at the root)
//	  • Z        — the impedance of each bus's parent branch
//	  • Children — sorted child lists per bus
//	  • Order    — a post-order elimination sequence: every bus appears
//	    only after all of its children
//	  • Depth / Levels — distance from the root, and buses grouped by
//	    depth (deepest first) for level-parallel elimination
//
// The tree is an arena of integer-indexed records rather than a pointer
// graph: parents and children are plain indices, and the elimination
// order is a precomputed index slice.
//
// ⚙️ Usage:
//
//	z, _ := cmatrix.NewSparse(5)
//	_ = z.Set(0, 1, 0.0017+0.0003i)
//	_ = z.Set(0, 2, 0.0006+0.0001i)
//	_ = z.Set(2, 3, 0.0007+0.0003i)
//	_ = z.Set(2, 4, 0.0009+0.0005i)
//
//	tree, err := radial.BuildTree(z, 0)
//	if err != nil {
//	  // ErrNotATree, ErrRootOutOfRange, ErrNilMatrix
//	}
//	for _, bus := range tree.Order { // children always precede parents
//	  ...
//	}
//
// Complexity: O(n + e·log e) time, O(n) space. Pure validation plus
// derived structure; no side effects.
package radial
