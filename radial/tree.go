package radial

import (
	"github.com/katalvlaran/lvlopf/cmatrix"
)

// BuildTree validates the impedance pattern of z as a tree rooted at root
// and derives parent pointers, child lists, depths and the post-order
// elimination sequence.
//
// Contracts:
//   - z must be non-nil with exactly n−1 stored branches.
//   - every bus must be reachable from root through stored branches.
//
// Errors: ErrNilMatrix, ErrRootOutOfRange, ErrNotATree.
//
// Determinism: adjacency lists are built from the sorted Edges() view, so
// Children, Depth and Order are identical across runs.
//
// Complexity: O(n + e·log e) time, O(n) space.
func BuildTree(z *cmatrix.Sparse, root int) (*Tree, error) {
	if z == nil {
		return nil, ErrNilMatrix
	}
	n := z.N()
	if root < 0 || root >= n {
		return nil, ErrRootOutOfRange
	}

	edges := z.Edges()
	// A connected graph on n vertices with n−1 edges is a tree; any other
	// count is either disconnected or cyclic.
	if len(edges) != n-1 {
		return nil, ErrNotATree
	}

	// Adjacency lists in ascending neighbor order (Edges is sorted, and
	// appends preserve that order per endpoint).
	adj := make([][]int, n)
	for _, e := range edges {
		adj[e.I] = append(adj[e.I], e.J)
		adj[e.J] = append(adj[e.J], e.I)
	}

	t := &Tree{
		N:        n,
		Root:     root,
		Parent:   make([]int, n),
		Z:        make([]complex128, n),
		Children: make([][]int, n),
		Depth:    make([]int, n),
		Order:    make([]int, 0, n),
	}
	for i := range t.Parent {
		t.Parent[i] = -1
	}

	// BFS from the root assigns parents and depths; with exactly n−1
	// edges, full reach proves the pattern is a tree.
	visited := make([]bool, n)
	visited[root] = true
	queue := []int{root}
	seen := 1
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		for _, v := range adj[u] {
			if visited[v] {
				continue
			}
			visited[v] = true
			seen++
			t.Parent[v] = u
			t.Z[v] = z.At(u, v)
			t.Depth[v] = t.Depth[u] + 1
			t.Children[u] = append(t.Children[u], v)
			queue = append(queue, v)
		}
	}
	if seen != n {
		return nil, ErrNotATree
	}

	// Post-order via the reversed-preorder trick: pop a bus, record it,
	// push its children; reversing the record yields children-first order.
	stack := []int{root}
	rev := make([]int, 0, n)
	for len(stack) > 0 {
		u := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		rev = append(rev, u)
		stack = append(stack, t.Children[u]...)
	}
	for i := n - 1; i >= 0; i-- {
		t.Order = append(t.Order, rev[i])
	}

	return t, nil
}

// Levels groups buses by depth, deepest level first. Buses within a level
// head independent subtrees below their parents, so a whole level may be
// eliminated concurrently once every deeper level is done.
func (t *Tree) Levels() [][]int {
	maxDepth := 0
	for _, d := range t.Depth {
		if d > maxDepth {
			maxDepth = d
		}
	}
	levels := make([][]int, maxDepth+1)
	for i := 0; i < t.N; i++ {
		d := t.Depth[i]
		levels[d] = append(levels[d], i)
	}
	// Deepest first.
	for l, r := 0, len(levels)-1; l < r; l, r = l+1, r-1 {
		levels[l], levels[r] = levels[r], levels[l]
	}

	return levels
}
