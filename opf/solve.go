package opf

import (
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/lvlopf/cmatrix"
	"github.com/katalvlaran/lvlopf/radial"
)

// Solve computes an optimal operating point of the radial network whose
// branch impedances are given by z, with bus 0 as the reference. The
// objective receives candidate voltage and injection profiles as
// buses×candidates column batches and returns one value per column;
// +Inf or NaN discards a candidate.
//
// Topology errors surface first, constraint errors next, and numeric
// infeasibility (ErrInfeasibleSubtree, ErrInfeasibleProblem) only after
// the inputs are known to be well-formed. Approximation and refinement
// shortfalls are reported as Warnings on the Solution, not as errors.
func Solve(obj Objective, z *cmatrix.Sparse, pq []PQSpec, pv []PVSpec, ref RefSpec, opts ...Option) (*Solution, error) {
	if obj == nil {
		return nil, ErrNilObjective
	}
	o := gatherOptions(opts...)

	tree, err := radial.BuildTree(z, 0)
	if err != nil {
		return nil, err
	}
	cat, err := buildCatalog(tree, pq, pv, ref)
	if err != nil {
		return nil, err
	}

	s := &solver{
		tree:       tree,
		cat:        cat,
		opts:       o,
		rel:        make([]*relation, tree.N),
		warnsByBus: make([][]Warning, tree.N),
	}
	if err := s.eliminate(); err != nil {
		return nil, err
	}

	bestX, _, optWarns, err := s.optimize(obj)
	if err != nil {
		return nil, err
	}
	vs, ss, subWarns := s.backSubstitute(bestX)

	// Optval is the objective applied to the returned profile itself, so
	// the reported value and the reported vectors cannot drift apart.
	vm := mat.NewCDense(tree.N, 1, vs)
	sm := mat.NewCDense(tree.N, 1, ss)
	out := obj(vm, sm)
	if len(out) != 1 {
		return nil, ErrBadObjective
	}

	sol := &Solution{V: vs, S: ss, Optval: out[0]}
	for _, per := range s.warnsByBus {
		sol.Warnings = append(sol.Warnings, per...)
	}
	sol.Warnings = append(sol.Warnings, optWarns...)
	sol.Warnings = append(sol.Warnings, subWarns...)

	return sol, nil
}
