package opf

import (
	"fmt"
	"math"

	"github.com/katalvlaran/lvlopf/radial"
)

// busKind is the constraint variant of a bus.
type busKind uint8

const (
	busRef busKind = iota
	busPQ
	busPV
)

// busConstraint is the resolved per-bus constraint record consumed by the
// eliminator and the root combiner.
type busConstraint struct {
	kind busKind

	// PQ: fixed complex injection and magnitude interval.
	s          complex128
	vmin, vmax float64

	// PV: fixed real power, fixed magnitude, reactive interval.
	p          float64
	vset       float64
	qmin, qmax float64

	// Reference only: real-power interval (reactive reuses qmin/qmax).
	pmin, pmax float64
}

// buildCatalog resolves the PQ/PV/reference declarations against the tree.
//
// Failure modes (all wrap ErrConstraint, most also name the bus):
//   - ErrDuplicateBus: a bus in more than one role (the reference bus
//     counts as already declared);
//   - ErrUnknownBus: a declaration referencing a bus outside [0, n);
//   - ErrInvertedBounds: any interval with min > max, or a negative
//     magnitude lower bound;
//   - ErrInternalPV: a PV declaration on a non-leaf bus;
//   - ErrUndeclaredLeaf: a leaf with neither a PQ nor a PV row.
//
// Undeclared internal buses become pass-through PQ records: zero injection,
// magnitude interval [0, +Inf).
func buildCatalog(t *radial.Tree, pq []PQSpec, pv []PVSpec, ref RefSpec) ([]busConstraint, error) {
	if ref.VMin > ref.VMax || ref.VMin < 0 || ref.PMin > ref.PMax || ref.QMin > ref.QMax {
		return nil, fmt.Errorf("reference bus: %w", ErrInvertedBounds)
	}

	cat := make([]busConstraint, t.N)
	declared := make([]bool, t.N)

	cat[t.Root] = busConstraint{
		kind: busRef,
		vmin: ref.VMin, vmax: ref.VMax,
		pmin: ref.PMin, pmax: ref.PMax,
		qmin: ref.QMin, qmax: ref.QMax,
	}
	declared[t.Root] = true

	for _, row := range pq {
		if row.Bus < 0 || row.Bus >= t.N {
			return nil, fmt.Errorf("PQ bus %d: %w", row.Bus, ErrUnknownBus)
		}
		if declared[row.Bus] {
			return nil, fmt.Errorf("PQ bus %d: %w", row.Bus, ErrDuplicateBus)
		}
		if row.VMin > row.VMax || row.VMin < 0 {
			return nil, fmt.Errorf("PQ bus %d: %w", row.Bus, ErrInvertedBounds)
		}
		cat[row.Bus] = busConstraint{kind: busPQ, s: row.S, vmin: row.VMin, vmax: row.VMax}
		declared[row.Bus] = true
	}

	for _, row := range pv {
		if row.Bus < 0 || row.Bus >= t.N {
			return nil, fmt.Errorf("PV bus %d: %w", row.Bus, ErrUnknownBus)
		}
		if declared[row.Bus] {
			return nil, fmt.Errorf("PV bus %d: %w", row.Bus, ErrDuplicateBus)
		}
		if row.QMin > row.QMax || row.VSet <= 0 {
			return nil, fmt.Errorf("PV bus %d: %w", row.Bus, ErrInvertedBounds)
		}
		if !t.IsLeaf(row.Bus) {
			return nil, fmt.Errorf("PV bus %d: %w", row.Bus, ErrInternalPV)
		}
		cat[row.Bus] = busConstraint{kind: busPV, p: row.P, vset: row.VSet, qmin: row.QMin, qmax: row.QMax}
		declared[row.Bus] = true
	}

	for bus := 0; bus < t.N; bus++ {
		if declared[bus] {
			continue
		}
		if t.IsLeaf(bus) {
			return nil, fmt.Errorf("leaf bus %d: %w", bus, ErrUndeclaredLeaf)
		}
		// Pure pass-through node: no injection of its own, magnitude
		// bounded only by the global grid.
		cat[bus] = busConstraint{kind: busPQ, vmax: math.Inf(1)}
	}

	return cat, nil
}
