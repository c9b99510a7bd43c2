package opf

import (
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/mat"
)

// step recovers bus c's voltage, delivered power and PV reactive injection
// from its parent's actual voltage vp. The relation stores the bus voltage
// with the parent voltage taken real, so the stored phasor is rotated by
// the parent's phase; complex power is rotation-invariant and needs no
// adjustment.
func (s *solver) step(c int, vp complex128) (v, sup complex128, q float64) {
	x := cmplx.Abs(vp)
	rot := vp / complex(x, 0)
	r := s.rel[c]
	v = complex(r.vre.At(x), r.vim.At(x)) * rot
	sup = complex(r.supRe.At(x), r.supIm.At(x))
	if r.q != nil {
		q = r.q.At(x)
	}

	return v, sup, q
}

// evaluateBatch recovers the full voltage and injection profile for every
// candidate root magnitude in xs, walking the tree top-down so parents are
// resolved before their children. Columns whose reference injection falls
// outside its box, or whose recovery produced a non-finite value, come
// back masked infeasible.
func (s *solver) evaluateBatch(xs []float64) (v, sm *mat.CDense, feasible []bool) {
	nb := s.tree.N
	root := s.tree.Root
	order := s.tree.Order
	v = mat.NewCDense(nb, len(xs), nil)
	sm = mat.NewCDense(nb, len(xs), nil)
	feasible = make([]bool, len(xs))

	for j, x := range xs {
		v.Set(root, j, complex(x, 0))
		var sref complex128
		valid := true
		for i := len(order) - 1; i >= 0; i-- {
			c := order[i]
			if c == root {
				continue
			}
			vc, sup, q := s.step(c, v.At(s.tree.Parent[c], j))
			if !isFiniteC(vc) || !isFiniteC(sup) {
				valid = false
				break
			}
			v.Set(c, j, vc)
			if s.cat[c].kind == busPV {
				sm.Set(c, j, complex(s.cat[c].p, q))
			} else {
				sm.Set(c, j, s.cat[c].s)
			}
			if s.tree.Parent[c] == root {
				sref -= sup
			}
		}
		if valid {
			sm.Set(root, j, sref)
			valid = s.refFeasible(real(sref), imag(sref))
		}
		feasible[j] = valid
	}

	return v, sm, feasible
}

// backSubstitute recovers the final profile at root magnitude x, flagging
// numeric trouble the batch path silently masks: refinement may land a
// parent magnitude a hair outside a child's fitted domain, and near-zero
// magnitudes make the recovered angles unreliable.
func (s *solver) backSubstitute(x float64) (vs, ss []complex128, warns []Warning) {
	root := s.tree.Root
	order := s.tree.Order
	vs = make([]complex128, s.tree.N)
	ss = make([]complex128, s.tree.N)
	vs[root] = complex(x, 0)

	var sref complex128
	for i := len(order) - 1; i >= 0; i-- {
		c := order[i]
		if c == root {
			continue
		}
		vp := vs[s.tree.Parent[c]]
		xp := cmplx.Abs(vp)
		r := s.rel[c]
		if slack := domainSlack(r); xp < r.lo-slack || xp > r.hi+slack {
			warns = append(warns, Warning{
				Kind:   WarnNumericInstability,
				Bus:    c,
				Detail: fmt.Sprintf("parent magnitude %.6g outside fitted domain [%.6g, %.6g]", xp, r.lo, r.hi),
			})
		}
		vc, sup, q := s.step(c, vp)
		if cmplx.Abs(vc) < s.opts.Epsilon {
			warns = append(warns, Warning{Kind: WarnNumericInstability, Bus: c, Detail: "near-zero voltage magnitude"})
		}
		vs[c] = vc
		if s.cat[c].kind == busPV {
			ss[c] = complex(s.cat[c].p, q)
		} else {
			ss[c] = s.cat[c].s
		}
		if s.tree.Parent[c] == root {
			sref -= sup
		}
	}
	ss[root] = sref

	return vs, ss, warns
}

// refFeasible reports whether a reference injection lands inside its box.
func (s *solver) refFeasible(p, q float64) bool {
	cst := &s.cat[s.tree.Root]
	eps := s.opts.Epsilon

	return p >= cst.pmin-eps && p <= cst.pmax+eps && q >= cst.qmin-eps && q <= cst.qmax+eps
}

// domainSlack tolerates evaluation points a hair beyond a fitted domain.
func domainSlack(r *relation) float64 {
	sl := 1e-6 * (r.hi - r.lo)
	if sl < 1e-9 {
		sl = 1e-9
	}

	return sl
}

func isFiniteC(z complex128) bool {
	return !math.IsNaN(real(z)) && !math.IsInf(real(z), 0) &&
		!math.IsNaN(imag(z)) && !math.IsInf(imag(z), 0)
}
