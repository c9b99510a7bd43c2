// Package lvlopf solves the optimal power-flow (OPF) problem on
// restricted radial networks — trees of electrical buses joined by
// complex impedances, with one reference bus, PQ/PV-typed leaves and
// PQ-typed internal buses.
//
// 🚀 What is lvlopf?
//
//	A deterministic, in-memory OPF solver that brings together:
//		• Topology: validated bus/impedance trees with a bottom-up elimination order
//		• Elimination: each subtree collapsed into a one-parameter feasible relation
//		• Approximation: compact cubic-Hermite fits with residual diagnostics
//		• Optimization: vectorized objective sampling + derivative-free refinement
//		• Back-substitution: top-down recovery of every bus voltage and injection
//
// ✨ Why choose lvlopf?
//
//   - Single synchronous call – no servers, files or persisted state
//   - Strict sentinels – every failure mode is a documented error value
//   - Soft-failure policy – diagnostics are returned, never printed
//   - Deterministic – fixed loop orders, no time-based randomness
//
// Under the hood, everything is organized under four subpackages:
//
//	cmatrix/ — sparse symmetric complex impedance matrix (the network input)
//	radial/  — tree validation, parent pointers, post-order elimination sequence
//	spline/  — cubic-Hermite curve fitting: fit, evaluate, invert, residual
//	opf/     — constraint catalog, subtree eliminator, root optimizer, Solve
//
// Quick ASCII example (a five-bus radial feeder, bus 0 is the reference):
//
//	0───1
//	│
//	2───3
//	│
//	4
//
// Dive into opf/doc.go for the solver contract and worked examples.
//
//	go get github.com/katalvlaran/lvlopf
package lvlopf
