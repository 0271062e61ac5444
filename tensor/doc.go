// Package tensor is the public API of the warp strided tensor engine.
//
// A tensor is a lightweight view — size, stride and offset — over a
// flat shared storage buffer. View-algebra operations (Narrow, Select,
// Transpose, Unfold, Expand, View) rewrite metadata without copying, so
// many logical shapes can alias one buffer:
//
//	t, _ := tensor.FromSlice([]float32{1, 2, 3, 4, 5, 6}, 2, 3)
//	row, _ := t.Narrow(1, 2, 1)   // 1x3 view of the second row
//	tt, _ := t.Transpose(1, 2)    // 3x2 view, no data moved
//
// Dimensions and element positions in the public API are 1-based and
// negative-aware (-1 means last), matching the classic tensor-calculus
// convention; internals are 0-based.
//
// Mutating a view writes through to the shared storage. Concurrent
// mutation of aliasing views is the caller's problem to serialize; the
// engine takes no locks. Random fills take a *rand.Rand explicitly so
// seeded runs are reproducible.
package tensor
