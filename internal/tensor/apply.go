package tensor

import "fmt"

// Elementwise apply engines. Operands with matching element counts are
// walked in lock-step: a contiguous fast path runs linearly over the
// flat storage span, and the strided fallback keeps one counter per
// dimension per operand, carrying from the innermost dimension outward.
// Zero-stride (broadcast) dimensions advance the counter but not the
// address, so the same slot is revisited as required. Each logical
// position is visited exactly once; beyond that the order is
// unspecified.

// applyIter walks every logical position of one view, tracking the
// current storage address.
type applyIter[T Float] struct {
	t       *Tensor[T]
	counter []int
	addr    int
	done    bool
}

func newApplyIter[T Float](t *Tensor[T]) *applyIter[T] {
	return &applyIter[T]{
		t:       t,
		counter: make([]int, len(t.size)),
		addr:    t.offset,
		done:    t.NumElements() == 0,
	}
}

func (it *applyIter[T]) advance() {
	t := it.t
	for d := len(t.size) - 1; d >= 0; d-- {
		it.counter[d]++
		it.addr += t.stride[d]
		if it.counter[d] < t.size[d] {
			return
		}
		it.counter[d] = 0
		it.addr -= t.size[d] * t.stride[d]
	}
	it.done = true
}

// iterate visits the storage address of every logical position.
func (t *Tensor[T]) iterate(f func(addr int)) {
	if t.IsContiguous() {
		n := t.NumElements()
		for i := 0; i < n; i++ {
			f(t.offset + i)
		}
		return
	}
	for it := newApplyIter(t); !it.done; it.advance() {
		f(it.addr)
	}
}

// Apply replaces every element of t with f(element).
func Apply[T Float](t *Tensor[T], f func(v T) T) {
	data := t.storage.data
	t.iterate(func(addr int) {
		data[addr] = f(data[addr])
	})
}

// Apply2 walks a and b position-by-position and stores f(av, bv) back
// into a's position. Element counts must already match; broadcasting is
// the caller's job via Expand.
func Apply2[T Float](a, b *Tensor[T], f func(av, bv T) T) error {
	if a.NumElements() != b.NumElements() {
		return fmt.Errorf("tensor: apply2: %w: %d vs %d elements", ErrShapeMismatch, a.NumElements(), b.NumElements())
	}
	ad, bd := a.storage.data, b.storage.data
	if a.IsContiguous() && b.IsContiguous() {
		n := a.NumElements()
		ao, bo := a.offset, b.offset
		for i := 0; i < n; i++ {
			ad[ao+i] = f(ad[ao+i], bd[bo+i])
		}
		return nil
	}
	ai, bi := newApplyIter(a), newApplyIter(b)
	for !ai.done {
		ad[ai.addr] = f(ad[ai.addr], bd[bi.addr])
		ai.advance()
		bi.advance()
	}
	return nil
}

// Apply3 walks a, b and c in lock-step and stores f(av, bv, cv) back
// into a's position.
func Apply3[T Float](a, b, c *Tensor[T], f func(av, bv, cv T) T) error {
	if a.NumElements() != b.NumElements() || a.NumElements() != c.NumElements() {
		return fmt.Errorf("tensor: apply3: %w: %d vs %d vs %d elements",
			ErrShapeMismatch, a.NumElements(), b.NumElements(), c.NumElements())
	}
	ad, bd, cd := a.storage.data, b.storage.data, c.storage.data
	if a.IsContiguous() && b.IsContiguous() && c.IsContiguous() {
		n := a.NumElements()
		ao, bo, co := a.offset, b.offset, c.offset
		for i := 0; i < n; i++ {
			ad[ao+i] = f(ad[ao+i], bd[bo+i], cd[co+i])
		}
		return nil
	}
	ai, bi, ci := newApplyIter(a), newApplyIter(b), newApplyIter(c)
	for !ai.done {
		ad[ai.addr] = f(ad[ai.addr], bd[bi.addr], cd[ci.addr])
		ai.advance()
		bi.advance()
		ci.advance()
	}
	return nil
}
