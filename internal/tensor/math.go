package tensor

import "fmt"

// Elementwise operations built on the apply engines. These mutate the
// receiver in place; use Clone first for an out-of-place result.

// Fill sets every logical element of the view to v. The contiguous fast
// path delegates to the storage bulk fill.
func (t *Tensor[T]) Fill(v T) {
	if t.NumElements() == 0 {
		return
	}
	if t.IsContiguous() {
		// Contiguous views cover one dense span.
		if err := t.storage.Fill(v, t.offset, t.NumElements()); err != nil {
			panic(err) // view invariant guarantees the span
		}
		return
	}
	Apply(t, func(T) T { return v })
}

// Zero fills the view with the additive identity.
func (t *Tensor[T]) Zero() {
	t.Fill(t.num.Zero())
}

// CopyFrom copies src's elements into the receiver position by
// position. Element counts must match; geometries may differ.
func (t *Tensor[T]) CopyFrom(src *Tensor[T]) error {
	if t.NumElements() != src.NumElements() {
		return fmt.Errorf("tensor: copy: %w: %d vs %d elements", ErrShapeMismatch, t.NumElements(), src.NumElements())
	}
	if t.IsContiguous() && src.IsContiguous() {
		return CopyStorage(t.storage, t.offset, src.storage, src.offset, t.NumElements())
	}
	return Apply2(t, src, func(_, s T) T { return s })
}

// Add accumulates src into the receiver elementwise.
func (t *Tensor[T]) Add(src *Tensor[T]) error {
	return Apply2(t, src, t.num.Add)
}

// Sub subtracts src from the receiver elementwise.
func (t *Tensor[T]) Sub(src *Tensor[T]) error {
	return Apply2(t, src, t.num.Sub)
}

// Mul multiplies the receiver by src elementwise.
func (t *Tensor[T]) Mul(src *Tensor[T]) error {
	return Apply2(t, src, t.num.Mul)
}

// Div divides the receiver by src elementwise.
func (t *Tensor[T]) Div(src *Tensor[T]) error {
	return Apply2(t, src, t.num.Div)
}

// AddValue adds a scalar to every element.
func (t *Tensor[T]) AddValue(v T) {
	Apply(t, func(x T) T { return t.num.Add(x, v) })
}

// MulValue scales every element by a scalar.
func (t *Tensor[T]) MulValue(v T) {
	Apply(t, func(x T) T { return t.num.Mul(x, v) })
}

// Abs replaces every element with its absolute value.
func (t *Tensor[T]) Abs() {
	Apply(t, t.num.Abs)
}

// Sqrt replaces every element with its square root.
func (t *Tensor[T]) Sqrt() {
	Apply(t, t.num.Sqrt)
}

// AddCMul accumulates value*a*b into the receiver elementwise.
func (t *Tensor[T]) AddCMul(value T, a, b *Tensor[T]) error {
	return Apply3(t, a, b, func(tv, av, bv T) T {
		return t.num.Add(tv, t.num.Mul(value, t.num.Mul(av, bv)))
	})
}

// Sum returns the sum of all elements.
func (t *Tensor[T]) Sum() T {
	acc := t.num.Zero()
	if t.storage == nil {
		return acc
	}
	data := t.storage.data
	t.iterate(func(addr int) {
		acc = t.num.Add(acc, data[addr])
	})
	return acc
}

// Mean returns the average of all elements.
func (t *Tensor[T]) Mean() (T, error) {
	n := t.NumElements()
	if n == 0 {
		var zero T
		return zero, fmt.Errorf("tensor: mean of an empty tensor")
	}
	return t.num.Div(t.Sum(), t.num.FromInt(n)), nil
}

// Max returns the largest element.
func (t *Tensor[T]) Max() (T, error) {
	if t.NumElements() == 0 {
		var zero T
		return zero, fmt.Errorf("tensor: max of an empty tensor")
	}
	data := t.storage.data
	best := data[t.offset]
	t.iterate(func(addr int) {
		if t.num.Greater(data[addr], best) {
			best = data[addr]
		}
	})
	return best, nil
}

// Equal reports elementwise equality within the element type's
// epsilon. Mismatched shapes compare false; that is a defined result,
// not an error.
func (t *Tensor[T]) Equal(o *Tensor[T]) bool {
	if len(t.size) != len(o.size) {
		return false
	}
	for d := range t.size {
		if t.size[d] != o.size[d] {
			return false
		}
	}
	if t.NumElements() == 0 {
		return true
	}
	eps := t.num.Eps()
	equal := true
	ti, oi := newApplyIter(t), newApplyIter(o)
	td, od := t.storage.data, o.storage.data
	for !ti.done {
		diff := t.num.Float64(td[ti.addr]) - t.num.Float64(od[oi.addr])
		if diff > eps || diff < -eps {
			equal = false
			break
		}
		ti.advance()
		oi.advance()
	}
	return equal
}
