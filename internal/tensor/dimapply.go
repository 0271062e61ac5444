package tensor

import "fmt"

// Dimension-apply engine: fix one axis, iterate every combination of
// the remaining indices, and hand the kernel a 1-D strided slice
// descriptor per operand sharing that outer coordinate. Reductions,
// max and top-k are kernels over this engine.

// DimSlice describes a 1-D strided run inside a storage.
type DimSlice[T Float] struct {
	Storage *Storage[T]
	Offset  int
	Stride  int
	Extent  int
}

// Get reads the i-th (0-based) element of the slice.
func (s DimSlice[T]) Get(i int) T {
	return s.Storage.Get(s.Offset + i*s.Stride)
}

// Set writes the i-th (0-based) element of the slice.
func (s DimSlice[T]) Set(i int, v T) {
	s.Storage.Set(s.Offset+i*s.Stride, v)
}

// dimApply iterates over all index combinations of src's dimensions
// except d (0-based) and invokes the kernel once per combination with
// matching slices from src and each output. Outputs must agree with src
// on every dimension but d.
func dimApply[T Float](src *Tensor[T], outs []*Tensor[T], d int, kernel func(src DimSlice[T], outs []DimSlice[T])) error {
	for _, o := range outs {
		if len(o.size) != len(src.size) {
			return fmt.Errorf("tensor: dimapply: %w: output rank %d vs source rank %d", ErrShapeMismatch, len(o.size), len(src.size))
		}
		for dd := range src.size {
			if dd != d && o.size[dd] != src.size[dd] {
				return fmt.Errorf("tensor: dimapply: %w: output extent %d vs source extent %d at dimension %d",
					ErrShapeMismatch, o.size[dd], src.size[dd], dd+1)
			}
		}
	}

	counter := make([]int, len(src.size))
	addrs := make([]int, len(outs)+1)
	addrs[0] = src.offset
	for i, o := range outs {
		addrs[i+1] = o.offset
	}
	slices := make([]DimSlice[T], len(outs))

	for {
		srcSlice := DimSlice[T]{Storage: src.storage, Offset: addrs[0], Stride: src.stride[d], Extent: src.size[d]}
		for i, o := range outs {
			slices[i] = DimSlice[T]{Storage: o.storage, Offset: addrs[i+1], Stride: o.stride[d], Extent: o.size[d]}
		}
		kernel(srcSlice, slices)

		// Advance the outer coordinate, skipping d.
		dd := len(src.size) - 1
		for ; dd >= 0; dd-- {
			if dd == d {
				continue
			}
			counter[dd]++
			addrs[0] += src.stride[dd]
			for i, o := range outs {
				addrs[i+1] += o.stride[dd]
			}
			if counter[dd] < src.size[dd] {
				break
			}
			counter[dd] = 0
			addrs[0] -= src.size[dd] * src.stride[dd]
			for i, o := range outs {
				addrs[i+1] -= o.size[dd] * o.stride[dd]
			}
		}
		if dd < 0 {
			return nil
		}
	}
}

// SumDim sums along a 1-based, negative-aware dimension. keepDim
// retains the reduced dimension with extent 1; otherwise it is removed
// (unless the result would be rank 0).
func (t *Tensor[T]) SumDim(dim int, keepDim bool) (*Tensor[T], error) {
	return t.reduceDim(dim, keepDim, func(src DimSlice[T], out DimSlice[T]) {
		acc := t.num.Zero()
		for i := 0; i < src.Extent; i++ {
			acc = t.num.Add(acc, src.Get(i))
		}
		out.Set(0, acc)
	})
}

// MeanDim averages along a 1-based, negative-aware dimension.
func (t *Tensor[T]) MeanDim(dim int, keepDim bool) (*Tensor[T], error) {
	return t.reduceDim(dim, keepDim, func(src DimSlice[T], out DimSlice[T]) {
		acc := t.num.Zero()
		for i := 0; i < src.Extent; i++ {
			acc = t.num.Add(acc, src.Get(i))
		}
		out.Set(0, t.num.Div(acc, t.num.FromInt(src.Extent)))
	})
}

// MaxDim returns the per-slice maximum and its 1-based position along
// a dimension. Ties keep the earliest position. Positions are stored as
// element values in the indices tensor.
func (t *Tensor[T]) MaxDim(dim int, keepDim bool) (values, indices *Tensor[T], err error) {
	d, err := t.normDim(dim)
	if err != nil {
		return nil, nil, fmt.Errorf("tensor: maxdim: %w", err)
	}
	outSize := append([]int(nil), t.size...)
	outSize[d] = 1
	values = &Tensor[T]{num: t.num}
	indices = &Tensor[T]{num: t.num}
	if err := values.Resize(outSize, nil); err != nil {
		return nil, nil, err
	}
	if err := indices.Resize(outSize, nil); err != nil {
		return nil, nil, err
	}
	err = dimApply(t, []*Tensor[T]{values, indices}, d, func(src DimSlice[T], outs []DimSlice[T]) {
		best := src.Get(0)
		bestPos := 1
		for i := 1; i < src.Extent; i++ {
			if v := src.Get(i); t.num.Greater(v, best) {
				best = v
				bestPos = i + 1
			}
		}
		outs[0].Set(0, best)
		outs[1].Set(0, t.num.FromInt(bestPos))
	})
	if err != nil {
		return nil, nil, err
	}
	if !keepDim && len(outSize) > 1 {
		if values, err = values.Squeeze(d + 1); err != nil {
			return nil, nil, err
		}
		if indices, err = indices.Squeeze(d + 1); err != nil {
			return nil, nil, err
		}
	}
	return values, indices, nil
}

// reduceDim runs a single-output reduction kernel along dim.
func (t *Tensor[T]) reduceDim(dim int, keepDim bool, kernel func(src, out DimSlice[T])) (*Tensor[T], error) {
	d, err := t.normDim(dim)
	if err != nil {
		return nil, fmt.Errorf("tensor: reduce: %w", err)
	}
	outSize := append([]int(nil), t.size...)
	outSize[d] = 1
	out := &Tensor[T]{num: t.num}
	if err := out.Resize(outSize, nil); err != nil {
		return nil, err
	}
	err = dimApply(t, []*Tensor[T]{out}, d, func(src DimSlice[T], outs []DimSlice[T]) {
		kernel(src, outs[0])
	})
	if err != nil {
		return nil, err
	}
	if !keepDim && len(outSize) > 1 {
		return out.Squeeze(d + 1)
	}
	return out, nil
}
