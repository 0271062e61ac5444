package tensor

import "fmt"

// View algebra. Every operation here rewrites size/stride/offset
// metadata over the existing storage; none of them move data. Repeat is
// the exception: it materializes a physical copy, but builds the copy
// through the same algebra.
//
// Public methods take 1-based, negative-aware dimensions and positions
// and return fresh views; the unexported 0-based forms mutate a view in
// place and are shared with the slice resolver.

// Narrow restricts dimension dim to length elements starting at the
// 1-based position start. The result aliases the receiver's storage.
func (t *Tensor[T]) Narrow(dim, start, length int) (*Tensor[T], error) {
	d, err := t.normDim(dim)
	if err != nil {
		return nil, fmt.Errorf("tensor: narrow: %w", err)
	}
	s, err := normIndex(start, t.size[d])
	if err != nil {
		return nil, fmt.Errorf("tensor: narrow: %w", err)
	}
	v := t.shallow()
	if err := v.narrow0(d, s, length); err != nil {
		return nil, err
	}
	return v, nil
}

func (t *Tensor[T]) narrow0(d, start, length int) error {
	if length <= 0 || length > t.size[d]-start {
		return fmt.Errorf("tensor: narrow: length %d out of range (0, %d] at dimension %d", length, t.size[d]-start, d+1)
	}
	t.offset += start * t.stride[d]
	t.size[d] = length
	return nil
}

// Select collapses dimension dim at the 1-based position index,
// reducing rank by one. Selecting on a rank-1 tensor is an error;
// callers resolve those to a scalar instead.
func (t *Tensor[T]) Select(dim, index int) (*Tensor[T], error) {
	if len(t.size) <= 1 {
		return nil, fmt.Errorf("tensor: select: cannot select on a tensor of rank %d", len(t.size))
	}
	d, err := t.normDim(dim)
	if err != nil {
		return nil, fmt.Errorf("tensor: select: %w", err)
	}
	i, err := normIndex(index, t.size[d])
	if err != nil {
		return nil, fmt.Errorf("tensor: select: %w", err)
	}
	v := t.shallow()
	if err := v.select0(d, i); err != nil {
		return nil, err
	}
	return v, nil
}

func (t *Tensor[T]) select0(d, index int) error {
	if err := t.narrow0(d, index, 1); err != nil {
		return err
	}
	t.size = append(t.size[:d], t.size[d+1:]...)
	t.stride = append(t.stride[:d], t.stride[d+1:]...)
	return nil
}

// Transpose swaps two dimensions. No data moves; the result is
// generally non-contiguous. Equal dimensions are a no-op.
func (t *Tensor[T]) Transpose(dim1, dim2 int) (*Tensor[T], error) {
	d1, err := t.normDim(dim1)
	if err != nil {
		return nil, fmt.Errorf("tensor: transpose: %w", err)
	}
	d2, err := t.normDim(dim2)
	if err != nil {
		return nil, fmt.Errorf("tensor: transpose: %w", err)
	}
	v := t.shallow()
	if d1 != d2 {
		v.size[d1], v.size[d2] = v.size[d2], v.size[d1]
		v.stride[d1], v.stride[d2] = v.stride[d2], v.stride[d1]
	}
	return v, nil
}

// Unfold exposes overlapping windows of windowSize elements, step
// apart, along dim. A new trailing dimension of extent windowSize is
// appended and dim is rewritten to the window count; rank grows by one.
// Windows alias the source, so one storage slot can appear at several
// logical positions.
func (t *Tensor[T]) Unfold(dim, windowSize, step int) (*Tensor[T], error) {
	d, err := t.normDim(dim)
	if err != nil {
		return nil, fmt.Errorf("tensor: unfold: %w", err)
	}
	v := t.shallow()
	if err := v.unfold0(d, windowSize, step); err != nil {
		return nil, err
	}
	return v, nil
}

func (t *Tensor[T]) unfold0(d, windowSize, step int) error {
	if windowSize <= 0 || windowSize > t.size[d] {
		return fmt.Errorf("tensor: unfold: window size %d out of range (0, %d] at dimension %d", windowSize, t.size[d], d+1)
	}
	if step <= 0 {
		return fmt.Errorf("tensor: unfold: step must be positive, got %d", step)
	}
	t.size = append(t.size, windowSize)
	t.stride = append(t.stride, t.stride[d])
	t.size[d] = (t.size[d]-windowSize)/step + 1
	t.stride[d] *= step
	return nil
}

// Expand broadcasts singleton dimensions to the target extents by
// setting their stride to zero. Only dimensions of extent 1 may change;
// anything else is an error. Every logical position along an expanded
// dimension aliases one physical slot, so writes through it are not
// independent.
func (t *Tensor[T]) Expand(target ...int) (*Tensor[T], error) {
	if len(target) != len(t.size) {
		return nil, fmt.Errorf("tensor: expand: %w: %d target extents for rank %d", ErrShapeMismatch, len(target), len(t.size))
	}
	v := t.shallow()
	for d, want := range target {
		if want == t.size[d] {
			continue
		}
		if t.size[d] != 1 {
			return nil, fmt.Errorf("tensor: expand: only singleton dimensions may be expanded, dimension %d has extent %d (target %d)", d+1, t.size[d], want)
		}
		if want <= 0 {
			return nil, fmt.Errorf("tensor: expand: invalid target extent %d at dimension %d", want, d+1)
		}
		v.size[d] = want
		v.stride[d] = 0
	}
	return v, nil
}

// View reinterprets a contiguous tensor under a new size with canonical
// strides over the same storage and offset. The element count must be
// preserved.
func (t *Tensor[T]) View(newSize ...int) (*Tensor[T], error) {
	if !t.IsContiguous() {
		return nil, fmt.Errorf("tensor: view: %w", ErrNotContiguous)
	}
	if err := validateSize(newSize); err != nil {
		return nil, fmt.Errorf("tensor: view: %w", err)
	}
	if numElements(newSize) != t.NumElements() {
		return nil, fmt.Errorf("tensor: view: %w: size %v holds %d elements, tensor has %d",
			ErrShapeMismatch, newSize, numElements(newSize), t.NumElements())
	}
	v := t.shallow()
	v.size = append([]int(nil), newSize...)
	v.stride = canonicalStrides(newSize)
	return v, nil
}

// Permute reorders all dimensions at once. dims must be a permutation
// of 1..rank (negative-aware).
func (t *Tensor[T]) Permute(dims ...int) (*Tensor[T], error) {
	if len(dims) != len(t.size) {
		return nil, fmt.Errorf("tensor: permute: %w: %d dims for rank %d", ErrShapeMismatch, len(dims), len(t.size))
	}
	seen := make([]bool, len(t.size))
	v := t.shallow()
	for pos, dim := range dims {
		d, err := t.normDim(dim)
		if err != nil {
			return nil, fmt.Errorf("tensor: permute: %w", err)
		}
		if seen[d] {
			return nil, fmt.Errorf("tensor: permute: dimension %d repeated", dim)
		}
		seen[d] = true
		v.size[pos] = t.size[d]
		v.stride[pos] = t.stride[d]
	}
	return v, nil
}

// Squeeze removes a dimension of extent 1.
func (t *Tensor[T]) Squeeze(dim int) (*Tensor[T], error) {
	d, err := t.normDim(dim)
	if err != nil {
		return nil, fmt.Errorf("tensor: squeeze: %w", err)
	}
	if t.size[d] != 1 {
		return nil, fmt.Errorf("tensor: squeeze: dimension %d has extent %d, not 1", dim, t.size[d])
	}
	v := t.shallow()
	v.size = append(v.size[:d], v.size[d+1:]...)
	v.stride = append(v.stride[:d], v.stride[d+1:]...)
	return v, nil
}

// Unsqueeze inserts a dimension of extent 1 before the 1-based position
// dim (dim may be rank+1 to append).
func (t *Tensor[T]) Unsqueeze(dim int) (*Tensor[T], error) {
	rank := len(t.size)
	d := dim
	if d < 0 {
		d = rank + d + 2
	}
	if d < 1 || d > rank+1 {
		return nil, fmt.Errorf("tensor: unsqueeze: %w: position %d for rank %d", ErrDimRange, dim, rank)
	}
	d--
	v := t.shallow()
	v.size = append(v.size[:d], append([]int{1}, v.size[d:]...)...)
	v.stride = append(v.stride[:d], append([]int{0}, v.stride[d:]...)...)
	// An extent-1 dimension never advances an address, so any stride is
	// geometrically valid; use the canonical-looking one.
	if d < len(v.stride)-1 {
		v.stride[d] = v.stride[d+1] * v.size[d+1]
	} else {
		v.stride[d] = 1
	}
	return v, nil
}

// Repeat tiles the receiver target[d] times along each dimension,
// materializing a new tensor with private storage. len(target) must be
// at least the receiver's rank; the source is aligned to it with
// leading singleton dimensions.
func (t *Tensor[T]) Repeat(target ...int) (*Tensor[T], error) {
	if len(target) < len(t.size) {
		return nil, fmt.Errorf("tensor: repeat: %w: %d repeat extents for rank %d", ErrShapeMismatch, len(target), len(t.size))
	}
	for d, r := range target {
		if r <= 0 {
			return nil, fmt.Errorf("tensor: repeat: invalid repeat count %d at dimension %d", r, d+1)
		}
	}

	// Align the source up to len(target) dims with leading singletons.
	aligned := make([]int, len(target))
	pad := len(target) - len(t.size)
	for d := range aligned {
		if d < pad {
			aligned[d] = 1
		} else {
			aligned[d] = t.size[d-pad]
		}
	}
	src, err := t.Clone().View(aligned...)
	if err != nil {
		return nil, fmt.Errorf("tensor: repeat: %w", err)
	}

	resultSize := make([]int, len(target))
	for d := range target {
		resultSize[d] = target[d] * aligned[d]
	}
	result := &Tensor[T]{num: t.num}
	if err := result.Resize(resultSize, nil); err != nil {
		return nil, fmt.Errorf("tensor: repeat: %w", err)
	}

	// Unfold each dimension of the destination into (repeat, block)
	// pairs: after all unfolds the view is [target..., aligned...] and
	// one expand of the source covers every repetition block.
	ur := result.shallow()
	for d := 0; d < len(target); d++ {
		if err := ur.unfold0(d, aligned[d], aligned[d]); err != nil {
			return nil, fmt.Errorf("tensor: repeat: %w", err)
		}
	}
	xx := src.shallow()
	for d := 0; d < len(target); d++ {
		xx.size = append([]int{1}, xx.size...)
		xx.stride = append([]int{0}, xx.stride...)
	}
	xx, err = xx.Expand(ur.size...)
	if err != nil {
		return nil, fmt.Errorf("tensor: repeat: %w", err)
	}
	if err := ur.CopyFrom(xx); err != nil {
		return nil, fmt.Errorf("tensor: repeat: %w", err)
	}
	return result, nil
}
