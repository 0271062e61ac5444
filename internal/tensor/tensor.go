package tensor

import (
	"fmt"
	"strings"
)

// Tensor is a strided view over a shared Storage: size and stride per
// dimension plus an element offset. Many tensors may alias one storage;
// view-algebra operations (Narrow, Select, Transpose, Unfold, Expand,
// View) produce new metadata over the same buffer without copying.
//
// Public indices — dimensions and element positions — are 1-based and
// negative-aware (-1 means last). Internals are strictly 0-based; the
// translation happens once, in normDim/normIndex.
type Tensor[T Float] struct {
	storage *Storage[T]
	offset  int
	size    []int
	stride  []int
	num     Numeric[T]
}

// New allocates a tensor of the given size with canonical row-major
// strides and a fresh zero-filled storage.
func New[T Float](size ...int) (*Tensor[T], error) {
	t := &Tensor[T]{num: NumericFor[T]()}
	if err := t.Resize(size, nil); err != nil {
		return nil, err
	}
	return t, nil
}

// FromStorage builds a view over an existing storage. A nil stride
// yields canonical row-major strides for size. The maximal reachable
// address must stay inside the storage.
func FromStorage[T Float](s *Storage[T], offset int, size, stride []int) (*Tensor[T], error) {
	if offset < 0 {
		return nil, fmt.Errorf("tensor: negative storage offset %d", offset)
	}
	if err := validateSize(size); err != nil {
		return nil, err
	}
	if stride == nil {
		stride = canonicalStrides(size)
	} else if len(stride) != len(size) {
		return nil, fmt.Errorf("tensor: %w: %d sizes but %d strides", ErrShapeMismatch, len(size), len(stride))
	}
	t := &Tensor[T]{
		storage: s,
		offset:  offset,
		size:    append([]int(nil), size...),
		stride:  append([]int(nil), stride...),
		num:     NumericFor[T](),
	}
	if need := offset + t.requiredExtent(); need > s.Len() {
		return nil, fmt.Errorf("tensor: view reaches element %d but storage holds %d", need, s.Len())
	}
	return t, nil
}

// FromSlice builds a tensor of the given size backed by a private copy
// of data laid out row-major.
func FromSlice[T Float](data []T, size ...int) (*Tensor[T], error) {
	if err := validateSize(size); err != nil {
		return nil, err
	}
	n := numElements(size)
	if n != len(data) {
		return nil, fmt.Errorf("tensor: %w: size %v needs %d elements, got %d", ErrShapeMismatch, size, n, len(data))
	}
	buf := make([]T, n)
	copy(buf, data)
	return FromStorage(StorageOf(buf), 0, size, nil)
}

// Dim returns the rank (number of active dimensions).
func (t *Tensor[T]) Dim() int {
	return len(t.size)
}

// Size returns the extent of a 1-based, negative-aware dimension.
func (t *Tensor[T]) Size(dim int) (int, error) {
	d, err := t.normDim(dim)
	if err != nil {
		return 0, err
	}
	return t.size[d], nil
}

// Sizes returns a copy of the size vector.
func (t *Tensor[T]) Sizes() []int {
	return append([]int(nil), t.size...)
}

// Stride returns the storage step of a 1-based, negative-aware
// dimension. Zero strides mark broadcast dimensions.
func (t *Tensor[T]) Stride(dim int) (int, error) {
	d, err := t.normDim(dim)
	if err != nil {
		return 0, err
	}
	return t.stride[d], nil
}

// Strides returns a copy of the stride vector.
func (t *Tensor[T]) Strides() []int {
	return append([]int(nil), t.stride...)
}

// Offset returns the element offset of this view into its storage.
func (t *Tensor[T]) Offset() int {
	return t.offset
}

// Storage returns the shared backing buffer, or nil before the first
// resize.
func (t *Tensor[T]) Storage() *Storage[T] {
	return t.storage
}

// DType returns the runtime element-type tag.
func (t *Tensor[T]) DType() DataType {
	return TypeOf[T]()
}

// Numeric returns the element arithmetic strategy.
func (t *Tensor[T]) Numeric() Numeric[T] {
	return t.num
}

// NumElements returns the number of logical elements. A rank-0 tensor
// has none.
func (t *Tensor[T]) NumElements() int {
	if len(t.size) == 0 {
		return 0
	}
	return numElements(t.size)
}

// IsContiguous reports whether strides match the canonical row-major
// layout for the current size, ignoring dimensions of extent 1.
func (t *Tensor[T]) IsContiguous() bool {
	z := 1
	for d := len(t.size) - 1; d >= 0; d-- {
		if t.size[d] == 1 {
			continue
		}
		if t.stride[d] != z {
			return false
		}
		z *= t.size[d]
	}
	return true
}

// Get reads the element at 1-based, negative-aware coordinates.
func (t *Tensor[T]) Get(coords ...int) (T, error) {
	var zero T
	addr, err := t.addrOf(coords)
	if err != nil {
		return zero, err
	}
	return t.storage.Get(addr), nil
}

// Set writes the element at 1-based, negative-aware coordinates.
func (t *Tensor[T]) Set(v T, coords ...int) error {
	addr, err := t.addrOf(coords)
	if err != nil {
		return err
	}
	t.storage.Set(addr, v)
	return nil
}

func (t *Tensor[T]) addrOf(coords []int) (int, error) {
	if len(coords) != len(t.size) {
		return 0, fmt.Errorf("tensor: %w: %d coordinates for rank %d", ErrShapeMismatch, len(coords), len(t.size))
	}
	addr := t.offset
	for d, c := range coords {
		i, err := normIndex(c, t.size[d])
		if err != nil {
			return 0, fmt.Errorf("tensor: dim %d: %w", d+1, err)
		}
		addr += i * t.stride[d]
	}
	return addr, nil
}

// shallow returns a new view with copied metadata over the same
// storage.
func (t *Tensor[T]) shallow() *Tensor[T] {
	return &Tensor[T]{
		storage: t.storage,
		offset:  t.offset,
		size:    append([]int(nil), t.size...),
		stride:  append([]int(nil), t.stride...),
		num:     t.num,
	}
}

// Clone returns a contiguous deep copy with private storage.
func (t *Tensor[T]) Clone() *Tensor[T] {
	c := &Tensor[T]{num: t.num}
	if err := c.Resize(t.size, nil); err != nil {
		panic(err) // own size vector is always valid
	}
	if t.NumElements() > 0 {
		if err := c.CopyFrom(t); err != nil {
			panic(err)
		}
	}
	return c
}

// String renders small tensors for debugging; large ones are
// summarized by geometry only.
func (t *Tensor[T]) String() string {
	n := t.NumElements()
	if t.storage == nil || n == 0 {
		return fmt.Sprintf("Tensor[%s](empty)", t.DType())
	}
	if n > 64 {
		return fmt.Sprintf("Tensor[%s](size %v, stride %v, offset %d)", t.DType(), t.size, t.stride, t.offset)
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Tensor[%s]%v[", t.DType(), t.size)
	first := true
	t.iterate(func(addr int) {
		if !first {
			sb.WriteString(" ")
		}
		first = false
		fmt.Fprintf(&sb, "%v", t.storage.Get(addr))
	})
	sb.WriteString("]")
	return sb.String()
}

// normDim maps a 1-based, negative-aware dimension to 0-based.
func (t *Tensor[T]) normDim(dim int) (int, error) {
	rank := len(t.size)
	d := dim
	if d < 0 {
		d = rank + d + 1
	}
	if d < 1 || d > rank {
		return 0, fmt.Errorf("%w: dimension %d for rank %d", ErrDimRange, dim, rank)
	}
	return d - 1, nil
}

// normIndex maps a 1-based, negative-aware element position to 0-based
// against an extent (-1 is the last element).
func normIndex(i, extent int) (int, error) {
	v := i
	if v < 0 {
		v = extent + v + 1
	}
	if v < 1 || v > extent {
		return 0, fmt.Errorf("%w: index %d for extent %d", ErrIndexRange, i, extent)
	}
	return v - 1, nil
}

func validateSize(size []int) error {
	for d, s := range size {
		if s <= 0 {
			return fmt.Errorf("tensor: invalid extent %d at dimension %d (must be > 0)", s, d+1)
		}
	}
	return nil
}

func numElements(size []int) int {
	n := 1
	for _, s := range size {
		n *= s
	}
	return n
}

// canonicalStrides computes row-major strides for size: innermost
// dimension 1, then stride[d] = size[d+1]*stride[d+1].
func canonicalStrides(size []int) []int {
	stride := make([]int, len(size))
	if len(size) == 0 {
		return stride
	}
	stride[len(size)-1] = 1
	for d := len(size) - 2; d >= 0; d-- {
		stride[d] = stride[d+1] * size[d+1]
	}
	return stride
}

// requiredExtent is 1 + Σ(size[d]-1)*stride[d]: the number of storage
// elements this view can reach past its offset. Zero for rank 0.
func (t *Tensor[T]) requiredExtent() int {
	if len(t.size) == 0 {
		return 0
	}
	need := 1
	for d := range t.size {
		need += (t.size[d] - 1) * t.stride[d]
	}
	return need
}
