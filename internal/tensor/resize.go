package tensor

import "fmt"

// Resize reassigns the view's geometry in place. A nil stride entry set
// (or any negative stride slot) gets the canonical row-major stride
// computed from the new size, innermost dimension first.
//
// Storage is grown only when the new geometry reaches past the current
// capacity; the fresh buffer preserves prior values at their retained
// addresses. Storage is never shrunk: resizing to a smaller shape keeps
// the excess capacity (arena-style growth-only policy). Aliasing views
// still referencing a replaced storage are not rebound.
func (t *Tensor[T]) Resize(size, stride []int) error {
	if err := validateSize(size); err != nil {
		return err
	}
	if stride != nil && len(stride) != len(size) {
		return fmt.Errorf("tensor: resize: %w: %d sizes but %d strides", ErrShapeMismatch, len(size), len(stride))
	}
	if t.sameGeometry(size, stride) {
		return nil
	}

	newSize := append([]int(nil), size...)
	newStride := make([]int, len(size))
	for d := len(size) - 1; d >= 0; d-- {
		if stride != nil && stride[d] >= 0 {
			newStride[d] = stride[d]
			continue
		}
		if d == len(size)-1 {
			newStride[d] = 1
		} else {
			newStride[d] = newSize[d+1] * newStride[d+1]
		}
	}
	t.size = newSize
	t.stride = newStride

	need := t.offset + t.requiredExtent()
	if t.storage == nil {
		t.storage = NewStorage[T](need)
	} else if need > t.storage.Len() {
		grown := NewStorage[T](need)
		copy(grown.data, t.storage.data)
		t.storage = grown
	}
	return nil
}

// ResizeAs matches the receiver's geometry to another tensor's size
// with canonical strides.
func (t *Tensor[T]) ResizeAs(other *Tensor[T]) error {
	return t.Resize(other.size, nil)
}

// sameGeometry reports whether size (and stride, when explicit) already
// match, making Resize a no-op.
func (t *Tensor[T]) sameGeometry(size, stride []int) bool {
	if t.storage == nil || len(size) != len(t.size) {
		return false
	}
	for d := range size {
		if size[d] != t.size[d] {
			return false
		}
		if stride != nil && stride[d] >= 0 && stride[d] != t.stride[d] {
			return false
		}
	}
	return true
}
