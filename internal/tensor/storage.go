package tensor

import (
	"fmt"

	"github.com/warp-ml/warp/internal/parallel"
)

// Storage is the flat element buffer shared by reference among all
// views derived from it. It carries no shape information; views hold
// the size/stride/offset geometry. A storage is released when the last
// view referencing it becomes unreachable.
type Storage[T Float] struct {
	data []T
}

// NewStorage allocates a zero-initialized storage of n elements.
func NewStorage[T Float](n int) *Storage[T] {
	if n < 0 {
		panic(fmt.Sprintf("storage: negative size %d", n))
	}
	return &Storage[T]{data: make([]T, n)}
}

// StorageOf wraps an existing slice without copying. The caller keeps
// shared ownership of the backing array.
func StorageOf[T Float](data []T) *Storage[T] {
	return &Storage[T]{data: data}
}

// Len returns the number of elements in the storage.
func (s *Storage[T]) Len() int {
	return len(s.data)
}

// Get returns the element at an absolute offset.
func (s *Storage[T]) Get(off int) T {
	return s.data[off]
}

// Set writes the element at an absolute offset.
func (s *Storage[T]) Set(off int, v T) {
	s.data[off] = v
}

// Data exposes the backing slice. Mutations are visible to every view
// aliasing this storage.
func (s *Storage[T]) Data() []T {
	return s.data
}

// Fill writes v into n consecutive slots starting at off.
func (s *Storage[T]) Fill(v T, off, n int) error {
	if off < 0 || n < 0 || off+n > len(s.data) {
		return fmt.Errorf("storage: fill range [%d:%d] out of bounds for length %d", off, off+n, len(s.data))
	}
	span := s.data[off : off+n]
	parallel.ForRange(n, func(start, end int) {
		for i := start; i < end; i++ {
			span[i] = v
		}
	}, parallel.DefaultConfig())
	return nil
}

// CopyStorage copies n elements linearly from src at srcOff into dst at
// dstOff. Used by the contiguous fast path of the copy engine.
func CopyStorage[T Float](dst *Storage[T], dstOff int, src *Storage[T], srcOff, n int) error {
	if dstOff < 0 || dstOff+n > len(dst.data) {
		return fmt.Errorf("storage: copy dst range [%d:%d] out of bounds for length %d", dstOff, dstOff+n, len(dst.data))
	}
	if srcOff < 0 || srcOff+n > len(src.data) {
		return fmt.Errorf("storage: copy src range [%d:%d] out of bounds for length %d", srcOff, srcOff+n, len(src.data))
	}
	d, s := dst.data[dstOff:dstOff+n], src.data[srcOff:srcOff+n]
	if dst == src {
		// Possible overlap; copy handles it like memmove.
		copy(d, s)
		return nil
	}
	parallel.ForRange(n, func(start, end int) {
		copy(d[start:end], s[start:end])
	}, parallel.DefaultConfig())
	return nil
}
