package tensor

import (
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/warp-ml/warp/internal/tensor"
)

// Float is the constraint for supported element types.
type Float = tensor.Float

// Tensor is a strided view over a shared storage buffer.
type Tensor[T Float] = tensor.Tensor[T]

// Storage is the flat element buffer shared among views.
type Storage[T Float] = tensor.Storage[T]

// Numeric is the per-element-type arithmetic strategy.
type Numeric[T Float] = tensor.Numeric[T]

// DimSlice describes a 1-D strided run handed to dimension-apply
// kernels.
type DimSlice[T Float] = tensor.DimSlice[T]

// DataType is the runtime element-type tag.
type DataType = tensor.DataType

// Element type tags.
const (
	Float32 DataType = tensor.Float32
	Float64 DataType = tensor.Float64
)

// Sel is one per-dimension selector of a slice spec.
type Sel = tensor.Sel

// Sentinel errors.
var (
	ErrNotContiguous = tensor.ErrNotContiguous
	ErrShapeMismatch = tensor.ErrShapeMismatch
	ErrDimRange      = tensor.ErrDimRange
	ErrIndexRange    = tensor.ErrIndexRange
)

// I selects a single 1-based, negative-aware position.
func I(i int) Sel { return tensor.I(i) }

// R selects the inclusive 1-based range [from, to]; 0 leaves an end
// open.
func R(from, to int) Sel { return tensor.R(from, to) }

// All selects a whole dimension.
func All() Sel { return tensor.All() }

// New allocates a zero-filled tensor with canonical row-major strides.
func New[T Float](size ...int) (*Tensor[T], error) {
	return tensor.New[T](size...)
}

// FromSlice builds a tensor backed by a private row-major copy of data.
func FromSlice[T Float](data []T, size ...int) (*Tensor[T], error) {
	return tensor.FromSlice(data, size...)
}

// FromStorage builds a view over an existing storage; nil stride means
// canonical row-major.
func FromStorage[T Float](s *Storage[T], offset int, size, stride []int) (*Tensor[T], error) {
	return tensor.FromStorage(s, offset, size, stride)
}

// NewStorage allocates a zero-initialized storage of n elements.
func NewStorage[T Float](n int) *Storage[T] {
	return tensor.NewStorage[T](n)
}

// StorageOf wraps an existing slice without copying.
func StorageOf[T Float](data []T) *Storage[T] {
	return tensor.StorageOf(data)
}

// Zeros allocates a tensor of zeros.
func Zeros[T Float](size ...int) (*Tensor[T], error) {
	return tensor.New[T](size...)
}

// Ones allocates a tensor of ones.
func Ones[T Float](size ...int) (*Tensor[T], error) {
	return Full[T](tensor.NumericFor[T]().One(), size...)
}

// Full allocates a tensor filled with v.
func Full[T Float](v T, size ...int) (*Tensor[T], error) {
	t, err := tensor.New[T](size...)
	if err != nil {
		return nil, err
	}
	t.Fill(v)
	return t, nil
}

// Arange returns a rank-1 tensor holding 1, 2, ..., n as element
// values.
func Arange[T Float](n int) (*Tensor[T], error) {
	t, err := tensor.New[T](n)
	if err != nil {
		return nil, err
	}
	num := t.Numeric()
	data := t.Storage().Data()
	for i := range data {
		data[i] = num.FromInt(i + 1)
	}
	return t, nil
}

// Rand allocates a tensor of uniform [0, 1) samples drawn from rng.
func Rand[T Float](rng *rand.Rand, size ...int) (*Tensor[T], error) {
	t, err := tensor.New[T](size...)
	if err != nil {
		return nil, err
	}
	t.Uniform(rng)
	return t, nil
}

// Randn allocates a tensor of standard normal samples drawn from rng.
func Randn[T Float](rng *rand.Rand, size ...int) (*Tensor[T], error) {
	t, err := tensor.New[T](size...)
	if err != nil {
		return nil, err
	}
	t.Normal(rng)
	return t, nil
}

// Apply replaces every element of t with f(element).
func Apply[T Float](t *Tensor[T], f func(v T) T) {
	tensor.Apply(t, f)
}

// Apply2 walks two equal-count tensors in lock-step, storing f's result
// into the first.
func Apply2[T Float](a, b *Tensor[T], f func(av, bv T) T) error {
	return tensor.Apply2(a, b, f)
}

// Apply3 walks three equal-count tensors in lock-step, storing f's
// result into the first.
func Apply3[T Float](a, b, c *Tensor[T], f func(av, bv, cv T) T) error {
	return tensor.Apply3(a, b, c, f)
}

// FromDense builds a row-major tensor from a gonum matrix.
func FromDense[T Float](m mat.Matrix) (*Tensor[T], error) {
	return tensor.FromDense[T](m)
}

// FromVecDense builds a rank-1 tensor from a gonum vector.
func FromVecDense[T Float](v mat.Vector) (*Tensor[T], error) {
	return tensor.FromVecDense[T](v)
}
