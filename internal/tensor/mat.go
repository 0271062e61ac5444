package tensor

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Dense linear-algebra interop. A rank-2 view converts to a gonum
// mat.Dense and a rank-1 view to a mat.VecDense, provided the view is
// contiguous in canonical row-major or column-major form; anything else
// fails. gonum works in float64, so conversion always copies (float32
// widens exactly).

// matrixLayout classifies a rank-2 view.
type matrixLayout int

const (
	layoutNone matrixLayout = iota
	layoutRowMajor
	layoutColMajor
)

func (t *Tensor[T]) matrixLayout() matrixLayout {
	if len(t.size) != 2 {
		return layoutNone
	}
	if t.stride[1] == 1 && t.stride[0] == t.size[1] {
		return layoutRowMajor
	}
	if t.stride[0] == 1 && t.stride[1] == t.size[0] {
		return layoutColMajor
	}
	return layoutNone
}

// ToDense converts a rank-2 view to a gonum dense matrix.
func (t *Tensor[T]) ToDense() (*mat.Dense, error) {
	if len(t.size) != 2 {
		return nil, fmt.Errorf("tensor: dense: %w: need rank 2, have rank %d", ErrShapeMismatch, len(t.size))
	}
	layout := t.matrixLayout()
	if layout == layoutNone {
		return nil, fmt.Errorf("tensor: dense: %w in row-major or column-major form", ErrNotContiguous)
	}
	rows, cols := t.size[0], t.size[1]
	out := make([]float64, rows*cols)
	data := t.storage.data
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			out[i*cols+j] = t.num.Float64(data[t.offset+i*t.stride[0]+j*t.stride[1]])
		}
	}
	return mat.NewDense(rows, cols, out), nil
}

// ToVecDense converts a rank-1 view to a gonum dense vector. The view
// must be contiguous (stride 1).
func (t *Tensor[T]) ToVecDense() (*mat.VecDense, error) {
	if len(t.size) != 1 {
		return nil, fmt.Errorf("tensor: vector: %w: need rank 1, have rank %d", ErrShapeMismatch, len(t.size))
	}
	if t.stride[0] != 1 {
		return nil, fmt.Errorf("tensor: vector: %w (stride %d)", ErrNotContiguous, t.stride[0])
	}
	n := t.size[0]
	out := make([]float64, n)
	data := t.storage.data
	for i := 0; i < n; i++ {
		out[i] = t.num.Float64(data[t.offset+i])
	}
	return mat.NewVecDense(n, out), nil
}

// FromDense builds a fresh row-major tensor from a gonum matrix.
func FromDense[T Float](m mat.Matrix) (*Tensor[T], error) {
	rows, cols := m.Dims()
	t, err := New[T](rows, cols)
	if err != nil {
		return nil, err
	}
	num := t.num
	data := t.storage.data
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			data[i*cols+j] = num.FromFloat64(m.At(i, j))
		}
	}
	return t, nil
}

// FromVecDense builds a fresh rank-1 tensor from a gonum vector.
func FromVecDense[T Float](v mat.Vector) (*Tensor[T], error) {
	n := v.Len()
	t, err := New[T](n)
	if err != nil {
		return nil, err
	}
	num := t.num
	for i := 0; i < n; i++ {
		t.storage.data[i] = num.FromFloat64(v.AtVec(i))
	}
	return t, nil
}
