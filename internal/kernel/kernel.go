// Package kernel hosts the dense numeric kernels consumed by the
// tensor core: matrix multiply-accumulate, vector outer product and
// 2-D valid correlation. Kernels see operands only through the
// storage/offset/stride contract (via the dense interop) and delegate
// the arithmetic to gonum.
package kernel

import (
	"fmt"

	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/mat"

	"github.com/warp-ml/warp/internal/tensor"
)

// Addmm computes c = beta*c + alpha*(a @ b) for rank-2 operands of
// shapes (m, k), (k, n) and (m, n). The result is written back through
// c's view, so c may be any canonically contiguous matrix view.
func Addmm[T tensor.Float](c, a, b *tensor.Tensor[T], alpha, beta float64) error {
	da, err := a.ToDense()
	if err != nil {
		return fmt.Errorf("kernel: addmm: a: %w", err)
	}
	db, err := b.ToDense()
	if err != nil {
		return fmt.Errorf("kernel: addmm: b: %w", err)
	}
	dc, err := c.ToDense()
	if err != nil {
		return fmt.Errorf("kernel: addmm: c: %w", err)
	}

	ar, ac := da.Dims()
	br, bc := db.Dims()
	cr, cc := dc.Dims()
	if ac != br || cr != ar || cc != bc {
		return fmt.Errorf("kernel: addmm: %w: (%d,%d) @ (%d,%d) -> (%d,%d)", tensor.ErrShapeMismatch, ar, ac, br, bc, cr, cc)
	}

	var prod mat.Dense
	prod.Mul(da, db)
	prod.Scale(alpha, &prod)
	dc.Scale(beta, dc)
	dc.Add(dc, &prod)

	res, err := tensor.FromDense[T](dc)
	if err != nil {
		return err
	}
	return c.CopyFrom(res)
}

// Addr computes a = beta*a + alpha*(x outer y) for vectors x (m) and
// y (n) against a rank-2 accumulator a of shape (m, n).
func Addr[T tensor.Float](a, x, y *tensor.Tensor[T], alpha, beta float64) error {
	vx, err := x.ToVecDense()
	if err != nil {
		return fmt.Errorf("kernel: addr: x: %w", err)
	}
	vy, err := y.ToVecDense()
	if err != nil {
		return fmt.Errorf("kernel: addr: y: %w", err)
	}
	da, err := a.ToDense()
	if err != nil {
		return fmt.Errorf("kernel: addr: a: %w", err)
	}
	ar, ac := da.Dims()
	if ar != vx.Len() || ac != vy.Len() {
		return fmt.Errorf("kernel: addr: %w: (%d) outer (%d) -> (%d,%d)", tensor.ErrShapeMismatch, vx.Len(), vy.Len(), ar, ac)
	}

	var outer mat.Dense
	outer.Outer(alpha, vx, vy)
	da.Scale(beta, da)
	da.Add(da, &outer)

	res, err := tensor.FromDense[T](da)
	if err != nil {
		return err
	}
	return a.CopyFrom(res)
}

// Conv2 computes the valid 2-D correlation of a (h, w) input with a
// (kh, kw) weight, returning an (h-kh+1, w-kw+1) tensor. The inner
// products run through BLAS dot on row spans.
func Conv2[T tensor.Float](input, weight *tensor.Tensor[T]) (*tensor.Tensor[T], error) {
	di, err := input.ToDense()
	if err != nil {
		return nil, fmt.Errorf("kernel: conv2: input: %w", err)
	}
	dw, err := weight.ToDense()
	if err != nil {
		return nil, fmt.Errorf("kernel: conv2: weight: %w", err)
	}
	h, w := di.Dims()
	kh, kw := dw.Dims()
	if kh > h || kw > w {
		return nil, fmt.Errorf("kernel: conv2: %w: weight (%d,%d) larger than input (%d,%d)", tensor.ErrShapeMismatch, kh, kw, h, w)
	}

	oh, ow := h-kh+1, w-kw+1
	iRaw := di.RawMatrix()
	wRaw := dw.RawMatrix()
	out := make([]float64, oh*ow)
	for i := 0; i < oh; i++ {
		for j := 0; j < ow; j++ {
			acc := 0.0
			for ki := 0; ki < kh; ki++ {
				wRow := blas64.Vector{N: kw, Data: wRaw.Data[ki*wRaw.Stride : ki*wRaw.Stride+kw], Inc: 1}
				iRow := blas64.Vector{N: kw, Data: iRaw.Data[(i+ki)*iRaw.Stride+j : (i+ki)*iRaw.Stride+j+kw], Inc: 1}
				acc += blas64.Dot(wRow, iRow)
			}
			out[i*ow+j] = acc
		}
	}
	return tensor.FromDense[T](mat.NewDense(oh, ow, out))
}
