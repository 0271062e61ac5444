package tensor

import (
	"fmt"
	"sort"
)

// TopK returns, for every slice along the 1-based dimension dim, the k
// smallest (increasing) or largest (decreasing) values together with
// their 1-based positions in the source slice. Equal values keep their
// original relative order, so returned positions are deterministic.
// k must satisfy 0 < k <= extent(dim). With k equal to the extent the
// result is a full stable sort of each slice.
func (t *Tensor[T]) TopK(k, dim int, increasing bool) (values, indices *Tensor[T], err error) {
	d, err := t.normDim(dim)
	if err != nil {
		return nil, nil, fmt.Errorf("tensor: topk: %w", err)
	}
	extent := t.size[d]
	if k <= 0 || k > extent {
		return nil, nil, fmt.Errorf("tensor: topk: k %d out of range (0, %d]", k, extent)
	}

	outSize := append([]int(nil), t.size...)
	outSize[d] = k
	values = &Tensor[T]{num: t.num}
	indices = &Tensor[T]{num: t.num}
	if err := values.Resize(outSize, nil); err != nil {
		return nil, nil, err
	}
	if err := indices.Resize(outSize, nil); err != nil {
		return nil, nil, err
	}

	type pair struct {
		value T
		pos   int // 1-based position in the source slice
	}
	scratch := make([]pair, extent)
	num := t.num

	err = dimApply(t, []*Tensor[T]{values, indices}, d, func(src DimSlice[T], outs []DimSlice[T]) {
		for i := 0; i < extent; i++ {
			scratch[i] = pair{value: src.Get(i), pos: i + 1}
		}
		if increasing {
			sort.SliceStable(scratch, func(a, b int) bool {
				return num.Greater(scratch[b].value, scratch[a].value)
			})
		} else {
			sort.SliceStable(scratch, func(a, b int) bool {
				return num.Greater(scratch[a].value, scratch[b].value)
			})
		}
		for i := 0; i < k; i++ {
			outs[0].Set(i, scratch[i].value)
			outs[1].Set(i, num.FromInt(scratch[i].pos))
		}
	})
	if err != nil {
		return nil, nil, err
	}
	return values, indices, nil
}
