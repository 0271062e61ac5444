package tensor

import "fmt"

// Slice resolver: interprets an ordered list of per-dimension
// selectors, each a single index or an inclusive range, against the
// currently remaining leading dimension. An index selector collapses
// its dimension via select while more than one dimension remains; on
// the last remaining dimension it resolves to a scalar storage address.
// A range selector narrows the dimension and moves on to the next.
// Indices and bounds are 1-based and negative-aware; open range ends
// default to the first and last element.

// Sel is one per-dimension selector of a slice spec.
type Sel interface {
	sel()
}

type indexSel int

func (indexSel) sel() {}

type rangeSel struct {
	from, to int // 0 marks an open end
}

func (rangeSel) sel() {}

// I selects a single 1-based, negative-aware position.
func I(i int) Sel { return indexSel(i) }

// R selects the inclusive 1-based range [from, to]. Either bound may be
// negative (relative to the extent) or 0 (open: first or last element).
func R(from, to int) Sel { return rangeSel{from: from, to: to} }

// All selects a whole dimension.
func All() Sel { return rangeSel{} }

// resolve walks the selectors and returns the resolved sub-view. When
// the spec pins down exactly one element, scalar is true and addr is
// its absolute storage address (the view is then a 1-element tensor).
func (t *Tensor[T]) resolve(sels []Sel) (v *Tensor[T], addr int, scalar bool, err error) {
	v = t.shallow()
	d := 0
	for si, s := range sels {
		if d >= len(v.size) {
			return nil, 0, false, fmt.Errorf("tensor: slice: %w: selector %d exceeds rank %d", ErrDimRange, si+1, len(t.size))
		}
		switch s := s.(type) {
		case indexSel:
			i, err := normIndex(int(s), v.size[d])
			if err != nil {
				return nil, 0, false, fmt.Errorf("tensor: slice: selector %d: %w", si+1, err)
			}
			if len(v.size) > 1 {
				if err := v.select0(d, i); err != nil {
					return nil, 0, false, err
				}
				continue
			}
			// Last remaining dimension: a scalar, not a rank-1 view.
			if si != len(sels)-1 {
				return nil, 0, false, fmt.Errorf("tensor: slice: %w: selectors past a scalar resolution", ErrDimRange)
			}
			addr = v.offset + i*v.stride[d]
			if err := v.narrow0(d, i, 1); err != nil {
				return nil, 0, false, err
			}
			return v, addr, true, nil
		case rangeSel:
			from := 0
			if s.from != 0 {
				if from, err = normIndex(s.from, v.size[d]); err != nil {
					return nil, 0, false, fmt.Errorf("tensor: slice: selector %d: %w", si+1, err)
				}
			}
			to := v.size[d] - 1
			if s.to != 0 {
				if to, err = normIndex(s.to, v.size[d]); err != nil {
					return nil, 0, false, fmt.Errorf("tensor: slice: selector %d: %w", si+1, err)
				}
			}
			if to < from {
				return nil, 0, false, fmt.Errorf("tensor: slice: selector %d: empty range [%d, %d]", si+1, s.from, s.to)
			}
			if err := v.narrow0(d, from, to-from+1); err != nil {
				return nil, 0, false, err
			}
			d++
		}
	}
	return v, 0, false, nil
}

// At resolves a slice spec to a sub-view sharing the receiver's
// storage. A fully resolved scalar yields a 1-element tensor.
func (t *Tensor[T]) At(sels ...Sel) (*Tensor[T], error) {
	v, _, _, err := t.resolve(sels)
	return v, err
}

// Item resolves a slice spec that pins down exactly one element and
// returns its value.
func (t *Tensor[T]) Item(sels ...Sel) (T, error) {
	var zero T
	_, addr, scalar, err := t.resolve(sels)
	if err != nil {
		return zero, err
	}
	if !scalar {
		return zero, fmt.Errorf("tensor: item: %w: spec does not resolve to a single element", ErrShapeMismatch)
	}
	return t.storage.Get(addr), nil
}

// SetAt writes v at the resolved location: a direct store when the spec
// pins one element, otherwise a fill of the resolved sub-view.
func (t *Tensor[T]) SetAt(v T, sels ...Sel) error {
	view, addr, scalar, err := t.resolve(sels)
	if err != nil {
		return err
	}
	if scalar {
		t.storage.Set(addr, v)
		return nil
	}
	view.Fill(v)
	return nil
}

// CopyAt copies src into the sub-view resolved from the spec. Element
// counts must match.
func (t *Tensor[T]) CopyAt(src *Tensor[T], sels ...Sel) error {
	view, _, _, err := t.resolve(sels)
	if err != nil {
		return err
	}
	return view.CopyFrom(src)
}
