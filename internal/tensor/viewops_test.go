package tensor

import (
	"errors"
	"testing"
)

// flatten collects the logical elements in iteration order.
func flatten[T Float](t *Tensor[T]) []T {
	out := make([]T, 0, t.NumElements())
	data := t.Storage().Data()
	t.iterate(func(addr int) {
		out = append(out, data[addr])
	})
	return out
}

func assertElements(t *testing.T, expected []float64, tt *Tensor[float64], msg string) {
	t.Helper()
	got := flatten(tt)
	if len(got) != len(expected) {
		t.Fatalf("%s: expected %v, got %v", msg, expected, got)
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Fatalf("%s: expected %v, got %v", msg, expected, got)
		}
	}
}

func TestNarrowSecondRow(t *testing.T) {
	tt := mustRange23(t)

	row, err := tt.Narrow(1, 2, 1)
	assertNoError(t, err, "Narrow")
	assertEqualInts(t, []int{1, 3}, row.Sizes(), "narrowed size")
	assertElements(t, []float64{4, 5, 6}, row, "second row")

	if row.Storage() != tt.Storage() {
		t.Error("narrow must alias the source storage")
	}
}

func TestNarrowValidation(t *testing.T) {
	tt := mustRange23(t)

	if _, err := tt.Narrow(1, 3, 1); !errors.Is(err, ErrIndexRange) {
		t.Errorf("start past extent: got %v", err)
	}
	if _, err := tt.Narrow(1, 1, 3); err == nil {
		t.Error("length past extent should fail")
	}
	if _, err := tt.Narrow(1, 1, 0); err == nil {
		t.Error("zero length should fail")
	}
	if _, err := tt.Narrow(3, 1, 1); !errors.Is(err, ErrDimRange) {
		t.Errorf("bad dimension: got %v", err)
	}
}

func TestNarrowNegativeStart(t *testing.T) {
	tt := mustRange23(t)
	row, err := tt.Narrow(1, -1, 1)
	assertNoError(t, err, "Narrow(-1)")
	assertElements(t, []float64{4, 5, 6}, row, "narrow from the last row")
}

func TestSelectCollapsesDimension(t *testing.T) {
	tt := mustRange23(t)

	col, err := tt.Select(2, 2)
	assertNoError(t, err, "Select")
	assertEqualInts(t, []int{2}, col.Sizes(), "selected size")
	assertEqualInts(t, []int{3}, col.Strides(), "selected stride")
	assertElements(t, []float64{2, 5}, col, "second column")

	if col.Storage() != tt.Storage() {
		t.Error("select must alias the source storage")
	}
}

func TestSelectOnRank1Fails(t *testing.T) {
	v, err := FromSlice([]float64{1, 2, 3}, 3)
	assertNoError(t, err, "FromSlice")
	if _, err := v.Select(1, 2); err == nil {
		t.Error("select on a rank-1 tensor must fail")
	}
}

func TestTransposeGeometry(t *testing.T) {
	tt := mustRange23(t)

	tr, err := tt.Transpose(1, 2)
	assertNoError(t, err, "Transpose")
	assertEqualInts(t, []int{3, 2}, tr.Sizes(), "transposed size")
	if tr.IsContiguous() {
		t.Error("transpose of a 2x3 must be non-contiguous")
	}

	// (1,1)=1 (1,2)=4 (2,1)=2 (2,2)=5 (3,1)=3 (3,2)=6
	cases := []struct {
		i, j int
		want float64
	}{
		{1, 1, 1}, {1, 2, 4}, {2, 1, 2}, {2, 2, 5}, {3, 1, 3}, {3, 2, 6},
	}
	for _, c := range cases {
		got, err := tr.Get(c.i, c.j)
		assertNoError(t, err, "Get")
		assertEqualFloat64(t, c.want, got, "transposed element")
	}
}

func TestTransposeTwiceRestores(t *testing.T) {
	tt := mustRange23(t)
	tr, err := tt.Transpose(1, 2)
	assertNoError(t, err, "first transpose")
	back, err := tr.Transpose(1, 2)
	assertNoError(t, err, "second transpose")

	assertEqualInts(t, tt.Sizes(), back.Sizes(), "size restored")
	assertEqualInts(t, tt.Strides(), back.Strides(), "stride restored")
	if back.Offset() != tt.Offset() {
		t.Errorf("offset changed: %d vs %d", back.Offset(), tt.Offset())
	}
}

func TestTransposeSameDimNoOp(t *testing.T) {
	tt := mustRange23(t)
	same, err := tt.Transpose(2, 2)
	assertNoError(t, err, "Transpose(2,2)")
	assertEqualInts(t, tt.Sizes(), same.Sizes(), "size unchanged")
	assertEqualInts(t, tt.Strides(), same.Strides(), "stride unchanged")
}

func TestUnfoldSlidingWindows(t *testing.T) {
	v, err := FromSlice([]float64{10, 20, 30, 40}, 4)
	assertNoError(t, err, "FromSlice")

	u, err := v.Unfold(1, 2, 1)
	assertNoError(t, err, "Unfold")
	assertEqualInts(t, []int{3, 2}, u.Sizes(), "unfolded size")
	assertElements(t, []float64{10, 20, 20, 30, 30, 40}, u, "windows [a b][b c][c d]")
}

func TestUnfoldAliasesSource(t *testing.T) {
	v, err := FromSlice([]float64{10, 20, 30, 40}, 4)
	assertNoError(t, err, "FromSlice")
	u, err := v.Unfold(1, 2, 1)
	assertNoError(t, err, "Unfold")

	// Mutating b must show up at both of its window positions.
	assertNoError(t, v.Set(99, 2), "Set")
	first, err := u.Get(1, 2)
	assertNoError(t, err, "Get(1,2)")
	second, err := u.Get(2, 1)
	assertNoError(t, err, "Get(2,1)")
	assertEqualFloat64(t, 99, first, "window 1 position 2")
	assertEqualFloat64(t, 99, second, "window 2 position 1")
}

func TestUnfoldStep(t *testing.T) {
	v, err := FromSlice([]float64{1, 2, 3, 4, 5}, 5)
	assertNoError(t, err, "FromSlice")
	u, err := v.Unfold(1, 2, 2)
	assertNoError(t, err, "Unfold step 2")
	assertEqualInts(t, []int{2, 2}, u.Sizes(), "unfolded size")
	assertElements(t, []float64{1, 2, 3, 4}, u, "non-overlapping windows")
}

func TestUnfoldValidation(t *testing.T) {
	v, _ := FromSlice([]float64{1, 2, 3}, 3)
	if _, err := v.Unfold(1, 4, 1); err == nil {
		t.Error("window larger than extent should fail")
	}
	if _, err := v.Unfold(1, 0, 1); err == nil {
		t.Error("zero window should fail")
	}
	if _, err := v.Unfold(1, 2, 0); err == nil {
		t.Error("zero step should fail")
	}
}

func TestExpandBroadcasts(t *testing.T) {
	col, err := FromSlice([]float64{1, 2, 3}, 3, 1)
	assertNoError(t, err, "FromSlice")

	e, err := col.Expand(3, 4)
	assertNoError(t, err, "Expand")
	assertEqualInts(t, []int{3, 4}, e.Sizes(), "expanded size")
	st, _ := e.Stride(2)
	if st != 0 {
		t.Errorf("expanded dimension must have stride 0, got %d", st)
	}
	assertElements(t, []float64{1, 1, 1, 1, 2, 2, 2, 2, 3, 3, 3, 3}, e, "broadcast rows")

	if e.Storage() != col.Storage() {
		t.Error("expand must alias the source storage")
	}
}

func TestExpandRejectsNonSingleton(t *testing.T) {
	tt := mustRange23(t)
	if _, err := tt.Expand(2, 5); err == nil {
		t.Error("expanding a non-singleton dimension must fail")
	}
	if _, err := tt.Expand(2); !errors.Is(err, ErrShapeMismatch) {
		t.Errorf("rank mismatch: got %v", err)
	}
	// Matching extents pass through untouched.
	same, err := tt.Expand(2, 3)
	assertNoError(t, err, "Expand to own size")
	assertEqualInts(t, tt.Strides(), same.Strides(), "strides unchanged")
}

func TestViewReshapesContiguous(t *testing.T) {
	tt := mustRange23(t)

	v, err := tt.View(3, 2)
	assertNoError(t, err, "View")
	assertEqualInts(t, []int{3, 2}, v.Sizes(), "viewed size")
	assertElements(t, []float64{1, 2, 3, 4, 5, 6}, v, "row-major sequence preserved")

	flat, err := tt.View(6)
	assertNoError(t, err, "View flat")
	assertElements(t, []float64{1, 2, 3, 4, 5, 6}, flat, "flattened")
}

func TestViewFailsOnNonContiguous(t *testing.T) {
	tt := mustRange23(t)
	tr, _ := tt.Transpose(1, 2)
	if _, err := tr.View(6); !errors.Is(err, ErrNotContiguous) {
		t.Errorf("view of a non-contiguous tensor: got %v", err)
	}
	if _, err := tr.View(3, 2); !errors.Is(err, ErrNotContiguous) {
		t.Errorf("view fails regardless of requested size: got %v", err)
	}
}

func TestViewFailsOnCountMismatch(t *testing.T) {
	tt := mustRange23(t)
	if _, err := tt.View(4); !errors.Is(err, ErrShapeMismatch) {
		t.Errorf("count mismatch: got %v", err)
	}
}

func TestPermute(t *testing.T) {
	tt, err := New[float64](2, 3, 4)
	assertNoError(t, err, "New")
	p, err := tt.Permute(3, 1, 2)
	assertNoError(t, err, "Permute")
	assertEqualInts(t, []int{4, 2, 3}, p.Sizes(), "permuted size")
	assertEqualInts(t, []int{1, 12, 4}, p.Strides(), "permuted stride")

	if _, err := tt.Permute(1, 1, 2); err == nil {
		t.Error("repeated dimension must fail")
	}
	if _, err := tt.Permute(1, 2); err == nil {
		t.Error("wrong arity must fail")
	}
}

func TestSqueezeUnsqueeze(t *testing.T) {
	tt, err := New[float64](2, 1, 3)
	assertNoError(t, err, "New")

	sq, err := tt.Squeeze(2)
	assertNoError(t, err, "Squeeze")
	assertEqualInts(t, []int{2, 3}, sq.Sizes(), "squeezed size")

	if _, err := tt.Squeeze(1); err == nil {
		t.Error("squeezing an extent-2 dimension must fail")
	}

	un, err := sq.Unsqueeze(1)
	assertNoError(t, err, "Unsqueeze")
	assertEqualInts(t, []int{1, 2, 3}, un.Sizes(), "unsqueezed size")

	back, err := un.Squeeze(1)
	assertNoError(t, err, "Squeeze back")
	assertEqualInts(t, []int{2, 3}, back.Sizes(), "round trip")
}

func TestRepeatTiles(t *testing.T) {
	v, err := FromSlice([]float64{1, 2}, 2)
	assertNoError(t, err, "FromSlice")

	r, err := v.Repeat(3)
	assertNoError(t, err, "Repeat(3)")
	assertEqualInts(t, []int{6}, r.Sizes(), "repeated size")
	assertElements(t, []float64{1, 2, 1, 2, 1, 2}, r, "tiled vector")

	if r.Storage() == v.Storage() {
		t.Error("repeat must materialize private storage")
	}
}

func TestRepeatAddsLeadingDims(t *testing.T) {
	v, err := FromSlice([]float64{1, 2}, 2)
	assertNoError(t, err, "FromSlice")

	r, err := v.Repeat(2, 2)
	assertNoError(t, err, "Repeat(2,2)")
	assertEqualInts(t, []int{2, 4}, r.Sizes(), "repeated size")
	assertElements(t, []float64{1, 2, 1, 2, 1, 2, 1, 2}, r, "tiled matrix")
}

func TestRepeat2D(t *testing.T) {
	tt := mustRange23(t)
	r, err := tt.Repeat(2, 1)
	assertNoError(t, err, "Repeat(2,1)")
	assertEqualInts(t, []int{4, 3}, r.Sizes(), "repeated size")
	assertElements(t, []float64{1, 2, 3, 4, 5, 6, 1, 2, 3, 4, 5, 6}, r, "stacked copies")
}

func TestRepeatValidation(t *testing.T) {
	tt := mustRange23(t)
	if _, err := tt.Repeat(2); err == nil {
		t.Error("too few repeat extents must fail")
	}
	if _, err := tt.Repeat(0, 1); err == nil {
		t.Error("zero repeat count must fail")
	}
}
