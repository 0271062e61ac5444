package tensor

import (
	"testing"
)

func TestApplyContiguous(t *testing.T) {
	tt := mustRange23(t)
	Apply(tt, func(v float64) float64 { return v * 10 })
	assertElements(t, []float64{10, 20, 30, 40, 50, 60}, tt, "scaled in place")
}

func TestApplyStridedTouchesViewOnly(t *testing.T) {
	tt := mustRange23(t)
	col, err := tt.Select(2, 2)
	assertNoError(t, err, "Select")

	Apply(col, func(v float64) float64 { return -v })
	assertElements(t, []float64{1, -2, 3, 4, -5, 6}, tt, "only the selected column negated")
}

func TestApply2Contiguous(t *testing.T) {
	a := mustRange23(t)
	b, err := FromSlice([]float64{10, 10, 10, 20, 20, 20}, 2, 3)
	assertNoError(t, err, "FromSlice b")

	assertNoError(t, Apply2(a, b, func(av, bv float64) float64 { return av + bv }), "Apply2")
	assertElements(t, []float64{11, 12, 13, 24, 25, 26}, a, "sum written into the first operand")
	assertElements(t, []float64{10, 10, 10, 20, 20, 20}, b, "second operand untouched")
}

func TestApply2StridedMatchesContiguous(t *testing.T) {
	// The same logical addition through a transposed (strided) pair
	// must agree with the contiguous path.
	a1 := mustRange23(t)
	b1, _ := FromSlice([]float64{6, 5, 4, 3, 2, 1}, 2, 3)
	assertNoError(t, Apply2(a1, b1, func(x, y float64) float64 { return x * y }), "contiguous Apply2")

	a2 := mustRange23(t)
	b2, _ := FromSlice([]float64{6, 5, 4, 3, 2, 1}, 2, 3)
	at, _ := a2.Transpose(1, 2)
	bt, _ := b2.Transpose(1, 2)
	assertNoError(t, Apply2(at, bt, func(x, y float64) float64 { return x * y }), "strided Apply2")

	if !a1.Equal(a2) {
		t.Errorf("strided result differs from contiguous: %v vs %v", a2, a1)
	}
}

func TestApply2BroadcastViaExpand(t *testing.T) {
	a := mustRange23(t)
	row, err := FromSlice([]float64{100, 200, 300}, 1, 3)
	assertNoError(t, err, "FromSlice row")
	b, err := row.Expand(2, 3)
	assertNoError(t, err, "Expand")

	assertNoError(t, Apply2(a, b, func(av, bv float64) float64 { return av + bv }), "Apply2 broadcast")
	assertElements(t, []float64{101, 202, 303, 104, 205, 306}, a, "zero-stride operand repeats per row")
}

func TestApply2CountMismatch(t *testing.T) {
	a := mustRange23(t)
	b, _ := FromSlice([]float64{1, 2}, 2)
	if err := Apply2(a, b, func(x, y float64) float64 { return x }); err == nil {
		t.Error("mismatched element counts must fail")
	}
}

func TestApply3(t *testing.T) {
	a, _ := FromSlice([]float64{0, 0, 0, 0}, 4)
	b, _ := FromSlice([]float64{1, 2, 3, 4}, 4)
	c, _ := FromSlice([]float64{10, 20, 30, 40}, 4)

	assertNoError(t, Apply3(a, b, c, func(_, bv, cv float64) float64 { return bv * cv }), "Apply3")
	assertElements(t, []float64{10, 40, 90, 160}, a, "product written into the first operand")
}

func TestApply3Strided(t *testing.T) {
	a, _ := New[float64](3, 2)
	src := mustRange23(t)
	bt, _ := src.Transpose(1, 2)
	ones, _ := FromSlice([]float64{1, 1, 1, 1, 1, 1}, 3, 2)

	assertNoError(t, Apply3(a, bt, ones, func(_, bv, cv float64) float64 { return bv * cv }), "Apply3 strided")
	assertElements(t, []float64{1, 4, 2, 5, 3, 6}, a, "transposed source copied through apply3")
}

func TestIterateVisitsEachPositionOnce(t *testing.T) {
	tt, _ := New[float64](2, 3, 4)
	u, err := tt.Unfold(3, 2, 2)
	assertNoError(t, err, "Unfold")

	count := 0
	u.iterate(func(int) { count++ })
	if count != u.NumElements() {
		t.Errorf("iterate visited %d positions, want %d", count, u.NumElements())
	}
}

func BenchmarkApply2Contiguous(b *testing.B) {
	a, _ := New[float64](64, 64)
	c, _ := New[float64](64, 64)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Apply2(a, c, func(x, y float64) float64 { return x + y })
	}
}

func BenchmarkApply2Strided(b *testing.B) {
	a, _ := New[float64](64, 64)
	c, _ := New[float64](64, 64)
	at, _ := a.Transpose(1, 2)
	ct, _ := c.Transpose(1, 2)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Apply2(at, ct, func(x, y float64) float64 { return x + y })
	}
}
