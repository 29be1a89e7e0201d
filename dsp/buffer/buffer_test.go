package buffer

import "testing"

func TestNewNegativeLength(t *testing.T) {
	b := New(-3)
	if b.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", b.Len())
	}
}

func TestResizeGrowAppendsZeros(t *testing.T) {
	b := New(3)
	copy(b.Samples(), []float64{1, 2, 3})

	b.Resize(5)

	want := []float64{1, 2, 3, 0, 0}
	for i, v := range want {
		if b.Samples()[i] != v {
			t.Fatalf("sample %d = %v, want %v", i, b.Samples()[i], v)
		}
	}
}

func TestResizeShrinkThenGrowClearsStaleTail(t *testing.T) {
	b := New(6)
	for i := range b.Samples() {
		b.Samples()[i] = float64(i + 1)
	}

	b.Resize(2)
	if b.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", b.Len())
	}

	// Regrowing inside the old capacity must not resurrect discarded samples.
	b.Resize(6)
	for i := 2; i < 6; i++ {
		if b.Samples()[i] != 0 {
			t.Fatalf("sample %d = %v after regrow, want 0", i, b.Samples()[i])
		}
	}
	if b.Samples()[0] != 1 || b.Samples()[1] != 2 {
		t.Fatalf("head = %v, want [1 2]", b.Samples()[:2])
	}
}

func TestZeroRangeClampsBounds(t *testing.T) {
	b := New(4)
	copy(b.Samples(), []float64{1, 2, 3, 4})

	b.ZeroRange(-5, 2)
	b.ZeroRange(3, 99)

	want := []float64{0, 0, 3, 0}
	for i, v := range want {
		if b.Samples()[i] != v {
			t.Fatalf("sample %d = %v, want %v", i, b.Samples()[i], v)
		}
	}
}

func TestZero(t *testing.T) {
	b := New(3)
	copy(b.Samples(), []float64{1, -1, 7})
	b.Zero()
	for i, v := range b.Samples() {
		if v != 0 {
			t.Fatalf("sample %d = %v, want 0", i, v)
		}
	}
}
