package testutil

import "testing"

func TestPeakAbs(t *testing.T) {
	if got := PeakAbs([]float64{0.5, -2, 1}); got != 2 {
		t.Fatalf("PeakAbs = %v, want 2", got)
	}
	if got := PeakAbs(nil); got != 0 {
		t.Fatalf("PeakAbs(nil) = %v, want 0", got)
	}
}

func TestRequireSliceNearlyEqualPasses(t *testing.T) {
	RequireSliceNearlyEqual(t, []float64{1, 2}, []float64{1, 2 + 1e-13}, 1e-12)
	RequireFinite(t, Ones(4))
}
