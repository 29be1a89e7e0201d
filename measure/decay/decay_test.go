package decay

import (
	"errors"
	"math"
	"testing"
)

// makeExponentialDecay generates a synthetic IR with known RT60.
// h(t) = exp(-ln(10^3) * t / rt60) reaches -60 dB at rt60.
func makeExponentialDecay(sampleRate, rt60, durationSec float64, leadIn int) []float64 {
	n := int(sampleRate * durationSec)
	ir := make([]float64, leadIn+n)
	rate := math.Log(1000) / rt60
	for i := 0; i < n; i++ {
		ir[leadIn+i] = math.Exp(-rate * float64(i) / sampleRate)
	}
	return ir
}

func TestAnalyzeExponentialDecay(t *testing.T) {
	const sampleRate = 8000.0
	for _, rt60 := range []float64{0.25, 0.8, 1.5} {
		ir := makeExponentialDecay(sampleRate, rt60, 3*rt60, 100)

		m, err := NewAnalyzer(sampleRate).Analyze(ir)
		if err != nil {
			t.Fatalf("rt60 %v: %v", rt60, err)
		}
		if m.PeakIndex != 100 {
			t.Fatalf("PeakIndex = %d, want 100", m.PeakIndex)
		}
		for name, got := range map[string]float64{"RT60": m.RT60, "EDT": m.EDT, "T20": m.T20, "T30": m.T30} {
			if math.Abs(got-rt60) > 0.02*rt60 {
				t.Fatalf("rt60 %v: %s = %.4f", rt60, name, got)
			}
		}
		if m.Energy <= 0 {
			t.Fatalf("Energy = %v, want > 0", m.Energy)
		}
	}
}

func TestAnalyzeErrors(t *testing.T) {
	if _, err := NewAnalyzer(48000).Analyze(nil); !errors.Is(err, ErrEmptyIR) {
		t.Fatalf("empty IR error = %v", err)
	}
	if _, err := NewAnalyzer(0).Analyze([]float64{1}); !errors.Is(err, ErrInvalidSampleRate) {
		t.Fatalf("sample rate error = %v", err)
	}

	// A lone impulse falls straight to the floor; no slope can be fitted.
	m, err := NewAnalyzer(48000).Analyze([]float64{0, 1, 0, 0, 0})
	if !errors.Is(err, ErrNoDecay) {
		t.Fatalf("impulse error = %v, want ErrNoDecay", err)
	}
	if m.PeakIndex != 1 || m.RT60 != 0 {
		t.Fatalf("partial metrics = %+v", m)
	}
}

func TestSchroederCurve(t *testing.T) {
	a := NewAnalyzer(1000)
	curve, err := a.SchroederCurve([]float64{1, 1, 1, 1})
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{0, 10 * math.Log10(0.75), 10 * math.Log10(0.5), 10 * math.Log10(0.25)}
	for i := range want {
		if math.Abs(curve[i]-want[i]) > 1e-12 {
			t.Fatalf("curve[%d] = %v, want %v", i, curve[i], want[i])
		}
	}

	curve, err = a.SchroederCurve([]float64{1, 0})
	if err != nil {
		t.Fatal(err)
	}
	if curve[1] != floorDB {
		t.Fatalf("silent tail = %v, want %v", curve[1], floorDB)
	}

	if _, err := a.SchroederCurve(nil); !errors.Is(err, ErrEmptyIR) {
		t.Fatalf("empty error = %v", err)
	}
}
