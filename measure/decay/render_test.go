package decay_test

import (
	"testing"

	"github.com/cwbudde/algo-jverb/dsp/effects/reverb"
	"github.com/cwbudde/algo-jverb/measure/decay"
)

func renderRT60(t *testing.T, gain float64) float64 {
	t.Helper()
	const sampleRate = 8000

	r, err := reverb.NewFDNReverb(sampleRate, 1, reverb.WithLines(8))
	if err != nil {
		t.Fatalf("NewFDNReverb: %v", err)
	}
	if err := r.SetMix(1); err != nil {
		t.Fatal(err)
	}
	if err := r.SetGain(gain); err != nil {
		t.Fatal(err)
	}
	if err := r.SetCutoff(0.4); err != nil {
		t.Fatal(err)
	}

	ir := decay.RenderImpulseResponse(r, 6*sampleRate)
	if len(ir) != 1 || len(ir[0]) != 6*sampleRate {
		t.Fatalf("rendered shape %dx%d", len(ir), len(ir[0]))
	}

	m, err := decay.NewAnalyzer(sampleRate).Analyze(ir[0])
	if err != nil {
		t.Fatalf("Analyze(gain %v): %v", gain, err)
	}
	return m.RT60
}

func TestReverbDecayGrowsWithGain(t *testing.T) {
	short := renderRT60(t, 0.7)
	long := renderRT60(t, 0.95)
	if short <= 0 || long <= short {
		t.Fatalf("RT60 gain 0.7 = %.3f s, gain 0.95 = %.3f s; want increasing", short, long)
	}
}

func TestRenderImpulseResponseEmpty(t *testing.T) {
	r, err := reverb.NewFDNReverb(8000, 2, reverb.WithLines(4))
	if err != nil {
		t.Fatal(err)
	}
	if ir := decay.RenderImpulseResponse(r, 0); ir != nil {
		t.Fatalf("got %v, want nil", ir)
	}
}
