package onepole

import (
	"math"

	"github.com/cwbudde/algo-jverb/dsp/core"
)

// Filter is a one-pole lowpass.
type Filter struct {
	cutoff float64
	a0     float64
	b1     float64
	y1     float64
}

// New returns a filter with the given normalized cutoff.
func New(cutoff float64) *Filter {
	f := &Filter{}
	f.SetCutoff(cutoff)
	return f
}

// NormalizedCutoff converts a cutoff in Hz to cycles per sample.
func NormalizedCutoff(hz, sampleRate float64) (float64, error) {
	if !core.IsFinite(sampleRate) || sampleRate <= 0 {
		return 0, core.Errorf("one-pole sample rate must be > 0: %f", sampleRate)
	}
	if math.IsNaN(hz) || hz < 0 {
		return 0, core.Errorf("one-pole cutoff must be >= 0 Hz: %f", hz)
	}
	return hz / sampleRate, nil
}

// Tick filters one sample.
func (f *Filter) Tick(x float64) float64 {
	y := x*f.a0 + f.y1*f.b1
	f.y1 = y
	return y
}

// SetCutoff recomputes the coefficients for a normalized cutoff. The filter
// state is kept. Negative and NaN cutoffs are treated as 0.
func (f *Filter) SetCutoff(cutoff float64) {
	if math.IsNaN(cutoff) || cutoff < 0 {
		cutoff = 0
	}
	x := mathExp(-2 * math.Pi * cutoff)
	f.cutoff = cutoff
	f.a0 = 1 - x
	f.b1 = x
}

// Cutoff returns the normalized cutoff.
func (f *Filter) Cutoff() float64 {
	return f.cutoff
}

// Coefficients returns the input and feedback coefficients.
func (f *Filter) Coefficients() (a0, b1 float64) {
	return f.a0, f.b1
}

// Reset clears the filter memory.
func (f *Filter) Reset() {
	f.y1 = 0
}
