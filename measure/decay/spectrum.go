package decay

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-jverb/dsp/core"
	"github.com/cwbudde/algo-vecmath"
)

// ErrInvalidFFTSize is returned for FFT sizes that are not a power of two >= 2.
var ErrInvalidFFTSize = errors.New("decay: fft size must be a power of two >= 2")

// MagnitudeResponse returns |H(k)| for bins 0..fftSize/2 of ir, zero-padded
// or truncated to fftSize.
func MagnitudeResponse(ir []float64, fftSize int) ([]float64, error) {
	if len(ir) == 0 {
		return nil, ErrEmptyIR
	}
	if fftSize < 2 || !core.IsPowerOfTwo(fftSize) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidFFTSize, fftSize)
	}

	in := make([]complex128, fftSize)
	for i := 0; i < min(len(ir), fftSize); i++ {
		in[i] = complex(ir[i], 0)
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("decay: failed to create FFT plan: %w", err)
	}

	out := make([]complex128, fftSize)
	if err := plan.Forward(out, in); err != nil {
		return nil, fmt.Errorf("decay: forward FFT: %w", err)
	}

	bins := fftSize/2 + 1
	re := make([]float64, bins)
	im := make([]float64, bins)
	for k := range bins {
		re[k] = real(out[k])
		im[k] = imag(out[k])
	}

	mag := make([]float64, bins)
	vecmath.Magnitude(mag, re, im)
	return mag, nil
}

// BandLevels returns the mean power of mag inside each band [edges[i],
// edges[i+1]) in dB. mag holds bins 0..N/2 of an N-point transform.
// Bands without bins report -Inf.
func BandLevels(mag []float64, sampleRate float64, edges []float64) ([]float64, error) {
	if len(mag) < 2 {
		return nil, ErrEmptyIR
	}
	if sampleRate <= 0 {
		return nil, ErrInvalidSampleRate
	}
	if len(edges) < 2 {
		return nil, fmt.Errorf("decay: need at least two band edges, got %d", len(edges))
	}

	fftSize := 2 * (len(mag) - 1)
	binHz := sampleRate / float64(fftSize)

	levels := make([]float64, len(edges)-1)
	for b := range levels {
		lo, hi := edges[b], edges[b+1]
		if hi <= lo {
			return nil, fmt.Errorf("decay: band edges must increase: %g, %g", lo, hi)
		}

		first := int(math.Ceil(lo / binHz))
		last := min(int(math.Ceil(hi/binHz))-1, len(mag)-1)

		power, count := 0.0, 0
		for k := max(first, 0); k <= last; k++ {
			power += mag[k] * mag[k]
			count++
		}
		if count == 0 || power == 0 {
			levels[b] = math.Inf(-1)
			continue
		}
		levels[b] = 10 * math.Log10(power/float64(count))
	}
	return levels, nil
}

// OctaveEdges returns octave band edges starting at lowHz and doubling up to
// the Nyquist frequency.
func OctaveEdges(lowHz, sampleRate float64) []float64 {
	if lowHz <= 0 || sampleRate <= 0 {
		return nil
	}
	nyquist := sampleRate / 2
	var edges []float64
	for f := lowHz; f < nyquist; f *= 2 {
		edges = append(edges, f)
	}
	return append(edges, nyquist)
}
