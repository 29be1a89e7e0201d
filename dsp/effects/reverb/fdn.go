package reverb

import (
	"math"

	"github.com/cwbudde/algo-jverb/dsp/core"
	"github.com/cwbudde/algo-jverb/dsp/delay"
	"github.com/cwbudde/algo-jverb/dsp/filter/onepole"
	"github.com/cwbudde/algo-vecmath"
)

// FDN is a feedback delay network of N lines. Each line runs
//
//	out[i] = lowpass(delay(in[i] + feedback[i])) * gain
//
// and the matrix turns out into the next feedback vector.
//
// The line count is fixed at construction.
type FDN struct {
	lines    []*delay.Line
	filters  []*onepole.Filter
	feedback []float64
	gain     float64
	matrix   Matrix
	norm     float64
}

// NewFDN creates an FDN with one line per entry in delays, all sharing the
// capacity maxDelay. Filters start fully open (infinite cutoff).
func NewFDN(delays []int, gain float64, maxDelay int, matrix Matrix) (*FDN, error) {
	n := len(delays)
	if n == 0 {
		return nil, core.Errorf("fdn needs at least one line")
	}
	if maxDelay <= 0 {
		return nil, core.Errorf("fdn delay capacity must be > 0: %d", maxDelay)
	}
	if err := matrix.validate(n); err != nil {
		return nil, err
	}

	f := &FDN{
		lines:    make([]*delay.Line, n),
		filters:  make([]*onepole.Filter, n),
		feedback: make([]float64, n),
		gain:     gain,
		matrix:   matrix,
		norm:     hadamardNorm(n),
	}
	for i, d := range delays {
		line, err := delay.New(maxDelay, d)
		if err != nil {
			return nil, err
		}
		f.lines[i] = line
		f.filters[i] = onepole.New(math.Inf(1))
	}
	return f, nil
}

// Lines returns the number of delay lines.
func (f *FDN) Lines() int { return len(f.lines) }

// Matrix returns the feedback matrix.
func (f *FDN) Matrix() Matrix { return f.matrix }

// Gain returns the loop gain.
func (f *FDN) Gain() float64 { return f.gain }

// Delays returns the active delay of every line.
func (f *FDN) Delays() []int {
	out := make([]int, len(f.lines))
	for i, l := range f.lines {
		out[i] = l.Delay()
	}
	return out
}

// MaxDelay returns the per-line capacity in samples.
func (f *FDN) MaxDelay() int { return f.lines[0].MaxDelay() }

// FeedbackState returns a copy of the vector fed into the next tick.
func (f *FDN) FeedbackState() []float64 {
	out := make([]float64, len(f.feedback))
	copy(out, f.feedback)
	return out
}

// Tick advances every line by one sample. frame holds one input per line
// and receives the outputs; it must have Lines() elements.
func (f *FDN) Tick(frame []float64) {
	frame = frame[:len(f.lines)]
	for i, x := range frame {
		y := f.lines[i].Tick(x + f.feedback[i])
		frame[i] = f.filters[i].Tick(y) * f.gain
	}

	switch f.matrix {
	case MatrixHadamard:
		hadamard(frame)
		vecmath.ScaleBlockInPlace(frame, f.norm)
		copy(f.feedback, frame)
	default:
		householder(f.feedback, frame)
	}
}

// SetGain sets the loop gain. Values in (0, 1] keep the network stable.
func (f *FDN) SetGain(gain float64) {
	f.gain = gain
}

// SetCutoff sets the normalized cutoff of every damping filter.
func (f *FDN) SetCutoff(cutoff float64) {
	for _, flt := range f.filters {
		flt.SetCutoff(cutoff)
	}
}

// SetDelays sets each line's delay, clamped to the capacity. It does not
// allocate.
func (f *FDN) SetDelays(delays []int) error {
	if len(delays) != len(f.lines) {
		return core.Errorf("fdn expects %d delays, got %d", len(f.lines), len(delays))
	}
	for i, d := range delays {
		f.lines[i].SetDelay(d)
	}
	return nil
}

// SetMaxDelays resizes every line to the same capacity. It may allocate.
func (f *FDN) SetMaxDelays(maxDelay int) error {
	if maxDelay <= 0 {
		return core.Errorf("fdn delay capacity must be > 0: %d", maxDelay)
	}
	for _, l := range f.lines {
		if err := l.SetMaxDelay(maxDelay); err != nil {
			return err
		}
	}
	return nil
}

// Reset clears every line, filter and the feedback vector.
func (f *FDN) Reset() {
	for i := range f.lines {
		f.filters[i].Reset()
		f.lines[i].Reset()
		f.feedback[i] = 0
	}
}
