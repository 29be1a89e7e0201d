// Package feedback wraps a single-channel processor in its own feedback loop.
package feedback

import "github.com/cwbudde/algo-jverb/dsp/core"

// Loop feeds the gained output of an inner processor back into its input:
//
//	y[n] = g * P(x[n] + y[n-1])
//
// Loop owns the inner processor; callers should not tick it directly.
type Loop[P core.Processor] struct {
	inner P
	gain  float64
	last  float64
}

// New wraps inner with a feedback loop of the given gain.
func New[P core.Processor](inner P, gain float64) *Loop[P] {
	return &Loop[P]{inner: inner, gain: gain}
}

// Tick processes one sample.
func (l *Loop[P]) Tick(x float64) float64 {
	out := l.inner.Tick(x+l.last) * l.gain
	l.last = out
	return out
}

// SetGain sets the loop gain. Values with magnitude >= 1 do not decay.
func (l *Loop[P]) SetGain(gain float64) {
	l.gain = gain
}

// Gain returns the loop gain.
func (l *Loop[P]) Gain() float64 {
	return l.gain
}

// Inner returns the wrapped processor for parameter changes.
func (l *Loop[P]) Inner() P {
	return l.inner
}

// Reset clears the fed-back sample and resets the inner processor.
func (l *Loop[P]) Reset() {
	l.last = 0
	l.inner.Reset()
}
