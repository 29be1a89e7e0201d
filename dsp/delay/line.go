package delay

import (
	"github.com/cwbudde/algo-jverb/dsp/buffer"
	"github.com/cwbudde/algo-jverb/dsp/core"
)

// Line is an integer delay whose ring length follows the active delay rather
// than the allocated capacity.
//
// The write cursor stays in [0, Delay()). Samples stored at or beyond the
// active delay are never read and are kept at zero when the delay shrinks.
type Line struct {
	buf      *buffer.Buffer
	delay    int
	writePos int
}

// New returns a delay line holding up to maxDelay samples with the given
// active delay. The initial delay may use the whole buffer.
func New(maxDelay, delay int) (*Line, error) {
	if maxDelay <= 0 {
		return nil, core.Errorf("delay capacity must be > 0: %d", maxDelay)
	}
	if delay < 0 {
		return nil, core.Errorf("delay must be >= 0: %d", delay)
	}
	return &Line{
		buf:   buffer.New(maxDelay),
		delay: min(delay, maxDelay),
	}, nil
}

// Delay returns the active delay in samples.
func (l *Line) Delay() int {
	return l.delay
}

// MaxDelay returns the allocated capacity in samples.
func (l *Line) MaxDelay() int {
	return l.buf.Len()
}

// Tick returns the sample written Delay() ticks ago and stores x in its slot.
// A delay of 0 behaves like a delay of 1.
func (l *Line) Tick(x float64) float64 {
	samples := l.buf.Samples()
	out := samples[l.writePos]
	samples[l.writePos] = x

	l.writePos++
	if l.writePos >= l.delay {
		l.writePos = 0
	}
	return out
}

// SetDelay changes the active delay, clamped to MaxDelay()-1. Requesting
// the current delay is a no-op, including a full-buffer delay set by New.
//
// Shrinking zeroes the slots that fall out of the ring so that growing the
// delay again never replays stale samples. SetDelay never allocates.
func (l *Line) SetDelay(delay int) {
	if delay == l.delay {
		return
	}
	delay = core.ClampInt(delay, 0, l.buf.Len()-1)
	if delay == l.delay {
		return
	}

	if delay < l.delay {
		l.buf.ZeroRange(delay, l.delay)
		if l.writePos >= delay {
			l.writePos = 0
		}
	}
	l.delay = delay
}

// SetMaxDelay resizes the backing buffer. Growing appends zeros, shrinking
// discards the tail. An active delay that no longer fits is clamped to
// maxDelay-1. SetMaxDelay may allocate.
func (l *Line) SetMaxDelay(maxDelay int) error {
	if maxDelay <= 0 {
		return core.Errorf("delay capacity must be > 0: %d", maxDelay)
	}
	if maxDelay == l.buf.Len() {
		return nil
	}

	l.buf.Resize(maxDelay)
	if l.delay > maxDelay {
		l.delay = maxDelay - 1
	}
	if l.writePos >= max(l.delay, 1) {
		l.writePos = 0
	}
	return nil
}

// Reset clears the stored samples. The write cursor is left where it is.
func (l *Line) Reset() {
	l.buf.Zero()
}
