package buffer

// Buffer is a resizable float64 sample store.
// DSP code reads and writes the slice returned by Samples directly.
type Buffer struct {
	samples []float64
}

// New returns a zero-filled Buffer of the given length.
func New(length int) *Buffer {
	return &Buffer{samples: make([]float64, max(length, 0))}
}

// Samples returns the underlying slice. It is invalidated by Resize.
func (b *Buffer) Samples() []float64 { return b.samples }

// Len returns the current number of samples.
func (b *Buffer) Len() int { return len(b.samples) }

// Resize sets the length to n. Shrinking discards trailing samples and keeps
// the capacity; growing appends zeros and allocates only beyond the capacity.
func (b *Buffer) Resize(n int) {
	n = max(n, 0)
	old := len(b.samples)
	if n > cap(b.samples) {
		grown := make([]float64, n)
		copy(grown, b.samples)
		b.samples = grown
		return
	}
	b.samples = b.samples[:n]
	if n > old {
		// Reused capacity still holds samples discarded by an earlier shrink.
		clear(b.samples[old:])
	}
}

// Zero sets all samples to 0.
func (b *Buffer) Zero() { clear(b.samples) }

// ZeroRange sets samples in [start, end) to 0. Indices are clamped to the
// buffer.
func (b *Buffer) ZeroRange(start, end int) {
	start = max(start, 0)
	end = min(end, len(b.samples))
	if start < end {
		clear(b.samples[start:end])
	}
}
