// Package playback streams a processor's output to the default audio device.
package playback

import (
	"encoding/binary"
	"errors"
	"math"
	"sync"
)

// ErrUnavailable is returned when the binary was built without audio output.
var ErrUnavailable = errors.New("playback: audio output not available")

// bytesPerSample is the size of one float32 LE sample.
const bytesPerSample = 4

// Processor is a multichannel in-place block processor.
type Processor interface {
	Process(block [][]float64)
	Channels() int
}

// Source fills block with dry input. It returns false once the source is
// exhausted; the block must still be filled (with silence if needed).
type Source func(block [][]float64) bool

// Stream renders Processor output as interleaved float32 LE bytes. It
// implements io.Reader and keeps producing output, including the reverb tail,
// after the source is exhausted.
type Stream struct {
	mu        sync.Mutex
	proc      Processor
	src       Source
	block     [][]float64
	out       []byte
	pending   []byte
	exhausted bool
}

// NewStream creates a stream pulling input from src through proc.
// blockSize bounds the number of frames rendered per processor call.
func NewStream(proc Processor, src Source, blockSize int) *Stream {
	if blockSize <= 0 {
		blockSize = 512
	}
	block := make([][]float64, proc.Channels())
	for c := range block {
		block[c] = make([]float64, blockSize)
	}
	return &Stream{
		proc:  proc,
		src:   src,
		block: block,
		out:   make([]byte, blockSize*len(block)*bytesPerSample),
	}
}

// Channels returns the interleaved channel count.
func (s *Stream) Channels() int { return len(s.block) }

// Exhausted reports whether the source has run dry.
func (s *Stream) Exhausted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.exhausted
}

// Update runs fn while holding the stream lock, so the processor can be
// reconfigured while the device is pulling samples.
func (s *Stream) Update(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn()
}

// Read fills p with rendered samples. It always fills p completely.
func (s *Stream) Read(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for n < len(p) {
		if len(s.pending) == 0 {
			s.render()
		}
		c := copy(p[n:], s.pending)
		s.pending = s.pending[c:]
		n += c
	}
	return n, nil
}

func (s *Stream) render() {
	for _, ch := range s.block {
		clear(ch)
	}
	if !s.exhausted && s.src != nil && !s.src(s.block) {
		s.exhausted = true
	}
	s.proc.Process(s.block)

	n := EncodeFloat32LE(s.out, s.block)
	s.pending = s.out[:n]
}

// EncodeFloat32LE interleaves block into dst as little-endian float32 and
// returns the number of bytes written. dst must hold
// len(block)*len(block[0])*4 bytes.
func EncodeFloat32LE(dst []byte, block [][]float64) int {
	if len(block) == 0 {
		return 0
	}
	frames := len(block[0])
	off := 0
	for i := 0; i < frames; i++ {
		for _, ch := range block {
			binary.LittleEndian.PutUint32(dst[off:], math.Float32bits(float32(ch[i])))
			off += bytesPerSample
		}
	}
	return off
}

// NoiseBurst returns a Source producing length frames of deterministic white
// noise at the given amplitude, identical on every channel, then silence.
func NoiseBurst(length int, amplitude float64) Source {
	var state uint32 = 0x12345678
	remaining := length
	return func(block [][]float64) bool {
		frames := min(remaining, len(block[0]))
		for i := 0; i < frames; i++ {
			state ^= state << 13
			state ^= state >> 17
			state ^= state << 5
			v := amplitude * (float64(state)/math.MaxUint32*2 - 1)
			for _, ch := range block {
				ch[i] = v
			}
		}
		remaining -= frames
		return remaining > 0
	}
}
