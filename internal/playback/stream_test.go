package playback

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/cwbudde/algo-jverb/dsp/effects/reverb"
)

// gainProcessor scales every channel by its index plus one.
type gainProcessor struct {
	channels int
	calls    int
}

func (g *gainProcessor) Channels() int { return g.channels }

func (g *gainProcessor) Process(block [][]float64) {
	g.calls++
	for c, ch := range block {
		for i := range ch {
			ch[i] *= float64(c + 1)
		}
	}
}

func decode(p []byte) []float32 {
	out := make([]float32, len(p)/bytesPerSample)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(p[i*bytesPerSample:]))
	}
	return out
}

func TestEncodeFloat32LEInterleaves(t *testing.T) {
	block := [][]float64{{1, 2}, {-0.5, 0.25}}
	dst := make([]byte, 16)

	if n := EncodeFloat32LE(dst, block); n != 16 {
		t.Fatalf("n = %d, want 16", n)
	}
	got := decode(dst)
	want := []float32{1, -0.5, 2, 0.25}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("samples = %v, want %v", got, want)
		}
	}
	if EncodeFloat32LE(dst, nil) != 0 {
		t.Fatal("expected 0 bytes for an empty block")
	}
}

func TestStreamFillsArbitraryReads(t *testing.T) {
	proc := &gainProcessor{channels: 2}
	src := func(block [][]float64) bool {
		for c := range block {
			for i := range block[c] {
				block[c][i] = 1
			}
		}
		return true
	}
	s := NewStream(proc, src, 4)

	// 4 frames * 2 channels * 4 bytes = 32 bytes per render; read across
	// render boundaries and mid-sample.
	var all []byte
	for _, size := range []int{3, 13, 30, 18} {
		p := make([]byte, size)
		n, err := s.Read(p)
		if err != nil || n != size {
			t.Fatalf("Read(%d) = %d, %v", size, n, err)
		}
		all = append(all, p...)
	}

	samples := decode(all)
	for i, v := range samples {
		want := float32(1 + i%2)
		if v != want {
			t.Fatalf("sample %d = %v, want %v", i, v, want)
		}
	}
	if proc.calls != 2 {
		t.Fatalf("processor calls = %d, want 2", proc.calls)
	}
}

func TestStreamRendersManyBlocks(t *testing.T) {
	proc := &gainProcessor{channels: 1}
	s := NewStream(proc, nil, 8)

	p := make([]byte, 8*bytesPerSample)
	for i := range 5 {
		if n, err := s.Read(p); err != nil || n != len(p) {
			t.Fatalf("read %d: n = %d, err = %v", i, n, err)
		}
	}
	if proc.calls != 5 {
		t.Fatalf("processor calls = %d, want 5", proc.calls)
	}
}

func TestStreamTailAfterSourceExhausted(t *testing.T) {
	r, err := reverb.NewFDNReverb(8000, 1, reverb.WithLines(4))
	if err != nil {
		t.Fatal(err)
	}
	if err := r.SetMix(1); err != nil {
		t.Fatal(err)
	}

	s := NewStream(r, NoiseBurst(16, 0.5), 64)
	if s.Channels() != 1 {
		t.Fatalf("Channels = %d, want 1", s.Channels())
	}

	p := make([]byte, 64*bytesPerSample)
	if _, err := s.Read(p); err != nil {
		t.Fatal(err)
	}
	if !s.Exhausted() {
		t.Fatal("expected the burst to be exhausted after one block")
	}

	// The wet signal arrives after the shortest line and keeps ringing after
	// the burst ends.
	p = make([]byte, 1024*bytesPerSample)
	if _, err := s.Read(p); err != nil {
		t.Fatal(err)
	}
	peak := float32(0)
	for _, v := range decode(p) {
		peak = max(peak, float32(math.Abs(float64(v))))
	}
	if peak == 0 {
		t.Fatal("expected a reverb tail after the burst")
	}
}

func TestStreamUpdate(t *testing.T) {
	proc := &gainProcessor{channels: 1}
	s := NewStream(proc, nil, 0)
	s.Update(func() { proc.channels = 1 })

	p := make([]byte, 8)
	if _, err := s.Read(p); err != nil {
		t.Fatal(err)
	}
	for _, v := range decode(p) {
		if v != 0 {
			t.Fatalf("expected silence without a source, got %v", v)
		}
	}
}

func TestNoiseBurst(t *testing.T) {
	src := NoiseBurst(6, 0.25)
	block := [][]float64{make([]float64, 4), make([]float64, 4)}

	if !src(block) {
		t.Fatal("burst ended early")
	}
	for i := range block[0] {
		if block[0][i] != block[1][i] {
			t.Fatalf("channels differ at %d", i)
		}
		if math.Abs(block[0][i]) > 0.25 {
			t.Fatalf("sample %d = %v exceeds amplitude", i, block[0][i])
		}
	}

	clear(block[0])
	clear(block[1])
	if src(block) {
		t.Fatal("expected the burst to end")
	}
	if block[0][1] == 0 || block[0][2] != 0 {
		t.Fatalf("second block = %v, want two noise samples then silence", block[0])
	}
}
