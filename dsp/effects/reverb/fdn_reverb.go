package reverb

import (
	"math"

	"github.com/cwbudde/algo-jverb/dsp/core"
	"github.com/cwbudde/algo-jverb/dsp/filter/onepole"
	"github.com/cwbudde/algo-vecmath"
)

const (
	defaultFDNLines   = MaxLines
	defaultFDNMix     = 0.5
	defaultFDNSize    = 1.0
	defaultFDNMaxSize = 10.0
	defaultFDNGain    = 0.9
	defaultFDNLowpass = 0.8

	// lowpassCutoffScale maps the [0,1] lowpass control to a normalized
	// cutoff of at most a tenth of the sample rate.
	lowpassCutoffScale = 0.1
)

type fdnReverbConfig struct {
	processor core.ProcessorConfig
	lines     int
	matrix    Matrix
	maxSize   float64
}

// Option configures an FDNReverb at construction.
type Option func(*fdnReverbConfig)

// WithLines sets the internal line count. It must be a multiple of the
// channel count and at most MaxLines.
func WithLines(n int) Option {
	return func(cfg *fdnReverbConfig) {
		cfg.lines = n
	}
}

// WithMatrix selects the feedback matrix.
func WithMatrix(m Matrix) Option {
	return func(cfg *fdnReverbConfig) {
		cfg.matrix = m
	}
}

// WithMaxSize sets the largest size factor the delay buffers are allocated
// for.
func WithMaxSize(size float64) Option {
	return func(cfg *fdnReverbConfig) {
		cfg.maxSize = size
	}
}

// WithBlockSize sets how many frames are rendered before the dry/wet mix is
// applied. Larger blocks are split internally.
func WithBlockSize(n int) Option {
	return func(cfg *fdnReverbConfig) {
		core.WithBlockSize(n)(&cfg.processor)
	}
}

// FDNReverb is a multichannel FDN reverb with an equal-power dry/wet mix.
//
// Every frame is split onto the internal lines, run through the FDN once,
// joined back to the channel count and blended with the dry input:
//
//	out = dry·√(1-mix) + wet·√mix
type FDNReverb struct {
	sampleRate float64
	channels   int
	blockSize  int

	mix      float64
	size     float64
	maxSize  float64
	gain     float64
	cutoff   float64
	cutoffHz float64 // > 0 when the cutoff follows the sample rate

	junction *Junction
	fdn      *FDN

	delays []int
	frame  []float64
	lines  []float64
	wet    [][]float64
}

// NewFDNReverb creates a reverb for the given sample rate and channel count.
func NewFDNReverb(sampleRate float64, channels int, opts ...Option) (*FDNReverb, error) {
	if !core.IsFinite(sampleRate) || sampleRate <= 0 {
		return nil, core.Errorf("fdn reverb sample rate must be > 0: %f", sampleRate)
	}

	cfg := fdnReverbConfig{
		processor: core.ApplyProcessorOptions(core.WithSampleRate(sampleRate)),
		lines:     defaultFDNLines,
		matrix:    MatrixHouseholder,
		maxSize:   defaultFDNMaxSize,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if err := cfg.processor.Validate(); err != nil {
		return nil, err
	}
	if cfg.lines <= 0 || cfg.lines > MaxLines {
		return nil, core.Errorf("fdn reverb line count must be in [1, %d]: %d", MaxLines, cfg.lines)
	}
	if !core.IsFinite(cfg.maxSize) || cfg.maxSize <= 0 {
		return nil, core.Errorf("fdn reverb max size must be > 0: %f", cfg.maxSize)
	}

	junction, err := NewJunction(channels, cfg.lines)
	if err != nil {
		return nil, err
	}

	r := &FDNReverb{
		sampleRate: cfg.processor.SampleRate,
		channels:   channels,
		blockSize:  cfg.processor.BlockSize,
		mix:        defaultFDNMix,
		size:       math.Min(defaultFDNSize, cfg.maxSize),
		maxSize:    cfg.maxSize,
		gain:       defaultFDNGain,
		cutoff:     defaultFDNLowpass * lowpassCutoffScale,
		junction:   junction,
		delays:     make([]int, cfg.lines),
		frame:      make([]float64, channels),
		lines:      make([]float64, cfg.lines),
		wet:        make([][]float64, channels),
	}
	for c := range r.wet {
		r.wet[c] = make([]float64, r.blockSize)
	}

	r.computeDelays()
	fdn, err := NewFDN(r.delays, r.gain, r.maxDelay(), cfg.matrix)
	if err != nil {
		return nil, err
	}
	fdn.SetCutoff(r.cutoff)
	r.fdn = fdn

	return r, nil
}

// SetMix sets the dry/wet ratio in [0,1].
func (r *FDNReverb) SetMix(mix float64) error {
	if math.IsNaN(mix) || mix < 0 || mix > 1 {
		return core.Errorf("fdn reverb mix must be in [0,1]: %f", mix)
	}
	r.mix = mix
	return nil
}

// SetSize scales every line delay. It must be in (0, MaxSize()].
func (r *FDNReverb) SetSize(size float64) error {
	if !core.IsFinite(size) || size <= 0 || size > r.maxSize {
		return core.Errorf("fdn reverb size must be in (0, %g]: %f", r.maxSize, size)
	}
	r.size = size
	return r.applyDelays()
}

// SetMaxSize reallocates the delay buffers for sizes up to size. A current
// size above the new bound is lowered to it. SetMaxSize may allocate.
func (r *FDNReverb) SetMaxSize(size float64) error {
	if !core.IsFinite(size) || size <= 0 {
		return core.Errorf("fdn reverb max size must be > 0: %f", size)
	}
	r.maxSize = size
	r.size = math.Min(r.size, size)
	return r.applyMaxDelays()
}

// SetGain sets the feedback loop gain, the reverb's decay-time control.
// Values above 1 make the network unstable.
func (r *FDNReverb) SetGain(gain float64) error {
	if !core.IsFinite(gain) || gain < 0 {
		return core.Errorf("fdn reverb gain must be >= 0: %f", gain)
	}
	r.gain = gain
	r.fdn.SetGain(gain)
	return nil
}

// SetTime is SetGain under the plugin's parameter name.
func (r *FDNReverb) SetTime(time float64) error {
	return r.SetGain(time)
}

// SetCutoff sets the damping cutoff normalized to the sample rate. +Inf
// disables damping.
func (r *FDNReverb) SetCutoff(cutoff float64) error {
	if math.IsNaN(cutoff) || cutoff < 0 {
		return core.Errorf("fdn reverb cutoff must be >= 0: %f", cutoff)
	}
	r.cutoff = cutoff
	r.cutoffHz = 0
	r.fdn.SetCutoff(cutoff)
	return nil
}

// SetCutoffHz sets the damping cutoff in Hz. The cutoff tracks later sample
// rate changes.
func (r *FDNReverb) SetCutoffHz(hz float64) error {
	if !core.IsFinite(hz) || hz <= 0 {
		return core.Errorf("fdn reverb cutoff must be > 0 Hz: %f", hz)
	}
	cutoff, err := onepole.NormalizedCutoff(hz, r.sampleRate)
	if err != nil {
		return err
	}
	r.cutoff = cutoff
	r.cutoffHz = hz
	r.fdn.SetCutoff(cutoff)
	return nil
}

// SetLowpass sets the damping from a [0,1] control; 1 maps to a cutoff of a
// tenth of the sample rate.
func (r *FDNReverb) SetLowpass(amount float64) error {
	if math.IsNaN(amount) || amount < 0 || amount > 1 {
		return core.Errorf("fdn reverb lowpass must be in [0,1]: %f", amount)
	}
	return r.SetCutoff(amount * lowpassCutoffScale)
}

// SetSampleRate reallocates the delay buffers for a new sample rate and
// rescales the delays. It may allocate.
func (r *FDNReverb) SetSampleRate(sampleRate float64) error {
	if !core.IsFinite(sampleRate) || sampleRate <= 0 {
		return core.Errorf("fdn reverb sample rate must be > 0: %f", sampleRate)
	}
	r.sampleRate = sampleRate
	if r.cutoffHz > 0 {
		if err := r.SetCutoffHz(r.cutoffHz); err != nil {
			return err
		}
	}
	return r.applyMaxDelays()
}

// Reset clears the reverb tail.
func (r *FDNReverb) Reset() {
	r.fdn.Reset()
}

// Process applies the reverb in place. block holds one slice per channel,
// all of the same length. A block with the wrong channel count or ragged
// channels is left untouched.
func (r *FDNReverb) Process(block [][]float64) {
	if len(block) != r.channels {
		return
	}
	n := len(block[0])
	for _, ch := range block[1:] {
		if len(ch) != n {
			return
		}
	}

	wetGain, dryGain := r.mixGains()
	for start := 0; start < n; start += r.blockSize {
		end := min(start+r.blockSize, n)

		for i := start; i < end; i++ {
			for c, ch := range block {
				r.frame[c] = ch[i]
			}
			r.tickFrame()
			for c, v := range r.frame {
				r.wet[c][i-start] = v
			}
		}

		for c, ch := range block {
			dry := ch[start:end]
			wet := r.wet[c][:end-start]
			vecmath.ScaleBlockInPlace(dry, dryGain)
			vecmath.ScaleBlockInPlace(wet, wetGain)
			vecmath.AddBlockInPlace(dry, wet)
		}
	}
}

// ProcessFrame applies the reverb to a single frame in place. frame must have
// Channels() elements.
func (r *FDNReverb) ProcessFrame(frame []float64) {
	frame = frame[:r.channels]
	copy(r.frame, frame)
	r.tickFrame()

	wetGain, dryGain := r.mixGains()
	for c, wet := range r.frame {
		frame[c] = frame[c]*dryGain + wet*wetGain
	}
}

// SampleRate returns the sample rate in Hz.
func (r *FDNReverb) SampleRate() float64 { return r.sampleRate }

// Channels returns the physical channel count.
func (r *FDNReverb) Channels() int { return r.channels }

// Lines returns the internal line count.
func (r *FDNReverb) Lines() int { return r.fdn.Lines() }

// Matrix returns the feedback matrix.
func (r *FDNReverb) Matrix() Matrix { return r.fdn.Matrix() }

// BlockSize returns the internal chunk size of Process.
func (r *FDNReverb) BlockSize() int { return r.blockSize }

// Mix returns the dry/wet ratio.
func (r *FDNReverb) Mix() float64 { return r.mix }

// Size returns the delay scale factor.
func (r *FDNReverb) Size() float64 { return r.size }

// MaxSize returns the largest size the buffers hold.
func (r *FDNReverb) MaxSize() float64 { return r.maxSize }

// Gain returns the feedback loop gain.
func (r *FDNReverb) Gain() float64 { return r.gain }

// Cutoff returns the normalized damping cutoff.
func (r *FDNReverb) Cutoff() float64 { return r.cutoff }

// Delays returns the active delay of every line in samples.
func (r *FDNReverb) Delays() []int { return r.fdn.Delays() }

// MaxDelay returns the per-line buffer capacity in samples.
func (r *FDNReverb) MaxDelay() int { return r.fdn.MaxDelay() }

func (r *FDNReverb) tickFrame() {
	r.junction.Split(r.lines, r.frame)
	r.fdn.Tick(r.lines)
	r.junction.Join(r.frame, r.lines)
}

func (r *FDNReverb) mixGains() (wet, dry float64) {
	return math.Sqrt(r.mix), math.Sqrt(1 - r.mix)
}

func (r *FDNReverb) computeDelays() {
	for i := range r.delays {
		r.delays[i] = int(delayRatios[i] * r.size * r.sampleRate)
	}
}

func (r *FDNReverb) maxDelay() int {
	return int(math.Ceil(core.MaxFloat(delayRatios[:])*r.maxSize*r.sampleRate)) + 1
}

func (r *FDNReverb) applyDelays() error {
	r.computeDelays()
	return r.fdn.SetDelays(r.delays)
}

func (r *FDNReverb) applyMaxDelays() error {
	if err := r.fdn.SetMaxDelays(r.maxDelay()); err != nil {
		return err
	}
	return r.applyDelays()
}
