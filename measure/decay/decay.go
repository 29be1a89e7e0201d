package decay

import (
	"errors"
	"math"
)

// Errors returned by the analysis functions.
var (
	ErrEmptyIR           = errors.New("decay: impulse response is empty")
	ErrInvalidSampleRate = errors.New("decay: sample rate must be positive")
	ErrNoDecay           = errors.New("decay: insufficient decay for RT calculation")
)

// floorDB is reported for Schroeder levels whose remaining energy is zero.
const floorDB = -200

// Metrics holds decay measurements of one impulse response channel.
type Metrics struct {
	RT60      float64 // seconds, from T30 or T20
	EDT       float64 // early decay time in seconds
	T20       float64 // seconds, -5 to -25 dB fit
	T30       float64 // seconds, -5 to -35 dB fit
	Energy    float64 // sum of squared samples from the peak on
	PeakIndex int     // sample index of the absolute maximum
}

// Analyzer computes decay metrics at a fixed sample rate.
type Analyzer struct {
	SampleRate float64
}

// NewAnalyzer creates an analyzer for the given sample rate.
func NewAnalyzer(sampleRate float64) *Analyzer {
	return &Analyzer{SampleRate: sampleRate}
}

// Analyze measures ir from its peak onwards. Leading silence, such as the
// initial gap before the first FDN line returns, is skipped.
//
// ErrNoDecay is returned together with the partial metrics when neither T20
// nor T30 can be fitted.
func (a *Analyzer) Analyze(ir []float64) (Metrics, error) {
	if len(ir) == 0 {
		return Metrics{}, ErrEmptyIR
	}
	if a.SampleRate <= 0 {
		return Metrics{}, ErrInvalidSampleRate
	}

	peak := peakIndex(ir)
	tail := ir[peak:]
	curve := schroeder(tail)

	m := Metrics{
		PeakIndex: peak,
		EDT:       a.fit(curve, 0, -10),
		T20:       a.fit(curve, -5, -25),
		T30:       a.fit(curve, -5, -35),
	}
	for _, v := range tail {
		m.Energy += v * v
	}

	m.RT60 = m.T30
	if m.RT60 == 0 {
		m.RT60 = m.T20
	}
	if m.RT60 == 0 {
		return m, ErrNoDecay
	}
	return m, nil
}

// SchroederCurve returns the backward-integrated energy of ir in dB relative
// to its total energy.
func (a *Analyzer) SchroederCurve(ir []float64) ([]float64, error) {
	if len(ir) == 0 {
		return nil, ErrEmptyIR
	}
	return schroeder(ir), nil
}

func peakIndex(ir []float64) int {
	idx := 0
	peak := 0.0
	for i, v := range ir {
		if av := math.Abs(v); av > peak {
			peak = av
			idx = i
		}
	}
	return idx
}

func schroeder(ir []float64) []float64 {
	out := make([]float64, len(ir))

	acc := 0.0
	for i := len(ir) - 1; i >= 0; i-- {
		acc += ir[i] * ir[i]
		out[i] = acc
	}

	total := out[0]
	if total <= 0 {
		return out
	}
	for i, e := range out {
		if e <= 0 {
			out[i] = floorDB
			continue
		}
		out[i] = 10 * math.Log10(e/total)
	}
	return out
}

// fit regresses the curve between startDB and endDB and extrapolates the
// slope to a 60 dB decay. It returns 0 when the range is not reached.
func (a *Analyzer) fit(curve []float64, startDB, endDB float64) float64 {
	start, end := -1, -1
	for i, v := range curve {
		if start < 0 && v <= startDB {
			start = i
		}
		if start >= 0 && v <= endDB {
			end = i
			break
		}
	}
	if start < 0 || end <= start {
		return 0
	}

	var sumX, sumY, sumXX, sumXY float64
	for i := start; i <= end; i++ {
		x := float64(i - start)
		y := curve[i]
		sumX += x
		sumY += y
		sumXX += x * x
		sumXY += x * y
	}

	n := float64(end - start + 1)
	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return 0
	}

	slope := (n*sumXY - sumX*sumY) / denom // dB per sample
	if slope >= 0 {
		return 0
	}
	return -60 / (slope * a.SampleRate)
}
