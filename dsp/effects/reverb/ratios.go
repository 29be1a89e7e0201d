package reverb

// delayRatios are per-line delay times in seconds at size 1. The set comes
// from fundsp's FDN reverb preset.
var delayRatios = [...]float64{
	0.073904, 0.052918, 0.066238, 0.066387, 0.037783, 0.080073, 0.050961, 0.075900,
	0.043646, 0.072095, 0.056194, 0.045961, 0.058934, 0.068016, 0.047529, 0.058156,
	0.072972, 0.036084, 0.062715, 0.076377, 0.044339, 0.076725, 0.077884, 0.046126,
	0.067741, 0.049800, 0.051709, 0.082923, 0.070121, 0.079315, 0.055039, 0.081859,
}

// MaxLines is the largest line count FDNReverb supports.
const MaxLines = len(delayRatios)

// DelayRatios returns a copy of the delay-ratio table.
func DelayRatios() []float64 {
	out := make([]float64, len(delayRatios))
	copy(out, delayRatios[:])
	return out
}
