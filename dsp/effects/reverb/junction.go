package reverb

import "github.com/cwbudde/algo-jverb/dsp/core"

// Junction maps inputs physical channels onto outputs internal lines.
// Each channel owns a contiguous block of outputs/inputs lines.
type Junction struct {
	inputs  int
	outputs int
	ratio   int
}

// NewJunction returns a junction between inputs channels and outputs lines.
// outputs must be a positive multiple of inputs.
func NewJunction(inputs, outputs int) (*Junction, error) {
	if inputs <= 0 || outputs <= 0 {
		return nil, core.Errorf("junction sizes must be > 0: %d -> %d", inputs, outputs)
	}
	if outputs%inputs != 0 {
		return nil, core.Errorf("junction outputs must be a multiple of inputs: %d -> %d", inputs, outputs)
	}
	return &Junction{inputs: inputs, outputs: outputs, ratio: outputs / inputs}, nil
}

// Inputs returns the physical channel count.
func (j *Junction) Inputs() int { return j.inputs }

// Outputs returns the line count.
func (j *Junction) Outputs() int { return j.outputs }

// Split copies channel j/ratio of src into line j of dst.
// len(src) must be Inputs() and len(dst) Outputs().
func (j *Junction) Split(dst, src []float64) {
	src = src[:j.inputs]
	for k := range dst[:j.outputs] {
		dst[k] = src[k/j.ratio]
	}
}

// Join writes the mean of each channel's line block into dst.
// len(src) must be Outputs() and len(dst) Inputs().
func (j *Junction) Join(dst, src []float64) {
	src = src[:j.outputs]
	for i := range dst[:j.inputs] {
		sum := 0.0
		for _, v := range src[i*j.ratio : (i+1)*j.ratio] {
			sum += v
		}
		dst[i] = sum / float64(j.ratio)
	}
}
