package decay

// BlockProcessor is a multichannel in-place processor such as
// reverb.FDNReverb.
type BlockProcessor interface {
	Process(block [][]float64)
	Channels() int
}

// RenderImpulseResponse feeds a unit impulse into every channel of p and
// returns length samples per channel. p is not reset first.
func RenderImpulseResponse(p BlockProcessor, length int) [][]float64 {
	if length <= 0 {
		return nil
	}
	block := make([][]float64, p.Channels())
	for c := range block {
		block[c] = make([]float64, length)
		block[c][0] = 1
	}
	p.Process(block)
	return block
}
