package core

// Processor is a single-channel stage that consumes and produces one sample
// per call.
//
// Tick must not allocate or block; Reset clears signal state but keeps
// parameters.
type Processor interface {
	Tick(x float64) float64
	Reset()
}
