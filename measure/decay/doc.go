// Package decay measures how a reverb's impulse response dies away and what
// it does to the spectrum.
//
// Decay times follow ISO 3382 practice: the squared response is integrated
// backwards (Schroeder integration) and a line is fitted to the resulting dB
// curve between two levels, then extrapolated to -60 dB.
//
//   - EDT: fit from 0 to -10 dB
//   - T20: fit from -5 to -25 dB
//   - T30: fit from -5 to -35 dB
//   - RT60: T30 when available, else T20
//
// MagnitudeResponse and BandLevels give the frequency-dependent picture, which
// shows the effect of the damping filters.
//
// # Usage
//
//	ir := decay.RenderImpulseResponse(rev, 2*48000)
//	metrics, err := decay.NewAnalyzer(48000).Analyze(ir[0])
package decay
