// Package onepole provides the first-order IIR lowpass used to damp each
// line of a feedback delay network.
//
// The cutoff is normalized to the sample rate (cycles per sample), not Hz:
//
//	x  = exp(-2π·c)
//	a0 = 1 - x
//	b1 = x
//	y[n] = a0·x[n] + b1·y[n-1]
//
// A cutoff of 0 freezes the output at its last value; an infinite cutoff is
// an exact pass-through.
package onepole
