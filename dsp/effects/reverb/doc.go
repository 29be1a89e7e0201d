// Package reverb implements a feedback delay network (FDN) reverb.
//
// The building blocks are exported so they can be used on their own:
//   - FDN: N parallel delay → one-pole lowpass → gain lines coupled by a
//     Householder or Hadamard feedback matrix.
//   - Junction: maps a few physical channels onto the FDN's lines and back.
//   - FDNReverb: the engine that owns one Junction and one FDN and applies an
//     equal-power dry/wet mix to blocks of multichannel audio.
//
// Tick, Split, Join and Process never allocate. Only SetMaxDelays,
// SetMaxSize and SetSampleRate resize buffers and they must not run
// concurrently with processing.
package reverb
