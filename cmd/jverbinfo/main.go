// Command jverbinfo renders the impulse response of an FDN reverb and prints
// its decay times and octave-band levels.
//
// Usage:
//
//	jverbinfo [flags]
//
// Examples:
//
//	jverbinfo
//	jverbinfo -time 0.95 -lowpass 0.3
//	jverbinfo -channels 2 -lines 16 -matrix hadamard
//	jverbinfo -size 2 -seconds 6 -play
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/cwbudde/algo-jverb/dsp/effects/reverb"
	"github.com/cwbudde/algo-jverb/internal/playback"
	"github.com/cwbudde/algo-jverb/measure/decay"
)

const (
	exitOK     = 0
	exitConfig = 1
	exitUsage  = 2

	lowestOctaveHz = 62.5
	burstSeconds   = 0.25
	burstAmplitude = 0.5
)

type options struct {
	rate     float64
	channels int
	lines    int
	matrix   string
	mix      float64
	size     float64
	time     float64
	lowpass  float64
	seconds  float64
	fftSize  int
	play     bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	var o options
	fs := flag.NewFlagSet("jverbinfo", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Float64Var(&o.rate, "rate", 44100, "sample rate in Hz")
	fs.IntVar(&o.channels, "channels", 1, "channel count")
	fs.IntVar(&o.lines, "lines", reverb.MaxLines, "internal delay line count (multiple of -channels)")
	fs.StringVar(&o.matrix, "matrix", "householder", "feedback matrix: householder or hadamard")
	fs.Float64Var(&o.mix, "mix", 0.5, "dry/wet mix for -play in [0,1]")
	fs.Float64Var(&o.size, "size", 1, "room size factor")
	fs.Float64Var(&o.time, "time", 0.9, "feedback gain (decay time)")
	fs.Float64Var(&o.lowpass, "lowpass", 0.8, "damping control in [0,1]")
	fs.Float64Var(&o.seconds, "seconds", 3, "impulse response length in seconds")
	fs.IntVar(&o.fftSize, "fft", 0, "FFT size for band levels (0: next power of two of the response)")
	fs.BoolVar(&o.play, "play", false, "play a noise burst through the reverb on the default audio device")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: jverbinfo [flags]\n\n")
		fmt.Fprintf(stderr, "Renders the wet impulse response of an FDN reverb and prints its\n")
		fmt.Fprintf(stderr, "decay times and octave-band levels.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  jverbinfo -time 0.95 -lowpass 0.3\n")
		fmt.Fprintf(stderr, "  jverbinfo -channels 2 -lines 16 -matrix hadamard\n")
		fmt.Fprintf(stderr, "  jverbinfo -size 2 -seconds 6 -play\n")
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(stderr, "error: unexpected arguments: %s\n", strings.Join(fs.Args(), " "))
		fs.Usage()
		return exitUsage
	}
	if math.IsNaN(o.seconds) || math.IsInf(o.seconds, 0) || o.seconds <= 0 {
		fmt.Fprintf(stderr, "error: -seconds must be > 0: %g\n", o.seconds)
		return exitConfig
	}
	if math.IsNaN(o.mix) || o.mix < 0 || o.mix > 1 {
		fmt.Fprintf(stderr, "error: -mix must be in [0,1]: %g\n", o.mix)
		return exitConfig
	}

	rev, err := newReverb(o, 1)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitConfig
	}

	length := int(o.seconds * o.rate)
	ir := decay.RenderImpulseResponse(rev, length)

	fftSize := o.fftSize
	if fftSize == 0 {
		fftSize = nextPowerOfTwo(length)
	}

	if err := printDelays(stdout, rev); err != nil {
		fmt.Fprintf(stderr, "error: failed to write output: %v\n", err)
		return exitConfig
	}
	if err := printDecay(stdout, ir, o.rate); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitConfig
	}
	if err := printBands(stdout, ir, o.rate, fftSize); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitConfig
	}

	if o.play {
		if err := play(o); err != nil {
			fmt.Fprintf(stderr, "error: %v\n", err)
			return exitConfig
		}
	}
	return exitOK
}

func newReverb(o options, mix float64) (*reverb.FDNReverb, error) {
	matrix, err := reverb.ParseMatrix(o.matrix)
	if err != nil {
		return nil, err
	}

	rev, err := reverb.NewFDNReverb(o.rate, o.channels,
		reverb.WithLines(o.lines),
		reverb.WithMatrix(matrix),
		reverb.WithMaxSize(max(o.size, 1)),
	)
	if err != nil {
		return nil, err
	}

	if err := rev.SetSize(o.size); err != nil {
		return nil, err
	}
	if err := rev.SetGain(o.time); err != nil {
		return nil, err
	}
	if err := rev.SetLowpass(o.lowpass); err != nil {
		return nil, err
	}
	if err := rev.SetMix(mix); err != nil {
		return nil, err
	}
	return rev, nil
}

func printDelays(w io.Writer, rev *reverb.FDNReverb) error {
	delays := rev.Delays()
	parts := make([]string, len(delays))
	for i, d := range delays {
		parts[i] = fmt.Sprint(d)
	}
	_, err := fmt.Fprintf(w, "%d lines, %s matrix, %g Hz\ndelays: %s\n\n",
		rev.Lines(), rev.Matrix(), rev.SampleRate(), strings.Join(parts, " "))
	return err
}

func printDecay(w io.Writer, ir [][]float64, sampleRate float64) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Channel\tRT60 [s]\tEDT [s]\tT20 [s]\tT30 [s]\tEnergy\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(tw, "-------\t--------\t-------\t-------\t-------\t------\n"); err != nil {
		return err
	}

	analyzer := decay.NewAnalyzer(sampleRate)
	for c, ch := range ir {
		m, err := analyzer.Analyze(ch)
		if err != nil && !errors.Is(err, decay.ErrNoDecay) {
			return fmt.Errorf("channel %d: %w", c, err)
		}
		if _, err := fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%.4f\n",
			c, seconds(m.RT60), seconds(m.EDT), seconds(m.T20), seconds(m.T30), m.Energy); err != nil {
			return err
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w)
	return err
}

func printBands(w io.Writer, ir [][]float64, sampleRate float64, fftSize int) error {
	edges := decay.OctaveEdges(lowestOctaveHz, sampleRate)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	header := []string{"Band [Hz]"}
	rule := []string{"---------"}
	for c := range ir {
		header = append(header, fmt.Sprintf("Ch %d [dB]", c))
		rule = append(rule, "---------")
	}
	if _, err := fmt.Fprintln(tw, strings.Join(header, "\t")); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(tw, strings.Join(rule, "\t")); err != nil {
		return err
	}

	levels := make([][]float64, len(ir))
	for c, ch := range ir {
		mag, err := decay.MagnitudeResponse(ch, fftSize)
		if err != nil {
			return fmt.Errorf("channel %d: %w", c, err)
		}
		if levels[c], err = decay.BandLevels(mag, sampleRate, edges); err != nil {
			return fmt.Errorf("channel %d: %w", c, err)
		}
	}

	for b := 0; b < len(edges)-1; b++ {
		row := []string{fmt.Sprintf("%.0f-%.0f", edges[b], edges[b+1])}
		for c := range levels {
			row = append(row, fmt.Sprintf("%.2f", levels[c][b]))
		}
		if _, err := fmt.Fprintln(tw, strings.Join(row, "\t")); err != nil {
			return err
		}
	}
	return tw.Flush()
}

func play(o options) error {
	rev, err := newReverb(o, o.mix)
	if err != nil {
		return err
	}

	player, err := playback.NewPlayer(int(o.rate), o.channels, 100*time.Millisecond)
	if err != nil {
		return err
	}

	stream := playback.NewStream(rev, playback.NoiseBurst(int(burstSeconds*o.rate), burstAmplitude), rev.BlockSize())
	player.Setup(stream)
	player.Start()
	time.Sleep(time.Duration((burstSeconds + o.seconds) * float64(time.Second)))
	return player.Close()
}

func seconds(v float64) string {
	if v == 0 {
		return "-"
	}
	return fmt.Sprintf("%.3f", v)
}

func nextPowerOfTwo(n int) int {
	p := 2
	for p < n {
		p <<= 1
	}
	return p
}
