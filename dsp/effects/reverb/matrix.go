package reverb

import (
	"math"
	"strings"

	"github.com/cwbudde/algo-jverb/dsp/core"
)

// Matrix selects how an FDN recombines its line outputs into feedback.
type Matrix int

const (
	// MatrixHouseholder reflects the line outputs through I - (2/N)·1·1ᵀ.
	// The tick output is the unmixed line output; only the feedback path
	// carries the reflection.
	MatrixHouseholder Matrix = iota
	// MatrixHadamard applies a normalized fast Walsh-Hadamard transform.
	// The transformed vector is both the feedback and the tick output.
	// Requires a power-of-two line count.
	MatrixHadamard
)

// String returns the lower-case matrix name.
func (m Matrix) String() string {
	switch m {
	case MatrixHouseholder:
		return "householder"
	case MatrixHadamard:
		return "hadamard"
	default:
		return "unknown"
	}
}

// ParseMatrix returns the matrix named s (case-insensitive).
func ParseMatrix(s string) (Matrix, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "householder":
		return MatrixHouseholder, nil
	case "hadamard":
		return MatrixHadamard, nil
	default:
		return 0, core.Errorf("unknown feedback matrix %q", s)
	}
}

func (m Matrix) validate(lines int) error {
	switch m {
	case MatrixHouseholder:
		return nil
	case MatrixHadamard:
		if !core.IsPowerOfTwo(lines) {
			return core.Errorf("hadamard matrix needs a power-of-two line count: %d", lines)
		}
		return nil
	default:
		return core.Errorf("unknown feedback matrix: %d", int(m))
	}
}

// householder turns out into the next feedback vector in fb.
func householder(fb, out []float64) {
	sum := 0.0
	for _, v := range out {
		sum += v
	}
	s := sum * (2 / float64(len(out)))
	for i, v := range out {
		fb[i] = v - s
	}
}

// hadamard transforms x in place with the unnormalized butterfly.
// len(x) must be a power of two.
func hadamard(x []float64) {
	n := len(x)
	for h := 1; h < n; h <<= 1 {
		for i := 0; i < n; i += h << 1 {
			for j := i; j < i+h; j++ {
				a, b := x[j], x[j+h]
				x[j] = a + b
				x[j+h] = a - b
			}
		}
	}
}

// hadamardNorm returns the scale that makes the n-point transform
// orthonormal. Sizes beyond 256 keep the 256 scale.
func hadamardNorm(n int) float64 {
	switch {
	case n >= 256:
		return 1.0 / 16
	case n >= 128:
		return 1 / (math.Sqrt2 * 8)
	case n >= 64:
		return 1.0 / 8
	case n >= 32:
		return 1 / (math.Sqrt2 * 4)
	case n >= 16:
		return 1.0 / 4
	case n >= 8:
		return 1 / (math.Sqrt2 * 2)
	case n >= 4:
		return 1.0 / 2
	case n >= 2:
		return 1 / math.Sqrt2
	default:
		return 1
	}
}
