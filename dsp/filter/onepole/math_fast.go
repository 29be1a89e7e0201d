//go:build fastmath

package onepole

import (
	"math"

	"github.com/meko-christian/algo-approx"
)

// mathExp computes e^x using fast approximation. -Inf maps to exactly 0 so
// an infinite cutoff stays a pass-through.
func mathExp(x float64) float64 {
	if math.IsInf(x, -1) {
		return 0
	}
	return approx.FastExp(x)
}
