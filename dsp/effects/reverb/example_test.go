package reverb_test

import (
	"fmt"

	"github.com/cwbudde/algo-jverb/dsp/effects/reverb"
)

func ExampleFDN() {
	fdn, err := reverb.NewFDN([]int{2, 3, 5, 7}, 0.5, 10, reverb.MatrixHouseholder)
	if err != nil {
		panic(err)
	}
	j, err := reverb.NewJunction(2, 4)
	if err != nil {
		panic(err)
	}

	lines := make([]float64, 4)
	out := make([]float64, 2)
	for i := 0; i < 11; i++ {
		j.Split(lines, []float64{1, 1})
		fdn.Tick(lines)
		j.Join(out, lines)
	}
	fmt.Println(out)
	// Output: [0.296875 0.3125]
}

func ExampleFDNReverb() {
	r, err := reverb.NewFDNReverb(48000, 2, reverb.WithLines(16))
	if err != nil {
		panic(err)
	}
	_ = r.SetMix(0.3)
	_ = r.SetSize(1.5)
	_ = r.SetGain(0.85)
	_ = r.SetLowpass(0.6)

	block := [][]float64{{1, 0, 0, 0}, {1, 0, 0, 0}}
	r.Process(block)
	fmt.Printf("%.3f %.3f %.3f %.3f\n", block[0][0], block[0][1], block[0][2], block[0][3])
	// Output: 0.837 0.000 0.000 0.000
}
