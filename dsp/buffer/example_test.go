package buffer_test

import (
	"fmt"

	"github.com/cwbudde/algo-jverb/dsp/buffer"
)

func ExampleBuffer() {
	b := buffer.New(4)
	copy(b.Samples(), []float64{1, 2, 3, 4})

	b.Resize(6)
	b.ZeroRange(1, 3)

	fmt.Println(b.Samples())
	fmt.Println(b.Len())

	// Output:
	// [1 0 0 4 0 0]
	// 6
}
