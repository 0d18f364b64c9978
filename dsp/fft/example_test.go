package fft_test

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-biosignal/dsp/fft"
)

func ExampleRadix2_Magnitudes() {
	engine, err := fft.NewRadix2(8)
	if err != nil {
		panic(err)
	}
	x := make([]float64, 8)
	for i := range x {
		x[i] = math.Cos(2 * math.Pi * 2 * float64(i) / 8)
	}
	mags, _ := engine.Magnitudes(nil, x)
	for _, m := range mags {
		fmt.Printf("%.2f ", m)
	}
	fmt.Println()
	// Output:
	// 0.00 0.00 1.00 0.00
}
