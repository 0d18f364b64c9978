package exg_test

import (
	"fmt"

	"github.com/cwbudde/algo-biosignal/dsp/filter/exg"
)

func ExampleChannelFilter_MagnitudeDB() {
	f, err := exg.New()
	if err != nil {
		panic(err)
	}
	fmt.Printf("10 Hz below -1 dB: %v\n", f.MagnitudeDB(10) < -1)
	fmt.Printf("50 Hz below -40 dB: %v\n", f.MagnitudeDB(50) < -40)
	// Output:
	// 10 Hz below -1 dB: false
	// 50 Hz below -40 dB: true
}
