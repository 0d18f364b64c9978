package pipeline_test

import (
	"fmt"

	"github.com/cwbudde/algo-biosignal/pipeline"
)

func ExampleWaveformUnit() {
	unit, err := pipeline.NewWaveformUnit(pipeline.DefaultConfig())
	if err != nil {
		panic(err)
	}

	updates := 0
	for i := 0; i < 1000; i++ {
		raw := pipeline.RawSample{Counter: uint8(i), Ch: [3]uint16{2048, 2048, 2048}}
		if _, upd := unit.Process(raw); upd != nil {
			if updates == 0 {
				fmt.Println("first update at sample", upd.Seq)
			}
			updates++
		}
	}
	fmt.Println("updates:", updates)

	// Output:
	// first update at sample 260
	// updates: 75
}
