package pipeline

import (
	"github.com/cwbudde/algo-biosignal/dsp/signal"
	"github.com/cwbudde/algo-biosignal/internal/testutil"
)

const (
	pulseFirst   = 100
	pulseSpacing = 500 // 60 BPM at 500 Hz
)

// syntheticFrames returns n frames with a 9.77 Hz alpha sinusoid on both
// EEG channels and a 60 BPM gaussian pulse train on the ECG channel.
func syntheticFrames(n int) []RawSample {
	eeg := signal.Quantize(nil, testutil.DeterministicSine(5*500.0/256, 500, 0.4, n), 12)
	ecg := signal.Quantize(nil, testutil.PulseTrain(n, pulseFirst, pulseSpacing, 3, 0.6), 12)

	frames := make([]RawSample, n)
	for i := range frames {
		frames[i] = RawSample{
			Counter: uint8(i),
			Ch:      [NumChannels]uint16{eeg[i], eeg[i], ecg[i]},
		}
	}
	return frames
}
