package exg

import "github.com/cwbudde/algo-biosignal/dsp/filter/biquad"

// DesignSampleRate is the sampling rate the coefficient sets are tuned for.
const DesignSampleRate = 500.0

// Bandpass45 is the band-limiting stage of the conditioning cascade: a
// second-order lowpass with unity gain at DC.
func Bandpass45() biquad.Coefficients {
	return biquad.Coefficients{
		B0: 0.17508764, B1: 0.35017529, B2: 0.17508764,
		A1: -0.51930341, A2: 0.21965398,
	}
}

// Notch50 returns the two cascaded sections rejecting 48-52 Hz mains hum
// at 500 Hz.
func Notch50() []biquad.Coefficients {
	return []biquad.Coefficients{
		{
			B0: 0.96508099, B1: -1.56202714, B2: 0.96508099,
			A1: -1.56858163, A2: 0.96424138,
		},
		{
			B0: 1, B1: -1.61854514, B2: 1,
			A1: -1.61100358, A2: 0.96592171,
		},
	}
}
