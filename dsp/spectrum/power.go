package spectrum

import (
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-biosignal/dsp/core"
)

// PowerFromMagnitudes computes |X[k]|^2 from magnitudes into dst and
// returns it. dst is allocated when shorter than mags.
func PowerFromMagnitudes(dst, mags []float64) []float64 {
	dst = core.EnsureLen(dst, len(mags))
	vecmath.MulBlock(dst, mags, mags)
	return dst
}

// Resolution returns the bin spacing in Hz of an n-point transform.
func Resolution(sampleRate float64, n int) float64 {
	return sampleRate / float64(n)
}
