package testutil

import (
	"math"
	"math/rand"
)

// DeterministicSine generates a deterministic sine wave.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// DC generates a constant-valued signal.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}

// PulseTrain places gaussian pulses of the given amplitude at first,
// first+spacing, first+2*spacing, ... . width is the gaussian sigma in
// samples; a width of 0 yields single-sample spikes.
func PulseTrain(length, first, spacing int, width, amplitude float64) []float64 {
	out := make([]float64, length)
	if spacing <= 0 {
		return out
	}
	for center := first; center < length; center += spacing {
		if width <= 0 {
			if center >= 0 {
				out[center] += amplitude
			}
			continue
		}
		reach := int(math.Ceil(5 * width))
		for i := center - reach; i <= center+reach; i++ {
			if i < 0 || i >= length {
				continue
			}
			z := float64(i-center) / width
			out[i] += amplitude * math.Exp(-0.5*z*z)
		}
	}
	return out
}

// PulsePositions returns the centers PulseTrain uses for the same arguments.
func PulsePositions(length, first, spacing int) []int {
	var pos []int
	if spacing <= 0 {
		return pos
	}
	for center := first; center < length; center += spacing {
		pos = append(pos, center)
	}
	return pos
}
