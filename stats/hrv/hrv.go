package hrv

import "math"

// NN50Threshold is the successive-difference magnitude, in ms, counted by
// pNN50.
const NN50Threshold = 50.0

// Stats holds the RR interval summary of one analysis window.
type Stats struct {
	Count  int
	Latest float64
	Mean   float64
	Min    float64
	Max    float64

	// SDNN, RMSSD and PNN50 are valid only when HasVariability is true.
	SDNN           float64
	RMSSD          float64
	PNN50          float64
	HasVariability bool
}

// Calculate summarizes rr in a single pass. The zero Stats is returned for
// an empty series.
func Calculate(rr []float64) Stats {
	n := len(rr)
	if n == 0 {
		return Stats{}
	}

	var (
		mean   float64
		m2     float64
		sumSq  float64
		nn50   int
		minVal = rr[0]
		maxVal = rr[0]
	)

	for i, x := range rr {
		// Welford update.
		delta := x - mean
		mean += delta / float64(i+1)
		m2 += delta * (x - mean)

		minVal = math.Min(minVal, x)
		maxVal = math.Max(maxVal, x)

		if i > 0 {
			d := x - rr[i-1]
			sumSq += d * d
			if math.Abs(d) > NN50Threshold {
				nn50++
			}
		}
	}

	s := Stats{
		Count:  n,
		Latest: rr[n-1],
		Mean:   mean,
		Min:    minVal,
		Max:    maxVal,
	}
	if n < 2 {
		return s
	}

	diffs := float64(n - 1)
	s.SDNN = math.Sqrt(m2 / diffs)
	s.RMSSD = math.Sqrt(sumSq / diffs)
	s.PNN50 = 100 * float64(nn50) / diffs
	s.HasVariability = true
	return s
}

// SDNN returns the unbiased standard deviation of rr.
func SDNN(rr []float64) (float64, bool) {
	s := Calculate(rr)
	return s.SDNN, s.HasVariability
}

// RMSSD returns the root mean square of successive differences of rr.
func RMSSD(rr []float64) (float64, bool) {
	s := Calculate(rr)
	return s.RMSSD, s.HasVariability
}

// PNN50 returns the percentage of successive differences whose magnitude
// exceeds [NN50Threshold].
func PNN50(rr []float64) (float64, bool) {
	s := Calculate(rr)
	return s.PNN50, s.HasVariability
}
