package spectrum

import (
	"encoding/json"
	"math"
)

// Band is a half-open frequency range [Low, High) in Hz.
type Band struct {
	Name string
	Low  float64
	High float64
}

// Indices into [DefaultBands] and per-band arrays.
const (
	Delta = iota
	Theta
	Alpha
	Beta
	Gamma

	NumBands
)

// Powers holds one value per band, indexed by Delta..Gamma.
type Powers [NumBands]float64

// DefaultBands are the classic EEG rhythm bands.
var DefaultBands = [NumBands]Band{
	{Name: "delta", Low: 0.5, High: 4},
	{Name: "theta", Low: 4, High: 8},
	{Name: "alpha", Low: 8, High: 12},
	{Name: "beta", Low: 12, High: 30},
	{Name: "gamma", Low: 30, High: 45},
}

// BandBins returns the inclusive bin range covering band for an n-point
// transform. The range excludes DC and stops one bin below Nyquist; ok is
// false when it is empty.
func BandBins(band Band, sampleRate float64, n int) (start, end int, ok bool) {
	res := Resolution(sampleRate, n)
	start = max(1, int(math.Ceil(band.Low/res)))
	end = min(n/2-1, int(math.Floor(band.High/res)))
	return start, end, end >= start
}

// BandPower sums squared magnitudes over the bins of band. mags holds the
// first n/2 bins of an n-point transform.
func BandPower(mags []float64, band Band, sampleRate float64, n int) float64 {
	start, end, ok := BandBins(band, sampleRate, n)
	if !ok {
		return 0
	}
	end = min(end, len(mags)-1)

	var p float64
	for _, m := range mags[start : end+1] {
		p += m * m
	}
	return p
}

// AbsolutePowers returns the power of every default band.
func AbsolutePowers(mags []float64, sampleRate float64, n int) Powers {
	var out Powers
	for i, b := range DefaultBands {
		out[i] = BandPower(mags, b, sampleRate, n)
	}
	return out
}

// Relative scales p so the bands sum to one. A zero total yields all zeros.
func (p Powers) Relative() Powers {
	var total float64
	for _, v := range p {
		total += v
	}
	if total <= 0 {
		return Powers{}
	}
	var out Powers
	for i, v := range p {
		out[i] = v / total
	}
	return out
}

// Map returns the powers keyed by band name.
func (p Powers) Map() map[string]float64 {
	out := make(map[string]float64, NumBands)
	for i, b := range DefaultBands {
		out[b.Name] = p[i]
	}
	return out
}

// MarshalJSON encodes the powers as an object keyed by band name.
func (p Powers) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.Map())
}
