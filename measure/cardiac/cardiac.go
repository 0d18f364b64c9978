package cardiac

import (
	"math"

	"github.com/cwbudde/algo-biosignal/stats/hrv"
)

const (
	defaultSampleRate     = 500.0
	defaultThresholdRatio = 0.5
	defaultRefractory     = 0.2
	defaultMinBPM         = 40.0
	defaultMaxBPM         = 200.0
)

// Config holds peak detection parameters.
type Config struct {
	SampleRate float64
	// ThresholdRatio scales the buffer maximum into the detection threshold.
	ThresholdRatio float64
	// Refractory is the minimum peak spacing in seconds.
	Refractory float64
	// MinBPM and MaxBPM bound the accepted instantaneous rate.
	MinBPM float64
	MaxBPM float64
}

// DefaultConfig returns the 500 Hz detector configuration.
func DefaultConfig() Config {
	return Config{
		SampleRate:     defaultSampleRate,
		ThresholdRatio: defaultThresholdRatio,
		Refractory:     defaultRefractory,
		MinBPM:         defaultMinBPM,
		MaxBPM:         defaultMaxBPM,
	}
}

func normalizeConfig(cfg Config) Config {
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = defaultSampleRate
	}
	if cfg.ThresholdRatio <= 0 {
		cfg.ThresholdRatio = defaultThresholdRatio
	}
	if cfg.Refractory <= 0 {
		cfg.Refractory = defaultRefractory
	}
	if cfg.MinBPM <= 0 {
		cfg.MinBPM = defaultMinBPM
	}
	if cfg.MaxBPM <= cfg.MinBPM {
		cfg.MaxBPM = max(defaultMaxBPM, cfg.MinBPM)
	}
	return cfg
}

// Result holds heart rate and HRV metrics of one buffer. BPM values are
// beats per minute and HRV values RR intervals in milliseconds, all
// rounded to the nearest integer. SDNN, RMSSD (ms) and PNN50 (percent)
// are unrounded.
type Result struct {
	BPM  *int `json:"bpm" msgpack:"bpm"`
	High *int `json:"high" msgpack:"high"`
	Low  *int `json:"low" msgpack:"low"`
	Avg  *int `json:"avg" msgpack:"avg"`

	Peaks []int `json:"peaks" msgpack:"peaks"`

	HRV     *int `json:"hrv" msgpack:"hrv"`
	HRVHigh *int `json:"hrvHigh" msgpack:"hrvHigh"`
	HRVLow  *int `json:"hrvLow" msgpack:"hrvLow"`
	HRVAvg  *int `json:"hrvAvg" msgpack:"hrvAvg"`

	SDNN  *float64 `json:"sdnn" msgpack:"sdnn"`
	RMSSD *float64 `json:"rmssd" msgpack:"rmssd"`
	PNN50 *float64 `json:"pnn50" msgpack:"pnn50"`
}

// HasBeat reports whether at least one plausible RR interval was found.
func (r Result) HasBeat() bool {
	return r.BPM != nil
}

// Variability returns SDNN, RMSSD and pNN50 with NaN standing in for
// absent values.
func (r Result) Variability() (sdnn, rmssd, pnn50 float64) {
	return orNaN(r.SDNN), orNaN(r.RMSSD), orNaN(r.PNN50)
}

// Analyzer runs peak detection and HRV analysis.
type Analyzer struct {
	cfg Config
}

// NewAnalyzer creates an analyzer; zero fields of cfg take their defaults.
func NewAnalyzer(cfg Config) *Analyzer {
	return &Analyzer{cfg: normalizeConfig(cfg)}
}

// Analyze is a one-shot analysis of buf.
func Analyze(buf []float64, cfg Config) Result {
	return NewAnalyzer(cfg).Analyze(buf)
}

// Config returns the effective configuration.
func (a *Analyzer) Config() Config {
	return a.cfg
}

// RefractorySamples returns the minimum peak spacing in samples.
func (a *Analyzer) RefractorySamples() int {
	return int(math.Floor(a.cfg.SampleRate * a.cfg.Refractory))
}

// DetectPeaks returns the indices of accepted R peaks in buf, ascending.
func (a *Analyzer) DetectPeaks(buf []float64) []int {
	peaks := make([]int, 0)
	if len(buf) < 3 {
		return peaks
	}

	maxVal := buf[0]
	for _, x := range buf[1:] {
		maxVal = math.Max(maxVal, x)
	}
	threshold := maxVal * a.cfg.ThresholdRatio
	refractory := a.RefractorySamples()

	last := -refractory
	for i := 1; i < len(buf)-1; i++ {
		x := buf[i]
		if x > threshold && x > buf[i-1] && x > buf[i+1] && i-last > refractory {
			peaks = append(peaks, i)
			last = i
		}
	}
	return peaks
}

// Intervals converts consecutive peak pairs into instantaneous rates and
// RR intervals in ms, dropping pairs outside [MinBPM, MaxBPM].
func (a *Analyzer) Intervals(peaks []int) (bpms, rr []float64) {
	for j := 1; j < len(peaks); j++ {
		dt := float64(peaks[j]-peaks[j-1]) / a.cfg.SampleRate
		bpm := 60 / dt
		if bpm < a.cfg.MinBPM || bpm > a.cfg.MaxBPM {
			continue
		}
		bpms = append(bpms, bpm)
		rr = append(rr, dt*1000)
	}
	return bpms, rr
}

// Analyze computes the metrics of buf.
func (a *Analyzer) Analyze(buf []float64) Result {
	res := Result{Peaks: a.DetectPeaks(buf)}

	bpms, rr := a.Intervals(res.Peaks)
	if len(bpms) == 0 {
		return res
	}

	var sum float64
	low, high := bpms[0], bpms[0]
	for _, b := range bpms {
		sum += b
		low = math.Min(low, b)
		high = math.Max(high, b)
	}
	avg := sum / float64(len(bpms))

	res.BPM = roundedPtr(avg)
	res.Avg = roundedPtr(avg)
	res.High = roundedPtr(high)
	res.Low = roundedPtr(low)

	st := hrv.Calculate(rr)
	res.HRV = roundedPtr(st.Latest)
	res.HRVHigh = roundedPtr(st.Max)
	res.HRVLow = roundedPtr(st.Min)
	res.HRVAvg = roundedPtr(st.Mean)
	if st.HasVariability {
		res.SDNN = floatPtr(st.SDNN)
		res.RMSSD = floatPtr(st.RMSSD)
		res.PNN50 = floatPtr(st.PNN50)
	}
	return res
}

func roundedPtr(v float64) *int {
	r := int(math.Round(v))
	return &r
}

func floatPtr(v float64) *float64 {
	return &v
}

func orNaN(v *float64) float64 {
	if v == nil {
		return math.NaN()
	}
	return *v
}
