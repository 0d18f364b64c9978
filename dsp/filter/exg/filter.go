package exg

import (
	"fmt"

	"github.com/cwbudde/algo-biosignal/dsp/core"
	"github.com/cwbudde/algo-biosignal/dsp/filter/biquad"
)

// ChannelFilter is the per-channel conditioning cascade:
// normalize -> bandpass -> notch.
//
// A ChannelFilter is owned by exactly one channel and is not safe for
// concurrent use.
type ChannelFilter struct {
	center float64
	scale  float64

	bandpass biquad.Section
	notch    *biquad.Chain
}

// New returns a ChannelFilter for ADC codes of the configured resolution.
func New(opts ...core.ProcessorOption) (*ChannelFilter, error) {
	cfg := core.ApplyProcessorOptions(opts...)
	if cfg.SampleRate != DesignSampleRate {
		return nil, fmt.Errorf("exg: coefficients are designed for %.0f Hz, got %.0f Hz", DesignSampleRate, cfg.SampleRate)
	}

	fullScale := float64(cfg.FullScale())

	return &ChannelFilter{
		center:   fullScale / 2,
		scale:    2 / fullScale,
		bandpass: biquad.Section{Coefficients: Bandpass45()},
		notch:    biquad.NewChain(Notch50()),
	}, nil
}

// Normalize maps an ADC code to roughly [-1, 1] without touching filter
// state.
func (f *ChannelFilter) Normalize(raw uint16) float64 {
	return (float64(raw) - f.center) * f.scale
}

// Process conditions one raw ADC code and returns the filtered sample.
func (f *ChannelFilter) Process(raw uint16) float64 {
	x := f.Normalize(raw)
	x = f.bandpass.ProcessSample(x)
	return f.notch.ProcessSample(x)
}

// ProcessBlock conditions a block of raw codes into dst. dst must be at
// least as long as raw.
func (f *ChannelFilter) ProcessBlock(dst []float64, raw []uint16) {
	dst = dst[:len(raw)]
	for i, r := range raw {
		dst[i] = f.Normalize(r)
	}
	f.bandpass.ProcessBlock(dst)
	f.notch.ProcessBlock(dst)
}

// Reset zeroes all delay taps. Call it whenever the upstream stream
// restarts.
func (f *ChannelFilter) Reset() {
	f.bandpass.Reset()
	f.notch.Reset()
}

// State returns the bandpass taps followed by the notch section taps.
func (f *ChannelFilter) State() [3][2]float64 {
	notch := f.notch.State()
	return [3][2]float64{f.bandpass.State(), notch[0], notch[1]}
}

// MagnitudeDB returns the combined bandpass+notch magnitude response at
// freqHz.
func (f *ChannelFilter) MagnitudeDB(freqHz float64) float64 {
	return f.bandpass.MagnitudeDB(freqHz, DesignSampleRate) + f.notch.MagnitudeDB(freqHz, DesignSampleRate)
}
