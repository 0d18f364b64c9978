package pipeline

import (
	"fmt"

	"github.com/cwbudde/algo-biosignal/dsp/buffer"
	"github.com/cwbudde/algo-biosignal/dsp/fft"
	"github.com/cwbudde/algo-biosignal/dsp/filter/exg"
	"github.com/cwbudde/algo-biosignal/dsp/spectrum"
)

// WaveformUnit filters every channel and runs the spectral band-power
// path on the two EEG channels. It is owned by a single goroutine.
type WaveformUnit struct {
	cfg    Config
	engine fft.Engine

	filters  *exg.Bank
	windows  [2]*buffer.Ring
	smoother [2]*spectrum.BandSmoother

	accepted uint64
	frame    []float64
	scratch  []float64
	mags     []float64
}

// NewWaveformUnit builds the filter bank, spectral windows and smoothers.
func NewWaveformUnit(cfg Config) (*WaveformUnit, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	engine, err := fft.New(cfg.FFTBackend, cfg.FFTSize)
	if err != nil {
		return nil, fmt.Errorf("waveform unit: %w", err)
	}
	bank, err := exg.NewBank(NumChannels, cfg.processorOptions()...)
	if err != nil {
		return nil, fmt.Errorf("waveform unit: %w", err)
	}

	u := &WaveformUnit{
		cfg:     cfg,
		engine:  engine,
		filters: bank,
		frame:   make([]float64, NumChannels),
		scratch: make([]float64, cfg.FFTSize),
		mags:    make([]float64, cfg.FFTSize/2),
	}
	for i := range u.windows {
		if u.windows[i], err = buffer.NewRing(cfg.FFTSize); err != nil {
			return nil, fmt.Errorf("waveform unit: %w", err)
		}
		if u.smoother[i], err = spectrum.NewBandSmoother(cfg.SmootherLength); err != nil {
			return nil, fmt.Errorf("waveform unit: %w", err)
		}
	}
	return u, nil
}

// Process filters one raw sample. It returns a band update on every
// SpectralStride-th accepted sample once both EEG windows are full, and
// nil otherwise.
func (u *WaveformUnit) Process(raw RawSample) (FilteredSample, *BandPowerUpdate) {
	u.filters.Process(u.frame, raw.Ch[:])

	out := FilteredSample{Counter: raw.Counter}
	copy(out.Ch[:], u.frame)

	u.windows[0].Push(out.Ch[ChannelEEG0])
	u.windows[1].Push(out.Ch[ChannelEEG1])
	u.accepted++

	if u.accepted%uint64(u.cfg.SpectralStride) != 0 || !u.windows[0].Full() {
		return out, nil
	}
	return out, u.bandUpdate()
}

func (u *WaveformUnit) bandUpdate() *BandPowerUpdate {
	upd := &BandPowerUpdate{Seq: u.accepted}
	for ch, w := range u.windows {
		u.scratch = w.Snapshot(u.scratch)
		mags, err := u.engine.Magnitudes(u.mags, u.scratch)
		if err != nil {
			// A full window always matches the engine size.
			return nil
		}
		u.mags = mags
		rel := spectrum.AbsolutePowers(mags, u.cfg.SampleRate, u.cfg.FFTSize).Relative()
		smoothed := u.smoother[ch].Update(rel)
		if ch == 0 {
			upd.Ch0 = smoothed
		} else {
			upd.Ch1 = smoothed
		}
	}
	upd.Scores = spectrum.Score(upd.Ch0, upd.Ch1)
	return upd
}

// Accepted returns the number of samples processed since the last reset.
func (u *WaveformUnit) Accepted() uint64 {
	return u.accepted
}

// Reset zeroes all filter state and empties windows and smoothers.
func (u *WaveformUnit) Reset() {
	u.filters.Reset()
	for i := range u.windows {
		u.windows[i].Reset()
		u.smoother[i].Reset()
	}
	u.accepted = 0
}
