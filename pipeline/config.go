package pipeline

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-biosignal/dsp/core"
	"github.com/cwbudde/algo-biosignal/dsp/fft"
	"github.com/cwbudde/algo-biosignal/dsp/filter/exg"
)

// Channel layout of a RawSample.
const (
	ChannelEEG0 = 0
	ChannelEEG1 = 1
	ChannelECG  = 2

	NumChannels = 3
)

var errInvalidConfig = errors.New("pipeline: invalid config")

// Config holds the construction-time parameters of a pipeline.
type Config struct {
	SampleRate     float64 `yaml:"sample_rate"`
	ResolutionBits int     `yaml:"resolution_bits"`

	FFTSize        int         `yaml:"fft_size"`
	FFTBackend     fft.Backend `yaml:"fft_backend"`
	SpectralStride int         `yaml:"spectral_stride"`
	SmootherLength int         `yaml:"smoother_length"`

	CardiacBuffer int `yaml:"cardiac_buffer"`
	CardiacStride int `yaml:"cardiac_stride"`
	VoteWindow    int `yaml:"vote_window"`

	// QueueLength bounds every channel between Runner stages.
	QueueLength int `yaml:"queue_length"`
	// EmitWaveform controls whether a FilteredSample event is produced
	// for every input sample.
	EmitWaveform bool `yaml:"emit_waveform"`
}

// DefaultConfig returns the 500 Hz / 12-bit design configuration.
func DefaultConfig() Config {
	return Config{
		SampleRate:     core.DefaultSampleRate,
		ResolutionBits: core.DefaultResolutionBits,
		FFTSize:        256,
		FFTBackend:     fft.BackendRadix2,
		SpectralStride: 10,
		SmootherLength: 128,
		CardiacBuffer:  2500,
		CardiacStride:  500,
		VoteWindow:     5,
		QueueLength:    1024,
		EmitWaveform:   true,
	}
}

// Option mutates a Config.
type Option func(*Config)

// WithSampleRate sets the sampling rate in Hz.
func WithSampleRate(hz float64) Option {
	return func(c *Config) { c.SampleRate = hz }
}

// WithResolutionBits sets the ADC resolution.
func WithResolutionBits(bits int) Option {
	return func(c *Config) { c.ResolutionBits = bits }
}

// WithFFTSize sets the spectral window length.
func WithFFTSize(n int) Option {
	return func(c *Config) { c.FFTSize = n }
}

// WithFFTBackend selects the spectral engine implementation.
func WithFFTBackend(b fft.Backend) Option {
	return func(c *Config) { c.FFTBackend = b }
}

// WithSpectralStride sets the number of samples between band updates.
func WithSpectralStride(n int) Option {
	return func(c *Config) { c.SpectralStride = n }
}

// WithSmootherLength sets the band-power averaging window.
func WithSmootherLength(n int) Option {
	return func(c *Config) { c.SmootherLength = n }
}

// WithCardiacWindow sets the ECG buffer length and the number of samples
// between cardiac updates.
func WithCardiacWindow(buffer, stride int) Option {
	return func(c *Config) {
		c.CardiacBuffer = buffer
		c.CardiacStride = stride
	}
}

// WithVoteWindow sets how many cardiac updates the state vote spans.
func WithVoteWindow(n int) Option {
	return func(c *Config) { c.VoteWindow = n }
}

// WithQueueLength bounds the Runner channels.
func WithQueueLength(n int) Option {
	return func(c *Config) { c.QueueLength = n }
}

// WithWaveform toggles per-sample FilteredSample events.
func WithWaveform(emit bool) Option {
	return func(c *Config) { c.EmitWaveform = emit }
}

// NewConfig applies opts to DefaultConfig and validates the result.
func NewConfig(opts ...Option) (Config, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	switch {
	case c.SampleRate != exg.DesignSampleRate:
		return fmt.Errorf("%w: sample rate %.0f Hz, filters require %.0f Hz", errInvalidConfig, c.SampleRate, exg.DesignSampleRate)
	case c.ResolutionBits < 1 || c.ResolutionBits > 16:
		return fmt.Errorf("%w: resolution %d bits outside [1, 16]", errInvalidConfig, c.ResolutionBits)
	case c.FFTSize < 2 || !core.IsPowerOfTwo(c.FFTSize):
		return fmt.Errorf("%w: fft size %d is not a power of two", errInvalidConfig, c.FFTSize)
	case c.SpectralStride <= 0:
		return fmt.Errorf("%w: spectral stride must be > 0", errInvalidConfig)
	case c.SmootherLength <= 0:
		return fmt.Errorf("%w: smoother length must be > 0", errInvalidConfig)
	case c.CardiacBuffer < 3:
		return fmt.Errorf("%w: cardiac buffer must hold at least 3 samples", errInvalidConfig)
	case c.CardiacStride <= 0:
		return fmt.Errorf("%w: cardiac stride must be > 0", errInvalidConfig)
	case c.VoteWindow <= 0:
		return fmt.Errorf("%w: vote window must be > 0", errInvalidConfig)
	case c.QueueLength < 0:
		return fmt.Errorf("%w: queue length must be >= 0", errInvalidConfig)
	}
	switch c.FFTBackend {
	case "", fft.BackendRadix2, fft.BackendPlanned:
	default:
		return fmt.Errorf("%w: unknown fft backend %q", errInvalidConfig, c.FFTBackend)
	}
	return nil
}

// IsInvalidConfig reports whether err came from Config.Validate.
func IsInvalidConfig(err error) bool {
	return errors.Is(err, errInvalidConfig)
}

func (c Config) processorOptions() []core.ProcessorOption {
	return []core.ProcessorOption{
		core.WithSampleRate(c.SampleRate),
		core.WithResolutionBits(c.ResolutionBits),
	}
}
