package core

// Design defaults of the acquisition front end.
const (
	DefaultSampleRate     = 500.0
	DefaultResolutionBits = 12
)

// ProcessorConfig defines the acquisition parameters shared by filters,
// generators and analyzers.
type ProcessorConfig struct {
	SampleRate     float64
	ResolutionBits int
}

// ProcessorOption mutates a ProcessorConfig.
type ProcessorOption func(*ProcessorConfig)

// DefaultProcessorConfig returns the 500 Hz / 12-bit design configuration.
func DefaultProcessorConfig() ProcessorConfig {
	return ProcessorConfig{
		SampleRate:     DefaultSampleRate,
		ResolutionBits: DefaultResolutionBits,
	}
}

// WithSampleRate sets the sampling rate in Hz.
func WithSampleRate(sampleRate float64) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if sampleRate > 0 {
			cfg.SampleRate = sampleRate
		}
	}
}

// WithResolutionBits sets the ADC resolution. Values outside [1, 16] are
// ignored.
func WithResolutionBits(bits int) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if bits > 0 && bits <= 16 {
			cfg.ResolutionBits = bits
		}
	}
}

// ApplyProcessorOptions applies zero or more options to the default config.
func ApplyProcessorOptions(opts ...ProcessorOption) ProcessorConfig {
	cfg := DefaultProcessorConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// FullScale returns 2^ResolutionBits, the number of distinct ADC codes.
func (c ProcessorConfig) FullScale() int {
	return 1 << c.ResolutionBits
}
