package signal

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/cwbudde/algo-biosignal/dsp/core"
)

// Generator creates deterministic signals from a shared configuration.
type Generator struct {
	cfg  core.ProcessorConfig
	seed int64
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed sets deterministic random seed for noise generation.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// NewGenerator creates a configured signal generator.
func NewGenerator(opts ...core.ProcessorOption) *Generator {
	return NewGeneratorWithOptions(opts)
}

// NewGeneratorWithOptions creates a configured signal generator with signal-specific options.
func NewGeneratorWithOptions(coreOpts []core.ProcessorOption, opts ...Option) *Generator {
	g := &Generator{
		cfg:  core.ApplyProcessorOptions(coreOpts...),
		seed: 1,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

// Config returns the generator processor configuration.
func (g *Generator) Config() core.ProcessorConfig {
	return g.cfg
}

// Sine generates a sine wave.
func (g *Generator) Sine(freqHz, amplitude float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("sine samples must be > 0: %d", samples)
	}
	out := make([]float64, samples)
	step := 2 * math.Pi * freqHz / g.cfg.SampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out, nil
}

// WhiteNoise generates deterministic white noise in [-amplitude, amplitude].
func (g *Generator) WhiteNoise(amplitude float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("noise samples must be > 0: %d", samples)
	}
	if amplitude < 0 {
		return nil, fmt.Errorf("noise amplitude must be >= 0: %f", amplitude)
	}
	out := make([]float64, samples)
	rng := rand.New(rand.NewSource(g.seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out, nil
}

// ECG generates a synthetic electrocardiogram at heartRate beats per
// minute. The R wave peaks at amplitude; the first R peak falls at 0.32 of
// the first beat period.
func (g *Generator) ECG(heartRate, amplitude float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("ecg samples must be > 0: %d", samples)
	}
	osc, err := NewECGOscillator(g.cfg.SampleRate, heartRate)
	if err != nil {
		return nil, err
	}
	out := make([]float64, samples)
	for i := range out {
		out[i] = amplitude * osc.Next()
	}
	return out, nil
}

// EEG generates a mixture of rhythm-band sinusoids. weights are the
// amplitudes of the delta, theta, alpha, beta and gamma components; noise
// adds deterministic white noise of that amplitude.
func (g *Generator) EEG(weights [5]float64, noise float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("eeg samples must be > 0: %d", samples)
	}
	mix := NewRhythmMix(g.cfg.SampleRate, weights, noise, g.seed)
	out := make([]float64, samples)
	for i := range out {
		out[i] = mix.Next()
	}
	return out, nil
}

// Quantize maps a unit-range signal onto unsigned ADC codes of the given
// resolution centered at mid-scale, clipping at both rails. dst is grown
// when shorter than x.
func Quantize(dst []uint16, x []float64, bits int) []uint16 {
	if cap(dst) < len(x) {
		dst = make([]uint16, len(x))
	}
	dst = dst[:len(x)]
	for i, v := range x {
		dst[i] = QuantizeSample(v, bits)
	}
	return dst
}

// QuantizeSample converts one unit-range value to an ADC code.
func QuantizeSample(v float64, bits int) uint16 {
	fullScale := 1 << bits
	half := float64(fullScale / 2)
	code := int(math.Round(half + v*half))
	return uint16(core.ClampInt(code, 0, fullScale-1))
}
