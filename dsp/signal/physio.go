package signal

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/cwbudde/algo-biosignal/dsp/core"
)

// ecgWave is one gaussian component of the synthetic heartbeat, placed at a
// fraction of the beat period.
type ecgWave struct {
	amplitude, center, width float64
}

// P, Q, R, S and T waves of a unit-amplitude beat.
var ecgWaves = [...]ecgWave{
	{0.08, 0.18, 0.03},
	{-0.12, 0.30, 0.01},
	{1.00, 0.32, 0.008},
	{-0.25, 0.35, 0.012},
	{0.25, 0.60, 0.06},
}

// ECGOscillator streams a synthetic heartbeat one sample at a time.
type ECGOscillator struct {
	sampleRate float64
	heartRate  float64
	phase      float64
}

// NewECGOscillator returns an oscillator at heartRate beats per minute.
func NewECGOscillator(sampleRate, heartRate float64) (*ECGOscillator, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("ecg sample rate must be > 0: %f", sampleRate)
	}
	if heartRate <= 0 || heartRate/60 >= sampleRate {
		return nil, fmt.Errorf("ecg heart rate must be > 0 and below one beat per sample: %f", heartRate)
	}
	return &ECGOscillator{sampleRate: sampleRate, heartRate: heartRate}, nil
}

// SetHeartRate changes the rate from the next sample on. Non-positive
// values are ignored.
func (o *ECGOscillator) SetHeartRate(bpm float64) {
	if bpm > 0 {
		o.heartRate = bpm
	}
}

// Next returns the current sample and advances one sample period.
func (o *ECGOscillator) Next() float64 {
	var y float64
	for _, w := range ecgWaves {
		z := (o.phase - w.center) / w.width
		y += w.amplitude * math.Exp(-0.5*z*z)
	}
	o.phase += o.heartRate / 60 / o.sampleRate
	if o.phase >= 1 {
		o.phase -= 1
	}
	return y
}

// Reset rewinds to the start of a beat.
func (o *ECGOscillator) Reset() {
	o.phase = 0
}

// RhythmFrequencies are the component frequencies used for the delta,
// theta, alpha, beta and gamma rhythms.
var RhythmFrequencies = [5]float64{2, 6, 10, 20, 38}

// RhythmMix streams a sum of EEG rhythm sinusoids plus white noise.
type RhythmMix struct {
	weights [5]float64
	phases  [5]float64
	steps   [5]float64
	noise   float64
	rng     *rand.Rand
}

// NewRhythmMix returns a mixture with per-rhythm amplitudes and
// seed-determined starting phases.
func NewRhythmMix(sampleRate float64, weights [5]float64, noise float64, seed int64) *RhythmMix {
	m := &RhythmMix{
		weights: weights,
		noise:   noise,
		rng:     rand.New(rand.NewSource(seed)),
	}
	for i, f := range RhythmFrequencies {
		m.steps[i] = 2 * math.Pi * f / sampleRate
		m.phases[i] = 2 * math.Pi * m.rng.Float64()
	}
	return m
}

// SetWeights replaces the rhythm amplitudes without disturbing phase.
func (m *RhythmMix) SetWeights(weights [5]float64) {
	m.weights = weights
}

// Next returns the next sample.
func (m *RhythmMix) Next() float64 {
	var y float64
	for i := range m.phases {
		y += m.weights[i] * math.Sin(m.phases[i])
		m.phases[i] += m.steps[i]
		if m.phases[i] > 2*math.Pi {
			m.phases[i] -= 2 * math.Pi
		}
	}
	if m.noise > 0 {
		y += (m.rng.Float64()*2 - 1) * m.noise
	}
	return y
}

// SynthConfig describes a simulated two-EEG plus one-ECG front end.
type SynthConfig struct {
	HeartRate    float64       `yaml:"heart_rate"`
	ECGAmplitude float64       `yaml:"ecg_amplitude"`
	EEG          [2][5]float64 `yaml:"eeg"`
	Noise        float64       `yaml:"noise"`
	Seed         int64         `yaml:"seed"`
}

// DefaultSynthConfig is a resting subject at 72 BPM with alpha-dominant EEG.
func DefaultSynthConfig() SynthConfig {
	return SynthConfig{
		HeartRate:    72,
		ECGAmplitude: 0.6,
		EEG: [2][5]float64{
			{0.05, 0.05, 0.25, 0.05, 0.02},
			{0.05, 0.06, 0.20, 0.06, 0.02},
		},
		Noise: 0.01,
		Seed:  1,
	}
}

// Synth produces raw ADC frames: EEG0, EEG1 and ECG, in that order.
type Synth struct {
	cfg  SynthConfig
	bits int
	eeg  [2]*RhythmMix
	ecg  *ECGOscillator
	rng  *rand.Rand
}

// NewSynth builds a frame generator for the acquisition configuration.
func NewSynth(cfg SynthConfig, opts ...core.ProcessorOption) (*Synth, error) {
	pc := core.ApplyProcessorOptions(opts...)
	ecg, err := NewECGOscillator(pc.SampleRate, cfg.HeartRate)
	if err != nil {
		return nil, err
	}
	s := &Synth{
		cfg:  cfg,
		bits: pc.ResolutionBits,
		ecg:  ecg,
		rng:  rand.New(rand.NewSource(cfg.Seed + 2)),
	}
	for i := range s.eeg {
		s.eeg[i] = NewRhythmMix(pc.SampleRate, cfg.EEG[i], cfg.Noise, cfg.Seed+int64(i))
	}
	return s, nil
}

// SetHeartRate changes the simulated heart rate.
func (s *Synth) SetHeartRate(bpm float64) {
	s.ecg.SetHeartRate(bpm)
}

// Next returns the next frame of ADC codes.
func (s *Synth) Next() [3]uint16 {
	ecg := s.cfg.ECGAmplitude * s.ecg.Next()
	if s.cfg.Noise > 0 {
		ecg += (s.rng.Float64()*2 - 1) * s.cfg.Noise
	}
	return [3]uint16{
		QuantizeSample(s.eeg[0].Next(), s.bits),
		QuantizeSample(s.eeg[1].Next(), s.bits),
		QuantizeSample(ecg, s.bits),
	}
}
