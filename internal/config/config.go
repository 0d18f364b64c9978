// Package config assembles the application configuration from a YAML file,
// an optional .env file and BIOSIGNAL_* environment variables, in that
// order of increasing precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-biosignal/dsp/fft"
	"github.com/cwbudde/algo-biosignal/dsp/signal"
	"github.com/cwbudde/algo-biosignal/pipeline"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "BIOSIGNAL_"

// Config is the full application configuration.
type Config struct {
	Pipeline pipeline.Config   `yaml:"pipeline"`
	Synth    signal.SynthConfig `yaml:"synth"`
	NATS     NATS               `yaml:"nats"`
	Log      Log                `yaml:"log"`
	Metrics  Metrics            `yaml:"metrics"`
	Record   Record             `yaml:"record"`
}

// NATS configures the message bus.
type NATS struct {
	URL string `yaml:"url"`
	// Subject carries raw device packets.
	Subject string `yaml:"subject"`
	// Prefix is prepended to the output subjects.
	Prefix string `yaml:"prefix"`
	// Codec is "json" or "msgpack".
	Codec string `yaml:"codec"`
}

// Log configures the zap logger.
type Log struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// Metrics configures the prometheus endpoint.
type Metrics struct {
	Addr string `yaml:"addr"`
}

// Record configures EDF output.
type Record struct {
	// Path of the filtered-waveform EDF file; empty disables recording.
	Path      string `yaml:"path"`
	PatientID string `yaml:"patient_id"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Pipeline: pipeline.DefaultConfig(),
		Synth:    signal.DefaultSynthConfig(),
		NATS: NATS{
			URL:     "nats://127.0.0.1:4222",
			Subject: "biosignal.raw",
			Prefix:  "biosignal",
			Codec:   "json",
		},
		Log:     Log{Level: "info"},
		Metrics: Metrics{Addr: ":9102"},
	}
}

// Load reads path (if non-empty) over the defaults, then loads envFile
// (if it exists) into the process environment and applies overrides.
func Load(path, envFile string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return cfg, fmt.Errorf("config: load %s: %w", envFile, err)
		}
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return cfg, err
	}
	if err := cfg.Pipeline.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// ApplyEnv applies BIOSIGNAL_* overrides found through lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	e := envReader{lookup: lookup}

	e.setFloat("SAMPLE_RATE", &c.Pipeline.SampleRate)
	e.setInt("RESOLUTION_BITS", &c.Pipeline.ResolutionBits)
	e.setInt("FFT_SIZE", &c.Pipeline.FFTSize)
	if v, ok := e.get("FFT_BACKEND"); ok {
		c.Pipeline.FFTBackend = fft.Backend(v)
	}
	e.setInt("QUEUE_LENGTH", &c.Pipeline.QueueLength)
	e.setBool("EMIT_WAVEFORM", &c.Pipeline.EmitWaveform)

	e.setFloat("HEART_RATE", &c.Synth.HeartRate)
	e.setInt64("SEED", &c.Synth.Seed)

	e.setString("NATS_URL", &c.NATS.URL)
	e.setString("NATS_SUBJECT", &c.NATS.Subject)
	e.setString("NATS_PREFIX", &c.NATS.Prefix)
	e.setString("CODEC", &c.NATS.Codec)

	e.setString("LOG_LEVEL", &c.Log.Level)
	e.setBool("LOG_DEV", &c.Log.Development)
	e.setString("METRICS_ADDR", &c.Metrics.Addr)
	e.setString("RECORD_PATH", &c.Record.Path)

	return e.err
}

type envReader struct {
	lookup func(string) (string, bool)
	err    error
}

func (e *envReader) get(key string) (string, bool) {
	v, ok := e.lookup(EnvPrefix + key)
	if !ok {
		return "", false
	}
	return strings.TrimSpace(v), true
}

func (e *envReader) fail(key string, err error) {
	if e.err == nil {
		e.err = fmt.Errorf("config: %s%s: %w", EnvPrefix, key, err)
	}
}

func (e *envReader) setString(key string, dst *string) {
	if v, ok := e.get(key); ok {
		*dst = v
	}
}

func (e *envReader) setInt(key string, dst *int) {
	v, ok := e.get(key)
	if !ok {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		e.fail(key, err)
		return
	}
	*dst = n
}

func (e *envReader) setInt64(key string, dst *int64) {
	v, ok := e.get(key)
	if !ok {
		return
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		e.fail(key, err)
		return
	}
	*dst = n
}

func (e *envReader) setFloat(key string, dst *float64) {
	v, ok := e.get(key)
	if !ok {
		return
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		e.fail(key, err)
		return
	}
	*dst = f
}

func (e *envReader) setBool(key string, dst *bool) {
	v, ok := e.get(key)
	if !ok {
		return
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		e.fail(key, err)
		return
	}
	*dst = b
}
