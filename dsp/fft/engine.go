package fft

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-biosignal/dsp/core"
)

// Backend names an Engine implementation.
type Backend string

const (
	// BackendRadix2 selects the built-in radix-2 engine.
	BackendRadix2 Backend = "radix2"
	// BackendPlanned selects the algo-fft backed engine.
	BackendPlanned Backend = "planned"
)

var (
	// ErrSize reports an input window whose length differs from the engine size.
	ErrSize = errors.New("fft: input length does not match engine size")

	errNotPowerOfTwo = errors.New("fft: size must be a power of two >= 2")
)

// Engine computes normalized magnitude spectra of fixed-size windows.
// Implementations are safe for concurrent use.
type Engine interface {
	// Size returns the window length N.
	Size() int
	// Magnitudes writes |X[k]|/(N/2) for k in [0, N/2) into dst and returns
	// it. dst is allocated when shorter than N/2.
	Magnitudes(dst, samples []float64) ([]float64, error)
}

// New returns the engine selected by backend. An empty backend selects
// [BackendRadix2].
func New(backend Backend, size int) (Engine, error) {
	switch backend {
	case "", BackendRadix2:
		return NewRadix2(size)
	case BackendPlanned:
		return NewPlanned(size)
	default:
		return nil, fmt.Errorf("fft: unknown backend %q", backend)
	}
}

func validateSize(size int) error {
	if size < 2 || !core.IsPowerOfTwo(size) {
		return fmt.Errorf("%w: %d", errNotPowerOfTwo, size)
	}
	return nil
}

func checkInput(dst, samples []float64, size int) ([]float64, error) {
	if len(samples) != size {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrSize, len(samples), size)
	}
	half := size / 2
	return core.EnsureLen(dst, half), nil
}
