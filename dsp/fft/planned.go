package fft

import (
	"fmt"
	"sync"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
)

// Planned computes magnitudes with an algo-fft complex plan.
type Planned struct {
	size int

	mu   sync.Mutex
	plan *algofft.Plan[complex128]
	in   []complex128
	out  []complex128
	re   []float64
	im   []float64
}

// NewPlanned creates an algo-fft plan for size points.
func NewPlanned(size int) (*Planned, error) {
	if err := validateSize(size); err != nil {
		return nil, err
	}
	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return nil, fmt.Errorf("fft: create plan: %w", err)
	}
	return &Planned{
		size: size,
		plan: plan,
		in:   make([]complex128, size),
		out:  make([]complex128, size),
		re:   make([]float64, size/2),
		im:   make([]float64, size/2),
	}, nil
}

// Size returns the transform length.
func (p *Planned) Size() int { return p.size }

// Magnitudes implements [Engine].
func (p *Planned) Magnitudes(dst, samples []float64) ([]float64, error) {
	dst, err := checkInput(dst, samples, p.size)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	for i, x := range samples {
		p.in[i] = complex(x, 0)
	}
	if err := p.plan.Forward(p.out, p.in); err != nil {
		return nil, fmt.Errorf("fft: forward: %w", err)
	}

	half := p.size / 2
	for k := 0; k < half; k++ {
		p.re[k] = real(p.out[k])
		p.im[k] = imag(p.out[k])
	}
	vecmath.Magnitude(dst, p.re, p.im)
	vecmath.ScaleBlock(dst, dst, 1/float64(half))
	return dst, nil
}
