package fft

import (
	"math"
	"sync"

	"github.com/cwbudde/algo-biosignal/dsp/core"
	"github.com/cwbudde/algo-vecmath"
)

// Radix2 is an iterative decimation-in-time FFT of fixed size. Its tables
// depend only on the size and are never written after construction.
type Radix2 struct {
	size    int
	cos     []float64
	sin     []float64
	reverse []int

	scratch sync.Pool
}

type radix2Scratch struct {
	re, im []float64
}

// NewRadix2 precomputes bit-reversal and twiddle tables for size points.
func NewRadix2(size int) (*Radix2, error) {
	if err := validateSize(size); err != nil {
		return nil, err
	}

	half := size / 2
	r := &Radix2{
		size:    size,
		cos:     make([]float64, half),
		sin:     make([]float64, half),
		reverse: make([]int, size),
	}
	for k := 0; k < half; k++ {
		phi := 2 * math.Pi * float64(k) / float64(size)
		r.cos[k] = math.Cos(phi)
		r.sin[k] = math.Sin(phi)
	}

	bits := core.Log2(size)
	for i := range r.reverse {
		r.reverse[i] = reverseBits(i, bits)
	}

	r.scratch.New = func() any {
		return &radix2Scratch{re: make([]float64, size), im: make([]float64, size)}
	}
	return r, nil
}

// Size returns the transform length.
func (r *Radix2) Size() int { return r.size }

// Magnitudes implements [Engine].
func (r *Radix2) Magnitudes(dst, samples []float64) ([]float64, error) {
	dst, err := checkInput(dst, samples, r.size)
	if err != nil {
		return nil, err
	}

	s := r.scratch.Get().(*radix2Scratch)
	defer r.scratch.Put(s)

	r.transform(s.re, s.im, samples)

	half := r.size / 2
	vecmath.Magnitude(dst, s.re[:half], s.im[:half])
	vecmath.ScaleBlock(dst, dst, 1/float64(half))
	return dst, nil
}

// Transform writes the complex spectrum of samples into re and im, which
// must have Size() elements.
func (r *Radix2) Transform(re, im, samples []float64) error {
	if len(samples) != r.size || len(re) != r.size || len(im) != r.size {
		return ErrSize
	}
	r.transform(re, im, samples)
	return nil
}

func (r *Radix2) transform(re, im, samples []float64) {
	n := r.size
	for i, j := range r.reverse {
		re[j] = samples[i]
		im[j] = 0
	}

	for span := 2; span <= n; span <<= 1 {
		half := span / 2
		stride := n / span
		for start := 0; start < n; start += span {
			for k := 0; k < half; k++ {
				wr := r.cos[k*stride]
				wi := -r.sin[k*stride]
				a := start + k
				b := a + half
				tr := re[b]*wr - im[b]*wi
				ti := re[b]*wi + im[b]*wr
				re[b] = re[a] - tr
				im[b] = im[a] - ti
				re[a] += tr
				im[a] += ti
			}
		}
	}
}

func reverseBits(v, bits int) int {
	out := 0
	for i := 0; i < bits; i++ {
		out = out<<1 | v&1
		v >>= 1
	}
	return out
}
