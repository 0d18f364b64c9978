package buffer

import (
	"fmt"

	"github.com/cwbudde/algo-biosignal/dsp/core"
)

// Ring is a sliding window over the most recent Cap() samples. Pushing
// into a full ring evicts the oldest sample.
type Ring struct {
	data     []float64
	writePos int
	count    int
}

// NewRing returns an empty ring holding up to capacity samples.
func NewRing(capacity int) (*Ring, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("ring capacity must be > 0: %d", capacity)
	}
	return &Ring{data: make([]float64, capacity)}, nil
}

// Cap returns the maximum number of retained samples.
func (r *Ring) Cap() int {
	return len(r.data)
}

// Len returns the number of retained samples.
func (r *Ring) Len() int {
	return r.count
}

// Full reports whether the ring holds Cap() samples.
func (r *Ring) Full() bool {
	return r.count == len(r.data)
}

// Push appends x, evicting the oldest sample when full.
func (r *Ring) Push(x float64) {
	r.data[r.writePos] = x
	r.writePos++
	if r.writePos == len(r.data) {
		r.writePos = 0
	}
	if r.count < len(r.data) {
		r.count++
	}
}

// At returns the i-th retained sample, 0 being the oldest.
func (r *Ring) At(i int) float64 {
	if i < 0 || i >= r.count {
		panic(fmt.Sprintf("buffer: ring index %d out of range [0, %d)", i, r.count))
	}
	return r.data[r.index(i)]
}

// Snapshot copies the retained samples, oldest first, into dst and returns
// the filled prefix. dst is grown when it is too short.
func (r *Ring) Snapshot(dst []float64) []float64 {
	dst = core.EnsureLen(dst, r.count)
	start := r.index(0)
	n := copy(dst, r.data[start:min(start+r.count, len(r.data))])
	copy(dst[n:], r.data[:r.count-n])
	return dst
}

// Reset discards all samples.
func (r *Ring) Reset() {
	core.Zero(r.data)
	r.writePos = 0
	r.count = 0
}

func (r *Ring) index(i int) int {
	start := r.writePos - r.count
	if start < 0 {
		start += len(r.data)
	}
	j := start + i
	if j >= len(r.data) {
		j -= len(r.data)
	}
	return j
}
