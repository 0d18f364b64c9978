package buffer

import "fmt"

// MovingAverage is the arithmetic mean of the last K values pushed. Before
// K values have arrived it averages what it has.
type MovingAverage struct {
	window []float64
	pos    int
	count  int
	sum    float64
}

// NewMovingAverage returns a moving average over k values.
func NewMovingAverage(k int) (*MovingAverage, error) {
	if k <= 0 {
		return nil, fmt.Errorf("moving average length must be > 0: %d", k)
	}
	return &MovingAverage{window: make([]float64, k)}, nil
}

// Add pushes x and returns the updated mean.
func (m *MovingAverage) Add(x float64) float64 {
	if m.count == len(m.window) {
		m.sum -= m.window[m.pos]
	} else {
		m.count++
	}
	m.window[m.pos] = x
	m.sum += x
	m.pos++
	if m.pos == len(m.window) {
		m.pos = 0
	}
	// Recompute once per lap to bound floating-point drift of the running sum.
	if m.pos == 0 {
		m.sum = 0
		for _, v := range m.window[:m.count] {
			m.sum += v
		}
	}
	return m.Mean()
}

// Mean returns the current mean, or 0 when empty.
func (m *MovingAverage) Mean() float64 {
	if m.count == 0 {
		return 0
	}
	return m.sum / float64(m.count)
}

// Sum returns the sum of the buffered values.
func (m *MovingAverage) Sum() float64 {
	return m.sum
}

// Len returns how many values contribute to the mean.
func (m *MovingAverage) Len() int {
	return m.count
}

// Size returns the window length K.
func (m *MovingAverage) Size() int {
	return len(m.window)
}

// Reset empties the window.
func (m *MovingAverage) Reset() {
	for i := range m.window {
		m.window[i] = 0
	}
	m.pos = 0
	m.count = 0
	m.sum = 0
}
