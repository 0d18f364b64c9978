package spectrum

import (
	"fmt"

	"github.com/cwbudde/algo-biosignal/dsp/buffer"
)

// BandSmoother averages per-band relative powers over the last Len()
// updates. The divisor is always Len(), so output ramps up from zero while
// the window fills.
type BandSmoother struct {
	bands [NumBands]*buffer.MovingAverage
}

// NewBandSmoother returns a smoother over length updates.
func NewBandSmoother(length int) (*BandSmoother, error) {
	s := &BandSmoother{}
	for i := range s.bands {
		ma, err := buffer.NewMovingAverage(length)
		if err != nil {
			return nil, fmt.Errorf("band smoother: %w", err)
		}
		s.bands[i] = ma
	}
	return s, nil
}

// Len returns the smoothing window length.
func (s *BandSmoother) Len() int {
	return s.bands[0].Size()
}

// Update pushes one set of relative powers and returns Current().
func (s *BandSmoother) Update(rel Powers) Powers {
	for i, ma := range s.bands {
		ma.Add(rel[i])
	}
	return s.Current()
}

// Current returns the smoothed powers.
func (s *BandSmoother) Current() Powers {
	var out Powers
	for i, ma := range s.bands {
		out[i] = ma.Sum() / float64(ma.Size())
	}
	return out
}

// Reset zeroes the window.
func (s *BandSmoother) Reset() {
	for _, ma := range s.bands {
		ma.Reset()
	}
}
