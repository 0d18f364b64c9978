package cardiac

import (
	"math"

	"github.com/cwbudde/algo-biosignal/dsp/buffer"
)

const (
	defaultSmootherWindow = 5
	defaultSmootherStep   = 2.0
)

// BPMSmoother turns successive BPM readings into a display value: the mean
// of the last few readings, approached at most MaxStep BPM per update.
type BPMSmoother struct {
	avg     *buffer.MovingAverage
	maxStep float64
	shown   float64
	valid   bool
}

// NewBPMSmoother returns a smoother over window readings that moves at most
// maxStep BPM per update. Non-positive arguments select 5 and 2.
func NewBPMSmoother(window int, maxStep float64) *BPMSmoother {
	if window <= 0 {
		window = defaultSmootherWindow
	}
	if maxStep <= 0 {
		maxStep = defaultSmootherStep
	}
	avg, _ := buffer.NewMovingAverage(window)
	return &BPMSmoother{avg: avg, maxStep: maxStep}
}

// Update feeds one reading. A nil reading clears the smoother and returns
// nil.
func (s *BPMSmoother) Update(bpm *int) *float64 {
	if bpm == nil {
		s.Reset()
		return nil
	}

	mean := s.avg.Add(float64(*bpm))
	if !s.valid {
		s.shown = mean
		s.valid = true
	} else {
		diff := mean - s.shown
		s.shown += math.Copysign(math.Min(math.Abs(diff), s.maxStep), diff)
	}

	v := s.shown
	return &v
}

// Value returns the displayed BPM, or ok=false when no reading is held.
func (s *BPMSmoother) Value() (float64, bool) {
	return s.shown, s.valid
}

// Reset forgets all readings.
func (s *BPMSmoother) Reset() {
	s.avg.Reset()
	s.shown = 0
	s.valid = false
}
