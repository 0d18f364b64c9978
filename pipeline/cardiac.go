package pipeline

import (
	"fmt"

	"github.com/cwbudde/algo-biosignal/dsp/buffer"
	"github.com/cwbudde/algo-biosignal/measure/affect"
	"github.com/cwbudde/algo-biosignal/measure/cardiac"
)

// CardiacUnit buffers filtered ECG and periodically re-analyzes the whole
// buffer. It is owned by a single goroutine.
type CardiacUnit struct {
	cfg      Config
	ring     *buffer.Ring
	analyzer *cardiac.Analyzer
	voter    *affect.Voter
	bpm      *cardiac.BPMSmoother

	accepted uint64
	snapshot []float64
}

// NewCardiacUnit builds the ECG buffer, analyzer and state voter.
func NewCardiacUnit(cfg Config) (*CardiacUnit, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	ring, err := buffer.NewRing(cfg.CardiacBuffer)
	if err != nil {
		return nil, fmt.Errorf("cardiac unit: %w", err)
	}
	voter, err := affect.NewVoter(cfg.VoteWindow)
	if err != nil {
		return nil, fmt.Errorf("cardiac unit: %w", err)
	}

	ac := cardiac.DefaultConfig()
	ac.SampleRate = cfg.SampleRate

	return &CardiacUnit{
		cfg:      cfg,
		ring:     ring,
		analyzer: cardiac.NewAnalyzer(ac),
		voter:    voter,
		bpm:      cardiac.NewBPMSmoother(0, 0),
		snapshot: make([]float64, 0, cfg.CardiacBuffer),
	}, nil
}

// Process appends one filtered ECG sample. Every CardiacStride-th accepted
// sample the buffer, full or not, is analyzed and an update returned.
func (u *CardiacUnit) Process(ecg float64) *CardiacUpdate {
	u.ring.Push(ecg)
	u.accepted++
	if u.accepted%uint64(u.cfg.CardiacStride) != 0 {
		return nil
	}

	u.snapshot = u.ring.Snapshot(u.snapshot)
	res := u.analyzer.Analyze(u.snapshot)
	state := affect.Classify(res.Variability())

	return &CardiacUpdate{
		Seq:        u.accepted,
		Result:     res,
		State:      state,
		Stable:     u.voter.Add(state),
		DisplayBPM: u.bpm.Update(res.BPM),
	}
}

// Accepted returns the number of samples processed since the last reset.
func (u *CardiacUnit) Accepted() uint64 {
	return u.accepted
}

// Reset empties the ECG buffer and forgets past states and BPM readings.
func (u *CardiacUnit) Reset() {
	u.ring.Reset()
	u.voter.Reset()
	u.bpm.Reset()
	u.accepted = 0
}
