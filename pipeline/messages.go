package pipeline

import (
	"github.com/cwbudde/algo-biosignal/dsp/spectrum"
	"github.com/cwbudde/algo-biosignal/measure/affect"
	"github.com/cwbudde/algo-biosignal/measure/cardiac"
)

// RawSample is one acquisition frame: an 8-bit rolling counter and one ADC
// code per channel.
type RawSample struct {
	Counter uint8               `json:"counter" msgpack:"counter"`
	Ch      [NumChannels]uint16 `json:"ch" msgpack:"ch"`
}

// FilteredSample is a RawSample after per-channel conditioning.
type FilteredSample struct {
	Counter uint8                `json:"counter" msgpack:"counter"`
	Ch      [NumChannels]float64 `json:"ch" msgpack:"ch"`
}

// BandPowerUpdate carries the smoothed relative band powers of both EEG
// channels.
type BandPowerUpdate struct {
	// Seq counts samples accepted since the last restart.
	Seq    uint64          `json:"seq" msgpack:"seq"`
	Ch0    spectrum.Powers `json:"ch0" msgpack:"ch0"`
	Ch1    spectrum.Powers `json:"ch1" msgpack:"ch1"`
	Scores spectrum.Scores `json:"scores" msgpack:"scores"`
}

// CardiacUpdate carries heart rate, HRV and the derived affective state.
type CardiacUpdate struct {
	Seq uint64 `json:"seq" msgpack:"seq"`
	cardiac.Result
	// State is the classification of this update alone.
	State affect.State `json:"state" msgpack:"state"`
	// Stable is the majority of the last few states.
	Stable affect.State `json:"stableState" msgpack:"stableState"`
	// DisplayBPM is the step-limited moving average of BPM.
	DisplayBPM *float64 `json:"displayBpm" msgpack:"displayBpm"`
}

// EventKind tags an Event.
type EventKind int

// Event kinds.
const (
	EventFiltered EventKind = iota + 1
	EventBands
	EventCardiac
)

// Event is one item of the Runner output stream. Exactly the field that
// matches Kind is set.
type Event struct {
	Kind     EventKind
	Filtered FilteredSample
	Bands    *BandPowerUpdate
	Cardiac  *CardiacUpdate
}
