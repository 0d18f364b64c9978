package affect

import (
	"fmt"
	"math"
)

// State is a coarse affective state.
type State int

// States in declaration order. The zero value is NoData.
const (
	NoData State = iota
	Stressed
	MildStress
	Focused
	Happy
	Relaxed
	Neutral
)

var stateNames = [...]string{
	NoData:     "no_data",
	Stressed:   "stressed",
	MildStress: "mild_stress",
	Focused:    "focused",
	Happy:      "happy",
	Relaxed:    "relaxed",
	Neutral:    "neutral",
}

// String returns the snake_case name of s.
func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("State(%d)", int(s))
	}
	return stateNames[s]
}

// MarshalText implements encoding.TextMarshaler.
func (s State) MarshalText() ([]byte, error) {
	if s < 0 || int(s) >= len(stateNames) {
		return nil, fmt.Errorf("affect: invalid state %d", int(s))
	}
	return []byte(stateNames[s]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *State) UnmarshalText(text []byte) error {
	st, err := ParseState(string(text))
	if err != nil {
		return err
	}
	*s = st
	return nil
}

// ParseState returns the state named name.
func ParseState(name string) (State, error) {
	for i, n := range stateNames {
		if n == name {
			return State(i), nil
		}
	}
	return NoData, fmt.Errorf("affect: unknown state %q", name)
}

// Classify maps SDNN (ms), RMSSD (ms) and pNN50 (percent) onto a state.
// The first matching rule wins; NaN in any input yields NoData.
func Classify(sdnn, rmssd, pnn50 float64) State {
	switch {
	case math.IsNaN(sdnn) || math.IsNaN(rmssd) || math.IsNaN(pnn50):
		return NoData
	case sdnn < 5 && rmssd < 5 && pnn50 < 10:
		return NoData
	case rmssd < 20 && sdnn < 30:
		return Stressed
	case (rmssd < 30 && sdnn < 50) || (rmssd < 35 && pnn50 < 20):
		return MildStress
	case rmssd >= 20 && rmssd <= 50 && sdnn >= 30 && pnn50 < 30:
		return Focused
	case rmssd >= 30 && rmssd <= 70 && sdnn >= 30 && pnn50 > 50:
		return Happy
	case rmssd > 50 && sdnn > 50 && pnn50 > 40:
		return Relaxed
	default:
		return Neutral
	}
}
