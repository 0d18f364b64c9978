package spectrum

import "math"

// Scores are the display goals derived from two channels of smoothed
// relative band power.
type Scores struct {
	Anxiety    float64 `json:"anxiety" msgpack:"anxiety"`
	Meditation float64 `json:"meditation" msgpack:"meditation"`
	Sleep      float64 `json:"sleep" msgpack:"sleep"`
	// Asymmetry is |alpha0 - alpha1|.
	Asymmetry float64 `json:"asymmetry" msgpack:"asymmetry"`
}

// Score derives goal scores from the smoothed powers of two channels.
func Score(ch0, ch1 Powers) Scores {
	return Scores{
		Anxiety:    (ch0[Alpha] + ch1[Alpha]) / (ch0[Beta] + ch1[Beta] + 0.001),
		Meditation: (ch0[Theta] + ch1[Theta]) / 2,
		Sleep:      (ch0[Delta] + ch1[Delta]) / 2,
		Asymmetry:  math.Abs(ch0[Alpha] - ch1[Alpha]),
	}
}
