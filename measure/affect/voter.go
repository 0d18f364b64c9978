package affect

import "fmt"

// DefaultVoteWindow is five cardiac updates, about five seconds of data.
const DefaultVoteWindow = 5

// Voter reports the most frequent of the last N states. It reports NoData
// until N states have been seen since construction or the last Reset.
type Voter struct {
	window []State
	pos    int
	count  int
}

// NewVoter returns a voter over the last n states.
func NewVoter(n int) (*Voter, error) {
	if n <= 0 {
		return nil, fmt.Errorf("affect: vote window must be > 0: %d", n)
	}
	return &Voter{window: make([]State, n)}, nil
}

// Add records s and returns the current majority.
func (v *Voter) Add(s State) State {
	v.window[v.pos] = s
	v.pos = (v.pos + 1) % len(v.window)
	if v.count < len(v.window) {
		v.count++
	}
	return v.Current()
}

// Current returns the majority state. Ties go to the state whose first
// appearance in the window is most recent.
func (v *Voter) Current() State {
	if v.count < len(v.window) {
		return NoData
	}

	var counts [len(stateNames)]int
	order := make([]State, 0, len(stateNames))
	for i := range v.window {
		s := v.window[(v.pos+i)%len(v.window)]
		if s < 0 || int(s) >= len(stateNames) {
			continue
		}
		if counts[s] == 0 {
			order = append(order, s)
		}
		counts[s]++
	}

	best := NoData
	bestCount := 0
	for _, s := range order {
		if counts[s] >= bestCount {
			best, bestCount = s, counts[s]
		}
	}
	return best
}

// Reset forgets all recorded states.
func (v *Voter) Reset() {
	for i := range v.window {
		v.window[i] = NoData
	}
	v.pos = 0
	v.count = 0
}
