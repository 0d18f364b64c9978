package affect

import "testing"

func TestVoterWarmup(t *testing.T) {
	v, err := NewVoter(3)
	if err != nil {
		t.Fatal(err)
	}
	if got := v.Add(Focused); got != NoData {
		t.Fatalf("after 1: %v, want no_data", got)
	}
	if got := v.Add(Focused); got != NoData {
		t.Fatalf("after 2: %v, want no_data", got)
	}
	if got := v.Add(Stressed); got != Focused {
		t.Fatalf("after 3: %v, want focused", got)
	}
}

func TestVoterMajorityAndEviction(t *testing.T) {
	v, _ := NewVoter(DefaultVoteWindow)
	for _, s := range []State{Relaxed, Relaxed, Relaxed, Happy, Happy} {
		v.Add(s)
	}
	if got := v.Current(); got != Relaxed {
		t.Fatalf("got %v, want relaxed", got)
	}
	v.Add(Happy)
	if got := v.Current(); got != Happy {
		t.Fatalf("after eviction got %v, want happy", got)
	}
}

func TestVoterTieGoesToLaterFirstAppearance(t *testing.T) {
	v, _ := NewVoter(4)
	for _, s := range []State{Neutral, Focused, Neutral, Focused} {
		v.Add(s)
	}
	if got := v.Current(); got != Focused {
		t.Fatalf("got %v, want focused", got)
	}

	v.Add(Neutral) // window: focused neutral focused neutral
	if got := v.Current(); got != Neutral {
		t.Fatalf("got %v, want neutral", got)
	}
}

func TestVoterReset(t *testing.T) {
	v, _ := NewVoter(2)
	v.Add(Happy)
	v.Add(Happy)
	v.Reset()
	if got := v.Add(Happy); got != NoData {
		t.Fatalf("after reset got %v, want no_data", got)
	}
}

func TestNewVoterRejectsZero(t *testing.T) {
	if _, err := NewVoter(0); err == nil {
		t.Fatal("expected error")
	}
}
