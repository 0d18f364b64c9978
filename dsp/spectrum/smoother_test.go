package spectrum

import (
	"math"
	"testing"
)

func TestBandSmootherRamp(t *testing.T) {
	s, err := NewBandSmoother(128)
	if err != nil {
		t.Fatal(err)
	}
	ones := Powers{1, 1, 1, 1, 1}

	got := s.Update(ones)
	if math.Abs(got[Delta]-1.0/128) > 1e-15 {
		t.Fatalf("after one update: %v, want 1/128", got[Delta])
	}

	for i := 1; i < 128; i++ {
		got = s.Update(ones)
	}
	if math.Abs(got[Gamma]-1) > 1e-12 {
		t.Fatalf("after full window: %v, want 1", got[Gamma])
	}

	got = s.Update(Powers{})
	if math.Abs(got[Theta]-127.0/128) > 1e-12 {
		t.Fatalf("after eviction: %v, want 127/128", got[Theta])
	}
	if s.Current() != got {
		t.Fatal("Current must match last Update")
	}
}

func TestBandSmootherBandsIndependent(t *testing.T) {
	s, _ := NewBandSmoother(4)
	s.Update(Powers{0.4, 0.6, 0, 0, 0})
	s.Update(Powers{0, 0, 0.8, 0.2, 0})
	got := s.Current()
	want := Powers{0.1, 0.15, 0.2, 0.05, 0}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-15 {
			t.Fatalf("band %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestBandSmootherReset(t *testing.T) {
	s, _ := NewBandSmoother(2)
	s.Update(Powers{1, 1, 1, 1, 1})
	s.Reset()
	if s.Current() != (Powers{}) {
		t.Fatalf("Current after Reset = %v", s.Current())
	}
	if s.Len() != 2 {
		t.Fatalf("Len = %d, want 2", s.Len())
	}
}

func TestNewBandSmootherRejectsZeroLength(t *testing.T) {
	if _, err := NewBandSmoother(0); err == nil {
		t.Fatal("expected error")
	}
}

func TestScore(t *testing.T) {
	ch0 := Powers{0.2, 0.1, 0.3, 0.3, 0.1}
	ch1 := Powers{0.4, 0.3, 0.1, 0.1, 0.1}
	s := Score(ch0, ch1)

	checks := []struct {
		name      string
		got, want float64
	}{
		{"anxiety", s.Anxiety, 0.4 / 0.401},
		{"meditation", s.Meditation, 0.2},
		{"sleep", s.Sleep, 0.3},
		{"asymmetry", s.Asymmetry, 0.2},
	}
	for _, c := range checks {
		if math.Abs(c.got-c.want) > 1e-12 {
			t.Fatalf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}

	if z := Score(Powers{}, Powers{}); z.Anxiety != 0 || math.IsNaN(z.Anxiety) {
		t.Fatalf("zero powers anxiety = %v, want 0", z.Anxiety)
	}
}
