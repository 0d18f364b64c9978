package biquad

import (
	"math"
	"testing"
)

// tolerance for floating-point comparisons.
const eps = 1e-12

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

// passthrough returns coefficients for a unity gain passthrough (B0=1, all else 0).
func passthrough() Coefficients {
	return Coefficients{B0: 1}
}

// smoothing returns a well-damped lowpass used across the tests.
func smoothing() Coefficients {
	return Coefficients{B0: 0.25, B1: 0.5, B2: 0.25, A1: -0.2, A2: 0.04}
}

func TestNewSection(t *testing.T) {
	c := Coefficients{B0: 1, B1: 2, B2: 3, A1: 4, A2: 5}
	s := NewSection(c)
	if s.Coefficients != c {
		t.Fatalf("coefficients mismatch: got %v, want %v", s.Coefficients, c)
	}
	if st := s.State(); st != [2]float64{0, 0} {
		t.Fatalf("initial state not zero: %v", st)
	}
}

func TestProcessSample_Passthrough(t *testing.T) {
	s := NewSection(passthrough())
	for i, x := range []float64{1, 0, -1, 0.5, 0.25} {
		if y := s.ProcessSample(x); !almostEqual(y, x, eps) {
			t.Errorf("sample %d: got %v, want %v", i, y, x)
		}
	}
}

func TestProcessSample_DirectFormII(t *testing.T) {
	// Hand-traced with x = [1, 0, 0, 0, 0, 0]:
	//
	// n=0: w=1                         y=0.25
	// n=1: w=0.2*1            = 0.2    y=0.25*0.2+0.5*1       = 0.55
	// n=2: w=0.2*0.2-0.04*1   = 0      y=0.5*0.2+0.25*1       = 0.35
	// n=3: w=-0.04*0.2        = -0.008 y=-0.002+0.25*0.2      = 0.048
	// n=4: w=0.2*-0.008       =-0.0016 y=-0.0004-0.004        = -0.0044
	// n=5: w=-0.00032+0.00032 = 0      y=0.5*-0.0016-0.002    = -0.0028
	s := NewSection(smoothing())

	want := []float64{0.25, 0.55, 0.35, 0.048, -0.0044, -0.0028}
	for i, w := range want {
		var x float64
		if i == 0 {
			x = 1
		}
		if y := s.ProcessSample(x); !almostEqual(y, w, eps) {
			t.Errorf("sample %d: got %.15f, want %.15f", i, y, w)
		}
	}
}

func TestProcessSample_IntermediateTaps(t *testing.T) {
	// The delay line holds the feedback intermediate w, not the output.
	s := NewSection(Coefficients{B0: 0.5, A1: -0.5})
	s.ProcessSample(1) // w=1
	s.ProcessSample(0) // w=0.5
	if st := s.State(); !almostEqual(st[0], 0.5, eps) || !almostEqual(st[1], 1, eps) {
		t.Fatalf("state = %v, want [0.5 1]", st)
	}
}

func TestProcessBlock_MatchesSample(t *testing.T) {
	input := []float64{1, 0.5, -0.3, 0.7, 0, -1, 0.2, 0.8, -0.1}

	s1 := NewSection(smoothing())
	ref := make([]float64, len(input))
	for i, x := range input {
		ref[i] = s1.ProcessSample(x)
	}

	s2 := NewSection(smoothing())
	block := append([]float64(nil), input...)
	s2.ProcessBlock(block)

	for i := range block {
		if !almostEqual(block[i], ref[i], eps) {
			t.Errorf("sample %d: ProcessBlock=%.15f, ProcessSample=%.15f", i, block[i], ref[i])
		}
	}
	if s1.State() != s2.State() {
		t.Fatalf("state diverged: %v vs %v", s1.State(), s2.State())
	}
}

func TestProcessSample_PureDelay(t *testing.T) {
	s := NewSection(Coefficients{B1: 1})
	input := []float64{1, 2, 3, 4, 5}
	want := []float64{0, 1, 2, 3, 4}
	for i, x := range input {
		if y := s.ProcessSample(x); !almostEqual(y, want[i], eps) {
			t.Errorf("sample %d: got %v, want %v", i, y, want[i])
		}
	}
}

func TestReset(t *testing.T) {
	s := NewSection(smoothing())
	s.ProcessSample(1)
	s.ProcessSample(0.5)

	if s.State() == [2]float64{0, 0} {
		t.Fatal("state should be non-zero after processing")
	}

	s.Reset()
	if st := s.State(); st != [2]float64{0, 0} {
		t.Fatalf("state not zero after reset: %v", st)
	}
}

func TestState_SaveRestore(t *testing.T) {
	s := NewSection(smoothing())
	s.ProcessSample(1)
	s.ProcessSample(0.5)
	saved := s.State()

	y3 := s.ProcessSample(-0.3)
	y4 := s.ProcessSample(0.7)

	s.SetState(saved)
	if y := s.ProcessSample(-0.3); !almostEqual(y, y3, eps) {
		t.Errorf("sample 3: got %v after restore, want %v", y, y3)
	}
	if y := s.ProcessSample(0.7); !almostEqual(y, y4, eps) {
		t.Errorf("sample 4: got %v after restore, want %v", y, y4)
	}
}

func TestProcessSample_StabilityLongRun(t *testing.T) {
	s := NewSection(smoothing())
	s.ProcessSample(1)

	for range 10000 {
		s.ProcessSample(0)
	}
	st := s.State()
	if math.Abs(st[0]) > 1e-100 || math.Abs(st[1]) > 1e-100 {
		t.Errorf("state did not decay: %v", st)
	}
}

func TestProcessSample_ConstantConvergesToDCGain(t *testing.T) {
	c := smoothing()
	s := NewSection(c)
	var y float64
	for range 200 {
		y = s.ProcessSample(0.3)
	}
	if !almostEqual(y, 0.3*c.DCGain(), 1e-12) {
		t.Fatalf("steady state = %v, want %v", y, 0.3*c.DCGain())
	}
}
