package hrv

import (
	"math"
	"testing"
)

func TestCalculateKnownValues(t *testing.T) {
	s := Calculate([]float64{800, 810, 790, 805})

	checks := []struct {
		name      string
		got, want float64
	}{
		{"mean", s.Mean, 801.25},
		{"min", s.Min, 790},
		{"max", s.Max, 810},
		{"latest", s.Latest, 805},
		// Deviations 1.25, -8.75, 11.25, -3.75 sum of squares 218.75.
		{"sdnn", s.SDNN, math.Sqrt(218.75 / 3)},
		// Differences 10, -20, 15.
		{"rmssd", s.RMSSD, math.Sqrt(725.0 / 3)},
		{"pnn50", s.PNN50, 0},
	}
	for _, c := range checks {
		if math.Abs(c.got-c.want) > 1e-9 {
			t.Fatalf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}
	if !s.HasVariability || s.Count != 4 {
		t.Fatalf("HasVariability = %v Count = %d", s.HasVariability, s.Count)
	}
}

func TestPNN50(t *testing.T) {
	tests := []struct {
		name string
		rr   []float64
		want float64
	}{
		{"none", []float64{800, 820, 840}, 0},
		{"all", []float64{700, 800, 700}, 100},
		{"half", []float64{700, 760, 770}, 50},
		{"exactly 50 is not counted", []float64{800, 850}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := PNN50(tt.rr)
			if !ok {
				t.Fatal("expected ok")
			}
			if math.Abs(got-tt.want) > 1e-12 {
				t.Fatalf("PNN50 = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestInsufficientIntervals(t *testing.T) {
	if s := Calculate(nil); s != (Stats{}) {
		t.Fatalf("empty series: %+v", s)
	}

	s := Calculate([]float64{812})
	if s.HasVariability {
		t.Fatal("single interval must not report variability")
	}
	if s.Mean != 812 || s.Latest != 812 || s.Min != 812 || s.Max != 812 {
		t.Fatalf("single interval summary: %+v", s)
	}
	for name, fn := range map[string]func([]float64) (float64, bool){
		"sdnn": SDNN, "rmssd": RMSSD, "pnn50": PNN50,
	} {
		if v, ok := fn([]float64{812}); ok || v != 0 {
			t.Fatalf("%s on one interval = %v, %v", name, v, ok)
		}
	}
}

func TestSDNNConstantSeries(t *testing.T) {
	got, ok := SDNN([]float64{1000, 1000, 1000, 1000})
	if !ok || got != 0 {
		t.Fatalf("SDNN = %v, %v, want 0, true", got, ok)
	}
	rmssd, _ := RMSSD([]float64{1000, 1000, 1000})
	if rmssd != 0 {
		t.Fatalf("RMSSD = %v, want 0", rmssd)
	}
}

func TestSDNNLargeOffsetIsStable(t *testing.T) {
	rr := []float64{1e9 + 800, 1e9 + 810, 1e9 + 790, 1e9 + 805}
	got, _ := SDNN(rr)
	if math.Abs(got-math.Sqrt(218.75/3)) > 1e-6 {
		t.Fatalf("SDNN with offset = %v", got)
	}
}
