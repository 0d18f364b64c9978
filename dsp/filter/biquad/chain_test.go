package biquad

import (
	"math"
	"testing"
)

// twoSectionCoeffs returns two biquad sections for a 4th-order cascade.
func twoSectionCoeffs() []Coefficients {
	return []Coefficients{
		{B0: 0.25, B1: 0.5, B2: 0.25, A1: -0.2, A2: 0.04},
		{B0: 0.1, B1: 0.2, B2: 0.1, A1: -0.5, A2: 0.1},
	}
}

func TestChain_ProcessSample_MatchesManualCascade(t *testing.T) {
	coeffs := twoSectionCoeffs()
	section1 := NewSection(coeffs[0])
	section2 := NewSection(coeffs[1])
	chain := NewChain(coeffs)

	for i, x := range []float64{1, 0.5, -0.3, 0.7, 0, -1, 0.2, 0.8} {
		ref := section2.ProcessSample(section1.ProcessSample(x))
		if got := chain.ProcessSample(x); !almostEqual(got, ref, eps) {
			t.Errorf("sample %d: chain=%.15f, ref=%.15f", i, got, ref)
		}
	}
}

func TestChain_ProcessBlock_MatchesSample(t *testing.T) {
	input := []float64{1, 0.5, -0.3, 0.7, 0, -1, 0.2, 0.8}

	c1 := NewChain(twoSectionCoeffs())
	ref := make([]float64, len(input))
	for i, x := range input {
		ref[i] = c1.ProcessSample(x)
	}

	c2 := NewChain(twoSectionCoeffs())
	block := append([]float64(nil), input...)
	c2.ProcessBlock(block)

	for i := range block {
		if !almostEqual(block[i], ref[i], eps) {
			t.Errorf("sample %d: block=%.15f, sample=%.15f", i, block[i], ref[i])
		}
	}
}

func TestChain_Reset(t *testing.T) {
	c := NewChain(twoSectionCoeffs())
	c.ProcessSample(1)
	c.ProcessSample(-0.5)
	c.Reset()
	for i, st := range c.State() {
		if st != [2]float64{0, 0} {
			t.Fatalf("section %d not reset: %v", i, st)
		}
	}
}

func TestChain_StabilityLongRun(t *testing.T) {
	c := NewChain(twoSectionCoeffs())
	c.ProcessSample(1)
	var y float64
	for range 10000 {
		y = c.ProcessSample(0)
	}
	if math.Abs(y) > 1e-100 {
		t.Fatalf("cascade did not decay: %v", y)
	}
}

func BenchmarkChain_ProcessSample(b *testing.B) {
	c := NewChain(twoSectionCoeffs())
	x := 0.1
	for b.Loop() {
		x = c.ProcessSample(x)
	}
}
