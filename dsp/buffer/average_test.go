package buffer

import (
	"math"
	"testing"
)

func TestMovingAverage(t *testing.T) {
	m, err := NewMovingAverage(3)
	if err != nil {
		t.Fatal(err)
	}
	if m.Mean() != 0 {
		t.Fatal("empty mean must be 0")
	}

	steps := []struct {
		in, want float64
	}{
		{3, 3},
		{6, 4.5},
		{9, 6},
		{12, 9},
		{0, 7},
	}
	for i, s := range steps {
		if got := m.Add(s.in); math.Abs(got-s.want) > 1e-12 {
			t.Fatalf("step %d: mean = %v, want %v", i, got, s.want)
		}
	}
	if m.Sum() != 21 {
		t.Fatalf("Sum = %v, want 21", m.Sum())
	}
	if m.Len() != 3 || m.Size() != 3 {
		t.Fatalf("Len = %d Size = %d", m.Len(), m.Size())
	}

	m.Reset()
	if m.Len() != 0 || m.Mean() != 0 {
		t.Fatal("Reset must empty the average")
	}
	if got := m.Add(1); got != 1 {
		t.Fatalf("first mean after reset = %v, want 1", got)
	}
}

func TestMovingAverageLongRunStaysExact(t *testing.T) {
	m, _ := NewMovingAverage(10)
	for i := 0; i < 100000; i++ {
		m.Add(1e6 + 0.1*float64(i%7))
	}
	var want float64
	for i := 100000 - 10; i < 100000; i++ {
		want += 1e6 + 0.1*float64(i%7)
	}
	want /= 10
	if math.Abs(m.Mean()-want) > 1e-6 {
		t.Fatalf("mean = %v, want %v", m.Mean(), want)
	}
}

func TestNewMovingAverageRejectsNonPositive(t *testing.T) {
	if _, err := NewMovingAverage(0); err == nil {
		t.Fatal("expected error")
	}
}
