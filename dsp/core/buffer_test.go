package core

import "testing"

func TestEnsureLen(t *testing.T) {
	buf := make([]float64, 2, 8)

	got := EnsureLen(buf, 6)
	if len(got) != 6 || &got[0] != &buf[0] {
		t.Fatalf("EnsureLen(cap 8, 6) reallocated or has len %d", len(got))
	}

	got = EnsureLen(buf, 9)
	if len(got) != 9 || &got[0] == &buf[0] {
		t.Fatalf("EnsureLen(cap 8, 9) must allocate, got len %d", len(got))
	}

	if got := EnsureLen(nil, 0); len(got) != 0 {
		t.Fatalf("EnsureLen(nil, 0) len = %d", len(got))
	}
	if got := EnsureLen(buf, -3); len(got) != 0 {
		t.Fatalf("EnsureLen(buf, -3) len = %d", len(got))
	}
}

func TestZero(t *testing.T) {
	buf := []float64{1, -2, 3}
	Zero(buf)
	for i, v := range buf {
		if v != 0 {
			t.Fatalf("buf[%d] = %v after Zero", i, v)
		}
	}
}
