package exg

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-biosignal/dsp/core"
	"github.com/cwbudde/algo-biosignal/dsp/filter/biquad"
	"github.com/cwbudde/algo-biosignal/dsp/signal"
	"github.com/cwbudde/algo-biosignal/internal/testutil"
)

func newFilter(t *testing.T) *ChannelFilter {
	t.Helper()
	f, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return f
}

func TestNewRejectsOtherSampleRates(t *testing.T) {
	if _, err := New(core.WithSampleRate(250)); err == nil {
		t.Fatal("expected error for 250 Hz")
	}
	if _, err := NewBank(3, core.WithSampleRate(1000)); err == nil {
		t.Fatal("expected error for 1000 Hz bank")
	}
}

func TestNormalize(t *testing.T) {
	f := newFilter(t)
	tests := []struct {
		raw  uint16
		want float64
	}{
		{2048, 0},
		{0, -1},
		{4095, 2047.0 * 2 / 4096},
		{3072, 0.5},
	}
	for _, tt := range tests {
		if got := f.Normalize(tt.raw); math.Abs(got-tt.want) > 1e-12 {
			t.Fatalf("Normalize(%d) = %v, want %v", tt.raw, got, tt.want)
		}
	}

	f10, err := New(core.WithResolutionBits(10))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := f10.Normalize(512); got != 0 {
		t.Fatalf("10-bit Normalize(512) = %v, want 0", got)
	}
}

func TestCascadeDCGainIsUnity(t *testing.T) {
	bp := Bandpass45()
	if got := bp.DCGain(); math.Abs(got-1) > 1e-6 {
		t.Fatalf("bandpass DC gain = %v, want ~1", got)
	}
	notch := biquad.NewChain(Notch50())
	if got := notch.DCGain(); math.Abs(got-1) > 1e-5 {
		t.Fatalf("notch DC gain = %v, want ~1", got)
	}
	if !bp.Stable() {
		t.Fatal("bandpass must be stable")
	}
	for i, c := range Notch50() {
		if !c.Stable() {
			t.Fatalf("notch section %d must be stable", i)
		}
	}
}

func TestConstantInputSettles(t *testing.T) {
	f := newFilter(t)
	const raw = 3000
	bp := Bandpass45()
	want := f.Normalize(raw) * bp.DCGain() * biquad.NewChain(Notch50()).DCGain()

	var y float64
	for i := 0; i < 5000; i++ {
		y = f.Process(raw)
		if math.IsNaN(y) || math.IsInf(y, 0) {
			t.Fatalf("sample %d: non-finite output %v", i, y)
		}
		if math.Abs(y) > 10 {
			t.Fatalf("sample %d: output %v not bounded", i, y)
		}
	}
	if math.Abs(y-want) > 1e-9 {
		t.Fatalf("settled output = %v, want %v", y, want)
	}
}

func TestMainsRejection(t *testing.T) {
	f := newFilter(t)
	if got := f.MagnitudeDB(50); got > -40 {
		t.Fatalf("|H(50 Hz)| = %.2f dB, want < -40 dB", got)
	}
	if got := f.MagnitudeDB(10); math.Abs(got) > 0.5 {
		t.Fatalf("|H(10 Hz)| = %.2f dB, want ~0 dB", got)
	}
	if got := f.MagnitudeDB(200); got > -20 {
		t.Fatalf("|H(200 Hz)| = %.2f dB, want < -20 dB", got)
	}
}

func TestMainsRejectionInTime(t *testing.T) {
	f := newFilter(t)
	in := signal.Quantize(nil, testutil.DeterministicSine(50, DesignSampleRate, 0.5, 4000), 12)
	out := make([]float64, len(in))
	f.ProcessBlock(out, in)
	testutil.RequireFinite(t, out)

	inRMS := testutil.RMS(testutil.DeterministicSine(50, DesignSampleRate, 0.5, 1000))
	outRMS := testutil.RMS(out[3000:])
	if outRMS > 0.01*inRMS {
		t.Fatalf("residual 50 Hz RMS %v, input RMS %v", outRMS, inRMS)
	}
}

func TestPassbandInTime(t *testing.T) {
	f := newFilter(t)
	in := signal.Quantize(nil, testutil.DeterministicSine(10, DesignSampleRate, 0.5, 4000), 12)
	out := make([]float64, len(in))
	f.ProcessBlock(out, in)

	outRMS := testutil.RMS(out[2000:])
	want := 0.5 / math.Sqrt2
	if math.Abs(outRMS-want) > 0.02*want {
		t.Fatalf("10 Hz RMS = %v, want ~%v", outRMS, want)
	}
}

func TestResetZeroesState(t *testing.T) {
	f := newFilter(t)
	for i := 0; i < 100; i++ {
		f.Process(uint16(1000 + 20*i))
	}
	if f.State() == ([3][2]float64{}) {
		t.Fatal("state should be non-zero after processing")
	}
	f.Reset()
	if f.State() != ([3][2]float64{}) {
		t.Fatalf("state after Reset = %v, want zeros", f.State())
	}

	fresh := newFilter(t)
	for i := 0; i < 50; i++ {
		raw := uint16(2048 + 500*math.Sin(float64(i)))
		if a, b := f.Process(raw), fresh.Process(raw); a != b {
			t.Fatalf("sample %d: reset filter %v != fresh filter %v", i, a, b)
		}
	}
}

func TestBankChannelsAreIndependent(t *testing.T) {
	bank, err := NewBank(3)
	if err != nil {
		t.Fatalf("NewBank: %v", err)
	}
	if bank.Channels() != 3 {
		t.Fatalf("Channels = %d, want 3", bank.Channels())
	}

	single := newFilter(t)
	dst := make([]float64, 3)
	for i := 0; i < 200; i++ {
		raw := uint16(2048 + 800*math.Sin(0.1*float64(i)))
		bank.Process(dst, []uint16{raw, 2048, 4000})
		want := single.Process(raw)
		if dst[0] != want {
			t.Fatalf("sample %d: channel 0 = %v, want %v", i, dst[0], want)
		}
		if dst[1] != 0 {
			t.Fatalf("sample %d: mid-scale channel = %v, want 0", i, dst[1])
		}
	}

	bank.Reset()
	for i := 0; i < bank.Channels(); i++ {
		if bank.Channel(i).State() != ([3][2]float64{}) {
			t.Fatalf("channel %d not reset", i)
		}
	}
}

func TestProcessBlockMatchesProcess(t *testing.T) {
	in := signal.Quantize(nil, testutil.DeterministicNoise(7, 0.8, 600), 12)

	ref := newFilter(t)
	want := make([]float64, len(in))
	for i, r := range in {
		want[i] = ref.Process(r)
	}

	f := newFilter(t)
	got := make([]float64, len(in))
	f.ProcessBlock(got[:200], in[:200])
	f.ProcessBlock(got[200:], in[200:])

	testutil.RequireSliceNearlyEqual(t, got, want, 1e-12)
	if f.State() != ref.State() {
		t.Fatalf("state diverged: %v vs %v", f.State(), ref.State())
	}
}

func TestCoefficientsUsableAsValues(t *testing.T) {
	if !Bandpass45().Stable() {
		t.Fatal("band-limiting section unstable")
	}
	if got := Bandpass45().DCGain(); math.Abs(got-1) > 1e-6 {
		t.Fatalf("band-limiting DC gain = %v, want 1", got)
	}
	if got := Notch50()[0].MagnitudeDB(50, DesignSampleRate); got > -20 {
		t.Fatalf("first notch section at 50 Hz = %.2f dB", got)
	}
}
