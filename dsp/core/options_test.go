package core

import "testing"

func TestApplyProcessorOptions(t *testing.T) {
	cfg := ApplyProcessorOptions(WithSampleRate(250), WithResolutionBits(16))
	if cfg.SampleRate != 250 {
		t.Fatalf("sample rate = %v, want 250", cfg.SampleRate)
	}
	if cfg.ResolutionBits != 16 {
		t.Fatalf("resolution = %d, want 16", cfg.ResolutionBits)
	}
	if cfg.FullScale() != 65536 {
		t.Fatalf("full scale = %d, want 65536", cfg.FullScale())
	}
}

func TestInvalidOptionsIgnored(t *testing.T) {
	cfg := ApplyProcessorOptions(WithSampleRate(0), WithResolutionBits(24))
	def := DefaultProcessorConfig()
	if cfg != def {
		t.Fatalf("cfg = %#v, want %#v", cfg, def)
	}
	if def.FullScale() != 4096 {
		t.Fatalf("default full scale = %d, want 4096", def.FullScale())
	}
}
