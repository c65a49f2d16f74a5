package audiolevel

import (
	"errors"
	"math"
	"testing"

	"wackywebm/internal/services"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestNormalizeMapsMaxAndAverage(t *testing.T) {
	// average = -20, max = -10, deviation = 5
	levels := []float64{-30, -20, -10, -20}
	samples, err := Normalize(levels)
	if err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}
	if len(samples) != len(levels) {
		t.Fatalf("got %d samples, want %d", len(samples), len(levels))
	}
	if !approx(samples[2].Percent, 1) {
		t.Fatalf("max sample percent = %v, want 1", samples[2].Percent)
	}
	if !approx(samples[1].Percent, 0.5) {
		t.Fatalf("average sample percent = %v, want 0.5", samples[1].Percent)
	}
	if !approx(samples[0].Percent, 0) {
		t.Fatalf("quiet sample percent = %v, want 0", samples[0].Percent)
	}
	for i, s := range samples {
		if s.Index != i || s.Decibels != levels[i] {
			t.Fatalf("sample %d = %+v", i, s)
		}
		if s.Percent < 0 || s.Percent > 1 {
			t.Fatalf("sample %d percent %v out of range", i, s.Percent)
		}
	}
}

func TestNormalizeTreatsSilenceAsZeroForSum(t *testing.T) {
	// sum ignores -Inf: (-10 + -30) / 3
	levels := []float64{math.Inf(-1), -10, -30}
	samples, err := Normalize(levels)
	if err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}
	if !approx(samples[0].Percent, 0) {
		t.Fatalf("silent sample percent = %v, want 0", samples[0].Percent)
	}
	if !approx(samples[1].Percent, 1) {
		t.Fatalf("loudest sample percent = %v, want 1", samples[1].Percent)
	}
}

func TestNormalizeRejectsSilence(t *testing.T) {
	for _, levels := range [][]float64{nil, {math.Inf(-1), math.Inf(-1)}} {
		if _, err := Normalize(levels); !errors.Is(err, services.ErrNoAudioSignal) {
			t.Fatalf("Normalize(%v) error = %v, want ErrNoAudioSignal", levels, err)
		}
	}
}

func TestNormalizeConstantSignal(t *testing.T) {
	samples, err := Normalize([]float64{-12, -12, -12})
	if err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}
	for _, s := range samples {
		if s.Percent != 1 {
			t.Fatalf("constant signal percent = %v, want 1", s.Percent)
		}
	}
}

func TestAtMapsFrameRange(t *testing.T) {
	samples := []Sample{{Percent: 0}, {Percent: 0.25}, {Percent: 0.5}, {Percent: 1}}
	tests := []struct {
		n, total int
		want     float64
	}{
		{0, 10, 0},
		{9, 10, 1},
		{5, 10, 0.25},
		{20, 10, 1},
	}
	for _, tt := range tests {
		if got := At(samples, tt.n, tt.total); got != tt.want {
			t.Errorf("At(n=%d, total=%d) = %v, want %v", tt.n, tt.total, got, tt.want)
		}
	}
	if got := At(nil, 3, 10); got != 0 {
		t.Fatalf("At on empty samples = %v, want 0", got)
	}
}
