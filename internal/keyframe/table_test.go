package keyframe

import (
	"bytes"
	"strings"
	"testing"

	"wackywebm/internal/logging"
)

func TestInterpolateLinearMidpoint(t *testing.T) {
	table := NewTable([]Record{
		{Time: 0, Width: 640, Height: 360, Mode: Linear},
		{Time: 90, Width: 320, Height: 180, Mode: Linear},
	}, nil)

	w, h := table.Interpolate(45)
	if w != 480 || h != 270 {
		t.Fatalf("Interpolate(45) = %dx%d, want 480x270", w, h)
	}
	w, h = table.Interpolate(90)
	if w != 320 || h != 180 {
		t.Fatalf("Interpolate(90) = %dx%d, want 320x180", w, h)
	}
	w, h = table.Interpolate(500)
	if w != 320 || h != 180 {
		t.Fatalf("Interpolate past end = %dx%d, want 320x180", w, h)
	}
}

func TestInterpolateInstantSteps(t *testing.T) {
	table := NewTable([]Record{
		{Time: 0, Width: 100, Height: 100, Mode: Instant},
		{Time: 10, Width: 50, Height: 40, Mode: Linear},
	}, nil)

	for frame := 0; frame < 10; frame++ {
		if w, h := table.Interpolate(frame); w != 100 || h != 100 {
			t.Fatalf("Interpolate(%d) = %dx%d, want 100x100", frame, w, h)
		}
	}
	if w, h := table.Interpolate(10); w != 50 || h != 40 {
		t.Fatalf("Interpolate(10) = %dx%d, want 50x40", w, h)
	}
}

func TestInterpolateCursorNeverRegresses(t *testing.T) {
	table := NewTable([]Record{
		{Time: 0, Width: 100, Height: 100, Mode: Linear},
		{Time: 10, Width: 200, Height: 200, Mode: Linear},
		{Time: 20, Width: 300, Height: 300, Mode: Linear},
	}, nil)

	table.Interpolate(15)
	if table.cursor != 1 {
		t.Fatalf("cursor = %d, want 1", table.cursor)
	}
	// Asking for an earlier frame keeps the cursor and clamps t at zero.
	if w, _ := table.Interpolate(2); w != 200 {
		t.Fatalf("Interpolate(2) after 15 = %d, want 200", w)
	}
	if table.cursor != 1 {
		t.Fatalf("cursor regressed to %d", table.cursor)
	}
}

func TestInterpolateWarnsOnExcessKeyframes(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Level: "info", Writer: &buf})
	if err != nil {
		t.Fatalf("logging.New: %v", err)
	}
	table := NewTable([]Record{
		{Time: 0, Width: 100, Height: 100, Mode: Linear},
		{Time: 5, Width: 200, Height: 200, Mode: Linear},
		{Time: 5, Width: 300, Height: 300, Mode: Linear},
		{Time: 20, Width: 400, Height: 400, Mode: Linear},
	}, logger)

	if w, _ := table.Interpolate(5); w != 300 {
		t.Fatalf("Interpolate(5) = %d, want 300", w)
	}
	if strings.Count(buf.String(), "keyframe skipped") != 1 {
		t.Fatalf("expected one excess keyframe warning, got %q", buf.String())
	}
}
