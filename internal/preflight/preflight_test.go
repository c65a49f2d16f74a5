package preflight

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"wackywebm/internal/config"
	"wackywebm/internal/services"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if result.Detail == "" {
		t.Fatal("expected non-empty detail")
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckFreeSpace(t *testing.T) {
	dir := t.TempDir()
	if result := CheckFreeSpace("space", dir, 1); !result.Passed {
		t.Fatalf("expected 1 byte to fit, got: %s", result.Detail)
	}
	result := CheckFreeSpace("space", dir, math.MaxUint64)
	if result.Passed {
		t.Fatal("expected failure for impossible requirement")
	}
	if !strings.Contains(result.Detail, "needed") {
		t.Fatalf("unexpected detail %q", result.Detail)
	}
}

func TestEstimateFrameBytes(t *testing.T) {
	if got := EstimateFrameBytes(10, 10, 5, false); got != 1500 {
		t.Fatalf("opaque estimate = %d, want 1500", got)
	}
	if got := EstimateFrameBytes(10, 10, 5, true); got != 2000 {
		t.Fatalf("transparent estimate = %d, want 2000", got)
	}
	if got := EstimateFrameBytes(0, 10, 5, false); got != 0 {
		t.Fatalf("degenerate estimate = %d, want 0", got)
	}
}

func TestRunAll_NilConfig(t *testing.T) {
	if results := RunAll(nil, Request{}); results != nil {
		t.Fatal("expected nil results for nil config")
	}
}

func TestRunAll_ReportsMissingBinaries(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.ScratchDir = t.TempDir()
	cfg.Tools.FFmpeg = "clearly-not-present-ffmpeg"
	cfg.Tools.FFprobe = "clearly-not-present-ffprobe"

	results := RunAll(&cfg, Request{OutputDir: t.TempDir(), ScratchBytes: 1})
	if len(results) != 5 {
		t.Fatalf("expected 5 results, got %d: %#v", len(results), results)
	}
	for _, r := range results[:3] {
		if !r.Passed {
			t.Errorf("check %q failed: %s", r.Name, r.Detail)
		}
	}
	err := Failed(results)
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
	if !strings.Contains(err.Error(), "FFmpeg") || !strings.Contains(err.Error(), "FFprobe") {
		t.Fatalf("expected both binaries in error, got %v", err)
	}
}

func TestFailedNilWhenAllPass(t *testing.T) {
	if err := Failed([]Result{{Name: "a", Passed: true}}); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}
