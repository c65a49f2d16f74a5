package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"wackywebm/internal/config"
	"wackywebm/internal/services"
)

func TestDefaultConfigIsValid(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, _, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Fatal("expected no config file to exist")
	}
	if cfg.Encoding.CRF != 10 || cfg.Encoding.Codec != "vp8" {
		t.Fatalf("unexpected encoder defaults: %+v", cfg.Encoding)
	}
	if cfg.Modes.Tempo != 2 || cfg.Modes.Angle != 360 {
		t.Fatalf("unexpected mode defaults: %+v", cfg.Modes)
	}
	if !filepath.IsAbs(cfg.Paths.StateDir) {
		t.Fatalf("expected absolute state dir, got %q", cfg.Paths.StateDir)
	}
}

func TestLoadCustomConfigExpandsPaths(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[paths]
scratch_dir = "~/scratch"
state_dir = "~/state"

[encoding]
threads = 4
compression = 12
smoothing = 3
codec = "VP9"

[logging]
format = "JSON"
level = "Debug"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("expected resolved path %q, got %q (exists=%v)", path, resolved, exists)
	}
	if cfg.Paths.ScratchDir != filepath.Join(home, "scratch") {
		t.Fatalf("scratch dir = %q", cfg.Paths.ScratchDir)
	}
	if cfg.Paths.StateDir != filepath.Join(home, "state") {
		t.Fatalf("state dir = %q", cfg.Paths.StateDir)
	}
	if cfg.WorkerCount() != 4 || cfg.Encoding.Compression != 12 || cfg.Encoding.Smoothing != 3 {
		t.Fatalf("unexpected encoding values: %+v", cfg.Encoding)
	}
	if cfg.Encoding.Codec != "vp9" || cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("expected normalized casing, got codec=%q format=%q level=%q", cfg.Encoding.Codec, cfg.Logging.Format, cfg.Logging.Level)
	}
	if cfg.HistoryPath() != filepath.Join(home, "state", "history.db") {
		t.Fatalf("history path = %q", cfg.HistoryPath())
	}
}

func TestLoadMissingExplicitConfigFails(t *testing.T) {
	_, _, _, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err == nil || !strings.Contains(err.Error(), "does not exist") {
		t.Fatalf("expected missing file error, got %v", err)
	}
}

func TestToolEnvironmentOverrides(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("WACKYWEBM_FFMPEG", "/opt/ffmpeg/bin/ffmpeg")
	t.Setenv("WACKYWEBM_FFPROBE", "  ")

	cfg, _, _, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Tools.FFmpeg != "/opt/ffmpeg/bin/ffmpeg" {
		t.Fatalf("ffmpeg = %q", cfg.Tools.FFmpeg)
	}
	if cfg.Tools.FFprobe != "ffprobe" {
		t.Fatalf("blank env should not override ffprobe, got %q", cfg.Tools.FFprobe)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{"negative threads", func(c *config.Config) { c.Encoding.Threads = -1 }, "encoding.threads"},
		{"negative bitrate", func(c *config.Config) { c.Encoding.Bitrate = -5 }, "encoding.bitrate"},
		{"crf out of range", func(c *config.Config) { c.Encoding.CRF = 90 }, "encoding.crf"},
		{"unknown codec", func(c *config.Config) { c.Encoding.Codec = "av1" }, "encoding.codec"},
		{"fallback above max", func(c *config.Config) { c.Encoding.FallbackBitrate = 2_000_000 }, "fallback_bitrate"},
		{"zero tempo", func(c *config.Config) { c.Modes.Tempo = 0 }, "modes.tempo"},
		{"bad log format", func(c *config.Config) { c.Logging.Format = "xml" }, "logging.format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error mentioning %q, got %v", tt.want, err)
			}
			if !errors.Is(err, services.ErrConfiguration) {
				t.Fatalf("expected ErrConfiguration, got %v", err)
			}
		})
	}
}

func TestResolveBitrate(t *testing.T) {
	cfg := config.Default()
	tests := []struct {
		source int64
		want   int64
	}{
		{0, 500_000},
		{300_000, 300_000},
		{4_000_000, 1_000_000},
	}
	for _, tt := range tests {
		if got := cfg.ResolveBitrate(tt.source); got != tt.want {
			t.Fatalf("ResolveBitrate(%d) = %d, want %d", tt.source, got, tt.want)
		}
	}

	cfg.Encoding.Bitrate = 2_500_000
	if got := cfg.ResolveBitrate(100); got != 2_500_000 {
		t.Fatalf("explicit bitrate should win, got %d", got)
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample returned error: %v", err)
	}
	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("sample config should load: %v", err)
	}
	if !exists || cfg.Encoding.MaxBitrate != 1_000_000 {
		t.Fatalf("unexpected sample values: exists=%v encoding=%+v", exists, cfg.Encoding)
	}
}
