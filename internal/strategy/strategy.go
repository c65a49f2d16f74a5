package strategy

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"wackywebm/internal/media"
	"wackywebm/internal/services"
)

// Strategy computes per-frame bounds.
type Strategy interface {
	Name() string
	// Setup runs once before the first frame. Failures abort the run before
	// any extraction or encode work.
	Setup(ctx context.Context, env SetupEnv) error
	FrameBounds(fc FrameContext) FrameBounds
}

// LevelSource extracts per-frame RMS loudness in decibels.
type LevelSource interface {
	ExtractLevels(ctx context.Context, path string) ([]float64, error)
}

// SetupEnv carries what strategies may need while preparing a run.
type SetupEnv struct {
	Metadata     media.VideoMetadata
	VideoPath    string
	KeyframeFile string
	Levels       LevelSource
	Logger       *slog.Logger
}

// Setting is a labelled value shown in the run summary.
type Setting struct {
	Label string
	Value string
}

// Summarizer is implemented by strategies with tunable settings.
type Summarizer interface {
	Summary(p BaseParameters, env SetupEnv) []Setting
}

var registry = map[string]func() Strategy{
	"bounce":       func() Strategy { return &Bounce{} },
	"shutter":      func() Strategy { return &Shutter{} },
	"rotate":       func() Strategy { return &Rotate{} },
	"shrink":       func() Strategy { return &Shrink{} },
	"sporadic":     func() Strategy { return &Sporadic{} },
	"audiobounce":  func() Strategy { return &AudioBounce{} },
	"audioshutter": func() Strategy { return &AudioShutter{} },
	"keyframes":    func() Strategy { return &Keyframes{} },
}

// Names lists the registered strategy names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// New builds a fresh strategy instance by name (case-insensitive).
func New(name string) (Strategy, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	factory, ok := registry[key]
	if !ok {
		return nil, services.Wrap(services.ErrValidation, "strategy", "select",
			fmt.Sprintf("unknown mode %q (available: %s)", name, strings.Join(Names(), ", ")), nil)
	}
	return factory(), nil
}

// Select parses a "+"-separated mode list such as "bounce+shutter".
func Select(modes string) ([]Strategy, error) {
	var out []Strategy
	for part := range strings.SplitSeq(modes, "+") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		s, err := New(part)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if len(out) == 0 {
		return nil, services.Wrap(services.ErrValidation, "strategy", "select", "no mode selected", nil)
	}
	return out, nil
}

// NamesOf returns the names of the given strategies in order.
func NamesOf(strategies []Strategy) []string {
	names := make([]string, len(strategies))
	for i, s := range strategies {
		names[i] = s.Name()
	}
	return names
}

// Setup prepares every strategy in order, stopping at the first failure.
func Setup(ctx context.Context, strategies []Strategy, env SetupEnv) error {
	for _, s := range strategies {
		if err := s.Setup(ctx, env); err != nil {
			return fmt.Errorf("%s setup: %w", s.Name(), err)
		}
	}
	return nil
}
