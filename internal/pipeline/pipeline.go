package pipeline

import (
	"context"
	"io"
	"log/slog"

	"wackywebm/internal/config"
	"wackywebm/internal/history"
	"wackywebm/internal/logging"
	"wackywebm/internal/media"
	"wackywebm/internal/scheduler"
	"wackywebm/internal/strategy"
)

// Media is the ffmpeg surface a run drives.
type Media interface {
	strategy.LevelSource
	scheduler.Encoder
	Probe(ctx context.Context, path string) (media.VideoMetadata, error)
	ExtractFrames(ctx context.Context, path, dir string, transparent bool, threads int) error
	SplitAudio(ctx context.Context, path, out string) (bool, error)
	Concat(ctx context.Context, manifest, audio, output string) error
}

// Recorder persists run outcomes. *history.Store satisfies it.
type Recorder interface {
	Begin(ctx context.Context, run history.Run) error
	Finish(ctx context.Context, id string, segments int, frames int64, runErr error) error
}

// Runner executes conversion runs against one configuration.
type Runner struct {
	cfg      *config.Config
	media    Media
	history  Recorder
	logger   *slog.Logger
	progress io.Writer
}

// Option customizes a Runner.
type Option func(*Runner)

// WithHistory records every executed run.
func WithHistory(rec Recorder) Option {
	return func(r *Runner) {
		r.history = rec
	}
}

// WithLogger sets the runner logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithProgressOutput renders a progress bar on w when it is a terminal.
// Otherwise progress is logged.
func WithProgressOutput(w io.Writer) Option {
	return func(r *Runner) {
		r.progress = w
	}
}

// New constructs a Runner.
func New(cfg *config.Config, m Media, opts ...Option) *Runner {
	r := &Runner{
		cfg:    cfg,
		media:  m,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = logging.NewComponentLogger(r.logger, "pipeline")
	return r
}
