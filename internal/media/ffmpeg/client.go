package ffmpeg

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"

	"wackywebm/internal/logging"
)

// Output holds what a command wrote.
type Output struct {
	Stdout []byte
	Stderr []byte
}

// Executor abstracts command execution for testability.
type Executor interface {
	Run(ctx context.Context, binary string, args []string) (Output, error)
}

// Option configures the client.
type Option func(*Client)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(c *Client) {
		if exec != nil {
			c.exec = exec
		}
	}
}

// WithLogger sets the logger used for command tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logging.NewComponentLogger(logger, "ffmpeg")
	}
}

// WithEncoder overrides the video codec and CRF used for segments.
func WithEncoder(codec string, crf int) Option {
	return func(c *Client) {
		if codec = strings.TrimSpace(codec); codec != "" {
			c.codec = codec
		}
		if crf > 0 {
			c.crf = crf
		}
	}
}

// Client wraps ffmpeg and ffprobe.
type Client struct {
	ffmpeg  string
	ffprobe string
	codec   string
	crf     int
	exec    Executor
	logger  *slog.Logger
}

// New constructs a client. Blank binaries fall back to the names on PATH.
func New(ffmpegBinary, ffprobeBinary string, opts ...Option) *Client {
	ffmpegBinary = strings.TrimSpace(ffmpegBinary)
	if ffmpegBinary == "" {
		ffmpegBinary = "ffmpeg"
	}
	ffprobeBinary = strings.TrimSpace(ffprobeBinary)
	if ffprobeBinary == "" {
		ffprobeBinary = "ffprobe"
	}
	c := &Client{
		ffmpeg:  ffmpegBinary,
		ffprobe: ffprobeBinary,
		codec:   "vp8",
		crf:     10,
		exec:    commandExecutor{},
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) run(ctx context.Context, binary string, args []string) (Output, error) {
	logging.WithContext(ctx, c.logger).Debug("running command",
		logging.String("binary", binary),
		logging.String("args", strings.Join(args, " ")),
	)
	return c.exec.Run(ctx, binary, args)
}

type commandExecutor struct{}

func (commandExecutor) Run(ctx context.Context, binary string, args []string) (Output, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, binary, args...) //nolint:gosec
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	out := Output{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return out, ctxErr
		}
		return out, fmt.Errorf("%s: %w", binary, err)
	}
	return out, nil
}
