// Package progress reports encode progress from a single consumer goroutine.
//
// Workers send one Event per finished segment on a channel; Consume drains the
// channel and forwards each event to a Reporter, so reporters never need
// locking.
package progress

import (
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"

	"wackywebm/internal/logging"
)

// Event reports one encoded segment.
type Event struct {
	Segment int
	Frames  int
}

// Totals summarizes everything Consume received.
type Totals struct {
	Segments int
	Frames   int
}

// Reporter renders progress. Calls come from a single goroutine.
type Reporter interface {
	Advance(ev Event, totals Totals)
	Finish(totals Totals)
}

// Consume forwards events to r until events is closed.
func Consume(events <-chan Event, r Reporter) Totals {
	var totals Totals
	for ev := range events {
		totals.Segments++
		totals.Frames += ev.Frames
		if r != nil {
			r.Advance(ev, totals)
		}
	}
	if r != nil {
		r.Finish(totals)
	}
	return totals
}

// NewReporter picks a progress bar when out is a terminal and sampled log
// lines otherwise.
func NewReporter(out io.Writer, totalFrames int, logger *slog.Logger) Reporter {
	if f, ok := out.(*os.File); ok && IsTerminal(f) {
		return NewBarReporter(out, totalFrames)
	}
	return NewLogReporter(logger, totalFrames)
}

// IsTerminal reports whether f is an interactive terminal.
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// BarReporter draws a frame-count progress bar.
type BarReporter struct {
	bar *progressbar.ProgressBar
}

func NewBarReporter(out io.Writer, totalFrames int) *BarReporter {
	bar := progressbar.NewOptions(totalFrames,
		progressbar.OptionSetWriter(out),
		progressbar.OptionSetDescription("Encoding"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerHead:    "█",
			SaucerPadding: "░",
			BarStart:      "▐",
			BarEnd:        "▌",
		}),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionOnCompletion(func() { _, _ = io.WriteString(out, "\n") }),
	)
	return &BarReporter{bar: bar}
}

func (b *BarReporter) Advance(ev Event, _ Totals) {
	_ = b.bar.Add(ev.Frames)
}

func (b *BarReporter) Finish(Totals) {
	_ = b.bar.Finish()
}

// LogReporter emits an INFO line each time progress crosses a 10% bucket.
type LogReporter struct {
	logger      *slog.Logger
	totalFrames int
	sampler     *logging.ProgressSampler
}

func NewLogReporter(logger *slog.Logger, totalFrames int) *LogReporter {
	return &LogReporter{
		logger:      logging.NewComponentLogger(logger, "progress"),
		totalFrames: totalFrames,
		sampler:     logging.NewProgressSampler(10),
	}
}

func (l *LogReporter) Advance(ev Event, totals Totals) {
	percent := -1.0
	if l.totalFrames > 0 {
		percent = float64(totals.Frames) / float64(l.totalFrames) * 100
	}
	if !l.sampler.ShouldLog(percent, "encode") {
		return
	}
	l.logger.Info("encode progress",
		logging.Int("frames_done", totals.Frames),
		logging.Int("frames_total", l.totalFrames),
		logging.Float64("percent", percent),
		logging.Int("segments_done", totals.Segments),
		logging.Segment(ev.Segment),
	)
}

func (l *LogReporter) Finish(totals Totals) {
	l.logger.Info("encode finished",
		logging.Int("segments", totals.Segments),
		logging.Frames(totals.Frames),
	)
}
