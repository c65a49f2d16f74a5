package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"wackywebm/internal/logging"
	"wackywebm/internal/media"
	"wackywebm/internal/progress"
	"wackywebm/internal/rational"
	"wackywebm/internal/services"
	"wackywebm/internal/strategy"
)

// Encoder renders one segment.
type Encoder interface {
	EncodeSegment(ctx context.Context, job media.EncodeJob) error
}

// Scheduler plans and encodes the segments of one run.
type Scheduler struct {
	Params     strategy.BaseParameters
	FrameRate  string
	Strategies []strategy.Strategy
	// Compression is the width+height change tolerated inside one segment.
	Compression int
	// Smoothing is the moving-average window in frames; 0 disables it.
	Smoothing  int
	Threads    int
	Bitrate    int64
	FrameDir   string
	SegmentDir string
	Encoder    Encoder
	// Progress receives one event per encoded segment. It must be drained
	// until Run returns.
	Progress chan<- progress.Event
	Logger   *slog.Logger
	// Dry plans segments without encoding them.
	Dry bool
}

type frameSize struct {
	width  int
	height int
	filter []string
}

func (f frameSize) distance(other frameSize) int {
	return abs(f.width-other.width) + abs(f.height-other.height)
}

// Run walks every frame, queues segment encodes, and waits for them. The
// first encode failure cancels the remaining work and is returned.
func (s *Scheduler) Run(ctx context.Context) (Plan, error) {
	if err := s.validate(); err != nil {
		return Plan{}, err
	}
	ctx = services.WithStage(ctx, "encode")
	logger := logging.WithContext(ctx, logging.NewComponentLogger(s.Logger, "scheduler"))

	ctx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	threads := max(1, s.Threads)
	jobs := make(chan Segment, s.Params.TotalFrames)

	var (
		wg       sync.WaitGroup
		failOnce sync.Once
		failure  error
	)
	fail := func(err error) {
		failOnce.Do(func() {
			failure = err
			cancel(err)
		})
	}

	if !s.Dry {
		for range threads {
			wg.Go(func() { s.work(ctx, jobs, fail, logger) })
		}
	}

	plan, err := s.plan(ctx, threads, func(seg Segment) {
		logger.Debug("segment queued",
			logging.Segment(seg.Index),
			logging.Int("start_frame", seg.StartFrame),
			logging.Frames(seg.FrameCount),
			logging.Size(seg.Width, seg.Height),
		)
		if !s.Dry {
			jobs <- seg
		}
	})
	close(jobs)
	wg.Wait()

	if failure != nil {
		return Plan{}, failure
	}
	if err != nil {
		return Plan{}, err
	}
	if err := context.Cause(ctx); err != nil {
		return Plan{}, err
	}
	logger.Info("segments planned",
		logging.Int("segments", len(plan.Segments)),
		logging.Frames(plan.Frames()),
		logging.Bool("dry_run", s.Dry),
	)
	return plan, nil
}

func (s *Scheduler) validate() error {
	p := s.Params
	switch {
	case p.TotalFrames <= 0:
		return services.Wrap(services.ErrValidation, "encode", "plan", "video has no frames", nil)
	case p.Width <= 0 || p.Height <= 0:
		return services.Wrap(services.ErrValidation, "encode", "plan", fmt.Sprintf("invalid source size %dx%d", p.Width, p.Height), nil)
	case s.Compression < 0 || s.Smoothing < 0:
		return services.Wrap(services.ErrValidation, "encode", "plan", "compression and smoothing must not be negative", nil)
	case !s.Dry && s.Encoder == nil:
		return services.Wrap(services.ErrConfiguration, "encode", "plan", "no segment encoder configured", nil)
	}
	return nil
}

// plan is the producer loop. submit is called once per finalized segment in
// frame order.
func (s *Scheduler) plan(ctx context.Context, threads int, submit func(Segment)) (Plan, error) {
	p := s.Params
	total := p.TotalFrames
	delta := max(1, rational.MinSafeMargin(p.Width, p.Height))
	smooth := newSmoother(s.Smoothing, p.Width, p.Height)
	segmentCap := float64(total) / float64(threads)

	var (
		result Plan
		anchor frameSize
		start  int
	)
	emit := func(first, count int, size frameSize, jobThreadCount int) {
		seg := Segment{
			Index:      len(result.Segments),
			StartFrame: first,
			FrameCount: count,
			OutputPath: segmentPath(s.SegmentDir, len(result.Segments)),
			Width:      size.width,
			Height:     size.height,
			Filter:     size.filter,
			Threads:    jobThreadCount,
		}
		result.Segments = append(result.Segments, seg)
		result.Paths = append(result.Paths, seg.OutputPath)
		submit(seg)
	}

	for i := range total {
		if err := context.Cause(ctx); err != nil {
			return Plan{}, err
		}

		fc := p.Extend(i, media.FramePath(s.FrameDir, i))
		bounds := strategy.Compose(strategy.Size(p.Width, p.Height), s.Strategies, fc)
		w, h := bounds.Dimensions(p.Width, p.Height)
		w = clamp(w, delta, p.Width)
		h = clamp(h, delta, p.Height)
		w, h = smooth.apply(w, h)
		current := frameSize{width: w, height: h, filter: bounds.Filter}

		if i == 0 {
			anchor = current
		} else if count := i - start; current.distance(anchor) > s.Compression || float64(count) > segmentCap {
			emit(start, count, anchor, jobThreads(threads, count))
			start = i
			anchor = current
		}

		if i == total-1 {
			emit(start, i-start+1, current, 1)
		}
	}
	return result, nil
}

func (s *Scheduler) work(ctx context.Context, jobs <-chan Segment, fail func(error), logger *slog.Logger) {
	for seg := range jobs {
		if ctx.Err() != nil {
			continue
		}
		segCtx := services.WithSegment(ctx, seg.Index)
		if err := s.Encoder.EncodeSegment(segCtx, s.job(seg)); err != nil {
			if ctx.Err() == nil {
				logging.ErrorWithContext(logger, "segment encode failed", "segment_encode_failed",
					logging.Segment(seg.Index),
					logging.Error(err),
				)
			}
			fail(asEncodeError(seg.Index, err))
			continue
		}
		if s.Progress == nil {
			continue
		}
		select {
		case s.Progress <- progress.Event{Segment: seg.Index, Frames: seg.FrameCount}:
		case <-ctx.Done():
		}
	}
}

func asEncodeError(index int, err error) error {
	var encErr *services.EncodeError
	if errors.As(err, &encErr) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return &services.EncodeError{
		Segment:   index,
		ToolError: services.ToolError{Kind: services.ErrEncode, Tool: "encoder", Err: err},
	}
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
