package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"wackywebm/internal/history"
	"wackywebm/internal/logging"
	"wackywebm/internal/preflight"
	"wackywebm/internal/progress"
	"wackywebm/internal/scheduler"
	"wackywebm/internal/services"
	"wackywebm/internal/workspace"
)

// staleScratchAge is how old an abandoned run workspace must be before a new
// run deletes it.
const staleScratchAge = 24 * time.Hour

// Result describes a finished run.
type Result struct {
	RunID      string
	Output     string
	Segments   int
	Frames     int
	Audio      bool
	OutputSize int64
	Elapsed    time.Duration
}

// Plan runs the scheduler without extracting or encoding anything and
// returns the segments a real run would produce.
func (r *Runner) Plan(ctx context.Context, job *Job) (scheduler.Plan, error) {
	ctx = services.WithStage(services.WithRunID(ctx, job.RunID), "plan")
	sched := r.scheduler(job, "", "")
	sched.Dry = true
	return sched.Run(ctx)
}

// Execute performs a prepared job.
func (r *Runner) Execute(ctx context.Context, job *Job) (result Result, err error) {
	started := time.Now()
	ctx = services.WithRunID(ctx, job.RunID)
	logger := logging.WithContext(ctx, r.logger)
	result = Result{RunID: job.RunID, Output: job.Output}

	if err := r.cfg.EnsureDirectories(); err != nil {
		return result, err
	}
	outputDir := filepath.Dir(job.Output)
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return result, fmt.Errorf("create output directory: %w", err)
	}

	lock, err := workspace.LockOutput(job.Output)
	if err != nil {
		return result, err
	}
	defer func() {
		if releaseErr := lock.Release(); releaseErr != nil {
			logger.Warn("failed to release output lock", logging.Error(releaseErr))
		}
	}()

	if r.history != nil {
		if beginErr := r.history.Begin(context.WithoutCancel(ctx), history.Run{
			ID:        job.RunID,
			Source:    job.Input,
			Output:    job.Output,
			Modes:     job.Modes(),
			StartedAt: started,
		}); beginErr != nil {
			logging.WarnWithContext(logger, "failed to record run start", "history_unavailable",
				logging.Error(beginErr),
				logging.String(logging.FieldImpact, "run will not appear in history"),
			)
		} else {
			defer func() {
				finishCtx := context.WithoutCancel(ctx)
				if finishErr := r.history.Finish(finishCtx, job.RunID, result.Segments, int64(result.Frames), err); finishErr != nil {
					logger.Warn("failed to record run outcome", logging.Error(finishErr))
				}
			}()
		}
	}

	checks := preflight.RunAll(r.cfg, preflight.Request{
		OutputDir:    outputDir,
		ScratchBytes: preflight.EstimateFrameBytes(job.Params.Width, job.Params.Height, int64(job.Params.TotalFrames), job.Params.Transparent),
	})
	for _, check := range checks {
		logger.Debug("preflight check",
			logging.String("check", check.Name),
			logging.Bool("passed", check.Passed),
			logging.String("detail", check.Detail),
		)
	}
	if err := preflight.Failed(checks); err != nil {
		return result, err
	}

	cleaned := workspace.CleanStale(r.cfg.Paths.ScratchDir, staleScratchAge, logger)
	if len(cleaned.Removed) > 0 {
		logger.Info("cleaned stale scratch", logging.Int("removed", len(cleaned.Removed)))
	}

	ws, err := workspace.Create(r.cfg.Paths.ScratchDir, job.RunID)
	if err != nil {
		return result, err
	}
	defer func() {
		if removeErr := ws.Remove(); removeErr != nil {
			logging.WarnWithContext(logger, "failed to remove scratch workspace", "scratch_cleanup_failed",
				logging.String("path", ws.Root),
				logging.Error(removeErr),
				logging.String(logging.FieldImpact, "disk space not reclaimed until the next run"),
			)
		}
	}()

	audioCtx := services.WithStage(ctx, "audio")
	hasAudio, err := r.media.SplitAudio(audioCtx, job.Input, ws.AudioPath)
	if err != nil {
		return result, err
	}
	result.Audio = hasAudio

	extractCtx := services.WithStage(ctx, "extract")
	logging.WithContext(extractCtx, r.logger).Info("extracting frames",
		logging.Frames(job.Params.TotalFrames),
		logging.String("dir", ws.FrameDir),
	)
	if err := r.media.ExtractFrames(extractCtx, job.Input, ws.FrameDir, job.Params.Transparent, r.cfg.WorkerCount()); err != nil {
		return result, err
	}
	extracted, err := countFrames(ws.FrameDir)
	if err != nil {
		return result, err
	}
	if extracted == 0 {
		return result, services.Wrap(services.ErrExternalTool, "extract", "frames", "ffmpeg produced no frames", nil)
	}
	if extracted != job.Params.TotalFrames {
		logging.WarnWithContext(logger, "extracted frame count differs from probe", "frame_count_mismatch",
			logging.Int("probed", job.Params.TotalFrames),
			logging.Int("extracted", extracted),
			logging.String(logging.FieldImpact, "encoding the extracted frames"),
		)
		job.Params.TotalFrames = extracted
	}

	plan, err := r.encode(ctx, job, ws)
	if err != nil {
		return result, err
	}
	result.Segments = len(plan.Segments)
	result.Frames = plan.Frames()

	concatCtx := services.WithStage(ctx, "concat")
	if err := ws.WriteManifest(plan.Paths); err != nil {
		return result, err
	}
	audio := ""
	if hasAudio {
		audio = ws.AudioPath
	}
	if err := r.media.Concat(concatCtx, ws.ManifestPath, audio, job.Output); err != nil {
		if removeErr := os.Remove(job.Output); removeErr != nil && !errors.Is(removeErr, os.ErrNotExist) {
			logger.Warn("failed to remove partial output", logging.Error(removeErr))
		}
		return result, err
	}

	if info, statErr := os.Stat(job.Output); statErr == nil {
		result.OutputSize = info.Size()
	}
	result.Elapsed = time.Since(started)
	logger.Info("run complete",
		logging.String("output", job.Output),
		logging.Int("segments", result.Segments),
		logging.Frames(result.Frames),
		logging.Bool("audio", hasAudio),
		logging.Duration("elapsed", result.Elapsed),
		logging.String(logging.FieldEventType, "run_complete"),
	)
	return result, nil
}

// encode runs the scheduler with a single progress consumer.
func (r *Runner) encode(ctx context.Context, job *Job, ws *workspace.Workspace) (scheduler.Plan, error) {
	sched := r.scheduler(job, ws.FrameDir, ws.SegmentDir)
	events := make(chan progress.Event, sched.Threads)
	sched.Progress = events

	reporter := progress.NewReporter(r.progress, job.Params.TotalFrames, logging.WithContext(ctx, r.logger))
	done := make(chan progress.Totals, 1)
	go func() {
		done <- progress.Consume(events, reporter)
	}()

	plan, err := sched.Run(ctx)
	close(events)
	<-done
	return plan, err
}

func (r *Runner) scheduler(job *Job, frameDir, segmentDir string) *scheduler.Scheduler {
	return &scheduler.Scheduler{
		Params:      job.Params,
		FrameRate:   job.Metadata.FrameRate,
		Strategies:  job.Strategies,
		Compression: r.cfg.Encoding.Compression,
		Smoothing:   r.cfg.Encoding.Smoothing,
		Threads:     r.cfg.WorkerCount(),
		Bitrate:     job.Bitrate,
		FrameDir:    frameDir,
		SegmentDir:  segmentDir,
		Encoder:     r.media,
		Logger:      r.logger,
	}
}

func countFrames(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("read frame dir: %w", err)
	}
	n := 0
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".png") {
			n++
		}
	}
	return n, nil
}
