package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"wackywebm/internal/config"
	"wackywebm/internal/logging"
	"wackywebm/internal/media"
	"wackywebm/internal/services"
	"wackywebm/internal/strategy"
	"wackywebm/internal/textutil"
)

// Request describes a conversion.
type Request struct {
	Input string
	// Output defaults to <input dir>/<stem>_<modes>.webm.
	Output string
	// Modes is a "+"-separated mode list.
	Modes        string
	KeyframeFile string
}

// Job is a prepared run: probed, with strategies set up.
type Job struct {
	RunID      string
	Input      string
	Output     string
	Metadata   media.VideoMetadata
	Params     strategy.BaseParameters
	Strategies []strategy.Strategy
	Bitrate    int64
	Settings   []strategy.Setting
}

// Modes returns the selected mode names in order.
func (j *Job) Modes() []string {
	return strategy.NamesOf(j.Strategies)
}

// Prepare validates the request, probes the input, and sets up every selected
// strategy. Audio and keyframe problems surface here, before any file is
// written.
func (r *Runner) Prepare(ctx context.Context, req Request) (*Job, error) {
	runID := uuid.NewString()
	ctx = services.WithStage(services.WithRunID(ctx, runID), "prepare")
	logger := logging.WithContext(ctx, r.logger)

	strategies, err := strategy.Select(req.Modes)
	if err != nil {
		return nil, err
	}

	input, err := config.ExpandPath(strings.TrimSpace(req.Input))
	if err != nil {
		return nil, err
	}
	if input == "" {
		return nil, services.Wrap(services.ErrValidation, "prepare", "input", "input video is required", nil)
	}
	info, err := os.Stat(input)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, services.Wrap(services.ErrNotFound, "prepare", "input", fmt.Sprintf("input %s does not exist", input), nil)
		}
		return nil, fmt.Errorf("stat input: %w", err)
	}
	if info.IsDir() {
		return nil, services.Wrap(services.ErrValidation, "prepare", "input", fmt.Sprintf("input %s is a directory", input), nil)
	}

	output, err := resolveOutput(input, req.Output, strategy.NamesOf(strategies))
	if err != nil {
		return nil, err
	}

	meta, err := r.media.Probe(ctx, input)
	if err != nil {
		return nil, err
	}
	if err := meta.Validate(); err != nil {
		return nil, err
	}
	logger.Info("probed input",
		logging.String("input", input),
		logging.Size(meta.Width, meta.Height),
		logging.String("frame_rate", meta.FrameRate),
		logging.Frames(meta.TotalFrames),
		logging.Int64("bit_rate", meta.BitRate),
	)

	env := strategy.SetupEnv{
		Metadata:     meta,
		VideoPath:    input,
		KeyframeFile: strings.TrimSpace(req.KeyframeFile),
		Levels:       r.media,
		Logger:       r.logger,
	}
	if env.KeyframeFile != "" {
		if env.KeyframeFile, err = config.ExpandPath(env.KeyframeFile); err != nil {
			return nil, err
		}
	}
	if err := strategy.Setup(ctx, strategies, env); err != nil {
		return nil, err
	}

	params := strategy.BaseParameters{
		Width:       meta.Width,
		Height:      meta.Height,
		TotalFrames: meta.TotalFrames,
		FPS:         meta.FPS,
		Tempo:       r.cfg.Modes.Tempo,
		Angle:       r.cfg.Modes.Angle,
		Transparent: r.cfg.Modes.Transparent,
	}
	job := &Job{
		RunID:      runID,
		Input:      input,
		Output:     output,
		Metadata:   meta,
		Params:     params,
		Strategies: strategies,
		Bitrate:    r.cfg.ResolveBitrate(meta.BitRate),
	}
	job.Settings = r.summarize(job, env)
	return job, nil
}

// resolveOutput applies the default output naming and rejects writing over
// the input.
func resolveOutput(input, output string, modes []string) (string, error) {
	output = strings.TrimSpace(output)
	if output == "" {
		stem := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
		output = filepath.Join(filepath.Dir(input), fmt.Sprintf("%s_%s.webm", stem, strings.Join(modes, "_")))
	}
	resolved, err := config.ExpandPath(output)
	if err != nil {
		return "", err
	}
	if resolved == input {
		return "", services.Wrap(services.ErrValidation, "prepare", "output", "output would overwrite the input", nil)
	}
	return resolved, nil
}

func (r *Runner) summarize(job *Job, env strategy.SetupEnv) []strategy.Setting {
	settings := []strategy.Setting{
		{Label: "Modes", Value: textutil.TitleList(job.Modes(), ", ")},
		{Label: "Input", Value: job.Input},
		{Label: "Output", Value: job.Output},
		{Label: "Source", Value: fmt.Sprintf("%dx%d @ %s fps, %s frames",
			job.Metadata.Width, job.Metadata.Height, job.Metadata.FrameRate, humanize.Comma(int64(job.Metadata.TotalFrames)))},
		{Label: "Bitrate", Value: formatBitrate(job.Bitrate)},
	}
	seen := map[string]bool{}
	for _, s := range job.Strategies {
		summarizer, ok := s.(strategy.Summarizer)
		if !ok {
			continue
		}
		for _, setting := range summarizer.Summary(job.Params, env) {
			if seen[setting.Label] {
				continue
			}
			seen[setting.Label] = true
			settings = append(settings, setting)
		}
	}
	if job.Params.Transparent {
		settings = append(settings, strategy.Setting{Label: "Transparency", Value: "enabled"})
	}
	settings = append(settings,
		strategy.Setting{Label: "Workers", Value: fmt.Sprint(r.cfg.WorkerCount())},
		strategy.Setting{Label: "Compression", Value: fmt.Sprint(r.cfg.Encoding.Compression)},
	)
	if r.cfg.Encoding.Smoothing > 0 {
		settings = append(settings, strategy.Setting{Label: "Smoothing", Value: fmt.Sprintf("%d frames", r.cfg.Encoding.Smoothing)})
	}
	return settings
}

func formatBitrate(bps int64) string {
	return humanize.SI(float64(bps), "bps")
}
