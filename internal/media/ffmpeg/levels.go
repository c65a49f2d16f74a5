package ffmpeg

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"

	"wackywebm/internal/services"
)

const rmsLevelTag = "lavfi.astats.Overall.RMS_level"

type levelsResult struct {
	Frames []struct {
		Tags map[string]string `json:"tags"`
	} `json:"frames"`
}

// ExtractLevels returns the RMS level in dB of every audio frame. Silent
// frames are -Inf.
func (c *Client) ExtractLevels(ctx context.Context, path string) ([]float64, error) {
	args := []string{
		"-v", "error",
		"-f", "lavfi",
		"-i", "amovie=" + escapeFilterValue(path) + ",astats=metadata=1:reset=1",
		"-show_entries", "frame_tags=" + rmsLevelTag,
		"-of", "json",
	}
	out, err := c.run(ctx, c.ffprobe, args)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, &services.ToolError{
			Kind:       services.ErrNoAudioTrack,
			Tool:       "ffprobe",
			Diagnostic: Diagnostic(out.Stderr),
			Err:        err,
		}
	}
	return parseLevels(out.Stdout)
}

func parseLevels(payload []byte) ([]float64, error) {
	var result levelsResult
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, services.Wrap(services.ErrProbe, "audio", "parse", "decode astats json", err)
	}
	if len(result.Frames) == 0 {
		return nil, services.Wrap(services.ErrNoAudioTrack, "audio", "levels", "no audio frames", nil)
	}
	levels := make([]float64, len(result.Frames))
	for i, frame := range result.Frames {
		levels[i] = math.Inf(-1)
		raw, ok := frame.Tags[rmsLevelTag]
		if !ok {
			continue
		}
		if value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil {
			levels[i] = value
		}
	}
	return levels, nil
}

// escapeFilterValue quotes a path for use as a filter option inside a
// filtergraph string: one escaping pass for the option value, one for the
// graph.
func escapeFilterValue(value string) string {
	value = strings.NewReplacer(`\`, `\\`, `'`, `\'`, `:`, `\:`).Replace(value)
	return strings.NewReplacer(`\`, `\\`, `'`, `\'`, `[`, `\[`, `]`, `\]`, `,`, `\,`, `;`, `\;`).Replace(value)
}
