package ffmpeg

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"wackywebm/internal/media"
	"wackywebm/internal/services"
)

type probeResult struct {
	Streams []probeStream `json:"streams"`
}

type probeStream struct {
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	RFrameRate   string `json:"r_frame_rate"`
	NBReadFrames string `json:"nb_read_frames"`
	BitRate      string `json:"bit_rate"`
}

// Probe reads the first video stream's size, frame rate, bitrate, and decoded
// frame count. Counting frames decodes the whole stream.
func (c *Client) Probe(ctx context.Context, path string) (media.VideoMetadata, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return media.VideoMetadata{}, services.Wrap(services.ErrValidation, "probe", "ffprobe", "empty path", nil)
	}
	args := []string{
		"-v", "error",
		"-select_streams", "v",
		"-of", "json",
		"-count_frames",
		"-show_entries", "stream=r_frame_rate,width,height,nb_read_frames,bit_rate",
		path,
	}
	out, err := c.run(ctx, c.ffprobe, args)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return media.VideoMetadata{}, err
		}
		return media.VideoMetadata{}, &services.ToolError{
			Kind:       services.ErrProbe,
			Tool:       "ffprobe",
			Diagnostic: Diagnostic(out.Stderr),
			Err:        err,
		}
	}
	return parseProbe(out.Stdout)
}

func parseProbe(payload []byte) (media.VideoMetadata, error) {
	var result probeResult
	if err := json.Unmarshal(payload, &result); err != nil {
		return media.VideoMetadata{}, services.Wrap(services.ErrProbe, "probe", "parse", "decode ffprobe json", err)
	}
	if len(result.Streams) == 0 {
		return media.VideoMetadata{}, services.Wrap(services.ErrProbe, "probe", "parse", "no video stream", nil)
	}
	stream := result.Streams[0]

	fps, err := media.ParseFrameRate(stream.RFrameRate)
	if err != nil {
		return media.VideoMetadata{}, services.Wrap(services.ErrProbe, "probe", "parse", "frame rate", err)
	}
	frames, err := strconv.Atoi(strings.TrimSpace(stream.NBReadFrames))
	if err != nil {
		return media.VideoMetadata{}, services.Wrap(services.ErrProbe, "probe", "parse", fmt.Sprintf("frame count %q", stream.NBReadFrames), err)
	}
	var bitRate int64
	if value := strings.TrimSpace(stream.BitRate); value != "" && value != "N/A" {
		if parsed, err := strconv.ParseInt(value, 10, 64); err == nil {
			bitRate = parsed
		}
	}

	meta := media.VideoMetadata{
		Width:       stream.Width,
		Height:      stream.Height,
		FrameRate:   stream.RFrameRate,
		FPS:         fps,
		TotalFrames: frames,
		BitRate:     bitRate,
	}
	if err := meta.Validate(); err != nil {
		return media.VideoMetadata{}, services.Wrap(services.ErrProbe, "probe", "parse", "unusable video stream", err)
	}
	return meta, nil
}
