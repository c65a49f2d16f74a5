package ffmpeg

import (
	"context"
	"errors"
	"path/filepath"
	"strconv"

	"wackywebm/internal/logging"
	"wackywebm/internal/media"
	"wackywebm/internal/services"
)

// ExtractFrames writes every frame of path into dir as 1-based numbered PNGs.
// Transparent sources are decoded with libvpx so the alpha plane survives.
func (c *Client) ExtractFrames(ctx context.Context, path, dir string, transparent bool, threads int) error {
	args := []string{"-threads", strconv.Itoa(max(1, threads)), "-y"}
	if transparent {
		args = append(args, "-vcodec", "libvpx")
	}
	args = append(args, "-i", path, "-q:v", "0", filepath.Join(dir, media.FramePattern))

	out, err := c.run(ctx, c.ffmpeg, args)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		return &services.ToolError{
			Kind:       services.ErrExternalTool,
			Tool:       "ffmpeg",
			Diagnostic: Diagnostic(out.Stderr),
			Err:        err,
		}
	}
	return nil
}

// SplitAudio copies the audio track into out as Vorbis. It reports false,
// without error, when the source has no audio.
func (c *Client) SplitAudio(ctx context.Context, path, out string) (bool, error) {
	args := []string{"-y", "-i", path, "-vn", "-c:a", "libvorbis", out}
	result, err := c.run(ctx, c.ffmpeg, args)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return false, ctxErr
		}
		logging.WithContext(ctx, c.logger).Info("no audio track; output will be silent",
			logging.String("diagnostic", Diagnostic(result.Stderr)),
		)
		return false, nil
	}
	return true, nil
}
