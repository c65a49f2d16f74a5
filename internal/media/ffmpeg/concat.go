package ffmpeg

import (
	"context"
	"errors"

	"wackywebm/internal/services"
)

// Concat joins the segments listed in manifest, muxing audio when non-empty,
// without re-encoding.
func (c *Client) Concat(ctx context.Context, manifest, audio, output string) error {
	args := []string{"-y", "-f", "concat", "-safe", "0", "-i", manifest}
	if audio != "" {
		args = append(args, "-i", audio)
	}
	args = append(args, "-c", "copy", output)

	out, err := c.run(ctx, c.ffmpeg, args)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		return &services.ToolError{
			Kind:       services.ErrConcat,
			Tool:       "ffmpeg",
			Diagnostic: Diagnostic(out.Stderr),
			Err:        err,
		}
	}
	return nil
}
