package ffmpeg

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"

	"wackywebm/internal/media"
	"wackywebm/internal/services"
)

// EncodeSegment encodes job.FrameCount frames starting at job.StartFrame into
// a WebM file at job.OutputPath.
func (c *Client) EncodeSegment(ctx context.Context, job media.EncodeJob) error {
	out, err := c.run(ctx, c.ffmpeg, c.encodeArgs(job))
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		return &services.EncodeError{
			Segment: job.Segment,
			ToolError: services.ToolError{
				Kind:       services.ErrEncode,
				Tool:       "ffmpeg",
				Diagnostic: Diagnostic(out.Stderr),
				Err:        err,
			},
		}
	}
	return nil
}

func (c *Client) encodeArgs(job media.EncodeJob) []string {
	args := []string{
		"-y",
		"-r", job.FrameRate,
		"-start_number", strconv.Itoa(job.StartFrame + 1),
		"-i", filepath.Join(job.FrameDir, media.FramePattern),
		"-frames:v", strconv.Itoa(job.FrameCount),
		"-c:v", c.codec,
		"-b:v", strconv.FormatInt(job.Bitrate, 10),
		"-crf", strconv.Itoa(c.crf),
	}
	if job.Transparent {
		args = append(args, "-pix_fmt", "yuva420p")
	}
	args = append(args, "-vf")
	if job.Filter != nil {
		args = append(args, job.Filter...)
	} else {
		args = append(args,
			fmt.Sprintf("scale=%dx%d", job.Width, job.Height),
			"-aspect", fmt.Sprintf("%d:%d", job.Width, job.Height),
		)
	}
	args = append(args,
		"-threads", strconv.Itoa(max(1, job.Threads)),
		"-f", "webm",
		"-auto-alt-ref", "0",
		job.OutputPath,
	)
	return args
}
