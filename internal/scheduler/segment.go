package scheduler

import (
	"fmt"
	"math"
	"path/filepath"

	"wackywebm/internal/media"
)

// Segment is a run of consecutive frames encoded at one size.
type Segment struct {
	Index      int
	StartFrame int
	FrameCount int
	OutputPath string
	Width      int
	Height     int
	Filter     []string
	// Threads is the encoder thread budget.
	Threads int
}

// Plan is the ordered result of a run.
type Plan struct {
	Segments []Segment
	Paths    []string
}

// Frames returns the number of frames covered by the plan.
func (p Plan) Frames() int {
	total := 0
	for _, seg := range p.Segments {
		total += seg.FrameCount
	}
	return total
}

func segmentPath(dir string, index int) string {
	return filepath.Join(dir, fmt.Sprintf("segment-%05d.webm", index))
}

// jobThreads splits the thread budget: one thread per ten frames, capped at
// threads, at least one.
func jobThreads(threads, frames int) int {
	return max(1, min(threads, int(math.Ceil(float64(frames)/10))))
}

func (s *Scheduler) job(seg Segment) media.EncodeJob {
	return media.EncodeJob{
		Segment:     seg.Index,
		FrameDir:    s.FrameDir,
		StartFrame:  seg.StartFrame,
		FrameCount:  seg.FrameCount,
		FrameRate:   s.FrameRate,
		Width:       seg.Width,
		Height:      seg.Height,
		Filter:      seg.Filter,
		Bitrate:     s.Bitrate,
		Threads:     seg.Threads,
		Transparent: s.Params.Transparent,
		OutputPath:  seg.OutputPath,
	}
}
