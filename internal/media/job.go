package media

import (
	"fmt"
	"path/filepath"
)

// FramePattern is the printf pattern extracted frames are written with.
// Frame numbering starts at 1.
const FramePattern = "%05d.png"

// FramePath returns the extracted image for the 0-based frame index.
func FramePath(dir string, index int) string {
	return filepath.Join(dir, fmt.Sprintf(FramePattern, index+1))
}

// EncodeJob describes one segment encode.
type EncodeJob struct {
	Segment int
	// FrameDir holds the extracted frames named by FramePattern.
	FrameDir string
	// StartFrame is the 0-based index of the first frame.
	StartFrame int
	FrameCount int
	FrameRate  string
	Width      int
	Height     int
	// Filter replaces the default scale filter when non-nil.
	Filter      []string
	Bitrate     int64
	Threads     int
	Transparent bool
	OutputPath  string
}
