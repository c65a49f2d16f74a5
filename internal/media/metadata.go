package media

import (
	"fmt"
	"strconv"
	"strings"
)

// VideoMetadata describes the first video stream of a source file.
type VideoMetadata struct {
	Width  int
	Height int
	// FrameRate is the rational rate reported by the prober, e.g. "30000/1001".
	FrameRate   string
	FPS         float64
	TotalFrames int
	// BitRate is in bits/s; zero when the container does not report one.
	BitRate int64
}

// Validate rejects metadata a run cannot be planned from.
func (m VideoMetadata) Validate() error {
	switch {
	case m.Width <= 0 || m.Height <= 0:
		return fmt.Errorf("invalid dimensions %dx%d", m.Width, m.Height)
	case m.FPS <= 0:
		return fmt.Errorf("invalid frame rate %q", m.FrameRate)
	case m.TotalFrames <= 0:
		return fmt.Errorf("no frames counted")
	}
	return nil
}

// ParseFrameRate converts "num/den" or a decimal string into frames per second.
func ParseFrameRate(value string) (float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("empty frame rate")
	}
	num, den, ok := strings.Cut(value, "/")
	if !ok {
		fps, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0, fmt.Errorf("parse frame rate %q: %w", value, err)
		}
		return fps, nil
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(num), 64)
	if err != nil {
		return 0, fmt.Errorf("parse frame rate %q: %w", value, err)
	}
	d, err := strconv.ParseFloat(strings.TrimSpace(den), 64)
	if err != nil {
		return 0, fmt.Errorf("parse frame rate %q: %w", value, err)
	}
	if d == 0 {
		return 0, fmt.Errorf("parse frame rate %q: zero denominator", value)
	}
	return n / d, nil
}
