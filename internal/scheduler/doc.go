// Package scheduler walks every frame of a video, folds the selected
// strategies into per-frame sizes, groups consecutive frames of similar size
// into segments, and encodes the segments on a bounded worker pool.
//
// The frame walk runs on the calling goroutine and owns all grouping state.
// Segment paths are recorded in frame order when a segment is queued, so the
// plan order never depends on which encode finishes first.
package scheduler
