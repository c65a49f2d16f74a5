// Package strategy implements the frame sizing modes.
//
// A Strategy maps a frame index to FrameBounds. Several strategies can run
// together; Compose folds their bounds left to right so later strategies
// override earlier ones field by field. Instances carry per-run state (audio
// envelopes, keyframe cursors) and are built fresh for every run by New or
// Select.
package strategy
