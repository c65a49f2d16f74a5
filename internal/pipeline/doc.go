// Package pipeline orchestrates one conversion run.
//
// A run is split in two phases. Prepare probes the input, resolves the output
// path, and sets up the selected strategies; nothing is written yet, so the
// caller can print the resulting settings or stop there. Execute then takes
// the output lock, runs the preflight checks, extracts audio and frames into
// a scratch workspace, schedules the segment encodes, concatenates the
// result, and records the run in history. The workspace is removed whether
// the run succeeds, fails, or is interrupted.
package pipeline
