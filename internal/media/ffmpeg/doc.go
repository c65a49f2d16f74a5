// Package ffmpeg adapts the ffmpeg and ffprobe command-line tools to the
// probe, extraction, encode, and concat steps of a run.
//
// Every invocation goes through an Executor so tests can substitute canned
// output. Failures carry the tool's stderr with the version and build banner
// removed.
package ffmpeg
