// Package services defines shared utilities consumed by the pipeline stages
// and the ffmpeg adapters.
//
// Key responsibilities:
//   - Context helpers that stamp run IDs, stage names, and segment indexes for
//     logging.
//   - Structured error markers plus the Wrap helper so callers can classify
//     failures (bad input vs external tool vs configuration) with errors.Is.
//   - The domain error taxonomy shared between the media adapters, the
//     strategies, and the scheduler.
//
// Use these helpers when wiring new stage logic so error handling and
// observability stay uniform across the pipeline.
package services
