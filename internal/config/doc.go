// Package config loads, normalizes, and validates wackywebm configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// WACKYWEBM_FFMPEG. The Config type centralizes every knob the CLI and the
// pipeline need: scratch/state directories, encoder settings, the per-mode
// tuning values, and log output.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
