package config

import (
	"errors"
	"fmt"

	"wackywebm/internal/services"
)

// Validate ensures the configuration is usable. Failures match
// services.ErrConfiguration.
func (c *Config) Validate() error {
	for _, check := range []func() error{c.validateEncoding, c.validateModes, c.validateLogging} {
		if err := check(); err != nil {
			return fmt.Errorf("%w: %w", services.ErrConfiguration, err)
		}
	}
	return nil
}

func (c *Config) validateEncoding() error {
	if err := ensureNonNegativeMap(map[string]int{
		"encoding.threads":     c.Encoding.Threads,
		"encoding.compression": c.Encoding.Compression,
		"encoding.smoothing":   c.Encoding.Smoothing,
	}); err != nil {
		return err
	}
	if c.Encoding.Bitrate < 0 {
		return errors.New("encoding.bitrate must not be negative (0 derives it from the source)")
	}
	if c.Encoding.FallbackBitrate > c.Encoding.MaxBitrate {
		return errors.New("encoding.fallback_bitrate must not exceed encoding.max_bitrate")
	}
	if c.Encoding.CRF < 4 || c.Encoding.CRF > 63 {
		return fmt.Errorf("encoding.crf must be between 4 and 63, got %d", c.Encoding.CRF)
	}
	switch c.Encoding.Codec {
	case "vp8", "vp9":
	default:
		return fmt.Errorf("encoding.codec: unsupported value %q (expected vp8 or vp9)", c.Encoding.Codec)
	}
	return nil
}

func (c *Config) validateModes() error {
	if c.Modes.Tempo <= 0 {
		return errors.New("modes.tempo must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}

func ensureNonNegativeMap(values map[string]int) error {
	for key, value := range values {
		if value < 0 {
			return fmt.Errorf("%s must not be negative", key)
		}
	}
	return nil
}
