package config

const (
	defaultStateDir        = "~/.local/share/wackywebm"
	defaultLogDir          = "~/.local/share/wackywebm/logs"
	defaultFallbackBitrate = 500_000
	defaultMaxBitrate      = 1_000_000
	defaultCRF             = 10
	defaultCodec           = "vp8"
	defaultTempo           = 2
	defaultAngle           = 360
	defaultFFmpeg          = "ffmpeg"
	defaultFFprobe         = "ffprobe"
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			ScratchDir: defaultScratchDir(),
			StateDir:   defaultStateDir,
			LogDir:     defaultLogDir,
		},
		Encoding: Encoding{
			FallbackBitrate: defaultFallbackBitrate,
			MaxBitrate:      defaultMaxBitrate,
			CRF:             defaultCRF,
			Codec:           defaultCodec,
		},
		Modes: Modes{
			Tempo: defaultTempo,
			Angle: defaultAngle,
		},
		Tools: Tools{
			FFmpeg:  defaultFFmpeg,
			FFprobe: defaultFFprobe,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
