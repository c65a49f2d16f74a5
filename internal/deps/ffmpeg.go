package deps

// Requirements lists the binaries a run needs, using the configured commands.
func Requirements(ffmpegCommand, ffprobeCommand string) []Requirement {
	return []Requirement{
		{
			Name:        "FFmpeg",
			Command:     ffmpegCommand,
			Description: "Required for frame extraction, segment encoding and concat",
		},
		{
			Name:        "FFprobe",
			Command:     ffprobeCommand,
			Description: "Required for probing video metadata and audio levels",
		},
	}
}
