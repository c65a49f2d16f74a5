package main

import (
	"github.com/spf13/cobra"

	"wackywebm/internal/config"
	"wackywebm/internal/pipeline"
)

// jobFlags are shared by run and plan. Encoding and mode flags override the
// config only when set on the command line.
type jobFlags struct {
	modes        string
	output       string
	keyframeFile string

	bitrate     int64
	threads     int
	compression int
	smoothing   int
	tempo       float64
	angle       float64
	transparent bool
}

func (f *jobFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVarP(&f.modes, "mode", "m", "bounce", "Modes to apply, joined with + (see `wackywebm modes`)")
	flags.StringVarP(&f.output, "output", "o", "", "Output file (default <input>_<modes>.webm next to the input)")
	flags.StringVarP(&f.keyframeFile, "keyframes", "k", "", "Keyframe file for the keyframes mode")
	flags.Int64VarP(&f.bitrate, "bitrate", "b", 0, "Output bitrate in bits/s")
	flags.IntVarP(&f.threads, "threads", "t", 0, "Parallel segment encodes")
	flags.IntVar(&f.compression, "compression", 0, "Width+height change tolerated inside one segment")
	flags.IntVar(&f.smoothing, "smoothing", 0, "Moving-average window applied to frame sizes")
	flags.Float64Var(&f.tempo, "tempo", 0, "Bounces per second for bounce and shutter")
	flags.Float64Var(&f.angle, "angle", 0, "Rotation for the rotate mode")
	flags.BoolVar(&f.transparent, "transparent", false, "Keep the alpha channel")
}

// apply copies explicitly set flags onto a copy of cfg and validates it.
func (f *jobFlags) apply(cmd *cobra.Command, cfg *config.Config) (*config.Config, error) {
	out := *cfg
	changed := cmd.Flags().Changed
	if changed("bitrate") {
		out.Encoding.Bitrate = f.bitrate
	}
	if changed("threads") {
		out.Encoding.Threads = f.threads
	}
	if changed("compression") {
		out.Encoding.Compression = f.compression
	}
	if changed("smoothing") {
		out.Encoding.Smoothing = f.smoothing
	}
	if changed("tempo") {
		out.Modes.Tempo = f.tempo
	}
	if changed("angle") {
		out.Modes.Angle = f.angle
	}
	if changed("transparent") {
		out.Modes.Transparent = f.transparent
	}
	if err := out.Validate(); err != nil {
		return nil, err
	}
	return &out, nil
}

func (f *jobFlags) request(input string) pipeline.Request {
	return pipeline.Request{
		Input:        input,
		Output:       f.output,
		Modes:        f.modes,
		KeyframeFile: f.keyframeFile,
	}
}
