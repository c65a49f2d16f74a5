package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"wackywebm/internal/strategy"
	"wackywebm/internal/textutil"
)

var modeDescriptions = map[string]string{
	"audiobounce":  "Height follows the audio loudness",
	"audioshutter": "Width follows the audio loudness",
	"bounce":       "Height bounces on a cosine wave",
	"keyframes":    "Size follows a keyframe file (--keyframes)",
	"rotate":       "Frame rotates inside a square canvas",
	"shrink":       "Height shrinks to nothing over the video",
	"shutter":      "Width bounces on a cosine wave",
	"sporadic":     "Size jumps randomly",
}

func newModesCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "modes",
		Short:       "List the available modes",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			names := strategy.Names()
			rows := make([][]string, 0, len(names))
			for _, name := range names {
				rows = append(rows, []string{name, textutil.TitleCase(name), modeDescriptions[name]})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]column{textColumn("Mode"), textColumn("Name"), textColumn("Effect")}, rows))
			fmt.Fprintln(cmd.OutOrStdout(), "Combine modes with +, e.g. bounce+shutter")
			return nil
		},
	}
}
