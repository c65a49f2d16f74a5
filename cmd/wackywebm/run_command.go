package main

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"wackywebm/internal/logging"
	"wackywebm/internal/pipeline"
	"wackywebm/internal/strategy"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	var flags jobFlags

	cmd := &cobra.Command{
		Use:   "run <input>",
		Short: "Convert a video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			defer ctx.close()

			base, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			cfg, err := flags.apply(cmd, base)
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			opts := []pipeline.Option{
				pipeline.WithLogger(logger),
				pipeline.WithProgressOutput(cmd.ErrOrStderr()),
			}
			if store, err := ctx.historyStore(); err != nil {
				logging.WarnWithContext(logger, "run history unavailable", "history_unavailable",
					logging.Error(err),
					logging.String(logging.FieldImpact, "run will not appear in history"),
				)
			} else {
				opts = append(opts, pipeline.WithHistory(store))
			}

			runner := pipeline.New(cfg, ctx.mediaClient(cfg, logger), opts...)
			job, err := runner.Prepare(cmd.Context(), flags.request(args[0]))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderSettings(job.Settings))

			result, err := runner.Execute(cmd.Context(), job)
			if err != nil {
				return err
			}

			colorize := shouldColorize(out)
			fmt.Fprintln(out, renderStatusLine("Output", statusOK, result.Output, colorize))
			fmt.Fprintln(out, renderStatusLine("Size", statusValue, humanize.IBytes(uint64(max(0, result.OutputSize))), colorize))
			fmt.Fprintln(out, renderStatusLine("Segments", statusValue,
				fmt.Sprintf("%d (%s frames)", result.Segments, humanize.Comma(int64(result.Frames))), colorize))
			if !result.Audio {
				fmt.Fprintln(out, renderStatusLine("Audio", statusWarn, "source has no audio track", colorize))
			}
			fmt.Fprintln(out, renderStatusLine("Elapsed", statusValue, result.Elapsed.Round(10*time.Millisecond).String(), colorize))
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func renderSettings(settings []strategy.Setting) string {
	rows := make([][]string, 0, len(settings))
	for _, s := range settings {
		rows = append(rows, []string{s.Label, s.Value})
	}
	return renderTable([]column{textColumn("Setting"), textColumn("Value")}, rows)
}
