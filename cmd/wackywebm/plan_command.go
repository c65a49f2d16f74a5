package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"wackywebm/internal/pipeline"
	"wackywebm/internal/scheduler"
)

func newPlanCommand(ctx *commandContext) *cobra.Command {
	var flags jobFlags

	cmd := &cobra.Command{
		Use:   "plan <input>",
		Short: "Show the segments a run would encode without encoding anything",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
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

			runner := pipeline.New(cfg, ctx.mediaClient(cfg, logger), pipeline.WithLogger(logger))
			job, err := runner.Prepare(cmd.Context(), flags.request(args[0]))
			if err != nil {
				return err
			}
			plan, err := runner.Plan(cmd.Context(), job)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderSettings(job.Settings))
			fmt.Fprintln(out, renderPlan(plan))
			fmt.Fprintf(out, "%d segments, %d frames\n", len(plan.Segments), plan.Frames())
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func renderPlan(plan scheduler.Plan) string {
	rows := make([][]string, 0, len(plan.Segments))
	frames := 0
	for _, seg := range plan.Segments {
		frames += seg.FrameCount
		size := fmt.Sprintf("%dx%d", seg.Width, seg.Height)
		if seg.Filter != nil {
			size = strings.Join(seg.Filter, ",")
		}
		rows = append(rows, []string{
			fmt.Sprint(seg.Index),
			fmt.Sprintf("%d-%d", seg.StartFrame, seg.StartFrame+seg.FrameCount-1),
			fmt.Sprint(seg.FrameCount),
			size,
			fmt.Sprint(seg.Threads),
		})
	}
	return renderTable(
		[]column{
			numberColumn("#"),
			numberColumn("Frames"),
			numberColumn("Count"),
			textColumn("Size"),
			numberColumn("Threads"),
		},
		rows,
		fmt.Sprint(len(plan.Segments)), "", fmt.Sprint(frames),
	)
}
