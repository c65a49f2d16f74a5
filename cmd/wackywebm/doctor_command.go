package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"wackywebm/internal/preflight"
)

func newDoctorCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check external tools and directories",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			failed := false

			for _, line := range renderSectionHeader("Dependencies", colorize) {
				fmt.Fprintln(out, line)
			}
			for _, status := range preflight.CheckSystemDeps(cfg) {
				kind, detail := statusOK, status.Path
				switch {
				case status.Available:
				case status.Optional:
					kind, detail = statusWarn, status.Detail
				default:
					kind, detail = statusMissing, status.Detail
					failed = true
				}
				fmt.Fprintln(out, renderStatusLine(status.Name, kind, detail, colorize))
			}

			fmt.Fprintln(out)
			for _, line := range renderSectionHeader("Directories", colorize) {
				fmt.Fprintln(out, line)
			}
			for _, check := range []preflight.Result{
				preflight.CheckDirectoryAccess("Scratch", cfg.Paths.ScratchDir),
				preflight.CheckDirectoryAccess("State", cfg.Paths.StateDir),
				preflight.CheckDirectoryAccess("Logs", cfg.Paths.LogDir),
			} {
				kind := statusOK
				if !check.Passed {
					kind = statusFail
					failed = true
				}
				fmt.Fprintln(out, renderStatusLine(check.Name, kind, check.Detail, colorize))
			}
			if free, err := preflight.FreeBytes(cfg.Paths.ScratchDir); err == nil {
				fmt.Fprintln(out, renderStatusLine("Scratch free", statusValue, humanize.IBytes(free), colorize))
			}

			if failed {
				return fmt.Errorf("doctor found problems")
			}
			return nil
		},
	}
}
