package main

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"wackywebm/internal/history"
	"wackywebm/internal/textutil"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var pruneDays int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List previous runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			defer ctx.close()

			store, err := ctx.historyStore()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if pruneDays > 0 {
				removed, err := store.Prune(cmd.Context(), time.Now().AddDate(0, 0, -pruneDays))
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Pruned %d runs older than %d days\n", removed, pruneDays)
				return nil
			}

			runs, err := store.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs recorded")
				return nil
			}
			fmt.Fprintln(out, renderHistory(runs, time.Now()))
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum runs to show (0 for all)")
	cmd.Flags().IntVar(&pruneDays, "prune", 0, "Delete finished runs older than this many days instead of listing")
	return cmd
}

func renderHistory(runs []history.Run, now time.Time) string {
	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		duration := "-"
		if d := run.Duration(); d > 0 {
			duration = d.Round(time.Second).String()
		}
		status := string(run.Status)
		if run.Error != "" {
			status += ": " + firstLine(run.Error)
		}
		rows = append(rows, []string{
			humanize.RelTime(run.StartedAt, now, "ago", "from now"),
			filepath.Base(run.Source),
			textutil.TitleList(run.Modes, "+"),
			fmt.Sprint(run.Segments),
			duration,
			status,
		})
	}
	return renderTable([]column{
		textColumn("Started"),
		{title: "Source", wrap: 32},
		textColumn("Modes"),
		numberColumn("Segments"),
		numberColumn("Duration"),
		{title: "Status", wrap: 48},
	}, rows)
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}
