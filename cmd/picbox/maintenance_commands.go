package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newMaintenanceCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "maintenance",
		Short: "Content store maintenance",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(newRegenThumbsCommand(ctx))
	cmd.AddCommand(newSweepCommand(ctx))

	return cmd
}

func newRegenThumbsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "regen-thumbs",
		Short: "Rebuild every thumbnail from its stored original",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := ctx.ensureEngine()
			if err != nil {
				return err
			}
			report, err := engine.RegenerateThumbnails(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Regenerated %d thumbnail(s)\n", report.Regenerated)
			if report.Skipped > 0 {
				fmt.Fprintf(out, "Skipped %d picture(s) with missing originals; run `picbox maintenance sweep` to inspect\n", report.Skipped)
			}
			return nil
		},
	}
}

func newSweepCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "Remove unreferenced files and report rows with missing originals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := ctx.ensureEngine()
			if err != nil {
				return err
			}
			report, err := engine.SweepOrphans(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Removed %d orphaned file(s)\n", len(report.RemovedFiles))
			for _, name := range report.RemovedFiles {
				fmt.Fprintf(out, "  removed %s\n", name)
			}
			if len(report.DanglingRows) > 0 {
				fmt.Fprintf(out, "%d picture(s) reference missing files:\n", len(report.DanglingRows))
				for _, id := range report.DanglingRows {
					fmt.Fprintf(out, "  picture %d\n", id)
				}
			}
			return nil
		},
	}
}

func newStatsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show catalog row counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := ctx.ensureEngine()
			if err != nil {
				return err
			}
			stats, err := engine.Stats(cmd.Context())
			if err != nil {
				return err
			}

			rows := [][]string{
				{"Pictures", fmt.Sprintf("%d", stats.Pictures)},
				{"Categories", fmt.Sprintf("%d", stats.Categories)},
				{"Keywords", fmt.Sprintf("%d", stats.Keywords)},
				{"Uncategorized", fmt.Sprintf("%d", stats.Uncategorized)},
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(
				out,
				[]string{"Metric", "Count"},
				rows,
				[]columnAlignment{alignLeft, alignRight},
			))
			return nil
		},
	}
}
