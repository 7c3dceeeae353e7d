package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"picbox/internal/catalog"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	var (
		category string
		episode  int64
		page     int
		pageSize int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List pictures, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := ctx.ensureEngine()
			if err != nil {
				return err
			}

			req := catalog.ListRequest{
				Category: category,
				Page:     page,
				PageSize: pageSize,
			}
			if cmd.Flags().Changed("episode") {
				req.Episode = &episode
			}

			result, err := engine.List(cmd.Context(), req)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(result.Pictures) == 0 {
				fmt.Fprintln(out, "No pictures found.")
				return nil
			}

			rows := make([][]string, 0, len(result.Pictures))
			for _, pic := range result.Pictures {
				rows = append(rows, pictureTableRow(pic))
			}
			fmt.Fprintln(out, renderTable(out, pictureTableHeaders, rows, pictureTableAligns))
			fmt.Fprintf(out, "Page %d of %d (%d pictures)\n", result.Page, result.TotalPages, result.Total)
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Filter by category name or slug")
	cmd.Flags().Int64Var(&episode, "episode", 0, "Filter by episode (requires --category)")
	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	cmd.Flags().IntVar(&pageSize, "page-size", 0, "Pictures per page (0 uses the configured default)")

	return cmd
}
