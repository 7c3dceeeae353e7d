package main

import (
	"github.com/spf13/cobra"
)

func newRandomCommand(ctx *commandContext) *cobra.Command {
	var (
		category string
		episode  int64
	)

	cmd := &cobra.Command{
		Use:   "random",
		Short: "Pick a random picture",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := ctx.ensureEngine()
			if err != nil {
				return err
			}

			var episodeFilter *int64
			if cmd.Flags().Changed("episode") {
				episodeFilter = &episode
			}

			pic, err := engine.Random(cmd.Context(), category, episodeFilter)
			if err != nil {
				return err
			}

			categoryName := ""
			if pic.CategoryID != nil {
				if cat, err := engine.Category(cmd.Context(), *pic.CategoryID); err == nil {
					categoryName = cat.Name
				}
			}
			printPictureDetails(cmd, pic, categoryName)
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Restrict the pick to a category")
	cmd.Flags().Int64Var(&episode, "episode", 0, "Restrict the pick to an episode (requires --category)")

	return cmd
}
