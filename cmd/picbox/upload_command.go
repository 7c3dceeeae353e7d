package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"picbox/internal/catalog"
)

func newUploadCommand(ctx *commandContext) *cobra.Command {
	var (
		category string
		keywords []string
		owner    string
		episode  int64
	)

	cmd := &cobra.Command{
		Use:   "upload <file>",
		Short: "Add a picture to the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := ctx.ensureEngine()
			if err != nil {
				return err
			}

			path := args[0]
			file, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("open %s: %w", path, err)
			}
			defer file.Close()

			req := catalog.UploadRequest{
				Source:   file,
				Filename: filepath.Base(path),
				Category: category,
				Keywords: keywords,
				OwnerID:  owner,
			}
			if cmd.Flags().Changed("episode") {
				req.Episode = &episode
			}

			pic, err := engine.Upload(cmd.Context(), req)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Uploaded picture %d (%s)\n", pic.ID, pic.Filename)
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Category name or slug")
	cmd.Flags().StringSliceVar(&keywords, "keyword", nil, "Keyword to tag the picture with (repeatable)")
	cmd.Flags().StringVar(&owner, "owner", "", "Owner identifier recorded on the picture")
	cmd.Flags().Int64Var(&episode, "episode", 0, "Episode number within the category")

	return cmd
}
