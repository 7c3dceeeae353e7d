package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"picbox/internal/store"
)

func newShowCommand(ctx *commandContext) *cobra.Command {
	var showPath bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one picture's details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := ctx.ensureEngine()
			if err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return fmt.Errorf("invalid picture id %q", args[0])
			}

			pic, err := engine.GetPicture(cmd.Context(), id)
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
			if showPath {
				path, err := engine.ArtifactPath(cmd.Context(), id, false)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "  %-12s %s\n", "Path:", path)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showPath, "path", false, "Also print the stored file location")

	return cmd
}

func printPictureDetails(cmd *cobra.Command, pic *store.Picture, categoryName string) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Picture %d\n", pic.ID)
	fmt.Fprintf(out, "  %-12s %s\n", "Name:", displayName(*pic))
	fmt.Fprintf(out, "  %-12s %s\n", "File:", pic.Filename)
	fmt.Fprintf(out, "  %-12s %s\n", "Thumbnail:", pic.Thumbnail)
	if pic.CategoryID != nil {
		if categoryName != "" {
			fmt.Fprintf(out, "  %-12s %s (%d)\n", "Category:", categoryName, *pic.CategoryID)
		} else {
			fmt.Fprintf(out, "  %-12s %d\n", "Category:", *pic.CategoryID)
		}
	}
	if pic.Episode != nil {
		fmt.Fprintf(out, "  %-12s %d\n", "Episode:", *pic.Episode)
	}
	if pic.OwnerID != "" {
		fmt.Fprintf(out, "  %-12s %s\n", "Owner:", pic.OwnerID)
	}
	fmt.Fprintf(out, "  %-12s %s\n", "Keywords:", keywordNames(pic.Keywords))
	fmt.Fprintf(out, "  %-12s %s\n", "Uploaded:", pic.CreatedAt.Local().Format("2006-01-02 15:04:05"))
}
