package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCategoryCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "category",
		Short: "Manage categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(newCategoryAddCommand(ctx))
	cmd.AddCommand(newCategoryListCommand(ctx))
	cmd.AddCommand(newCategoryRenameCommand(ctx))
	cmd.AddCommand(newCategoryRemoveCommand(ctx))

	return cmd
}

func newCategoryAddCommand(ctx *commandContext) *cobra.Command {
	var slug string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := ctx.ensureEngine()
			if err != nil {
				return err
			}
			cat, err := engine.AddCategory(cmd.Context(), args[0], slug)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created category %d (%s)\n", cat.ID, cat.Slug)
			return nil
		},
	}

	cmd.Flags().StringVar(&slug, "slug", "", "Explicit slug (derived from the name when omitted)")

	return cmd
}

func newCategoryListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := ctx.ensureEngine()
			if err != nil {
				return err
			}
			categories, err := engine.Categories(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(categories) == 0 {
				fmt.Fprintln(out, "No categories defined.")
				return nil
			}

			rows := make([][]string, 0, len(categories))
			for _, cat := range categories {
				rows = append(rows, []string{
					fmt.Sprintf("%d", cat.ID),
					cat.Name,
					cat.Slug,
				})
			}
			fmt.Fprintln(out, renderTable(
				out,
				[]string{"ID", "Name", "Slug"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft},
			))
			return nil
		},
	}
}

func newCategoryRenameCommand(ctx *commandContext) *cobra.Command {
	var slug string

	cmd := &cobra.Command{
		Use:   "rename <name-or-slug> <new-name>",
		Short: "Rename a category",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := ctx.ensureEngine()
			if err != nil {
				return err
			}
			cat, err := engine.FindCategory(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			updated, err := engine.EditCategory(cmd.Context(), cat.ID, args[1], slug)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Renamed category %d to %q (%s)\n", updated.ID, updated.Name, updated.Slug)
			return nil
		},
	}

	cmd.Flags().StringVar(&slug, "slug", "", "Explicit slug (derived from the new name when omitted)")

	return cmd
}

func newCategoryRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <name-or-slug>",
		Short: "Delete an empty category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := ctx.ensureEngine()
			if err != nil {
				return err
			}
			if err := engine.RemoveCategory(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed category %q\n", args[0])
			return nil
		},
	}
}

func newKeywordsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "keywords",
		Short: "List keywords",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := ctx.ensureEngine()
			if err != nil {
				return err
			}
			keywords, err := engine.Keywords(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(keywords) == 0 {
				fmt.Fprintln(out, "No keywords recorded.")
				return nil
			}
			rows := make([][]string, 0, len(keywords))
			for _, kw := range keywords {
				rows = append(rows, []string{fmt.Sprintf("%d", kw.ID), kw.Name, kw.Slug})
			}
			fmt.Fprintln(out, renderTable(
				out,
				[]string{"ID", "Name", "Slug"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft},
			))
			return nil
		},
	}
}
