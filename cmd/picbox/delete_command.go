package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDeleteCommand(ctx *commandContext) *cobra.Command {
	var owner string

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a picture from the catalog",
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

			if err := engine.Delete(cmd.Context(), id, owner); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted picture %d\n", id)
			return nil
		},
	}

	cmd.Flags().StringVar(&owner, "owner", "", "Only delete when the picture belongs to this owner")

	return cmd
}
