package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"stashsync/internal/reconcile"
)

func newSyncCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "sync <scene-id>",
		Short: "Reconcile a single scene by its Stash ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sceneID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid scene id %q: %w", args[0], err)
			}
			r, err := ctx.ensureRunner()
			if err != nil {
				return err
			}
			outcome, err := r.RunScene(cmd.Context(), sceneID)
			fmt.Fprintf(cmd.OutOrStdout(), "scene %d: %s\n", sceneID, outcome)
			if outcome == reconcile.OutcomeFailed {
				return err
			}
			return nil
		},
	}
}

func newBulkCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "bulk",
		Short: "Reconcile every scene in the Stash database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := ctx.ensureRunner()
			if err != nil {
				return err
			}
			return r.RunBulk(cmd.Context())
		},
	}
}
