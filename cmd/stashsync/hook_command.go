package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"stashsync/internal/reconcile"
)

// hookPayload is the envelope Stash writes to the plugin's stdin. Only the
// fields the hook dispatch needs are decoded; the rest is ignored.
type hookPayload struct {
	Args struct {
		Mode        string `json:"mode"`
		HookContext struct {
			ID json.Number `json:"id"`
		} `json:"hookContext"`
	} `json:"args"`
}

var errNoHookTarget = errors.New("hook payload names no scene and no bulk mode")

// resolveHookTarget extracts the dispatch decision from a hook payload:
// a scene ID when the hook context names one, bulk mode when args.mode asks
// for it, an error otherwise.
func resolveHookTarget(r io.Reader) (sceneID int64, bulk bool, err error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return 0, false, fmt.Errorf("read hook payload: %w", err)
	}
	if len(raw) == 0 {
		return 0, false, errors.New("no input received on stdin; use --dev for flag-driven invocation")
	}
	var payload hookPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return 0, false, fmt.Errorf("parse hook payload: %w", err)
	}
	if id := payload.Args.HookContext.ID.String(); id != "" && id != "0" {
		sceneID, err := payload.Args.HookContext.ID.Int64()
		if err != nil {
			return 0, false, fmt.Errorf("hook scene id %q: %w", id, err)
		}
		return sceneID, false, nil
	}
	if payload.Args.Mode == "bulk" {
		return 0, true, nil
	}
	return 0, false, errNoHookTarget
}

func newHookCommand(ctx *commandContext) *cobra.Command {
	var dev bool
	var sceneID int64
	var bulk bool

	cmd := &cobra.Command{
		Use:   "hook",
		Short: "Run as a Stash plugin hook, reading the payload from stdin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			targetID, targetBulk := sceneID, bulk
			if !dev {
				var err error
				targetID, targetBulk, err = resolveHookTarget(cmd.InOrStdin())
				if err != nil {
					return err
				}
			} else if targetID == 0 && !targetBulk {
				return errors.New("--dev requires --scene-id or --bulk")
			}

			r, err := ctx.ensureRunner()
			if err != nil {
				return err
			}
			if targetBulk {
				return r.RunBulk(cmd.Context())
			}
			outcome, err := r.RunScene(cmd.Context(), targetID)
			if outcome == reconcile.OutcomeFailed {
				return err
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&dev, "dev", false, "Skip the stdin payload and use flags instead")
	cmd.Flags().Int64Var(&sceneID, "scene-id", 0, "Scene to reconcile in dev mode")
	cmd.Flags().BoolVar(&bulk, "bulk", false, "Reconcile every scene in dev mode")
	return cmd
}
