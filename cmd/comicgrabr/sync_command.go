package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"comicgrabr/internal/acquisition"
	"comicgrabr/internal/notifications"
)

func newSyncCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "sync SNAPSHOT",
		Short: "Replace the pull list from a snapshot CSV export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			logger, _, err := ctx.newRunLogger(cfg)
			if err != nil {
				return err
			}

			store, err := ctx.openStore(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			orch := acquisition.New(cfg, store, nil, notifications.NewService(cfg, false), logger, false)
			kept, err := orch.Sync(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Pull list now tracks %d upcoming releases.\n", kept)
			return nil
		},
	}
}
