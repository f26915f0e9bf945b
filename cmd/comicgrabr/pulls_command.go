package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"comicgrabr/internal/pulllist"
)

func newPullsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "pulls",
		Short: "Show the tracked pull list",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			store, err := ctx.openStore(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			releases, err := store.All(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(releases) == 0 {
				fmt.Fprintln(out, "Pull list is empty. Sync a snapshot with 'comicgrabr sync FILE'.")
				return nil
			}

			rows := make([][]string, 0, len(releases))
			for _, release := range releases {
				rows = append(rows, []string{release.ReleaseDate.Format(pulllist.DateLayout), release.Title})
			}
			fmt.Fprintln(out, renderTable(out, []string{"Release", "Title"}, rows, []columnAlignment{alignLeft, alignLeft}))
			fmt.Fprintf(out, "%d releases tracked.\n", len(releases))
			return nil
		},
	}
}
