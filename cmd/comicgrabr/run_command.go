package main

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"comicgrabr/internal/acquisition"
	"comicgrabr/internal/logging"
	"comicgrabr/internal/notifications"
	"comicgrabr/internal/services/airdcpp"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	var snapshotPath string
	var includeBacklog bool
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Search and queue the releases due today",
		Long: `Run resolves every pull-list release due today against the AirDC++
backend and queues the best candidate for download, then reports the
titles lined up for the next release day. With --snapshot the pull list
is synced from the given CSV export first.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			logger, logPath, err := ctx.newRunLogger(cfg)
			if err != nil {
				return err
			}
			logger.Info("logging to file", logging.String("path", logPath))

			lock := flock.New(filepath.Join(cfg.Paths.DataDir, "comicgrabr.lock"))
			locked, err := lock.TryLock()
			if err != nil {
				return fmt.Errorf("acquire run lock: %w", err)
			}
			if !locked {
				return errors.New("another comicgrabr run is already in progress")
			}
			defer func() { _ = lock.Unlock() }()

			store, err := ctx.openStore(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			notify := notifications.NewService(cfg, dryRun)
			backend := airdcpp.New(cfg, logger)
			orch := acquisition.New(cfg, store, backend, notify, logger, dryRun)

			runCtx := cmd.Context()
			if snapshotPath != "" {
				if _, err := orch.Sync(runCtx, snapshotPath); err != nil {
					return err
				}
			} else {
				count, err := store.Count(runCtx)
				if err != nil {
					return err
				}
				if count == 0 {
					return errors.New("pull list is empty; sync a snapshot first (run --snapshot FILE or comicgrabr sync FILE)")
				}
			}

			summary, err := orch.Run(runCtx, includeBacklog)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if dryRun {
				fmt.Fprintln(out, "Dry run: nothing was queued for download.")
			}
			fmt.Fprintf(out, "Processed %s: %d queued, %d skipped, %d failed.\n",
				summary.ReleaseDay.Format("2006-01-02"), summary.Queued, summary.Skipped, summary.Failed)
			fmt.Fprintf(out, "Next release day %s: %d upcoming.\n",
				summary.NextReleaseDay.Format("2006-01-02"), len(summary.Upcoming))
			if summary.Failed > 0 {
				fmt.Fprintf(out, "See %s for details.\n", logPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&snapshotPath, "snapshot", "", "Pull-list snapshot CSV to sync before running")
	cmd.Flags().BoolVar(&includeBacklog, "past", false, "Also process releases from earlier days still in the store")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Search without queueing downloads")
	return cmd
}
