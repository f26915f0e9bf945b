package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"comicgrabr/internal/notifications"
)

func newTestNotifyCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "test-notify",
		Short: "Send a test notification",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if strings.TrimSpace(cfg.Discord.WebhookURL) == "" {
				fmt.Fprintln(cmd.OutOrStdout(), "No Discord webhook configured; nothing to send.")
				return nil
			}

			svc := notifications.NewService(cfg, false)
			if err := svc.TestNotification(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Test notification sent")
			return nil
		},
	}
}
