package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/go-telegram/bot/models"
	"github.com/spf13/cobra"

	"github.com/go-sphere/telegram-vision-bot/telegram"
)

func newWebhookCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "webhook",
		Short: "Manage the Telegram webhook registration",
	}
	cmd.AddCommand(newWebhookSetCmd(), newWebhookDeleteCmd(), newWebhookInfoCmd())
	return cmd
}

// webhookBot builds a bot that only talks to the API; no updates are handled.
func webhookBot(cmd *cobra.Command) (*telegram.Bot, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	logger, err := newLogger(os.Stderr, cfg.Logging)
	if err != nil {
		return nil, err
	}
	return telegram.NewApp(&cfg.Telegram, telegram.WithLogger(logger))
}

func newWebhookSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set",
		Short: "Register <host_address>/bot/<token> as the webhook",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := webhookBot(cmd)
			if err != nil {
				return err
			}
			return app.SetWebhook(cmd.Context())
		},
	}
}

func newWebhookDeleteCmd() *cobra.Command {
	var dropPending bool
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Remove the webhook",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := webhookBot(cmd)
			if err != nil {
				return err
			}
			if err := app.DeleteWebhook(cmd.Context(), dropPending); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), color.GreenString("webhook deleted"))
			return nil
		},
	}
	cmd.Flags().BoolVar(&dropPending, "drop-pending", false, "Discard updates Telegram has queued")
	return cmd
}

func newWebhookInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show the webhook as Telegram sees it",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := webhookBot(cmd)
			if err != nil {
				return err
			}
			info, err := app.WebhookInfo(cmd.Context())
			if err != nil {
				return err
			}
			printWebhookInfo(cmd.OutOrStdout(), info)
			return nil
		},
	}
}

func printWebhookInfo(w io.Writer, info *models.WebhookInfo) {
	bold := color.New(color.Bold).SprintFunc()
	if info.URL == "" {
		fmt.Fprintf(w, "%s %s\n", bold("URL:"), color.YellowString("not set"))
	} else {
		fmt.Fprintf(w, "%s %s\n", bold("URL:"), color.GreenString(info.URL))
	}
	fmt.Fprintf(w, "%s %d\n", bold("Pending updates:"), info.PendingUpdateCount)
	if info.LastErrorMessage != "" {
		at := time.Unix(int64(info.LastErrorDate), 0).UTC().Format(time.RFC3339)
		fmt.Fprintf(w, "%s %s (%s)\n", bold("Last error:"), color.RedString(info.LastErrorMessage), at)
	}
}
