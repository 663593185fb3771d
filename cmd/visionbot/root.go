package main

import (
	"github.com/spf13/cobra"

	"github.com/go-sphere/telegram-vision-bot/config"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "visionbot",
		Short: "Telegram bot that describes photos with Azure Computer Vision",
		Long: `visionbot receives Telegram updates on a webhook, answers a few keyboard
demo commands and replies to photos with the tags, categories and captions
Azure Computer Vision finds in them.

Settings come from an optional YAML file (--config) and the environment,
for example BOT_TOKEN, BOT_HOST_ADDRESS, COMPUTER_VISION_API_KEY and
COMPUTER_VISION_API_ENDPOINT. The environment wins.`,
		SilenceUsage: true,
	}
	cmd.PersistentFlags().String("config", "", "Config file path (optional).")

	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newWebhookCmd())
	return cmd
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	return config.Load(path)
}
