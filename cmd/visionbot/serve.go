package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/go-sphere/telegram-vision-bot/config"
	"github.com/go-sphere/telegram-vision-bot/dispatch"
	"github.com/go-sphere/telegram-vision-bot/telegram"
	"github.com/go-sphere/telegram-vision-bot/vision"
)

type serveOptions struct {
	polling     bool
	skipWebhook bool
}

func newServeCmd() *cobra.Command {
	var opts serveOptions
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Receive updates and answer them",
		Long: `Start the webhook receiver. On startup the webhook is registered at
<host_address>/bot/<token> unless --skip-webhook is given. With --polling the
bot long-polls Telegram instead, which is handy without a public address.`,
		Example: `  # Webhook mode behind a reverse proxy
  BOT_TOKEN=<token> BOT_HOST_ADDRESS=https://bot.example.com \
  COMPUTER_VISION_API_KEY=<key> COMPUTER_VISION_API_ENDPOINT=<endpoint> \
  visionbot serve

  # Local development
  visionbot serve --config config.yaml --polling`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			logger, err := newLogger(os.Stderr, cfg.Logging)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg, logger, opts)
		},
	}
	cmd.Flags().BoolVar(&opts.polling, "polling", false, "Use long polling instead of the webhook")
	cmd.Flags().BoolVar(&opts.skipWebhook, "skip-webhook", false, "Do not register the webhook on startup")
	return cmd
}

// newBot wires the update pipeline: Telegram client, vision client and the dispatcher.
func newBot(cfg *config.Config, logger *slog.Logger, botOpts ...telegram.Option) (*telegram.Bot, error) {
	analyzer, err := vision.NewClient(&cfg.Vision)
	if err != nil {
		return nil, err
	}
	app, err := telegram.NewApp(&cfg.Telegram, append([]telegram.Option{telegram.WithLogger(logger)}, botOpts...)...)
	if err != nil {
		return nil, err
	}
	d := dispatch.New(
		app.Client(telegram.WithRateLimit(cfg.Telegram.RateLimit)),
		analyzer,
		dispatch.WithLogger(logger),
		dispatch.WithTypingDelay(cfg.Dispatch.TypingDelay),
	)
	app.Bind(d.HandleUpdate)
	return app, nil
}

func newMux(cfg *config.Config, app *telegram.Bot) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("POST "+cfg.Telegram.WebhookPath(), app.WebhookHandler())
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}

func serve(ctx context.Context, cfg *config.Config, logger *slog.Logger, opts serveOptions) error {
	app, err := newBot(cfg, logger)
	if err != nil {
		return err
	}

	if opts.polling {
		logger.Info("starting long polling")
		return app.Start(ctx)
	}

	if !opts.skipWebhook {
		if err := app.SetWebhook(ctx); err != nil {
			return fmt.Errorf("set webhook: %w", err)
		}
	}

	srv := &http.Server{
		Addr:              cfg.Server.Listen,
		Handler:           newMux(cfg, app),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		app.StartWebhook(gctx)
		return nil
	})
	g.Go(func() error {
		logger.Info("webhook server listening", slog.String("addr", cfg.Server.Listen))
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		logger.Info("shutting down")
		// the webhook stays registered; Telegram queues updates until we are back
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
