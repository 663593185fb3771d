package telegram

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// Config defines the configuration parameters for the Telegram bot.
type Config struct {
	Token       string  `json:"token" yaml:"token" env:"TOKEN"`
	HostAddress string  `json:"host_address" yaml:"host_address" env:"HOST_ADDRESS"`
	SecretToken string  `json:"secret_token" yaml:"secret_token" env:"SECRET_TOKEN"`
	Workers     int     `json:"workers" yaml:"workers" env:"WORKERS"`
	RateLimit   float64 `json:"rate_limit" yaml:"rate_limit" env:"RATE_LIMIT"`
}

// WebhookPath is the local route Telegram posts updates to. The token in the
// path keeps the endpoint unguessable.
func (c *Config) WebhookPath() string {
	return "/bot/" + c.Token
}

// WebhookURL is the public address registered with Telegram.
func (c *Config) WebhookURL() string {
	return strings.TrimSuffix(c.HostAddress, "/") + c.WebhookPath()
}

// Bot represents a Telegram bot application. It wraps the underlying bot client,
// funnels every update through one middleware-wrapped handler and exposes both
// the webhook and the long-polling transport.
type Bot struct {
	config *Config
	bot    *bot.Bot
	logger *slog.Logger

	middlewares   []MiddlewareFunc
	updateHandler bot.HandlerFunc
	errorHandler  ErrorHandlerFunc
}

// NewApp creates a new Telegram bot application with the provided configuration and options.
// Returns an error if the bot token is missing or client initialization fails.
func NewApp(config *Config, opts ...Option) (*Bot, error) {
	if config.Token == "" {
		return nil, errors.New("telegram: bot token is required")
	}
	opt := newOptions(opts...)
	app := &Bot{
		config:       config,
		logger:       opt.logger,
		middlewares:  opt.middlewares,
		errorHandler: opt.errorHandler,
	}
	app.middlewares = append(app.middlewares, NewTraceMiddleware(opt.traceExtractor))
	app.updateHandler = WithMiddleware(opt.updateHandler, app.errorHandler, app.middlewares...)

	botOptions := append(opt.botOptions,
		bot.WithDefaultHandler(
			func(ctx context.Context, bot *bot.Bot, update *models.Update) {
				app.updateHandler(ctx, bot, update)
			},
		),
		bot.WithErrorsHandler(func(err error) {
			app.logger.Error("telegram client error", slog.String("error", err.Error()))
		}),
	)
	if config.SecretToken != "" {
		botOptions = append(botOptions, bot.WithWebhookSecretToken(config.SecretToken))
	}
	if config.Workers > 0 {
		botOptions = append(botOptions, bot.WithWorkers(config.Workers))
	}
	client, err := bot.New(config.Token, botOptions...)
	if err != nil {
		return nil, err
	}
	app.bot = client
	return app, nil
}

// API returns the underlying Telegram bot client for direct API access.
func (b *Bot) API() *bot.Bot {
	return b.bot
}

// Client returns a rate-limited outbound client sharing this bot's connection.
func (b *Bot) Client(opts ...ClientOption) *Client {
	return NewClient(b.bot, opts...)
}

// Bind replaces the handler every update is routed to. Middlewares given here
// run after the application-wide ones.
func (b *Bot) Bind(handlerFunc HandlerFunc, middlewares ...MiddlewareFunc) {
	mid := make([]MiddlewareFunc, 0, len(middlewares)+len(b.middlewares))
	mid = append(mid, b.middlewares...)
	mid = append(mid, middlewares...)
	b.updateHandler = WithMiddleware(handlerFunc, b.errorHandler, mid...)
}

// WebhookHandler returns the HTTP handler that accepts updates posted by Telegram.
// Updates are queued for the workers started by StartWebhook.
func (b *Bot) WebhookHandler() http.HandlerFunc {
	return b.bot.WebhookHandler()
}

// StartWebhook runs the update workers until ctx is cancelled.
func (b *Bot) StartWebhook(ctx context.Context) {
	b.bot.StartWebhook(ctx)
}

// Start begins long polling. It removes any existing webhook first, since
// Telegram refuses getUpdates while one is set. Blocks until ctx is cancelled.
func (b *Bot) Start(ctx context.Context) error {
	if err := b.DeleteWebhook(ctx, false); err != nil {
		return err
	}
	b.bot.Start(ctx)
	return nil
}

// SetWebhook registers the configured public URL with Telegram.
func (b *Bot) SetWebhook(ctx context.Context) error {
	if b.config.HostAddress == "" {
		return errors.New("telegram: host address is required to set the webhook")
	}
	b.logger.InfoContext(ctx, "setting webhook", slog.String("host", b.config.HostAddress))
	_, err := b.bot.SetWebhook(ctx, &bot.SetWebhookParams{
		URL:            b.config.WebhookURL(),
		SecretToken:    b.config.SecretToken,
		AllowedUpdates: AllUpdateTypes,
	})
	if err != nil {
		return wrapAPIError("setWebhook", err)
	}
	b.logger.InfoContext(ctx, "setting webhook success")
	return nil
}

// DeleteWebhook removes the webhook registration.
func (b *Bot) DeleteWebhook(ctx context.Context, dropPending bool) error {
	_, err := b.bot.DeleteWebhook(ctx, &bot.DeleteWebhookParams{DropPendingUpdates: dropPending})
	return wrapAPIError("deleteWebhook", err)
}

// WebhookInfo reports the webhook registration as Telegram sees it.
func (b *Bot) WebhookInfo(ctx context.Context) (*models.WebhookInfo, error) {
	info, err := b.bot.GetWebhookInfo(ctx)
	if err != nil {
		return nil, wrapAPIError("getWebhookInfo", err)
	}
	return info, nil
}
