package telegram

import (
	"context"
	"log/slog"

	"github.com/go-telegram/bot"
)

// options holds configuration options for creating a Telegram bot application.
type options struct {
	logger         *slog.Logger       // Logger shared with the default handlers
	updateHandler  HandlerFunc        // Handler every update is routed to
	errorHandler   ErrorHandlerFunc   // Handler for processing errors
	traceExtractor TraceExtractorFunc // Function to extract per-update trace values

	botOptions  []bot.Option     // Options to pass to the underlying bot client
	middlewares []MiddlewareFunc // Middleware functions to apply to handlers
}

// Option defines a function type for configuring bot application options.
type Option = func(*options)

func newOptions(opts ...Option) *options {
	defaults := &options{
		logger:         slog.Default(),
		traceExtractor: DefaultTraceExtractor,
		middlewares:    []MiddlewareFunc{},
	}
	for _, opt := range opts {
		opt(defaults)
	}
	if defaults.updateHandler == nil {
		logger := defaults.logger
		defaults.updateHandler = func(ctx context.Context, update *Update) error {
			logger.InfoContext(ctx, "receive update", LogAttrs(ctx)...)
			return nil
		}
	}
	if defaults.errorHandler == nil {
		logger := defaults.logger
		defaults.errorHandler = func(ctx context.Context, _ *bot.Bot, update *Update, err error) {
			logger.ErrorContext(ctx, "handle update failed",
				slog.Int64("update_id", update.ID),
				slog.String("error", err.Error()),
			)
		}
	}
	// recovery is outermost so it also covers the library's own middlewares
	defaults.botOptions = append([]bot.Option{
		bot.WithSkipGetMe(),
		bot.WithMiddlewares(NewRecoveryMiddleware(defaults.logger)),
	}, defaults.botOptions...)
	return defaults
}

// WithLogger sets the logger used by the default update, error and panic handlers.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithUpdateHandler sets the handler every incoming update is routed to.
func WithUpdateHandler(fn HandlerFunc) Option {
	return func(o *options) {
		o.updateHandler = fn
	}
}

// WithErrorHandler sets a custom error handler for bot operations.
// The error handler will be called whenever the update handler returns an error.
func WithErrorHandler(fn ErrorHandlerFunc) Option {
	return func(o *options) {
		o.errorHandler = fn
	}
}

// WithTraceExtractor sets the function that derives per-update trace values.
func WithTraceExtractor(extractor TraceExtractorFunc) Option {
	return func(o *options) {
		o.traceExtractor = extractor
	}
}

// AppendBotOptions adds additional options to the underlying bot client configuration.
// These options will be passed directly to the bot.New() constructor.
func AppendBotOptions(opt ...bot.Option) Option {
	return func(o *options) {
		o.botOptions = append(o.botOptions, opt...)
	}
}

// AppendMiddlewares adds middleware functions to the bot application.
// Middleware will be applied to all handlers in the order they are provided.
func AppendMiddlewares(middlewares ...MiddlewareFunc) Option {
	return func(o *options) {
		o.middlewares = append(o.middlewares, middlewares...)
	}
}

// AllUpdateTypes is the allowed_updates list used when registering the webhook.
var AllUpdateTypes = []string{
	"message",
	"edited_message",
	"callback_query",
	"inline_query",
	"chosen_inline_result",
}
