package telegram

import (
	"context"
	"log/slog"
	"runtime/debug"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

type (
	// HandlerFunc defines a function type for handling Telegram bot updates.
	// It processes an Update and returns an error if processing fails.
	HandlerFunc = func(ctx context.Context, update *Update) error
	// MiddlewareFunc defines a function type for creating middleware that wraps HandlerFunc.
	MiddlewareFunc = func(next HandlerFunc) HandlerFunc
)

type (
	// ErrorHandlerFunc defines a function type for handling errors that occur during update processing.
	// It receives the error along with the bot instance and update that caused the error.
	ErrorHandlerFunc = func(ctx context.Context, bot *bot.Bot, update *Update, err error)
)

// WithMiddleware wraps a HandlerFunc with middleware chain and error handling.
// It applies middleware in reverse order and converts the result to a bot.HandlerFunc.
// If the wrapped handler returns an error, it calls the provided error handler.
func WithMiddleware(h HandlerFunc, e ErrorHandlerFunc, middleware ...MiddlewareFunc) bot.HandlerFunc {
	handler := h
	for i := len(middleware) - 1; i >= 0; i-- {
		handler = middleware[i](handler) //nolint:nilaway
	}
	return func(ctx context.Context, bot *bot.Bot, update *models.Update) {
		if err := handler(ctx, update); err != nil {
			if e != nil {
				e(ctx, bot, update, err)
			}
		}
	}
}

// NewRecoveryMiddleware creates a middleware that recovers from panics in bot handlers.
// It logs any panic that occurs during update processing and prevents the bot from crashing.
func NewRecoveryMiddleware(logger *slog.Logger) bot.Middleware {
	return func(next bot.HandlerFunc) bot.HandlerFunc {
		return func(ctx context.Context, bot *bot.Bot, update *models.Update) {
			defer func() {
				if r := recover(); r != nil {
					logger.Error("panic recovered in bot handler",
						slog.Any("error", r),
						slog.Int64("update_id", update.ID),
						slog.String("stack", string(debug.Stack())),
					)
				}
			}()
			next(ctx, bot, update)
		}
	}
}
