package telegram

import (
	"context"

	"github.com/go-telegram/bot/models"
	"github.com/google/uuid"
)

const (
	traceKeyID     = "trace_id"
	traceKeyUpdate = "update_id"
	traceKeyUser   = "user_id"
)

// TraceExtractor collects the values attached to the context of one update.
type TraceExtractor interface {
	ExtractTrace(ctx context.Context, update *Update) (map[string]any, error)
}

// TraceExtractorFunc is a function type that implements the TraceExtractor interface.
type TraceExtractorFunc func(ctx context.Context, update *Update) (map[string]any, error)

// ExtractTrace implements the TraceExtractor interface by calling the function.
func (f TraceExtractorFunc) ExtractTrace(ctx context.Context, update *Update) (map[string]any, error) {
	return f(ctx, update)
}

// NewTraceMiddleware creates a middleware that injects the extracted values into
// the request context. Downstream handlers read them back through LogAttrs.
func NewTraceMiddleware(extractor TraceExtractor) MiddlewareFunc {
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, update *Update) error {
			info, err := extractor.ExtractTrace(ctx, update)
			if err != nil {
				return err
			}
			return next(contextWithValues(ctx, info), update)
		}
	}
}

// DefaultTraceExtractor tags every update with a fresh trace id, the update id
// and, when the update has a sender, the sender's user id.
func DefaultTraceExtractor(ctx context.Context, update *Update) (map[string]any, error) {
	info := map[string]any{
		traceKeyID:     uuid.NewString(),
		traceKeyUpdate: update.ID,
	}
	if user := senderOf(update); user != nil {
		info[traceKeyUser] = user.ID
	}
	return info, nil
}

func senderOf(update *Update) *models.User {
	switch {
	case update.Message != nil:
		return update.Message.From
	case update.EditedMessage != nil:
		return update.EditedMessage.From
	case update.CallbackQuery != nil:
		return &update.CallbackQuery.From
	case update.InlineQuery != nil:
		return update.InlineQuery.From
	}
	return nil
}

// LogAttrs returns the trace values stored in ctx as slog key/value pairs.
func LogAttrs(ctx context.Context) []any {
	var attrs []any
	for _, key := range []string{traceKeyID, traceKeyUpdate, traceKeyUser} {
		if v := ctx.Value(key); v != nil {
			attrs = append(attrs, key, v)
		}
	}
	return attrs
}
