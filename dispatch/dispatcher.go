// Package dispatch routes Telegram updates to the bot's handlers.
//
// A Dispatcher holds only collaborators that are read-only after construction,
// so one instance serves concurrent updates. Every update is handled
// independently; nothing is remembered between updates.
package dispatch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-telegram/bot/models"

	"github.com/go-sphere/telegram-vision-bot/telegram"
	"github.com/go-sphere/telegram-vision-bot/vision"
)

// Messenger is the outbound Bot API surface the handlers use.
type Messenger interface {
	Send(ctx context.Context, chatID int64, m *telegram.Message) (*models.Message, error)
	SendChatAction(ctx context.Context, chatID int64, action models.ChatAction) error
	DownloadFile(ctx context.Context, fileID string) ([]byte, error)
	AnswerCallback(ctx context.Context, callbackQueryID, text string) error
	AnswerInlineQuery(ctx context.Context, inlineQueryID string, results []models.InlineQueryResult, personal bool, cacheTime int) error
}

// Analyzer classifies image content.
type Analyzer interface {
	Analyze(ctx context.Context, image []byte, features []vision.Feature) (*vision.Result, error)
}

var (
	_ Messenger = (*telegram.Client)(nil)
	_ Analyzer  = (*vision.Client)(nil)
)

// DefaultTypingDelay is how long /inline shows the typing indicator.
const DefaultTypingDelay = 500 * time.Millisecond

// Dispatcher classifies updates and runs the matching handler.
type Dispatcher struct {
	messenger   Messenger
	vision      Analyzer
	logger      *slog.Logger
	typingDelay time.Duration
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the logger handlers write to.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}

// WithTypingDelay sets the pause between the typing indicator and the inline
// keyboard. Zero disables it.
func WithTypingDelay(delay time.Duration) Option {
	return func(d *Dispatcher) {
		d.typingDelay = delay
	}
}

// New creates a Dispatcher.
func New(messenger Messenger, analyzer Analyzer, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		messenger:   messenger,
		vision:      analyzer,
		logger:      slog.Default(),
		typingDelay: DefaultTypingDelay,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Handle processes one update. It always returns: handler failures and panics
// are logged and absorbed so the transport can acknowledge the update.
func (d *Dispatcher) Handle(ctx context.Context, update *models.Update) {
	log := d.logger.With(telegram.LogAttrs(ctx)...)
	defer func() {
		if r := recover(); r != nil {
			log.ErrorContext(ctx, "handle update", slog.String("error", Normalize(fmt.Errorf("panic: %v", r))))
		}
	}()
	if err := d.dispatch(ctx, log, update); err != nil {
		log.ErrorContext(ctx, "handle update", slog.String("error", Normalize(err)))
	}
}

// HandleUpdate adapts Handle to telegram.HandlerFunc.
func (d *Dispatcher) HandleUpdate(ctx context.Context, update *telegram.Update) error {
	d.Handle(ctx, update)
	return nil
}

func (d *Dispatcher) dispatch(ctx context.Context, log *slog.Logger, update *models.Update) error {
	switch Classify(update) {
	case KindMessage:
		return d.onMessage(ctx, log, update.Message)
	case KindEditedMessage:
		return d.onMessage(ctx, log, update.EditedMessage)
	case KindCallbackQuery:
		return d.onCallbackQuery(ctx, log, update.CallbackQuery)
	case KindInlineQuery:
		return d.onInlineQuery(ctx, log, update.InlineQuery)
	case KindChosenInlineResult:
		return d.onChosenInlineResult(ctx, log, update.ChosenInlineResult)
	default:
		return d.onUnknown(ctx, log, update)
	}
}

func (d *Dispatcher) onUnknown(ctx context.Context, log *slog.Logger, update *models.Update) error {
	if update == nil {
		log.InfoContext(ctx, "unknown update type")
		return nil
	}
	log.InfoContext(ctx, "unknown update type", slog.Int64("id", update.ID))
	return nil
}
