package dispatch

import (
	"context"
	"log/slog"

	"github.com/go-telegram/bot/models"

	"github.com/go-sphere/telegram-vision-bot/telegram"
)

// onCallbackQuery acknowledges a button press and echoes it to the chat the
// button was in. Buttons on inline-mode messages have no chat.
func (d *Dispatcher) onCallbackQuery(ctx context.Context, log *slog.Logger, q *models.CallbackQuery) error {
	text := "Received " + callbackLabel(q.Data)
	if err := d.messenger.AnswerCallback(ctx, q.ID, text); err != nil {
		return err
	}
	chatID, ok := telegram.ChatIDOf(q)
	if !ok {
		log.DebugContext(ctx, "callback query without chat", slog.String("callback_query_id", q.ID))
		return nil
	}
	_, err := d.messenger.Send(ctx, chatID, &telegram.Message{Text: text})
	return err
}

// callbackLabel returns the button label for presses on the /inline keyboard
// and the raw payload for anything else.
func callbackLabel(data string) string {
	route, choice, err := telegram.UnmarshalData[keyboardChoice](data)
	if err != nil || route != pickRoute || choice.Label == "" {
		return data
	}
	return choice.Label
}

func (d *Dispatcher) onInlineQuery(ctx context.Context, log *slog.Logger, q *models.InlineQuery) error {
	if q.From != nil {
		log.InfoContext(ctx, "received inline query", slog.Int64("from_id", q.From.ID))
	}
	results := []models.InlineQueryResult{
		&models.InlineQueryResultArticle{
			ID:    "3",
			Title: "TgBots",
			InputMessageContent: &models.InputTextMessageContent{
				MessageText: "hello",
			},
		},
	}
	return d.messenger.AnswerInlineQuery(ctx, q.ID, results, true, 0)
}

func (d *Dispatcher) onChosenInlineResult(ctx context.Context, log *slog.Logger, r *models.ChosenInlineResult) error {
	log.InfoContext(ctx, "received inline result", slog.String("result_id", r.ResultID))
	return nil
}
