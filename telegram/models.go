package telegram

import "github.com/go-telegram/bot/models"

// Update is an alias for the Telegram bot library's Update type.
// It represents an incoming update from the Telegram Bot API.
type Update = models.Update

// ChatIDOf returns the chat a callback query's originating message belongs to.
// The message may be missing (inline-mode buttons) or inaccessible, in which case
// ok is false.
func ChatIDOf(q *models.CallbackQuery) (int64, bool) {
	if q == nil {
		return 0, false
	}
	switch {
	case q.Message.Message != nil:
		return q.Message.Message.Chat.ID, true
	case q.Message.InaccessibleMessage != nil:
		return q.Message.InaccessibleMessage.Chat.ID, true
	}
	return 0, false
}
