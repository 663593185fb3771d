package telegram

import (
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// Button is an alias for Telegram's inline keyboard button.
type Button = models.InlineKeyboardButton

// NewButton creates an inline keyboard button with text, callback route, and data.
// The route and data are marshaled together to form the callback data.
func NewButton[T any](text, route string, data T) Button {
	return Button{
		Text:         text,
		CallbackData: MarshalData(route, data),
	}
}

// NewInlineKeyboard wraps rows of inline buttons into a reply markup.
func NewInlineKeyboard(rows ...[]Button) *models.InlineKeyboardMarkup {
	return &models.InlineKeyboardMarkup{InlineKeyboard: rows}
}

// NewReplyKeyboard builds a custom reply keyboard from rows of buttons.
func NewReplyKeyboard(resize bool, rows ...[]models.KeyboardButton) *models.ReplyKeyboardMarkup {
	return &models.ReplyKeyboardMarkup{
		Keyboard:       rows,
		ResizeKeyboard: resize,
	}
}

// NewRemoveKeyboard returns the marker that hides a previously sent reply keyboard.
func NewRemoveKeyboard() *models.ReplyKeyboardRemove {
	return &models.ReplyKeyboardRemove{RemoveKeyboard: true}
}

// Message represents an outbound text message together with its send options.
type Message struct {
	Text        string             // Message text content
	ParseMode   models.ParseMode   // Text parsing mode (HTML, MarkdownV2, etc.)
	ReplyMarkup models.ReplyMarkup // Inline keyboard, reply keyboard or keyboard removal
	ReplyTo     int                // Message id to reply to, 0 for none
}

func (m *Message) toSendMessageParams(chatID int64) *bot.SendMessageParams {
	params := &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        m.Text,
		ParseMode:   m.ParseMode,
		ReplyMarkup: m.ReplyMarkup,
	}
	if m.ReplyTo != 0 {
		params.ReplyParameters = &models.ReplyParameters{
			MessageID: m.ReplyTo,
			// the replied-to message may be gone by the time this is sent
			AllowSendingWithoutReply: true,
		}
	}
	return params
}
