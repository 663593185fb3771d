package dispatch

import "github.com/go-telegram/bot/models"

// UpdateKind names the payload an update carries.
type UpdateKind int

const (
	KindUnknown UpdateKind = iota
	KindMessage
	KindEditedMessage
	KindCallbackQuery
	KindInlineQuery
	KindChosenInlineResult
)

func (k UpdateKind) String() string {
	switch k {
	case KindMessage:
		return "message"
	case KindEditedMessage:
		return "edited_message"
	case KindCallbackQuery:
		return "callback_query"
	case KindInlineQuery:
		return "inline_query"
	case KindChosenInlineResult:
		return "chosen_inline_result"
	default:
		return "unknown"
	}
}

// Classify returns the kind of the first populated payload, in Bot API field
// order. Updates with none of the handled payloads (channel posts, polls,
// payments, a nil update) are KindUnknown.
func Classify(update *models.Update) UpdateKind {
	switch {
	case update == nil:
		return KindUnknown
	case update.Message != nil:
		return KindMessage
	case update.EditedMessage != nil:
		return KindEditedMessage
	case update.CallbackQuery != nil:
		return KindCallbackQuery
	case update.InlineQuery != nil:
		return KindInlineQuery
	case update.ChosenInlineResult != nil:
		return KindChosenInlineResult
	default:
		return KindUnknown
	}
}
