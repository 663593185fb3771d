package dispatch

import (
	"errors"
	"fmt"

	"github.com/go-sphere/telegram-vision-bot/telegram"
)

// Normalize renders a handler failure for the log. Bot API errors keep their
// status code on a line of its own.
func Normalize(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *telegram.APIError
	if errors.As(err, &apiErr) {
		return fmt.Sprintf("Telegram API Error:\n[%d]\n%s", apiErr.Code, apiErr.Description)
	}
	return err.Error()
}
