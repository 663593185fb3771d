package telegram

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-telegram/bot"
)

// APIError is a failed Bot API call that carries Telegram's error code.
type APIError struct {
	Method      string
	Code        int
	Description string
	err         error
}

func (e *APIError) Error() string {
	return fmt.Sprintf("telegram %s: [%d] %s", e.Method, e.Code, e.Description)
}

func (e *APIError) Unwrap() error {
	return e.err
}

var statusErrors = []struct {
	target error
	code   int
}{
	{bot.ErrorBadRequest, http.StatusBadRequest},
	{bot.ErrorUnauthorized, http.StatusUnauthorized},
	{bot.ErrorForbidden, http.StatusForbidden},
	{bot.ErrorNotFound, http.StatusNotFound},
	{bot.ErrorConflict, http.StatusConflict},
}

// wrapAPIError converts the library's status errors into *APIError. Errors that
// did not come back from the Bot API (network, encoding) are returned as is.
func wrapAPIError(method string, err error) error {
	if err == nil {
		return nil
	}
	var tooMany *bot.TooManyRequestsError
	if errors.As(err, &tooMany) {
		return &APIError{
			Method:      method,
			Code:        http.StatusTooManyRequests,
			Description: tooMany.Message,
			err:         err,
		}
	}
	for _, s := range statusErrors {
		if errors.Is(err, s.target) {
			return &APIError{
				Method:      method,
				Code:        s.code,
				Description: err.Error(),
				err:         err,
			}
		}
	}
	return fmt.Errorf("telegram %s: %w", method, err)
}
