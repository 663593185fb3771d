package telegram

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"golang.org/x/time/rate"
)

// DefaultRateLimit is the Bot API's documented global send budget per second.
const DefaultRateLimit = 30

// Client is the outbound side of the bot: every call the update handlers make
// against the Bot API goes through it. It is safe for concurrent use.
type Client struct {
	bot      *bot.Bot
	limiter  *rate.Limiter
	download *resty.Client
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithRateLimit sets how many API calls per second the client issues.
// A non-positive value disables throttling.
func WithRateLimit(perSecond float64) ClientOption {
	return func(c *Client) {
		if perSecond <= 0 {
			c.limiter = nil
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(perSecond), max(1, int(perSecond)))
	}
}

// NewClient wraps an initialised bot client.
func NewClient(b *bot.Bot, opts ...ClientOption) *Client {
	c := &Client{
		bot:      b,
		limiter:  rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		download: resty.New().SetTimeout(time.Minute),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) wait(ctx context.Context) error {
	if c.limiter == nil {
		return nil
	}
	return c.limiter.Wait(ctx)
}

// Send sends m to chatID and returns the message Telegram created.
func (c *Client) Send(ctx context.Context, chatID int64, m *Message) (*models.Message, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}
	sent, err := c.bot.SendMessage(ctx, m.toSendMessageParams(chatID))
	if err != nil {
		return nil, wrapAPIError("sendMessage", err)
	}
	return sent, nil
}

// SendChatAction shows a status such as "typing" in the chat.
func (c *Client) SendChatAction(ctx context.Context, chatID int64, action models.ChatAction) error {
	if err := c.wait(ctx); err != nil {
		return err
	}
	_, err := c.bot.SendChatAction(ctx, &bot.SendChatActionParams{
		ChatID: chatID,
		Action: action,
	})
	return wrapAPIError("sendChatAction", err)
}

// DownloadFile resolves fileID to a download link and fetches its content.
func (c *Client) DownloadFile(ctx context.Context, fileID string) ([]byte, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}
	file, err := c.bot.GetFile(ctx, &bot.GetFileParams{FileID: fileID})
	if err != nil {
		return nil, wrapAPIError("getFile", err)
	}
	resp, err := c.download.R().
		SetContext(ctx).
		Get(c.bot.FileDownloadLink(file))
	if err != nil {
		return nil, fmt.Errorf("download file %s: %w", file.FileID, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("download file %s: unexpected status %d", file.FileID, resp.StatusCode())
	}
	return resp.Body(), nil
}

// AnswerCallback acknowledges a callback query so the client hides its spinner.
func (c *Client) AnswerCallback(ctx context.Context, callbackQueryID, text string) error {
	if err := c.wait(ctx); err != nil {
		return err
	}
	_, err := c.bot.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackQueryID,
		Text:            text,
	})
	return wrapAPIError("answerCallbackQuery", err)
}

// AnswerInlineQuery replies to an inline query with results.
func (c *Client) AnswerInlineQuery(ctx context.Context, inlineQueryID string, results []models.InlineQueryResult, personal bool, cacheTime int) error {
	if err := c.wait(ctx); err != nil {
		return err
	}
	_, err := c.bot.AnswerInlineQuery(ctx, &bot.AnswerInlineQueryParams{
		InlineQueryID: inlineQueryID,
		Results:       results,
		IsPersonal:    personal,
		CacheTime:     cacheTime,
	})
	return wrapAPIError("answerInlineQuery", err)
}
