package dispatch

import (
	"context"
	"log/slog"
	"strings"
	"time"
	"unicode"

	"github.com/go-telegram/bot/models"

	"github.com/go-sphere/telegram-vision-bot/telegram"
)

// MessageType is the content class the router switches on.
type MessageType int

const (
	MessageOther MessageType = iota
	MessageText
	MessagePhoto
)

func (t MessageType) String() string {
	switch t {
	case MessageText:
		return "text"
	case MessagePhoto:
		return "photo"
	default:
		return "other"
	}
}

// TypeOf classifies a message. A photo with a caption is a photo.
func TypeOf(m *models.Message) MessageType {
	switch {
	case len(m.Photo) > 0:
		return MessagePhoto
	case m.Text != "":
		return MessageText
	default:
		return MessageOther
	}
}

// Command is the first token of a text message.
type Command string

const (
	CommandInline   Command = "/inline"
	CommandKeyboard Command = "/keyboard"
	CommandRemove   Command = "/remove"
	CommandRequest  Command = "/request"
	// CommandUsage stands for every token that is not a known command.
	CommandUsage Command = ""
)

// ParseCommand returns the command named by the text up to its first whitespace.
// Matching is exact and case-sensitive.
func ParseCommand(text string) Command {
	token := text
	if i := strings.IndexFunc(text, unicode.IsSpace); i >= 0 {
		token = text[:i]
	}
	switch c := Command(token); c {
	case CommandInline, CommandKeyboard, CommandRemove, CommandRequest:
		return c
	default:
		return CommandUsage
	}
}

const usage = "Usage:\n" +
	"/inline   - send inline keyboard\n" +
	"/keyboard - send custom keyboard\n" +
	"/remove   - remove custom keyboard\n" +
	"/request  - request location or contact"

// pickRoute prefixes the callback data of the /inline keyboard buttons.
const pickRoute = "pick"

type keyboardChoice struct {
	Label string `json:"label"`
}

func (d *Dispatcher) onMessage(ctx context.Context, log *slog.Logger, msg *models.Message) error {
	kind := TypeOf(msg)
	log.InfoContext(ctx, "receive message", slog.String("type", kind.String()))

	var (
		sent *models.Message
		err  error
	)
	switch kind {
	case MessagePhoto:
		sent, err = d.handlePhoto(ctx, log, msg)
	case MessageText:
		sent, err = d.route(ctx, msg)
	default:
		// stickers, documents, locations and the like get no reply
		return nil
	}
	if err != nil {
		return err
	}
	if sent != nil {
		log.InfoContext(ctx, "message sent", slog.Int("sent_message_id", sent.ID))
	}
	return nil
}

func (d *Dispatcher) route(ctx context.Context, msg *models.Message) (*models.Message, error) {
	switch ParseCommand(msg.Text) {
	case CommandInline:
		return d.sendInlineKeyboard(ctx, msg)
	case CommandKeyboard:
		return d.sendReplyKeyboard(ctx, msg)
	case CommandRemove:
		return d.removeKeyboard(ctx, msg)
	case CommandRequest:
		return d.requestContactAndLocation(ctx, msg)
	default:
		return d.sendUsage(ctx, msg)
	}
}

// sendInlineKeyboard answers with buttons whose presses come back as callback queries.
func (d *Dispatcher) sendInlineKeyboard(ctx context.Context, msg *models.Message) (*models.Message, error) {
	if err := d.messenger.SendChatAction(ctx, msg.Chat.ID, models.ChatActionTyping); err != nil {
		return nil, err
	}
	if d.typingDelay > 0 {
		select {
		case <-time.After(d.typingDelay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	keyboard := telegram.NewInlineKeyboard(
		[]telegram.Button{pickButton("1.1"), pickButton("1.2")},
		[]telegram.Button{pickButton("2.1"), pickButton("2.2")},
	)
	return d.messenger.Send(ctx, msg.Chat.ID, &telegram.Message{
		Text:        "Choose",
		ReplyMarkup: keyboard,
	})
}

func pickButton(label string) telegram.Button {
	return telegram.NewButton(label, pickRoute, keyboardChoice{Label: label})
}

func (d *Dispatcher) sendReplyKeyboard(ctx context.Context, msg *models.Message) (*models.Message, error) {
	keyboard := telegram.NewReplyKeyboard(true,
		[]models.KeyboardButton{{Text: "1.1"}, {Text: "1.2"}},
		[]models.KeyboardButton{{Text: "2.1"}, {Text: "2.2"}},
	)
	return d.messenger.Send(ctx, msg.Chat.ID, &telegram.Message{
		Text:        "Choose",
		ReplyMarkup: keyboard,
	})
}

func (d *Dispatcher) removeKeyboard(ctx context.Context, msg *models.Message) (*models.Message, error) {
	return d.messenger.Send(ctx, msg.Chat.ID, &telegram.Message{
		Text:        "Removing keyboard",
		ReplyMarkup: telegram.NewRemoveKeyboard(),
	})
}

func (d *Dispatcher) requestContactAndLocation(ctx context.Context, msg *models.Message) (*models.Message, error) {
	keyboard := telegram.NewReplyKeyboard(false, []models.KeyboardButton{
		{Text: "Location", RequestLocation: true},
		{Text: "Contact", RequestContact: true},
	})
	return d.messenger.Send(ctx, msg.Chat.ID, &telegram.Message{
		Text:        "Who or Where are you?",
		ReplyMarkup: keyboard,
	})
}

func (d *Dispatcher) sendUsage(ctx context.Context, msg *models.Message) (*models.Message, error) {
	return d.messenger.Send(ctx, msg.Chat.ID, &telegram.Message{
		Text:        usage,
		ReplyMarkup: telegram.NewRemoveKeyboard(),
	})
}
