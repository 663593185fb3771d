package dispatch

import (
	"errors"
	"sync"
	"testing"

	"github.com/go-telegram/bot/models"

	"github.com/go-sphere/telegram-vision-bot/telegram"
)

func TestParseCommand(t *testing.T) {
	tests := map[string]Command{
		"/inline":            CommandInline,
		"/keyboard":          CommandKeyboard,
		"/remove":            CommandRemove,
		"/request":           CommandRequest,
		"/remove now please": CommandRemove,
		"/inline\tmore":      CommandInline,
		"/Remove":            CommandUsage,
		"/REQUEST":           CommandUsage,
		"/remove!":           CommandUsage,
		"/keyboard,":         CommandUsage,
		" /remove":           CommandUsage,
		"hello":              CommandUsage,
		"/start":             CommandUsage,
	}
	for text, want := range tests {
		if got := ParseCommand(text); got != want {
			t.Errorf("ParseCommand(%q) = %q, want %q", text, got, want)
		}
	}
}

func TestTypeOf(t *testing.T) {
	photo := []models.PhotoSize{{FileID: "a"}}
	if got := TypeOf(&models.Message{Photo: photo, Caption: "/remove"}); got != MessagePhoto {
		t.Errorf("photo with caption = %s", got)
	}
	if got := TypeOf(&models.Message{Text: "hi"}); got != MessageText {
		t.Errorf("text = %s", got)
	}
	if got := TypeOf(&models.Message{Sticker: &models.Sticker{FileID: "s"}}); got != MessageOther {
		t.Errorf("sticker = %s", got)
	}
}

func TestRemoveKeyboard(t *testing.T) {
	m := &fakeMessenger{}
	d := newTestDispatcher(m, &fakeAnalyzer{})

	sent, err := d.route(t.Context(), textUpdate("/remove").Message)
	if err != nil {
		t.Fatalf("route: %v", err)
	}
	if len(m.sent) != 1 {
		t.Fatalf("sent %d messages, want 1", len(m.sent))
	}
	got := m.sent[0]
	if got.chatID != 42 {
		t.Errorf("chatID = %d, want 42", got.chatID)
	}
	if got.msg.Text != "Removing keyboard" {
		t.Errorf("text = %q", got.msg.Text)
	}
	remove, ok := got.msg.ReplyMarkup.(*models.ReplyKeyboardRemove)
	if !ok || !remove.RemoveKeyboard {
		t.Errorf("reply markup = %#v, want keyboard removal", got.msg.ReplyMarkup)
	}
	if sent.ID != 1001 {
		t.Errorf("returned id = %d, want the id from send", sent.ID)
	}
}

func TestRouteCommands(t *testing.T) {
	tests := []struct {
		text     string
		wantText string
		check    func(t *testing.T, markup models.ReplyMarkup)
	}{
		{"/keyboard", "Choose", func(t *testing.T, markup models.ReplyMarkup) {
			kb, ok := markup.(*models.ReplyKeyboardMarkup)
			if !ok || len(kb.Keyboard) != 2 || !kb.ResizeKeyboard {
				t.Errorf("markup = %#v", markup)
			}
		}},
		{"/request", "Who or Where are you?", func(t *testing.T, markup models.ReplyMarkup) {
			kb, ok := markup.(*models.ReplyKeyboardMarkup)
			if !ok || len(kb.Keyboard) != 1 || len(kb.Keyboard[0]) != 2 {
				t.Fatalf("markup = %#v", markup)
			}
			if !kb.Keyboard[0][0].RequestLocation || !kb.Keyboard[0][1].RequestContact {
				t.Errorf("buttons = %#v", kb.Keyboard[0])
			}
		}},
		{"/Remove", usage, func(t *testing.T, markup models.ReplyMarkup) {
			if _, ok := markup.(*models.ReplyKeyboardRemove); !ok {
				t.Errorf("markup = %#v", markup)
			}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			m := &fakeMessenger{}
			d := newTestDispatcher(m, &fakeAnalyzer{})
			d.Handle(t.Context(), textUpdate(tt.text))
			if len(m.sent) != 1 {
				t.Fatalf("sent %d messages, want 1", len(m.sent))
			}
			if m.sent[0].msg.Text != tt.wantText {
				t.Errorf("text = %q, want %q", m.sent[0].msg.Text, tt.wantText)
			}
			tt.check(t, m.sent[0].msg.ReplyMarkup)
		})
	}
}

func TestInlineKeyboard(t *testing.T) {
	m := &fakeMessenger{}
	d := newTestDispatcher(m, &fakeAnalyzer{})

	d.Handle(t.Context(), textUpdate("/inline"))

	if len(m.actions) != 1 || m.actions[0] != models.ChatActionTyping {
		t.Errorf("actions = %v, want one typing action", m.actions)
	}
	if len(m.sent) != 1 {
		t.Fatalf("sent %d messages, want 1", len(m.sent))
	}
	kb, ok := m.sent[0].msg.ReplyMarkup.(*models.InlineKeyboardMarkup)
	if !ok || len(kb.InlineKeyboard) != 2 {
		t.Fatalf("markup = %#v", m.sent[0].msg.ReplyMarkup)
	}
	button := kb.InlineKeyboard[1][0]
	if button.Text != "2.1" {
		t.Errorf("button text = %q", button.Text)
	}
	if got := callbackLabel(button.CallbackData); got != "2.1" {
		t.Errorf("callback label = %q, want 2.1", got)
	}
}

func TestNonTextMessageIsIgnored(t *testing.T) {
	m := &fakeMessenger{}
	d := newTestDispatcher(m, &fakeAnalyzer{})

	d.Handle(t.Context(), &models.Update{Message: &models.Message{
		ID:      3,
		Chat:    models.Chat{ID: 42},
		Sticker: &models.Sticker{FileID: "s"},
	}})

	if len(m.sent) != 0 || len(m.actions) != 0 {
		t.Errorf("unexpected outbound calls: sent=%d actions=%d", len(m.sent), len(m.actions))
	}
}

func TestEditedMessageIsRouted(t *testing.T) {
	m := &fakeMessenger{}
	d := newTestDispatcher(m, &fakeAnalyzer{})

	d.Handle(t.Context(), &models.Update{EditedMessage: textUpdate("/remove").Message})

	if len(m.sent) != 1 || m.sent[0].msg.Text != "Removing keyboard" {
		t.Errorf("sent = %+v", m.sent)
	}
}

func TestHandleTwiceSendsTwice(t *testing.T) {
	m := &fakeMessenger{}
	d := newTestDispatcher(m, &fakeAnalyzer{})
	update := textUpdate("/remove")

	d.Handle(t.Context(), update)
	d.Handle(t.Context(), update)

	if len(m.sent) != 2 {
		t.Errorf("sent %d messages, want 2", len(m.sent))
	}
}

func TestHandleConcurrent(t *testing.T) {
	m := &fakeMessenger{}
	d := newTestDispatcher(m, &fakeAnalyzer{})

	var wg sync.WaitGroup
	for range 20 {
		wg.Go(func() {
			d.Handle(t.Context(), textUpdate("/keyboard"))
		})
	}
	wg.Wait()

	if len(m.sent) != 20 {
		t.Errorf("sent %d messages, want 20", len(m.sent))
	}
}

func TestHandleAbsorbsSendErrors(t *testing.T) {
	m := &fakeMessenger{sendErr: &telegram.APIError{Method: "sendMessage", Code: 403, Description: "Forbidden: bot was blocked by the user"}}
	d := newTestDispatcher(m, &fakeAnalyzer{})

	d.Handle(t.Context(), textUpdate("/remove"))
	d.Handle(t.Context(), textUpdate("/keyboard"))

	if len(m.sent) != 2 {
		t.Errorf("attempted %d sends, want 2", len(m.sent))
	}
}

func TestHandleRecoversPanics(t *testing.T) {
	d := New(nil, nil, WithLogger(testLogger()), WithTypingDelay(0))

	// nil messenger makes the handler panic
	d.Handle(t.Context(), textUpdate("/remove"))
}

func TestNormalize(t *testing.T) {
	apiErr := &telegram.APIError{Method: "sendMessage", Code: 400, Description: "Bad Request: chat not found"}
	got := Normalize(errors.Join(errors.New("send"), apiErr))
	want := "Telegram API Error:\n[400]\nBad Request: chat not found"
	if got != want {
		t.Errorf("Normalize(api) = %q, want %q", got, want)
	}
	if got := Normalize(errors.New("boom")); got != "boom" {
		t.Errorf("Normalize(generic) = %q", got)
	}
	if got := Normalize(nil); got != "" {
		t.Errorf("Normalize(nil) = %q", got)
	}
}
