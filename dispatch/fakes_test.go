package dispatch

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/go-telegram/bot/models"

	"github.com/go-sphere/telegram-vision-bot/telegram"
	"github.com/go-sphere/telegram-vision-bot/vision"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type sentMessage struct {
	chatID int64
	msg    *telegram.Message
}

type answeredInline struct {
	id        string
	results   []models.InlineQueryResult
	personal  bool
	cacheTime int
}

type fakeMessenger struct {
	mu sync.Mutex

	nextID    int
	sent      []sentMessage
	actions   []models.ChatAction
	downloads []string
	callbacks []string
	inline    []answeredInline

	sendErr     error
	downloadErr error
	file        []byte
}

func (f *fakeMessenger) Send(_ context.Context, chatID int64, m *telegram.Message) (*models.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentMessage{chatID: chatID, msg: m})
	if f.sendErr != nil {
		return nil, f.sendErr
	}
	f.nextID++
	return &models.Message{ID: 1000 + f.nextID, Chat: models.Chat{ID: chatID}, Text: m.Text}, nil
}

func (f *fakeMessenger) SendChatAction(_ context.Context, _ int64, action models.ChatAction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.actions = append(f.actions, action)
	return nil
}

func (f *fakeMessenger) DownloadFile(_ context.Context, fileID string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.downloads = append(f.downloads, fileID)
	if f.downloadErr != nil {
		return nil, f.downloadErr
	}
	if f.file == nil {
		return []byte("jpeg"), nil
	}
	return f.file, nil
}

func (f *fakeMessenger) AnswerCallback(_ context.Context, id, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.callbacks = append(f.callbacks, id+"|"+text)
	return nil
}

func (f *fakeMessenger) AnswerInlineQuery(_ context.Context, id string, results []models.InlineQueryResult, personal bool, cacheTime int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inline = append(f.inline, answeredInline{id: id, results: results, personal: personal, cacheTime: cacheTime})
	return nil
}

type fakeAnalyzer struct {
	mu     sync.Mutex
	calls  int
	images [][]byte
	result *vision.Result
	err    error
}

func (f *fakeAnalyzer) Analyze(_ context.Context, image []byte, features []vision.Feature) (*vision.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.images = append(f.images, image)
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func newTestDispatcher(m *fakeMessenger, a *fakeAnalyzer) *Dispatcher {
	return New(m, a, WithLogger(testLogger()), WithTypingDelay(0))
}

func textUpdate(text string) *models.Update {
	return &models.Update{
		ID: 1,
		Message: &models.Message{
			ID:   10,
			Chat: models.Chat{ID: 42},
			Text: text,
		},
	}
}
