package dispatch

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/go-sphere/telegram-vision-bot/telegram"
	"github.com/go-sphere/telegram-vision-bot/vision"
)

const photoFallback = "Photo can't be processed"

// SelectPhoto picks the variant with the largest file size. The first of equal
// sizes wins; an unknown size counts as zero.
func SelectPhoto(sizes []models.PhotoSize) (models.PhotoSize, bool) {
	if len(sizes) == 0 {
		return models.PhotoSize{}, false
	}
	best := sizes[0]
	for _, s := range sizes[1:] {
		if s.FileSize > best.FileSize {
			best = s
		}
	}
	return best, true
}

// handlePhoto replies with what the vision service sees in the photo. Any
// failure along the way is answered with a fixed fallback text, in which case
// no message is returned.
func (d *Dispatcher) handlePhoto(ctx context.Context, log *slog.Logger, msg *models.Message) (*models.Message, error) {
	photo, ok := SelectPhoto(msg.Photo)
	if !ok {
		return nil, nil
	}
	sent, err := d.describePhoto(ctx, log, msg, photo)
	if err == nil {
		return sent, nil
	}
	log.ErrorContext(ctx, "photo processing failed",
		slog.String("file_id", photo.FileID),
		slog.String("error", err.Error()),
	)
	if _, err := d.messenger.Send(ctx, msg.Chat.ID, &telegram.Message{
		Text:    photoFallback,
		ReplyTo: msg.ID,
	}); err != nil {
		return nil, err
	}
	return nil, nil
}

func (d *Dispatcher) describePhoto(ctx context.Context, log *slog.Logger, msg *models.Message, photo models.PhotoSize) (*models.Message, error) {
	image, err := d.messenger.DownloadFile(ctx, photo.FileID)
	if err != nil {
		return nil, fmt.Errorf("download photo: %w", err)
	}
	log.DebugContext(ctx, "photo downloaded",
		slog.String("file_id", photo.FileID),
		slog.Int("size", len(image)),
	)
	result, err := d.vision.Analyze(ctx, image, vision.AllFeatures())
	if err != nil {
		return nil, fmt.Errorf("analyze photo: %w", err)
	}
	if result != nil {
		log.DebugContext(ctx, "vision result", slog.String("result", string(result.Raw)))
	}
	sent, err := d.messenger.Send(ctx, msg.Chat.ID, &telegram.Message{
		Text:      FormatSummary(result),
		ParseMode: models.ParseModeMarkdown,
		ReplyTo:   msg.ID,
	})
	if err != nil {
		return nil, fmt.Errorf("send photo summary: %w", err)
	}
	return sent, nil
}

// FormatSummary renders an analysis as MarkdownV2. Missing sections render
// as empty lists.
func FormatSummary(r *vision.Result) string {
	var tags, categories, captions []string
	if r != nil {
		tags = r.Tags
		captions = r.Captions
		categories = make([]string, len(r.Categories))
		for i, c := range r.Categories {
			categories[i] = strings.ReplaceAll(c, "_", "")
		}
	}
	return fmt.Sprintf("*Tags*: %s\\. *Categories*: %s\\. *Captions*: %s\\.",
		escapeJoin(tags), escapeJoin(categories), escapeJoin(captions))
}

func escapeJoin(items []string) string {
	escaped := make([]string, len(items))
	for i, s := range items {
		escaped[i] = bot.EscapeMarkdown(s)
	}
	return strings.Join(escaped, ",")
}
