package bot

import (
	"context"
	"strings"

	"docanalyzer/internal/analyzer"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func (b *Bot) handleMessage(ctx context.Context, message *tgbotapi.Message) error {
	return b.withSpinner(ctx, message.Chat.ID, func() error {
		if message.Document != nil {
			return b.handleDocument(ctx, message)
		}

		text := strings.TrimSpace(message.Text)

		switch {
		case strings.HasPrefix(text, "/start"):
			return b.handleStartCommand(message.Chat.ID)
		case strings.HasPrefix(text, "/help"):
			return b.handleStartCommand(message.Chat.ID)
		case strings.HasPrefix(text, "/clear"):
			return b.handleClearCommand(message.Chat.ID)
		default:
			return b.analyze(ctx, message.Chat.ID, analyzer.Request{Text: message.Text})
		}
	})
}

func (b *Bot) handleDocument(ctx context.Context, message *tgbotapi.Message) error {
	upload, err := b.fetchDocument(ctx, message.Document)
	if err != nil {
		b.log.WarnContext(ctx, "Failed to fetch document",
			"error", err,
			"chatID", message.Chat.ID,
			"fileName", message.Document.FileName)

		return b.sendMarkdown(message.Chat.ID, "❌ "+escapeMarkdownV2(fetchErrorText(err)))
	}

	// The caption is passed along but the file takes precedence.
	return b.analyze(ctx, message.Chat.ID, analyzer.Request{
		Text: message.Caption,
		File: upload,
	})
}
