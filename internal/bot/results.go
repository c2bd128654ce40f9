package bot

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf16"

	"docanalyzer/internal/analyzer"
	"docanalyzer/internal/view"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	telegramMessageMaxLength = 4096
	longResultCaption        = "The result does not fit into a message, here it is as a file."
)

func (b *Bot) analyze(ctx context.Context, chatID int64, req analyzer.Request) error {
	analysis, err := b.svc.Analyze(ctx, req)
	if err != nil {
		b.log.WarnContext(ctx, "Analysis failed",
			"error", err,
			"chatID", chatID)

		form := view.Failed(err)
		if sendErr := b.sendMarkdown(chatID, "❌ "+escapeMarkdownV2(form.Result)); sendErr != nil {
			return errors.Join(err, fmt.Errorf("send message: %w", sendErr))
		}

		return nil
	}

	form := view.Analyzed(analysis)

	if err = b.sendMarkdown(chatID, formatStats(form)); err != nil {
		return fmt.Errorf("send stats: %w", err)
	}

	if fitsMessage(form.Result) {
		if err = b.sendPlainWithKeyboard(chatID, form.Result, b.resultKeyboard); err != nil {
			return fmt.Errorf("send result: %w", err)
		}
		return nil
	}

	return b.sendResultFile(chatID, form.Result, longResultCaption)
}

func (b *Bot) sendResultFile(chatID int64, result, caption string) error {
	path, err := b.svc.Download(result)
	if err != nil {
		return fmt.Errorf("download result: %w", err)
	}
	if path == "" {
		return nil
	}

	return b.sendDocument(chatID, path, caption)
}

func (b *Bot) sendDocument(chatID int64, path, caption string) error {
	document := tgbotapi.NewDocument(chatID, tgbotapi.FilePath(path))
	document.Caption = caption

	if _, err := b.api.Send(document); err != nil {
		return fmt.Errorf("send document: %w", err)
	}

	return nil
}

// fitsMessage reports whether text is within Telegram's message limit, which
// is counted in UTF-16 code units.
func fitsMessage(text string) bool {
	units := 0
	for _, r := range text {
		units += utf16.RuneLen(r)
		if units > telegramMessageMaxLength {
			return false
		}
	}

	return true
}
