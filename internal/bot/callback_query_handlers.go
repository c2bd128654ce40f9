package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"docanalyzer/internal/view"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func (b *Bot) handleCallbackQuery(ctx context.Context, callback *tgbotapi.CallbackQuery) error {
	data := strings.TrimSpace(callback.Data)

	switch data {
	case callbackDownload:
		return b.withChatAction(ctx, callback.Message.Chat.ID, tgbotapi.ChatUploadDocument, func() error {
			return b.handleDownloadQuery(ctx, callback)
		})
	case callbackClear:
		return b.withEmptyCallbackAnswer(callback, func() error {
			return b.handleClearQuery(callback)
		})
	}

	return nil
}

// handleDownloadQuery writes the text of the message the button is attached
// to, which is the result currently on screen.
func (b *Bot) handleDownloadQuery(ctx context.Context, callback *tgbotapi.CallbackQuery) error {
	chatID := callback.Message.Chat.ID

	path, err := b.svc.Download(callback.Message.Text)
	if err != nil {
		b.log.ErrorContext(ctx, "Failed to write download artifact",
			"error", err,
			"chatID", chatID)

		errs := []error{b.errorCallbackAnswer(callback, fmt.Errorf("download result: %w", err))}
		if sendErr := b.sendMarkdown(chatID, "❌ "+escapeMarkdownV2(view.Message(err))); sendErr != nil {
			errs = append(errs, fmt.Errorf("send message: %w", sendErr))
		}

		return errors.Join(errs...)
	}

	if path == "" {
		if _, err = b.api.Request(tgbotapi.NewCallback(callback.ID, "✖️ Nothing to download.")); err != nil {
			return fmt.Errorf("send request: %w", err)
		}
		return nil
	}

	return b.withEmptyCallbackAnswer(callback, func() error {
		return b.sendDocument(chatID, path, "")
	})
}

func (b *Bot) handleClearQuery(callback *tgbotapi.CallbackQuery) error {
	deleteConfig := tgbotapi.NewDeleteMessage(callback.Message.Chat.ID, callback.Message.MessageID)
	if _, err := b.api.Request(deleteConfig); err != nil {
		return fmt.Errorf("delete message: %w", err)
	}

	return nil
}

func (b *Bot) withEmptyCallbackAnswer(
	callback *tgbotapi.CallbackQuery,
	fn func() error,
) error {
	var errs []error

	if _, err := b.api.Request(tgbotapi.NewCallback(callback.ID, "")); err != nil {
		errs = append(errs, b.errorCallbackAnswer(callback, fmt.Errorf("send request: %w", err)))
	}

	err := fn()
	if err != nil {
		errs = append(errs, fmt.Errorf("call fn: %w", err))
	}

	return errors.Join(errs...)
}

func (b *Bot) errorCallbackAnswer(
	callback *tgbotapi.CallbackQuery,
	err error,
) error {
	if _, sendErr := b.api.Request(tgbotapi.NewCallback(callback.ID, "❌ Failed.")); sendErr != nil {
		return errors.Join(err, fmt.Errorf("send request: %w", sendErr))
	}
	return err
}
