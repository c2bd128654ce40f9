package bot

import (
	"context"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Telegram shows a chat action for about five seconds.
const chatActionInterval = 4 * time.Second

func (b *Bot) sendChatAction(ctx context.Context, chatID int64, action string) {
	if _, err := b.api.Request(tgbotapi.NewChatAction(chatID, action)); err != nil {
		b.log.ErrorContext(ctx, "Failed to send chat action",
			"error", err,
			"chatID", chatID,
			"action", action)
	}
}

// withChatAction keeps action visible in the chat until fn returns.
func (b *Bot) withChatAction(
	ctx context.Context,
	chatID int64,
	action string,
	fn func() error,
) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		ticker := time.NewTicker(chatActionInterval)
		defer ticker.Stop()

		for {
			b.sendChatAction(ctx, chatID, action)

			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()

	return fn()
}

func (b *Bot) withSpinner(ctx context.Context, chatID int64, fn func() error) error {
	return b.withChatAction(ctx, chatID, tgbotapi.ChatTyping, fn)
}
