package bot

import (
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	callbackDownload = "download"
	callbackClear    = "clear"
)

func (b *Bot) sendMarkdown(chatID int64, text string) error {
	message := tgbotapi.NewMessage(chatID, b.normalize(chatID, text))

	// See https://core.telegram.org/bots/api#markdownv2-style.
	message.ParseMode = tgbotapi.ModeMarkdownV2

	message.DisableWebPagePreview = true

	_, err := b.api.Send(message)
	return err
}

// sendPlainWithKeyboard sends text without a parse mode so model output is
// shown exactly as produced.
func (b *Bot) sendPlainWithKeyboard(
	chatID int64,
	text string,
	keyboard [][]tgbotapi.InlineKeyboardButton,
) error {
	message := tgbotapi.NewMessage(chatID, b.normalize(chatID, text))
	message.DisableWebPagePreview = true
	message.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(keyboard...)

	_, err := b.api.Send(message)
	return err
}

func (b *Bot) normalize(chatID int64, text string) string {
	normalizedText := strings.ToValidUTF8(text, "?")
	if normalizedText != text {
		b.log.Warn("Message text had invalid UTF-8 and was normalized",
			"chatID", chatID,
			"originalLen", len(text),
			"normalizedLen", len(normalizedText))
	}

	return normalizedText
}

func getResultKeyboard() [][]tgbotapi.InlineKeyboardButton {
	return [][]tgbotapi.InlineKeyboardButton{
		{
			tgbotapi.NewInlineKeyboardButtonData("💾 Download", callbackDownload),
			tgbotapi.NewInlineKeyboardButtonData("🧹 Clear", callbackClear),
		},
	}
}
