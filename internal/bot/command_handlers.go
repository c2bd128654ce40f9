package bot

const startText = `👋 Send me some text or a document \(\.txt, \.pdf, anything textual\)\.

I will count its words and characters, detect the language and write a short summary with the main points\.

Only the first part of long documents is analyzed\.`

func (b *Bot) handleStartCommand(chatID int64) error {
	return b.sendMarkdown(chatID, startText)
}

func (b *Bot) handleClearCommand(chatID int64) error {
	return b.sendMarkdown(chatID, "🧹 Cleared\\. Send new text or a document\\.")
}
