package bot

import (
	"strings"

	"docanalyzer/internal/view"
)

// Taken from https://core.telegram.org/bots/api#markdownv2-style.
const mdV2SpecialChars = "_*[]()~`>#+-=|{}.!\\"

//nolint:gochecknoglobals // Built once and only read afterwards.
var mdV2Replacer = func() *strings.Replacer {
	pairs := make([]string, 0, 2*len(mdV2SpecialChars))
	for _, c := range mdV2SpecialChars {
		pairs = append(pairs, string(c), `\`+string(c))
	}
	return strings.NewReplacer(pairs...)
}()

func escapeMarkdownV2(input string) string {
	return mdV2Replacer.Replace(input)
}

func boldMarkdownV2(input string) string {
	return "*" + escapeMarkdownV2(input) + "*"
}

// formatStats renders the stat fields of a form, one per line, under a bold
// heading.
func formatStats(form view.Form) string {
	lines := []string{
		"📊 " + boldMarkdownV2("Statistics"),
		escapeMarkdownV2(form.WordCount),
		escapeMarkdownV2(form.CharCount),
		escapeMarkdownV2(form.Language),
	}

	return strings.Join(lines, "\n")
}
