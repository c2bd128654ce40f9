// Package language guesses the natural language of a text.
//
// Detection is statistical and unstable on very short or mixed-language
// input; callers should treat the result as a hint.
package language

import (
	"errors"
	"strings"

	"github.com/abadojack/whatlanggo"
)

var ErrUndetermined = errors.New("language is undetermined")

// Detect returns the ISO 639-1 code of the most likely language, or the ISO
// 639-3 code when the language has no two-letter code.
func Detect(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrUndetermined
	}

	info := whatlanggo.Detect(text)
	if info.Script == nil {
		return "", ErrUndetermined
	}

	if code := info.Lang.Iso6391(); code != "" {
		return code, nil
	}
	if code := info.Lang.Iso6393(); code != "" {
		return code, nil
	}

	return "", ErrUndetermined
}
