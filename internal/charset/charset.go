// Package charset infers the character encoding of raw text bytes and decodes
// them into UTF-8.
package charset

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
)

const (
	Default = "UTF-8"

	byteOrderMark      = "\uFEFF"
	unicodeReplacement = '\uFFFD'
)

// Names reported by the detector that neither index knows verbatim.
//
//nolint:gochecknoglobals // Lookup table meant to be immutable.
var aliases = map[string]string{
	"GB-18030":     "gb18030",
	"ISO-8859-8-I": "iso-8859-8-i",
}

// Detect returns the most likely charset name for raw. The statistical
// detector only sees bytes that are not valid UTF-8; anything else, and any
// detection failure, reports Default.
func Detect(raw []byte) string {
	raw = bytes.TrimPrefix(raw, []byte(byteOrderMark))
	if len(raw) == 0 || utf8.Valid(raw) {
		return Default
	}

	result, err := chardet.NewTextDetector().DetectBest(raw)
	if err != nil || result == nil || strings.TrimSpace(result.Charset) == "" {
		return Default
	}

	return result.Charset
}

// Decode converts raw from the named charset to UTF-8. Unknown names fall back
// to UTF-8 and undecodable sequences become U+FFFD instead of failing.
func Decode(raw []byte, name string) string {
	if len(raw) == 0 {
		return ""
	}

	decoded, err := lookup(name).NewDecoder().Bytes(raw)
	text := string(decoded)
	if err != nil {
		text = strings.ToValidUTF8(string(raw), string(unicodeReplacement))
	}

	return strings.TrimPrefix(text, byteOrderMark)
}

// DecodeAuto detects the charset of raw and decodes it.
func DecodeAuto(raw []byte) (string, string) {
	name := Detect(raw)

	return Decode(raw, name), name
}

func lookup(name string) encoding.Encoding {
	name = strings.TrimSpace(name)
	if alias, ok := aliases[name]; ok {
		name = alias
	}

	if enc, err := htmlindex.Get(name); err == nil && enc != nil {
		return enc
	}

	if enc, err := ianaindex.IANA.Encoding(name); err == nil && enc != nil {
		return enc
	}

	return unicode.UTF8
}
