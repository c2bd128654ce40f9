// Package view turns analysis outcomes into the text a user sees. It is the
// only place where errors become display strings.
package view

import (
	"errors"
	"fmt"
	"strings"

	"docanalyzer/internal/analyzer"
	"docanalyzer/internal/document"
	"docanalyzer/internal/domain"
)

const (
	MsgNoInput       = "Please enter text or upload a file."
	MsgEmptyDocument = "The uploaded file does not contain any readable text."
)

// Form holds every visible field of the analyzer page.
type Form struct {
	Text        string `json:"text"`
	FileName    string `json:"fileName"`
	Result      string `json:"result"`
	WordCount   string `json:"wordCount"`
	CharCount   string `json:"charCount"`
	Language    string `json:"language"`
	DownloadURL string `json:"downloadUrl"`
	// Error describes a failed action that leaves the other fields as they were.
	Error string `json:"error,omitempty"`
}

func Cleared() Form {
	return Form{}
}

// Analyzed fills the output fields from a successful analysis.
func Analyzed(a domain.Analysis) Form {
	return Form{
		Result:    a.Result,
		WordCount: fmt.Sprintf("Word Count: %d", a.Stats.WordCount),
		CharCount: fmt.Sprintf("Character Count: %d", a.Stats.CharCount),
		Language:  fmt.Sprintf("Language Detected: %s", strings.ToUpper(a.Stats.Language)),
	}
}

// Failed puts a user-facing description of err into the result field and
// leaves every stat field blank.
func Failed(err error) Form {
	return Form{Result: Message(err)}
}

func Message(err error) string {
	var readErr *document.ReadError

	switch {
	case err == nil:
		return ""
	case errors.Is(err, analyzer.ErrNoInput):
		return MsgNoInput
	case errors.Is(err, analyzer.ErrEmptyDocument):
		return MsgEmptyDocument
	case errors.As(err, &readErr):
		if readErr.Kind == document.KindPDF {
			return fmt.Sprintf("Error reading PDF file: %v", readErr.Err)
		}
		return fmt.Sprintf("Error reading text file: %v", readErr.Err)
	default:
		return fmt.Sprintf("Error: %v", err)
	}
}
