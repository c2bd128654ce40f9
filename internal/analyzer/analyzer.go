// Package analyzer runs one analysis request end to end: extract, truncate,
// count, detect the language and ask the model. It reports typed errors and
// leaves display text to the front ends.
package analyzer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"docanalyzer/internal/config"
	"docanalyzer/internal/document"
	"docanalyzer/internal/domain"
	"docanalyzer/internal/language"
	"docanalyzer/internal/summarizer"
)

var (
	ErrNoInput       = errors.New("no text or file provided")
	ErrEmptyDocument = errors.New("document contains no text")
)

// UndeterminedLanguage is the ISO 639-2 code reported when detection fails.
const UndeterminedLanguage = "und"

type Request struct {
	Text string
	// File takes precedence over Text when present.
	File *domain.Upload
	// OnChunk receives streamed fragments of the result.
	OnChunk func(chunk string)
}

type Service struct {
	reader     *document.Reader
	summarizer summarizer.Summarizer
	maxChars   int
	timeout    time.Duration
	resultPath string
	log        *slog.Logger
}

func NewService(
	cfg config.Config,
	reader *document.Reader,
	s summarizer.Summarizer,
	log *slog.Logger,
) *Service {
	return &Service{
		reader:     reader,
		summarizer: s,
		maxChars:   cfg.MaxInputChars,
		timeout:    cfg.AnalysisTimeout,
		resultPath: resultPath(cfg.ResultDir),
		log:        log,
	}
}

// Analyze extracts the request text, truncates it to the character budget
// and analyses the excerpt. Counts and language describe the excerpt, not
// the full document.
func (s *Service) Analyze(ctx context.Context, req Request) (domain.Analysis, error) {
	text, err := s.extract(ctx, req)
	if err != nil {
		return domain.Analysis{}, err
	}

	excerpt := Truncate(text, s.maxChars)
	stats := domain.Stats{
		WordCount: len(strings.Fields(excerpt)),
		CharCount: utf8.RuneCountInString(excerpt),
	}

	lang, err := language.Detect(excerpt)
	if err != nil {
		s.log.WarnContext(ctx, "Failed to detect language",
			"error", err,
			"charCount", stats.CharCount)

		lang = UndeterminedLanguage
	}
	stats.Language = lang

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	result, err := s.summarizer.Summarize(ctx, summarizer.Input{
		Text:    excerpt,
		OnChunk: req.OnChunk,
	})
	if err != nil {
		return domain.Analysis{}, fmt.Errorf("summarize: %w", err)
	}

	s.log.InfoContext(ctx, "Analysis is completed",
		"wordCount", stats.WordCount,
		"charCount", stats.CharCount,
		"language", stats.Language,
		"truncated", stats.CharCount < utf8.RuneCountInString(text),
		"resultChars", utf8.RuneCountInString(result),
		"durationMs", time.Since(start).Milliseconds())

	return domain.Analysis{
		Excerpt: excerpt,
		Result:  result,
		Stats:   stats,
	}, nil
}

func (s *Service) extract(ctx context.Context, req Request) (string, error) {
	if req.File == nil {
		if strings.TrimSpace(req.Text) == "" {
			return "", ErrNoInput
		}

		return req.Text, nil
	}

	text, err := s.reader.Read(ctx, req.File.Name, req.File.Data)
	if err != nil {
		return "", fmt.Errorf("read document: %w", err)
	}

	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyDocument
	}

	return text, nil
}

// Truncate keeps the first maxChars characters of text.
func Truncate(text string, maxChars int) string {
	if maxChars <= 0 || utf8.RuneCountInString(text) <= maxChars {
		return text
	}

	count := 0
	for i := range text {
		if count == maxChars {
			return text[:i]
		}
		count++
	}

	return text
}
