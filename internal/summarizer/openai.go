package summarizer

import (
	"context"
	"errors"
	"strings"

	"docanalyzer/internal/config"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const promptTemplate = `Analyze and summarize the following document. Highlight key information and named entities such as people, organizations, and locations.

Text:
`

// OpenAISummarizer streams completions from an OpenAI-compatible chat
// endpoint. The default configuration points it at Gemini.
type OpenAISummarizer struct {
	client openai.Client
	model  string
}

// NewOpenAISummarizer builds a new summarizer instance. Retries are disabled:
// failures surface to the caller as they happen.
func NewOpenAISummarizer(cfg config.Config) *OpenAISummarizer {
	return &OpenAISummarizer{
		client: openai.NewClient(
			option.WithAPIKey(cfg.APIKey),
			option.WithBaseURL(cfg.BaseURL),
			option.WithMaxRetries(0),
		),
		model: cfg.Model,
	}
}

func BuildPrompt(text string) string {
	return promptTemplate + text
}

// Summarize sends the prompt and concatenates the streamed fragments.
func (s *OpenAISummarizer) Summarize(
	ctx context.Context,
	input Input,
) (string, error) {
	if strings.TrimSpace(input.Text) == "" {
		return "", ErrEmptyInput
	}

	stream := s.client.Chat.Completions.NewStreaming(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(s.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(BuildPrompt(input.Text)),
		},
	})
	defer func() { _ = stream.Close() }()

	var result strings.Builder
	for stream.Next() {
		chunk := stream.Current()

		for _, choice := range chunk.Choices {
			fragment := choice.Delta.Content
			if fragment == "" {
				continue
			}

			result.WriteString(fragment)
			if input.OnChunk != nil {
				input.OnChunk(fragment)
			}
		}
	}

	if err := stream.Err(); err != nil {
		return "", s.wrapError(err)
	}
	if err := ctx.Err(); err != nil {
		return "", s.wrapError(err)
	}

	if strings.TrimSpace(result.String()) == "" {
		return "", &Error{Model: s.model, Err: ErrEmptyOutput}
	}

	return result.String(), nil
}

func (s *OpenAISummarizer) wrapError(err error) error {
	wrapped := &Error{Model: s.model, Err: err}

	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		wrapped.StatusCode = apiErr.StatusCode
	}

	return wrapped
}
