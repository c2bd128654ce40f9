package summarizer

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrEmptyInput  = errors.New("input is empty")
	ErrEmptyOutput = errors.New("output text is missing")
)

// Input describes the payload for an analysis request.
type Input struct {
	// Text is the excerpt to analyse, already truncated by the caller.
	Text string
	// OnChunk, when set, receives every streamed fragment in arrival order.
	OnChunk func(chunk string)
}

// Summarizer produces a single analysis for a given input text.
type Summarizer interface {
	Summarize(ctx context.Context, input Input) (string, error)
}

// Error wraps a transport or service failure of the remote model.
type Error struct {
	Model      string
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("model %s (status %d): %v", e.Model, e.StatusCode, e.Err)
	}

	return fmt.Sprintf("model %s: %v", e.Model, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
