package summarizer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"docanalyzer/internal/config"
)

type recordedRequest struct {
	mu     sync.Mutex
	auth   string
	path   string
	prompt string
	model  string
}

func newStreamingServer(t *testing.T, rec *recordedRequest, fragments []string) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			t.Errorf("read request body: %v", err)
		}

		var req struct {
			Model    string `json:"model"`
			Messages []struct {
				Content string `json:"content"`
			} `json:"messages"`
		}
		if err = json.Unmarshal(body, &req); err != nil {
			t.Errorf("decode request body: %v", err)
		}

		rec.mu.Lock()
		rec.auth = r.Header.Get("Authorization")
		rec.path = r.URL.Path
		rec.model = req.Model
		if len(req.Messages) > 0 {
			rec.prompt = req.Messages[0].Content
		}
		rec.mu.Unlock()

		w.Header().Set("Content-Type", "text/event-stream")
		for _, fragment := range fragments {
			payload, _ := json.Marshal(map[string]any{
				"id":      "chunk",
				"object":  "chat.completion.chunk",
				"created": 0,
				"model":   req.Model,
				"choices": []map[string]any{{
					"index":         0,
					"delta":         map[string]any{"content": fragment},
					"finish_reason": nil,
				}},
			})
			fmt.Fprintf(w, "data: %s\n\n", payload)
		}
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))
}

func newTestSummarizer(baseURL string) *OpenAISummarizer {
	return NewOpenAISummarizer(config.Config{
		APIKey:  "test-key",
		BaseURL: baseURL + "/",
		Model:   "gemini-test",
	})
}

func TestSummarizeConcatenatesFragmentsInOrder(t *testing.T) {
	rec := &recordedRequest{}
	fragments := []string{"The ", "document ", "mentions ", "Acme Corp."}
	srv := newStreamingServer(t, rec, fragments)
	defer srv.Close()

	var seen []string
	got, err := newTestSummarizer(srv.URL).Summarize(context.Background(), Input{
		Text: "Acme Corp. opened an office in Berlin.",
		OnChunk: func(chunk string) {
			seen = append(seen, chunk)
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got != "The document mentions Acme Corp." {
		t.Fatalf("unexpected result: %q", got)
	}

	if strings.Join(seen, "|") != strings.Join(fragments, "|") {
		t.Fatalf("unexpected chunk order: %q", seen)
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()

	if rec.auth != "Bearer test-key" {
		t.Fatalf("unexpected authorization header: %q", rec.auth)
	}
	if !strings.HasSuffix(rec.path, "/chat/completions") {
		t.Fatalf("unexpected request path: %q", rec.path)
	}
	if rec.model != "gemini-test" {
		t.Fatalf("unexpected model: %q", rec.model)
	}
	if rec.prompt != BuildPrompt("Acme Corp. opened an office in Berlin.") {
		t.Fatalf("unexpected prompt: %q", rec.prompt)
	}
}

func TestSummarizeRejectsEmptyInput(t *testing.T) {
	s := newTestSummarizer("http://127.0.0.1:0")

	if _, err := s.Summarize(context.Background(), Input{Text: "  "}); !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("expected ErrEmptyInput, got %v", err)
	}
}

func TestSummarizeWrapsServiceErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"error":{"message":"API key not valid","type":"invalid_request_error","code":"401"}}`)
	}))
	defer srv.Close()

	_, err := newTestSummarizer(srv.URL).Summarize(context.Background(), Input{Text: "hello"})

	var sErr *Error
	if !errors.As(err, &sErr) {
		t.Fatalf("expected *Error, got %v", err)
	}

	if sErr.StatusCode != http.StatusUnauthorized {
		t.Fatalf("unexpected status code: %d", sErr.StatusCode)
	}
}

func TestSummarizeEmptyStream(t *testing.T) {
	srv := newStreamingServer(t, &recordedRequest{}, nil)
	defer srv.Close()

	_, err := newTestSummarizer(srv.URL).Summarize(context.Background(), Input{Text: "hello"})
	if !errors.Is(err, ErrEmptyOutput) {
		t.Fatalf("expected ErrEmptyOutput, got %v", err)
	}
}

func TestBuildPromptEndsWithText(t *testing.T) {
	prompt := BuildPrompt("body")

	if !strings.HasPrefix(prompt, "Analyze and summarize the following document.") {
		t.Fatalf("unexpected prompt prefix: %q", prompt)
	}

	if !strings.HasSuffix(prompt, "Text:\nbody") {
		t.Fatalf("unexpected prompt suffix: %q", prompt)
	}
}
