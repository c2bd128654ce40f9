package bot

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"docanalyzer/internal/domain"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

var errDocumentTooLarge = errors.New("document is too large")

func (b *Bot) fetchDocument(ctx context.Context, document *tgbotapi.Document) (*domain.Upload, error) {
	if int64(document.FileSize) > b.maxUploadBytes {
		return nil, errDocumentTooLarge
	}

	url, err := b.api.GetFileDirectURL(document.FileID)
	if err != nil {
		return nil, fmt.Errorf("get file url: %w", err)
	}

	data, err := b.download(ctx, url)
	if err != nil {
		return nil, err
	}

	return &domain.Upload{Name: document.FileName, Data: data}, nil
}

func (b *Bot) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := b.fileClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %s", resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, b.maxUploadBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if int64(len(data)) > b.maxUploadBytes {
		return nil, errDocumentTooLarge
	}

	return data, nil
}

func fetchErrorText(err error) string {
	if errors.Is(err, errDocumentTooLarge) {
		return "The document is larger than the upload limit."
	}
	return "Could not download the document from Telegram."
}
