// Package document extracts text from uploaded files. Files named *.pdf are
// read page by page; everything else is treated as plain text in an unknown
// encoding.
package document

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"docanalyzer/internal/charset"
)

const pdfExt = ".pdf"

type Kind string

const (
	KindText Kind = "text"
	KindPDF  Kind = "pdf"
)

// ReadError reports a file that could not be turned into text. Its message is
// never substituted for document content.
type ReadError struct {
	Kind Kind
	Name string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read %s file %q: %v", e.Kind, e.Name, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

type Reader struct {
	log *slog.Logger
}

func NewReader(log *slog.Logger) *Reader {
	return &Reader{log: log}
}

// KindOf dispatches on the file extension, ignoring case.
func KindOf(name string) Kind {
	if strings.EqualFold(filepath.Ext(strings.TrimSpace(name)), pdfExt) {
		return KindPDF
	}

	return KindText
}

// Read extracts the text of an in-memory file. Empty data yields an empty
// string for either kind.
func (r *Reader) Read(ctx context.Context, name string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", nil
	}

	if KindOf(name) == KindPDF {
		return r.readPDF(ctx, name, bytes.NewReader(data), int64(len(data)))
	}

	return r.decodeText(ctx, name, data), nil
}

func (r *Reader) decodeText(ctx context.Context, name string, data []byte) string {
	text, detected := charset.DecodeAuto(data)

	r.log.DebugContext(ctx, "Text file is decoded",
		"fileName", name,
		"charset", detected,
		"sizeBytes", len(data))

	return text
}

func (r *Reader) readPDF(ctx context.Context, name string, src io.ReaderAt, size int64) (string, error) {
	pages, err := openPDF(src, size)
	if err != nil {
		return "", &ReadError{Kind: KindPDF, Name: name, Err: err}
	}

	text, err := joinPages(ctx, pages)
	if err != nil {
		return "", &ReadError{Kind: KindPDF, Name: name, Err: err}
	}

	r.log.DebugContext(ctx, "PDF file is extracted",
		"fileName", name,
		"pageCount", pages.NumPage(),
		"sizeBytes", size)

	return text, nil
}
