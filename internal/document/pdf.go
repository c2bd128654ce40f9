package document

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

type pageSource interface {
	NumPage() int
	// PageText returns the text of the 1-based page num.
	PageText(num int) (string, error)
}

type pdfPages struct {
	r *pdf.Reader
}

func openPDF(src io.ReaderAt, size int64) (pages *pdfPages, err error) {
	// The parser panics on some malformed inputs.
	defer func() {
		if rec := recover(); rec != nil {
			pages = nil
			err = fmt.Errorf("parse PDF: %v", rec)
		}
	}()

	r, err := pdf.NewReader(src, size)
	if err != nil {
		return nil, fmt.Errorf("parse PDF: %w", err)
	}

	return &pdfPages{r: r}, nil
}

func (p *pdfPages) NumPage() int {
	return p.r.NumPage()
}

func (p *pdfPages) PageText(num int) (text string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			text = ""
			err = fmt.Errorf("extract page %d: %v", num, rec)
		}
	}()

	page := p.r.Page(num)
	if page.V.IsNull() {
		return "", nil
	}

	text, err = page.GetPlainText(nil)
	if err != nil {
		return "", fmt.Errorf("extract page %d: %w", num, err)
	}

	return text, nil
}

// joinPages concatenates the text of every page in order, separated by
// newlines.
func joinPages(ctx context.Context, src pageSource) (string, error) {
	count := src.NumPage()
	texts := make([]string, 0, count)

	for num := 1; num <= count; num++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		text, err := src.PageText(num)
		if err != nil {
			return "", err
		}
		texts = append(texts, text)
	}

	return strings.Join(texts, "\n"), nil
}
