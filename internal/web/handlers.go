package web

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"docanalyzer/internal/analyzer"
	"docanalyzer/internal/config"
	"docanalyzer/internal/domain"
	"docanalyzer/internal/view"

	"github.com/gin-gonic/gin"
)

const (
	fieldText   = "text"
	fieldFile   = "file"
	fieldResult = "result"

	indexTemplate = "index.html"
)

type page struct {
	view.Form
	MaxUploadMB int64
}

func (s *Server) render(c *gin.Context, form view.Form) {
	c.HTML(http.StatusOK, indexTemplate, page{
		Form:        form,
		MaxUploadMB: s.maxUploadBytes >> 20,
	})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleIndex(c *gin.Context) {
	s.render(c, view.Cleared())
}

func (s *Server) handleClear(c *gin.Context) {
	s.render(c, view.Cleared())
}

func (s *Server) handleAnalyze(c *gin.Context) {
	req, fileName, err := s.parseRequest(c)

	var form view.Form
	if err != nil {
		form = view.Failed(err)
	} else {
		analysis, analyzeErr := s.svc.Analyze(c.Request.Context(), req)
		if analyzeErr != nil {
			s.log.WarnContext(c.Request.Context(), "Failed to analyze input",
				"error", analyzeErr,
				"fileName", fileName)

			form = view.Failed(analyzeErr)
		} else {
			form = view.Analyzed(analysis)
		}
	}

	form.Text = c.PostForm(fieldText)
	form.FileName = fileName
	s.render(c, form)
}

func (s *Server) handleAnalyzeStream(c *gin.Context) {
	req, fileName, err := s.parseRequest(c)
	if err != nil {
		c.SSEvent("error", view.Failed(err))
		return
	}

	newlines := &newlineNormalizer{}
	req.OnChunk = func(chunk string) {
		if chunk = newlines.normalize(chunk); chunk == "" {
			return
		}
		c.SSEvent("chunk", chunk)
		c.Writer.Flush()
	}

	analysis, err := s.svc.Analyze(c.Request.Context(), req)
	if err != nil {
		s.log.WarnContext(c.Request.Context(), "Failed to analyze input",
			"error", err,
			"fileName", fileName)

		c.SSEvent("error", view.Failed(err))
		return
	}

	form := view.Analyzed(analysis)
	form.Result = normalizeNewlines(form.Result)
	c.SSEvent("result", form)
}

func (s *Server) handleDownload(c *gin.Context) {
	form := view.Form{
		Text:      c.PostForm(fieldText),
		Result:    normalizeNewlines(c.PostForm(fieldResult)),
		WordCount: c.PostForm("wordCount"),
		CharCount: c.PostForm("charCount"),
		Language:  c.PostForm("language"),
	}

	path, err := s.svc.Download(form.Result)
	if err != nil {
		s.log.ErrorContext(c.Request.Context(), "Failed to write download artifact",
			"error", err,
			"resultPath", s.svc.ResultPath())

		form.Error = view.Message(err)
	}
	if path != "" {
		form.DownloadURL = "/files/" + filepath.Base(path)
	}

	s.render(c, form)
}

func (s *Server) handleFile(c *gin.Context) {
	name := c.Param("name")
	if name != config.ResultFileName {
		c.Status(http.StatusNotFound)
		return
	}

	path := s.svc.ResultPath()
	if _, err := os.Stat(path); err != nil {
		c.Status(http.StatusNotFound)
		return
	}

	c.FileAttachment(path, name)
}

// normalizeNewlines turns CRLF and lone CR into LF. Browsers submit textareas
// with CRLF and the SSE encoder escapes CR.
func normalizeNewlines(text string) string {
	if !strings.Contains(text, "\r") {
		return text
	}

	return strings.ReplaceAll(strings.ReplaceAll(text, "\r\n", "\n"), "\r", "\n")
}

// newlineNormalizer applies normalizeNewlines to a stream of chunks, so a CRLF
// split between two chunks still yields a single LF.
type newlineNormalizer struct {
	pendingCR bool
}

func (n *newlineNormalizer) normalize(chunk string) string {
	if n.pendingCR {
		chunk = strings.TrimPrefix(chunk, "\n")
	}
	n.pendingCR = strings.HasSuffix(chunk, "\r")

	return normalizeNewlines(chunk)
}

var errUploadTooLarge = errors.New("upload is too large")

// parseRequest reads the pasted text and the optional uploaded file.
func (s *Server) parseRequest(c *gin.Context) (analyzer.Request, string, error) {
	req := analyzer.Request{Text: c.PostForm(fieldText)}

	header, err := c.FormFile(fieldFile)
	switch {
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
		return req, "", nil
	case err != nil:
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return req, "", fmt.Errorf("%w: limit is %d MB", errUploadTooLarge, s.maxUploadBytes>>20)
		}
		return req, "", fmt.Errorf("parse upload: %w", err)
	}

	// Browsers submit an empty part when no file is chosen.
	if header.Filename == "" && header.Size == 0 {
		return req, "", nil
	}

	upload, err := s.readUpload(header)
	if err != nil {
		return req, header.Filename, err
	}
	req.File = upload

	return req, header.Filename, nil
}

func (s *Server) readUpload(header *multipart.FileHeader) (*domain.Upload, error) {
	if header.Size > s.maxUploadBytes {
		return nil, fmt.Errorf("%w: limit is %d MB", errUploadTooLarge, s.maxUploadBytes>>20)
	}

	f, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(io.LimitReader(f, s.maxUploadBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > s.maxUploadBytes {
		return nil, fmt.Errorf("%w: limit is %d MB", errUploadTooLarge, s.maxUploadBytes>>20)
	}

	return &domain.Upload{Name: header.Filename, Data: data}, nil
}
