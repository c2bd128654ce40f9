// Package web serves the analyzer as an HTML form.
package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"os"
	"time"

	"docanalyzer/internal/analyzer"
	"docanalyzer/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 10 * time.Second
	// Room for the text field and multipart framing on top of the file.
	formOverheadBytes = 1 << 20

	RequestIDHeader = "X-Request-ID"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Analyzer is the pipeline the handlers drive.
type Analyzer interface {
	Analyze(ctx context.Context, req analyzer.Request) (domain.Analysis, error)
	Download(result string) (string, error)
	ResultPath() string
}

type Server struct {
	addr           string
	engine         *gin.Engine
	svc            Analyzer
	maxUploadBytes int64
	log            *slog.Logger
}

// UseReleaseMode turns off gin's debug output unless GIN_MODE picks a mode.
// It must run before New, which prints routes in debug mode.
func UseReleaseMode() {
	if _, ok := os.LookupEnv(gin.EnvGinMode); ok {
		return
	}

	gin.SetMode(gin.ReleaseMode)
}

func New(addr string, svc Analyzer, maxUploadBytes int64, log *slog.Logger) *Server {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(requestLogger(log))
	engine.SetHTMLTemplate(template.Must(template.ParseFS(templatesFS, "templates/*.html")))

	s := &Server{
		addr:           addr,
		engine:         engine,
		svc:            svc,
		maxUploadBytes: maxUploadBytes,
		log:            log,
	}
	s.routes()

	return s
}

func (s *Server) routes() {
	s.engine.GET("/healthz", s.handleHealth)
	s.engine.GET("/", s.handleIndex)
	s.engine.GET("/files/:name", s.handleFile)

	form := s.engine.Group("/", s.limitBody())
	form.POST("/analyze", s.handleAnalyze)
	form.POST("/analyze/stream", s.handleAnalyzeStream)
	form.POST("/clear", s.handleClear)
	form.POST("/download", s.handleDownload)
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is done, then shuts the listener down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.engine,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen and serve: %w", err)

	case <-ctx.Done():
		s.log.InfoContext(ctx, "Web server context is done",
			"error", ctx.Err(),
			"addr", s.addr)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	return nil
}

func (s *Server) limitBody() gin.HandlerFunc {
	limit := s.maxUploadBytes + formOverheadBytes

	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		c.Next()
	}
}

// requestLogger tags every request with an ID, reusing the caller's
// X-Request-ID when present, and logs it once the handler is done.
func requestLogger(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header(RequestIDHeader, requestID)

		c.Next()

		log.InfoContext(c.Request.Context(), "HTTP request is handled",
			"requestID", requestID,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latencyMs", time.Since(start).Milliseconds())
	}
}
