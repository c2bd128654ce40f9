package analyzer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"docanalyzer/internal/config"
)

func resultPath(dir string) string {
	if strings.TrimSpace(dir) == "" {
		dir = "."
	}

	return filepath.Join(dir, config.ResultFileName)
}

// ResultPath is the fixed location of the download artifact.
func (s *Service) ResultPath() string {
	return s.resultPath
}

// Download writes result to the fixed-name artifact and returns its path. A
// blank result produces no file and an empty path. Concurrent downloads race
// on the same name; the last rename wins.
func (s *Service) Download(result string) (string, error) {
	if strings.TrimSpace(result) == "" {
		return "", nil
	}

	dir := filepath.Dir(s.resultPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create result dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, config.ResultFileName+".*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err = tmp.WriteString(result); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("write result: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return "", fmt.Errorf("close temp file: %w", err)
	}

	if err = os.Rename(tmp.Name(), s.resultPath); err != nil {
		return "", fmt.Errorf("rename result: %w", err)
	}

	return s.resultPath, nil
}
