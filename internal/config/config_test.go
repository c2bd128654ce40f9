package config_test

import (
	"docanalyzer/internal/config"
	"log/slog"
	"testing"
	"time"
)

func TestLoadRequiresAPIKey(t *testing.T) {
	t.Setenv("GOOGLE_API_KEY", "")

	if _, err := config.Load(); err == nil {
		t.Fatalf("expected error when GOOGLE_API_KEY is empty")
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("GOOGLE_API_KEY", "test-key")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.APIKey != "test-key" {
		t.Fatalf("unexpected API key: %q", cfg.APIKey)
	}
	if cfg.Model != "gemini-2.0-flash" {
		t.Fatalf("unexpected model: %q", cfg.Model)
	}
	if cfg.MaxInputChars != 3000 {
		t.Fatalf("unexpected max input chars: %d", cfg.MaxInputChars)
	}
	if cfg.AnalysisTimeout != 2*time.Minute {
		t.Fatalf("unexpected analysis timeout: %s", cfg.AnalysisTimeout)
	}
	if cfg.MaxUploadBytes() != 20<<20 {
		t.Fatalf("unexpected max upload bytes: %d", cfg.MaxUploadBytes())
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Fatalf("unexpected log level: %s", cfg.LogLevel)
	}
	if cfg.TelegramToken != "" {
		t.Fatalf("expected Telegram front end to be disabled by default")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("GOOGLE_API_KEY", "test-key")
	t.Setenv("MAX_INPUT_CHARS", "120")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("RESULT_DIR", "/tmp/results")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.MaxInputChars != 120 {
		t.Fatalf("unexpected max input chars: %d", cfg.MaxInputChars)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Fatalf("unexpected log level: %s", cfg.LogLevel)
	}
	if cfg.ResultDir != "/tmp/results" {
		t.Fatalf("unexpected result dir: %q", cfg.ResultDir)
	}
}

func TestLoadRejectsNonPositiveBudget(t *testing.T) {
	t.Setenv("GOOGLE_API_KEY", "test-key")
	t.Setenv("MAX_INPUT_CHARS", "0")

	if _, err := config.Load(); err == nil {
		t.Fatalf("expected error for zero MAX_INPUT_CHARS")
	}
}
