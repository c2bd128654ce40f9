package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
)

const ResultFileName = "analysis_result.txt"

type Config struct {
	APIKey          string        `env:"GOOGLE_API_KEY,required,notEmpty"`
	Model           string        `env:"MODEL"                            envDefault:"gemini-2.0-flash"`
	BaseURL         string        `env:"API_BASE_URL"                     envDefault:"https://generativelanguage.googleapis.com/v1beta/openai/"`
	AnalysisTimeout time.Duration `env:"ANALYSIS_TIMEOUT"                 envDefault:"2m"`
	MaxInputChars   int           `env:"MAX_INPUT_CHARS"                  envDefault:"3000"`
	MaxUploadMB     int64         `env:"MAX_UPLOAD_MB"                    envDefault:"20"`
	ResultDir       string        `env:"RESULT_DIR"                       envDefault:"."`
	HTTPAddr        string        `env:"HTTP_ADDR"                        envDefault:":7860"`
	TelegramToken   string        `env:"TOKEN"`
	LogLevel        slog.Level    `env:"LOG_LEVEL"                        envDefault:"info"`
}

// Load parses the process environment. A missing API key is an error the
// caller is expected to treat as fatal.
func Load() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if cfg.MaxInputChars <= 0 {
		return Config{}, fmt.Errorf("MAX_INPUT_CHARS must be positive, got %d", cfg.MaxInputChars)
	}
	if cfg.MaxUploadMB <= 0 {
		return Config{}, fmt.Errorf("MAX_UPLOAD_MB must be positive, got %d", cfg.MaxUploadMB)
	}

	return cfg, nil
}

func (c Config) MaxUploadBytes() int64 {
	return c.MaxUploadMB << 20
}
