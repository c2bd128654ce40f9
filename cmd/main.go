package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"docanalyzer/internal/analyzer"
	"docanalyzer/internal/bot"
	"docanalyzer/internal/config"
	"docanalyzer/internal/document"
	"docanalyzer/internal/summarizer"
	"docanalyzer/internal/web"

	"github.com/joho/godotenv"
)

// botUpdateMargin covers the Telegram file download on top of the model call.
const botUpdateMargin = time.Minute

func main() {
	os.Exit(run())
}

func run() int {
	start := time.Now()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.New(slog.NewJSONHandler(os.Stdout, nil)).ErrorContext(ctx, "Failed to load config",
			"error", err)

		return 1
	}

	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(log)

	if envErr != nil && !errors.Is(envErr, os.ErrNotExist) {
		log.WarnContext(ctx, "Failed to load .env file",
			"error", envErr)
	}

	reader := document.NewReader(log)
	s := summarizer.NewOpenAISummarizer(cfg)
	svc := analyzer.NewService(cfg, reader, s, log)
	log.InfoContext(ctx, "Analyzer is initialized",
		"model", cfg.Model,
		"maxInputChars", cfg.MaxInputChars,
		"resultPath", svc.ResultPath())

	if cfg.TelegramToken != "" {
		botInst, botErr := bot.New(cfg.TelegramToken, svc, cfg.MaxUploadBytes(), cfg.AnalysisTimeout+botUpdateMargin, log)
		if botErr != nil {
			log.ErrorContext(ctx, "Failed to initialize bot",
				"error", botErr)

			return 1
		}
		defer func() {
			botInst.Stop()
			log.InfoContext(ctx, "Bot is stopped",
				"uptimeSeconds", time.Since(start).Seconds())
		}()

		go botInst.Start(ctx)
		log.InfoContext(ctx, "Bot is started",
			"updateTimeoutSeconds", bot.BotUpdateTimeout)
	}

	web.UseReleaseMode()
	server := web.New(cfg.HTTPAddr, svc, cfg.MaxUploadBytes(), log)
	log.InfoContext(ctx, "Web server is starting",
		"addr", cfg.HTTPAddr)

	if err = server.Run(ctx); err != nil {
		log.ErrorContext(ctx, "Web server failed",
			"error", err,
			"addr", cfg.HTTPAddr)

		return 1
	}

	log.InfoContext(ctx, "Exiting...",
		"uptimeSeconds", time.Since(start).Seconds())

	return 0
}
