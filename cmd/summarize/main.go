package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/google/uuid"

	"websummary/internal/config"
	"websummary/internal/contextutil"
	"websummary/internal/llm"
	"websummary/internal/page"
	"websummary/internal/present"
	"websummary/internal/prompt"
	"websummary/internal/service"
)

func main() {
	os.Exit(run(context.Background()))
}

func run(ctx context.Context) int {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	// Logs go to stderr so the summary on stdout can be piped
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))

	logger := slog.Default().With("run_id", uuid.NewString())
	ctx = contextutil.WithLogger(ctx, logger)
	logger.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)

	apiKey, err := config.LoadCredential(ctx)
	if err != nil {
		var cfgErr *config.ConfigError
		if errors.As(err, &cfgErr) {
			fmt.Fprintln(os.Stderr, cfgErr.Message)
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		return 1
	}

	var extractor page.Extractor = page.NewMarkupExtractor()
	if cfg.ExtractMode == config.ExtractReadability {
		extractor = page.ReadabilityExtractor{}
	}

	presenter, err := present.New(os.Stdout, present.Format(cfg.OutputFormat))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	summarizer := service.NewSummarizer(
		page.NewFetcher(http.DefaultClient, cfg.UserAgent, extractor),
		prompt.NewBuilder(cfg.SystemPrompt),
		llm.NewClient(cfg.LLMBaseURL, apiKey, cfg.LLMModel),
		presenter,
	)

	logger.Debug("LLM configuration", "base_url", cfg.LLMBaseURL, "model", cfg.LLMModel, "output", presenter.Format())
	if err := summarizer.Run(ctx, cfg.TargetURL); err != nil {
		logger.Error("Summarizing failed", "url", cfg.TargetURL, "error", err)
		return 1
	}
	return 0
}
