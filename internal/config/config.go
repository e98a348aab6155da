package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

const (
	// DefaultLLMBaseURL points at a local Ollama server's OpenAI-compatible API.
	DefaultLLMBaseURL = "http://localhost:11434/v1"
	// DefaultLLMModel is the model requested from the completion endpoint.
	DefaultLLMModel = "llama3.2"
	// DefaultTargetURL is the page summarized when SUMMARY_URL is unset.
	DefaultTargetURL = "https://edwarddonner.com"
	// DefaultUserAgent is sent on page fetches so sites treat us like a browser.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/117.0.0.0 Safari/537.36"
)

// Extraction modes accepted by EXTRACT_MODE.
const (
	ExtractMarkup      = "markup"
	ExtractReadability = "readability"
)

// Config holds all configuration for the application.
// The API key is loaded separately by LoadCredential.
type Config struct {
	LLMBaseURL   string
	LLMModel     string
	TargetURL    string
	UserAgent    string
	ExtractMode  string
	SystemPrompt string
	OutputFormat string
	LogLevel     slog.Level
	LogFormat    string
}

// Load reads configuration from environment variables and returns a Config struct.
// A .env file in the current directory or one of its parents is loaded first,
// and its values override variables already present in the environment.
// Every failure is returned as a *ConfigError.
func Load() (*Config, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	cfg := &Config{
		LLMBaseURL:   getEnv("LLM_BASE_URL", DefaultLLMBaseURL),
		LLMModel:     getEnv("LLM_MODEL", DefaultLLMModel),
		TargetURL:    getEnv("SUMMARY_URL", DefaultTargetURL),
		UserAgent:    getEnv("FETCH_USER_AGENT", DefaultUserAgent),
		ExtractMode:  strings.ToLower(getEnv("EXTRACT_MODE", ExtractMarkup)),
		SystemPrompt: getEnv("SYSTEM_PROMPT", ""),
		OutputFormat: strings.ToLower(getEnv("OUTPUT_FORMAT", "auto")),
		LogFormat:    strings.ToLower(getEnv("LOG_FORMAT", "text")),
	}

	level, err := parseLogLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}
	cfg.LogLevel = level

	switch cfg.ExtractMode {
	case ExtractMarkup, ExtractReadability:
	default:
		return nil, &ConfigError{Key: "EXTRACT_MODE", Message: "must be one of markup, readability"}
	}

	switch cfg.OutputFormat {
	case "auto", "terminal", "markdown", "html":
	default:
		return nil, &ConfigError{Key: "OUTPUT_FORMAT", Message: "must be one of auto, terminal, markdown, html"}
	}

	switch cfg.LogFormat {
	case "text", "json":
	default:
		return nil, &ConfigError{Key: "LOG_FORMAT", Message: "must be text or json"}
	}

	return cfg, nil
}

// loadDotEnv overloads the environment from the first .env found walking up
// from the working directory. A .env that cannot be parsed is a *ConfigError.
func loadDotEnv() error {
	wd, err := os.Getwd()
	if err != nil {
		return nil
	}
	dir := wd
	for i := 0; i < 5; i++ { // Limit search depth
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			if err := godotenv.Overload(envPath); err != nil {
				return &ConfigError{Key: envPath, Message: fmt.Sprintf("failed to parse .env file: %v", err)}
			}
			return nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return nil // Reached filesystem root
		}
		dir = parent
	}
	return nil
}

func parseLogLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, &ConfigError{Key: "LOG_LEVEL", Message: "must be one of debug, info, warn, error"}
	}
	return level, nil
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
