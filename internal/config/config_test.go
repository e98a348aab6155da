package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

var settingKeys = []string{
	"LLM_BASE_URL", "LLM_MODEL", "SUMMARY_URL", "FETCH_USER_AGENT",
	"EXTRACT_MODE", "SYSTEM_PROMPT", "OUTPUT_FORMAT", "LOG_LEVEL", "LOG_FORMAT",
}

// isolateEnv clears every setting and moves into an empty directory so no
// stray .env file is picked up.
func isolateEnv(t *testing.T) string {
	t.Helper()
	for _, key := range append(settingKeys, APIKeyEnv) {
		t.Setenv(key, "")
	}
	dir := t.TempDir()
	chdir(t, dir)
	return dir
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		setupEnv    func(*testing.T)
		wantErrKey  string
		checkConfig func(*testing.T, *Config)
	}{
		{
			name:     "defaults",
			setupEnv: func(t *testing.T) {},
			checkConfig: func(t *testing.T, cfg *Config) {
				if cfg.LLMBaseURL != DefaultLLMBaseURL {
					t.Errorf("LLMBaseURL = %q, want %q", cfg.LLMBaseURL, DefaultLLMBaseURL)
				}
				if cfg.LLMModel != DefaultLLMModel {
					t.Errorf("LLMModel = %q, want %q", cfg.LLMModel, DefaultLLMModel)
				}
				if cfg.TargetURL != DefaultTargetURL {
					t.Errorf("TargetURL = %q, want %q", cfg.TargetURL, DefaultTargetURL)
				}
				if cfg.UserAgent != DefaultUserAgent {
					t.Errorf("UserAgent = %q, want %q", cfg.UserAgent, DefaultUserAgent)
				}
				if cfg.ExtractMode != ExtractMarkup {
					t.Errorf("ExtractMode = %q, want %q", cfg.ExtractMode, ExtractMarkup)
				}
				if cfg.OutputFormat != "auto" {
					t.Errorf("OutputFormat = %q, want auto", cfg.OutputFormat)
				}
				if cfg.LogLevel != slog.LevelInfo {
					t.Errorf("LogLevel = %v, want info", cfg.LogLevel)
				}
				if cfg.LogFormat != "text" {
					t.Errorf("LogFormat = %q, want text", cfg.LogFormat)
				}
			},
		},
		{
			name: "overrides",
			setupEnv: func(t *testing.T) {
				t.Setenv("LLM_BASE_URL", "http://llm.local/v1")
				t.Setenv("LLM_MODEL", "qwen2.5")
				t.Setenv("SUMMARY_URL", "https://example.com")
				t.Setenv("EXTRACT_MODE", "Readability")
				t.Setenv("OUTPUT_FORMAT", "html")
				t.Setenv("LOG_LEVEL", "debug")
				t.Setenv("LOG_FORMAT", "json")
			},
			checkConfig: func(t *testing.T, cfg *Config) {
				if cfg.LLMBaseURL != "http://llm.local/v1" || cfg.LLMModel != "qwen2.5" {
					t.Errorf("LLM settings = %q %q", cfg.LLMBaseURL, cfg.LLMModel)
				}
				if cfg.TargetURL != "https://example.com" {
					t.Errorf("TargetURL = %q", cfg.TargetURL)
				}
				if cfg.ExtractMode != ExtractReadability {
					t.Errorf("ExtractMode = %q, want readability", cfg.ExtractMode)
				}
				if cfg.OutputFormat != "html" {
					t.Errorf("OutputFormat = %q, want html", cfg.OutputFormat)
				}
				if cfg.LogLevel != slog.LevelDebug || cfg.LogFormat != "json" {
					t.Errorf("logging = %v %q", cfg.LogLevel, cfg.LogFormat)
				}
			},
		},
		{
			name:       "invalid log level",
			setupEnv:   func(t *testing.T) { t.Setenv("LOG_LEVEL", "loud") },
			wantErrKey: "LOG_LEVEL",
		},
		{
			name:       "invalid extract mode",
			setupEnv:   func(t *testing.T) { t.Setenv("EXTRACT_MODE", "ocr") },
			wantErrKey: "EXTRACT_MODE",
		},
		{
			name:       "invalid output format",
			setupEnv:   func(t *testing.T) { t.Setenv("OUTPUT_FORMAT", "pdf") },
			wantErrKey: "OUTPUT_FORMAT",
		},
		{
			name:       "invalid log format",
			setupEnv:   func(t *testing.T) { t.Setenv("LOG_FORMAT", "xml") },
			wantErrKey: "LOG_FORMAT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolateEnv(t)
			tt.setupEnv(t)

			cfg, err := Load()
			if tt.wantErrKey != "" {
				var cfgErr *ConfigError
				if !errors.As(err, &cfgErr) {
					t.Fatalf("Load() error = %v, want *ConfigError", err)
				}
				if cfgErr.Key != tt.wantErrKey {
					t.Errorf("ConfigError.Key = %q, want %q", cfgErr.Key, tt.wantErrKey)
				}
				return
			}
			if err != nil {
				t.Fatalf("Load() unexpected error: %v", err)
			}
			tt.checkConfig(t, cfg)
		})
	}
}

func TestLoad_DotEnvOverridesEnvironment(t *testing.T) {
	dir := isolateEnv(t)
	t.Setenv("LLM_MODEL", "from-env")

	content := "LLM_MODEL=from-dotenv\n"
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(content), 0o644); err != nil {
		t.Fatalf("write .env: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if cfg.LLMModel != "from-dotenv" {
		t.Errorf("LLMModel = %q, want from-dotenv", cfg.LLMModel)
	}
}

func TestLoad_DotEnvInParentDirectory(t *testing.T) {
	dir := isolateEnv(t)
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("SUMMARY_URL=https://parent.example\n"), 0o644); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	child := filepath.Join(dir, "a", "b")
	if err := os.MkdirAll(child, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	chdir(t, child)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if cfg.TargetURL != "https://parent.example" {
		t.Errorf("TargetURL = %q, want https://parent.example", cfg.TargetURL)
	}
}

func TestLoad_MalformedDotEnv(t *testing.T) {
	dir := isolateEnv(t)
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("BAD-KEY=value\n"), 0o644); err != nil {
		t.Fatalf("write .env: %v", err)
	}

	_, err := Load()
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("Load() error = %v, want *ConfigError", err)
	}
	if filepath.Base(cfgErr.Key) != ".env" {
		t.Errorf("ConfigError.Key = %q, want the .env path", cfgErr.Key)
	}
}

// chdir changes the working directory for the duration of the test
// (stand-in for testing.T.Chdir, which requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
}
