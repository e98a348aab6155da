package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"websummary/internal/contextutil"
)

const (
	// APIKeyEnv names the variable holding the completion endpoint credential.
	APIKeyEnv = "OPENAI_API_KEY"
	// APIKeyPrefix is the literal every accepted key starts with.
	APIKeyPrefix = "sk-proj-"
)

// ConfigError reports a missing or malformed configuration value.
type ConfigError struct {
	Key     string
	Message string
}

func (e *ConfigError) Error() string {
	if e.Key == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Key, e.Message)
}

// LoadCredential reads the API key from the environment (after .env) and
// validates it. The key is returned unchanged.
func LoadCredential(ctx context.Context) (string, error) {
	if err := loadDotEnv(); err != nil {
		return "", err
	}

	key := os.Getenv(APIKeyEnv)
	if err := ValidateAPIKey(key); err != nil {
		return "", err
	}

	contextutil.LoggerFromContext(ctx).InfoContext(ctx, "API key found and looks good.")
	return key, nil
}

// ValidateAPIKey checks presence, prefix and surrounding whitespace, in that order.
func ValidateAPIKey(key string) error {
	if key == "" {
		return &ConfigError{Message: "No API key was found. Please check your .env file."}
	}
	if !strings.HasPrefix(key, APIKeyPrefix) {
		return &ConfigError{Message: fmt.Sprintf("API key does not start with '%s'. Please check your key.", APIKeyPrefix)}
	}
	if strings.TrimSpace(key) != key {
		return &ConfigError{Message: "API key contains leading or trailing spaces. Please fix it."}
	}
	return nil
}
