package llm

import (
	"errors"
	"fmt"
)

// Chat roles used by this client.
const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// Message represents a single message in a chat conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ErrNoChoices is returned when the endpoint answers without any completion choice.
var ErrNoChoices = errors.New("no choices returned")

// CompletionError wraps any failure calling the chat completion endpoint.
type CompletionError struct {
	// StatusCode is set when the endpoint answered with a non-200 status.
	StatusCode int
	Err        error
}

func (e *CompletionError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("chat completion failed with status %d: %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("chat completion failed: %v", e.Err)
}

func (e *CompletionError) Unwrap() error {
	return e.Err
}
