package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"websummary/internal/contextutil"
)

// HTTPDoer is the part of *http.Client the LLM client needs.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client is a client for an OpenAI-compatible chat completions API.
type Client struct {
	BaseURL string
	APIKey  string
	Model   string
	client  HTTPDoer
}

// NewClient creates a new LLM client. baseURL already includes the API
// version segment, e.g. http://localhost:11434/v1.
func NewClient(baseURL, apiKey, model string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		APIKey:  apiKey,
		Model:   model,
		client:  http.DefaultClient,
	}
}

// WithHTTPClient replaces the transport used for requests.
func (c *Client) WithHTTPClient(doer HTTPDoer) *Client {
	c.client = doer
	return c
}

// ChatRequest represents the request payload for chat completions.
type ChatRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
}

// ChatChoiceMessage represents the message in a chat choice.
type ChatChoiceMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatChoice represents a single choice in the chat response.
type ChatChoice struct {
	Index        int               `json:"index"`
	Message      ChatChoiceMessage `json:"message"`
	FinishReason string            `json:"finish_reason"`
}

// ChatResponse represents the response from the chat completions API.
type ChatResponse struct {
	ID      string       `json:"id"`
	Object  string       `json:"object"`
	Choices []ChatChoice `json:"choices"`
}

// Chat sends messages in a single non-streaming request and returns the
// content of the first choice. Every failure is a *CompletionError.
func (c *Client) Chat(ctx context.Context, messages []Message) (string, error) {
	logger := contextutil.LoggerFromContext(ctx)
	url := c.BaseURL + "/chat/completions"

	payload := ChatRequest{
		Model:    c.Model,
		Messages: messages,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", &CompletionError{Err: fmt.Errorf("failed to marshal request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return "", &CompletionError{Err: fmt.Errorf("failed to create request: %w", err)}
	}

	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.APIKey))
	req.Header.Set("Content-Type", "application/json")

	logger.DebugContext(ctx, "sending chat completion", "url", url, "model", c.Model, "messages", len(messages))
	resp, err := c.client.Do(req)
	if err != nil {
		return "", &CompletionError{Err: fmt.Errorf("failed to send request: %w", err)}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return "", &CompletionError{StatusCode: resp.StatusCode, Err: fmt.Errorf("bad status: %s", strings.TrimSpace(string(raw)))}
	}

	var chatResp ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", &CompletionError{Err: fmt.Errorf("failed to decode response: %w", err)}
	}

	if len(chatResp.Choices) == 0 {
		return "", &CompletionError{Err: ErrNoChoices}
	}

	reply := chatResp.Choices[0].Message.Content
	logger.InfoContext(ctx, "chat completion received", "model", c.Model, "reply_length", len(reply))
	return reply, nil
}
