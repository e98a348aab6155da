package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_document_fetcher.go -package=mocks websummary/internal/service DocumentFetcher
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_chat_completer.go -package=mocks websummary/internal/service ChatCompleter
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_presenter.go -package=mocks websummary/internal/service Presenter

import (
	"context"
	"strings"

	"websummary/internal/contextutil"
	"websummary/internal/llm"
	"websummary/internal/page"
	"websummary/internal/prompt"
)

// DocumentFetcher retrieves and cleans a single page.
type DocumentFetcher interface {
	FetchDocument(ctx context.Context, url string) (page.Document, error)
}

// ChatCompleter sends a message sequence to the model and returns its reply.
type ChatCompleter interface {
	Chat(ctx context.Context, messages []llm.Message) (string, error)
}

// Presenter displays a markdown summary.
type Presenter interface {
	Present(markdown string) error
}

// Summarizer runs the fetch, prompt, complete and present steps in order.
type Summarizer struct {
	fetcher   DocumentFetcher
	builder   *prompt.Builder
	completer ChatCompleter
	presenter Presenter
}

// NewSummarizer creates a Summarizer. A nil builder uses the default system prompt.
func NewSummarizer(fetcher DocumentFetcher, builder *prompt.Builder, completer ChatCompleter, presenter Presenter) *Summarizer {
	if builder == nil {
		builder = prompt.NewBuilder("")
	}
	return &Summarizer{
		fetcher:   fetcher,
		builder:   builder,
		completer: completer,
		presenter: presenter,
	}
}

// Summarize fetches url and returns the model's markdown summary of it.
func (s *Summarizer) Summarize(ctx context.Context, url string) (string, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if strings.TrimSpace(url) == "" {
		logger.WarnContext(ctx, "empty url in summarize request")
		return "", &ValidationError{Field: "url", Message: "cannot be empty"}
	}

	doc, err := s.fetcher.FetchDocument(ctx, url)
	if err != nil {
		logger.ErrorContext(ctx, "failed to fetch document", "url", url, "error", err)
		return "", WrapError(err, "failed to fetch document")
	}

	messages := s.builder.BuildMessages(doc)

	summary, err := s.completer.Chat(ctx, messages)
	if err != nil {
		logger.ErrorContext(ctx, "failed to get LLM response", "error", err)
		return "", WrapError(err, "failed to get LLM response")
	}

	logger.InfoContext(ctx, "summary generated", "url", url, "title", doc.Title, "summary_length", len(summary))
	return summary, nil
}

// Run summarizes url and hands the result to the presenter.
func (s *Summarizer) Run(ctx context.Context, url string) error {
	summary, err := s.Summarize(ctx, url)
	if err != nil {
		return err
	}
	if err := s.presenter.Present(summary); err != nil {
		return WrapError(err, "failed to present summary")
	}
	return nil
}
