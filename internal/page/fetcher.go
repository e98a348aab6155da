package page

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"golang.org/x/net/html/charset"

	"websummary/internal/contextutil"
)

// HTTPDoer is the part of *http.Client the fetcher needs.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Fetcher downloads a page and hands the body to an Extractor.
type Fetcher struct {
	client    HTTPDoer
	userAgent string
	extractor Extractor
}

// NewFetcher creates a Fetcher. A nil client means http.DefaultClient and a
// nil extractor means a MarkupExtractor with the default removed tags.
func NewFetcher(client HTTPDoer, userAgent string, extractor Extractor) *Fetcher {
	if client == nil {
		client = http.DefaultClient
	}
	if extractor == nil {
		extractor = NewMarkupExtractor()
	}
	return &Fetcher{
		client:    client,
		userAgent: userAgent,
		extractor: extractor,
	}
}

// FetchDocument issues a single GET for rawURL and extracts its Document.
// The body is decoded to UTF-8 using the Content-Type charset or <meta> tags.
// Every failure is returned as a *FetchError.
func (f *Fetcher) FetchDocument(ctx context.Context, rawURL string) (Document, error) {
	logger := contextutil.LoggerFromContext(ctx)

	pageURL, err := url.Parse(rawURL)
	if err != nil {
		return Document{}, &FetchError{URL: rawURL, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return Document{}, &FetchError{URL: rawURL, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	logger.DebugContext(ctx, "fetching page", "url", rawURL)
	resp, err := f.client.Do(req)
	if err != nil {
		return Document{}, &FetchError{URL: rawURL, Err: fmt.Errorf("failed to send request: %w", err)}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Document{}, &FetchError{
			URL:        rawURL,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected status %s", resp.Status),
		}
	}

	body, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return Document{}, &FetchError{URL: rawURL, Err: fmt.Errorf("failed to decode body: %w", err)}
	}

	doc, err := f.extractor.Extract(body, pageURL)
	if err != nil {
		return Document{}, &FetchError{URL: rawURL, Err: err}
	}

	logger.InfoContext(ctx, "page fetched", "url", rawURL, "title", doc.Title, "text_length", len(doc.Text))
	return doc, nil
}
