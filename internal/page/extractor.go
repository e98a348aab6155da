package page

import (
	"bytes"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
	"golang.org/x/net/html"
)

// Extractor turns raw markup into a Document. Implementations do no I/O
// beyond reading body.
type Extractor interface {
	Extract(body io.Reader, pageURL *url.URL) (Document, error)
}

// DefaultRemovedTags lists the elements stripped from the body before text extraction.
var DefaultRemovedTags = []string{"script", "style", "img", "input"}

// MarkupExtractor flattens every text node of the body after removing
// non-content elements.
type MarkupExtractor struct {
	RemovedTags []string
}

// NewMarkupExtractor creates a MarkupExtractor that strips DefaultRemovedTags.
func NewMarkupExtractor() *MarkupExtractor {
	return &MarkupExtractor{RemovedTags: DefaultRemovedTags}
}

// Extract parses body and returns its title and newline-joined text fragments.
func (e *MarkupExtractor) Extract(body io.Reader, _ *url.URL) (Document, error) {
	raw, err := io.ReadAll(body)
	if err != nil {
		return Document{}, fmt.Errorf("failed to read markup: %w", err)
	}
	// The HTML5 parser synthesizes <body> for any input, so empty markup is
	// the only way to end up without one.
	if len(bytes.TrimSpace(raw)) == 0 {
		return Document{}, ErrNoBody
	}

	// Scripting off so <noscript> content parses as markup rather than raw text.
	root, err := html.ParseWithOptions(bytes.NewReader(raw), html.ParseOptionEnableScripting(false))
	if err != nil {
		return Document{}, fmt.Errorf("failed to parse HTML: %w", err)
	}
	doc := goquery.NewDocumentFromNode(root)

	title := NoTitle
	if t := strings.TrimSpace(doc.Find("title").First().Text()); t != "" {
		title = t
	}

	bodySel := doc.Find("body").First()
	if bodySel.Length() == 0 {
		return Document{}, ErrNoBody
	}
	if len(e.RemovedTags) > 0 {
		bodySel.Find(strings.Join(e.RemovedTags, ", ")).Remove()
	}

	var fragments []string
	collectText(bodySel.Get(0), &fragments)

	return Document{
		Title: title,
		Text:  strings.Join(fragments, "\n"),
	}, nil
}

// collectText appends the trimmed, non-empty text nodes under n in document order.
func collectText(n *html.Node, out *[]string) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			if s := strings.TrimSpace(c.Data); s != "" {
				*out = append(*out, s)
			}
		case html.ElementNode:
			collectText(c, out)
		}
	}
}

// ReadabilityExtractor keeps only the main article content of a page.
type ReadabilityExtractor struct{}

// Extract runs readability over body. pageURL resolves relative links.
func (ReadabilityExtractor) Extract(body io.Reader, pageURL *url.URL) (Document, error) {
	raw, err := io.ReadAll(body)
	if err != nil {
		return Document{}, fmt.Errorf("failed to read markup: %w", err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return Document{}, ErrNoBody
	}

	article, err := readability.FromReader(bytes.NewReader(raw), pageURL)
	if err != nil {
		return Document{}, fmt.Errorf("readability failed: %w", err)
	}

	title := strings.TrimSpace(article.Title)
	if title == "" {
		title = NoTitle
	}

	var lines []string
	for _, line := range strings.Split(article.TextContent, "\n") {
		if s := strings.TrimSpace(line); s != "" {
			lines = append(lines, s)
		}
	}

	return Document{
		Title: title,
		Text:  strings.Join(lines, "\n"),
	}, nil
}
