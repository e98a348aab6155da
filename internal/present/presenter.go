package present

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// Format selects how a summary is written.
type Format string

const (
	// FormatAuto picks FormatTerminal for TTYs and FormatMarkdown otherwise.
	FormatAuto     Format = "auto"
	FormatTerminal Format = "terminal"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

// Presenter writes markdown summaries to an output surface.
type Presenter struct {
	out    io.Writer
	format Format
	md     goldmark.Markdown
	styles styles
}

// New creates a Presenter writing to out. FormatAuto is resolved here.
func New(out io.Writer, format Format) (*Presenter, error) {
	switch format {
	case FormatAuto:
		format = detectFormat(out)
	case FormatTerminal, FormatMarkdown, FormatHTML:
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}

	return &Presenter{
		out:    out,
		format: format,
		md: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				extension.Typographer,
			),
			goldmark.WithParserOptions(
				parser.WithAutoHeadingID(),
			),
		),
		styles: newStyles(lipgloss.NewRenderer(out)),
	}, nil
}

// Format reports the resolved output format.
func (p *Presenter) Format() Format {
	return p.format
}

// Present renders markdown to the output.
func (p *Presenter) Present(markdown string) error {
	switch p.format {
	case FormatHTML:
		if err := p.md.Convert([]byte(markdown), p.out); err != nil {
			return fmt.Errorf("failed to render html: %w", err)
		}
		return nil
	case FormatTerminal:
		src := []byte(markdown)
		doc := p.md.Parser().Parse(text.NewReader(src))
		r := &termRenderer{src: src, st: p.styles}
		_, err := io.WriteString(p.out, r.render(doc))
		return err
	default:
		if !strings.HasSuffix(markdown, "\n") {
			markdown += "\n"
		}
		_, err := io.WriteString(p.out, markdown)
		return err
	}
}

func detectFormat(out io.Writer) Format {
	f, ok := out.(interface{ Fd() uintptr })
	if !ok {
		return FormatMarkdown
	}
	if isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()) {
		return FormatTerminal
	}
	return FormatMarkdown
}
