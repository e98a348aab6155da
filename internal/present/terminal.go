package present

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"
)

type styles struct {
	heading   lipgloss.Style
	strong    lipgloss.Style
	emphasis  lipgloss.Style
	strike    lipgloss.Style
	code      lipgloss.Style
	codeBlock lipgloss.Style
	link      lipgloss.Style
	quote     lipgloss.Style
	dim       lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		heading:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		strong:    r.NewStyle().Bold(true),
		emphasis:  r.NewStyle().Italic(true),
		strike:    r.NewStyle().Strikethrough(true),
		code:      r.NewStyle().Foreground(lipgloss.Color("214")),
		codeBlock: r.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("236")),
		link:      r.NewStyle().Underline(true).Foreground(lipgloss.Color("42")),
		quote:     r.NewStyle().Foreground(lipgloss.Color("242")).Italic(true),
		dim:       r.NewStyle().Foreground(lipgloss.Color("242")),
	}
}

// termRenderer walks a goldmark AST and produces styled terminal text.
// Styles are applied per line since lipgloss pads multi-line blocks.
type termRenderer struct {
	src []byte
	st  styles
}

func (r *termRenderer) render(doc ast.Node) string {
	out := strings.TrimRight(r.blocks(doc, "\n\n"), "\n")
	if out == "" {
		return ""
	}
	return out + "\n"
}

// blocks renders the block children of n joined by sep.
func (r *termRenderer) blocks(n ast.Node, sep string) string {
	var parts []string
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if s := r.block(c); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, sep)
}

func (r *termRenderer) block(n ast.Node) string {
	switch n := n.(type) {
	case *ast.Heading:
		return r.st.heading.Render(strings.Repeat("#", n.Level) + " " + r.inline(n))
	case *ast.Paragraph, *ast.TextBlock:
		return r.inline(n)
	case *ast.ThematicBreak:
		return r.st.dim.Render(strings.Repeat("─", 40))
	case *ast.FencedCodeBlock, *ast.CodeBlock, *ast.HTMLBlock:
		lines := n.Lines()
		out := make([]string, 0, lines.Len())
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			line := strings.TrimRight(string(seg.Value(r.src)), "\r\n")
			if _, raw := n.(*ast.HTMLBlock); raw {
				out = append(out, line)
				continue
			}
			out = append(out, "  "+r.st.codeBlock.Render(line))
		}
		return strings.Join(out, "\n")
	case *ast.Blockquote:
		inner := r.blocks(n, "\n\n")
		lines := strings.Split(inner, "\n")
		for i, line := range lines {
			lines[i] = r.st.quote.Render("│ ") + line
		}
		return strings.Join(lines, "\n")
	case *ast.List:
		return r.list(n)
	case *extast.Table:
		return r.table(n)
	default:
		return r.blocks(n, "\n\n")
	}
}

func (r *termRenderer) list(l *ast.List) string {
	sep := "\n\n"
	if l.IsTight {
		sep = "\n"
	}
	var items []string
	i := 0
	for c := l.FirstChild(); c != nil; c = c.NextSibling() {
		marker := "• "
		if l.IsOrdered() {
			marker = fmt.Sprintf("%d. ", l.Start+i)
		}
		i++
		pad := strings.Repeat(" ", len([]rune(marker)))

		lines := strings.Split(r.blocks(c, sep), "\n")
		for j, line := range lines {
			switch {
			case j == 0:
				lines[j] = marker + line
			case line != "":
				lines[j] = pad + line
			}
		}
		items = append(items, strings.Join(lines, "\n"))
	}
	return strings.Join(items, sep)
}

func (r *termRenderer) table(t *extast.Table) string {
	var rows []string
	for row := t.FirstChild(); row != nil; row = row.NextSibling() {
		var cells []string
		for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
			cells = append(cells, r.inline(cell))
		}
		line := strings.Join(cells, " │ ")
		if _, header := row.(*extast.TableHeader); header {
			line = r.st.strong.Render(line)
		}
		rows = append(rows, line)
	}
	return strings.Join(rows, "\n")
}

// inline renders the inline children of n.
func (r *termRenderer) inline(n ast.Node) string {
	var b strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		b.WriteString(r.inlineNode(c))
	}
	return b.String()
}

func (r *termRenderer) inlineNode(n ast.Node) string {
	switch n := n.(type) {
	case *ast.Text:
		s := string(n.Segment.Value(r.src))
		switch {
		case n.HardLineBreak():
			s += "\n"
		case n.SoftLineBreak():
			s += " "
		}
		return s
	case *ast.String:
		return string(n.Value)
	case *ast.Emphasis:
		if n.Level >= 2 {
			return r.st.strong.Render(r.inline(n))
		}
		return r.st.emphasis.Render(r.inline(n))
	case *extast.Strikethrough:
		return r.st.strike.Render(r.inline(n))
	case *ast.CodeSpan:
		return r.st.code.Render(r.inline(n))
	case *ast.Link:
		label := r.inline(n)
		dest := string(n.Destination)
		if dest == "" || dest == label {
			return r.st.link.Render(label)
		}
		return r.st.link.Render(label) + r.st.dim.Render(" ("+dest+")")
	case *ast.AutoLink:
		return r.st.link.Render(string(n.URL(r.src)))
	case *ast.Image:
		return r.st.dim.Render("[image: " + r.inline(n) + "]")
	case *ast.RawHTML:
		var b strings.Builder
		for i := 0; i < n.Segments.Len(); i++ {
			seg := n.Segments.At(i)
			b.Write(seg.Value(r.src))
		}
		return b.String()
	case *extast.TaskCheckBox:
		if n.IsChecked {
			return "[x] "
		}
		return "[ ] "
	default:
		return r.inline(n)
	}
}
