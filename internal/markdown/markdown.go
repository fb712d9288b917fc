// Package markdown renders page bodies to HTML fragments.
package markdown

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"os"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"

	"git.home.luguber.info/inful/algowiki/internal/logfields"
)

// Renderer converts markdown to HTML. It is safe for concurrent use.
type Renderer struct {
	md goldmark.Markdown
}

// NewRenderer returns a renderer with footnotes, GFM tables and raw HTML
// passthrough enabled. Fenced code blocks are highlighted with theme.
func NewRenderer(theme string) *Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Footnote,
			highlighting.NewHighlighting(
				highlighting.WithStyle(theme),
				highlighting.WithFormatOptions(chromahtml.TabWidth(4)),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			// Page authors are trusted; bodies may embed raw HTML.
			html.WithUnsafe(),
		),
	)
	return &Renderer{md: md}
}

// Render converts src to an HTML fragment.
func (r *Renderer) Render(src []byte) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.md.Convert(src, &buf); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}
	// #nosec G203 -- goldmark output, raw HTML intentionally passed through
	return template.HTML(buf.String()), nil
}

// RenderFile renders the markdown file at path. A missing file renders as
// an empty fragment.
func (r *Renderer) RenderFile(path string) (template.HTML, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			slog.Debug("No markdown body", logfields.Path(path))
			return "", nil
		}
		return "", fmt.Errorf("read markdown %s: %w", path, err)
	}
	return r.Render(src)
}
