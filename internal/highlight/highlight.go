// Package highlight renders implementation listings as syntax-highlighted
// HTML using chroma.
package highlight

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// UnknownThemeError is returned by New for a style chroma does not ship.
type UnknownThemeError struct {
	Theme string
}

func (e *UnknownThemeError) Error() string {
	return fmt.Sprintf("unknown highlighting theme %q", e.Theme)
}

// UnknownLanguageError is returned when no grammar matches a language name.
type UnknownLanguageError struct {
	Language string
}

func (e *UnknownLanguageError) Error() string {
	return fmt.Sprintf("no highlighting grammar for %q", e.Language)
}

// Highlighter formats source code with a fixed theme.
// It is safe for concurrent use.
type Highlighter struct {
	theme     string
	style     *chroma.Style
	formatter *chromahtml.Formatter
}

// New returns a highlighter for the named chroma style.
func New(theme string) (*Highlighter, error) {
	style, ok := styles.Registry[theme]
	if !ok {
		return nil, &UnknownThemeError{Theme: theme}
	}
	return &Highlighter{
		theme: theme,
		style: style,
		formatter: chromahtml.New(
			chromahtml.WithClasses(false),
			chromahtml.TabWidth(4),
		),
	}, nil
}

// Theme returns the style name the highlighter was built with.
func (h *Highlighter) Theme() string { return h.theme }

// Highlight renders code using the grammar registered under language. The
// language is a display name such as "Python" or "C++", the same names the
// extension classifier produces.
func (h *Highlighter) Highlight(code, language string) (template.HTML, error) {
	lexer := lexers.Get(language)
	if lexer == nil {
		return "", &UnknownLanguageError{Language: language}
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return "", fmt.Errorf("tokenise %s: %w", language, err)
	}
	var buf bytes.Buffer
	if err := h.formatter.Format(&buf, h.style, iterator); err != nil {
		return "", fmt.Errorf("format %s: %w", language, err)
	}
	// #nosec G203 -- chroma escapes token text
	return template.HTML(buf.String()), nil
}
