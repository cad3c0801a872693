// Package highlight renders source snippets as class-annotated HTML and
// produces the matching stylesheet.
package highlight

import (
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

const (
	Python = "python"
	Rust   = "rust"

	// DefaultStyle is the colour scheme of the generated stylesheet.
	DefaultStyle = "pygments"
)

// Highlighter turns code into HTML fragments
type Highlighter struct {
	style     *chroma.Style
	formatter *html.Formatter
}

// New creates a Highlighter using the named style. Unknown names fall
// back to the library default.
func New(style string) *Highlighter {
	return &Highlighter{
		style:     styles.Get(style),
		formatter: html.New(html.WithClasses(true)),
	}
}

// Highlight renders code written in lang. An unknown language is
// rendered as plain text.
func (h *Highlighter) Highlight(code, lang string) (string, error) {
	lexer := lexers.Get(lang)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return "", fmt.Errorf("tokenise %s: %w", lang, err)
	}
	var b strings.Builder
	if err := h.formatter.Format(&b, h.style, iterator); err != nil {
		return "", fmt.Errorf("format %s: %w", lang, err)
	}
	return b.String(), nil
}

// WriteCSS writes the style rules for the classes Highlight emits.
func (h *Highlighter) WriteCSS(w io.Writer) error {
	if err := h.formatter.WriteCSS(w, h.style); err != nil {
		return fmt.Errorf("write highlight css: %w", err)
	}
	return nil
}
