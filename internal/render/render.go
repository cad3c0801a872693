// Package render produces the comparison page from extracted records.
package render

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/russross/blackfriday/v2"

	"pyformat/internal/domain"
	"pyformat/internal/highlight"
)

// TemplateName is the page template looked up in the templates dir.
const TemplateName = "index.html"

//go:embed templates/index.html
var defaultTemplates embed.FS

// Highlighter renders a code snippet in the given language.
type Highlighter interface {
	Highlight(code, lang string) (string, error)
}

// Page is the data the template is executed with.
type Page struct {
	Examples []domain.Record
	Styles   domain.StyleMapping
	Version  domain.Version
}

// Renderer executes the page template.
type Renderer struct {
	logger       *log.Logger
	highlighter  Highlighter
	templatesDir string
}

// New creates a Renderer. An empty templatesDir, or one without
// index.html, uses the built-in page.
func New(logger *log.Logger, highlighter Highlighter, templatesDir string) *Renderer {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Renderer{logger: logger, highlighter: highlighter, templatesDir: templatesDir}
}

// Funcs returns the template filters.
func (r *Renderer) Funcs() template.FuncMap {
	return template.FuncMap{
		"markdown":  Markdown,
		"lettering": Lettering,
		"highlight": func(code string) (template.HTML, error) {
			return r.highlight(code, highlight.Python)
		},
		"highlight_rust": func(code string) (template.HTML, error) {
			return r.highlight(code, highlight.Rust)
		},
	}
}

func (r *Renderer) highlight(code, lang string) (template.HTML, error) {
	if r.highlighter == nil {
		return template.HTML("<pre>" + template.HTMLEscapeString(code) + "</pre>"), nil
	}
	out, err := r.highlighter.Highlight(code, lang)
	if err != nil {
		return "", err
	}
	return template.HTML(out), nil
}

func (r *Renderer) load() (*template.Template, error) {
	tmpl := template.New(TemplateName).Funcs(r.Funcs())
	if r.templatesDir != "" {
		path := filepath.Join(r.templatesDir, TemplateName)
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			r.logger.Debug("Using page template.", "path", path)
			return tmpl.Parse(string(data))
		case !errors.Is(err, fs.ErrNotExist):
			return nil, fmt.Errorf("read template %s: %w", path, err)
		}
		r.logger.Warn("Template not found, using built-in page.", "path", path)
	}
	return tmpl.ParseFS(defaultTemplates, "templates/"+TemplateName)
}

// Render writes the page for records. Output is buffered so nothing is
// written when the template fails.
func (r *Renderer) Render(w io.Writer, records []domain.Record, styles domain.StyleMapping, version domain.Version) error {
	r.logger.Info("Rendering HTML.")
	tmpl, err := r.load()
	if err != nil {
		return fmt.Errorf("parse template: %w", err)
	}

	var buf bytes.Buffer
	page := Page{Examples: records, Styles: styles, Version: version}
	if err := tmpl.Execute(&buf, page); err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	_, err = buf.WriteTo(w)
	return err
}

// RenderFile renders the page into path.
func (r *Renderer) RenderFile(path string, records []domain.Record, styles domain.StyleMapping, version domain.Version) error {
	var buf bytes.Buffer
	if err := r.Render(&buf, records, styles, version); err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Markdown renders markdown text to HTML.
func Markdown(text string) template.HTML {
	if text == "" {
		return ""
	}
	return template.HTML(blackfriday.Run([]byte(text)))
}

// Lettering wraps every character in its own <i> element.
func Lettering(text string) template.HTML {
	var b strings.Builder
	for _, r := range text {
		b.WriteString("<i>")
		b.WriteString(template.HTMLEscapeString(string(r)))
		b.WriteString("</i>")
	}
	return template.HTML(b.String())
}
