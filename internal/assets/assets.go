// Package assets builds the page stylesheets: it writes the highlighter
// partial, compiles the SCSS entry points and names every output after a
// digest of its content.
package assets

import (
	"bytes"
	"context"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bep/golibsass/libsass"
	"github.com/charmbracelet/log"

	"pyformat/internal/domain"
)

const (
	// HighlightPartial is written into the sass dir before compiling.
	HighlightPartial = "_chroma.scss"
	// HashLength is the number of hex digits of the digest in output names.
	HashLength = 8
)

// StyleWriter produces the highlighter rules.
type StyleWriter interface {
	WriteCSS(w io.Writer) error
}

// Progress is told about each compiled entry point.
type Progress interface {
	Step(ok bool)
}

// Compiler turns a directory of SCSS into hashed CSS files.
type Compiler struct {
	logger   *log.Logger
	style    StyleWriter
	progress Progress
}

// NewCompiler creates a Compiler. style may be nil, in which case no
// partial is written.
func NewCompiler(logger *log.Logger, style StyleWriter) *Compiler {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Compiler{logger: logger, style: style}
}

// WithProgress reports every compiled file to p.
func (c *Compiler) WithProgress(p Progress) *Compiler {
	c.progress = p
	return c
}

// EntryPoints lists the SCSS files of sassDir that are compiled on their
// own, sorted by name. Partials (leading underscore) are skipped.
func EntryPoints(sassDir string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(sassDir, "*.scss"))
	if err != nil {
		return nil, fmt.Errorf("list scss in %s: %w", sassDir, err)
	}
	var entries []string
	for _, m := range matches {
		if !strings.HasPrefix(filepath.Base(m), "_") {
			entries = append(entries, m)
		}
	}
	sort.Strings(entries)
	return entries, nil
}

// Generate compiles every entry point of sassDir into cssDir and returns
// the mapping from source file name to output file name.
func (c *Compiler) Generate(ctx context.Context, sassDir, cssDir string) (domain.StyleMapping, error) {
	c.logger.Info("Generating CSS.")
	if err := os.MkdirAll(cssDir, 0o755); err != nil {
		return nil, fmt.Errorf("create css dir %s: %w", cssDir, err)
	}

	if c.style != nil {
		var partial bytes.Buffer
		if err := c.style.WriteCSS(&partial); err != nil {
			return nil, err
		}
		path := filepath.Join(sassDir, HighlightPartial)
		if err := os.WriteFile(path, partial.Bytes(), 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", path, err)
		}
	}

	entries, err := EntryPoints(sassDir)
	if err != nil {
		return nil, err
	}

	mapping := make(domain.StyleMapping, len(entries))
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		target, err := c.Compile(entry, cssDir)
		if c.progress != nil {
			c.progress.Step(err == nil)
		}
		if err != nil {
			return nil, err
		}
		mapping[filepath.Base(entry)] = filepath.Base(target)
	}
	return mapping, nil
}

// Compile builds one SCSS file in compressed style and writes
// <stem>.<digest>.css together with its source map. It returns the path
// of the CSS file.
func (c *Compiler) Compile(source, cssDir string) (string, error) {
	c.logger.Info("Compiling SCSS.", "source", source)
	src, err := os.ReadFile(source)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", source, err)
	}

	// The digest is taken over the output without the source map reference
	plain, err := transpile(string(src), filepath.Dir(source), libsass.SourceMapOptions{})
	if err != nil {
		return "", fmt.Errorf("compile %s: %w", source, err)
	}
	stem := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	target := filepath.Join(cssDir, stem+"."+Digest(plain.CSS)+".css")
	mapPath := target + ".map"

	result, err := transpile(string(src), filepath.Dir(source), libsass.SourceMapOptions{
		Filename:   mapPath,
		OutputPath: target,
		Contents:   true,
		InputPath:  source,
	})
	if err != nil {
		return "", fmt.Errorf("compile %s: %w", source, err)
	}
	if err := os.WriteFile(target, []byte(result.CSS), 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", target, err)
	}
	if err := os.WriteFile(mapPath, []byte(result.SourceMapContent), 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", mapPath, err)
	}
	c.logger.Debug("Compiled SCSS.", "source", source, "target", target)
	return target, nil
}

func transpile(src, includeDir string, sourceMap libsass.SourceMapOptions) (libsass.Result, error) {
	transpiler, err := libsass.New(libsass.Options{
		IncludePaths:     []string{includeDir},
		OutputStyle:      libsass.CompressedStyle,
		SourceMapOptions: sourceMap,
	})
	if err != nil {
		return libsass.Result{}, err
	}
	return transpiler.Execute(src)
}

// Digest returns the first HashLength hex digits of the SHA-512 of css.
func Digest(css string) string {
	sum := sha512.Sum512([]byte(css))
	return hex.EncodeToString(sum[:])[:HashLength]
}
