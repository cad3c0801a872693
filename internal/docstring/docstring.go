// Package docstring splits documentation strings into an optional title and
// the remaining details text.
package docstring

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// TitleMarker starts a title line.
const TitleMarker = "# "

// Split separates a leading "# Title" line from the rest of text. The line
// directly after the title is skipped; it is conventionally blank. Without a
// title marker the whole text is returned as details. Empty strings mean
// absent.
func Split(text string) (title, details string) {
	if strings.TrimSpace(text) == "" {
		return "", ""
	}
	lines := strings.Split(strings.TrimRightFunc(text, unicode.IsSpace), "\n")
	if strings.HasPrefix(lines[0], TitleMarker) {
		title = lines[0][len(TitleMarker):]
		if len(lines) > 2 {
			details = strings.Join(lines[2:], "\n")
		}
		return title, details
	}
	return "", strings.Join(lines, "\n")
}

// Clean removes the indentation docstrings pick up from the code around them:
// tabs are expanded, the first line loses its leading whitespace, the common
// indentation of the remaining lines is removed and blank lines at either end
// are dropped.
func Clean(doc string) string {
	lines := strings.Split(expandTabs(doc, 8), "\n")
	margin := -1
	for _, line := range lines[1:] {
		content := strings.TrimLeftFunc(line, unicode.IsSpace)
		if content == "" {
			continue
		}
		indent := utf8.RuneCountInString(line[:len(line)-len(content)])
		if margin == -1 || indent < margin {
			margin = indent
		}
	}
	lines[0] = strings.TrimLeftFunc(lines[0], unicode.IsSpace)
	if margin > 0 {
		for i := 1; i < len(lines); i++ {
			lines[i] = dropRunes(lines[i], margin)
		}
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for len(lines) > 0 && lines[0] == "" {
		lines = lines[1:]
	}
	return strings.Join(lines, "\n")
}

// dropRunes removes the first n characters of s.
func dropRunes(s string, n int) string {
	for i := range s {
		if n == 0 {
			return s[i:]
		}
		n--
	}
	return ""
}

func expandTabs(s string, size int) string {
	if !strings.Contains(s, "\t") {
		return s
	}
	var b strings.Builder
	col := 0
	for _, r := range s {
		switch r {
		case '\t':
			n := size - col%size
			b.WriteString(strings.Repeat(" ", n))
			col += n
		case '\n', '\r':
			b.WriteRune(r)
			col = 0
		default:
			b.WriteRune(r)
			col++
		}
	}
	return b.String()
}
