package extract

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

type literalKind int

const (
	literalStr literalKind = iota
	literalBytes
	literalFormatted
)

// literal is a decoded Python string literal.
type literal struct {
	kind  literalKind
	value string
}

// parseLiteral decodes the source text of a single Python string literal,
// prefix and quotes included.
func parseLiteral(raw string) (literal, bool) {
	i := 0
	for i < len(raw) && i < 3 && strings.ContainsRune("rRbBuUfF", rune(raw[i])) {
		i++
	}
	prefix := strings.ToLower(raw[:i])
	rest := raw[i:]

	var quote string
	switch {
	case strings.HasPrefix(rest, `"""`), strings.HasPrefix(rest, `'''`):
		quote = rest[:3]
	case strings.HasPrefix(rest, `"`), strings.HasPrefix(rest, `'`):
		quote = rest[:1]
	default:
		return literal{}, false
	}
	if len(rest) < 2*len(quote) || !strings.HasSuffix(rest, quote) {
		return literal{}, false
	}
	body := rest[len(quote) : len(rest)-len(quote)]

	lit := literal{kind: literalStr}
	switch {
	case strings.Contains(prefix, "f"):
		lit.kind = literalFormatted
	case strings.Contains(prefix, "b"):
		lit.kind = literalBytes
	}
	if strings.Contains(prefix, "r") {
		lit.value = body
		return lit, true
	}
	lit.value = unescape(body, lit.kind == literalBytes)
	return lit, true
}

// unescape resolves backslash escapes the way the Python tokenizer does.
// Unknown escapes keep their backslash.
func unescape(s string, bytesLiteral bool) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 == len(s) {
			b.WriteByte(c)
			continue
		}
		i++
		switch e := s[i]; e {
		case '\n':
		case '\r':
			if i+1 < len(s) && s[i+1] == '\n' {
				i++
			}
		case '\\', '\'', '"':
			b.WriteByte(e)
		case 'a':
			b.WriteByte('\a')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case 'v':
			b.WriteByte('\v')
		case '0', '1', '2', '3', '4', '5', '6', '7':
			j := i
			for j < len(s) && j < i+3 && s[j] >= '0' && s[j] <= '7' {
				j++
			}
			n, _ := strconv.ParseUint(s[i:j], 8, 32)
			writeCode(&b, rune(n), bytesLiteral)
			i = j - 1
		case 'x':
			if n, ok := hexCode(s, i+1, 2); ok {
				writeCode(&b, n, bytesLiteral)
				i += 2
			} else {
				b.WriteString(`\x`)
			}
		case 'u', 'U':
			width := 4
			if e == 'U' {
				width = 8
			}
			if n, ok := hexCode(s, i+1, width); ok && !bytesLiteral {
				b.WriteRune(n)
				i += width
			} else {
				b.WriteByte('\\')
				b.WriteByte(e)
			}
		default:
			b.WriteByte('\\')
			b.WriteByte(e)
		}
	}
	return b.String()
}

func hexCode(s string, start, width int) (rune, bool) {
	if start+width > len(s) {
		return 0, false
	}
	n, err := strconv.ParseUint(s[start:start+width], 16, 32)
	if err != nil {
		return 0, false
	}
	return rune(n), true
}

// writeCode stores a numeric escape. Bytes literals keep the raw byte, text
// literals store the code point.
func writeCode(b *strings.Builder, r rune, bytesLiteral bool) {
	if bytesLiteral {
		b.WriteByte(byte(r))
		return
	}
	b.WriteRune(r)
}

// quoteLiteral renders s the way Python's repr renders a str: single quotes
// unless the text holds a single quote and no double quote.
func quoteLiteral(s string) string {
	quote := '\''
	if strings.ContainsRune(s, '\'') && !strings.ContainsRune(s, '"') {
		quote = '"'
	}
	var b strings.Builder
	b.WriteRune(quote)
	for _, r := range s {
		switch {
		case r == quote || r == '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		case r == '\t':
			b.WriteString(`\t`)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\r':
			b.WriteString(`\r`)
		case r < 0x20 || r == 0x7f:
			fmt.Fprintf(&b, `\x%02x`, r)
		case r == ' ' || unicode.IsPrint(r):
			b.WriteRune(r)
		case r < 0x100:
			fmt.Fprintf(&b, `\x%02x`, r)
		case r < 0x10000:
			fmt.Fprintf(&b, `\u%04x`, r)
		default:
			fmt.Fprintf(&b, `\U%08x`, r)
		}
	}
	b.WriteRune(quote)
	return b.String()
}

// quoteBytes renders a bytes value like Python's repr of bytes.
func quoteBytes(s string) string {
	quote := byte('\'')
	if strings.IndexByte(s, '\'') >= 0 && strings.IndexByte(s, '"') < 0 {
		quote = '"'
	}
	var b strings.Builder
	b.WriteByte('b')
	b.WriteByte(quote)
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == quote || c == '\\':
			b.WriteByte('\\')
			b.WriteByte(c)
		case c == '\t':
			b.WriteString(`\t`)
		case c == '\n':
			b.WriteString(`\n`)
		case c == '\r':
			b.WriteString(`\r`)
		case c < 0x20 || c >= 0x7f:
			fmt.Fprintf(&b, `\x%02x`, c)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte(quote)
	return b.String()
}

// trimQuotes removes one matching pair of enclosing quote characters.
func trimQuotes(s string) string {
	if len(s) >= 2 && (s[0] == '\'' || s[0] == '"') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}
