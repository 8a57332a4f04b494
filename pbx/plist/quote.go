package plist

import (
	"fmt"
	"strings"
)

// isPlainChar reports whether c may be written without quotes.
func isPlainChar(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	}
	switch c {
	case '_', '$', '/', ':', '.':
		return true
	}
	return false
}

// NeedsQuote reports whether s must be quoted when written. Empty strings,
// strings containing anything outside [A-Za-z0-9_$/:.] and strings that
// would read back as a comment are quoted.
func NeedsQuote(s string) bool {
	if s == "" {
		return true
	}
	for i := 0; i < len(s); i++ {
		if !isPlainChar(s[i]) {
			return true
		}
	}
	return strings.Contains(s, LineCommentPrefix) || strings.Contains(s, BlockCommentOpen)
}

// QuoteString returns s as the writer emits it: bare when allowed,
// otherwise quoted and escaped.
func QuoteString(s string) string {
	if !NeedsQuote(s) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte(Quote)
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case Escape:
			b.WriteString(`\\`)
		case Quote:
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if c < 0x20 {
				fmt.Fprintf(&b, `\U%04x`, c)
			} else {
				b.WriteByte(c)
			}
		}
	}
	b.WriteByte(Quote)
	return b.String()
}
