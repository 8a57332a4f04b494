package plist

import (
	"fmt"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/joshuapare/pbxkit/pkg/types"
)

// TokenKind identifies a lexical token.
type TokenKind uint8

const (
	TokenEOF         TokenKind = iota
	TokenString                // unquoted identifier or string
	TokenNumber                // unquoted numeral
	TokenQuoted                // quoted string, escapes decoded
	TokenComment               // /* ... */
	TokenLineComment           // // ... to end of line
	TokenDictOpen
	TokenDictClose
	TokenArrayOpen
	TokenArrayClose
	TokenSemicolon
	TokenComma
	TokenEquals
)

var tokenNames = [...]string{
	TokenEOF:         "end of input",
	TokenString:      "string",
	TokenNumber:      "number",
	TokenQuoted:      "quoted string",
	TokenComment:     "comment",
	TokenLineComment: "line comment",
	TokenDictOpen:    "'{'",
	TokenDictClose:   "'}'",
	TokenArrayOpen:   "'('",
	TokenArrayClose:  "')'",
	TokenSemicolon:   "';'",
	TokenComma:       "','",
	TokenEquals:      "'='",
}

// String implements the Stringer interface for TokenKind.
func (k TokenKind) String() string {
	if int(k) < len(tokenNames) {
		return tokenNames[k]
	}
	return fmt.Sprintf("TokenKind(%d)", int(k))
}

// IsScalar reports whether the token can be a key or a scalar value.
func (k TokenKind) IsScalar() bool {
	return k == TokenString || k == TokenNumber || k == TokenQuoted
}

// Token is one lexical unit with its source position.
type Token struct {
	Kind   TokenKind
	Text   string // decoded text; comment body for comments
	Raw    string // exact source bytes
	Offset int    // byte offset of the first byte
	Line   int    // 1-based
	Col    int    // 1-based, in bytes
}

// Lexer turns property-list source into tokens on demand.
//
// The lexer is lazy and pure: Next scans only as far as the next token and
// Seek restarts scanning at any byte offset.
type Lexer struct {
	src       []byte
	pos       int
	line      int
	col       int
	maxString int
}

// NewLexer returns a lexer positioned at the start of src.
func NewLexer(src []byte) *Lexer {
	return &Lexer{src: src, line: 1, col: 1}
}

// SetMaxStringLen bounds the decoded length of a single string. Zero
// disables the check.
func (l *Lexer) SetMaxStringLen(n int) { l.maxString = n }

// Offset returns the current byte offset.
func (l *Lexer) Offset() int { return l.pos }

// Seek restarts scanning at offset.
func (l *Lexer) Seek(offset int) error {
	if offset < 0 || offset > len(l.src) {
		return fmt.Errorf("plist: seek offset %d out of range [0,%d]", offset, len(l.src))
	}
	l.pos, l.line, l.col = offset, 1, 1
	for _, c := range l.src[:offset] {
		if c == '\n' {
			l.line++
			l.col = 1
		} else {
			l.col++
		}
	}
	return nil
}

// Tokenize scans the whole input, comments included.
func Tokenize(src []byte) ([]Token, error) {
	l := NewLexer(src)
	var toks []Token
	for {
		tok, err := l.Next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.Kind == TokenEOF {
			return toks, nil
		}
	}
}

// Next returns the next token. At end of input it returns a TokenEOF token
// and a nil error on every call.
func (l *Lexer) Next() (Token, error) {
	l.skipSpace()
	tok := Token{Offset: l.pos, Line: l.line, Col: l.col}
	if l.pos >= len(l.src) {
		tok.Kind = TokenEOF
		return tok, nil
	}

	c := l.src[l.pos]
	switch c {
	case DictOpen:
		return l.punct(tok, TokenDictOpen), nil
	case DictClose:
		return l.punct(tok, TokenDictClose), nil
	case ArrayOpen:
		return l.punct(tok, TokenArrayOpen), nil
	case ArrayClose:
		return l.punct(tok, TokenArrayClose), nil
	case Terminator:
		return l.punct(tok, TokenSemicolon), nil
	case Separator:
		return l.punct(tok, TokenComma), nil
	case Assign:
		return l.punct(tok, TokenEquals), nil
	case Quote, SingleQuote:
		return l.quoted(tok, c)
	}

	if l.hasPrefix(BlockCommentOpen) {
		return l.blockComment(tok)
	}
	if l.hasPrefix(LineCommentPrefix) {
		return l.lineComment(tok), nil
	}
	if isBareChar(c) {
		return l.bare(tok), nil
	}

	r, _ := utf8.DecodeRune(l.src[l.pos:])
	return tok, l.errorf(tok, fmt.Sprintf("unexpected character %q", r), "a token")
}

func (l *Lexer) skipSpace() {
	for l.pos < len(l.src) {
		switch l.src[l.pos] {
		case ' ', '\t', '\r', '\n', '\f', '\v':
			l.advance(1)
		default:
			return
		}
	}
}

func (l *Lexer) advance(n int) {
	for i := 0; i < n && l.pos < len(l.src); i++ {
		if l.src[l.pos] == '\n' {
			l.line++
			l.col = 1
		} else {
			l.col++
		}
		l.pos++
	}
}

func (l *Lexer) hasPrefix(p string) bool {
	return len(l.src)-l.pos >= len(p) && string(l.src[l.pos:l.pos+len(p)]) == p
}

func (l *Lexer) punct(tok Token, kind TokenKind) Token {
	tok.Kind = kind
	tok.Raw = string(l.src[l.pos])
	tok.Text = tok.Raw
	l.advance(1)
	return tok
}

func (l *Lexer) blockComment(tok Token) (Token, error) {
	body := l.pos + len(BlockCommentOpen)
	end := strings.Index(string(l.src[body:]), BlockCommentClose)
	if end < 0 {
		return tok, l.errorf(tok, "unterminated comment", "'"+BlockCommentClose+"'")
	}
	stop := body + end + len(BlockCommentClose)
	tok.Kind = TokenComment
	tok.Raw = string(l.src[l.pos:stop])
	tok.Text = strings.TrimSpace(string(l.src[body : body+end]))
	l.advance(stop - l.pos)
	return tok, nil
}

func (l *Lexer) lineComment(tok Token) Token {
	stop := l.pos
	for stop < len(l.src) && l.src[stop] != '\n' {
		stop++
	}
	tok.Kind = TokenLineComment
	tok.Raw = strings.TrimSuffix(string(l.src[l.pos:stop]), "\r")
	tok.Text = strings.TrimSpace(strings.TrimPrefix(tok.Raw, LineCommentPrefix))
	l.advance(stop - l.pos)
	return tok
}

// isBareChar reports whether c may appear in an unquoted string when
// reading. The set is wider than the one the writer leaves unquoted.
func isBareChar(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	}
	switch c {
	case '_', '$', '/', ':', '.', '-', '+':
		return true
	}
	return false
}

func (l *Lexer) bare(tok Token) Token {
	start := l.pos
	for l.pos < len(l.src) && isBareChar(l.src[l.pos]) {
		if l.hasPrefix(LineCommentPrefix) || l.hasPrefix(BlockCommentOpen) {
			break
		}
		l.advance(1)
	}
	tok.Raw = string(l.src[start:l.pos])
	tok.Text = tok.Raw
	tok.Kind = TokenString
	if numberRe.MatchString(tok.Text) {
		tok.Kind = TokenNumber
	}
	return tok
}

func (l *Lexer) quoted(tok Token, q byte) (Token, error) {
	start := l.pos
	l.advance(1)

	var b strings.Builder
	for {
		if l.pos >= len(l.src) {
			return tok, l.errorf(tok, "unterminated quoted string", "closing "+string(q))
		}
		if l.maxString > 0 && b.Len() > l.maxString {
			return tok, l.errorf(tok, fmt.Sprintf("string exceeds limit of %d bytes", l.maxString), "")
		}
		c := l.src[l.pos]
		if c == q {
			l.advance(1)
			break
		}
		if c != Escape {
			b.WriteByte(c)
			l.advance(1)
			continue
		}
		if err := l.escape(&b); err != nil {
			return tok, err
		}
	}

	tok.Kind = TokenQuoted
	tok.Raw = string(l.src[start:l.pos])
	tok.Text = b.String()
	return tok, nil
}

// escape decodes one escape sequence starting at the backslash.
func (l *Lexer) escape(b *strings.Builder) error {
	at := Token{Offset: l.pos, Line: l.line, Col: l.col}
	if l.pos+1 >= len(l.src) {
		return l.errorf(at, "unterminated quoted string", "escape character")
	}
	e := l.src[l.pos+1]
	switch e {
	case 'n':
		b.WriteByte('\n')
	case 't':
		b.WriteByte('\t')
	case 'r':
		b.WriteByte('\r')
	case 'a':
		b.WriteByte('\a')
	case 'b':
		b.WriteByte('\b')
	case 'f':
		b.WriteByte('\f')
	case 'v':
		b.WriteByte('\v')
	case '\\', '"', '\'', '\n':
		b.WriteByte(e)
	case 'U', 'u':
		r, n, ok := l.unicodeEscape(l.pos)
		if !ok {
			return l.errorf(at, "invalid unicode escape", "four hex digits after \\U")
		}
		b.WriteRune(r)
		l.advance(n)
		return nil
	default:
		if e < '0' || e > '7' {
			return l.errorf(at, fmt.Sprintf("invalid escape sequence \\%c", e), "one of \\\\ \\\" \\n \\t \\r \\a \\b \\f \\v \\U or octal")
		}
		val, n := 0, 0
		for n < maxOctalDigits && l.pos+1+n < len(l.src) {
			d := l.src[l.pos+1+n]
			if d < '0' || d > '7' {
				break
			}
			val = val*8 + int(d-'0')
			n++
		}
		if val > 0xFF {
			return l.errorf(at, fmt.Sprintf("octal escape \\%o out of range", val), "value at most \\377")
		}
		if val < utf8.RuneSelf {
			b.WriteByte(byte(val))
		} else {
			b.WriteRune(charmap.ISO8859_1.DecodeByte(byte(val)))
		}
		l.advance(1 + n)
		return nil
	}
	l.advance(2)
	return nil
}

// unicodeEscape decodes \Uxxxx at pos, joining a following low surrogate.
// It returns the rune and the number of bytes consumed.
func (l *Lexer) unicodeEscape(pos int) (rune, int, bool) {
	hi, ok := l.hex4(pos + 2)
	if !ok {
		return 0, 0, false
	}
	n := 2 + unicodeEscapeDigits
	r := rune(hi)
	if utf16.IsSurrogate(r) && pos+n+1 < len(l.src) && l.src[pos+n] == Escape &&
		(l.src[pos+n+1] == 'U' || l.src[pos+n+1] == 'u') {
		if lo, ok := l.hex4(pos + n + 2); ok {
			if joined := utf16.DecodeRune(r, rune(lo)); joined != utf8.RuneError {
				return joined, 2 * n, true
			}
		}
	}
	return r, n, true
}

func (l *Lexer) hex4(pos int) (uint16, bool) {
	if pos+unicodeEscapeDigits > len(l.src) {
		return 0, false
	}
	var v uint16
	for _, c := range l.src[pos : pos+unicodeEscapeDigits] {
		var d byte
		switch {
		case c >= '0' && c <= '9':
			d = c - '0'
		case c >= 'a' && c <= 'f':
			d = c - 'a' + 10
		case c >= 'A' && c <= 'F':
			d = c - 'A' + 10
		default:
			return 0, false
		}
		v = v<<4 | uint16(d)
	}
	return v, true
}

func (l *Lexer) errorf(at Token, msg, expected string) error {
	return &types.LexError{
		Offset:   at.Offset,
		Line:     at.Line,
		Col:      at.Col,
		Msg:      msg,
		Expected: expected,
	}
}
