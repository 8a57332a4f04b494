package plist

import (
	"bytes"
	"fmt"

	"github.com/joshuapare/pbxkit/pkg/types"
)

// Parse decodes src into a Document. Limits with zero fields are not
// enforced; pass types.DefaultLimits() for the usual bounds.
func Parse(src []byte, limits types.Limits) (*Document, error) {
	if limits.MaxInputSize > 0 && len(src) > limits.MaxInputSize {
		return nil, &types.LexError{
			Offset: limits.MaxInputSize,
			Line:   1,
			Col:    1,
			Msg:    fmt.Sprintf("input of %d bytes exceeds limit of %d", len(src), limits.MaxInputSize),
		}
	}

	text, enc, err := DecodeInput(src)
	if err != nil {
		return nil, err
	}

	doc := &Document{
		Encoding:        enc,
		TrailingNewline: bytes.HasSuffix(text, []byte("\n")),
	}
	if bytes.HasPrefix(text, []byte(LineCommentPrefix)) {
		line, _, _ := bytes.Cut(text, []byte("\n"))
		doc.Header = string(bytes.TrimSuffix(line, []byte("\r")))
	}

	p := newParser(text, limits)
	if err := p.advance(); err != nil {
		return nil, err
	}
	if p.tok.Kind != TokenDictOpen {
		return nil, p.fail("document must start with a dictionary", "'{'")
	}
	root, err := p.parseDict()
	if err != nil {
		return nil, err
	}
	if p.tok.Kind != TokenEOF {
		return nil, p.fail("unexpected data after top-level dictionary", "end of input")
	}
	doc.Root = root
	return doc, nil
}

// ParseValue decodes a single value (dictionary, array or scalar) that is
// not wrapped in a document. It is used for fragments such as settings.
func ParseValue(src []byte) (Value, error) {
	p := newParser(src, types.Limits{})
	if err := p.advance(); err != nil {
		return nil, err
	}
	v, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	if p.tok.Kind != TokenEOF {
		return nil, p.fail("unexpected data after value", "end of input")
	}
	return v, nil
}

type parser struct {
	lx     *Lexer
	tok    Token
	last   *Scalar // scalar that a following comment attaches to
	depth  int
	limits types.Limits
}

func newParser(src []byte, limits types.Limits) *parser {
	lx := NewLexer(src)
	lx.SetMaxStringLen(limits.MaxStringLen)
	return &parser{lx: lx, limits: limits}
}

// advance moves to the next non-comment token. A block comment that
// directly follows a key or scalar value is attached to it.
func (p *parser) advance() error {
	for {
		tok, err := p.lx.Next()
		if err != nil {
			return err
		}
		if tok.Kind == TokenComment || tok.Kind == TokenLineComment {
			if tok.Kind == TokenComment && p.last != nil && p.last.Comment == "" {
				p.last.Comment = tok.Text
			}
			continue
		}
		p.tok = tok
		p.last = nil
		return nil
	}
}

func (p *parser) scalar() *Scalar {
	s := &Scalar{Text: p.tok.Text, Raw: p.tok.Raw}
	switch p.tok.Kind {
	case TokenQuoted:
		s.Kind = Quoted
	case TokenNumber:
		s.Kind = Number
	default:
		s.Kind = Unquoted
	}
	return s
}

func (p *parser) parseValue() (Value, error) {
	switch {
	case p.tok.Kind == TokenDictOpen:
		return p.parseDict()
	case p.tok.Kind == TokenArrayOpen:
		return p.parseArray()
	case p.tok.Kind.IsScalar():
		s := p.scalar()
		p.last = s
		if err := p.advance(); err != nil {
			return nil, err
		}
		return s, nil
	case p.tok.Kind == TokenEOF:
		return nil, p.fail("unexpected end of input", "a value")
	default:
		return nil, p.fail("unexpected token", "a value")
	}
}

func (p *parser) enter() error {
	p.depth++
	if p.limits.MaxDepth > 0 && p.depth > p.limits.MaxDepth {
		return p.fail(fmt.Sprintf("nesting exceeds limit of %d", p.limits.MaxDepth), "")
	}
	return nil
}

func (p *parser) parseDict() (*Dict, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer func() { p.depth-- }()

	open := p.tok
	d := NewDict()
	if err := p.advance(); err != nil {
		return nil, err
	}
	for {
		switch {
		case p.tok.Kind == TokenDictClose:
			d.Inline = p.tok.Line == open.Line
			return d, p.advance()

		case p.tok.Kind == TokenEOF:
			return nil, p.fail("unbalanced punctuation: unterminated dictionary", "'}'")

		case p.tok.Kind.IsScalar():
			keyTok := p.tok
			key := p.scalar()
			if d.Has(key.Text) {
				return nil, p.failAt(keyTok, fmt.Sprintf("duplicate key %q", key.Text), "unique key")
			}
			p.last = key
			if err := p.advance(); err != nil {
				return nil, err
			}
			if p.tok.Kind != TokenEquals {
				return nil, p.fail(fmt.Sprintf("missing '=' after key %q", key.Text), "'='")
			}
			if err := p.advance(); err != nil {
				return nil, err
			}
			val, err := p.parseValue()
			if err != nil {
				return nil, err
			}
			if p.tok.Kind != TokenSemicolon {
				return nil, p.fail(fmt.Sprintf("missing ';' after value of %q", key.Text), "';'")
			}
			d.Add(key, val)
			if err := p.advance(); err != nil {
				return nil, err
			}

		case p.tok.Kind == TokenArrayClose:
			return nil, p.fail("unbalanced punctuation", "key or '}'")

		default:
			return nil, p.fail("unexpected token", "key or '}'")
		}
	}
}

func (p *parser) parseArray() (*Array, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer func() { p.depth-- }()

	open := p.tok
	a := &Array{}
	if err := p.advance(); err != nil {
		return nil, err
	}
	for {
		switch p.tok.Kind {
		case TokenArrayClose:
			a.Inline = p.tok.Line == open.Line
			return a, p.advance()
		case TokenEOF:
			return nil, p.fail("unbalanced punctuation: unterminated array", "')'")
		case TokenDictClose:
			return nil, p.fail("unbalanced punctuation", "value or ')'")
		}

		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		a.Items = append(a.Items, v)

		switch p.tok.Kind {
		case TokenComma:
			if err := p.advance(); err != nil {
				return nil, err
			}
		case TokenArrayClose:
		default:
			return nil, p.fail("unexpected token in array", "',' or ')'")
		}
	}
}

func (p *parser) fail(msg, expected string) error {
	return p.failAt(p.tok, msg, expected)
}

func (p *parser) failAt(tok Token, msg, expected string) error {
	raw := tok.Raw
	if tok.Kind == TokenEOF {
		raw = ""
	}
	return &types.SyntaxError{
		Offset:   tok.Offset,
		Line:     tok.Line,
		Col:      tok.Col,
		Token:    raw,
		Msg:      msg,
		Expected: expected,
	}
}
