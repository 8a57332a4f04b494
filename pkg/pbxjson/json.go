package pbxjson

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/joshuapare/pbxkit/internal/logger"
	"github.com/joshuapare/pbxkit/pbx"
	"github.com/joshuapare/pbxkit/pbx/plist"
	"github.com/joshuapare/pbxkit/pbx/verify"
	"github.com/joshuapare/pbxkit/pkg/pbxproj"
	"github.com/joshuapare/pbxkit/pkg/types"
)

// Marshal returns the compact JSON form of g.
func Marshal(g *pbx.Graph) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeDocument(&buf, g); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MarshalIndent is like Marshal but indents the output.
func MarshalIndent(g *pbx.Graph, prefix, indent string) ([]byte, error) {
	compact, err := Marshal(g)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, compact, prefix, indent); err != nil {
		return nil, fmt.Errorf("pbxjson: indent: %w", err)
	}
	return buf.Bytes(), nil
}

func writeDocument(buf *bytes.Buffer, g *pbx.Graph) error {
	buf.WriteByte('{')
	for i, key := range g.TopKeys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeString(buf, key); err != nil {
			return err
		}
		buf.WriteByte(':')
		if key == pbx.KeyObjects {
			if err := writeObjects(buf, g); err != nil {
				return err
			}
			continue
		}
		v, _ := g.Top(key)
		if err := writeValue(buf, v); err != nil {
			return err
		}
	}
	buf.WriteByte('}')
	return nil
}

func writeObjects(buf *bytes.Buffer, g *pbx.Graph) error {
	buf.WriteByte('{')
	for i, o := range g.Sorted() {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeString(buf, string(o.ID())); err != nil {
			return err
		}
		buf.WriteByte(':')
		if err := writeValue(buf, o.Fields()); err != nil {
			return err
		}
	}
	buf.WriteByte('}')
	return nil
}

func writeValue(buf *bytes.Buffer, v plist.Value) error {
	switch t := v.(type) {
	case *plist.Scalar:
		if isNumber(t) {
			buf.WriteString(t.Text)
			return nil
		}
		return writeString(buf, t.Text)
	case *plist.Array:
		buf.WriteByte('[')
		for i, item := range t.Items {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeValue(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case *plist.Dict:
		buf.WriteByte('{')
		for i, ent := range t.Entries() {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeString(buf, ent.Key.Text); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := writeValue(buf, ent.Value); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	default:
		return fmt.Errorf("pbxjson: unsupported value %T", v)
	}
	return nil
}

var jsonNumberRe = regexp.MustCompile(`^-?(0|[1-9][0-9]*)(\.[0-9]+)?$`)

// isNumber reports whether s was written bare as a number that JSON can
// carry unchanged. Numerals with leading zeros stay strings.
func isNumber(s *plist.Scalar) bool {
	return s.Kind == plist.Number && jsonNumberRe.MatchString(s.Text)
}

func writeString(buf *bytes.Buffer, s string) error {
	b, err := json.MarshalWithOption(s, json.DisableHTMLEscape())
	if err != nil {
		return fmt.Errorf("pbxjson: %w", err)
	}
	buf.Write(b)
	return nil
}

// Unmarshal decodes the JSON form of a project and runs the same typing
// and validation as pbxproj.Parse.
func Unmarshal(data []byte, opts pbxproj.Options) (*pbx.Graph, error) {
	log := logger.OrDiscard(opts.Logger)
	limits := pbxproj.DefaultLimits()
	if opts.Limits != nil {
		limits = *opts.Limits
	}
	if limits.MaxInputSize > 0 && len(data) > limits.MaxInputSize {
		return nil, &types.LexError{
			Offset: limits.MaxInputSize,
			Line:   1,
			Col:    1,
			Msg:    fmt.Sprintf("input of %d bytes exceeds limit of %d", len(data), limits.MaxInputSize),
		}
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	r := &reader{dec: dec, limits: limits}

	v, err := r.value(0)
	if err != nil {
		return nil, err
	}
	root, ok := v.(*plist.Dict)
	if !ok {
		return nil, r.fail("document must be a JSON object", "'{'")
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, r.fail("unexpected data after top-level object", "end of input")
	}
	inlineObjects(root)

	doc := &plist.Document{
		Header:          plist.UTF8Header,
		Root:            root,
		TrailingNewline: true,
		Encoding:        plist.EncodingUTF8,
	}
	g, err := pbx.Decode(doc, pbx.DecodeOptions{MaxObjects: limits.MaxObjects, Logger: opts.Logger})
	if err != nil {
		return nil, err
	}
	if g.Name == "" {
		g.Name = firstTargetName(g)
	}
	if !opts.SkipValidation {
		if err := verify.CheckEager(g); err != nil {
			return nil, err
		}
	}
	log.Debug("unmarshaled project", "name", g.Name, "objects", g.Len())
	return g, nil
}

type reader struct {
	dec    *json.Decoder
	limits types.Limits
	last   string
}

func (r *reader) fail(msg, expected string) error {
	return &types.SyntaxError{
		Offset:   int(r.dec.InputOffset()),
		Token:    r.last,
		Msg:      msg,
		Expected: expected,
	}
}

func (r *reader) token() (json.Token, error) {
	tok, err := r.dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			r.last = ""
			return nil, r.fail("unexpected end of input", "a value")
		}
		return nil, &types.SyntaxError{Offset: int(r.dec.InputOffset()), Msg: err.Error()}
	}
	r.last = fmt.Sprint(tok)
	return tok, nil
}

func (r *reader) value(depth int) (plist.Value, error) {
	if r.limits.MaxDepth > 0 && depth > r.limits.MaxDepth {
		return nil, r.fail(fmt.Sprintf("nesting exceeds limit of %d", r.limits.MaxDepth), "")
	}
	tok, err := r.token()
	if err != nil {
		return nil, err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return r.dict(depth + 1)
		case '[':
			return r.array(depth + 1)
		}
		return nil, r.fail("unexpected delimiter", "a value")
	case string:
		if err := r.checkLen(t); err != nil {
			return nil, err
		}
		sc := plist.NewString(t)
		if sc.Kind == plist.Number {
			// a JSON string stays a string on the next Marshal
			sc.Kind = plist.Unquoted
		}
		return sc, nil
	case json.Number:
		// the decoder's number text aliases its read buffer
		return plist.NewString(strings.Clone(t.String())), nil
	case bool:
		return nil, r.fail("booleans have no property list form", "a string or number")
	default:
		return nil, r.fail("null has no property list form", "a string or number")
	}
}

func (r *reader) checkLen(s string) error {
	if r.limits.MaxStringLen > 0 && len(s) > r.limits.MaxStringLen {
		return r.fail(fmt.Sprintf("string of %d bytes exceeds limit of %d", len(s), r.limits.MaxStringLen), "")
	}
	return nil
}

func (r *reader) dict(depth int) (*plist.Dict, error) {
	d := plist.NewDict()
	for r.dec.More() {
		tok, err := r.token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, r.fail("object key must be a string", "a key")
		}
		v, err := r.value(depth)
		if err != nil {
			return nil, err
		}
		if !d.Add(plist.NewString(key), v) {
			return nil, r.fail(fmt.Sprintf("duplicate key %q", key), "")
		}
	}
	if _, err := r.token(); err != nil { // '}'
		return nil, err
	}
	return d, nil
}

func (r *reader) array(depth int) (*plist.Array, error) {
	a := plist.NewArray()
	for r.dec.More() {
		v, err := r.value(depth)
		if err != nil {
			return nil, err
		}
		a.Items = append(a.Items, v)
	}
	if _, err := r.token(); err != nil { // ']'
		return nil, err
	}
	return a, nil
}

// firstTargetName stands in for the project name, which the file only
// records inside annotations.
func firstTargetName(g *pbx.Graph) string {
	p := g.RootProject()
	if p == nil {
		return ""
	}
	for _, id := range p.Targets() {
		if t, ok := g.Object(id); ok {
			if tl, ok := t.(pbx.TargetLike); ok {
				return tl.Name()
			}
		}
	}
	return ""
}

// inlineObjects marks the objects Xcode writes on one line.
func inlineObjects(root *plist.Dict) {
	objects, ok := root.Dict(pbx.KeyObjects)
	if !ok {
		return
	}
	for _, ent := range objects.Entries() {
		fields, ok := ent.Value.(*plist.Dict)
		if !ok {
			continue
		}
		if s, ok := pbx.Lookup(pbx.ISA(fields.Text("isa"))); ok {
			fields.Inline = s.Inline
		}
	}
}
