package plist

import (
	"bytes"
	"strings"
)

// Writer emits tree values in Xcode's layout: tab indentation, one entry
// per line for multi-line containers, "key = value; " runs for inline ones.
type Writer struct {
	buf *bytes.Buffer
}

// NewWriter returns a writer appending to buf.
func NewWriter(buf *bytes.Buffer) *Writer {
	return &Writer{buf: buf}
}

// Bytes returns the written output.
func (w *Writer) Bytes() []byte { return w.buf.Bytes() }

// WriteString writes s verbatim.
func (w *Writer) WriteString(s string) { w.buf.WriteString(s) }

// WriteByte writes c verbatim.
func (w *Writer) WriteByte(c byte) error { return w.buf.WriteByte(c) }

// Indent writes depth tabs.
func (w *Writer) Indent(depth int) {
	for i := 0; i < depth; i++ {
		w.buf.WriteByte(Indent)
	}
}

// Comment writes " /* text */". Empty text writes nothing.
func (w *Writer) Comment(text string) {
	if text == "" {
		return
	}
	w.buf.WriteString(" " + BlockCommentOpen + " ")
	w.buf.WriteString(sanitizeComment(text))
	w.buf.WriteString(" " + BlockCommentClose)
}

// sanitizeComment keeps a generated comment from closing itself early.
func sanitizeComment(s string) string {
	return strings.ReplaceAll(s, BlockCommentClose, "*_/")
}

// Scalar writes the lexeme of s followed by its stored comment.
func (w *Writer) Scalar(s *Scalar) {
	w.buf.WriteString(s.Lexeme())
	w.Comment(s.Comment)
}

// Value writes v in multi-line layout at the given depth. Containers that
// were inline in the source stay inline.
func (w *Writer) Value(v Value, depth int) {
	switch t := v.(type) {
	case *Scalar:
		w.Scalar(t)
	case *Dict:
		if t.Inline {
			w.InlineValue(t)
			return
		}
		w.Dict(t, depth, w.Value)
	case *Array:
		if t.Inline {
			w.InlineValue(t)
			return
		}
		w.Array(t, depth, w.Value)
	}
}

// Dict writes d over multiple lines, using item to write each value.
func (w *Writer) Dict(d *Dict, depth int, item func(Value, int)) {
	w.buf.WriteByte(DictOpen)
	w.buf.WriteByte('\n')
	for _, e := range d.Entries() {
		w.Indent(depth + 1)
		w.Scalar(e.Key)
		w.buf.WriteString(" = ")
		item(e.Value, depth+1)
		w.buf.WriteString(";\n")
	}
	w.Indent(depth)
	w.buf.WriteByte(DictClose)
}

// Array writes a over multiple lines, using item to write each element.
func (w *Writer) Array(a *Array, depth int, item func(Value, int)) {
	w.buf.WriteByte(ArrayOpen)
	w.buf.WriteByte('\n')
	for _, v := range a.Items {
		w.Indent(depth + 1)
		item(v, depth+1)
		w.buf.WriteString(",\n")
	}
	w.Indent(depth)
	w.buf.WriteByte(ArrayClose)
}

// InlineValue writes v on a single line.
func (w *Writer) InlineValue(v Value) {
	switch t := v.(type) {
	case *Scalar:
		w.Scalar(t)
	case *Dict:
		w.buf.WriteByte(DictOpen)
		for _, e := range t.Entries() {
			w.Scalar(e.Key)
			w.buf.WriteString(" = ")
			w.InlineValue(e.Value)
			w.buf.WriteString("; ")
		}
		w.buf.WriteByte(DictClose)
	case *Array:
		w.buf.WriteByte(ArrayOpen)
		for _, item := range t.Items {
			w.InlineValue(item)
			w.buf.WriteString(", ")
		}
		w.buf.WriteByte(ArrayClose)
	}
}

// Marshal writes doc without any project-specific formatting. Package pbx
// uses its own encoder for project files; Marshal serves plain plists such
// as the projection round trips and tests.
func Marshal(doc *Document) ([]byte, error) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	if doc.Header != "" {
		w.WriteString(doc.Header)
		w.WriteString("\n")
	}
	root := doc.Root
	if root == nil {
		root = NewDict()
	}
	w.Value(root, 0)
	if doc.TrailingNewline {
		w.WriteString("\n")
	}
	return EncodeOutput(buf.Bytes(), doc.Encoding)
}
