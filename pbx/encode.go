package pbx

import (
	"bytes"

	"github.com/joshuapare/pbxkit/pbx/plist"
)

// Encode writes g in Xcode's layout: the top-level keys in their original
// order, the objects grouped into one section per isa, and every reference
// followed by a regenerated annotation. Encoding an unmodified decoded
// graph reproduces its source bytes.
//
// Performance: objects are sorted once per call and annotations are
// resolved through maps built up front, so encoding is O(n log n) in the
// number of objects.
func Encode(g *Graph) ([]byte, error) {
	var buf bytes.Buffer
	e := &encoder{g: g, w: plist.NewWriter(&buf), ann: newAnnotator(g)}
	e.document()
	return plist.EncodeOutput(buf.Bytes(), g.Encoding)
}

type encoder struct {
	g   *Graph
	w   *plist.Writer
	ann *annotator
}

func (e *encoder) document() {
	if e.g.Header != "" {
		e.w.WriteString(e.g.Header)
		e.w.WriteString("\n")
	}
	e.w.WriteString("{\n")
	for _, ent := range e.g.top.Entries() {
		e.w.Indent(1)
		e.w.Scalar(ent.Key)
		e.w.WriteString(" = ")
		switch ent.Key.Text {
		case KeyObjects:
			e.objects()
		case KeyRootObject:
			if s, ok := ent.Value.(*plist.Scalar); ok {
				e.ref(s, false)
			} else {
				e.w.Value(ent.Value, 1)
			}
		default:
			e.w.Value(ent.Value, 1)
		}
		e.w.WriteString(";\n")
	}
	e.w.WriteString("}")
	if e.g.TrailingNewline {
		e.w.WriteString("\n")
	}
}

func (e *encoder) objects() {
	e.w.WriteString("{\n")
	var section ISA
	for _, o := range e.g.Sorted() {
		if o.ISA() != section {
			if section != "" {
				e.sectionEnd(section)
			}
			section = o.ISA()
			e.w.WriteString("\n" + plist.BlockCommentOpen + " Begin " + string(section) + " section " + plist.BlockCommentClose + "\n")
		}
		e.object(o)
	}
	if section != "" {
		e.sectionEnd(section)
	}
	e.w.Indent(1)
	e.w.WriteString("}")
}

func (e *encoder) sectionEnd(isa ISA) {
	e.w.WriteString(plist.BlockCommentOpen + " End " + string(isa) + " section " + plist.BlockCommentClose + "\n")
}

const objectDepth = 2

func (e *encoder) object(o Object) {
	e.w.Indent(objectDepth)
	e.w.WriteString(plist.QuoteString(string(o.ID())))
	e.w.Comment(e.ann.objectComment(o))
	e.w.WriteString(" = ")

	fields := o.Fields()
	if fields.Inline {
		e.w.WriteString("{")
		for _, ent := range fields.Entries() {
			e.w.Scalar(ent.Key)
			e.w.WriteString(" = ")
			e.field(o.Schema(), ent, objectDepth+1, true)
			e.w.WriteString("; ")
		}
		e.w.WriteString("};\n")
		return
	}

	e.w.WriteString("{\n")
	for _, ent := range fields.Entries() {
		e.w.Indent(objectDepth + 1)
		e.w.Scalar(ent.Key)
		e.w.WriteString(" = ")
		e.field(o.Schema(), ent, objectDepth+1, false)
		e.w.WriteString(";\n")
	}
	e.w.Indent(objectDepth)
	e.w.WriteString("};\n")
}

// field writes one field value. Reference fields get regenerated
// annotations; everything else is written as read.
func (e *encoder) field(s *Schema, ent plist.Entry, depth int, inline bool) {
	f, ok := s.Field(ent.Key.Text)
	if !ok || !f.Kind.IsRef() {
		if inline {
			e.w.InlineValue(ent.Value)
		} else {
			e.w.Value(ent.Value, depth)
		}
		return
	}

	switch v := ent.Value.(type) {
	case *plist.Scalar:
		e.ref(v, f.NoComment)
	case *plist.Array:
		item := func(x plist.Value, d int) {
			switch t := x.(type) {
			case *plist.Scalar:
				e.ref(t, f.NoComment)
			case *plist.Dict:
				e.refTable(t, d, inline)
			default:
				e.w.Value(x, d)
			}
		}
		if inline || v.Inline {
			e.w.WriteString("(")
			for _, x := range v.Items {
				item(x, depth)
				e.w.WriteString(", ")
			}
			e.w.WriteString(")")
			return
		}
		e.w.Array(v, depth, item)
	default:
		e.w.Value(ent.Value, depth)
	}
}

// refTable writes one entry of a list of identifier dictionaries such as
// projectReferences.
func (e *encoder) refTable(d *plist.Dict, depth int, inline bool) {
	val := func(x plist.Value, dd int) {
		if s, ok := x.(*plist.Scalar); ok {
			e.ref(s, false)
			return
		}
		e.w.Value(x, dd)
	}
	if inline || d.Inline {
		e.w.WriteString("{")
		for _, ent := range d.Entries() {
			e.w.Scalar(ent.Key)
			e.w.WriteString(" = ")
			val(ent.Value, depth)
			e.w.WriteString("; ")
		}
		e.w.WriteString("}")
		return
	}
	e.w.Dict(d, depth, val)
}

// ref writes an identifier and its annotation.
func (e *encoder) ref(s *plist.Scalar, noComment bool) {
	e.w.WriteString(s.Lexeme())
	if noComment {
		e.w.Comment(s.Comment)
		return
	}
	c, ok := e.ann.comment(ID(s.Text))
	if !ok {
		c = s.Comment
	}
	e.w.Comment(c)
}
