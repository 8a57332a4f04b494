package pbx

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/joshuapare/pbxkit/internal/logger"
	"github.com/joshuapare/pbxkit/pbx/plist"
	"github.com/joshuapare/pbxkit/pkg/types"
)

// DecodeOptions configures Decode.
type DecodeOptions struct {
	// MaxObjects bounds the size of the objects dictionary. Zero means no limit.
	MaxObjects int

	// Logger receives debug records about passthrough objects. Nil discards.
	Logger *slog.Logger
}

// projectListComment prefixes the comment Xcode writes after the project's
// configuration list; the project name follows in quotes.
const projectListComment = "Build configuration list for " + string(ISAProject) + " "

// Decode lifts a parsed document into a typed graph. It fails on the first
// object that breaks its schema; references are not checked here.
//
// Parameters:
//   - doc: Document returned by plist.Parse; its dictionaries become the
//     objects' field storage and must not be reused
//   - opts: Object limit and logger
//
// Returns:
//   - *Graph: The typed graph, with Name inferred from the annotations
//   - error: *types.SchemaError for a malformed object or top-level key
//
// Performance: one pass over the objects dictionary; fields are not copied.
func Decode(doc *plist.Document, opts DecodeOptions) (*Graph, error) {
	log := logger.OrDiscard(opts.Logger)
	if doc == nil || doc.Root == nil {
		return nil, &types.SchemaError{Field: KeyObjects, Reason: "document is empty"}
	}

	objects, ok := doc.Root.Dict(KeyObjects)
	if !ok {
		return nil, &types.SchemaError{Field: KeyObjects, Reason: "missing or not a dictionary"}
	}
	if opts.MaxObjects > 0 && objects.Len() > opts.MaxObjects {
		return nil, &types.SchemaError{
			Field:  KeyObjects,
			Reason: fmt.Sprintf("%d objects exceed limit of %d", objects.Len(), opts.MaxObjects),
		}
	}
	rootScalar, ok := doc.Root.Scalar(KeyRootObject)
	if !ok {
		return nil, &types.SchemaError{Field: KeyRootObject, Reason: "missing or not an identifier"}
	}

	g := newGraphFrom(doc)
	unknown := 0
	for _, e := range objects.Entries() {
		id := ID(e.Key.Text)
		o, err := decodeObject(id, e.Value)
		if err != nil {
			return nil, err
		}
		o.base().comment = e.Key.Comment
		o.base().graph = g
		g.objects[id] = o
		if _, ok := o.(*Unknown); ok {
			unknown++
			log.Debug("passthrough object", "id", id, "isa", o.ISA())
		}
	}

	g.root = ID(rootScalar.Text)
	g.Name = inferName(g)
	log.Debug("decoded graph", "objects", g.Len(), "unknown", unknown, "name", g.Name)
	return g, nil
}

func decodeObject(id ID, v plist.Value) (Object, error) {
	fields, ok := v.(*plist.Dict)
	if !ok {
		return nil, &types.SchemaError{ID: string(id), Reason: "object is not a dictionary"}
	}
	tag, ok := fields.Scalar("isa")
	if !ok || tag.Text == "" {
		return nil, &types.SchemaError{ID: string(id), Field: "isa", Reason: "missing tag"}
	}
	o := assemble(id, ISA(tag.Text), fields)
	if err := Validate(o); err != nil {
		return nil, err
	}
	return o, nil
}

// Validate checks o against its schema: required fields are present and
// every known field has the expected shape. Flag encodings are recorded as
// a side effect so later writes keep them. Unknown objects always pass.
func Validate(o Object) error {
	b := o.base()
	if b.schema == nil {
		return nil
	}
	fail := func(field, reason string) error {
		return &types.SchemaError{ID: string(b.id), ISA: string(b.isa), Field: field, Reason: reason}
	}
	for _, f := range b.schema.Fields {
		v, ok := b.fields.Get(f.Key)
		if !ok {
			if f.Required {
				return fail(f.Key, "missing required field")
			}
			continue
		}
		switch f.Kind {
		case KindString, KindRef:
			if _, ok := v.(*plist.Scalar); !ok {
				return fail(f.Key, "expected a "+f.Kind.String())
			}
		case KindInt:
			s, ok := v.(*plist.Scalar)
			if !ok {
				return fail(f.Key, "expected an integer")
			}
			if _, err := strconv.ParseInt(s.Text, 10, 64); err != nil {
				return fail(f.Key, fmt.Sprintf("expected an integer, got %q", s.Text))
			}
		case KindFlag:
			s, ok := v.(*plist.Scalar)
			if !ok {
				return fail(f.Key, "expected a flag")
			}
			_, style, ok := ParseFlag(s.Text)
			if !ok {
				return fail(f.Key, fmt.Sprintf("expected 0, 1, YES or NO, got %q", s.Text))
			}
			b.styles[f.Key] = style
		case KindRefList, KindStringList:
			a, ok := v.(*plist.Array)
			if !ok {
				return fail(f.Key, "expected a "+f.Kind.String())
			}
			for i, item := range a.Items {
				if _, ok := item.(*plist.Scalar); !ok {
					return fail(f.Key, fmt.Sprintf("item %d is not a scalar", i))
				}
			}
		case KindDict:
			if _, ok := v.(*plist.Dict); !ok {
				return fail(f.Key, "expected a dictionary")
			}
		case KindRefTable:
			a, ok := v.(*plist.Array)
			if !ok {
				return fail(f.Key, "expected a list of dictionaries")
			}
			for i, item := range a.Items {
				if _, ok := item.(*plist.Dict); !ok {
					return fail(f.Key, fmt.Sprintf("item %d is not a dictionary", i))
				}
			}
		}
	}
	return nil
}

// inferName recovers the project name from the annotation Xcode writes
// after the project's configuration list reference. The name is not stored
// anywhere else in the file.
func inferName(g *Graph) string {
	p := g.RootProject()
	if p == nil {
		return ""
	}
	var candidates []string
	if s, ok := p.fields.Scalar("buildConfigurationList"); ok {
		candidates = append(candidates, s.Comment)
	}
	if l, ok := g.objects[p.BuildConfigurationList()]; ok {
		candidates = append(candidates, l.base().comment)
	}
	for _, c := range candidates {
		if name, ok := parseListComment(c); ok {
			return name
		}
	}
	return ""
}

func parseListComment(c string) (string, bool) {
	rest, ok := strings.CutPrefix(c, projectListComment)
	if !ok || len(rest) < 2 || rest[0] != '"' || rest[len(rest)-1] != '"' {
		return "", false
	}
	return rest[1 : len(rest)-1], true
}
