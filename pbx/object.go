package pbx

import (
	"errors"
	"strconv"

	"github.com/joshuapare/pbxkit/pbx/plist"
	"github.com/joshuapare/pbxkit/pkg/types"
)

var (
	// ErrAttached indicates a reference field was set directly on an object
	// that already belongs to a graph. Use package edit instead.
	ErrAttached = errors.New("pbx: object is attached to a graph")
	// ErrImmutableISA indicates an attempt to change an object's isa.
	ErrImmutableISA = errors.New("pbx: isa cannot change")
	// ErrFieldKind indicates a setter that does not match the field's schema kind.
	ErrFieldKind = errors.New("pbx: field kind mismatch")
)

// Object is one entry of the objects dictionary. The set of implementations
// is closed: every known isa has a concrete type in this package and any
// other tag decodes to *Unknown.
type Object interface {
	ID() ID
	ISA() ISA
	Fields() *plist.Dict
	Schema() *Schema
	Attached() bool
	base() *Base
}

// Base carries the state shared by every object: identity, the ordered
// field bag and the flag encodings observed when the object was read.
type Base struct {
	id      ID
	isa     ISA
	schema  *Schema
	fields  *plist.Dict
	styles  map[string]FlagStyle
	comment string // source annotation on the object key
	graph   *Graph
}

func (b *Base) base() *Base { return b }

// ID returns the object identifier; empty until the object is inserted.
func (b *Base) ID() ID { return b.id }

// ISA returns the object's tag.
func (b *Base) ISA() ISA { return b.isa }

// Schema returns the schema of the object's isa, or nil for unknown kinds.
func (b *Base) Schema() *Schema { return b.schema }

// Fields returns the ordered field bag, isa included. Callers must not
// modify it on attached objects; use the setters or package edit.
func (b *Base) Fields() *plist.Dict { return b.fields }

// Attached reports whether the object belongs to a graph.
func (b *Base) Attached() bool { return b.graph != nil }

// Has reports whether key is present.
func (b *Base) Has(key string) bool { return b.fields.Has(key) }

// Text returns the scalar under key, or "".
func (b *Base) Text(key string) string { return b.fields.Text(key) }

// Int returns the integer under key.
func (b *Base) Int(key string) (int, bool) {
	s, ok := b.fields.Scalar(key)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(s.Text)
	return n, err == nil
}

// Flag returns the flag under key.
func (b *Base) Flag(key string) (Flag, bool) {
	s, ok := b.fields.Scalar(key)
	if !ok {
		return FlagNo, false
	}
	f, _, ok := ParseFlag(s.Text)
	return f, ok
}

// FlagStyle returns the encoding recorded for key, falling back to the
// schema default for fields that were never read.
func (b *Base) FlagStyle(key string) FlagStyle {
	if st, ok := b.styles[key]; ok {
		return st
	}
	if f, ok := b.schema.Field(key); ok {
		return f.Style
	}
	return StyleNumeric
}

// Ref returns the identifier under key, or "".
func (b *Base) Ref(key string) ID { return ID(b.fields.Text(key)) }

// RefList returns the identifiers under key in order.
func (b *Base) RefList(key string) []ID {
	a, ok := b.fields.Array(key)
	if !ok {
		return nil
	}
	out := make([]ID, 0, a.Len())
	for _, v := range a.Items {
		if s, ok := v.(*plist.Scalar); ok {
			out = append(out, ID(s.Text))
		}
	}
	return out
}

// StringList returns the strings under key.
func (b *Base) StringList(key string) []string {
	a, ok := b.fields.Array(key)
	if !ok {
		return nil
	}
	return a.Texts()
}

// Dict returns the dictionary under key, or nil.
func (b *Base) Dict(key string) *plist.Dict {
	d, _ := b.fields.Dict(key)
	return d
}

// touch bumps the owning graph's generation.
func (b *Base) touch() {
	if b.graph != nil {
		b.graph.touch()
	}
}

func (b *Base) misuse(key, reason string, err error) error {
	return &types.MutationError{Op: "Set", ID: string(b.id), Field: key, Reason: reason, Err: err}
}

// checkSet guards scalar setters: isa is immutable and reference fields on
// attached objects must go through package edit.
func (b *Base) checkSet(key string, want ...FieldKind) error {
	if key == "isa" {
		return b.misuse(key, "the tag of an object is immutable", ErrImmutableISA)
	}
	f, ok := b.schema.Field(key)
	if !ok {
		return nil
	}
	if f.Kind.IsRef() && b.graph != nil {
		return b.misuse(key, "reference fields of attached objects change through Link and Unlink", ErrAttached)
	}
	for _, k := range want {
		if f.Kind == k {
			return nil
		}
	}
	return b.misuse(key, "field holds a "+f.Kind.String(), ErrFieldKind)
}

// put stores v under key. New keys are placed by schema rank so that
// programmatic objects serialize in Xcode's order.
func (b *Base) put(key string, v plist.Value) {
	if b.fields.Has(key) {
		b.fields.Set(key, v)
		b.touch()
		return
	}
	rank := b.schema.Rank(key)
	pos := b.fields.Len()
	if b.schema != nil {
		for i, e := range b.fields.Entries() {
			if e.Key.Text != "isa" && b.schema.Rank(e.Key.Text) > rank {
				pos = i
				break
			}
		}
	}
	b.fields.InsertAt(pos, key, v)
	b.touch()
}

// SetText sets a string or integer field. Setting the current value is a no-op.
func (b *Base) SetText(key, value string) error {
	if err := b.checkSet(key, KindString, KindInt, KindAny); err != nil {
		return err
	}
	if s, ok := b.fields.Scalar(key); ok {
		if s.Set(value) {
			b.touch()
		}
		return nil
	}
	b.put(key, plist.NewString(value))
	return nil
}

// SetInt sets an integer field.
func (b *Base) SetInt(key string, v int) error {
	if err := b.checkSet(key, KindInt, KindAny); err != nil {
		return err
	}
	if s, ok := b.fields.Scalar(key); ok {
		if s.Set(strconv.Itoa(v)) {
			b.touch()
		}
		return nil
	}
	b.put(key, plist.NewString(strconv.Itoa(v)))
	return nil
}

// SetFlag sets a flag field. An unchanged value keeps its original text;
// a changed value keeps the recorded encoding (0/1 or YES/NO).
func (b *Base) SetFlag(key string, f Flag) error {
	if err := b.checkSet(key, KindFlag, KindAny); err != nil {
		return err
	}
	if s, ok := b.fields.Scalar(key); ok {
		cur, style, ok := ParseFlag(s.Text)
		if ok && cur == f {
			return nil
		}
		if !ok {
			style = b.FlagStyle(key)
		}
		s.Set(f.Format(style))
		b.styles[key] = style
		b.touch()
		return nil
	}
	style := b.FlagStyle(key)
	b.styles[key] = style
	b.put(key, plist.NewString(f.Format(style)))
	return nil
}

// SetStringList replaces a string list field.
func (b *Base) SetStringList(key string, values []string) error {
	if err := b.checkSet(key, KindStringList, KindAny); err != nil {
		return err
	}
	b.put(key, plist.Strings(values...))
	return nil
}

// SetDict replaces a dictionary field.
func (b *Base) SetDict(key string, d *plist.Dict) error {
	if err := b.checkSet(key, KindDict, KindAny); err != nil {
		return err
	}
	b.put(key, d)
	return nil
}

// SetRef sets a single reference on a detached object.
func (b *Base) SetRef(key string, id ID) error {
	if err := b.checkSet(key, KindRef); err != nil {
		return err
	}
	if b.graph != nil {
		return b.misuse(key, "reference fields of attached objects change through Link and Unlink", ErrAttached)
	}
	b.put(key, plist.NewString(string(id)))
	return nil
}

// SetRefList sets a reference list on a detached object.
func (b *Base) SetRefList(key string, ids []ID) error {
	if err := b.checkSet(key, KindRefList); err != nil {
		return err
	}
	if b.graph != nil {
		return b.misuse(key, "reference fields of attached objects change through Link and Unlink", ErrAttached)
	}
	b.put(key, plist.Strings(IDs(ids)...))
	return nil
}

// Unset removes a non-reference field. Required fields cannot be removed.
func (b *Base) Unset(key string) error {
	if err := b.checkSet(key, KindString, KindInt, KindFlag, KindStringList, KindDict, KindAny); err != nil {
		return err
	}
	if f, ok := b.schema.Field(key); ok && f.Required {
		return b.misuse(key, "required field cannot be removed", nil)
	}
	if b.fields.Delete(key) {
		delete(b.styles, key)
		b.touch()
	}
	return nil
}

// must panics on a setter error. Constructors set fixed keys of the right
// kind on detached objects, so an error here means the constructor and the
// schema table disagree.
func must(err error) {
	if err != nil {
		panic(err)
	}
}

// assemble creates the variant for isa around an existing field bag.
func assemble(id ID, isa ISA, fields *plist.Dict) Object {
	o := variant(isa)
	b := o.base()
	b.id = id
	b.isa = isa
	b.schema, _ = Lookup(isa)
	b.fields = fields
	b.styles = make(map[string]FlagStyle)
	return o
}

// variant maps a tag to its Go type. This is the only place where the tag
// is dispatched as a string.
func variant(isa ISA) Object {
	switch isa {
	case ISABuildFile:
		return &BuildFile{}
	case ISASourcesBuildPhase:
		return &SourcesBuildPhase{}
	case ISAFrameworksBuildPhase:
		return &FrameworksBuildPhase{}
	case ISAResourcesBuildPhase:
		return &ResourcesBuildPhase{}
	case ISAHeadersBuildPhase:
		return &HeadersBuildPhase{}
	case ISARezBuildPhase:
		return &RezBuildPhase{}
	case ISAAppleScriptBuildPhase:
		return &AppleScriptBuildPhase{}
	case ISACopyFilesBuildPhase:
		return &CopyFilesBuildPhase{}
	case ISAShellScriptBuildPhase:
		return &ShellScriptBuildPhase{}
	case ISAContainerItemProxy:
		return &ContainerItemProxy{}
	case ISAFileReference:
		return &FileReference{}
	case ISAGroup:
		return &Group{}
	case ISAVariantGroup:
		return &VariantGroup{}
	case ISAVersionGroup:
		return &VersionGroup{}
	case ISAReferenceProxy:
		return &ReferenceProxy{}
	case ISANativeTarget:
		return &NativeTarget{}
	case ISAAggregateTarget:
		return &AggregateTarget{}
	case ISALegacyTarget:
		return &LegacyTarget{}
	case ISAProject:
		return &Project{}
	case ISATargetDependency:
		return &TargetDependency{}
	case ISABuildConfiguration:
		return &BuildConfiguration{}
	case ISAConfigurationList:
		return &ConfigurationList{}
	case ISABuildRule:
		return &BuildRule{}
	case ISASwiftPackageProductDependency:
		return &SwiftPackageProductDependency{}
	case ISARemoteSwiftPackageReference:
		return &RemoteSwiftPackageReference{}
	case ISALocalSwiftPackageReference:
		return &LocalSwiftPackageReference{}
	default:
		return &Unknown{}
	}
}

// New returns a detached object of kind isa holding only its isa field.
// Required fields must be set before the object is inserted.
func New(isa ISA) Object {
	fields := plist.NewDict()
	fields.Set("isa", plist.NewString(string(isa)))
	if s, ok := Lookup(isa); ok {
		fields.Inline = s.Inline
	}
	return assemble("", isa, fields)
}

// Clone returns a detached deep copy of o with the same identifier.
func Clone(o Object) Object {
	b := o.base()
	c := assemble(b.id, b.isa, b.fields.Clone())
	cb := c.base()
	cb.comment = b.comment
	for k, v := range b.styles {
		cb.styles[k] = v
	}
	return c
}

// Unknown is an object whose isa has no schema. It is carried verbatim.
type Unknown struct{ Base }

// Comment returns the annotation that followed the object's key in the source.
func (u *Unknown) Comment() string { return u.comment }
