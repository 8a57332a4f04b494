package pbx

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/joshuapare/pbxkit/pbx/plist"
	"github.com/joshuapare/pbxkit/pkg/types"
)

// Top-level keys of a project file.
const (
	KeyArchiveVersion = "archiveVersion"
	KeyClasses        = "classes"
	KeyObjectVersion  = "objectVersion"
	KeyObjects        = "objects"
	KeyRootObject     = "rootObject"
)

// Defaults for graphs built from scratch.
const (
	DefaultArchiveVersion = "1"
	DefaultObjectVersion  = "56"
)

// Graph is a decoded project file: the top-level dictionary plus the typed
// object graph stored under "objects".
//
// A Graph is not safe for concurrent use. Callers that share one across
// goroutines must hold an external lock (one writer or many readers).
type Graph struct {
	Header          string         // first line, normally "// !$*UTF8*$!"
	Name            string         // project name used in generated comments
	TrailingNewline bool           // emit a final newline
	Encoding        plist.Encoding // output text encoding

	top     *plist.Dict // top-level keys in source order; "objects" is rebuilt on encode
	root    ID
	objects map[ID]Object
	gen     uint64
}

// NewGraph returns an empty graph with the usual top-level keys. It has no
// root until SetRoot is called.
func NewGraph(name string) *Graph {
	top := plist.NewDict()
	top.Set(KeyArchiveVersion, plist.NewString(DefaultArchiveVersion))
	top.Set(KeyClasses, plist.NewDict())
	top.Set(KeyObjectVersion, plist.NewString(DefaultObjectVersion))
	top.Set(KeyObjects, plist.NewDict())
	top.Set(KeyRootObject, plist.NewString(""))
	return &Graph{
		Header:          plist.UTF8Header,
		Name:            name,
		TrailingNewline: true,
		Encoding:        plist.EncodingUTF8,
		top:             top,
		objects:         make(map[ID]Object),
	}
}

func newGraphFrom(doc *plist.Document) *Graph {
	return &Graph{
		Header:          doc.Header,
		TrailingNewline: doc.TrailingNewline,
		Encoding:        doc.Encoding,
		top:             doc.Root,
		objects:         make(map[ID]Object),
	}
}

// ArchiveVersion returns the archiveVersion value.
func (g *Graph) ArchiveVersion() string { return g.top.Text(KeyArchiveVersion) }

// ObjectVersion returns the objectVersion value.
func (g *Graph) ObjectVersion() string { return g.top.Text(KeyObjectVersion) }

// Classes returns the opaque classes dictionary, or nil.
func (g *Graph) Classes() *plist.Dict {
	d, _ := g.top.Dict(KeyClasses)
	return d
}

// TopKeys returns the top-level keys in emission order.
func (g *Graph) TopKeys() []string { return g.top.Keys() }

// Top returns the top-level value stored under key. The objects value is a
// placeholder; use the graph accessors instead.
func (g *Graph) Top(key string) (plist.Value, bool) { return g.top.Get(key) }

// Root returns the root project identifier.
func (g *Graph) Root() ID { return g.root }

// RootProject returns the root project, or nil when the root is missing.
func (g *Graph) RootProject() *Project {
	p, _ := g.objects[g.root].(*Project)
	return p
}

// SetRoot points rootObject at an existing project.
func (g *Graph) SetRoot(id ID) error {
	o, ok := g.objects[id]
	if !ok {
		return &types.ReferenceError{Field: KeyRootObject, Target: string(id), Msg: "root object does not exist"}
	}
	if o.ISA() != ISAProject {
		return &types.ReferenceError{
			Field:    KeyRootObject,
			Target:   string(id),
			Msg:      fmt.Sprintf("root object is a %s, not a %s", o.ISA(), ISAProject),
		}
	}
	g.root = id
	if s, ok := g.top.Scalar(KeyRootObject); ok {
		s.Set(string(id))
	} else {
		g.top.Set(KeyRootObject, plist.NewString(string(id)))
	}
	g.touch()
	return nil
}

// Object returns the object with identifier id.
func (g *Graph) Object(id ID) (Object, bool) {
	o, ok := g.objects[id]
	return o, ok
}

// Has reports whether id names an object.
func (g *Graph) Has(id ID) bool {
	_, ok := g.objects[id]
	return ok
}

// Len returns the number of objects.
func (g *Graph) Len() int { return len(g.objects) }

// IDs returns every identifier in ascending order.
func (g *Graph) IDs() []ID {
	ids := make([]ID, 0, len(g.objects))
	for id := range g.objects {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Sorted returns every object ordered by isa, then identifier. This is the
// order objects appear in an encoded file.
func (g *Graph) Sorted() []Object {
	out := make([]Object, 0, len(g.objects))
	for _, o := range g.objects {
		out = append(out, o)
	}
	slices.SortFunc(out, func(a, b Object) int {
		if c := cmp.Compare(a.ISA(), b.ISA()); c != 0 {
			return c
		}
		return cmp.Compare(a.ID(), b.ID())
	})
	return out
}

// ByISA returns the objects of kind isa in identifier order.
func (g *Graph) ByISA(isa ISA) []Object {
	var out []Object
	for _, o := range g.objects {
		if o.ISA() == isa {
			out = append(out, o)
		}
	}
	slices.SortFunc(out, func(a, b Object) int { return cmp.Compare(a.ID(), b.ID()) })
	return out
}

// Targets returns the root project's targets in order, skipping
// identifiers that do not name a target.
func (g *Graph) Targets() []TargetLike {
	p := g.RootProject()
	if p == nil {
		return nil
	}
	var out []TargetLike
	for _, id := range p.Targets() {
		if t, ok := g.objects[id].(TargetLike); ok {
			out = append(out, t)
		}
	}
	return out
}

// TargetByName returns the first root-project target called name.
func (g *Graph) TargetByName(name string) (TargetLike, bool) {
	for _, t := range g.Targets() {
		if t.Name() == name {
			return t, true
		}
	}
	return nil, false
}

// Generation returns a counter that changes on every mutation. Views over
// the graph record it to detect staleness.
func (g *Graph) Generation() uint64 { return g.gen }

func (g *Graph) touch() { g.gen++ }

// The methods below are the raw mutation primitives used by packages edit
// and tx. They keep the object table consistent but do not check
// referential integrity.

// Attach adds o under id. The object must be detached and id unused.
func (g *Graph) Attach(id ID, o Object) error {
	if id == "" {
		return &types.MutationError{Op: "Attach", Reason: "empty identifier"}
	}
	if _, ok := g.objects[id]; ok {
		return &types.MutationError{Op: "Attach", ID: string(id), Reason: "identifier already in use"}
	}
	b := o.base()
	if b.graph != nil {
		return &types.MutationError{Op: "Attach", ID: string(id), Reason: "object already belongs to a graph", Err: ErrAttached}
	}
	b.id = id
	b.graph = g
	g.objects[id] = o
	g.touch()
	return nil
}

// Detach removes id from the graph and returns the object, which keeps
// its identifier and fields.
func (g *Graph) Detach(id ID) (Object, bool) {
	o, ok := g.objects[id]
	if !ok {
		return nil, false
	}
	delete(g.objects, id)
	o.base().graph = nil
	g.touch()
	return o, true
}

// Restore replaces the fields of the attached object with the identifier of
// snapshot by the snapshot's fields. The attached object keeps its identity
// so handles to it stay valid.
func (g *Graph) Restore(snapshot Object) error {
	sb := snapshot.base()
	o, ok := g.objects[sb.id]
	if !ok {
		return &types.MutationError{Op: "Restore", ID: string(sb.id), Reason: "object is not in the graph"}
	}
	b := o.base()
	b.fields = sb.fields.Clone()
	b.styles = make(map[string]FlagStyle, len(sb.styles))
	for k, v := range sb.styles {
		b.styles[k] = v
	}
	g.touch()
	return nil
}

// PutRef stores a single reference on an attached object. An empty target
// removes the field.
func (g *Graph) PutRef(id ID, key string, target ID) error {
	o, ok := g.objects[id]
	if !ok {
		return &types.MutationError{Op: "PutRef", ID: string(id), Field: key, Reason: "object is not in the graph"}
	}
	b := o.base()
	if target == "" {
		if b.fields.Delete(key) {
			g.touch()
		}
		return nil
	}
	if s, ok := b.fields.Scalar(key); ok {
		if s.Set(string(target)) {
			s.Comment = ""
			g.touch()
		}
		return nil
	}
	b.put(key, plist.NewString(string(target)))
	return nil
}

// PutRefList replaces a reference list on an attached object. Items whose
// identifier is unchanged keep their original scalar.
func (g *Graph) PutRefList(id ID, key string, ids []ID) error {
	o, ok := g.objects[id]
	if !ok {
		return &types.MutationError{Op: "PutRefList", ID: string(id), Field: key, Reason: "object is not in the graph"}
	}
	b := o.base()
	prev, _ := b.fields.Array(key)
	pool := make(map[ID][]*plist.Scalar)
	inline := false
	if prev != nil {
		inline = prev.Inline
		for _, v := range prev.Items {
			if s, ok := v.(*plist.Scalar); ok {
				pool[ID(s.Text)] = append(pool[ID(s.Text)], s)
			}
		}
	}
	a := &plist.Array{Inline: inline, Items: make([]plist.Value, len(ids))}
	for i, ref := range ids {
		if q := pool[ref]; len(q) > 0 {
			a.Items[i] = q[0]
			pool[ref] = q[1:]
			continue
		}
		a.Items[i] = plist.NewString(string(ref))
	}
	b.put(key, a)
	return nil
}

// PutField stores v under key on an attached object, or removes the field
// when v is nil. It is used for values such as reference tables that have
// no dedicated primitive.
func (g *Graph) PutField(id ID, key string, v plist.Value) error {
	o, ok := g.objects[id]
	if !ok {
		return &types.MutationError{Op: "PutField", ID: string(id), Field: key, Reason: "object is not in the graph"}
	}
	b := o.base()
	if v == nil {
		if b.fields.Delete(key) {
			g.touch()
		}
		return nil
	}
	b.put(key, v)
	return nil
}

// Equal reports whether a and b hold the same objects with the same field
// values and list orders, and the same root. Layout and comments are
// ignored.
func Equal(a, b *Graph) bool {
	if a.root != b.root || len(a.objects) != len(b.objects) {
		return false
	}
	for id, x := range a.objects {
		y, ok := b.objects[id]
		if !ok || x.ISA() != y.ISA() {
			return false
		}
		if !plist.Equal(x.Fields(), y.Fields()) {
			return false
		}
	}
	return true
}

// DependencyTarget returns the target a dependency points at: its target
// field, or the proxy's remote identifier when the proxy's portal is the
// root project. Cross-project dependencies resolve to "".
func (g *Graph) DependencyTarget(d *TargetDependency) ID {
	if t := d.Target(); t != "" {
		return t
	}
	p, ok := g.objects[d.TargetProxy()].(*ContainerItemProxy)
	if !ok || p.ContainerPortal() != g.root || p.ProxyType() != ProxyTargetReference {
		return ""
	}
	return p.RemoteGlobalID()
}
