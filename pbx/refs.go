package pbx

import "github.com/joshuapare/pbxkit/pbx/plist"

// Ref is one identifier occurrence inside an object.
type Ref struct {
	Field  string
	Index  int    // position in a list field; -1 for single references
	Key    string // entry key for reference tables such as projectReferences
	Target ID
	Soft   bool
}

// Refs returns every reference held by o in schema field order. Unknown
// objects hold no typed references.
func Refs(o Object) []Ref {
	s := o.Schema()
	if s == nil {
		return nil
	}
	fields := o.Fields()
	var out []Ref
	for _, f := range s.RefFields() {
		v, ok := fields.Get(f.Key)
		if !ok {
			continue
		}
		switch f.Kind {
		case KindRef:
			if sc, ok := v.(*plist.Scalar); ok && sc.Text != "" {
				out = append(out, Ref{Field: f.Key, Index: -1, Target: ID(sc.Text), Soft: f.Soft})
			}
		case KindRefList:
			a, ok := v.(*plist.Array)
			if !ok {
				continue
			}
			for i, item := range a.Items {
				if sc, ok := item.(*plist.Scalar); ok {
					out = append(out, Ref{Field: f.Key, Index: i, Target: ID(sc.Text), Soft: f.Soft})
				}
			}
		case KindRefTable:
			a, ok := v.(*plist.Array)
			if !ok {
				continue
			}
			for i, item := range a.Items {
				d, ok := item.(*plist.Dict)
				if !ok {
					continue
				}
				for _, e := range d.Entries() {
					if sc, ok := e.Value.(*plist.Scalar); ok {
						out = append(out, Ref{Field: f.Key, Index: i, Key: e.Key.Text, Target: ID(sc.Text), Soft: f.Soft})
					}
				}
			}
		}
	}
	return out
}

// RefsTo returns the references in o whose target is id.
func RefsTo(o Object, id ID) []Ref {
	var out []Ref
	for _, r := range Refs(o) {
		if r.Target == id {
			out = append(out, r)
		}
	}
	return out
}
