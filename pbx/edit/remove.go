package edit

import (
	"fmt"
	"slices"

	"github.com/joshuapare/pbxkit/pbx"
	"github.com/joshuapare/pbxkit/pbx/plist"
	"github.com/joshuapare/pbxkit/pbx/verify"
)

// Remove deletes id from the graph and returns the identifiers removed, in
// ascending order.
//
// Without cascade the object must not be referenced by any other object,
// soft references aside.
// With cascade, references to the removed set are dropped from lists and
// cleared from optional fields; objects holding a dependent reference to it,
// such as a build file whose file is removed, are removed too. A required
// reference from outside the set aborts the removal. Objects the removed set
// exclusively referred to are then removed as well, stopping at objects that
// still have referrers outside the set.
func (e *Editor) Remove(id pbx.ID, cascade bool) ([]pbx.ID, error) {
	const op = "Remove"
	if id == e.g.Root() {
		return nil, fail(op, id, "", "the root project cannot be removed", ErrRemoveRoot)
	}
	if _, err := e.object(op, id); err != nil {
		return nil, err
	}

	idx := verify.BuildIndex(e.g)
	if !cascade {
		for _, r := range idx.Referrers(id) {
			if r.From != id && !r.Soft {
				return nil, fail(op, id, "", fmt.Sprintf("referenced by %s.%s", r.From, r.Field), ErrReferenced)
			}
		}
	}

	doomed, err := e.closure(op, id, idx, cascade)
	if err != nil {
		return nil, err
	}
	removed := make([]pbx.ID, 0, len(doomed))
	for d := range doomed {
		removed = append(removed, d)
	}
	slices.Sort(removed)

	err = e.atomic(func() error {
		if err := e.detachReferences(idx, doomed, removed); err != nil {
			return err
		}
		for _, d := range removed {
			o, ok := e.g.Detach(d)
			if !ok {
				continue
			}
			e.tx.Detached(o)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	e.log.Debug("remove", "id", id, "cascade", cascade, "removed", len(removed))
	return removed, nil
}

// closure computes the set of objects removed along with id.
func (e *Editor) closure(op string, id pbx.ID, idx *verify.Index, cascade bool) (map[pbx.ID]bool, error) {
	doomed := map[pbx.ID]bool{id: true}
	if !cascade {
		return doomed, nil
	}

	// Holders that cannot outlive their target go with it.
	work := []pbx.ID{id}
	for len(work) > 0 {
		cur := work[len(work)-1]
		work = work[:len(work)-1]
		for _, r := range idx.Referrers(cur) {
			if doomed[r.From] || r.Soft || r.List {
				continue
			}
			switch {
			case r.Dependent:
				if r.From == e.g.Root() {
					return nil, fail(op, id, "", "the root project depends on "+string(cur), ErrRemoveRoot)
				}
				doomed[r.From] = true
				work = append(work, r.From)
			case r.Required:
				return nil, fail(op, id, "", fmt.Sprintf("%s is required by %s.%s", cur, r.From, r.Field), ErrRequired)
			}
		}
	}

	// Objects referred to only from inside the set go too.
	for changed := true; changed; {
		changed = false
		for _, d := range sortedKeys(doomed) {
			o, _ := e.g.Object(d)
			for _, r := range pbx.Refs(o) {
				c := r.Target
				if r.Soft || doomed[c] || c == e.g.Root() || !e.g.Has(c) {
					continue
				}
				if owned(idx, c, doomed) {
					doomed[c] = true
					changed = true
				}
			}
		}
	}
	return doomed, nil
}

func owned(idx *verify.Index, id pbx.ID, doomed map[pbx.ID]bool) bool {
	for _, r := range idx.Referrers(id) {
		if !doomed[r.From] {
			return false
		}
	}
	return true
}

// detachReferences rewrites every surviving holder of a reference into the
// removed set.
func (e *Editor) detachReferences(idx *verify.Index, doomed map[pbx.ID]bool, removed []pbx.ID) error {
	type site struct {
		id    pbx.ID
		field string
	}
	var sites []site
	seen := make(map[site]bool)
	for _, d := range removed {
		for _, r := range idx.Referrers(d) {
			s := site{r.From, r.Field}
			if doomed[r.From] || r.Soft || seen[s] {
				continue
			}
			seen[s] = true
			sites = append(sites, s)
		}
	}

	for _, s := range sites {
		o, _ := e.g.Object(s.id)
		e.tx.Snapshot(o)
		f, _ := o.Schema().Field(s.field)
		var err error
		switch f.Kind {
		case pbx.KindRef:
			err = e.g.PutRef(s.id, s.field, "")
		case pbx.KindRefList:
			ids := slices.DeleteFunc(o.(interface{ RefList(string) []pbx.ID }).RefList(s.field), func(t pbx.ID) bool {
				return doomed[t]
			})
			err = e.g.PutRefList(s.id, s.field, ids)
		case pbx.KindRefTable:
			err = e.g.PutField(s.id, s.field, dropTableEntries(o, s.field, doomed))
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// dropTableEntries returns a copy of a reference table without the entries
// naming a removed object.
func dropTableEntries(o pbx.Object, field string, doomed map[pbx.ID]bool) *plist.Array {
	a, _ := o.Fields().Array(field)
	out := a.Clone()
	out.Items = slices.DeleteFunc(out.Items, func(v plist.Value) bool {
		d, ok := v.(*plist.Dict)
		if !ok {
			return false
		}
		for _, ent := range d.Entries() {
			if s, ok := ent.Value.(*plist.Scalar); ok && doomed[pbx.ID(s.Text)] {
				return true
			}
		}
		return false
	})
	return out
}

func sortedKeys(m map[pbx.ID]bool) []pbx.ID {
	out := make([]pbx.ID, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}
