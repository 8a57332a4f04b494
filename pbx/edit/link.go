package edit

import (
	"fmt"
	"slices"
	"strings"

	"github.com/joshuapare/pbxkit/pbx"
)

// refField looks up a single or list reference field of o.
func refField(op string, o pbx.Object, field string) (pbx.Field, error) {
	f, ok := o.Schema().Field(field)
	if !ok || (f.Kind != pbx.KindRef && f.Kind != pbx.KindRefList) {
		return f, fail(op, o.ID(), field, fmt.Sprintf("%s has no reference field %q", o.ISA(), field), ErrNotReference)
	}
	return f, nil
}

// Link makes referrer.field point at target. For list fields target is
// inserted before position, or appended when position is Append; for single
// reference fields position is ignored and any previous value is replaced.
func (e *Editor) Link(referrer pbx.ID, field string, target pbx.ID, position int) error {
	const op = "Link"
	from, err := e.object(op, referrer)
	if err != nil {
		return err
	}
	f, err := refField(op, from, field)
	if err != nil {
		return err
	}
	to, ok := e.g.Object(target)
	if !ok {
		if !f.Soft {
			return fail(op, referrer, field, "target "+string(target)+" does not exist", ErrNotFound)
		}
	} else if !f.Admits(to) {
		return fail(op, referrer, field, fmt.Sprintf("field does not accept %s", to.ISA()), ErrKind)
	}
	if to != nil {
		if err := e.conventions(op, from, field, to); err != nil {
			return err
		}
	}

	var list []pbx.ID
	if f.Kind == pbx.KindRefList {
		list = from.(interface{ RefList(string) []pbx.ID }).RefList(field)
		if position == Append {
			position = len(list)
		}
		if position < 0 || position > len(list) {
			return fail(op, referrer, field, fmt.Sprintf("position %d outside list of %d", position, len(list)), ErrPosition)
		}
	}

	err = e.atomic(func() error {
		e.tx.Snapshot(from)
		if f.Kind == pbx.KindRefList {
			if err := e.g.PutRefList(referrer, field, slices.Insert(list, position, target)); err != nil {
				return err
			}
		} else if err := e.g.PutRef(referrer, field, target); err != nil {
			return err
		}
		return e.checkCycles(op, referrer, from)
	})
	if err != nil {
		return err
	}
	e.log.Debug("link", "referrer", referrer, "field", field, "target", target, "position", position)
	return nil
}

// Unlink removes the first occurrence of target from a list field, or
// clears a single reference field holding target.
func (e *Editor) Unlink(referrer pbx.ID, field string, target pbx.ID) error {
	const op = "Unlink"
	from, err := e.object(op, referrer)
	if err != nil {
		return err
	}
	f, err := refField(op, from, field)
	if err != nil {
		return err
	}
	missing := fail(op, referrer, field, "does not reference "+string(target), ErrNotLinked)

	if f.Kind == pbx.KindRef {
		if from.(interface{ Ref(string) pbx.ID }).Ref(field) != target {
			return missing
		}
		if f.Required {
			return fail(op, referrer, field, "a required reference cannot be cleared", ErrRequired)
		}
	}

	var list []pbx.ID
	if f.Kind == pbx.KindRefList {
		list = from.(interface{ RefList(string) []pbx.ID }).RefList(field)
		i := slices.Index(list, target)
		if i < 0 {
			return missing
		}
		list = slices.Delete(list, i, i+1)
	}

	err = e.atomic(func() error {
		e.tx.Snapshot(from)
		if f.Kind == pbx.KindRefList {
			return e.g.PutRefList(referrer, field, list)
		}
		return e.g.PutRef(referrer, field, "")
	})
	if err != nil {
		return err
	}
	e.log.Debug("unlink", "referrer", referrer, "field", field, "target", target)
	return nil
}

// Reorder replaces the order of a list field. order must hold exactly the
// identifiers of the current list, with the same multiplicities.
func (e *Editor) Reorder(referrer pbx.ID, field string, order []pbx.ID) error {
	const op = "Reorder"
	from, err := e.object(op, referrer)
	if err != nil {
		return err
	}
	f, err := refField(op, from, field)
	if err != nil {
		return err
	}
	if f.Kind != pbx.KindRefList {
		return fail(op, referrer, field, "field is not a list", ErrNotReference)
	}
	current := from.(interface{ RefList(string) []pbx.ID }).RefList(field)
	if !samePermutation(current, order) {
		return fail(op, referrer, field, "new order must hold the same identifiers", ErrNotPermutation)
	}
	if slices.Equal(current, order) {
		return nil
	}
	return e.atomic(func() error {
		e.tx.Snapshot(from)
		return e.g.PutRefList(referrer, field, slices.Clone(order))
	})
}

func samePermutation(a, b []pbx.ID) bool {
	if len(a) != len(b) {
		return false
	}
	x, y := slices.Clone(a), slices.Clone(b)
	slices.Sort(x)
	slices.Sort(y)
	return slices.Equal(x, y)
}

// conventions runs the advisory checks for linking to into from.field.
func (e *Editor) conventions(op string, from pbx.Object, field string, to pbx.Object) error {
	switch field {
	case "files":
		bf, ok := to.(*pbx.BuildFile)
		if !ok {
			return nil
		}
		file, ok := e.g.Object(bf.FileRef())
		if !ok {
			return nil
		}
		ref, ok := file.(*pbx.FileReference)
		if !ok {
			return nil
		}
		switch from.ISA() {
		case pbx.ISASourcesBuildPhase:
			if !ref.IsSourceCode() {
				return e.advise(op, from.ID(), field, fmt.Sprintf("%s is not a source file (%s)", ref.DisplayName(), ref.FileType()))
			}
		case pbx.ISAHeadersBuildPhase:
			if !strings.HasSuffix(ref.FileType(), ".h") {
				return e.advise(op, from.ID(), field, fmt.Sprintf("%s is not a header (%s)", ref.DisplayName(), ref.FileType()))
			}
		}
	case "children":
		for _, o := range e.g.Sorted() {
			g, ok := o.(pbx.GroupLike)
			if ok && g.ID() != from.ID() && slices.Contains(g.Children(), to.ID()) {
				return e.advise(op, from.ID(), field, fmt.Sprintf("%s already belongs to group %s", to.ID(), g.ID()))
			}
		}
	}
	return nil
}
