package edit

import "github.com/joshuapare/pbxkit/pbx"

type scalarSetter interface {
	SetText(key, value string) error
	SetFlag(key string, f pbx.Flag) error
}

// SetString sets a string or integer field of id.
func (e *Editor) SetString(id pbx.ID, key, value string) error {
	return e.setScalar("SetString", id, func(s scalarSetter) error { return s.SetText(key, value) })
}

// SetFlag sets a flag field of id, keeping the encoding the field was read with.
func (e *Editor) SetFlag(id pbx.ID, key string, f pbx.Flag) error {
	return e.setScalar("SetFlag", id, func(s scalarSetter) error { return s.SetFlag(key, f) })
}

func (e *Editor) setScalar(op string, id pbx.ID, set func(scalarSetter) error) error {
	o, err := e.object(op, id)
	if err != nil {
		return err
	}
	s, ok := o.(scalarSetter)
	if !ok {
		return fail(op, id, "", "object has no settable fields", ErrNotFound)
	}
	return e.atomic(func() error {
		e.tx.Snapshot(o)
		return set(s)
	})
}

// SetSetting sets a build setting on every configuration of owner, which is
// a project or target. An empty value removes the setting.
func (e *Editor) SetSetting(owner pbx.ID, key, value string) error {
	const op = "SetSetting"
	o, err := e.object(op, owner)
	if err != nil {
		return err
	}
	holder, ok := o.(interface{ BuildConfigurationList() pbx.ID })
	if !ok {
		return fail(op, owner, "buildConfigurationList", string(o.ISA())+" has no build configurations", ErrKind)
	}
	o, _ = e.g.Object(holder.BuildConfigurationList())
	list, ok := o.(*pbx.ConfigurationList)
	if !ok {
		return fail(op, owner, "buildConfigurationList", "configuration list does not exist", ErrNotFound)
	}
	return e.atomic(func() error {
		for _, id := range list.BuildConfigurations() {
			o, _ := e.g.Object(id)
			c, ok := o.(*pbx.BuildConfiguration)
			if !ok {
				continue
			}
			e.tx.Snapshot(c)
			if value == "" {
				c.UnsetSetting(key)
			} else {
				c.SetSetting(key, value)
			}
		}
		return nil
	})
}

// AddFile inserts a file reference for path and appends it to group.
func (e *Editor) AddFile(group pbx.ID, path, sourceTree string) (pbx.ID, error) {
	var id pbx.ID
	err := e.atomic(func() error {
		var err error
		if id, err = e.Insert(pbx.NewFileReference(path, sourceTree)); err != nil {
			return err
		}
		return e.Link(group, "children", id, Append)
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

// AddToPhase inserts a build file for file and links it into phase at position.
func (e *Editor) AddToPhase(phase, file pbx.ID, position int) (pbx.ID, error) {
	var id pbx.ID
	err := e.atomic(func() error {
		var err error
		if id, err = e.Insert(pbx.NewBuildFile(file)); err != nil {
			return err
		}
		return e.Link(phase, "files", id, position)
	})
	if err != nil {
		return "", err
	}
	return id, nil
}
