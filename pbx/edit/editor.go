package edit

import (
	"errors"
	"log/slog"

	"github.com/joshuapare/pbxkit/internal/logger"
	"github.com/joshuapare/pbxkit/pbx"
	"github.com/joshuapare/pbxkit/pbx/ident"
	"github.com/joshuapare/pbxkit/pbx/tx"
	"github.com/joshuapare/pbxkit/pbx/verify"
	"github.com/joshuapare/pbxkit/pkg/types"
)

// maxAllocAttempts bounds identifier proposals per Insert. With random
// identifiers a single collision is already improbable.
const maxAllocAttempts = 64

// Append as a Link position appends to the end of a list.
const Append = -1

// Options configures an Editor.
type Options struct {
	// Strict turns advisory convention checks into errors.
	Strict bool

	// Logger receives advisory warnings and debug traces. Nil discards.
	Logger *slog.Logger

	// IDs proposes identifiers for Insert. Nil uses ident.Random.
	IDs ident.Generator
}

// Editor applies mutations to one graph.
type Editor struct {
	g      *pbx.Graph
	tx     *tx.Manager
	ids    ident.Generator
	log    *slog.Logger
	strict bool
}

// New returns an editor for g.
func New(g *pbx.Graph, opts Options) *Editor {
	ids := opts.IDs
	if ids == nil {
		ids = ident.Random()
	}
	return &Editor{
		g:      g,
		tx:     tx.NewManager(g),
		ids:    ids,
		log:    logger.OrDiscard(opts.Logger),
		strict: opts.Strict,
	}
}

// Graph returns the edited graph.
func (e *Editor) Graph() *pbx.Graph { return e.g }

// atomic runs fn in a transaction and rolls it back when fn fails.
func (e *Editor) atomic(fn func() error) error {
	e.tx.Begin()
	if err := fn(); err != nil {
		if rerr := e.tx.Rollback(); rerr != nil {
			return errors.Join(err, rerr)
		}
		return err
	}
	e.tx.Commit()
	return nil
}

func (e *Editor) object(op string, id pbx.ID) (pbx.Object, error) {
	o, ok := e.g.Object(id)
	if !ok {
		return nil, fail(op, id, "", "object does not exist", ErrNotFound)
	}
	return o, nil
}

// advise reports a convention violation.
func (e *Editor) advise(op string, id pbx.ID, field, msg string) error {
	if e.strict {
		return fail(op, id, field, msg, ErrAdvisory)
	}
	e.log.Warn(msg, "op", op, "id", id, "field", field)
	return nil
}

// Insert adds a detached object under a newly allocated identifier and
// returns it. The object's kind is its isa. Fields must satisfy the schema
// and every reference the object already holds must resolve; the object is
// not linked into any container.
func (e *Editor) Insert(o pbx.Object) (pbx.ID, error) {
	const op = "Insert"
	if o.Attached() {
		return "", fail(op, o.ID(), "", "object belongs to a graph", ErrAttached)
	}
	if err := pbx.Validate(o); err != nil {
		return "", fail(op, "", "", "object is incomplete", err)
	}
	id := ident.Unique(e.ids, e.g.Has, maxAllocAttempts)
	if id == "" {
		return "", fail(op, "", "", "identifier space exhausted", ErrIdentifiers)
	}

	err := e.atomic(func() error {
		if err := e.g.Attach(id, o); err != nil {
			return err
		}
		e.tx.Attached(id)
		if errs := verify.Reference(e.g, o); len(errs) > 0 {
			return fail(op, id, errs[0].Field, "object holds an invalid reference", errs[0])
		}
		return e.checkCycles(op, id, o)
	})
	if err != nil {
		return "", err
	}
	e.log.Debug("insert", "id", id, "isa", o.ISA())
	return id, nil
}

// checkCycles fails when a relation the object takes part in is cyclic.
func (e *Editor) checkCycles(op string, id pbx.ID, o pbx.Object) error {
	var cycles []*types.CycleError
	switch o.(type) {
	case pbx.GroupLike:
		cycles = verify.GroupCycles(e.g)
	case pbx.TargetLike, *pbx.TargetDependency, *pbx.ContainerItemProxy:
		cycles = verify.DependencyCycles(e.g)
	}
	if len(cycles) > 0 {
		return fail(op, id, "", "edit would create a cycle", cycles[0])
	}
	return nil
}
