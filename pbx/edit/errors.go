package edit

import (
	"errors"

	"github.com/joshuapare/pbxkit/pbx"
	"github.com/joshuapare/pbxkit/pkg/types"
)

var (
	// ErrNotFound indicates an identifier that is not in the graph.
	ErrNotFound = errors.New("edit: object not found")

	// ErrAttached indicates Insert was given an object that already belongs to a graph.
	ErrAttached = errors.New("edit: object already attached")

	// ErrNotReference indicates a field that does not hold references.
	ErrNotReference = errors.New("edit: field does not hold references")

	// ErrKind indicates a target whose kind the field does not accept.
	ErrKind = errors.New("edit: target kind not accepted")

	// ErrPosition indicates a list position outside the list.
	ErrPosition = errors.New("edit: position out of range")

	// ErrNotLinked indicates Unlink was asked to drop a reference that is not there.
	ErrNotLinked = errors.New("edit: reference not present")

	// ErrRequired indicates a required reference would be cleared.
	ErrRequired = errors.New("edit: reference is required")

	// ErrReferenced indicates Remove without cascade on a referenced object.
	ErrReferenced = errors.New("edit: object is still referenced")

	// ErrRemoveRoot indicates an attempt to remove the root project.
	ErrRemoveRoot = errors.New("edit: cannot remove the root project")

	// ErrNotPermutation indicates Reorder was given a different set of identifiers.
	ErrNotPermutation = errors.New("edit: new order is not a permutation")

	// ErrIdentifiers indicates the generator kept proposing taken identifiers.
	ErrIdentifiers = errors.New("edit: could not allocate a unique identifier")

	// ErrAdvisory indicates a convention check failed in strict mode.
	ErrAdvisory = errors.New("edit: convention check failed")
)

func fail(op string, id pbx.ID, field, reason string, err error) error {
	return &types.MutationError{Op: op, ID: string(id), Field: field, Reason: reason, Err: err}
}
