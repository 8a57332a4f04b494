// Package edit implements the structured mutation API over a pbx.Graph.
//
// Every operation is atomic: it either applies fully or leaves the graph as
// it was. Operations record undo steps in a tx.Manager and roll them back
// on failure, so handles held by the caller stay valid either way.
//
//	ed := edit.New(g, edit.Options{})
//	id, err := ed.Insert(pbx.NewBuildFile(fileID))
//	if err != nil {
//	    return err
//	}
//	if err := ed.Link(sourcesID, "files", id, 0); err != nil {
//	    return err
//	}
//
// # Operations
//
//   - Insert allocates a unique identifier and adds a detached object
//   - Link sets a single reference or inserts into a reference list
//   - Unlink clears a single reference or drops one list occurrence
//   - Remove deletes an object, optionally cascading to owned objects
//   - Reorder permutes a reference list
//   - SetString and SetFlag change scalar fields
//
// After every successful call each hard reference resolves and neither
// group containment nor target dependencies contain a cycle.
//
// # Kind checks
//
// Link enforces the kinds a field accepts. Some conventions Xcode follows
// but does not enforce, such as a sources phase holding only source files,
// are advisory: they are logged at warn level, or rejected with ErrAdvisory
// when Options.Strict is set.
//
// # Thread Safety
//
// An Editor and the graph it edits must be used by one goroutine at a time.
package edit
