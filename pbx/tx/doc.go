// Package tx provides the undo journal that makes graph edits atomic.
//
// # Overview
//
// Every mutation performed through package edit runs inside a transaction.
// Before an object is changed the editor records how to undo the change:
//
//   - Snapshot(o): a deep copy of o's fields, restored in place on rollback
//   - Attached(id): the object is detached again on rollback
//   - Detached(o): the object is re-attached under its identifier
//   - Record(fn): any other undo step, such as resetting rootObject
//
// Rollback replays the journal in reverse. Commit discards it.
//
// # Savepoints
//
// Transactions nest. Begin pushes a savepoint; Commit pops it and keeps the
// inner entries so an outer Rollback still undoes them; Rollback undoes only
// the entries recorded since the matching Begin. The journal is cleared when
// the outermost transaction commits.
//
//	mgr := tx.NewManager(g)
//	mgr.Begin()
//	mgr.Snapshot(target)
//	if err := apply(); err != nil {
//	    return errors.Join(err, mgr.Rollback())
//	}
//	mgr.Commit()
//
// # Generations
//
// Undo steps go through the graph's own primitives, so every rolled back
// change still advances pbx.Graph.Generation. Views taken before a failed
// edit therefore report stale even though the content matches again.
//
// # Thread Safety
//
// Manager instances are NOT thread-safe. Only one goroutine should use a
// Manager, and the graph it guards, at a time.
package tx
