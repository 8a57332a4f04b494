// Package verify checks the referential integrity of a project graph.
//
// # Overview
//
// A graph read from disk only guarantees that every object matches its
// schema. This package checks what spans objects:
//   - Root: rootObject names a PBXProject
//   - References: every non-soft reference resolves, to a kind the field accepts
//   - Cycles: group containment and target dependencies are acyclic
//   - Orphans: objects unreachable from the root (informational only)
//
// # Quick Start
//
// Report every problem at once:
//
//	report := verify.Check(g)
//	if err := report.Err(); err != nil {
//	    fmt.Println(err) // one line per violation
//	}
//	for _, id := range report.Orphans {
//	    fmt.Println("unreachable:", id)
//	}
//
// Stop at the first problem, as a loader does:
//
//	if err := verify.CheckEager(g); err != nil {
//	    return err
//	}
//
// Find who points at an object:
//
//	idx := verify.BuildIndex(g)
//	for _, r := range idx.Referrers(id) {
//	    fmt.Printf("%s.%s\n", r.From, r.Field)
//	}
//
// # Errors
//
// Violations are *types.ReferenceError and *types.CycleError values. Report.Err
// joins them with errors.Join, so errors.Is(err, types.ErrCycle) works on
// the batch.
package verify
