// Package walker provides traversals and a resolved read view over a
// project graph.
//
// # Overview
//
// The graph stores references as identifiers. Read-heavy consumers that
// would rather follow handles use a View: every method returns typed
// objects instead of identifiers. A View is bound to the graph generation
// it was created at; once the graph is mutated every View method returns
// ErrStale and a new View must be taken.
//
// # Core Components
//
// Core: iterative depth-first traversal from the root project
//   - Explicit stack, no recursion
//   - Visited set keyed by identifier
//   - Follows every resolvable reference, soft ones included
//
// Counter: object statistics by isa and reachability
//
// View: typed handles for targets, phases, build files, groups,
// dependencies and configurations
//
// # Quick Start
//
// List the source files of every target:
//
//	v := walker.New(g)
//	targets, _ := v.Targets()
//	for _, t := range targets {
//	    phases, _ := v.Phases(t)
//	    for _, p := range phases {
//	        files, _ := v.BuildFiles(p)
//	        for _, bf := range files {
//	            f, _ := v.File(bf)
//	            fmt.Println(t.Name(), p.DisplayName(), f.DisplayName())
//	        }
//	    }
//	}
//
// Find objects nothing reaches:
//
//	reached := walker.Reachable(g)
//	for _, id := range g.IDs() {
//	    if !reached[id] {
//	        fmt.Println("orphan", id)
//	    }
//	}
//
// # Thread Safety
//
// Walkers and views only read the graph. They are safe to use from
// several goroutines as long as no goroutine mutates the graph.
package walker
