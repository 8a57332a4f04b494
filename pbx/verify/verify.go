package verify

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/joshuapare/pbxkit/pbx"
	"github.com/joshuapare/pbxkit/pbx/walker"
	"github.com/joshuapare/pbxkit/pkg/types"
)

// Report collects every violation found in a graph.
type Report struct {
	References []*types.ReferenceError
	Cycles     []*types.CycleError
	Orphans    []pbx.ID // unreachable from the root; not an error
}

// OK reports whether the graph has no violations. Orphans do not count.
func (r *Report) OK() bool { return len(r.References) == 0 && len(r.Cycles) == 0 }

// Err joins every violation, or returns nil.
func (r *Report) Err() error {
	errs := make([]error, 0, len(r.References)+len(r.Cycles))
	for _, e := range r.References {
		errs = append(errs, e)
	}
	for _, e := range r.Cycles {
		errs = append(errs, e)
	}
	return errors.Join(errs...)
}

// Check runs every check and reports all violations.
func Check(g *pbx.Graph) *Report {
	r := &Report{}
	if err := Root(g); err != nil {
		r.References = append(r.References, err)
	}
	r.References = append(r.References, References(g)...)
	r.Cycles = Cycles(g)
	if g.RootProject() != nil {
		r.Orphans = walker.Unreachable(g)
	}
	return r
}

// CheckEager runs the same checks as Check but stops at the first violation.
func CheckEager(g *pbx.Graph) error {
	if err := Root(g); err != nil {
		return err
	}
	var first *types.ReferenceError
	eachReference(g, func(e *types.ReferenceError) bool {
		first = e
		return false
	})
	if first != nil {
		return first
	}
	if c := GroupCycles(g); len(c) > 0 {
		return c[0]
	}
	if c := DependencyCycles(g); len(c) > 0 {
		return c[0]
	}
	return nil
}

// Root checks that rootObject names a project.
func Root(g *pbx.Graph) *types.ReferenceError {
	id := g.Root()
	o, ok := g.Object(id)
	switch {
	case id == "":
		return &types.ReferenceError{Field: pbx.KeyRootObject, Msg: "root object is not set"}
	case !ok:
		return &types.ReferenceError{Field: pbx.KeyRootObject, Target: string(id)}
	case o.ISA() != pbx.ISAProject:
		return &types.ReferenceError{
			Field:  pbx.KeyRootObject,
			Target: string(id),
			Msg:    fmt.Sprintf("root object is a %s, not a %s", o.ISA(), pbx.ISAProject),
		}
	}
	return nil
}

// References returns one error per dangling or mistyped reference.
func References(g *pbx.Graph) []*types.ReferenceError {
	var out []*types.ReferenceError
	eachReference(g, func(e *types.ReferenceError) bool {
		out = append(out, e)
		return true
	})
	return out
}

// Reference checks the references held by a single object.
func Reference(g *pbx.Graph, o pbx.Object) []*types.ReferenceError {
	var out []*types.ReferenceError
	checkObject(g, o, func(e *types.ReferenceError) bool {
		out = append(out, e)
		return true
	})
	return out
}

func eachReference(g *pbx.Graph, fn func(*types.ReferenceError) bool) {
	for _, id := range g.IDs() {
		o, _ := g.Object(id)
		if !checkObject(g, o, fn) {
			return
		}
	}
}

func checkObject(g *pbx.Graph, o pbx.Object, fn func(*types.ReferenceError) bool) bool {
	s := o.Schema()
	for _, r := range pbx.Refs(o) {
		target, ok := g.Object(r.Target)
		if !ok {
			if r.Soft {
				continue
			}
			if !fn(&types.ReferenceError{Referrer: string(o.ID()), Field: r.Field, Target: string(r.Target)}) {
				return false
			}
			continue
		}
		f, _ := s.Field(r.Field)
		if f.Admits(target) {
			continue
		}
		e := &types.ReferenceError{
			Referrer: string(o.ID()),
			Field:    r.Field,
			Target:   string(r.Target),
			Msg:      fmt.Sprintf("field accepts %s, not %s", acceptList(f.Accepts), target.ISA()),
		}
		if !fn(e) {
			return false
		}
	}
	return true
}

func acceptList(isas []pbx.ISA) string {
	parts := make([]string, len(isas))
	for i, isa := range isas {
		parts[i] = string(isa)
	}
	return strings.Join(parts, " or ")
}

// Cycles returns the cycles of both structural relations.
func Cycles(g *pbx.Graph) []*types.CycleError {
	return append(GroupCycles(g), DependencyCycles(g)...)
}

// GroupCycles returns every cycle in group containment.
func GroupCycles(g *pbx.Graph) []*types.CycleError {
	edges := func(id pbx.ID) []pbx.ID {
		grp, ok := object[pbx.GroupLike](g, id)
		if !ok {
			return nil
		}
		var out []pbx.ID
		for _, c := range grp.Children() {
			if _, ok := object[pbx.GroupLike](g, c); ok {
				out = append(out, c)
			}
		}
		return out
	}
	var nodes []pbx.ID
	for _, id := range g.IDs() {
		if _, ok := object[pbx.GroupLike](g, id); ok {
			nodes = append(nodes, id)
		}
	}
	return detect(g, types.RelationGroup, nodes, edges)
}

// DependencyCycles returns every cycle in target dependencies.
func DependencyCycles(g *pbx.Graph) []*types.CycleError {
	edges := func(id pbx.ID) []pbx.ID {
		t, ok := object[pbx.TargetLike](g, id)
		if !ok {
			return nil
		}
		var out []pbx.ID
		for _, d := range t.Dependencies() {
			dep, ok := object[*pbx.TargetDependency](g, d)
			if !ok {
				continue
			}
			if to := g.DependencyTarget(dep); to != "" && g.Has(to) {
				out = append(out, to)
			}
		}
		return out
	}
	var nodes []pbx.ID
	for _, id := range g.IDs() {
		if _, ok := object[pbx.TargetLike](g, id); ok {
			nodes = append(nodes, id)
		}
	}
	return detect(g, types.RelationDependency, nodes, edges)
}

const (
	unvisited = iota
	visiting
	visited
)

// detect runs a depth-first search with a recursion stack over nodes and
// returns one error per distinct cycle.
func detect(g *pbx.Graph, relation string, nodes []pbx.ID, edges func(pbx.ID) []pbx.ID) []*types.CycleError {
	state := make(map[pbx.ID]int, len(nodes))
	var stack []pbx.ID
	var out []*types.CycleError
	seen := make(map[string]bool)

	var visit func(id pbx.ID)
	visit = func(id pbx.ID) {
		state[id] = visiting
		stack = append(stack, id)
		for _, next := range edges(id) {
			switch state[next] {
			case visiting:
				start := slices.Index(stack, next)
				cycle := slices.Clone(stack[start:])
				key := cycleKey(cycle)
				if !seen[key] {
					seen[key] = true
					out = append(out, cycleError(g, relation, cycle))
				}
			case unvisited:
				visit(next)
			}
		}
		stack = stack[:len(stack)-1]
		state[id] = visited
	}

	for _, id := range nodes {
		if state[id] == unvisited {
			visit(id)
		}
	}
	return out
}

// cycleKey identifies a cycle independent of its starting point.
func cycleKey(cycle []pbx.ID) string {
	least := 0
	for i, id := range cycle {
		if id < cycle[least] {
			least = i
		}
	}
	rotated := append(slices.Clone(cycle[least:]), cycle[:least]...)
	return strings.Join(pbx.IDs(rotated), ",")
}

func cycleError(g *pbx.Graph, relation string, cycle []pbx.ID) *types.CycleError {
	path := append(slices.Clone(cycle), cycle[0])
	e := &types.CycleError{Relation: relation, Path: pbx.IDs(path), Names: make([]string, len(path))}
	for i, id := range path {
		e.Names[i] = displayName(g, id)
	}
	return e
}

func displayName(g *pbx.Graph, id pbx.ID) string {
	o, _ := g.Object(id)
	switch t := o.(type) {
	case pbx.TargetLike:
		return t.Name()
	case pbx.FileLike:
		return t.DisplayName()
	default:
		return ""
	}
}

func object[T pbx.Object](g *pbx.Graph, id pbx.ID) (T, bool) {
	var zero T
	o, ok := g.Object(id)
	if !ok {
		return zero, false
	}
	t, ok := o.(T)
	return t, ok
}
