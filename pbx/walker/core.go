package walker

import "github.com/joshuapare/pbxkit/pbx"

// initialStackCapacity is the pre-allocated capacity for the traversal stack.
// Group nesting rarely exceeds a few dozen levels, so 256 avoids most reallocations.
const initialStackCapacity = 256

// Core is an iterative depth-first traversal over the reference graph.
type Core struct {
	g       *pbx.Graph
	visited map[pbx.ID]bool
	stack   []pbx.ID
}

// NewCore creates a traversal over g.
func NewCore(g *pbx.Graph) *Core {
	return &Core{
		g:       g,
		visited: make(map[pbx.ID]bool, g.Len()),
		stack:   make([]pbx.ID, 0, initialStackCapacity),
	}
}

// Walk visits every object reachable from the root project once, in
// depth-first preorder. Returning false from fn prunes the object's
// references.
func (c *Core) Walk(fn func(o pbx.Object) bool) {
	c.push(c.g.Root())
	for len(c.stack) > 0 {
		id := c.stack[len(c.stack)-1]
		c.stack = c.stack[:len(c.stack)-1]

		o, ok := c.g.Object(id)
		if !ok {
			continue
		}
		if !fn(o) {
			continue
		}

		// Push in reverse so the first reference is visited first.
		refs := pbx.Refs(o)
		for i := len(refs) - 1; i >= 0; i-- {
			c.push(refs[i].Target)
		}
	}
}

func (c *Core) push(id pbx.ID) {
	if id == "" || c.visited[id] || !c.g.Has(id) {
		return
	}
	c.visited[id] = true
	c.stack = append(c.stack, id)
}

// Visited reports whether the last walk reached id.
func (c *Core) Visited(id pbx.ID) bool { return c.visited[id] }

// Reachable returns the set of identifiers reachable from the root project.
func Reachable(g *pbx.Graph) map[pbx.ID]bool {
	c := NewCore(g)
	c.Walk(func(pbx.Object) bool { return true })
	return c.visited
}

// Unreachable returns the identifiers not reachable from the root project,
// in ascending order.
func Unreachable(g *pbx.Graph) []pbx.ID {
	reached := Reachable(g)
	var out []pbx.ID
	for _, id := range g.IDs() {
		if !reached[id] {
			out = append(out, id)
		}
	}
	return out
}
