package walker

import (
	"slices"

	"github.com/joshuapare/pbxkit/pbx"
)

// Stats holds object counts for a graph.
type Stats struct {
	Total     int
	Reachable int
	Orphans   int
	Unknown   int // objects of an isa without a schema
	ByISA     map[pbx.ISA]int
}

// ISAs returns the counted kinds in sorted order.
func (s Stats) ISAs() []pbx.ISA {
	out := make([]pbx.ISA, 0, len(s.ByISA))
	for isa := range s.ByISA {
		out = append(out, isa)
	}
	slices.Sort(out)
	return out
}

// Count gathers statistics about g.
func Count(g *pbx.Graph) Stats {
	reached := Reachable(g)
	s := Stats{ByISA: make(map[pbx.ISA]int)}
	for _, id := range g.IDs() {
		o, _ := g.Object(id)
		s.Total++
		s.ByISA[o.ISA()]++
		if reached[id] {
			s.Reachable++
		} else {
			s.Orphans++
		}
		if _, ok := o.(*pbx.Unknown); ok {
			s.Unknown++
		}
	}
	return s
}
