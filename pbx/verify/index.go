package verify

import "github.com/joshuapare/pbxkit/pbx"

// Referrer is one reference pointing at an object.
type Referrer struct {
	From pbx.ID
	pbx.Ref
	Required  bool // the field cannot be cleared
	Dependent bool // the holder cannot outlive the target
	List      bool // the reference is an entry of an ordered list
}

// Index maps identifiers to the references that point at them.
type Index struct {
	referrers map[pbx.ID][]Referrer
}

// BuildIndex scans every object of g.
func BuildIndex(g *pbx.Graph) *Index {
	idx := &Index{referrers: make(map[pbx.ID][]Referrer)}
	for _, id := range g.IDs() {
		o, _ := g.Object(id)
		idx.add(o)
	}
	return idx
}

func (idx *Index) add(o pbx.Object) {
	s := o.Schema()
	for _, r := range pbx.Refs(o) {
		f, _ := s.Field(r.Field)
		idx.referrers[r.Target] = append(idx.referrers[r.Target], Referrer{
			From:      o.ID(),
			Ref:       r,
			Required:  f.Required,
			Dependent: f.Dependent,
			List:      f.Kind != pbx.KindRef,
		})
	}
}

// Referrers returns the references to id in holder order.
func (idx *Index) Referrers(id pbx.ID) []Referrer { return idx.referrers[id] }

// Count returns the number of references to id.
func (idx *Index) Count(id pbx.ID) int { return len(idx.referrers[id]) }

// Holders returns the distinct objects referring to id.
func (idx *Index) Holders(id pbx.ID) []pbx.ID {
	var out []pbx.ID
	seen := make(map[pbx.ID]bool)
	for _, r := range idx.referrers[id] {
		if !seen[r.From] {
			seen[r.From] = true
			out = append(out, r.From)
		}
	}
	return out
}
