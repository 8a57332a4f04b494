package pbx

// IDLen is the length of an object identifier.
const IDLen = 24

// ID is a 24-character hexadecimal object identifier. It is an opaque
// handle that is unique within one project; it is never parsed as a number.
type ID string

// Valid reports whether id has the identifier shape.
func (id ID) Valid() bool {
	if len(id) != IDLen {
		return false
	}
	for i := 0; i < len(id); i++ {
		c := id[i]
		switch {
		case c >= '0' && c <= '9', c >= 'A' && c <= 'F', c >= 'a' && c <= 'f':
		default:
			return false
		}
	}
	return true
}

// String implements the Stringer interface.
func (id ID) String() string { return string(id) }

// IDs converts identifiers to plain strings.
func IDs(ids []ID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = string(id)
	}
	return out
}
