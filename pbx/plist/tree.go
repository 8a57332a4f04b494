package plist

import "regexp"

// Value is one node of the untyped tree: *Dict, *Array or *Scalar.
type Value interface {
	value()
}

// ScalarKind records how a scalar appeared in the source.
type ScalarKind uint8

const (
	Unquoted ScalarKind = iota // bare identifier or path
	Quoted                     // "..." string
	Number                     // bare numeral
)

// String implements the Stringer interface for ScalarKind.
func (k ScalarKind) String() string {
	switch k {
	case Unquoted:
		return "unquoted"
	case Quoted:
		return "quoted"
	case Number:
		return "number"
	default:
		return "unknown"
	}
}

var numberRe = regexp.MustCompile(`^-?[0-9]+(\.[0-9]+)?$`)

// Scalar is a string or number leaf.
type Scalar struct {
	Text    string     // decoded value
	Kind    ScalarKind // source form
	Raw     string     // exact source lexeme; empty for synthesized scalars
	Comment string     // trailing /* */ annotation without delimiters
}

// NewString returns a synthesized scalar. It is written quoted only when
// the text requires it.
func NewString(s string) *Scalar {
	kind := Unquoted
	switch {
	case NeedsQuote(s):
		kind = Quoted
	case numberRe.MatchString(s):
		kind = Number
	}
	return &Scalar{Text: s, Kind: kind}
}

// Lexeme returns the text the writer emits for s.
func (s *Scalar) Lexeme() string {
	if s.Raw != "" {
		return s.Raw
	}
	return QuoteString(s.Text)
}

// Set replaces the value and drops the recorded source lexeme. It reports
// false and leaves s untouched when text equals the current value.
func (s *Scalar) Set(text string) bool {
	if s.Text == text {
		return false
	}
	n := NewString(text)
	s.Text, s.Kind, s.Raw = n.Text, n.Kind, ""
	return true
}

// SetRaw replaces both the value and its exact lexeme.
func (s *Scalar) SetRaw(text, raw string) {
	s.Text, s.Raw = text, raw
}

func (*Scalar) value() {}

// Entry is one key/value pair of a Dict.
type Entry struct {
	Key   *Scalar
	Value Value
}

// Dict is an ordered dictionary. Keys are unique.
type Dict struct {
	entries []Entry
	index   map[string]int

	// Inline is true when the source wrote the dictionary on one line.
	Inline bool
}

// NewDict returns an empty dictionary.
func NewDict() *Dict {
	return &Dict{}
}

func (*Dict) value() {}

// Len returns the number of entries.
func (d *Dict) Len() int { return len(d.entries) }

// Entries returns the entries in order. The slice must not be modified.
func (d *Dict) Entries() []Entry { return d.entries }

// Keys returns the keys in order.
func (d *Dict) Keys() []string {
	keys := make([]string, len(d.entries))
	for i, e := range d.entries {
		keys[i] = e.Key.Text
	}
	return keys
}

// Index returns the position of key, or -1.
func (d *Dict) Index(key string) int {
	if d.index == nil {
		d.index = make(map[string]int, len(d.entries))
		for i, e := range d.entries {
			d.index[e.Key.Text] = i
		}
	}
	if i, ok := d.index[key]; ok {
		return i
	}
	return -1
}

// Has reports whether key is present.
func (d *Dict) Has(key string) bool { return d.Index(key) >= 0 }

// Get returns the value stored under key.
func (d *Dict) Get(key string) (Value, bool) {
	i := d.Index(key)
	if i < 0 {
		return nil, false
	}
	return d.entries[i].Value, true
}

// Entry returns the full entry stored under key.
func (d *Dict) Entry(key string) (Entry, bool) {
	i := d.Index(key)
	if i < 0 {
		return Entry{}, false
	}
	return d.entries[i], true
}

// Scalar returns the value under key if it is a scalar.
func (d *Dict) Scalar(key string) (*Scalar, bool) {
	v, _ := d.Get(key)
	s, ok := v.(*Scalar)
	return s, ok
}

// Array returns the value under key if it is an array.
func (d *Dict) Array(key string) (*Array, bool) {
	v, _ := d.Get(key)
	a, ok := v.(*Array)
	return a, ok
}

// Dict returns the value under key if it is a dictionary.
func (d *Dict) Dict(key string) (*Dict, bool) {
	v, _ := d.Get(key)
	c, ok := v.(*Dict)
	return c, ok
}

// Text returns the scalar text under key, or "".
func (d *Dict) Text(key string) string {
	if s, ok := d.Scalar(key); ok {
		return s.Text
	}
	return ""
}

// Add appends a new entry. It reports false if the key already exists.
func (d *Dict) Add(key *Scalar, v Value) bool {
	if d.Has(key.Text) {
		return false
	}
	d.entries = append(d.entries, Entry{Key: key, Value: v})
	d.index[key.Text] = len(d.entries) - 1
	return true
}

// Set replaces the value under key in place, or appends a new entry.
func (d *Dict) Set(key string, v Value) {
	if i := d.Index(key); i >= 0 {
		d.entries[i].Value = v
		return
	}
	d.Add(NewString(key), v)
}

// InsertAt inserts a new entry at position i. An existing key is replaced
// in place instead.
func (d *Dict) InsertAt(i int, key string, v Value) {
	if j := d.Index(key); j >= 0 {
		d.entries[j].Value = v
		return
	}
	if i < 0 || i > len(d.entries) {
		i = len(d.entries)
	}
	d.entries = append(d.entries, Entry{})
	copy(d.entries[i+1:], d.entries[i:])
	d.entries[i] = Entry{Key: NewString(key), Value: v}
	d.index = nil
}

// Delete removes key and reports whether it was present.
func (d *Dict) Delete(key string) bool {
	i := d.Index(key)
	if i < 0 {
		return false
	}
	d.entries = append(d.entries[:i], d.entries[i+1:]...)
	d.index = nil
	return true
}

// Array is an ordered list.
type Array struct {
	Items []Value

	// Inline is true when the source wrote the array on one line.
	Inline bool
}

// NewArray returns an array holding items.
func NewArray(items ...Value) *Array {
	return &Array{Items: items}
}

// Strings returns an array of synthesized string scalars.
func Strings(items ...string) *Array {
	a := &Array{Items: make([]Value, len(items))}
	for i, s := range items {
		a.Items[i] = NewString(s)
	}
	return a
}

func (*Array) value() {}

// Len returns the number of items.
func (a *Array) Len() int { return len(a.Items) }

// Texts returns the text of every scalar item; non-scalars are skipped.
func (a *Array) Texts() []string {
	out := make([]string, 0, len(a.Items))
	for _, v := range a.Items {
		if s, ok := v.(*Scalar); ok {
			out = append(out, s.Text)
		}
	}
	return out
}

// Clone returns a deep copy of v.
func Clone(v Value) Value {
	switch t := v.(type) {
	case *Scalar:
		c := *t
		return &c
	case *Array:
		return t.Clone()
	case *Dict:
		return t.Clone()
	default:
		return nil
	}
}

// Clone returns a deep copy of d.
func (d *Dict) Clone() *Dict {
	c := &Dict{Inline: d.Inline, entries: make([]Entry, len(d.entries))}
	for i, e := range d.entries {
		k := *e.Key
		c.entries[i] = Entry{Key: &k, Value: Clone(e.Value)}
	}
	return c
}

// Clone returns a deep copy of a.
func (a *Array) Clone() *Array {
	c := &Array{Inline: a.Inline, Items: make([]Value, len(a.Items))}
	for i, v := range a.Items {
		c.Items[i] = Clone(v)
	}
	return c
}

// Equal reports whether a and b hold the same values in the same order.
// Lexemes, comments and layout flags are ignored.
func Equal(a, b Value) bool {
	switch x := a.(type) {
	case *Scalar:
		y, ok := b.(*Scalar)
		return ok && x.Text == y.Text
	case *Array:
		y, ok := b.(*Array)
		if !ok || len(x.Items) != len(y.Items) {
			return false
		}
		for i := range x.Items {
			if !Equal(x.Items[i], y.Items[i]) {
				return false
			}
		}
		return true
	case *Dict:
		y, ok := b.(*Dict)
		if !ok || x.Len() != y.Len() {
			return false
		}
		for i, e := range x.entries {
			f := y.entries[i]
			if e.Key.Text != f.Key.Text || !Equal(e.Value, f.Value) {
				return false
			}
		}
		return true
	default:
		return a == nil && b == nil
	}
}

// Document is a parsed property-list file.
type Document struct {
	Header          string   // first line when it is a // comment, without newline
	Root            *Dict    // top-level dictionary
	TrailingNewline bool     // input ended with a newline
	Encoding        Encoding // input text encoding
}
