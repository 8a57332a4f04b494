package types

import (
	"fmt"
	"strings"
)

// -----------------------------------------------------------------------------
// Error categories
// -----------------------------------------------------------------------------

// ErrKind classifies errors so callers can branch on intent rather than text.
type ErrKind int

const (
	ErrKindLex       ErrKind = iota // malformed token stream
	ErrKindSyntax                   // malformed tree structure
	ErrKindSchema                   // object violates its isa contract
	ErrKindReference                // dangling reference or bad root
	ErrKindCycle                    // illegal cycle in containment or dependencies
	ErrKindMutation                 // edit API misuse
)

// String implements the Stringer interface for ErrKind.
func (k ErrKind) String() string {
	switch k {
	case ErrKindLex:
		return "lex"
	case ErrKindSyntax:
		return "syntax"
	case ErrKindSchema:
		return "schema"
	case ErrKindReference:
		return "reference"
	case ErrKindCycle:
		return "cycle"
	case ErrKindMutation:
		return "mutation"
	default:
		return fmt.Sprintf("ErrKind(%d)", int(k))
	}
}

// Error is a typed error with an optional underlying cause. The package
// sentinels are *Error values; the detailed error types below match them
// through errors.Is.
type Error struct {
	Kind ErrKind
	Msg  string
	Err  error // optional underlying cause
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Sentinels for errors.Is category checks.
var (
	// ErrLex matches every *LexError.
	ErrLex = &Error{Kind: ErrKindLex, Msg: "malformed token stream"}
	// ErrSyntax matches every *SyntaxError.
	ErrSyntax = &Error{Kind: ErrKindSyntax, Msg: "malformed property list"}
	// ErrSchema matches every *SchemaError.
	ErrSchema = &Error{Kind: ErrKindSchema, Msg: "object violates schema"}
	// ErrReference matches every *ReferenceError.
	ErrReference = &Error{Kind: ErrKindReference, Msg: "dangling reference"}
	// ErrCycle matches every *CycleError.
	ErrCycle = &Error{Kind: ErrKindCycle, Msg: "illegal cycle"}
	// ErrMutation matches every *MutationError.
	ErrMutation = &Error{Kind: ErrKindMutation, Msg: "invalid mutation"}
)

func isKind(target error, kind ErrKind) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == kind
}

// -----------------------------------------------------------------------------
// Detailed error types
// -----------------------------------------------------------------------------

// LexError reports a malformed token at a byte offset.
type LexError struct {
	Offset   int    // byte offset of the offending token
	Line     int    // 1-based line
	Col      int    // 1-based column
	Msg      string // what went wrong
	Expected string // what the lexer was looking for
}

func (e *LexError) Error() string {
	s := fmt.Sprintf("lex error at line %d, col %d (offset %d): %s", e.Line, e.Col, e.Offset, e.Msg)
	if e.Expected != "" {
		s += " (expected " + e.Expected + ")"
	}
	return s
}

// Kind returns ErrKindLex.
func (e *LexError) Kind() ErrKind { return ErrKindLex }

// Is reports whether target is the ErrLex sentinel.
func (e *LexError) Is(target error) bool { return isKind(target, ErrKindLex) }

// SyntaxError reports a structural problem in the token stream.
type SyntaxError struct {
	Offset   int
	Line     int
	Col      int
	Token    string // raw text of the offending token ("" at end of input)
	Msg      string
	Expected string
}

func (e *SyntaxError) Error() string {
	tok := e.Token
	if tok == "" {
		tok = "end of input"
	} else {
		tok = fmt.Sprintf("%q", tok)
	}
	s := fmt.Sprintf("syntax error at line %d, col %d (offset %d) near %s: %s", e.Line, e.Col, e.Offset, tok, e.Msg)
	if e.Expected != "" {
		s += " (expected " + e.Expected + ")"
	}
	return s
}

// Kind returns ErrKindSyntax.
func (e *SyntaxError) Kind() ErrKind { return ErrKindSyntax }

// Is reports whether target is the ErrSyntax sentinel.
func (e *SyntaxError) Is(target error) bool { return isKind(target, ErrKindSyntax) }

// SchemaError names the object, its isa and the field that broke the contract.
type SchemaError struct {
	ID     string
	ISA    string
	Field  string
	Reason string
}

func (e *SchemaError) Error() string {
	var b strings.Builder
	b.WriteString("schema error")
	if e.ID != "" {
		fmt.Fprintf(&b, ": object %s", e.ID)
	}
	if e.ISA != "" {
		fmt.Fprintf(&b, " (%s)", e.ISA)
	}
	if e.Field != "" {
		fmt.Fprintf(&b, " field %q", e.Field)
	}
	b.WriteString(": ")
	b.WriteString(e.Reason)
	return b.String()
}

// Kind returns ErrKindSchema.
func (e *SchemaError) Kind() ErrKind { return ErrKindSchema }

// Is reports whether target is the ErrSchema sentinel.
func (e *SchemaError) Is(target error) bool { return isKind(target, ErrKindSchema) }

// ReferenceError reports a reference whose target is missing or of the wrong kind.
type ReferenceError struct {
	Referrer string // object holding the reference ("" for rootObject)
	Field    string
	Target   string
	Msg      string // optional override of the default message
}

func (e *ReferenceError) Error() string {
	msg := e.Msg
	if msg == "" {
		msg = "target does not exist"
	}
	if e.Referrer == "" {
		return fmt.Sprintf("reference error: %s -> %s: %s", e.Field, e.Target, msg)
	}
	return fmt.Sprintf("reference error: %s.%s -> %s: %s", e.Referrer, e.Field, e.Target, msg)
}

// Kind returns ErrKindReference.
func (e *ReferenceError) Kind() ErrKind { return ErrKindReference }

// Is reports whether target is the ErrReference sentinel.
func (e *ReferenceError) Is(target error) bool { return isKind(target, ErrKindReference) }

// Relation names used by CycleError.
const (
	RelationGroup      = "group containment"
	RelationDependency = "target dependency"
)

// CycleError carries the full cycle path. Path starts and ends with the
// same identifier; Names holds a display name per Path entry when known.
type CycleError struct {
	Relation string
	Path     []string
	Names    []string
}

func (e *CycleError) Error() string {
	parts := make([]string, len(e.Path))
	for i, id := range e.Path {
		if i < len(e.Names) && e.Names[i] != "" {
			parts[i] = fmt.Sprintf("%s (%s)", e.Names[i], id)
		} else {
			parts[i] = id
		}
	}
	return fmt.Sprintf("%s cycle: %s", e.Relation, strings.Join(parts, " -> "))
}

// Kind returns ErrKindCycle.
func (e *CycleError) Kind() ErrKind { return ErrKindCycle }

// Is reports whether target is the ErrCycle sentinel.
func (e *CycleError) Is(target error) bool { return isKind(target, ErrKindCycle) }

// MutationError reports misuse of the edit API. The graph is unchanged.
type MutationError struct {
	Op     string // Insert, Link, Unlink, Remove, Reorder, Set
	ID     string
	Field  string
	Reason string
	Err    error // optional underlying cause
}

func (e *MutationError) Error() string {
	var b strings.Builder
	b.WriteString(strings.ToLower(e.Op))
	if e.ID != "" {
		b.WriteString(" ")
		b.WriteString(e.ID)
	}
	if e.Field != "" {
		b.WriteString(".")
		b.WriteString(e.Field)
	}
	b.WriteString(": ")
	b.WriteString(e.Reason)
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *MutationError) Unwrap() error { return e.Err }

// Kind returns ErrKindMutation.
func (e *MutationError) Kind() ErrKind { return ErrKindMutation }

// Is reports whether target is the ErrMutation sentinel.
func (e *MutationError) Is(target error) bool { return isKind(target, ErrKindMutation) }
