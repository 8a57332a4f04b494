// Package plist reads and writes the old-style (NeXTSTEP) property-list
// dialect used by Xcode project files.
//
// The package is deliberately untyped: it turns bytes into an ordered tree
// of dictionaries, arrays and scalars and back. Typing (isa dispatch,
// schema checks, reference comments) lives in package pbx.
//
// Fidelity rules:
//   - Dictionaries keep source key order.
//   - Scalars keep their exact source lexeme (quoting and escapes) in Raw and
//     are re-emitted from it until the value is changed.
//   - A /* comment */ that directly follows a key or value is attached to
//     that scalar. Other comments (section markers) are dropped.
//   - The header line, the input encoding and the final newline are recorded
//     on the Document.
package plist
