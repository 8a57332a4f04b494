// Package types defines the public error taxonomy and resource limits shared
// by every pbxkit package.
//
// Errors fall into six stable categories so callers can branch on intent
// rather than message text:
//   - LexError: malformed token stream (unterminated string/comment, bad escape).
//   - SyntaxError: malformed tree structure (unexpected token, duplicate key).
//   - SchemaError: an object fails its isa's required-field contract.
//   - ReferenceError: a reference field points at a missing object.
//   - CycleError: group containment or target dependencies form a loop.
//   - MutationError: misuse of the edit API.
//
// Every typed error matches its category sentinel with errors.Is:
//
//	if errors.Is(err, types.ErrMutation) { ... }
//
// This package has no dependencies beyond the standard library.
package types
