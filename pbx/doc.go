// Package pbx is the typed object graph of an Xcode project file.
//
// # Overview
//
// A project.pbxproj file is an old-style property list whose "objects"
// dictionary maps 24-character identifiers to objects. Each object names
// its kind in an "isa" field and refers to other objects by identifier.
// This package lifts the parsed property list (package plist) into a Graph
// of typed objects and writes it back in Xcode's layout.
//
// # Key Types
//
//   - Graph: the document; top-level keys, the object table and the root
//   - Object: sealed interface implemented by one type per known isa
//   - Unknown: passthrough for kinds without a schema, kept verbatim
//   - Schema/Field: per-isa field descriptors (kind, required, accepted
//     target kinds, layout)
//   - FileLike, GroupLike, BuildPhaseLike, TargetLike: shared traits
//
// Objects keep every field in an ordered dictionary. Typed accessors read
// through it, so keys the schema does not know survive a round trip.
//
// # Decoding and Encoding
//
//	doc, err := plist.Parse(src, types.DefaultLimits())
//	if err != nil {
//	    return err
//	}
//	g, err := pbx.Decode(doc, pbx.DecodeOptions{})
//	if err != nil {
//	    return err
//	}
//	out, err := pbx.Encode(g)
//
// Encoding a graph that was not modified reproduces the input bytes. The
// /* */ annotations after identifiers are rebuilt from the graph.
//
// # Mutation
//
// The setters on objects and the Put* methods on Graph are the low-level
// primitives. They do not check references; package edit wraps them in
// checked, transactional operations.
//
// # Thread Safety
//
// A Graph is not safe for concurrent mutation. Callers that share one
// across goroutines must serialize access.
package pbx
