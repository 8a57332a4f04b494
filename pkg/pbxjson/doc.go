// Package pbxjson converts project graphs to and from JSON, and to YAML.
//
// The JSON form mirrors the file: an object with archiveVersion, classes,
// objectVersion, objects and rootObject, keys in file order, objects in
// section order. Numbers the file wrote bare become JSON numbers; every
// other scalar is a string. Annotations are not carried, since the
// serializer regenerates them.
//
// Unmarshal reads the token stream in order, so a project converted to
// JSON and back serializes with the same object and field order. Quoting
// is canonical afterwards: a value the file quoted without need comes back
// bare.
package pbxjson
