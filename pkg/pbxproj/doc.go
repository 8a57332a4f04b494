/*
Package pbxproj is the high-level entry point for reading and writing Xcode
project files.

# Quick Start

Load a project, edit it and write it back:

	g, err := pbxproj.ReadFile("App.xcodeproj/project.pbxproj", pbxproj.Options{})
	if err != nil {
	    log.Fatal(err)
	}
	ed := edit.New(g, edit.Options{})
	if _, err := ed.AddFile(g.RootProject().MainGroup(), "Extra.swift", pbx.SourceTreeGroup); err != nil {
	    log.Fatal(err)
	}
	err = pbxproj.WriteFile("App.xcodeproj/project.pbxproj", g, pbxproj.WriteOptions{Backup: true})

# Loading

Parse runs the full pipeline: decode the text encoding, tokenize, build the
untyped tree, lift every object into its typed variant and check that every
reference resolves and that neither the group tree nor the target
dependency graph has a cycle. It stops at the first error. The error is one
of the typed errors in pkg/types, so callers can branch with errors.As or
with the category sentinels:

	if errors.Is(err, types.ErrReference) {
	    // dangling identifier
	}

Set Options.SkipValidation to load a broken file for inspection; Validate
then reports every violation at once.

# Writing

Serialize produces Xcode's layout byte for byte. A graph that was loaded
and not modified serializes to exactly its input bytes, including a
UTF-16 encoding or a missing trailing newline.

# Thread Safety

A graph is not safe for concurrent use. Serialize and Validate only read,
so several may run together while no edit is in progress.
*/
package pbxproj
