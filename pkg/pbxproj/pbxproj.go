package pbxproj

import (
	"errors"
	"fmt"

	"github.com/joshuapare/pbxkit/internal/logger"
	"github.com/joshuapare/pbxkit/internal/mmfile"
	"github.com/joshuapare/pbxkit/internal/writer"
	"github.com/joshuapare/pbxkit/pbx"
	"github.com/joshuapare/pbxkit/pbx/plist"
	"github.com/joshuapare/pbxkit/pbx/verify"
	"github.com/joshuapare/pbxkit/pkg/types"
)

// Parse loads a project from its file contents.
//
// Example:
//
//	g, err := pbxproj.Parse(src, pbxproj.Options{})
func Parse(src []byte, opts Options) (*pbx.Graph, error) {
	log := logger.OrDiscard(opts.Logger)
	limits := opts.limits()

	doc, err := plist.Parse(src, limits)
	if err != nil {
		return nil, err
	}
	g, err := pbx.Decode(doc, pbx.DecodeOptions{MaxObjects: limits.MaxObjects, Logger: opts.Logger})
	if err != nil {
		return nil, err
	}
	if !opts.SkipValidation {
		if err := verify.CheckEager(g); err != nil {
			return nil, err
		}
	}
	log.Debug("parsed project", "name", g.Name, "objects", g.Len(), "encoding", g.Encoding.String())
	return g, nil
}

// Serialize writes g in Xcode's layout.
func Serialize(g *pbx.Graph) ([]byte, error) {
	return pbx.Encode(g)
}

// Validate checks every reference and both cycle-free relations of g and
// returns all violations joined, or nil.
func Validate(g *pbx.Graph) error {
	return verify.Check(g).Err()
}

// ReadFile loads the project file at path.
//
// Example:
//
//	g, err := pbxproj.ReadFile("App.xcodeproj/project.pbxproj", pbxproj.Options{})
func ReadFile(path string, opts Options) (*pbx.Graph, error) {
	limit := opts.limits().MaxInputSize
	f, err := mmfile.Open(path, int64(limit))
	if errors.Is(err, mmfile.ErrTooLarge) {
		return nil, &types.LexError{Offset: limit, Line: 1, Col: 1, Msg: err.Error()}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read project %s: %w", path, err)
	}
	// The parsed tree holds no references into the mapping.
	g, err := Parse(f.Data, opts)
	if cerr := f.Close(); err == nil && cerr != nil {
		return nil, fmt.Errorf("failed to release project %s: %w", path, cerr)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load project %s: %w", path, err)
	}
	return g, nil
}

// WriteFile serializes g and replaces the file at path atomically. Unless
// opts.SkipValidation is set, a graph that fails Validate is not written.
func WriteFile(path string, g *pbx.Graph, opts WriteOptions) error {
	return Write(&writer.FileWriter{Path: path, Backup: opts.Backup}, g, opts)
}

// Write serializes g into sink.
func Write(sink Sink, g *pbx.Graph, opts WriteOptions) error {
	if !opts.SkipValidation {
		if err := Validate(g); err != nil {
			return fmt.Errorf("refusing to write invalid project: %w", err)
		}
	}
	out, err := Serialize(g)
	if err != nil {
		return fmt.Errorf("failed to serialize project: %w", err)
	}
	if err := sink.WriteProject(out); err != nil {
		return fmt.Errorf("failed to write project: %w", err)
	}
	return nil
}
