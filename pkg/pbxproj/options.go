package pbxproj

import (
	"log/slog"

	"github.com/joshuapare/pbxkit/internal/writer"
	"github.com/joshuapare/pbxkit/pkg/types"
)

// Limits bounds the resources one parse may consume (re-exported for
// convenience).
type Limits = types.Limits

// DefaultLimits returns limits suitable for any real project file.
func DefaultLimits() Limits { return types.DefaultLimits() }

// Options controls loading.
type Options struct {
	// Limits bounds input size, nesting, scalar length and object count.
	// If nil, DefaultLimits() is used.
	Limits *Limits

	// SkipValidation loads the graph without checking references and
	// cycles. The schema of each object is still enforced.
	SkipValidation bool

	// Logger receives debug records about the load. Nil discards.
	Logger *slog.Logger
}

func (o Options) limits() Limits {
	if o.Limits == nil {
		return DefaultLimits()
	}
	return *o.Limits
}

// WriteOptions controls WriteFile.
type WriteOptions struct {
	// Backup copies the existing file to <path>.bak before replacing it.
	Backup bool

	// SkipValidation writes the graph even when it has dangling
	// references or cycles.
	SkipValidation bool
}

// Sink receives serialized project bytes; see Write.
type Sink = writer.Sink
