package types

// ============================================================================
// Parse Limits Constants
// ============================================================================
// Real-world project files stay far below these values; the limits exist to
// bound memory and recursion on hostile or corrupted input.

const (
	// MaxInputSize64MB is the default cap on the raw input size.
	MaxInputSize64MB = 64 << 20

	// MaxInputSize512MB is a relaxed cap for monorepo-sized projects.
	MaxInputSize512MB = 512 << 20

	// MaxInputSize4MB is a conservative cap for untrusted input.
	MaxInputSize4MB = 4 << 20

	// MaxDepthDefault bounds dictionary/array nesting. Project files rarely
	// nest deeper than 6 levels (objects > object > buildSettings > array).
	MaxDepthDefault = 64

	// MaxDepthDeep allows unusual generated files.
	MaxDepthDeep = 512

	// MaxDepthShallow is a conservative nesting cap.
	MaxDepthShallow = 16

	// MaxStringLenDefault bounds a single scalar (large shell scripts fit).
	MaxStringLenDefault = 1 << 20

	// MaxStringLenSmall is a conservative scalar cap.
	MaxStringLenSmall = 64 << 10

	// MaxObjectsDefault bounds the number of entries in the objects dictionary.
	MaxObjectsDefault = 1 << 20

	// MaxObjectsSmall is a conservative object-count cap.
	MaxObjectsSmall = 64 << 10
)

// Limits bounds the resources a single parse may consume. A zero field
// disables that particular check.
type Limits struct {
	// MaxInputSize is the maximum raw input size in bytes.
	MaxInputSize int

	// MaxDepth is the maximum nesting depth of dictionaries and arrays.
	MaxDepth int

	// MaxStringLen is the maximum decoded length of one scalar in bytes.
	MaxStringLen int

	// MaxObjects is the maximum number of objects in the graph.
	MaxObjects int
}

// DefaultLimits returns limits suitable for any real project file.
func DefaultLimits() Limits {
	return Limits{
		MaxInputSize: MaxInputSize64MB,
		MaxDepth:     MaxDepthDefault,
		MaxStringLen: MaxStringLenDefault,
		MaxObjects:   MaxObjectsDefault,
	}
}

// RelaxedLimits returns permissive limits for very large generated projects.
func RelaxedLimits() Limits {
	return Limits{
		MaxInputSize: MaxInputSize512MB,
		MaxDepth:     MaxDepthDeep,
		MaxStringLen: MaxInputSize64MB,
		MaxObjects:   MaxObjectsDefault * 8,
	}
}

// StrictLimits returns conservative limits for untrusted input.
func StrictLimits() Limits {
	return Limits{
		MaxInputSize: MaxInputSize4MB,
		MaxDepth:     MaxDepthShallow,
		MaxStringLen: MaxStringLenSmall,
		MaxObjects:   MaxObjectsSmall,
	}
}

// IsZero reports whether no limit is set.
func (l Limits) IsZero() bool {
	return l == Limits{}
}
