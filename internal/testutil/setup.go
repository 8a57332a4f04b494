package testutil

import (
	"os"
	"testing"

	"github.com/joshuapare/pbxkit/pbx"
	"github.com/joshuapare/pbxkit/pbx/plist"
	"github.com/joshuapare/pbxkit/pkg/types"
)

// ReadFixture returns the bytes of a fixture file.
// Calls t.Skip if the fixture is not found.
//
// Example:
//
//	src := testutil.ReadFixture(t, testutil.FixtureApp)
func ReadFixture(t testing.TB, relativePath string) []byte {
	t.Helper()

	data, err := os.ReadFile(resolveTestPath(t, relativePath))
	if err != nil {
		t.Fatalf("Failed to read fixture: %v", err)
	}
	return data
}

// LoadGraph reads, parses and decodes a fixture. It returns the graph and
// the source bytes.
//
// Example:
//
//	g, src := testutil.LoadGraph(t, testutil.FixtureMinimal)
func LoadGraph(t testing.TB, relativePath string) (*pbx.Graph, []byte) {
	t.Helper()

	src := ReadFixture(t, relativePath)
	return MustDecode(t, src), src
}

// MustDecode parses and decodes src with default limits.
// Calls t.Fatal on any error.
func MustDecode(t testing.TB, src []byte) *pbx.Graph {
	t.Helper()

	doc, err := plist.Parse(src, types.DefaultLimits())
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}
	g, err := pbx.Decode(doc, pbx.DecodeOptions{})
	if err != nil {
		t.Fatalf("Failed to decode: %v", err)
	}
	return g
}

// MustEncode encodes g. Calls t.Fatal on any error.
func MustEncode(t testing.TB, g *pbx.Graph) []byte {
	t.Helper()

	out, err := pbx.Encode(g)
	if err != nil {
		t.Fatalf("Failed to encode: %v", err)
	}
	return out
}

// resolveTestPath attempts to find the fixture by trying multiple path resolutions.
// This handles the fact that tests may be run from different working directories.
func resolveTestPath(t testing.TB, relativePath string) string {
	t.Helper()

	// Try paths in order of likelihood
	candidates := []string{
		relativePath,                  // Direct path (from repo root)
		"../" + relativePath,          // From a top-level package (e.g., pbx/)
		"../../" + relativePath,       // From package two levels deep (e.g., pbx/edit/)
		"../../../" + relativePath,    // From package three levels deep
		"../../../../" + relativePath, // From package four levels deep
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	// If not found, skip the test
	t.Skipf("Fixture not found at any candidate path starting from: %s", relativePath)
	return "" // unreachable
}
