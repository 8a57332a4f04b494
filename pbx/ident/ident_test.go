package ident_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/pbxkit/pbx"
	"github.com/joshuapare/pbxkit/pbx/ident"
)

func TestRandom(t *testing.T) {
	gen := ident.Random()
	seen := make(map[pbx.ID]bool)
	for i := 0; i < 100; i++ {
		id := gen.Next()
		require.True(t, id.Valid(), string(id))
		assert.Equal(t, strings.ToUpper(string(id)), string(id))
		assert.False(t, seen[id])
		seen[id] = true
	}
}

func TestDeterministic(t *testing.T) {
	a, b := ident.Deterministic("App"), ident.Deterministic("App")
	other := ident.Deterministic("Tool")
	for i := 0; i < 10; i++ {
		x, y := a.Next(), b.Next()
		require.True(t, x.Valid())
		assert.Equal(t, x, y)
		assert.NotEqual(t, x, other.Next())
	}
	assert.NotEqual(t, ident.Deterministic("App").Next(), a.Next())
}

func TestUnique(t *testing.T) {
	first := ident.Deterministic("seed").Next()
	taken := func(id pbx.ID) bool { return id == first }

	id := ident.Unique(ident.Deterministic("seed"), taken, 5)
	assert.NotEmpty(t, id)
	assert.NotEqual(t, first, id)

	assert.Empty(t, ident.Unique(ident.Deterministic("seed"), func(pbx.ID) bool { return true }, 3))
}
