package tx_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/pbxkit/internal/testutil"
	"github.com/joshuapare/pbxkit/pbx"
	"github.com/joshuapare/pbxkit/pbx/tx"
)

func TestManager_State(t *testing.T) {
	g, _ := testutil.LoadGraph(t, testutil.FixtureMinimal)
	tm := tx.NewManager(g)

	assert.False(t, tm.InTransaction())
	require.ErrorIs(t, tm.Rollback(), tx.ErrNoTransaction)
	tm.Commit() // no-op

	tm.Begin()
	tm.Begin()
	assert.True(t, tm.InTransaction())
	assert.Equal(t, 2, tm.Depth())
	assert.Equal(t, uint64(1), tm.CurrentSequence())

	tm.Commit()
	tm.Commit()
	assert.False(t, tm.InTransaction())

	tm.Begin()
	assert.Equal(t, uint64(2), tm.CurrentSequence())
	tm.Commit()
}

func TestManager_RollbackRestoresGraph(t *testing.T) {
	g, src := testutil.LoadGraph(t, testutil.FixtureMinimal)
	before := testutil.MustDecode(t, src)
	tm := tx.NewManager(g)

	tm.Begin()

	o, _ := g.Object(testutil.MinimalFile)
	file := o.(*pbx.FileReference)
	tm.Snapshot(file)
	require.NoError(t, file.SetText("path", "other.m"))

	tm.Snapshot(file) // second copy is skipped
	require.NoError(t, file.SetText("path", "third.m"))
	assert.Equal(t, 1, tm.Len())

	extra := pbx.NewFileReference("extra.m", pbx.SourceTreeGroup)
	require.NoError(t, g.Attach("1D00000000000000000000AA", extra))
	tm.Attached(extra.ID())

	removed, ok := g.Detach(testutil.MinimalBuildFile)
	require.True(t, ok)
	tm.Detached(removed)

	gen := g.Generation()
	require.NoError(t, tm.Rollback())

	assert.True(t, pbx.Equal(before, g))
	assert.Equal(t, "main.m", file.Path(), "handles see the restored fields")
	assert.False(t, g.Has("1D00000000000000000000AA"))
	back, ok := g.Object(testutil.MinimalBuildFile)
	require.True(t, ok)
	assert.Same(t, removed, back)
	assert.Greater(t, g.Generation(), gen)
	assert.Equal(t, 0, tm.Len())

	assert.Equal(t, string(src), string(testutil.MustEncode(t, g)))
}

func TestManager_CommitDiscardsJournal(t *testing.T) {
	g, _ := testutil.LoadGraph(t, testutil.FixtureMinimal)
	tm := tx.NewManager(g)

	tm.Begin()
	o, _ := g.Object(testutil.MinimalFile)
	tm.Snapshot(o)
	require.NoError(t, o.(*pbx.FileReference).SetText("path", "kept.m"))
	tm.Commit()

	assert.Equal(t, 0, tm.Len())
	assert.Equal(t, "kept.m", o.(*pbx.FileReference).Path())
}

func TestManager_Savepoints(t *testing.T) {
	g, _ := testutil.LoadGraph(t, testutil.FixtureMinimal)
	tm := tx.NewManager(g)
	o, _ := g.Object(testutil.MinimalFile)
	file := o.(*pbx.FileReference)

	tm.Begin()
	tm.Snapshot(file)
	require.NoError(t, file.SetText("path", "outer.m"))

	// inner rollback only undoes the inner step
	tm.Begin()
	tm.Snapshot(file)
	require.NoError(t, file.SetText("path", "inner.m"))
	require.NoError(t, tm.Rollback())
	assert.Equal(t, "outer.m", file.Path())
	assert.True(t, tm.InTransaction())

	// committed inner steps are still undone by the outer rollback
	tm.Begin()
	tm.Snapshot(file)
	require.NoError(t, file.SetText("path", "again.m"))
	tm.Commit()

	require.NoError(t, tm.Rollback())
	assert.Equal(t, "main.m", file.Path())
	assert.False(t, tm.InTransaction())
}

func TestManager_RecordOrderAndErrors(t *testing.T) {
	g, _ := testutil.LoadGraph(t, testutil.FixtureMinimal)
	tm := tx.NewManager(g)

	tm.Record(func() error { t.Fatal("dropped outside a transaction"); return nil })

	var order []int
	boom := errors.New("boom")
	tm.Begin()
	tm.Record(func() error { order = append(order, 1); return nil })
	tm.Record(func() error { order = append(order, 2); return boom })
	tm.Record(func() error { order = append(order, 3); return nil })

	err := tm.Rollback()
	require.ErrorIs(t, err, boom)
	assert.Equal(t, []int{3, 2, 1}, order)
}
