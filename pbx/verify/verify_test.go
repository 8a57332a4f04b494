package verify_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/pbxkit/internal/testutil"
	"github.com/joshuapare/pbxkit/pbx"
	"github.com/joshuapare/pbxkit/pbx/verify"
	"github.com/joshuapare/pbxkit/pkg/types"
)

const missing = "0A00000000000000000000FF"

// TestCheck_Clean tests that the fixtures pass every check.
func TestCheck_Clean(t *testing.T) {
	for _, fixture := range []string{testutil.FixtureApp, testutil.FixtureMinimal} {
		t.Run(fixture, func(t *testing.T) {
			g, _ := testutil.LoadGraph(t, fixture)
			r := verify.Check(g)
			assert.True(t, r.OK())
			require.NoError(t, r.Err())
			require.NoError(t, verify.CheckEager(g))
		})
	}

	g, _ := testutil.LoadGraph(t, testutil.FixtureMinimal)
	assert.Empty(t, verify.Check(g).Orphans)
}

// TestCheck_DependencyCycle tests that two targets depending on each other
// are reported with both names on the path.
func TestCheck_DependencyCycle(t *testing.T) {
	g, _ := testutil.LoadGraph(t, testutil.FixtureApp)

	dep := pbx.NewTargetDependency(testutil.AppTestsTarget, "")
	require.NoError(t, g.Attach("0A00000000000000000000A0", dep))
	require.NoError(t, g.PutRefList(testutil.AppTarget, "dependencies", []pbx.ID{dep.ID()}))

	r := verify.Check(g)
	require.False(t, r.OK())
	require.Len(t, r.Cycles, 1)

	c := r.Cycles[0]
	assert.Equal(t, types.RelationDependency, c.Relation)
	assert.Equal(t, []string{testutil.AppTarget, testutil.AppTestsTarget, testutil.AppTarget}, c.Path)
	assert.Equal(t, []string{"App", "AppTests", "App"}, c.Names)
	assert.Contains(t, c.Error(), "App (")
	assert.Contains(t, c.Error(), "AppTests (")

	err := verify.CheckEager(g)
	require.ErrorIs(t, err, types.ErrCycle)
	require.ErrorIs(t, r.Err(), types.ErrCycle)
}

// TestCheck_GroupCycle tests containment cycles through nested groups.
func TestCheck_GroupCycle(t *testing.T) {
	g, _ := testutil.LoadGraph(t, testutil.FixtureApp)
	o, _ := g.Object(testutil.AppGroup)
	children := append(o.(pbx.GroupLike).Children(), testutil.AppMainGroup)
	require.NoError(t, g.PutRefList(testutil.AppGroup, "children", children))

	cycles := verify.GroupCycles(g)
	require.Len(t, cycles, 1)
	assert.Equal(t, types.RelationGroup, cycles[0].Relation)
	assert.Equal(t, []string{testutil.AppMainGroup, testutil.AppGroup, testutil.AppMainGroup}, cycles[0].Path)
	assert.Empty(t, verify.DependencyCycles(g))
}

// TestCheck_References tests dangling and mistyped references.
func TestCheck_References(t *testing.T) {
	g, _ := testutil.LoadGraph(t, testutil.FixtureApp)
	require.NoError(t, g.PutRef(testutil.AppDelegateBuild, "fileRef", missing))
	require.NoError(t, g.PutRef(testutil.AppProject, "mainGroup", testutil.AppDelegateFile))
	// remote identifiers may name objects in other projects
	require.NoError(t, g.PutRef(testutil.AppProxy, "remoteGlobalIDString", missing))

	r := verify.Check(g)
	require.Len(t, r.References, 2)

	mistyped := r.References[0]
	assert.Equal(t, testutil.AppProject, mistyped.Referrer)
	assert.Equal(t, "mainGroup", mistyped.Field)
	assert.Contains(t, mistyped.Error(), "not PBXFileReference")

	dangling := r.References[1]
	assert.Equal(t, testutil.AppDelegateBuild, dangling.Referrer)
	assert.Equal(t, "fileRef", dangling.Field)
	assert.Equal(t, missing, dangling.Target)

	require.ErrorIs(t, r.Err(), types.ErrReference)

	var re *types.ReferenceError
	require.True(t, errors.As(verify.CheckEager(g), &re))
	assert.Equal(t, testutil.AppProject, re.Referrer)

	o, _ := g.Object(testutil.AppProxy)
	assert.Empty(t, verify.Reference(g, o))
}

// TestCheck_Root tests the root object checks.
func TestCheck_Root(t *testing.T) {
	g := pbx.NewGraph("Empty")
	r := verify.Check(g)
	require.Len(t, r.References, 1)
	assert.Equal(t, pbx.KeyRootObject, r.References[0].Field)
	assert.Empty(t, r.Orphans)
	require.ErrorIs(t, verify.CheckEager(g), types.ErrReference)

	loaded, _ := testutil.LoadGraph(t, testutil.FixtureMinimal)
	loaded.Detach(testutil.MinimalProject)
	err := verify.Root(loaded)
	require.NotNil(t, err)
	assert.Equal(t, testutil.MinimalProject, err.Target)
}

// TestCheck_Orphans tests that unreachable objects are listed but not fatal.
func TestCheck_Orphans(t *testing.T) {
	g, _ := testutil.LoadGraph(t, testutil.FixtureMinimal)
	stray := pbx.NewFileReference("stray.m", pbx.SourceTreeGroup)
	require.NoError(t, g.Attach("1D00000000000000000000AA", stray))

	r := verify.Check(g)
	assert.True(t, r.OK())
	assert.Equal(t, []pbx.ID{"1D00000000000000000000AA"}, r.Orphans)
}

// TestIndex tests the reverse reference index.
func TestIndex(t *testing.T) {
	g, _ := testutil.LoadGraph(t, testutil.FixtureApp)
	idx := verify.BuildIndex(g)

	assert.Equal(t, []pbx.ID{testutil.AppProject, testutil.AppProxy, testutil.AppTestsDep}, idx.Holders(testutil.AppTarget))
	assert.Equal(t, 3, idx.Count(testutil.AppTarget))

	for _, r := range idx.Referrers(testutil.AppTarget) {
		switch r.From {
		case testutil.AppProject:
			assert.True(t, r.List)
			assert.True(t, r.Required)
		case testutil.AppProxy:
			assert.True(t, r.Soft)
		case testutil.AppTestsDep:
			assert.True(t, r.Dependent)
			assert.False(t, r.List)
		}
	}

	refs := idx.Referrers(testutil.AppDelegateFile)
	require.Len(t, refs, 2)
	assert.Equal(t, pbx.ID(testutil.AppGroup), refs[0].From)
	assert.Equal(t, 0, refs[0].Index)
	assert.Equal(t, pbx.ID(testutil.AppDelegateBuild), refs[1].From)
	assert.True(t, refs[1].Dependent)

	assert.Zero(t, idx.Count(missing))
}
