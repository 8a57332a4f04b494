package walker_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/pbxkit/internal/testutil"
	"github.com/joshuapare/pbxkit/pbx"
	"github.com/joshuapare/pbxkit/pbx/walker"
)

func TestCore_WalkOrder(t *testing.T) {
	g, _ := testutil.LoadGraph(t, testutil.FixtureMinimal)

	var order []pbx.ID
	walker.NewCore(g).Walk(func(o pbx.Object) bool {
		order = append(order, o.ID())
		return true
	})

	require.NotEmpty(t, order)
	assert.Equal(t, pbx.ID(testutil.MinimalProject), order[0])
	assert.Len(t, order, g.Len())
}

func TestCore_Prune(t *testing.T) {
	g, _ := testutil.LoadGraph(t, testutil.FixtureApp)

	c := walker.NewCore(g)
	c.Walk(func(o pbx.Object) bool {
		_, isTarget := o.(pbx.TargetLike)
		return !isTarget
	})

	assert.True(t, c.Visited(testutil.AppTarget))
	assert.False(t, c.Visited(testutil.AppSources), "phases are only reachable through targets")
	assert.True(t, c.Visited(testutil.AppDelegateFile), "files are reachable through groups")
}

func TestReachable(t *testing.T) {
	g, _ := testutil.LoadGraph(t, testutil.FixtureApp)
	assert.Len(t, walker.Reachable(g), g.Len())
	assert.Empty(t, walker.Unreachable(g))

	stray := pbx.NewFileReference("Stray.swift", pbx.SourceTreeGroup)
	require.NoError(t, g.Attach("0A00000000000000000000F1", stray))
	holder := pbx.NewGroup("Holder", "")
	require.NoError(t, holder.SetRefList("children", []pbx.ID{"0A00000000000000000000F1"}))
	require.NoError(t, g.Attach("0A00000000000000000000F0", holder))

	assert.Equal(t, []pbx.ID{"0A00000000000000000000F0", "0A00000000000000000000F1"}, walker.Unreachable(g))
}

func TestCount(t *testing.T) {
	g, _ := testutil.LoadGraph(t, testutil.FixtureApp)

	s := walker.Count(g)
	assert.Equal(t, g.Len(), s.Total)
	assert.Equal(t, g.Len(), s.Reachable)
	assert.Zero(t, s.Orphans)
	assert.Zero(t, s.Unknown)
	assert.Equal(t, 2, s.ByISA[pbx.ISANativeTarget])
	assert.Equal(t, 2, s.ByISA[pbx.ISASourcesBuildPhase])

	isas := s.ISAs()
	assert.IsIncreasing(t, isas)
	assert.Contains(t, isas, pbx.ISAProject)
}

func TestView_Navigation(t *testing.T) {
	g, _ := testutil.LoadGraph(t, testutil.FixtureApp)
	v := walker.New(g)
	require.True(t, v.Valid())

	p, err := v.Project()
	require.NoError(t, err)
	assert.Equal(t, pbx.ID(testutil.AppProject), p.ID())

	targets, err := v.Targets()
	require.NoError(t, err)
	require.Len(t, targets, 2)
	app, tests := targets[0], targets[1]
	assert.Equal(t, "App", app.Name())
	assert.Equal(t, "AppTests", tests.Name())

	phases, err := v.Phases(app)
	require.NoError(t, err)
	require.Len(t, phases, 4)
	assert.Equal(t, "Sources", phases[0].DisplayName())

	files, err := v.BuildFiles(phases[0])
	require.NoError(t, err)
	require.Len(t, files, 2)
	f, err := v.File(files[0])
	require.NoError(t, err)
	assert.Equal(t, "AppDelegate.swift", f.DisplayName())

	pkg, err := v.Product(files[0])
	require.NoError(t, err)
	assert.Nil(t, pkg)

	deps, err := v.Dependencies(tests)
	require.NoError(t, err)
	require.Len(t, deps, 1)
	assert.Equal(t, "App", deps[0].Name())

	configs, err := v.Configurations(app)
	require.NoError(t, err)
	require.Len(t, configs, 2)
	assert.Equal(t, pbx.ID(testutil.AppDebug), configs[0].ID())

	main, err := v.MainGroup()
	require.NoError(t, err)
	children, err := v.Children(main)
	require.NoError(t, err)
	require.Len(t, children, 3)
	assert.Equal(t, "App", children[0].DisplayName())
}

func TestView_Path(t *testing.T) {
	g, _ := testutil.LoadGraph(t, testutil.FixtureApp)
	v := walker.New(g)

	tests := []struct {
		id   pbx.ID
		want string
	}{
		{testutil.AppDelegateFile, "App/AppDelegate.swift"},
		{testutil.StoryboardBase, "App/Base.lproj/Main.storyboard"},
		{testutil.AppTestsFile, "AppTests/AppTests.swift"},
		{testutil.AppProduct, "$(BUILT_PRODUCTS_DIR)/App.app"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			o, ok := g.Object(tt.id)
			require.True(t, ok)
			got, err := v.Path(o.(pbx.FileLike))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	o, _ := g.Object(testutil.AppGroup)
	parent, err := v.Parent(o.(pbx.FileLike))
	require.NoError(t, err)
	assert.Equal(t, pbx.ID(testutil.AppMainGroup), parent.ID())
}

func TestView_Stale(t *testing.T) {
	g, _ := testutil.LoadGraph(t, testutil.FixtureApp)
	v := walker.New(g)

	o, _ := g.Object(testutil.AppDelegateFile)
	require.NoError(t, o.(*pbx.FileReference).SetText("path", "Delegate.swift"))

	assert.False(t, v.Valid())
	_, err := v.Targets()
	require.ErrorIs(t, err, walker.ErrStale)
	_, err = v.Path(o.(pbx.FileLike))
	require.ErrorIs(t, err, walker.ErrStale)

	fresh := walker.New(g)
	got, err := fresh.Path(o.(pbx.FileLike))
	require.NoError(t, err)
	assert.Equal(t, "App/Delegate.swift", got)
}
