package pbx_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/pbxkit/internal/testutil"
	"github.com/joshuapare/pbxkit/pbx"
	"github.com/joshuapare/pbxkit/pkg/types"
)

// TestNew_Variants tests that every known isa maps to its own type.
func TestNew_Variants(t *testing.T) {
	for _, isa := range pbx.KnownISAs() {
		o := pbx.New(isa)
		_, unknown := o.(*pbx.Unknown)
		assert.False(t, unknown, "isa %s", isa)
		assert.Equal(t, isa, o.ISA())
		assert.False(t, o.Attached())
		require.NotNil(t, o.Schema(), "isa %s", isa)
	}

	o := pbx.New("PBXSomethingNew")
	_, unknown := o.(*pbx.Unknown)
	assert.True(t, unknown)
	assert.Nil(t, o.Schema())
}

// TestConstructors tests that every constructor builds a detached object
// without tripping its fixed-key setters.
func TestConstructors(t *testing.T) {
	const id = pbx.ID("1D0000000000000000000002")
	complete := map[string]func() pbx.Object{
		"file":          func() pbx.Object { return pbx.NewFileReference("main.swift", pbx.SourceTreeGroup) },
		"group":         func() pbx.Object { return pbx.NewGroup("App", "App") },
		"build file":    func() pbx.Object { return pbx.NewBuildFile(id) },
		"configuration": func() pbx.Object { return pbx.NewBuildConfiguration("Debug") },
		"list":          func() pbx.Object { return pbx.NewConfigurationList("Debug", id) },
		"proxy":         func() pbx.Object { return pbx.NewContainerItemProxy(id, id, "App") },
		"dependency":    func() pbx.Object { return pbx.NewTargetDependency(id, "") },
	}
	for name, fn := range complete {
		t.Run(name, func(t *testing.T) {
			var o pbx.Object
			require.NotPanics(t, func() { o = fn() })
			assert.False(t, o.Attached())
			require.NoError(t, pbx.Validate(o))
		})
	}

	require.NotPanics(t, func() { pbx.NewProject("Xcode 14.0") })
	require.NotPanics(t, func() { pbx.NewNativeTarget("App", "com.apple.product-type.application") })
	for _, isa := range pbx.KnownISAs() {
		if !isa.IsBuildPhase() {
			continue
		}
		require.NotPanics(t, func() {
			p, ok := pbx.NewBuildPhase(isa)
			require.True(t, ok)
			assert.Empty(t, p.Files())
		}, "isa %s", isa)
	}
}

// TestNew_FieldOrder tests that programmatic fields follow Xcode's key order.
func TestNew_FieldOrder(t *testing.T) {
	f := pbx.NewFileReference("Sources/main.swift", pbx.SourceTreeGroup)
	require.NoError(t, f.SetText("name", "main.swift"))
	assert.Equal(t, []string{"isa", "lastKnownFileType", "name", "path", "sourceTree"}, f.Fields().Keys())
	assert.True(t, f.Fields().Inline)
	assert.Equal(t, "sourcecode.swift", f.LastKnownFileType())
	assert.Equal(t, "main.swift", f.DisplayName())
}

// TestSetters_Misuse tests the guards on direct field writes.
func TestSetters_Misuse(t *testing.T) {
	g, _ := testutil.LoadGraph(t, testutil.FixtureMinimal)
	o, _ := g.Object(testutil.MinimalBuildFile)
	bf := o.(*pbx.BuildFile)

	err := bf.SetRef("fileRef", testutil.MinimalSources)
	require.ErrorIs(t, err, pbx.ErrAttached)
	require.ErrorIs(t, err, types.ErrMutation)

	err = bf.SetText("isa", "PBXFileReference")
	require.ErrorIs(t, err, pbx.ErrImmutableISA)

	o, _ = g.Object(testutil.MinimalSources)
	phase := o.(*pbx.SourcesBuildPhase)
	err = phase.SetText("runOnlyForDeploymentPostprocessing", "1")
	require.ErrorIs(t, err, pbx.ErrFieldKind)

	err = phase.Unset("buildActionMask")
	require.ErrorIs(t, err, types.ErrMutation)
	assert.Equal(t, 2147483647, phase.BuildActionMask())
}

// TestSetters_Generation tests that writes bump the graph generation only on change.
func TestSetters_Generation(t *testing.T) {
	g, _ := testutil.LoadGraph(t, testutil.FixtureMinimal)
	o, _ := g.Object(testutil.MinimalFile)
	f := o.(*pbx.FileReference)

	gen := g.Generation()
	require.NoError(t, f.SetText("path", "main.m"))
	assert.Equal(t, gen, g.Generation())

	require.NoError(t, f.SetText("path", "tool.m"))
	assert.Greater(t, g.Generation(), gen)
}

// TestClone tests that clones are detached deep copies.
func TestClone(t *testing.T) {
	g, _ := testutil.LoadGraph(t, testutil.FixtureMinimal)
	o, _ := g.Object(testutil.MinimalFile)

	c := pbx.Clone(o)
	assert.False(t, c.Attached())
	assert.Equal(t, o.ID(), c.ID())
	require.NoError(t, c.(*pbx.FileReference).SetText("path", "other.m"))
	assert.Equal(t, "main.m", o.(*pbx.FileReference).Path())
}

// TestFlag tests flag parsing and formatting.
func TestFlag(t *testing.T) {
	tests := []struct {
		in    string
		flag  pbx.Flag
		style pbx.FlagStyle
	}{
		{"0", pbx.FlagNo, pbx.StyleNumeric},
		{"1", pbx.FlagYes, pbx.StyleNumeric},
		{"NO", pbx.FlagNo, pbx.StyleWord},
		{"YES", pbx.FlagYes, pbx.StyleWord},
		{"YES_ERROR", pbx.FlagYesError, pbx.StyleWord},
		{"YES_AGGRESSIVE", pbx.FlagYesAggressive, pbx.StyleWord},
	}
	for _, tt := range tests {
		f, style, ok := pbx.ParseFlag(tt.in)
		require.True(t, ok, tt.in)
		assert.Equal(t, tt.flag, f)
		assert.Equal(t, tt.style, style)
		assert.Equal(t, tt.in, f.Format(style))
	}

	_, _, ok := pbx.ParseFlag("true")
	assert.False(t, ok)
	assert.Equal(t, "YES_ERROR", pbx.FlagYesError.Format(pbx.StyleNumeric))
}

// TestID tests identifier shape checks.
func TestID(t *testing.T) {
	assert.True(t, pbx.ID("0A0000000000000000000001").Valid())
	assert.False(t, pbx.ID("0A00").Valid())
	assert.False(t, pbx.ID("0A000000000000000000000G").Valid())
}
