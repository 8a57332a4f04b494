package pbx_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/pbxkit/internal/testutil"
	"github.com/joshuapare/pbxkit/pbx"
	"github.com/joshuapare/pbxkit/pbx/plist"
	"github.com/joshuapare/pbxkit/pkg/types"
)

// TestDecode_Minimal tests the typed view of a one-target project.
func TestDecode_Minimal(t *testing.T) {
	g, _ := testutil.LoadGraph(t, testutil.FixtureMinimal)

	require.Equal(t, pbx.ID(testutil.MinimalProject), g.Root())
	require.NotNil(t, g.RootProject())
	assert.Equal(t, "Tool", g.Name)
	assert.Equal(t, "1", g.ArchiveVersion())
	assert.Equal(t, "56", g.ObjectVersion())

	targets := g.Targets()
	require.Len(t, targets, 1)
	target := targets[0]
	assert.Equal(t, "Tool", target.Name())
	require.Len(t, target.BuildPhases(), 1)

	o, ok := g.Object(target.BuildPhases()[0])
	require.True(t, ok)
	phase, ok := o.(*pbx.SourcesBuildPhase)
	require.True(t, ok)
	require.Len(t, phase.Files(), 1)

	o, _ = g.Object(phase.Files()[0])
	bf, ok := o.(*pbx.BuildFile)
	require.True(t, ok)
	o, _ = g.Object(bf.FileRef())
	file, ok := o.(*pbx.FileReference)
	require.True(t, ok)
	assert.Equal(t, "main.m", file.DisplayName())
	assert.True(t, file.IsSourceCode())
}

// TestDecode_Traits tests trait access across variants.
func TestDecode_Traits(t *testing.T) {
	g, _ := testutil.LoadGraph(t, testutil.FixtureApp)

	var phases, files, groups int
	for _, o := range g.Sorted() {
		if _, ok := o.(pbx.BuildPhaseLike); ok {
			phases++
		}
		if _, ok := o.(pbx.FileLike); ok {
			files++
		}
		if _, ok := o.(pbx.GroupLike); ok {
			groups++
		}
	}
	assert.Equal(t, 6, phases)
	assert.Equal(t, 12, files) // 7 file references, 4 groups, 1 variant group
	assert.Equal(t, 5, groups)

	app, ok := g.TargetByName("App")
	require.True(t, ok)
	native := app.(*pbx.NativeTarget)
	assert.Equal(t, "com.apple.product-type.application", native.ProductType())
	assert.Equal(t, []pbx.ID{testutil.PackageProduct}, native.PackageProductDependencies())

	o, _ := g.Object(testutil.PackageRef)
	assert.Equal(t, "Alamofire", o.(*pbx.RemoteSwiftPackageReference).RepositoryName())

	o, _ = g.Object(testutil.AppProxy)
	proxy := o.(*pbx.ContainerItemProxy)
	assert.Equal(t, pbx.ProxyTargetReference, proxy.ProxyType())
	assert.Equal(t, pbx.ID(testutil.AppTarget), proxy.RemoteGlobalID())

	o, _ = g.Object(testutil.AppScript)
	script := o.(*pbx.ShellScriptBuildPhase)
	assert.Equal(t, "ShellScript", script.DisplayName())
	assert.Equal(t, "echo \"lint\"\n", script.ShellScript())

	o, _ = g.Object(testutil.ProjectDebug)
	v, ok := o.(*pbx.BuildConfiguration).Setting("GCC_PREPROCESSOR_DEFINITIONS")
	require.True(t, ok)
	assert.Equal(t, []string{"DEBUG=1", "$(inherited)"}, v.(*plist.Array).Texts())
}

// TestDecode_SchemaErrors tests that objects breaking their schema abort the load.
func TestDecode_SchemaErrors(t *testing.T) {
	tests := []struct {
		name  string
		from  string
		to    string
		field string
	}{
		{
			name:  "missing isa",
			from:  "isa = XCBuildConfiguration;\n\t\t\tbuildSettings = {\n\t\t\t\tSDKROOT",
			to:    "buildSettings = {\n\t\t\t\tSDKROOT",
			field: "isa",
		},
		{
			name:  "missing required field",
			from:  "\t\t\tdefaultConfigurationIsVisible = 0;\n\t\t\tdefaultConfigurationName = Debug;\n\t\t};\n\t\t1D0000000000000000000009",
			to:    "\t\t\tdefaultConfigurationName = Debug;\n\t\t};\n\t\t1D0000000000000000000009",
			field: "defaultConfigurationIsVisible",
		},
		{
			name:  "bad flag",
			from:  "hasScannedForEncodings = 0;",
			to:    "hasScannedForEncodings = maybe;",
			field: "hasScannedForEncodings",
		},
		{
			name:  "bad integer",
			from:  "buildActionMask = 2147483647;",
			to:    "buildActionMask = all;",
			field: "buildActionMask",
		},
		{
			name:  "list where reference expected",
			from:  "mainGroup = 1D0000000000000000000001;",
			to:    "mainGroup = (1D0000000000000000000001, );",
			field: "mainGroup",
		},
	}

	src := string(testutil.ReadFixture(t, testutil.FixtureMinimal))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Contains(t, src, tt.from)
			text := strings.Replace(src, tt.from, tt.to, 1)

			doc, err := plist.Parse([]byte(text), types.DefaultLimits())
			require.NoError(t, err)
			g, err := pbx.Decode(doc, pbx.DecodeOptions{})
			require.Nil(t, g)
			require.ErrorIs(t, err, types.ErrSchema)

			var se *types.SchemaError
			require.True(t, errors.As(err, &se))
			assert.Equal(t, tt.field, se.Field)
			assert.NotEmpty(t, se.ID)
		})
	}
}

// TestDecode_MaxObjects tests the object count limit.
func TestDecode_MaxObjects(t *testing.T) {
	doc, err := plist.Parse(testutil.ReadFixture(t, testutil.FixtureMinimal), types.DefaultLimits())
	require.NoError(t, err)

	_, err = pbx.Decode(doc, pbx.DecodeOptions{MaxObjects: 3})
	require.ErrorIs(t, err, types.ErrSchema)
	require.Contains(t, err.Error(), "exceed limit")
}

// TestDecode_MissingTopLevel tests documents without objects or rootObject.
func TestDecode_MissingTopLevel(t *testing.T) {
	for _, src := range []string{
		"{ rootObject = 1D0000000000000000000000; }",
		"{ objects = { }; }",
	} {
		doc, err := plist.Parse([]byte(src), types.DefaultLimits())
		require.NoError(t, err)
		_, err = pbx.Decode(doc, pbx.DecodeOptions{})
		require.ErrorIs(t, err, types.ErrSchema, src)
	}
}

// TestRefs tests reference enumeration on typed objects.
func TestRefs(t *testing.T) {
	g, _ := testutil.LoadGraph(t, testutil.FixtureApp)

	o, _ := g.Object(testutil.AppProxy)
	refs := pbx.Refs(o)
	require.Len(t, refs, 2)
	assert.Equal(t, pbx.Ref{Field: "containerPortal", Index: -1, Target: testutil.AppProject}, refs[0])
	assert.Equal(t, pbx.Ref{Field: "remoteGlobalIDString", Index: -1, Target: testutil.AppTarget, Soft: true}, refs[1])

	o, _ = g.Object(testutil.AppGroup)
	refs = pbx.RefsTo(o, testutil.StoryboardGroup)
	require.Len(t, refs, 1)
	assert.Equal(t, 2, refs[0].Index)
}
