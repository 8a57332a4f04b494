package pbxjson_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/joshuapare/pbxkit/internal/testutil"
	"github.com/joshuapare/pbxkit/pbx"
	"github.com/joshuapare/pbxkit/pkg/pbxjson"
	"github.com/joshuapare/pbxkit/pkg/pbxproj"
	"github.com/joshuapare/pbxkit/pkg/types"
)

func TestMarshal_Shape(t *testing.T) {
	g, _ := testutil.LoadGraph(t, testutil.FixtureMinimal)

	out, err := pbxjson.Marshal(g)
	require.NoError(t, err)

	text := string(out)
	assert.True(t, strings.HasPrefix(text,
		`{"archiveVersion":1,"classes":{},"objectVersion":56,"objects":{`+
			`"1D0000000000000000000003":{"isa":"PBXBuildFile","fileRef":"1D0000000000000000000002"},`+
			`"1D0000000000000000000002":{"isa":"PBXFileReference","lastKnownFileType":"sourcecode.c.objc","path":"main.m","sourceTree":"<group>"},`), text)
	assert.True(t, strings.HasSuffix(text, `},"rootObject":"1D0000000000000000000000"}`), text)
	assert.Contains(t, text, `"buildActionMask":2147483647`)
	assert.Contains(t, text, `"PRODUCT_NAME":"$(TARGET_NAME)"`)
}

func TestMarshalIndent(t *testing.T) {
	g, _ := testutil.LoadGraph(t, testutil.FixtureMinimal)

	out, err := pbxjson.MarshalIndent(g, "", "  ")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), "{\n  \"archiveVersion\": 1,\n  \"classes\": {},\n"), string(out))
}

func TestUnmarshal_RoundTrip(t *testing.T) {
	g, src := testutil.LoadGraph(t, testutil.FixtureMinimal)
	data, err := pbxjson.Marshal(g)
	require.NoError(t, err)

	back, err := pbxjson.Unmarshal(data, pbxproj.Options{})
	require.NoError(t, err)
	assert.Equal(t, "Tool", back.Name)
	assert.True(t, pbx.Equal(g, back))

	// every scalar in this fixture is quoted only where needed
	out, err := pbxproj.Serialize(back)
	require.NoError(t, err)
	assert.Equal(t, string(src), string(out))
}

func TestUnmarshal_Stable(t *testing.T) {
	g, _ := testutil.LoadGraph(t, testutil.FixtureApp)
	first, err := pbxjson.Marshal(g)
	require.NoError(t, err)

	back, err := pbxjson.Unmarshal(first, pbxproj.Options{})
	require.NoError(t, err)
	assert.True(t, pbx.Equal(g, back))
	assert.Equal(t, "App", back.Name)

	second, err := pbxjson.Marshal(back)
	require.NoError(t, err)
	assert.JSONEq(t, string(first), string(second))
	assert.Equal(t, string(first), string(second))

	// annotations are regenerated from the typed graph
	out, err := pbxproj.Serialize(back)
	require.NoError(t, err)
	assert.Contains(t, string(out), "/* AppDelegate.swift in Sources */")
	assert.Contains(t, string(out), `/* Build configuration list for PBXNativeTarget "AppTests" */`)
}

func TestUnmarshal_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
		kind error
	}{
		{"not an object", `[1]`, types.ErrSyntax},
		{"truncated", `{"objects":{`, types.ErrSyntax},
		{"boolean", `{"a":true}`, types.ErrSyntax},
		{"null", `{"a":null}`, types.ErrSyntax},
		{"duplicate key", `{"a":"x","a":"y"}`, types.ErrSyntax},
		{"trailing data", `{} {}`, types.ErrSyntax},
		{"no objects", `{"rootObject":"X"}`, types.ErrSchema},
		{"dangling root", `{"objects":{},"rootObject":"X"}`, types.ErrReference},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := pbxjson.Unmarshal([]byte(tt.data), pbxproj.Options{})
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.kind)
		})
	}
}

func TestUnmarshal_Limits(t *testing.T) {
	limits := pbxproj.DefaultLimits()
	limits.MaxDepth = 2
	_, err := pbxjson.Unmarshal([]byte(`{"a":{"b":{"c":"d"}}}`), pbxproj.Options{Limits: &limits})
	require.ErrorIs(t, err, types.ErrSyntax)

	limits = pbxproj.DefaultLimits()
	limits.MaxInputSize = 4
	_, err = pbxjson.Unmarshal([]byte(`{"objects":{}}`), pbxproj.Options{Limits: &limits})
	require.ErrorIs(t, err, types.ErrLex)
}

func TestMarshalYAML(t *testing.T) {
	g, _ := testutil.LoadGraph(t, testutil.FixtureMinimal)

	out, err := pbxjson.MarshalYAML(g)
	require.NoError(t, err)

	text := string(out)
	assert.True(t, strings.HasPrefix(text, "archiveVersion: 1\nclasses: {}\nobjectVersion: 56\nobjects:\n"), text)
	assert.Contains(t, text, "sourceTree: <group>")
	assert.Contains(t, text, "rootObject: 1D0000000000000000000000\n")

	// the document reads back with the same values
	var doc struct {
		ArchiveVersion int                       `yaml:"archiveVersion"`
		Objects        map[string]map[string]any `yaml:"objects"`
		RootObject     string                    `yaml:"rootObject"`
	}
	require.NoError(t, yaml.Unmarshal(out, &doc))
	assert.Equal(t, 1, doc.ArchiveVersion)
	assert.Len(t, doc.Objects, g.Len())
	assert.Equal(t, "PBXBuildFile", doc.Objects[testutil.MinimalBuildFile]["isa"])
	assert.Equal(t, testutil.MinimalProject, doc.RootObject)
}

// TestMarshal_KeepsMarkupCharacters tests that <, > and & are written as is.
func TestMarshal_KeepsMarkupCharacters(t *testing.T) {
	g, _ := testutil.LoadGraph(t, testutil.FixtureMinimal)
	o, _ := g.Object(testutil.MinimalFile)
	require.NoError(t, o.(*pbx.FileReference).SetText("name", "a<b>&c.m"))

	out, err := pbxjson.Marshal(g)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"name":"a<b>&c.m"`)
	assert.NotContains(t, string(out), `\u003c`)

	out, err = pbxjson.MarshalIndent(g, "", "  ")
	require.NoError(t, err)
	assert.Contains(t, string(out), `"sourceTree": "<group>"`)
	assert.Contains(t, string(out), `"name": "a<b>&c.m"`)
}
