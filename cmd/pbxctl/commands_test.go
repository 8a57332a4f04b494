package main

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/pbxkit/internal/logger"
	"github.com/joshuapare/pbxkit/pbx"
	"github.com/joshuapare/pbxkit/pbx/edit"
	"github.com/joshuapare/pbxkit/pkg/pbxproj"
)

const (
	minimalFixture = "minimal.pbxproj"
	appFixture     = "app.pbxproj"

	appTestsFile  = "0A0000000000000000000027"
	appTestsBuild = "0A0000000000000000000033"
)

func read(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestProjectPath(t *testing.T) {
	path := testProject(t, minimalFixture)
	bundle := filepath.Dir(path)

	assert.Equal(t, path, projectPath(bundle))
	assert.Equal(t, path, projectPath(path))
	assert.Equal(t, filepath.Join("X.xcodeproj", "project.pbxproj"), projectPath("X.xcodeproj"))
}

func TestFmtCommand(t *testing.T) {
	resetFlags(t)
	clean := read(t, testProject(t, minimalFixture))
	stale := strings.Replace(clean, "fileRef = 1D0000000000000000000002 /* main.m */", "fileRef = 1D0000000000000000000002 /* old.m */", 1)
	require.NotEqual(t, clean, stale)
	path := writeProject(t, []byte(stale))

	out, err := captureOutput(t, func() error { return runFmt([]string{path}) })
	require.NoError(t, err)
	assert.Equal(t, clean, out)

	fmtCheck = true
	_, err = captureOutput(t, func() error { return runFmt([]string{path}) })
	require.ErrorContains(t, err, "not in canonical form")

	fmtCheck, fmtWrite = false, true
	out, err = captureOutput(t, func() error { return runFmt([]string{filepath.Dir(path)}) })
	require.NoError(t, err)
	assert.Contains(t, out, "formatted")
	assert.Equal(t, clean, read(t, path))

	fmtWrite, fmtCheck = false, true
	_, err = captureOutput(t, func() error { return runFmt([]string{path}) })
	require.NoError(t, err)
}

func TestValidateCommand(t *testing.T) {
	resetFlags(t)
	out, err := captureOutput(t, func() error { return runValidate([]string{testProject(t, appFixture)}) })
	require.NoError(t, err)
	assert.Contains(t, out, "VALID")

	broken := strings.Replace(read(t, testProject(t, minimalFixture)),
		"fileRef = 1D0000000000000000000002", "fileRef = 1D00000000000000000000FF", 1)
	path := writeProject(t, []byte(broken))

	jsonOut = true
	out, err = captureOutput(t, func() error { return runValidate([]string{path}) })
	require.ErrorContains(t, err, "invalid")

	var result struct {
		Valid      bool     `json:"valid"`
		References []string `json:"references"`
		Cycles     []string `json:"cycles"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.False(t, result.Valid)
	require.Len(t, result.References, 1)
	assert.Contains(t, result.References[0], "1D00000000000000000000FF")
	assert.Empty(t, result.Cycles)

	validateLimits = "bogus"
	_, err = captureOutput(t, func() error { return runValidate([]string{path}) })
	require.ErrorContains(t, err, "unknown limits preset")
}

func TestDumpCommand(t *testing.T) {
	resetFlags(t)
	path := testProject(t, minimalFixture)

	out, err := captureOutput(t, func() error { return runDump([]string{path}) })
	require.NoError(t, err)
	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "1D0000000000000000000000", doc["rootObject"])
	assert.Contains(t, out, "\"sourceTree\": \"<group>\"")

	dumpFormat = "yaml"
	out, err = captureOutput(t, func() error { return runDump([]string{path}) })
	require.NoError(t, err)
	assert.Contains(t, out, "rootObject: 1D0000000000000000000000")

	dumpFormat = "xml"
	_, err = captureOutput(t, func() error { return runDump([]string{path}) })
	require.ErrorContains(t, err, "unknown format")
}

func TestOrphansCommand(t *testing.T) {
	resetFlags(t)
	clean := read(t, testProject(t, minimalFixture))
	extra := "\t\t1D00000000000000000000F0 /* extra.m */ = {isa = PBXFileReference; lastKnownFileType = sourcecode.c.objc; path = extra.m; sourceTree = \"<group>\"; };\n"
	marker := "/* End PBXFileReference section */"
	path := writeProject(t, []byte(strings.Replace(clean, marker, extra+marker, 1)))

	out, err := captureOutput(t, func() error { return runOrphans([]string{path}) })
	require.NoError(t, err)
	assert.Contains(t, out, "1D00000000000000000000F0")
	assert.Contains(t, out, "extra.m")

	orphansPrune = true
	out, err = captureOutput(t, func() error { return runOrphans([]string{path}) })
	require.NoError(t, err)
	assert.Contains(t, out, "Removed 1 objects")
	assert.Equal(t, clean, read(t, path))

	orphansPrune = false
	out, err = captureOutput(t, func() error { return runOrphans([]string{path}) })
	require.NoError(t, err)
	assert.Contains(t, out, "No orphans")
}

func TestRmCommand(t *testing.T) {
	resetFlags(t)
	path := testProject(t, appFixture)
	before := read(t, path)

	_, err := captureOutput(t, func() error { return runRm([]string{path, appTestsFile}) })
	require.ErrorIs(t, err, edit.ErrReferenced)
	assert.Equal(t, before, read(t, path))

	rmCascade, rmDryRun = true, true
	out, err := captureOutput(t, func() error { return runRm([]string{path, appTestsFile}) })
	require.NoError(t, err)
	assert.Contains(t, out, "Would remove 2 objects")
	assert.Equal(t, before, read(t, path))

	rmDryRun, jsonOut = false, true
	out, err = captureOutput(t, func() error { return runRm([]string{path, appTestsFile}) })
	require.NoError(t, err)
	var result struct {
		Removed []pbx.ID `json:"removed"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, []pbx.ID{appTestsFile, appTestsBuild}, result.Removed)

	after := read(t, path)
	assert.NotContains(t, after, "AppTests.swift")
	_, err = pbxproj.Parse([]byte(after), pbxproj.Options{})
	require.NoError(t, err)
}

func TestTargetsCommand(t *testing.T) {
	resetFlags(t)
	path := testProject(t, appFixture)

	out, err := captureOutput(t, func() error { return runTargets([]string{path}) })
	require.NoError(t, err)
	assert.Contains(t, out, "App (0A0000000000000000000050)")
	assert.Contains(t, out, "depends on App")

	jsonOut = true
	out, err = captureOutput(t, func() error { return runTargets([]string{path}) })
	require.NoError(t, err)
	var infos []targetInfo
	require.NoError(t, json.Unmarshal([]byte(out), &infos))
	require.Len(t, infos, 2)
	assert.Equal(t, "App", infos[0].Name)
	assert.Len(t, infos[0].Phases, 4)
	assert.Equal(t, "Sources", infos[0].Phases[0].Name)
	assert.Equal(t, 2, infos[0].Phases[0].Files)
	assert.Equal(t, []string{"App"}, infos[1].Dependencies)
	assert.Equal(t, "com.apple.product-type.bundle.unit-test", infos[1].ProductType)
}

func TestAddCommand(t *testing.T) {
	resetFlags(t)
	path := testProject(t, appFixture)
	cfg.Seed = "add-test"
	addGroup, addTarget = "App", "App"

	_, err := captureOutput(t, func() error { return runAdd([]string{path, "Extra.swift"}) })
	require.NoError(t, err)

	text := read(t, path)
	assert.Contains(t, text, "/* Extra.swift */ = {isa = PBXFileReference; lastKnownFileType = sourcecode.swift; path = Extra.swift; sourceTree = \"<group>\"; };")
	assert.Contains(t, text, "/* Extra.swift in Sources */")

	g, err := pbxproj.Parse([]byte(text), pbxproj.Options{})
	require.NoError(t, err)
	sources, _ := g.Object("0A0000000000000000000040")
	assert.Len(t, sources.(pbx.BuildPhaseLike).Files(), 3)

	addGroup, addTarget = "Nope", ""
	_, err = captureOutput(t, func() error { return runAdd([]string{path, "Other.swift"}) })
	require.ErrorContains(t, err, "no group named")

	addGroup, addTarget = "", "Nope"
	_, err = captureOutput(t, func() error { return runAdd([]string{path, "Other.swift"}) })
	require.ErrorContains(t, err, "no target named")
}

func TestAddCommand_StrictConventions(t *testing.T) {
	resetFlags(t)
	path := testProject(t, appFixture)
	before := read(t, path)
	cfg.Strict = true
	addTarget = "App"

	// a plist is not compiled
	_, err := captureOutput(t, func() error { return runAdd([]string{path, "Extra.plist"}) })
	require.ErrorIs(t, err, edit.ErrAdvisory)
	assert.Equal(t, before, read(t, path))
}

func TestConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, defaultConfigName)
	require.NoError(t, os.WriteFile(path, []byte("strict = true\nlimits = \"strict\"\nseed = \"abc\"\nbackup = true\n"), 0o644))

	c, err := loadConfig(path)
	require.NoError(t, err)
	assert.True(t, c.Strict)
	assert.True(t, c.Backup)
	assert.Equal(t, "strict", c.Limits)
	assert.Equal(t, "abc", c.Seed)
	assert.Equal(t, "  ", c.Indent, "unset keys keep their defaults")

	require.NoError(t, os.WriteFile(path, []byte("strict = true\ncolour = \"red\"\n"), 0o644))
	_, err = loadConfig(path)
	require.ErrorContains(t, err, "unknown keys: colour")

	require.NoError(t, os.WriteFile(path, []byte("limits = \"huge\"\n"), 0o644))
	_, err = loadConfig(path)
	require.ErrorContains(t, err, "unknown limits preset")

	_, err = loadConfig(filepath.Join(dir, "missing.toml"))
	require.Error(t, err, "an explicit config must exist")

	chdir(t, dir)
	require.NoError(t, os.Remove(path))
	c, err = loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, defaultConfig(), c)
}

func TestBackupOnWrite(t *testing.T) {
	resetFlags(t)
	path := testProject(t, appFixture)
	before := read(t, path)
	cfg.Backup = true
	rmCascade = true

	_, err := captureOutput(t, func() error { return runRm([]string{path, appTestsFile}) })
	require.NoError(t, err)
	assert.Equal(t, before, read(t, path+".bak"))
	assert.False(t, bytes.Equal([]byte(before), []byte(read(t, path))))
}

func TestSetup_Logger(t *testing.T) {
	resetFlags(t)
	t.Cleanup(func() { resetFlags(t) })
	chdir(t, t.TempDir())
	ctx := context.Background()

	verbose = true
	require.NoError(t, setup())
	assert.True(t, logger.L.Enabled(ctx, slog.LevelDebug))

	verbose = false
	require.NoError(t, setup())
	assert.False(t, logger.L.Enabled(ctx, slog.LevelError))
}
