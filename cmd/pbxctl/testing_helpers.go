package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/joshuapare/pbxkit/internal/logger"
)

// testProject copies a fixture from the repository's testdata/projects into
// a temp dir and returns the copy's path.
func testProject(t *testing.T, name string) string {
	t.Helper()
	src := filepath.Join("..", "..", "testdata", "projects", name)
	data, err := os.ReadFile(src)
	if err != nil {
		t.Fatalf("test file not found: %s", src)
	}
	return writeProject(t, data)
}

// writeProject stores data as project.pbxproj inside a fresh App.xcodeproj.
func writeProject(t *testing.T, data []byte) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "App.xcodeproj")
	if err := os.Mkdir(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	path := filepath.Join(dir, "project.pbxproj")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

// resetFlags restores every flag and the loaded config to its default.
func resetFlags(t *testing.T) {
	t.Helper()
	verbose, quiet, jsonOut, configPath = false, false, false, ""
	cfg = defaultConfig()
	logger.L = logger.Discard()
	fmtWrite, fmtCheck, fmtUTF8 = false, false, false
	validateLimits = ""
	dumpFormat = "json"
	orphansPrune = false
	rmCascade, rmDryRun = false, false
	addGroup, addTarget, addSourceTree = "", "", "<group>"
}

// captureOutput captures stdout while running a function
func captureOutput(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	origStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w

	done := make(chan []byte)
	go func() {
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(r)
		done <- buf.Bytes()
	}()

	fnErr := fn()

	w.Close()
	os.Stdout = origStdout
	return string(<-done), fnErr
}

// chdir changes the working directory to dir for the rest of the test and
// restores it on cleanup, like testing.T.Chdir.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatalf("chdir back: %v", err)
		}
	})
}
