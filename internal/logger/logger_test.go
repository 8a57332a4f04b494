package logger

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_DisabledDiscards(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Enabled: false, Writer: &buf})
	l.Error("boom")
	assert.Zero(t, buf.Len())
}

func TestNew_TextAndJSON(t *testing.T) {
	var buf bytes.Buffer
	New(Options{Enabled: true, Writer: &buf}).Info("parsed", "objects", 3)
	assert.Contains(t, buf.String(), "msg=parsed")
	assert.Contains(t, buf.String(), "objects=3")

	buf.Reset()
	New(Options{Enabled: true, Writer: &buf, JSON: true}).Warn("advisory", "field", "files")
	assert.Contains(t, buf.String(), `"msg":"advisory"`)
	assert.Contains(t, buf.String(), `"field":"files"`)
}

func TestNew_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	New(Options{Enabled: true, Writer: &buf, Level: slog.LevelWarn}).Info("hidden")
	assert.Zero(t, buf.Len())
}

func TestInit_ReplacesGlobal(t *testing.T) {
	prev := L
	t.Cleanup(func() { L = prev })

	var buf bytes.Buffer
	Init(Options{Enabled: true, Writer: &buf})
	Info("hello")
	assert.Contains(t, buf.String(), "hello")
}

func TestOrDiscard(t *testing.T) {
	assert.NotNil(t, OrDiscard(nil))
	l := slog.Default()
	assert.Same(t, l, OrDiscard(l))
}

func TestHelpers_UseGlobal(t *testing.T) {
	prev := L
	t.Cleanup(func() { L = prev })

	var buf bytes.Buffer
	Init(Options{Enabled: true, Writer: &buf, Level: slog.LevelDebug})
	Debug("trace", "id", 1)
	Warn("advisory")
	Error("failed")
	assert.Contains(t, buf.String(), "msg=trace")
	assert.Contains(t, buf.String(), "msg=advisory")
	assert.Contains(t, buf.String(), "msg=failed")
}

func TestNew_ZeroLevelIsInfo(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Enabled: true, Writer: &buf})
	l.Debug("hidden")
	assert.Zero(t, buf.Len())
	l.Info("shown")
	assert.Contains(t, buf.String(), "shown")
}
