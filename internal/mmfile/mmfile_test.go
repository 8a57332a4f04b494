package mmfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "project.pbxproj")
	want := []byte("// !$*UTF8*$!\n{\n}\n")
	require.NoError(t, os.WriteFile(path, want, 0o644))

	f, err := Open(path, 0)
	require.NoError(t, err)
	assert.Equal(t, want, f.Data)
	require.NoError(t, f.Close())
	require.NoError(t, f.Close())
	assert.Nil(t, f.Data)
}

func TestOpen_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	f, err := Open(path, 0)
	require.NoError(t, err)
	assert.Empty(t, f.Data)
	require.NoError(t, f.Close())
}

func TestOpen_Limit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "big")
	require.NoError(t, os.WriteFile(path, make([]byte, 64), 0o644))

	_, err := Open(path, 32)
	require.ErrorIs(t, err, ErrTooLarge)

	f, err := Open(path, 64)
	require.NoError(t, err)
	assert.Len(t, f.Data, 64)
	require.NoError(t, f.Close())
}

func TestOpen_Missing(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope"), 0)
	require.ErrorIs(t, err, os.ErrNotExist)
}
