package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrite(t *testing.T) {
	t.Parallel()
	assert.ErrorIs(t, Write("", nil), errEmptyPath)

	path := filepath.Join(t.TempDir(), "nested", "tokens.json")
	require.NoError(t, Write(path, []byte("CoinbaseV1")))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "CoinbaseV1", string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	if filepath.Separator == '/' {
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	}
}

func TestWriter(t *testing.T) {
	t.Parallel()
	_, err := Writer("")
	assert.ErrorIs(t, err, errEmptyPath)

	path := filepath.Join(t.TempDir(), "out", "config.json")
	w, err := Writer(path)
	require.NoError(t, err)
	_, err = w.WriteString("{}")
	require.NoError(t, err)
	require.NoError(t, w.Close())
	assert.True(t, Exists(path))
}

func TestExists(t *testing.T) {
	t.Parallel()
	assert.True(t, Exists(t.TempDir()))
	assert.False(t, Exists(filepath.Join(t.TempDir(), "missing")))
}
