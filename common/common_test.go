package common

import (
	"net/url"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHTTPClientWithTimeout(t *testing.T) {
	t.Parallel()
	c := NewHTTPClientWithTimeout(time.Second * 5)
	assert.Equal(t, time.Second*5, c.Timeout)
	require.NotNil(t, c.Transport)
}

func TestEncodeURLValues(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "accounts", EncodeURLValues("accounts", nil))

	v := url.Values{}
	v.Set("page", "2")
	v.Set("limit", "25")
	assert.Equal(t, "accounts?limit=25&page=2", EncodeURLValues("accounts", v))
}

func TestGetDefaultDataDir(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "CoinbaseV1", filepath.Base(GetDefaultDataDir("windows")))
	assert.Equal(t, ".cbv1", filepath.Base(GetDefaultDataDir("linux")))
}

func TestCreateDir(t *testing.T) {
	t.Parallel()
	assert.ErrorIs(t, CreateDir(" "), errCannotCreateEmptyDirectory)

	dir := filepath.Join(t.TempDir(), "a", "b")
	require.NoError(t, CreateDir(dir))
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	// existing directories are left alone
	assert.NoError(t, CreateDir(dir))
}

func TestStringSliceContains(t *testing.T) {
	t.Parallel()
	assert.True(t, StringSliceContains([]string{"user", "balance"}, "balance"))
	assert.False(t, StringSliceContains([]string{"user"}, "transfers"))
	assert.False(t, StringSliceContains(nil, ""))
}
