package env

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetters(t *testing.T) {
	t.Setenv("WINEMAP_TEST_STR", "value")
	t.Setenv("WINEMAP_TEST_BOOL", "true")
	t.Setenv("WINEMAP_TEST_BAD_BOOL", "maybe")
	t.Setenv("WINEMAP_TEST_DUR", "3s")
	t.Setenv("WINEMAP_TEST_EMPTY", "")

	assert.Equal(t, "value", GetEnv("WINEMAP_TEST_STR", "def"))
	assert.Equal(t, "def", GetEnv("WINEMAP_TEST_EMPTY", "def"))
	assert.Equal(t, "def", GetEnv("WINEMAP_TEST_UNSET", "def"))
	assert.True(t, GetBool("WINEMAP_TEST_BOOL", false))
	assert.True(t, GetBool("WINEMAP_TEST_BAD_BOOL", true))
	assert.Equal(t, 3*time.Second, GetDuration("WINEMAP_TEST_DUR", time.Second))
	assert.Equal(t, time.Second, GetDuration("WINEMAP_TEST_UNSET", time.Second))
}

func TestMustGetEnv(t *testing.T) {
	t.Setenv("WINEMAP_TEST_SET", "x")
	got, err := MustGetEnv("WINEMAP_TEST_SET")
	require.NoError(t, err)
	assert.Equal(t, "x", got)

	_, err = MustGetEnv("WINEMAP_TEST_DEFINITELY_UNSET")
	assert.ErrorContains(t, err, "WINEMAP_TEST_DEFINITELY_UNSET")
}

func TestLoadEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("WINEMAP_TEST_FROM_FILE=loaded\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("WINEMAP_TEST_FROM_FILE") })

	assert.True(t, LoadEnv(path))
	assert.Equal(t, "loaded", GetEnv("WINEMAP_TEST_FROM_FILE", ""))
	assert.False(t, LoadEnv(filepath.Join(t.TempDir(), "missing.env")))
}
