package utils

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	rl, err := NewRunLogger("sitemap", "", &buf, false)
	require.NoError(t, err)
	defer rl.Close()

	rl.LogInfo("found %d routes", 3)
	rl.LogDebug("hidden")
	rl.LogError("boom: %v", "disk full")

	out := buf.String()
	assert.Contains(t, out, "[INFO] found 3 routes")
	assert.Contains(t, out, "[ERROR] boom: disk full")
	assert.NotContains(t, out, "hidden")
	assert.Empty(t, rl.Path())
}

func TestRunLoggerVerbose(t *testing.T) {
	var buf bytes.Buffer
	rl, err := NewRunLogger("sitemap", "", &buf, true)
	require.NoError(t, err)

	rl.LogDebug("  - %s", "'about'")
	assert.Contains(t, buf.String(), "[DEBUG]   - 'about'")
}

func TestRunLoggerFile(t *testing.T) {
	var buf bytes.Buffer
	dir := t.TempDir()

	rl, err := NewRunLogger("My Site", dir, &buf, false)
	require.NoError(t, err)
	rl.LogInfo("written")
	require.NoError(t, rl.Close())

	path := rl.Path()
	assert.Equal(t, filepath.Join(dir, "my_site"), filepath.Dir(path))
	assert.True(t, strings.HasPrefix(filepath.Base(path), "run_my_site_"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[INFO] written")
	assert.Contains(t, buf.String(), "[INFO] written")
}

func TestDiscard(t *testing.T) {
	rl := Discard()
	rl.LogInfo("nothing")
	assert.NoError(t, rl.Close())
}
