package sitemap

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDuplicates(t *testing.T) {
	sm := Build("https://example.com", []string{`"/",`, "'a'", `"/",`, "'b'", "'a'", `"/"`})

	assert.Equal(t, []Duplicate{
		{Loc: "https://example.com/", Count: 3},
		{Loc: "https://example.com/a", Count: 2},
	}, Duplicates(sm))
}

func TestDuplicatesNone(t *testing.T) {
	assert.Empty(t, Duplicates(Build("https://example.com", []string{"'a'", "'b'"})))
}

func TestParseInvalid(t *testing.T) {
	_, err := Parse(strings.NewReader("<urlset><url>"))
	assert.Error(t, err)
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sitemap.xml")
	require.NoError(t, os.WriteFile(path, []byte(Format("https://example.com", []string{"'x'"})), 0644))

	sm, err := ParseFile(path)
	require.NoError(t, err)
	require.Len(t, sm.URLs, 1)
	assert.Equal(t, "https://example.com/x", sm.URLs[0].Loc)

	_, err = ParseFile(filepath.Join(t.TempDir(), "missing.xml"))
	assert.True(t, os.IsNotExist(err))
}
