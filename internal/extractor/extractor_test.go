package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractNoMatches(t *testing.T) {
	for _, text := range []string{
		"",
		"const router = createBrowserRouter([]);",
		"pathname: '/home'",
		"path '/missing-colon'",
	} {
		assert.Empty(t, Extract(text), "text %q", text)
	}
}

func TestExtractSingleToken(t *testing.T) {
	assert.Equal(t, []string{"'/home'"}, Extract("path: '/home'"))
}

func TestExtractKeepsOrderAndDuplicates(t *testing.T) {
	text := `
	{ path: "/", element: <Layout /> },
	{ path: "tools", element: <Tools /> },
	{ path: "/", element: <Home /> },
	`
	assert.Equal(t, []string{`"/",`, `"tools",`, `"/",`}, Extract(text))
}

func TestExtractOptionalWhitespace(t *testing.T) {
	assert.Equal(t, []string{"'a'", "'b'", "'c'"}, Extract("path:'a' path:   'b' path:\n\t'c'"))
}

func TestExtractUnicodeWhitespace(t *testing.T) {
	tests := []struct {
		text string
		want []string
	}{
		{"path: '/a'\u00a0x", []string{"'/a'"}},
		{"path:\u00a0'/b'", []string{"'/b'"}},
		{"path: '/c'\vpath: '/d'", []string{"'/c'", "'/d'"}},
		{"path:\u2003'/e'\u2028", []string{"'/e'"}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Extract(tt.text), "text %q", tt.text)
	}
}

func TestExtractSiblingsOnOneLine(t *testing.T) {
	// The capture stops at whitespace, so both occurrences are top-level.
	text := "path: '/home', children: [{path: 'about'}]"
	assert.Equal(t, []string{"'/home',", "'about'}]"}, Extract(text))
}

func TestExtractNestedOneLevel(t *testing.T) {
	text := "path:path:'inner'"
	assert.Equal(t, []string{"path:'inner'", "'inner'"}, Extract(text))
}

func TestExtractorDepth(t *testing.T) {
	text := "path:path:path:x path:y"

	tests := []struct {
		depth int
		want  []string
	}{
		{0, []string{"path:path:x", "y"}},
		{1, []string{"path:path:x", "y", "path:x"}},
		{2, []string{"path:path:x", "y", "path:x", "x"}},
		{10, []string{"path:path:x", "y", "path:x", "x"}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, New(tt.depth).Extract(text), "depth %d", tt.depth)
	}
}

func TestNewClampsNegativeDepth(t *testing.T) {
	e := New(-3)
	assert.Equal(t, 0, e.MaxDepth)
	assert.Equal(t, []string{"path:x"}, e.Extract("path:path:x"))
}

func TestExtractIsDeterministic(t *testing.T) {
	text := "path: 'a', path: 'b', path:path:'c'"
	assert.Equal(t, Extract(text), Extract(text))
}
