// Package extractor pulls route path tokens out of router definition text.
package extractor

import "regexp"

// DefaultMaxDepth re-scans each top-level token once for embedded matches.
const DefaultMaxDepth = 1

// Whitespace includes Unicode separators and vertical tab, not just ASCII \s.
var pathPattern = regexp.MustCompile(`path:[\s\p{Z}\v]*([^\s\p{Z}\v]+)`)

// Extractor scans text for `path: <token>` occurrences.
type Extractor struct {
	// MaxDepth bounds how many levels below the top-level matches are
	// re-scanned. Zero returns only the top-level matches.
	MaxDepth int
}

// New returns an Extractor with the given re-scan depth.
func New(maxDepth int) *Extractor {
	if maxDepth < 0 {
		maxDepth = 0
	}
	return &Extractor{MaxDepth: maxDepth}
}

// Extract is shorthand for New(DefaultMaxDepth).Extract(text).
func Extract(text string) []string {
	return New(DefaultMaxDepth).Extract(text)
}

// Extract returns the raw tokens found in text. Top-level matches come first,
// in order of appearance, followed by the matches found inside them, one
// level at a time. Tokens are not cleaned or deduplicated.
func (e *Extractor) Extract(text string) []string {
	routes := match(text)
	level := routes

	for depth := 0; depth < e.MaxDepth && len(level) > 0; depth++ {
		var next []string
		for _, token := range level {
			next = append(next, match(token)...)
		}
		routes = append(routes, next...)
		level = next
	}

	return routes
}

func match(text string) []string {
	found := pathPattern.FindAllStringSubmatch(text, -1)
	tokens := make([]string, 0, len(found))
	for _, m := range found {
		tokens = append(tokens, m[1])
	}
	return tokens
}
