// Package sitemap renders and reads Sitemaps protocol documents.
package sitemap

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/rajlabs/route-sitemap/internal/models"
)

// CleanRoute turns a raw route token into a path that starts with "/".
// It trims whitespace, then strips one layer of double quotes, then one layer
// of single quotes, then a trailing comma. A comma sitting outside the closing
// quote (`'about',`) is peeled first so the quotes can be reached.
func CleanRoute(token string) string {
	route := strings.TrimSpace(token)
	route = strings.TrimSuffix(route, ",")
	route = unquote(route, '"')
	route = unquote(route, '\'')
	route = strings.TrimSuffix(route, ",")

	if !strings.HasPrefix(route, "/") {
		route = "/" + route
	}
	return route
}

func unquote(s string, q byte) string {
	if len(s) >= 2 && s[0] == q && s[len(s)-1] == q {
		return s[1 : len(s)-1]
	}
	return s
}

// Build creates one URL entry per route, in order. The hostname and cleaned
// path are joined as-is; no URL validation happens here.
func Build(hostname string, routes []string) *models.Sitemap {
	sm := &models.Sitemap{
		Xmlns: models.SitemapNamespace,
		URLs:  make([]models.URL, 0, len(routes)),
	}

	for _, route := range routes {
		sm.URLs = append(sm.URLs, models.URL{
			Loc:        hostname + CleanRoute(route),
			ChangeFreq: models.DefaultChangeFreq,
			Priority:   models.DefaultPriority,
		})
	}

	return sm
}

// Marshal serializes a sitemap with the XML declaration and two-space indent.
func Marshal(sm *models.Sitemap) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)

	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(sm); err != nil {
		return nil, fmt.Errorf("failed to encode sitemap: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to flush sitemap: %w", err)
	}
	buf.WriteByte('\n')

	return buf.Bytes(), nil
}

// Format returns the complete sitemap document for hostname and routes.
func Format(hostname string, routes []string) string {
	data, err := Marshal(Build(hostname, routes))
	if err != nil {
		// Only strings are encoded, so this cannot fail.
		panic(err)
	}
	return string(data)
}
