package sitemap

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"

	"github.com/rajlabs/route-sitemap/internal/models"
)

// Duplicate is a loc that appears more than once in a sitemap.
type Duplicate struct {
	Loc   string
	Count int
}

// Parse decodes a sitemap document.
func Parse(r io.Reader) (*models.Sitemap, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var sm models.Sitemap
	if err := xml.Unmarshal(body, &sm); err != nil {
		return nil, fmt.Errorf("invalid sitemap: %w", err)
	}

	return &sm, nil
}

// ParseFile opens and decodes the sitemap at path.
func ParseFile(path string) (*models.Sitemap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Parse(f)
}

// Duplicates lists repeated locs in order of first appearance.
func Duplicates(sm *models.Sitemap) []Duplicate {
	counts := make(map[string]int)
	var order []string
	for _, u := range sm.URLs {
		if counts[u.Loc] == 0 {
			order = append(order, u.Loc)
		}
		counts[u.Loc]++
	}

	var dups []Duplicate
	for _, loc := range order {
		if counts[loc] > 1 {
			dups = append(dups, Duplicate{Loc: loc, Count: counts[loc]})
		}
	}
	return dups
}
