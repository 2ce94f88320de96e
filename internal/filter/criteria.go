package filter

import (
	"fmt"

	"github.com/dyluth/fathom/internal/tagspec"
	"github.com/dyluth/fathom/pkg/catalog"
)

// Criteria holds the raw filter flags shared by the list and random commands.
// All filters are ANDed together - a piece must match ALL criteria to pass.
type Criteria struct {
	Theme    string   // Exact theme name, empty = no filter
	Category string   // Category name (case-insensitive), empty = no filter
	Tags     []string // name=value specs, see tagspec.Parse
	Limit    int      // Maximum results, 0 = unbounded
}

// Query validates the criteria and converts them into a catalog query.
func (c *Criteria) Query() (catalog.Query, error) {
	q := catalog.Query{Theme: c.Theme, Limit: c.Limit}

	if c.Limit < 0 {
		return catalog.Query{}, fmt.Errorf("invalid --limit: must be >= 0, got %d", c.Limit)
	}

	if c.Category != "" {
		category, err := catalog.ParseCategory(c.Category)
		if err != nil {
			return catalog.Query{}, fmt.Errorf("invalid --category: %w", err)
		}
		q.Category = category
	}

	tags, err := tagspec.ParseAll(c.Tags)
	if err != nil {
		return catalog.Query{}, err
	}
	q.Tags = tags

	return q, nil
}

// HasFilters returns true if any filters are active.
// The limit does not count as a filter.
func (c *Criteria) HasFilters() bool {
	return c.Theme != "" ||
		c.Category != "" ||
		len(c.Tags) > 0
}
