package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dyluth/fathom/pkg/catalog"
)

func TestCriteriaQuery(t *testing.T) {
	t.Run("empty criteria match everything", func(t *testing.T) {
		c := &Criteria{}
		q, err := c.Query()
		require.NoError(t, err)
		assert.False(t, q.HasFilters())
		assert.False(t, c.HasFilters())
	})

	t.Run("all fields", func(t *testing.T) {
		c := &Criteria{
			Theme:    "deep-sea",
			Category: "Creature",
			Tags:     []string{"mood=eerie,calm", "bioluminescence=true"},
			Limit:    3,
		}
		q, err := c.Query()
		require.NoError(t, err)
		assert.True(t, c.HasFilters())

		assert.Equal(t, "deep-sea", q.Theme)
		assert.Equal(t, catalog.CategoryCreature, q.Category)
		assert.Equal(t, 3, q.Limit)
		require.Len(t, q.Tags, 2)
		assert.True(t, q.Tags["mood"].Equal(catalog.List("eerie", "calm")))
		assert.True(t, q.Tags["bioluminescence"].Equal(catalog.Flag(true)))
	})

	t.Run("limit alone is not a filter", func(t *testing.T) {
		assert.False(t, (&Criteria{Limit: 5}).HasFilters())
	})

	tests := []struct {
		name     string
		criteria Criteria
		expected string
	}{
		{"unknown category", Criteria{Category: "plant"}, "invalid --category"},
		{"bad tag", Criteria{Tags: []string{"mood"}}, "invalid --tag"},
		{"negative limit", Criteria{Limit: -2}, "invalid --limit"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.criteria.Query()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.expected)
		})
	}
}
