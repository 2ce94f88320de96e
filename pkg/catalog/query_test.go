package catalog

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(pieces []Piece) []string {
	out := make([]string, 0, len(pieces))
	for _, p := range pieces {
		out = append(out, p.ID)
	}
	return out
}

func TestQuery(t *testing.T) {
	reg := seededRegistry(t)

	tests := []struct {
		name     string
		query    Query
		expected []string
	}{
		{
			name:  "no criteria returns everything in order",
			query: Query{},
			expected: []string{
				"deep-sea:anglerfish", "deep-sea:giant-squid", "deep-sea:coral-reef",
				"deep-sea:submarine", "reef:clownfish",
			},
		},
		{
			name:     "theme and category",
			query:    Query{Theme: "deep-sea", Category: CategoryCreature},
			expected: []string{"deep-sea:anglerfish", "deep-sea:giant-squid"},
		},
		{
			name: "AND across tag keys",
			query: Query{Theme: "deep-sea", Tags: map[string]TagValue{
				TagBioluminescence: Flag(true),
				TagSize:            Text("large"),
			}},
			expected: []string{"deep-sea:coral-reef"},
		},
		{
			name: "unsatisfiable third key empties the result",
			query: Query{Theme: "deep-sea", Tags: map[string]TagValue{
				TagBioluminescence: Flag(true),
				TagSize:            Text("large"),
				"habitat":          Text("trench"),
			}},
			expected: []string{},
		},
		{
			name:     "scalar query against list tag",
			query:    Query{Tags: map[string]TagValue{TagMood: Text("eerie")}},
			expected: []string{"deep-sea:anglerfish"},
		},
		{
			name:     "list query intersects list tag",
			query:    Query{Tags: map[string]TagValue{TagMood: List("majestic", "eerie")}},
			expected: []string{"deep-sea:anglerfish", "deep-sea:giant-squid"},
		},
		{
			name:     "scalar query with no member",
			query:    Query{Tags: map[string]TagValue{TagMood: Text("peaceful")}},
			expected: []string{},
		},
		{
			name:     "list query against scalar tag",
			query:    Query{Tags: map[string]TagValue{TagSize: List("small", "medium")}},
			expected: []string{"deep-sea:anglerfish", "reef:clownfish"},
		},
		{
			name:     "missing tag is not a wildcard",
			query:    Query{Tags: map[string]TagValue{TagMood: List("alive", "diverse", "majestic", "predatory", "eerie", "powerful")}},
			expected: []string{"deep-sea:anglerfish", "deep-sea:giant-squid", "deep-sea:coral-reef"},
		},
		{
			name:     "flag does not equal text",
			query:    Query{Tags: map[string]TagValue{TagBioluminescence: Text("true")}},
			expected: []string{},
		},
		{
			name:     "limit keeps the front of the ordering",
			query:    Query{Theme: "deep-sea", Limit: 2},
			expected: []string{"deep-sea:anglerfish", "deep-sea:giant-squid"},
		},
		{
			name:     "non-positive limit is unbounded",
			query:    Query{Theme: "reef", Limit: -1},
			expected: []string{"reef:clownfish"},
		},
		{
			name:     "unknown theme",
			query:    Query{Theme: "kelp"},
			expected: []string{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ids(reg.Query(tc.query)))
		})
	}
}

func TestQueryHasFilters(t *testing.T) {
	assert.False(t, (&Query{}).HasFilters())
	assert.False(t, (&Query{Limit: 3}).HasFilters())
	assert.True(t, (&Query{Theme: "x"}).HasFilters())
	assert.True(t, (&Query{Tags: map[string]TagValue{"a": Text("b")}}).HasFilters())
}

func TestQueryLimitAtMost(t *testing.T) {
	reg := seededRegistry(t)
	for limit := 1; limit <= 6; limit++ {
		got := reg.Query(Query{Theme: "deep-sea", Limit: limit})
		assert.LessOrEqual(t, len(got), limit)
	}
}

func TestRandom(t *testing.T) {
	t.Run("covers every piece of the theme", func(t *testing.T) {
		reg := NewRegistry(WithRand(rand.New(rand.NewPCG(1, 2))))
		for _, name := range []string{"deep-sea", "reef"} {
			theme, _ := seededRegistry(t).GetTheme(name)
			reg.RegisterTheme(theme)
		}

		pieces := reg.GetByTheme("deep-sea")
		counts := make(map[string]int)
		draws := 500 * len(pieces)
		for i := 0; i < draws; i++ {
			p, ok := reg.Random("deep-sea")
			require.True(t, ok)
			require.Equal(t, "deep-sea", p.Theme)
			counts[p.ID]++
		}

		for _, p := range pieces {
			assert.GreaterOrEqual(t, counts[p.ID], 1, "piece %s never drawn", p.ID)
		}
		assert.Len(t, counts, len(pieces))
	})

	t.Run("same seed gives the same draws", func(t *testing.T) {
		theme, _ := seededRegistry(t).GetTheme("deep-sea")
		a := NewRegistry(WithRand(rand.New(rand.NewPCG(42, 7))))
		b := NewRegistry(WithRand(rand.New(rand.NewPCG(42, 7))))
		a.RegisterTheme(theme)
		b.RegisterTheme(theme)

		for i := 0; i < 20; i++ {
			pa, _ := a.Random("deep-sea")
			pb, _ := b.Random("deep-sea")
			assert.Equal(t, pa.ID, pb.ID)
		}
	})

	t.Run("empty or unknown theme", func(t *testing.T) {
		reg := NewRegistry()
		reg.RegisterTheme(Theme{Name: "empty"})
		_, ok := reg.Random("empty")
		assert.False(t, ok)
		_, ok = reg.Random("missing")
		assert.False(t, ok)
	})

	t.Run("from query", func(t *testing.T) {
		reg := seededRegistry(t)
		for i := 0; i < 50; i++ {
			p, ok := reg.RandomFromQuery(Query{Tags: map[string]TagValue{TagBioluminescence: Flag(true)}})
			require.True(t, ok)
			assert.Contains(t, []string{"deep-sea:anglerfish", "deep-sea:coral-reef"}, p.ID)
		}

		_, ok := reg.RandomFromQuery(Query{Category: CategoryScene})
		assert.False(t, ok)
	})
}
