package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// newTestPiece builds a complete piece for the given theme and local name.
func newTestPiece(theme, name string, category Category, tags *Tags) Piece {
	return Piece{
		ID:             theme + ":" + name,
		Name:           name,
		Category:       category,
		Theme:          theme,
		Art:            " /\\ \n/__\\",
		Description:    "a " + name,
		WhyEffective:   "it reads well",
		KeyCharacters:  []string{"/", "\\"},
		BuildingBlocks: []string{"roof: /\\"},
		Techniques:     []string{"line-drawing"},
		Tags:           tags,
	}
}

func seededRegistry(t *testing.T) *Registry {
	t.Helper()
	reg := NewRegistry()
	reg.RegisterTheme(Theme{
		Name:        "deep-sea",
		Description: "the deep ocean",
		Pieces: []Piece{
			newTestPiece("deep-sea", "anglerfish", CategoryCreature, NewTags().
				Set(TagMood, List("predatory", "eerie")).
				Set(TagSize, Text("medium")).
				Set(TagBioluminescence, Flag(true))),
			newTestPiece("deep-sea", "giant-squid", CategoryCreature, NewTags().
				Set(TagMood, List("majestic", "powerful")).
				Set(TagSize, Text("large")).
				Set(TagBioluminescence, Flag(false))),
			newTestPiece("deep-sea", "coral-reef", CategoryEnvironment, NewTags().
				Set(TagMood, List("alive", "diverse")).
				Set(TagSize, Text("large")).
				Set(TagBioluminescence, Flag(true))),
			newTestPiece("deep-sea", "submarine", CategoryStructure, NewTags().
				Set(TagSize, Text("large")).
				Set(TagBioluminescence, Flag(false))),
		},
	})
	reg.RegisterTheme(Theme{
		Name: "reef",
		Pieces: []Piece{
			newTestPiece("reef", "clownfish", CategoryCreature, NewTags().Set(TagSize, Text("small"))),
		},
	})
	return reg
}

func TestRegisterTheme(t *testing.T) {
	t.Run("indexes every piece", func(t *testing.T) {
		reg := seededRegistry(t)

		p, ok := reg.GetByID("deep-sea:anglerfish")
		require.True(t, ok)
		assert.Equal(t, "anglerfish", p.Name)
		assert.Equal(t, 5, reg.Len())
		assert.Equal(t, []string{"deep-sea", "reef"}, reg.GetThemes())
	})

	t.Run("re-registration replaces the theme and keeps its position", func(t *testing.T) {
		core, logs := observer.New(zapcore.WarnLevel)
		reg := NewRegistry(WithLogger(zap.New(core)))
		reg.RegisterTheme(Theme{Name: "a", Pieces: []Piece{newTestPiece("a", "one", CategoryCreature, NewTags())}})
		reg.RegisterTheme(Theme{Name: "b"})
		reg.RegisterTheme(Theme{Name: "a", Pieces: []Piece{newTestPiece("a", "two", CategoryCreature, NewTags())}})

		assert.Equal(t, []string{"a", "b"}, reg.GetThemes())
		require.Len(t, reg.GetByTheme("a"), 1)
		assert.Equal(t, "a:two", reg.GetByTheme("a")[0].ID)

		// The replaced piece stays in the index.
		_, ok := reg.GetByID("a:one")
		assert.True(t, ok)
		assert.Equal(t, 2, reg.Len())

		assert.Equal(t, 1, logs.FilterMessage("Theme re-registered, replacing previous definition").Len())
	})

	t.Run("does not validate pieces", func(t *testing.T) {
		reg := NewRegistry()
		reg.RegisterTheme(Theme{Name: "a", Pieces: []Piece{
			newTestPiece("elsewhere", "stray", CategoryCreature, nil),
		}})
		assert.Len(t, reg.GetByTheme("a"), 1)
	})

	t.Run("copies the caller's slice", func(t *testing.T) {
		pieces := []Piece{newTestPiece("a", "one", CategoryCreature, NewTags())}
		reg := NewRegistry()
		reg.RegisterTheme(Theme{Name: "a", Pieces: pieces})

		pieces[0].Name = "mutated"
		assert.Equal(t, "one", reg.GetByTheme("a")[0].Name)
	})
}

func TestAddPiece(t *testing.T) {
	t.Run("appends to theme and index", func(t *testing.T) {
		reg := seededRegistry(t)
		err := reg.AddPiece("reef", newTestPiece("reef", "seahorse", CategoryCreature, NewTags()))
		require.NoError(t, err)

		pieces := reg.GetByTheme("reef")
		require.Len(t, pieces, 2)
		assert.Equal(t, "reef:seahorse", pieces[1].ID)

		_, ok := reg.GetByID("reef:seahorse")
		assert.True(t, ok)
	})

	t.Run("unknown theme is NotFound", func(t *testing.T) {
		reg := seededRegistry(t)
		err := reg.AddPiece("kelp", newTestPiece("kelp", "frond", CategoryEnvironment, NewTags()))
		require.Error(t, err)
		assert.True(t, IsNotFound(err))
		assert.Contains(t, err.Error(), `theme "kelp" not registered`)
	})

	t.Run("wrong prefix is a SchemaViolation", func(t *testing.T) {
		reg := seededRegistry(t)
		before := reg.Stats()

		err := reg.AddPiece("deep-sea", newTestPiece("reef", "x", CategoryCreature, NewTags()))
		require.Error(t, err)
		assert.True(t, IsSchemaViolation(err))
		assert.False(t, IsConflict(err))
		assert.Equal(t, before, reg.Stats())
	})

	t.Run("duplicate ID is a Conflict and leaves state unchanged", func(t *testing.T) {
		reg := seededRegistry(t)
		before := reg.GetByTheme("deep-sea")

		dup := newTestPiece("deep-sea", "anglerfish", CategoryStructure, NewTags())
		err := reg.AddPiece("deep-sea", dup)
		require.Error(t, err)
		assert.True(t, IsConflict(err))

		assert.Equal(t, before, reg.GetByTheme("deep-sea"))
		p, _ := reg.GetByID("deep-sea:anglerfish")
		assert.Equal(t, CategoryCreature, p.Category)
	})

	t.Run("second insert of the same ID fails", func(t *testing.T) {
		reg := seededRegistry(t)
		p := newTestPiece("reef", "seahorse", CategoryCreature, NewTags())
		require.NoError(t, reg.AddPiece("reef", p))
		assert.True(t, IsConflict(reg.AddPiece("reef", p)))
		assert.Len(t, reg.GetByTheme("reef"), 2)
	})
}

func TestReadAccessors(t *testing.T) {
	reg := seededRegistry(t)

	t.Run("GetByID unknown", func(t *testing.T) {
		_, ok := reg.GetByID("deep-sea:kraken")
		assert.False(t, ok)
	})

	t.Run("GetByTheme unknown is empty, not nil", func(t *testing.T) {
		pieces := reg.GetByTheme("deep-see")
		assert.NotNil(t, pieces)
		assert.Empty(t, pieces)
	})

	t.Run("GetByTheme returns a copy", func(t *testing.T) {
		pieces := reg.GetByTheme("deep-sea")
		pieces[0].Name = "changed"
		assert.Equal(t, "anglerfish", reg.GetByTheme("deep-sea")[0].Name)
	})

	t.Run("GetByCategory", func(t *testing.T) {
		creatures := reg.GetByCategory("deep-sea", CategoryCreature)
		require.Len(t, creatures, 2)
		assert.Equal(t, "deep-sea:anglerfish", creatures[0].ID)
		assert.Equal(t, "deep-sea:giant-squid", creatures[1].ID)
		assert.Empty(t, reg.GetByCategory("nowhere", CategoryCreature))
	})

	t.Run("GetCategories is sorted and stable", func(t *testing.T) {
		want := []Category{CategoryCreature, CategoryEnvironment, CategoryStructure}
		assert.Equal(t, want, reg.GetCategories("deep-sea"))
		assert.Equal(t, want, reg.GetCategories("deep-sea"))
		assert.Empty(t, reg.GetCategories("nowhere"))
	})

	t.Run("GetTheme", func(t *testing.T) {
		theme, ok := reg.GetTheme("deep-sea")
		require.True(t, ok)
		assert.Equal(t, "the deep ocean", theme.Description)
		assert.Len(t, theme.Pieces, 4)
		assert.True(t, reg.HasTheme("reef"))
		assert.False(t, reg.HasTheme("kelp"))
	})

	t.Run("Pieces follows registration order", func(t *testing.T) {
		var ids []string
		for _, p := range reg.Pieces() {
			ids = append(ids, p.ID)
		}
		assert.Equal(t, []string{
			"deep-sea:anglerfish", "deep-sea:giant-squid", "deep-sea:coral-reef",
			"deep-sea:submarine", "reef:clownfish",
		}, ids)
	})
}

func TestStats(t *testing.T) {
	reg := seededRegistry(t)
	stats := reg.Stats()

	assert.Equal(t, 5, stats.TotalPieces)
	require.Len(t, stats.Themes, 2)
	assert.Equal(t, ThemeStats{
		Name:       "deep-sea",
		PieceCount: 4,
		Categories: []Category{CategoryCreature, CategoryEnvironment, CategoryStructure},
	}, stats.Themes[0])
	assert.Equal(t, "reef", stats.Themes[1].Name)
	assert.Equal(t, stats, reg.Stats())
}

func TestPieceHelpers(t *testing.T) {
	p := Piece{ID: "deep-sea:school-of-fish", Name: "schoolOfFish"}
	assert.Equal(t, "school-of-fish", p.LocalName())
	assert.Equal(t, "schoolOfFish", p.Label())
	p.DisplayName = "school of fish"
	assert.Equal(t, "school of fish", p.Label())
	assert.True(t, p.HasThemePrefix("deep-sea"))
	assert.False(t, p.HasThemePrefix("deep"))

	c, err := ParseCategory(" Creature ")
	require.NoError(t, err)
	assert.Equal(t, CategoryCreature, c)
	_, err = ParseCategory("plant")
	assert.Error(t, err)

	z := &Zoom{Far: "x"}
	assert.Equal(t, "x", z.Art(ZoomFar))
	assert.False(t, z.IsEmpty())
	assert.True(t, (&Zoom{}).IsEmpty())
	var nilZoom *Zoom
	assert.True(t, nilZoom.IsEmpty())
}
