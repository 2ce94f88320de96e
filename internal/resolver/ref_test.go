package resolver

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dyluth/fathom/pkg/catalog"
)

func testRegistry() *catalog.Registry {
	reg := catalog.NewRegistry()
	reg.RegisterTheme(catalog.Theme{Name: "deep-sea", Pieces: []catalog.Piece{
		{ID: "deep-sea:anglerfish", Theme: "deep-sea"},
		{ID: "deep-sea:shark", Theme: "deep-sea"},
		{ID: "deep-sea:school-of-fish", Theme: "deep-sea"},
		{ID: "deep-sea:scene", Theme: "deep-sea"},
	}})
	reg.RegisterTheme(catalog.Theme{Name: "reef", Pieces: []catalog.Piece{
		{ID: "reef:shark", Theme: "reef"},
		{ID: "reef:sea", Theme: "reef"},
	}})
	return reg
}

func TestResolvePieceID(t *testing.T) {
	reg := testRegistry()

	tests := []struct {
		name     string
		ref      string
		expected string
	}{
		{"full id", "deep-sea:anglerfish", "deep-sea:anglerfish"},
		{"local name", "anglerfish", "deep-sea:anglerfish"},
		{"local name ignores case", "AnglerFish", "deep-sea:anglerfish"},
		{"local name prefix", "angl", "deep-sea:anglerfish"},
		{"full id prefix", "deep-sea:ang", "deep-sea:anglerfish"},
		{"exact local name beats longer prefix matches", "sea", "reef:sea"},
		{"surrounding whitespace", "  reef:shark ", "reef:shark"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			id, err := ResolvePieceID(reg, tc.ref)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, id)
		})
	}
}

func TestResolvePieceIDErrors(t *testing.T) {
	reg := testRegistry()

	t.Run("local name in two themes is ambiguous", func(t *testing.T) {
		_, err := ResolvePieceID(reg, "shark")
		require.Error(t, err)
		assert.True(t, IsAmbiguousError(err))

		var amb *AmbiguousError
		require.ErrorAs(t, err, &amb)
		assert.Equal(t, []string{"deep-sea:shark", "reef:shark"}, amb.Matches)
	})

	t.Run("shared prefix is ambiguous", func(t *testing.T) {
		_, err := ResolvePieceID(reg, "shar")
		require.Error(t, err)
		assert.True(t, IsAmbiguousError(err))
		assert.False(t, IsNotFoundError(err))
	})

	t.Run("no match", func(t *testing.T) {
		_, err := ResolvePieceID(reg, "kraken")
		require.Error(t, err)
		assert.True(t, IsNotFoundError(err))
		assert.Contains(t, err.Error(), "kraken")
	})

	t.Run("short refs are not used as prefixes", func(t *testing.T) {
		_, err := ResolvePieceID(reg, "an")
		assert.True(t, IsNotFoundError(err))
	})

	t.Run("empty ref", func(t *testing.T) {
		_, err := ResolvePieceID(reg, "  ")
		require.Error(t, err)
		assert.False(t, IsNotFoundError(err))
	})

	t.Run("wrapped errors are still detected", func(t *testing.T) {
		_, err := ResolvePieceID(reg, "kraken")
		assert.True(t, IsNotFoundError(fmt.Errorf("failed to resolve: %w", err)))
	})
}

func TestFormatAmbiguousError(t *testing.T) {
	t.Run("lists every match", func(t *testing.T) {
		msg := FormatAmbiguousError(&AmbiguousError{Ref: "shark", Matches: []string{"deep-sea:shark", "reef:shark"}})
		assert.Contains(t, msg, "ambiguous reference 'shark' matches 2 pieces")
		assert.Contains(t, msg, "  deep-sea:shark\n")
		assert.Contains(t, msg, "  reef:shark\n")
		assert.NotContains(t, msg, "more")
	})

	t.Run("truncates long lists", func(t *testing.T) {
		matches := make([]string, 13)
		for i := range matches {
			matches[i] = fmt.Sprintf("t:p%02d", i)
		}
		msg := FormatAmbiguousError(&AmbiguousError{Ref: "p", Matches: matches})
		assert.Equal(t, 10, strings.Count(msg, "  t:p"))
		assert.Contains(t, msg, "...and 3 more")
	})
}
