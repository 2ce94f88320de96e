package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagMetadata(t *testing.T) {
	t.Run("infers types and collects distinct values", func(t *testing.T) {
		reg := seededRegistry(t)
		meta := reg.TagMetadata("deep-sea")

		require.Len(t, meta, 3)
		assert.Equal(t, TagInfo{
			Name:   TagMood,
			Type:   "string[]",
			Values: []TagValue{Text("predatory"), Text("eerie"), Text("majestic"), Text("powerful"), Text("alive"), Text("diverse")},
		}, meta[0])
		assert.Equal(t, TagInfo{
			Name:   TagSize,
			Type:   "string",
			Values: []TagValue{Text("medium"), Text("large")},
		}, meta[1])
		assert.Equal(t, TagInfo{
			Name:   TagBioluminescence,
			Type:   "boolean",
			Values: []TagValue{Flag(true), Flag(false)},
		}, meta[2])
	})

	t.Run("any flag makes the tag boolean, any list makes it string[]", func(t *testing.T) {
		reg := NewRegistry()
		reg.RegisterTheme(Theme{Name: "mixed", Pieces: []Piece{
			newTestPiece("mixed", "a", CategoryCreature, NewTags().Set("glow", Text("faint")).Set("mood", Text("calm"))),
			newTestPiece("mixed", "b", CategoryCreature, NewTags().Set("glow", Flag(true)).Set("mood", List("calm", "eerie"))),
		}})

		meta := reg.TagMetadata("mixed")
		require.Len(t, meta, 2)
		assert.Equal(t, "boolean", meta[0].Type)
		assert.Equal(t, []TagValue{Text("faint"), Flag(true)}, meta[0].Values)
		assert.Equal(t, "string[]", meta[1].Type)
		assert.Equal(t, []TagValue{Text("calm"), Text("eerie")}, meta[1].Values)
	})

	t.Run("unknown theme and nil tag bags", func(t *testing.T) {
		reg := NewRegistry()
		reg.RegisterTheme(Theme{Name: "bare", Pieces: []Piece{newTestPiece("bare", "a", CategoryCreature, nil)}})
		assert.Empty(t, reg.TagMetadata("bare"))
		assert.Empty(t, reg.TagMetadata("missing"))
	})
}
