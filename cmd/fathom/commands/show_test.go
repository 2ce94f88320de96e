package commands

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShowCommand(t *testing.T) {
	t.Run("by local name", func(t *testing.T) {
		out, _, err := executeCommand(t, "show", "anglerfish")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(out, "deep-sea:anglerfish  Anglerfish  [creature]\n"))
		assert.Contains(t, out, "Zoom levels:     far, medium, close\n")
		assert.Contains(t, out, "Building blocks:\n")
	})

	t.Run("by prefix with zoom", func(t *testing.T) {
		out, _, err := executeCommand(t, "show", "angl", "--zoom", "far")
		require.NoError(t, err)
		assert.Contains(t, out, "      ~  ><>  ~\n")
	})

	t.Run("json", func(t *testing.T) {
		out, _, err := executeCommand(t, "show", "deep-sea:submarine", "--json")
		require.NoError(t, err)

		var piece map[string]any
		require.NoError(t, json.Unmarshal([]byte(out), &piece))
		assert.Equal(t, "deep-sea:submarine", piece["id"])
		assert.Equal(t, "structure", piece["category"])
		assert.NotContains(t, piece, "zoom")
	})
}

func TestShowCommand_Errors(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		_, stderr, err := executeCommand(t, "show", "kraken")
		require.Error(t, err)
		assert.Equal(t, "piece 'kraken' not found", err.Error())
		assert.Contains(t, stderr, "fathom list")
	})

	t.Run("ambiguous", func(t *testing.T) {
		_, stderr, err := executeCommand(t, "show", "deep-sea:s")
		require.Error(t, err)
		assert.Equal(t, "ambiguous piece reference", err.Error())
		assert.Contains(t, stderr, "deep-sea:shark")
		assert.Contains(t, stderr, "deep-sea:submarine")
		assert.Contains(t, stderr, "Use the full <theme>:<name> ID to pick one.")
	})

	t.Run("missing zoom level", func(t *testing.T) {
		_, stderr, err := executeCommand(t, "show", "submarine", "--zoom", "far")
		require.Error(t, err)
		assert.Equal(t, "piece 'deep-sea:submarine' has no 'far' zoom level", err.Error())
		assert.Contains(t, stderr, "no zoom variants")
	})

	t.Run("invalid zoom level", func(t *testing.T) {
		_, stderr, err := executeCommand(t, "show", "anglerfish", "--zoom", "huge")
		require.Error(t, err)
		assert.Equal(t, "invalid zoom level", err.Error())
		assert.Contains(t, stderr, "unknown zoom level")
	})

	t.Run("requires a reference", func(t *testing.T) {
		_, _, err := executeCommand(t, "show")
		assert.Error(t, err)
	})
}
