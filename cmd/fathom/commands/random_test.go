package commands

import (
	"encoding/json"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomCommand(t *testing.T) {
	t.Run("seed makes the choice repeatable", func(t *testing.T) {
		first, _, err := executeCommand(t, "random", "deep-sea", "--seed", "7")
		require.NoError(t, err)
		for range 3 {
			again, _, err := executeCommand(t, "random", "deep-sea", "--seed", "7")
			require.NoError(t, err)
			assert.Equal(t, first, again)
		}
	})

	t.Run("seed from config", func(t *testing.T) {
		configPath := writeFile(t, t.TempDir(), "fathom.yml", "version: \"1.0\"\nseed: 7\n")
		fromConfig, _, err := executeCommand(t, "random", "deep-sea", "--config", configPath)
		require.NoError(t, err)
		fromFlag, _, err := executeCommand(t, "random", "deep-sea", "--seed", "7")
		require.NoError(t, err)
		assert.Equal(t, fromFlag, fromConfig)
	})

	t.Run("filters restrict candidates", func(t *testing.T) {
		for seed := range 10 {
			out, _, err := executeCommand(t, "random", "--category", "structure", "--tag", "size=large", "--json", "--seed", strconv.Itoa(seed))
			require.NoError(t, err)

			var piece map[string]any
			require.NoError(t, json.Unmarshal([]byte(out), &piece))
			assert.Equal(t, "deep-sea:submarine", piece["id"])
		}
	})

	t.Run("any theme", func(t *testing.T) {
		out, _, err := executeCommand(t, "random")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(out, "deep-sea:"))
	})
}

func TestRandomCommand_Errors(t *testing.T) {
	t.Run("unknown theme", func(t *testing.T) {
		_, stderr, err := executeCommand(t, "random", "kelp")
		require.Error(t, err)
		assert.Equal(t, "no matching pieces", err.Error())
		assert.Contains(t, stderr, "fathom themes")
	})

	t.Run("no piece matches", func(t *testing.T) {
		_, stderr, err := executeCommand(t, "random", "deep-sea", "--category", "scene")
		require.Error(t, err)
		assert.Equal(t, "no matching pieces", err.Error())
		assert.Contains(t, stderr, "fathom list")
	})

	t.Run("invalid tag", func(t *testing.T) {
		_, _, err := executeCommand(t, "random", "--tag", "=x")
		require.Error(t, err)
		assert.Equal(t, "invalid filter", err.Error())
	})

	t.Run("too many arguments", func(t *testing.T) {
		_, _, err := executeCommand(t, "random", "deep-sea", "kelp")
		assert.Error(t, err)
	})
}
