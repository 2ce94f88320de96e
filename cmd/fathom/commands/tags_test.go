package commands

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagsCommand(t *testing.T) {
	t.Run("table", func(t *testing.T) {
		out, _, err := executeCommand(t, "tags", "deep-sea")
		require.NoError(t, err)
		assert.Contains(t, out, "Tags in theme 'deep-sea':")
		assert.Contains(t, out, "bioluminescence")
		assert.Contains(t, out, "true, false")
	})

	t.Run("json", func(t *testing.T) {
		out, _, err := executeCommand(t, "tags", "deep-sea", "--json")
		require.NoError(t, err)

		var infos []struct {
			Name   string `json:"name"`
			Type   string `json:"type"`
			Values []any  `json:"values"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &infos))

		types := make(map[string]string, len(infos))
		for _, info := range infos {
			types[info.Name] = info.Type
		}
		assert.Equal(t, "string[]", types["mood"])
		assert.Equal(t, "string", types["size"])
		assert.Equal(t, "boolean", types["bioluminescence"])
	})

	t.Run("theme without tags", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "empty.yaml", "name: empty\npieces: []\n")
		out, _, err := executeCommand(t, "tags", "empty", "--themes-dir", dir)
		require.NoError(t, err)
		assert.Equal(t, "No tags found in theme 'empty'\n", out)
	})

	t.Run("unknown theme", func(t *testing.T) {
		_, stderr, err := executeCommand(t, "tags", "kelp")
		require.Error(t, err)
		assert.Equal(t, "theme 'kelp' not found", err.Error())
		assert.Contains(t, stderr, "fathom themes")
	})
}
