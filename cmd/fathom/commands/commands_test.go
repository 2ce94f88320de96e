package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/dyluth/fathom/internal/printer"
)

// resetFlags restores every flag in the tree to its default so that
// consecutive executions of the shared rootCmd do not leak state.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// executeCommand runs the CLI with args from an empty working directory and
// returns everything written to stdout and stderr.
func executeCommand(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	t.Chdir(t.TempDir())

	prevNoColor := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = prevNoColor }()

	var out, errOut bytes.Buffer
	restore := printer.SetOutput(&out, &errOut)
	defer restore()

	resetFlags(rootCmd)
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	err = rootCmd.Execute()
	return out.String(), errOut.String(), err
}

// writeFile creates dir/name with content, creating parent directories.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

const kelpTheme = `name: kelp
description: Kelp forest
pieces:
  - id: kelp:otter
    name: Otter
    category: creature
    theme: kelp
    art: "(o.o)\n /|\\"
    description: A floating otter
    why_effective: The face reads at a glance
    key_characters: ['(', 'o', ')']
    building_blocks: ['face: (o.o)']
    techniques: [symmetry]
    tags:
      mood: [playful]
      size: small
      bioluminescence: false
`

const brokenTheme = `name: broken
description: Pieces with authoring mistakes
pieces:
  - id: wrong:thing
    name: Thing
    category: creature
    theme: broken
    art: "x\ny"
`

func lines(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
