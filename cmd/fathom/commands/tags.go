package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dyluth/fathom/internal/listing"
	"github.com/dyluth/fathom/internal/printer"
)

var tagsJSON bool

var tagsCmd = &cobra.Command{
	Use:   "tags THEME",
	Short: "Describe the tags used in a theme",
	Long: `List every tag name used by the pieces of a theme, its inferred type
(boolean, string[] or string) and the distinct values seen.

Examples:
  fathom tags deep-sea
  fathom tags deep-sea --json`,
	Args: cobra.ExactArgs(1),
	RunE: runTags,
}

func init() {
	tagsCmd.Flags().BoolVar(&tagsJSON, "json", false, "Output tag metadata as JSON")
	rootCmd.AddCommand(tagsCmd)
}

func runTags(cmd *cobra.Command, args []string) error {
	theme := args[0]
	if !registry.HasTheme(theme) {
		return printer.Error(
			fmt.Sprintf("theme '%s' not found", theme),
			"The theme is not registered.",
			[]string{"List registered themes:\n  fathom themes"},
		)
	}

	infos := registry.TagMetadata(theme)
	if tagsJSON {
		return listing.FormatSingleJSON(cmd.OutOrStdout(), infos)
	}

	listing.FormatTagMetadata(cmd.OutOrStdout(), theme, infos)
	return nil
}
