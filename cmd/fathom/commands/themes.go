package commands

import (
	"github.com/spf13/cobra"

	"github.com/dyluth/fathom/internal/listing"
	"github.com/dyluth/fathom/pkg/catalog"
)

var themesJSON bool

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List registered themes",
	Long: `List every registered theme in registration order with its piece count,
the categories it uses and its description.

Examples:
  fathom themes
  fathom themes --themes-dir ./my-themes
  fathom themes --json`,
	Args: cobra.NoArgs,
	RunE: runThemes,
}

func init() {
	themesCmd.Flags().BoolVar(&themesJSON, "json", false, "Output themes as JSON (without pieces)")
	rootCmd.AddCommand(themesCmd)
}

// themeSummary is the JSON form of a theme in the themes listing.
type themeSummary struct {
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Pieces      int                `json:"pieces"`
	Categories  []catalog.Category `json:"categories"`
}

func runThemes(cmd *cobra.Command, args []string) error {
	stats := registry.Stats()

	if themesJSON {
		summaries := make([]themeSummary, 0, len(stats.Themes))
		for _, ts := range stats.Themes {
			t, _ := registry.GetTheme(ts.Name)
			summaries = append(summaries, themeSummary{
				Name:        ts.Name,
				Description: t.Description,
				Pieces:      ts.PieceCount,
				Categories:  ts.Categories,
			})
		}
		return listing.FormatSingleJSON(cmd.OutOrStdout(), summaries)
	}

	list := make([]catalog.Theme, 0, len(stats.Themes))
	for _, name := range registry.GetThemes() {
		t, _ := registry.GetTheme(name)
		list = append(list, t)
	}
	listing.FormatThemes(cmd.OutOrStdout(), list, stats)
	return nil
}
