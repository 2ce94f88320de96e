package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dyluth/fathom/internal/filter"
	"github.com/dyluth/fathom/internal/listing"
	"github.com/dyluth/fathom/internal/printer"
)

var (
	randomCategory string
	randomTags     []string
	randomSeed     uint64
	randomJSON     bool
)

var randomCmd = &cobra.Command{
	Use:   "random [THEME]",
	Short: "Show a randomly chosen piece",
	Long: `Pick one piece uniformly at random from the pieces matching the filters.

Without THEME every piece in the catalog is a candidate. --seed (or seed in
fathom.yml) makes the choice repeatable.

Examples:
  fathom random
  fathom random deep-sea --category creature
  fathom random deep-sea --tag bioluminescence=true --seed 7`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRandom,
}

func init() {
	randomCmd.Flags().StringVarP(&randomCategory, "category", "c", "", "Filter by category (creature, structure, environment, scene)")
	randomCmd.Flags().StringArrayVar(&randomTags, "tag", nil, "Filter by tag NAME=VALUE (repeatable)")
	randomCmd.Flags().Uint64Var(&randomSeed, "seed", 0, "Seed for a repeatable choice")
	randomCmd.Flags().BoolVar(&randomJSON, "json", false, "Output the complete piece as JSON")
	rootCmd.AddCommand(randomCmd)
}

func runRandom(cmd *cobra.Command, args []string) error {
	criteria := &filter.Criteria{
		Category: randomCategory,
		Tags:     randomTags,
	}
	if len(args) == 1 {
		criteria.Theme = args[0]
	}

	q, err := criteria.Query()
	if err != nil {
		return printer.Error(
			"invalid filter",
			err.Error(),
			[]string{"Tag filters look like --tag mood=eerie, --tag bioluminescence=true or --tag mood=calm,eerie"},
		)
	}

	p, ok := registry.RandomFromQuery(q)
	if !ok {
		suggestions := []string{"List matching pieces:\n  fathom list"}
		if criteria.Theme != "" && !registry.HasTheme(criteria.Theme) {
			suggestions = []string{"List registered themes:\n  fathom themes"}
		}
		return printer.Error(
			"no matching pieces",
			"No piece matches the given theme and filters.",
			suggestions,
		)
	}

	if randomJSON {
		if err := listing.FormatSingleJSON(cmd.OutOrStdout(), p); err != nil {
			return fmt.Errorf("failed to format piece: %w", err)
		}
		return nil
	}

	listing.FormatPiece(cmd.OutOrStdout(), p, p.Art)
	return nil
}
