package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dyluth/fathom/internal/filter"
	"github.com/dyluth/fathom/internal/listing"
	"github.com/dyluth/fathom/internal/printer"
)

var (
	listTheme        string
	listCategory     string
	listTags         []string
	listLimit        int
	listOutputFormat string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List pieces with filtering",
	Long: `List catalog pieces matching every given filter.

With --theme, results follow the theme's authoring order. Without it, all
pieces are listed in the order they were first registered.

Tag filters (--tag NAME=VALUE, repeatable):
  NAME=true / NAME=false  - boolean flag
  NAME=a,b                - matches when the piece shares any value
  NAME=value              - single value

Output Formats:
  table - Human-readable table with ID, Category, Name and Tags
  jsonl - Line-delimited JSON, one complete piece per line

Examples:
  # All creatures in the deep sea
  fathom list --theme deep-sea --category creature

  # Glowing, eerie pieces as JSON lines
  fathom list --tag bioluminescence=true --tag mood=eerie -o jsonl`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVarP(&listTheme, "theme", "t", "", "Restrict to one theme")
	listCmd.Flags().StringVarP(&listCategory, "category", "c", "", "Filter by category (creature, structure, environment, scene)")
	listCmd.Flags().StringArrayVar(&listTags, "tag", nil, "Filter by tag NAME=VALUE (repeatable)")
	listCmd.Flags().IntVarP(&listLimit, "limit", "l", 0, "Maximum number of pieces (0 = all)")
	listCmd.Flags().StringVarP(&listOutputFormat, "output", "o", "", "Output format: table or jsonl (default from fathom.yml, else table)")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	formatName := listOutputFormat
	if formatName == "" {
		formatName = cfg.Output
	}
	format, err := listing.ParseOutputFormat(formatName)
	if err != nil {
		return printer.Error(
			"invalid output format",
			fmt.Sprintf("Unknown format: %s", formatName),
			[]string{"Valid formats: table, jsonl"},
		)
	}

	criteria := &filter.Criteria{
		Theme:    listTheme,
		Category: listCategory,
		Tags:     listTags,
		Limit:    listLimit,
	}
	q, err := criteria.Query()
	if err != nil {
		return printer.Error(
			"invalid filter",
			err.Error(),
			[]string{"Tag filters look like --tag mood=eerie, --tag bioluminescence=true or --tag mood=calm,eerie"},
		)
	}

	return listing.ListPieces(registry, q, format, cmd.OutOrStdout())
}
