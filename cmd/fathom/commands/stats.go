package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dyluth/fathom/internal/listing"
	"github.com/dyluth/fathom/internal/metrics"
)

var (
	statsPrometheus bool
	statsJSON       bool
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show catalog statistics",
	Long: `Show piece counts and categories per theme.

With --prometheus the same numbers are written in the Prometheus text
exposition format, suitable for a node_exporter textfile collector.

Examples:
  fathom stats
  fathom stats --prometheus > /var/lib/node_exporter/fathom.prom`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func init() {
	statsCmd.Flags().BoolVar(&statsPrometheus, "prometheus", false, "Output Prometheus text format")
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "Output statistics as JSON")
	statsCmd.MarkFlagsMutuallyExclusive("prometheus", "json")
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	switch {
	case statsPrometheus:
		if err := metrics.WriteText(cmd.OutOrStdout(), registry); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
	case statsJSON:
		return listing.FormatSingleJSON(cmd.OutOrStdout(), registry.Stats())
	default:
		listing.FormatStats(cmd.OutOrStdout(), registry.Stats())
	}
	return nil
}
