package commands

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/dyluth/fathom/internal/printer"
	"github.com/dyluth/fathom/internal/watch"
)

var (
	watchRedisURL     string
	watchInstance     string
	watchOutputFormat string
	watchCount        int
	watchTimeout      time.Duration
	watchPoll         bool
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Follow catalog snapshots published to Redis",
	Long: `Print every catalog snapshot published to an export instance as it happens.

By default the command subscribes to fathom:{instance}:snapshot_events.
With --poll it instead checks the stored snapshot every 200ms, which also
works through proxies that do not forward Pub/Sub.

Output Formats:
  default - Human-readable output with timestamps and emojis
  json    - Line-delimited JSON for programmatic processing

Examples:
  # Follow the default instance until interrupted
  fathom watch --redis-url redis://localhost:6379/0

  # Wait for the next snapshot of one instance, for at most a minute
  fathom watch --instance studio --count 1 --timeout 1m

  # Export events as JSON
  fathom watch --output=json > snapshots.jsonl`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&watchRedisURL, "redis-url", "", "Redis URL (default from fathom.yml export.redis_url)")
	watchCmd.Flags().StringVarP(&watchInstance, "instance", "n", "", "Key namespace (default from fathom.yml, else \"default\")")
	watchCmd.Flags().StringVarP(&watchOutputFormat, "output", "o", "default", "Output format (default or json)")
	watchCmd.Flags().IntVar(&watchCount, "count", 0, "Exit after this many snapshots (0 = no limit)")
	watchCmd.Flags().DurationVar(&watchTimeout, "timeout", 0, "Exit after this long (0 = no limit)")
	watchCmd.Flags().BoolVar(&watchPoll, "poll", false, "Poll the stored snapshot instead of subscribing")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	var outputFormat watch.OutputFormat
	switch watchOutputFormat {
	case "default":
		outputFormat = watch.OutputFormatDefault
	case "json":
		outputFormat = watch.OutputFormatJSON
	default:
		return printer.Error(
			"invalid output format",
			fmt.Sprintf("Unknown format: %s", watchOutputFormat),
			[]string{"Valid formats: default, json"},
		)
	}
	if watchCount < 0 {
		return printer.Error("invalid count", "--count must be 0 or more.", nil)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if watchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, watchTimeout)
		defer cancel()
	}

	client, err := connectExport(ctx, cmd.Name(), watchRedisURL, watchInstance)
	if err != nil {
		return err
	}
	defer client.Close()

	opts := watch.Options{Format: outputFormat, Limit: watchCount, Logger: logger}

	if watchPoll {
		_, err = watch.Poll(ctx, client, cmd.OutOrStdout(), opts)
		return err
	}

	sub, err := client.SubscribeSnapshotEvents(ctx)
	if err != nil {
		return fmt.Errorf("failed to watch snapshots: %w", err)
	}
	defer sub.Close()

	_, err = watch.Stream(ctx, sub, cmd.OutOrStdout(), opts)
	return err
}
