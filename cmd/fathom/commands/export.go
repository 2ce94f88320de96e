package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dyluth/fathom/internal/export"
	"github.com/dyluth/fathom/internal/printer"
)

const exportTimeout = 30 * time.Second

var (
	exportRedisURL string
	exportInstance string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Publish a catalog snapshot to Redis",
	Long: `Write every theme and piece to Redis under fathom:{instance}:* and
announce the snapshot on fathom:{instance}:snapshot_events.

The previous snapshot of the same instance is replaced atomically.

Examples:
  fathom export --redis-url redis://localhost:6379/0
  fathom export --redis-url redis://cache:6379/2 --instance studio`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportRedisURL, "redis-url", "", "Redis URL (default from fathom.yml export.redis_url)")
	exportCmd.Flags().StringVarP(&exportInstance, "instance", "n", "", "Key namespace (default from fathom.yml, else \"default\")")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), exportTimeout)
	defer cancel()

	client, err := connectExport(ctx, cmd.Name(), exportRedisURL, exportInstance)
	if err != nil {
		return err
	}
	defer client.Close()

	snapshot, err := client.Publish(ctx, registry)
	if err != nil {
		return fmt.Errorf("failed to export catalog: %w", err)
	}

	printer.Success("Published snapshot %s to instance '%s' (%d themes, %d pieces)\n",
		snapshot.ID, snapshot.Instance, snapshot.Themes, snapshot.Pieces)
	return nil
}

// connectExport opens a client for the Redis URL and instance given on the
// command line, falling back to the export section of fathom.yml, and checks
// the server is reachable.
func connectExport(ctx context.Context, command, redisURL, instanceName string) (*export.Client, error) {
	if redisURL == "" {
		redisURL = cfg.Export.RedisURL
	}
	if redisURL == "" {
		return nil, printer.Error(
			"no Redis URL",
			fmt.Sprintf("'fathom %s' needs a Redis server to connect to.", command),
			[]string{
				fmt.Sprintf("Pass it on the command line:\n  fathom %s --redis-url redis://localhost:6379/0", command),
				"Set export.redis_url in fathom.yml",
			},
		)
	}

	if instanceName == "" {
		instanceName = cfg.Export.Instance
	}
	if err := export.ValidateInstanceName(instanceName); err != nil {
		return nil, printer.Error("invalid instance name", err.Error(), nil)
	}

	client, err := export.NewClientFromURL(redisURL, instanceName, logger)
	if err != nil {
		return nil, printer.Error("invalid Redis URL", err.Error(), []string{"Use the form redis://host:port/db"})
	}

	if err := client.Ping(ctx); err != nil {
		client.Close()
		return nil, printer.ErrorWithContext(
			"Redis connection failed",
			fmt.Sprintf("Could not connect to Redis at %s", redisURL),
			map[string]string{"Error": err.Error()},
			[]string{"Check that the Redis server is running and reachable."},
		)
	}

	return client, nil
}
