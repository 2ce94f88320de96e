package commands

import (
	"fmt"
	"math/rand/v2"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dyluth/fathom/internal/config"
	"github.com/dyluth/fathom/internal/logging"
	"github.com/dyluth/fathom/internal/printer"
	"github.com/dyluth/fathom/internal/themes"
	"github.com/dyluth/fathom/pkg/catalog"
)

var (
	version string
	commit  string
	date    string
)

var (
	configPath string
	themeDirs  []string
	debug      bool
)

// State built by the root command before any subcommand runs.
var (
	cfg      *config.FathomConfig
	logger   = zap.NewNop()
	registry *catalog.Registry
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "fathom",
	Short: "Fathom - Browse a catalog of themed ASCII art",
	Long: `Fathom is a catalog of curated ASCII art pieces grouped into themes.

Every piece carries its art, an explanation of why it works, the characters
and techniques it is built from, descriptive tags and optional zoom variants.
The built-in deep-sea theme is always loaded; more themes can be added from
YAML files with --themes-dir or the theme_dirs setting in fathom.yml.`,
	Version: version,
	// Show help rather than silently succeeding when no subcommand is given
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadCatalog(cmd)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
	// Enable strict flag parsing - unknown flags will cause an error
	FParseErrWhitelist: cobra.FParseErrWhitelist{},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	// Silence Cobra's default error and usage printing
	// We print formatted colored errors directly in the printer package
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
	return rootCmd.Execute()
}

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", v, c, d)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to fathom.yml (default: ./fathom.yml if present)")
	rootCmd.PersistentFlags().StringArrayVar(&themeDirs, "themes-dir", nil, "Additional theme directory (repeatable)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
}

// loadCatalog reads configuration, builds the logger and fills the registry
// with the built-in themes followed by configured and flagged directories.
func loadCatalog(cmd *cobra.Command) error {
	var err error
	cfg, err = config.LoadOrDefault(configPath)
	if err != nil {
		return printer.Error(
			"invalid configuration",
			err.Error(),
			[]string{"Check fathom.yml against the documented fields: version, theme_dirs, output, seed, log_level, export"},
		)
	}

	logger, err = logging.New(cfg.LogLevel, debug)
	if err != nil {
		return err
	}

	opts := []catalog.Option{catalog.WithLogger(logger)}
	if seed, ok := selectionSeed(cmd); ok {
		opts = append(opts, catalog.WithRand(rand.New(rand.NewPCG(seed, seed))))
	}
	registry = catalog.NewRegistry(opts...)

	if err := themes.RegisterDefaults(registry, logger); err != nil {
		return fmt.Errorf("failed to load built-in themes: %w", err)
	}

	dirs := append(append([]string{}, cfg.ThemeDirs...), themeDirs...)
	if err := themes.RegisterDirs(registry, dirs, logger); err != nil {
		return printer.Error(
			"failed to load themes",
			err.Error(),
			[]string{"Check the theme files, then run:\n  fathom validate"},
		)
	}

	logger.Debug("Catalog loaded",
		zap.Int("themes", len(registry.GetThemes())),
		zap.Int("pieces", registry.Len()))
	return nil
}

// selectionSeed returns the seed for random selection. An explicit --seed
// on the random command wins over the configured seed.
func selectionSeed(cmd *cobra.Command) (uint64, bool) {
	if cmd == randomCmd && cmd.Flags().Changed("seed") {
		return randomSeed, true
	}
	if cfg.Seed != nil {
		return *cfg.Seed, true
	}
	return 0, false
}
