package commands

import (
	"github.com/spf13/cobra"

	"github.com/dyluth/fathom/internal/printer"
	"github.com/dyluth/fathom/internal/scaffold"
)

var (
	forceInit bool
)

var initCmd = &cobra.Command{
	Use:   "init [DIR]",
	Short: "Initialize a new fathom project",
	Long: `Initialize a new fathom project with default configuration and an example theme.

Creates:
  • fathom.yml - Project configuration file
  • themes/example/ - Example theme with one piece kept in sidecar art files

DIR defaults to the current directory.

Use --force to reinitialize an existing project (WARNING: overwrites fathom.yml and themes/example/).`,
	Args: cobra.MaximumNArgs(1),
	// The project being created has no catalog to load yet
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return nil
	},
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&forceInit, "force", false, "Force reinitialization (removes existing fathom.yml and themes/example/)")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}

	// Check for existing files (unless --force)
	if !forceInit {
		if err := scaffold.CheckExisting(dir); err != nil {
			return printer.Error(
				"project already initialized",
				err.Error(),
				nil,
			)
		}
	}

	if err := scaffold.Initialize(dir, forceInit); err != nil {
		return printer.Error(
			"initialization failed",
			err.Error(),
			nil,
		)
	}

	scaffold.PrintSuccess()

	return nil
}
