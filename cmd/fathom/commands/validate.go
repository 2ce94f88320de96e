package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dyluth/fathom/internal/listing"
	"github.com/dyluth/fathom/internal/printer"
	"github.com/dyluth/fathom/pkg/validate"
)

var (
	validateTheme string
	validateJSON  bool
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the catalog for authoring problems",
	Long: `Run the catalog checks:

  library - duplicate IDs, required fields, theme references
  themes  - per-theme piece completeness, rendering advice, creature presence
  zoom    - rendering advice for every zoom variant

Errors make the command exit non-zero. Warnings are advisory.

Examples:
  fathom validate
  fathom validate --theme deep-sea
  fathom validate --themes-dir ./my-themes --json`,
	Args: cobra.NoArgs,
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().StringVarP(&validateTheme, "theme", "t", "", "Only check one theme")
	validateCmd.Flags().BoolVar(&validateJSON, "json", false, "Output findings as JSON")
	rootCmd.AddCommand(validateCmd)
}

// themeReport pairs a theme with its check results.
type themeReport struct {
	Theme  string          `json:"theme"`
	Result validate.Result `json:"result"`
}

// zoomReport pairs a piece with its zoom variant advice.
type zoomReport struct {
	PieceID  string            `json:"piece_id"`
	Advisory validate.Advisory `json:"advisory"`
}

// validationReport is the complete output of a validate run.
type validationReport struct {
	Library *validate.Result `json:"library,omitempty"` // Omitted when --theme is given
	Themes  []themeReport    `json:"themes"`
	Zoom    []zoomReport     `json:"zoom"` // Only pieces with zoom warnings
}

func (r validationReport) counts() (errs, warnings int) {
	if r.Library != nil {
		errs += len(r.Library.Errors)
		warnings += len(r.Library.Warnings)
	}
	for _, t := range r.Themes {
		errs += len(t.Result.Errors)
		warnings += len(t.Result.Warnings)
	}
	for _, z := range r.Zoom {
		warnings += len(z.Advisory.Warnings)
	}
	return errs, warnings
}

func buildReport(theme string) validationReport {
	report := validationReport{Themes: []themeReport{}, Zoom: []zoomReport{}}

	names := []string{theme}
	if theme == "" {
		lib := validate.Library(registry)
		report.Library = &lib
		names = registry.GetThemes()
	}

	for _, name := range names {
		report.Themes = append(report.Themes, themeReport{
			Theme:  name,
			Result: validate.ThemePieces(registry, name),
		})
		for _, p := range registry.GetByTheme(name) {
			if adv := validate.ZoomVariants(p); !adv.Valid() {
				report.Zoom = append(report.Zoom, zoomReport{PieceID: p.ID, Advisory: adv})
			}
		}
	}
	return report
}

func runValidate(cmd *cobra.Command, args []string) error {
	report := buildReport(validateTheme)
	errs, warnings := report.counts()

	if validateJSON {
		if err := listing.FormatSingleJSON(cmd.OutOrStdout(), report); err != nil {
			return fmt.Errorf("failed to format report: %w", err)
		}
	} else {
		printReport(report)
	}

	if errs > 0 {
		return printer.Error(
			"validation failed",
			fmt.Sprintf("%d error(s) and %d warning(s) found.", errs, warnings),
			[]string{"Fix the errors listed above and run fathom validate again."},
		)
	}

	if !validateJSON {
		printer.Success("Catalog is valid (%d warning(s))\n", warnings)
	}
	return nil
}

func printReport(report validationReport) {
	if report.Library != nil {
		printer.Findings("Library", report.Library.Errors, report.Library.Warnings)
	}
	for _, t := range report.Themes {
		printer.Findings(fmt.Sprintf("Theme %s", t.Theme), t.Result.Errors, t.Result.Warnings)
	}

	var zoomWarnings []string
	for _, z := range report.Zoom {
		zoomWarnings = append(zoomWarnings, z.Advisory.Warnings...)
	}
	printer.Findings("Zoom variants", nil, zoomWarnings)
}
