package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dyluth/fathom/internal/listing"
	"github.com/dyluth/fathom/internal/printer"
	"github.com/dyluth/fathom/internal/resolver"
	"github.com/dyluth/fathom/pkg/catalog"
)

var (
	showZoom string
	showJSON bool
)

var showCmd = &cobra.Command{
	Use:   "show PIECE",
	Short: "Show a single piece",
	Long: `Show one piece with its art and authoring notes.

PIECE may be the full ID (deep-sea:anglerfish), the name after the theme
prefix (anglerfish) when it is unique, or a unique prefix of at least 3
characters of either (angl).

Examples:
  fathom show anglerfish
  fathom show deep-sea:jelly --zoom far
  fathom show submarine --json | jq .tags`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	showCmd.Flags().StringVarP(&showZoom, "zoom", "z", "", "Render a zoom level instead of the primary art (far, medium, close)")
	showCmd.Flags().BoolVar(&showJSON, "json", false, "Output the complete piece as JSON")
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	ref := args[0]

	opts := listing.ShowOptions{JSON: showJSON}
	if showZoom != "" {
		level, err := catalog.ParseZoomLevel(showZoom)
		if err != nil {
			return printer.Error("invalid zoom level", err.Error(), nil)
		}
		opts.Zoom = level
	}

	err := listing.ShowPiece(registry, ref, opts, cmd.OutOrStdout())
	if err == nil {
		return nil
	}

	if resolver.IsNotFoundError(err) {
		return printer.Error(
			fmt.Sprintf("piece '%s' not found", ref),
			"No piece ID or name matches the reference.",
			[]string{
				"List all pieces:\n  fathom list",
				"Search one theme:\n  fathom list --theme deep-sea",
			},
		)
	}

	var ambigErr *resolver.AmbiguousError
	if errors.As(err, &ambigErr) {
		fmt.Fprintln(cmd.ErrOrStderr(), resolver.FormatAmbiguousError(ambigErr))
		return fmt.Errorf("ambiguous piece reference")
	}

	var zoomErr *listing.ZoomNotFoundError
	if errors.As(err, &zoomErr) {
		p, _ := registry.GetByID(zoomErr.PieceID)
		var available []string
		for level, art := range p.Zoom.Levels() {
			if art != "" {
				available = append(available, string(level))
			}
		}
		suggestion := "This piece has no zoom variants; omit --zoom to see its art."
		if len(available) > 0 {
			suggestion = fmt.Sprintf("Available zoom levels: %s", strings.Join(available, ", "))
		}
		return printer.Error(zoomErr.Error(), "The requested zoom level is not defined for this piece.", []string{suggestion})
	}

	return fmt.Errorf("failed to show piece: %w", err)
}
