package listing

import (
	"fmt"
	"io"
	"strings"

	"github.com/dyluth/fathom/internal/resolver"
	"github.com/dyluth/fathom/pkg/catalog"
)

// ShowOptions controls how ShowPiece renders a piece.
type ShowOptions struct {
	Zoom catalog.ZoomLevel // Render this zoom level instead of the primary art
	JSON bool              // Write the piece as pretty-printed JSON
}

// ShowPiece resolves a piece reference and writes the piece to w.
// Resolution errors from the resolver package are returned unwrapped so
// callers can inspect them; a missing zoom level is a *ZoomNotFoundError.
func ShowPiece(reg *catalog.Registry, ref string, opts ShowOptions, w io.Writer) error {
	id, err := resolver.ResolvePieceID(reg, ref)
	if err != nil {
		return err
	}

	p, ok := reg.GetByID(id)
	if !ok {
		return &resolver.NotFoundError{Ref: ref}
	}

	art := p.Art
	if opts.Zoom != "" {
		art = p.Zoom.Art(opts.Zoom)
		if art == "" {
			return &ZoomNotFoundError{PieceID: p.ID, Level: opts.Zoom}
		}
	}

	if opts.JSON {
		if err := FormatSingleJSON(w, p); err != nil {
			return fmt.Errorf("failed to format piece: %w", err)
		}
		return nil
	}

	FormatPiece(w, p, art)
	return nil
}

// FormatPiece writes a human-readable view of a piece with the given art.
func FormatPiece(w io.Writer, p catalog.Piece, art string) {
	fmt.Fprintf(w, "%s  %s  [%s]\n\n", p.ID, p.Label(), formatCategory(p.Category))
	fmt.Fprintln(w, art)
	fmt.Fprintln(w)

	field := func(label, value string) {
		if value != "" {
			fmt.Fprintf(w, "%-16s %s\n", label+":", value)
		}
	}

	field("Description", p.Description)
	field("Why it works", p.WhyEffective)
	field("Key characters", strings.Join(p.KeyCharacters, " "))
	field("Techniques", strings.Join(p.Techniques, ", "))
	if p.Tags.Len() > 0 {
		field("Tags", formatTags(p.Tags))
	}
	field("Zoom levels", zoomLevels(p.Zoom))

	if len(p.BuildingBlocks) > 0 {
		fmt.Fprintln(w, "Building blocks:")
		for _, b := range p.BuildingBlocks {
			fmt.Fprintf(w, "  - %s\n", b)
		}
	}
}

func zoomLevels(z *catalog.Zoom) string {
	var levels []string
	for level, art := range z.Levels() {
		if art != "" {
			levels = append(levels, string(level))
		}
	}
	return strings.Join(levels, ", ")
}

// ZoomNotFoundError indicates the piece has no art at the requested zoom level.
type ZoomNotFoundError struct {
	PieceID string
	Level   catalog.ZoomLevel
}

func (e *ZoomNotFoundError) Error() string {
	return fmt.Sprintf("piece '%s' has no '%s' zoom level", e.PieceID, e.Level)
}
