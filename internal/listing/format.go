package listing

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/dyluth/fathom/pkg/catalog"
)

// Column widths for the piece table, in terminal cells.
const (
	idWidth       = 30
	categoryWidth = 12
	nameWidth     = 22
	tagsWidth     = 50
)

// FormatTable writes pieces as a formatted table to the provided writer.
// The table includes columns: ID, CATEGORY, NAME and TAGS (truncated).
// scope describes what was listed, e.g. "theme 'deep-sea'"; empty means everything.
// Returns the number of pieces formatted.
func FormatTable(w io.Writer, pieces []catalog.Piece, scope string) int {
	if len(pieces) == 0 {
		if scope == "" {
			fmt.Fprintln(w, "No pieces found")
		} else {
			fmt.Fprintf(w, "No pieces found in %s\n", scope)
		}
		return 0
	}

	if scope == "" {
		fmt.Fprintf(w, "Pieces:\n\n")
	} else {
		fmt.Fprintf(w, "Pieces in %s:\n\n", scope)
	}

	fmt.Fprintf(w, "%s %s %s %s\n",
		cell("ID", idWidth), cell("CATEGORY", categoryWidth), cell("NAME", nameWidth), "TAGS")
	fmt.Fprintf(w, "%s %s %s %s\n",
		strings.Repeat("-", idWidth), strings.Repeat("-", categoryWidth),
		strings.Repeat("-", nameWidth), strings.Repeat("-", tagsWidth))

	for _, p := range pieces {
		fmt.Fprintf(w, "%s %s %s %s\n",
			cell(p.ID, idWidth),
			cell(formatCategory(p.Category), categoryWidth),
			cell(p.Label(), nameWidth),
			truncate(formatTags(p.Tags), tagsWidth),
		)
	}

	fmt.Fprintf(w, "\n%d %s found\n", len(pieces), plural(len(pieces), "piece", "pieces"))

	return len(pieces)
}

// FormatJSONL writes pieces as line-delimited JSON (JSONL) to the provided writer.
// Each piece is written as a single JSON object on its own line, which suits jq.
func FormatJSONL(w io.Writer, pieces []catalog.Piece) error {
	for _, p := range pieces {
		data, err := json.Marshal(p)
		if err != nil {
			return fmt.Errorf("failed to marshal piece to JSON: %w", err)
		}

		if _, err := fmt.Fprintf(w, "%s\n", data); err != nil {
			return fmt.Errorf("failed to write JSONL output: %w", err)
		}
	}

	return nil
}

// FormatSingleJSON writes any value as pretty-printed JSON to the provided writer.
func FormatSingleJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal to JSON: %w", err)
	}

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write JSON output: %w", err)
	}

	fmt.Fprintln(w)
	return nil
}

// FormatThemes writes one row per theme: name, piece count, categories and
// description.
func FormatThemes(w io.Writer, themes []catalog.Theme, stats catalog.Stats) {
	if len(themes) == 0 {
		fmt.Fprintln(w, "No themes registered")
		return
	}

	categories := make(map[string][]catalog.Category, len(stats.Themes))
	for _, ts := range stats.Themes {
		categories[ts.Name] = ts.Categories
	}

	fmt.Fprintf(w, "%s %s %s %s\n", cell("THEME", 16), cell("PIECES", 7), cell("CATEGORIES", 36), "DESCRIPTION")
	for _, t := range themes {
		fmt.Fprintf(w, "%s %s %s %s\n",
			cell(t.Name, 16),
			cell(fmt.Sprintf("%d", len(t.Pieces)), 7),
			cell(joinCategories(categories[t.Name]), 36),
			orDash(t.Description),
		)
	}
}

// FormatTagMetadata writes the tags observed in a theme with their type and values.
func FormatTagMetadata(w io.Writer, theme string, infos []catalog.TagInfo) {
	if len(infos) == 0 {
		fmt.Fprintf(w, "No tags found in theme '%s'\n", theme)
		return
	}

	fmt.Fprintf(w, "Tags in theme '%s':\n\n", theme)
	fmt.Fprintf(w, "%s %s %s\n", cell("NAME", 18), cell("TYPE", 9), "VALUES")
	for _, info := range infos {
		values := make([]string, len(info.Values))
		for i, v := range info.Values {
			values[i] = v.String()
		}
		fmt.Fprintf(w, "%s %s %s\n", cell(info.Name, 18), cell(info.Type, 9), strings.Join(values, ", "))
	}
}

// FormatStats writes per-theme piece counts and a total line.
func FormatStats(w io.Writer, stats catalog.Stats) {
	fmt.Fprintf(w, "%s %s %s\n", cell("THEME", 16), cell("PIECES", 7), "CATEGORIES")
	for _, ts := range stats.Themes {
		fmt.Fprintf(w, "%s %s %s\n",
			cell(ts.Name, 16),
			cell(fmt.Sprintf("%d", ts.PieceCount), 7),
			joinCategories(ts.Categories),
		)
	}
	fmt.Fprintf(w, "\n%d %s in %d %s\n",
		stats.TotalPieces, plural(stats.TotalPieces, "piece", "pieces"),
		len(stats.Themes), plural(len(stats.Themes), "theme", "themes"))
}

// cell truncates s to width terminal cells and pads it on the right.
func cell(s string, width int) string {
	return runewidth.FillRight(truncate(s, width), width)
}

// truncate shortens s to at most width terminal cells, ending in "...".
func truncate(s string, width int) string {
	return runewidth.Truncate(s, width, "...")
}

// formatTags renders a tag bag as space separated name=value pairs.
// Flags set to true render as the bare name. Empty or missing bags return "-".
func formatTags(tags *catalog.Tags) string {
	if tags.Len() == 0 {
		return "-"
	}

	parts := make([]string, 0, tags.Len())
	for _, name := range tags.Keys() {
		v, _ := tags.Get(name)
		if b, ok := v.AsFlag(); ok && b {
			parts = append(parts, name)
			continue
		}
		parts = append(parts, name+"="+v.String())
	}
	return strings.Join(parts, " ")
}

// formatCategory returns "-" for pieces without a category.
func formatCategory(c catalog.Category) string {
	if c == "" {
		return "-"
	}
	return string(c)
}

func joinCategories(categories []catalog.Category) string {
	if len(categories) == 0 {
		return "-"
	}
	names := make([]string, len(categories))
	for i, c := range categories {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
