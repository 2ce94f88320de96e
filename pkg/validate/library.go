package validate

import "github.com/dyluth/fathom/pkg/catalog"

// Source is the read surface of a registry that library-wide checks need.
// *catalog.Registry implements it.
type Source interface {
	GetThemes() []string
	GetByTheme(name string) []catalog.Piece
	Pieces() []catalog.Piece
	HasTheme(name string) bool
}

// Library checks the structural integrity of everything in src.
//
// Errors: an ID held by more than one piece across the theme sequences, a
// missing id, name, category, theme or art, an ID without the piece's own
// theme prefix, and a theme reference that is not registered. Missing
// description or why_effective only produce warnings.
func Library(src Source) Result {
	var r Result

	seen := make(map[string]int)
	var order []string
	for _, theme := range src.GetThemes() {
		for _, p := range src.GetByTheme(theme) {
			if seen[p.ID] == 0 {
				order = append(order, p.ID)
			}
			seen[p.ID]++
		}
	}
	for _, id := range order {
		if seen[id] > 1 {
			r.errorf("Duplicate piece ID: %q", id)
		}
	}

	for _, p := range src.Pieces() {
		if p.ID == "" {
			r.errorf("Piece missing id")
		}
		if p.Name == "" {
			r.errorf("Piece %s missing name", p.ID)
		}
		if p.Category == "" {
			r.errorf("Piece %s missing category", p.ID)
		}
		if p.Theme == "" {
			r.errorf("Piece %s missing theme", p.ID)
		}
		if p.Art == "" {
			r.errorf("Piece %s missing art", p.ID)
		}
		if p.Description == "" {
			r.warnf("Piece %s missing description", p.ID)
		}
		if p.WhyEffective == "" {
			r.warnf("Piece %s missing why_effective", p.ID)
		}
		if !p.HasThemePrefix(p.Theme) {
			r.errorf("Piece %s ID doesn't match theme %q", p.ID, p.Theme)
		}
		if !src.HasTheme(p.Theme) {
			r.errorf("Piece %s references unregistered theme %q", p.ID, p.Theme)
		}
	}

	return r
}

// ThemePieces runs Piece and Rendering over every piece of a theme.
//
// An unknown or empty theme is an error. Rendering warnings are prefixed
// with the piece ID. A theme without any creature gets a warning.
func ThemePieces(src Source, theme string) Result {
	var r Result
	pieces := src.GetByTheme(theme)

	if len(pieces) == 0 {
		r.errorf("Theme %q has no pieces", theme)
	}

	hasCreature := false
	for _, p := range pieces {
		if p.Category == catalog.CategoryCreature {
			hasCreature = true
		}
		r.Errors = append(r.Errors, Piece(p).Errors...)
		for _, w := range Rendering(p.Art).Warnings {
			r.warnf("%s: %s", p.ID, w)
		}
	}

	if !hasCreature {
		r.warnf("Theme has no creatures")
	}

	return r
}
