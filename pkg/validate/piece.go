package validate

import "github.com/dyluth/fathom/pkg/catalog"

// Piece applies the strict standalone rules to a single piece. It does not
// consult any registry.
//
// Every field is required here, including description and why_effective,
// which Library only warns about. The three list fields must be non-empty,
// the ID must carry the "<theme>:" prefix and the piece must have a tag bag.
func Piece(p catalog.Piece) Result {
	var r Result

	if p.ID == "" {
		r.errorf("Missing id")
	}
	if p.Name == "" {
		r.errorf("Missing name")
	}

	required := []struct {
		field string
		empty bool
	}{
		{"category", p.Category == ""},
		{"theme", p.Theme == ""},
		{"art", p.Art == ""},
		{"description", p.Description == ""},
		{"why_effective", p.WhyEffective == ""},
		{"key_characters", len(p.KeyCharacters) == 0},
		{"building_blocks", len(p.BuildingBlocks) == 0},
		{"techniques", len(p.Techniques) == 0},
	}
	for _, f := range required {
		if f.empty {
			r.errorf("Piece %s: missing %s", p.ID, f.field)
		}
	}

	if p.Category != "" {
		if err := p.Category.Validate(); err != nil {
			r.errorf("Piece %s: %v", p.ID, err)
		}
	}

	if p.ID != "" && p.Theme != "" && !p.HasThemePrefix(p.Theme) {
		r.errorf("Piece %s: ID should be prefixed with %q to match theme", p.ID, p.Theme+":")
	}

	if p.Tags == nil {
		r.errorf("Piece %s: tags should be an object", p.ID)
	}

	return r
}
