package catalog

// TagInfo describes one tag name observed in a theme.
type TagInfo struct {
	Name   string     `json:"name"`
	Type   string     `json:"type"`   // "boolean", "string[]" or "string"
	Values []TagValue `json:"values"` // Distinct scalar values in order of first appearance
}

// TagMetadata scans a theme and reports every tag name used, its inferred
// type and the distinct values seen. Names are listed in order of first
// appearance. A name is "boolean" if any piece used a flag for it, otherwise
// "string[]" if any piece used a list, otherwise "string". List values
// contribute their individual items.
func (r *Registry) TagMetadata(theme string) []TagInfo {
	type acc struct {
		info             TagInfo
		sawFlag, sawList bool
	}

	var order []string
	byName := make(map[string]*acc)

	for _, p := range r.GetByTheme(theme) {
		for _, name := range p.Tags.Keys() {
			value, _ := p.Tags.Get(name)

			a, ok := byName[name]
			if !ok {
				a = &acc{info: TagInfo{Name: name, Values: []TagValue{}}}
				byName[name] = a
				order = append(order, name)
			}

			switch value.Kind() {
			case TagKindFlag:
				a.sawFlag = true
			case TagKindList:
				a.sawList = true
			}

			for _, elem := range value.Elements() {
				if !containsValue(a.info.Values, elem) {
					a.info.Values = append(a.info.Values, elem)
				}
			}
		}
	}

	out := make([]TagInfo, 0, len(order))
	for _, name := range order {
		a := byName[name]
		switch {
		case a.sawFlag:
			a.info.Type = TagKindFlag.TypeName()
		case a.sawList:
			a.info.Type = TagKindList.TypeName()
		default:
			a.info.Type = TagKindText.TypeName()
		}
		out = append(out, a.info)
	}
	return out
}

func containsValue(values []TagValue, v TagValue) bool {
	for _, existing := range values {
		if existing.Equal(v) {
			return true
		}
	}
	return false
}

// ThemeStats summarises one theme.
type ThemeStats struct {
	Name       string     `json:"name"`
	PieceCount int        `json:"pieces"`
	Categories []Category `json:"categories"` // Sorted, distinct
}

// Stats summarises the whole registry.
type Stats struct {
	TotalPieces int          `json:"total_pieces"` // Size of the ID index
	Themes      []ThemeStats `json:"themes"`       // Registration order
}

// Stats returns piece counts and categories per theme.
func (r *Registry) Stats() Stats {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := Stats{
		TotalPieces: len(r.byID),
		Themes:      make([]ThemeStats, 0, len(r.themeOrder)),
	}
	for _, name := range r.themeOrder {
		t := r.themes[name]
		stats.Themes = append(stats.Themes, ThemeStats{
			Name:       name,
			PieceCount: len(t.Pieces),
			Categories: distinctCategories(t.Pieces),
		})
	}
	return stats
}
