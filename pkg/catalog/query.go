package catalog

// Query defines filtering options for Registry.Query.
// All criteria are ANDed together; zero values mean "no filter".
type Query struct {
	Theme    string              // Restrict to one theme, empty = all themes
	Category Category            // Exact category match, empty = no filter
	Tags     map[string]TagValue // Every entry must match the piece's tag, nil = no filter
	Limit    int                 // Keep the first Limit results, <= 0 = unbounded
}

// Matches returns true if the piece passes the category and tag criteria.
// The theme criterion selects the base set in Registry.Query and is not
// re-checked here.
func (q *Query) Matches(p Piece) bool {
	if q.Category != "" && p.Category != q.Category {
		return false
	}

	for name, want := range q.Tags {
		// A tag missing from the piece never matches.
		have, ok := p.Tags.Get(name)
		if !ok || !want.Matches(have) {
			return false
		}
	}

	return true
}

// HasFilters returns true if any criterion other than Limit is set.
func (q *Query) HasFilters() bool {
	return q.Theme != "" || q.Category != "" || len(q.Tags) > 0
}

// Query returns the pieces matching q, in registration order.
// Every call recomputes from the current registry contents.
func (r *Registry) Query(q Query) []Piece {
	var base []Piece
	if q.Theme != "" {
		base = r.GetByTheme(q.Theme)
	} else {
		base = r.Pieces()
	}

	results := make([]Piece, 0, len(base))
	for _, p := range base {
		if q.Matches(p) {
			results = append(results, p)
		}
	}

	if q.Limit > 0 && len(results) > q.Limit {
		results = results[:q.Limit]
	}
	return results
}

// Random returns a uniformly chosen piece from a theme.
// Returns false if the theme is unknown or empty.
func (r *Registry) Random(theme string) (Piece, bool) {
	return r.pick(r.GetByTheme(theme))
}

// RandomFromQuery returns a uniformly chosen piece from the results of q.
// Returns false if nothing matches.
func (r *Registry) RandomFromQuery(q Query) (Piece, bool) {
	return r.pick(r.Query(q))
}

func (r *Registry) pick(pieces []Piece) (Piece, bool) {
	if len(pieces) == 0 {
		return Piece{}, false
	}
	r.rngMu.Lock()
	i := r.rng.IntN(len(pieces))
	r.rngMu.Unlock()
	return pieces[i], true
}
