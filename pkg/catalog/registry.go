package catalog

import (
	"math/rand/v2"
	"slices"
	"sync"

	"go.uber.org/zap"
)

// Registry owns every registered theme and an index of all pieces by ID.
// It is the only component that mutates catalog state.
//
// Hosts are expected to build one Registry at startup, register their themes
// and pass it to whatever needs to read from it.
type Registry struct {
	mu         sync.RWMutex
	themes     map[string]*Theme
	themeOrder []string
	byID       map[string]Piece
	idOrder    []string

	logger *zap.Logger

	rngMu sync.Mutex
	rng   *rand.Rand
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used to report overwrites during registration.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithRand sets the source used by Random and RandomFromQuery.
// Pass a seeded generator to get reproducible draws.
func WithRand(rng *rand.Rand) Option {
	return func(r *Registry) {
		if rng != nil {
			r.rng = rng
		}
	}
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		themes: make(map[string]*Theme),
		byID:   make(map[string]Piece),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.rng == nil {
		r.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return r
}

// RegisterTheme stores theme under its name and indexes every piece by ID.
//
// Registering a name twice replaces the earlier theme (it keeps its original
// position in GetThemes). Pieces are indexed with last-write-wins semantics
// and are not checked for ID prefix, uniqueness or theme references; run
// validate.Library to surface such problems. Index entries for pieces that
// belonged only to a replaced theme are left in place.
func (r *Registry) RegisterTheme(theme Theme) {
	stored := &Theme{
		Name:        theme.Name,
		Description: theme.Description,
		Pieces:      slices.Clone(theme.Pieces),
	}
	if stored.Pieces == nil {
		stored.Pieces = []Piece{}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.themes[theme.Name]; exists {
		r.logger.Warn("Theme re-registered, replacing previous definition",
			zap.String("theme", theme.Name),
			zap.Int("pieces", len(stored.Pieces)))
	} else {
		r.themeOrder = append(r.themeOrder, theme.Name)
	}
	r.themes[theme.Name] = stored

	for _, p := range stored.Pieces {
		if _, exists := r.byID[p.ID]; exists {
			r.logger.Warn("Piece ID already indexed, overwriting",
				zap.String("id", p.ID),
				zap.String("theme", theme.Name))
		}
		r.index(p)
	}

	r.logger.Debug("Theme registered",
		zap.String("theme", theme.Name),
		zap.Int("pieces", len(stored.Pieces)))
}

// AddPiece appends a piece to an existing theme.
//
// Fails with *ThemeNotFoundError if the theme is unknown, *SchemaViolationError
// if the ID lacks the "<theme>:" prefix and *ConflictError if the ID is already
// indexed. Nothing is modified when an error is returned.
func (r *Registry) AddPiece(themeName string, piece Piece) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.themes[themeName]
	if !ok {
		return &ThemeNotFoundError{Theme: themeName}
	}
	if !piece.HasThemePrefix(themeName) {
		return &SchemaViolationError{PieceID: piece.ID, Theme: themeName}
	}
	if _, exists := r.byID[piece.ID]; exists {
		return &ConflictError{PieceID: piece.ID}
	}

	t.Pieces = append(t.Pieces, piece)
	r.index(piece)
	return nil
}

// index must be called with the write lock held.
func (r *Registry) index(p Piece) {
	if _, exists := r.byID[p.ID]; !exists {
		r.idOrder = append(r.idOrder, p.ID)
	}
	r.byID[p.ID] = p
}

// GetByID returns the piece with the given ID.
func (r *Registry) GetByID(id string) (Piece, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.byID[id]
	return p, ok
}

// GetByTheme returns a copy of a theme's pieces in registration order.
// Unknown themes yield an empty slice, the same as a theme with no pieces.
func (r *Registry) GetByTheme(name string) []Piece {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.themes[name]
	if !ok {
		return []Piece{}
	}
	return slices.Clone(t.Pieces)
}

// GetByCategory returns a theme's pieces with exactly the given category.
func (r *Registry) GetByCategory(theme string, category Category) []Piece {
	out := []Piece{}
	for _, p := range r.GetByTheme(theme) {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

// GetThemes returns all theme names in registration order.
func (r *Registry) GetThemes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.themeOrder)
}

// GetTheme returns a copy of the named theme.
func (r *Registry) GetTheme(name string) (Theme, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.themes[name]
	if !ok {
		return Theme{}, false
	}
	return Theme{Name: t.Name, Description: t.Description, Pieces: slices.Clone(t.Pieces)}, true
}

// HasTheme reports whether a theme with the given name is registered.
func (r *Registry) HasTheme(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.themes[name]
	return ok
}

// GetCategories returns the distinct categories used in a theme, sorted.
func (r *Registry) GetCategories(theme string) []Category {
	return distinctCategories(r.GetByTheme(theme))
}

// Pieces returns every indexed piece in index insertion order, which is
// registration order across themes.
func (r *Registry) Pieces() []Piece {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Piece, 0, len(r.idOrder))
	for _, id := range r.idOrder {
		out = append(out, r.byID[id])
	}
	return out
}

// Len returns the number of indexed pieces.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}

func distinctCategories(pieces []Piece) []Category {
	seen := make(map[Category]bool)
	out := []Category{}
	for _, p := range pieces {
		if !seen[p.Category] {
			seen[p.Category] = true
			out = append(out, p.Category)
		}
	}
	slices.Sort(out)
	return out
}
