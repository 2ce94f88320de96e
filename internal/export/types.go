package export

import (
	"fmt"

	"github.com/google/uuid"
)

// Snapshot describes one published copy of the catalog.
type Snapshot struct {
	ID          string `json:"snapshot_id"`   // UUID, new for every publish
	Instance    string `json:"instance"`      // Key namespace the snapshot was written under
	Themes      int    `json:"themes"`        // Registered themes
	Pieces      int    `json:"pieces"`        // Size of the piece ID index
	CreatedAtMs int64  `json:"created_at_ms"` // Unix timestamp in milliseconds
}

// Validate checks that the snapshot is well formed.
func (s *Snapshot) Validate() error {
	if _, err := uuid.Parse(s.ID); err != nil {
		return fmt.Errorf("invalid snapshot_id: %w", err)
	}
	if s.Instance == "" {
		return fmt.Errorf("instance is required")
	}
	if s.Themes < 0 || s.Pieces < 0 {
		return fmt.Errorf("counts must be >= 0")
	}
	return nil
}

// ThemeRecord is the exported form of a theme. Pieces are referenced by ID
// in authoring order.
type ThemeRecord struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	PieceIDs    []string `json:"piece_ids"`
}
