package export

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/dyluth/fathom/pkg/catalog"
)

// Serialization helpers for converting between catalog types and Redis hashes
//
// Scalar fields are stored as individual hash fields. Lists, tags and zoom
// variants are JSON-encoded into single fields. An empty tags or zoom field
// means the piece had none.

// PieceToHash converts a piece to a Redis hash.
func PieceToHash(p catalog.Piece) (map[string]interface{}, error) {
	hash := map[string]interface{}{
		"id":            p.ID,
		"name":          p.Name,
		"display_name":  p.DisplayName,
		"category":      string(p.Category),
		"theme":         p.Theme,
		"art":           p.Art,
		"description":   p.Description,
		"why_effective": p.WhyEffective,
	}

	lists := map[string][]string{
		"key_characters":  p.KeyCharacters,
		"building_blocks": p.BuildingBlocks,
		"techniques":      p.Techniques,
	}
	for field, values := range lists {
		if values == nil {
			values = []string{}
		}
		encoded, err := json.Marshal(values)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal %s: %w", field, err)
		}
		hash[field] = string(encoded)
	}

	hash["tags"] = ""
	if p.Tags != nil {
		encoded, err := json.Marshal(p.Tags)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal tags: %w", err)
		}
		hash["tags"] = string(encoded)
	}

	hash["zoom"] = ""
	if p.Zoom != nil {
		encoded, err := json.Marshal(p.Zoom)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal zoom: %w", err)
		}
		hash["zoom"] = string(encoded)
	}

	return hash, nil
}

// HashToPiece converts a Redis hash back to a piece.
func HashToPiece(hash map[string]string) (catalog.Piece, error) {
	if hash["id"] == "" {
		return catalog.Piece{}, fmt.Errorf("missing id field")
	}

	p := catalog.Piece{
		ID:           hash["id"],
		Name:         hash["name"],
		DisplayName:  hash["display_name"],
		Category:     catalog.Category(hash["category"]),
		Theme:        hash["theme"],
		Art:          hash["art"],
		Description:  hash["description"],
		WhyEffective: hash["why_effective"],
	}

	lists := []struct {
		field string
		dst   *[]string
	}{
		{"key_characters", &p.KeyCharacters},
		{"building_blocks", &p.BuildingBlocks},
		{"techniques", &p.Techniques},
	}
	for _, l := range lists {
		if raw := hash[l.field]; raw != "" {
			if err := json.Unmarshal([]byte(raw), l.dst); err != nil {
				return catalog.Piece{}, fmt.Errorf("failed to unmarshal %s: %w", l.field, err)
			}
		}
		if *l.dst == nil {
			*l.dst = []string{}
		}
	}

	if raw := hash["tags"]; raw != "" {
		tags := catalog.NewTags()
		if err := json.Unmarshal([]byte(raw), tags); err != nil {
			return catalog.Piece{}, fmt.Errorf("failed to unmarshal tags: %w", err)
		}
		p.Tags = tags
	}

	if raw := hash["zoom"]; raw != "" {
		var zoom catalog.Zoom
		if err := json.Unmarshal([]byte(raw), &zoom); err != nil {
			return catalog.Piece{}, fmt.Errorf("failed to unmarshal zoom: %w", err)
		}
		p.Zoom = &zoom
	}

	return p, nil
}

// ThemeToHash converts a theme record to a Redis hash.
// PieceIDs are JSON-encoded.
func ThemeToHash(t ThemeRecord) (map[string]interface{}, error) {
	ids := t.PieceIDs
	if ids == nil {
		ids = []string{}
	}
	encoded, err := json.Marshal(ids)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal piece_ids: %w", err)
	}

	return map[string]interface{}{
		"name":        t.Name,
		"description": t.Description,
		"piece_ids":   string(encoded),
	}, nil
}

// HashToTheme converts a Redis hash back to a theme record.
func HashToTheme(hash map[string]string) (*ThemeRecord, error) {
	if hash["name"] == "" {
		return nil, fmt.Errorf("missing name field")
	}

	var ids []string
	if raw := hash["piece_ids"]; raw != "" {
		if err := json.Unmarshal([]byte(raw), &ids); err != nil {
			return nil, fmt.Errorf("failed to unmarshal piece_ids: %w", err)
		}
	}
	if ids == nil {
		ids = []string{}
	}

	return &ThemeRecord{
		Name:        hash["name"],
		Description: hash["description"],
		PieceIDs:    ids,
	}, nil
}

// SnapshotToHash converts snapshot metadata to a Redis hash.
func SnapshotToHash(s *Snapshot) map[string]interface{} {
	return map[string]interface{}{
		"snapshot_id":   s.ID,
		"instance":      s.Instance,
		"themes":        s.Themes,
		"pieces":        s.Pieces,
		"created_at_ms": s.CreatedAtMs,
	}
}

// HashToSnapshot converts a Redis hash back to snapshot metadata.
func HashToSnapshot(hash map[string]string) (*Snapshot, error) {
	themes, err := strconv.Atoi(hash["themes"])
	if err != nil {
		return nil, fmt.Errorf("invalid themes field: %w", err)
	}
	pieces, err := strconv.Atoi(hash["pieces"])
	if err != nil {
		return nil, fmt.Errorf("invalid pieces field: %w", err)
	}
	createdAtMs, err := strconv.ParseInt(hash["created_at_ms"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid created_at_ms field: %w", err)
	}

	s := &Snapshot{
		ID:          hash["snapshot_id"],
		Instance:    hash["instance"],
		Themes:      themes,
		Pieces:      pieces,
		CreatedAtMs: createdAtMs,
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}
