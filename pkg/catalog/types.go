package catalog

import (
	"fmt"
	"iter"
	"strings"
)

// Piece is a single authored piece of ASCII art with its metadata.
// The ID must be "<theme>:<local name>" so that IDs stay unique across themes.
type Piece struct {
	ID          string   `json:"id"`                     // "<theme>:<name>", globally unique
	Name        string   `json:"name"`                   // Short human-readable label
	DisplayName string   `json:"display_name,omitempty"` // Optional natural-language label
	Category    Category `json:"category"`
	Theme       string   `json:"theme"` // Must name a registered theme
	Art         string   `json:"art"`   // Primary multi-line rendering

	Description    string   `json:"description"`
	WhyEffective   string   `json:"why_effective"`
	KeyCharacters  []string `json:"key_characters"`
	BuildingBlocks []string `json:"building_blocks"`
	Techniques     []string `json:"techniques"`

	Tags *Tags `json:"tags"`           // nil means the piece has no tag bag at all
	Zoom *Zoom `json:"zoom,omitempty"` // Optional alternate detail levels
}

// LocalName returns the part of the ID after the theme prefix.
// IDs without a separator are returned unchanged.
func (p Piece) LocalName() string {
	if _, name, ok := strings.Cut(p.ID, ":"); ok {
		return name
	}
	return p.ID
}

// Label returns the display name when one is set, otherwise the name.
func (p Piece) Label() string {
	if p.DisplayName != "" {
		return p.DisplayName
	}
	return p.Name
}

// HasThemePrefix reports whether the ID starts with "<theme>:".
func (p Piece) HasThemePrefix(theme string) bool {
	return strings.HasPrefix(p.ID, theme+":")
}

// Category classifies what a piece depicts.
type Category string

const (
	// CategoryCreature is a living being
	CategoryCreature Category = "creature"

	// CategoryStructure is a built or artificial object
	CategoryStructure Category = "structure"

	// CategoryEnvironment is a background or environmental feature
	CategoryEnvironment Category = "environment"

	// CategoryScene is a composition of several elements
	CategoryScene Category = "scene"
)

// Categories lists every valid category in declaration order.
var Categories = []Category{CategoryCreature, CategoryStructure, CategoryEnvironment, CategoryScene}

// Validate checks if the Category is a valid enum value.
func (c Category) Validate() error {
	switch c {
	case CategoryCreature, CategoryStructure, CategoryEnvironment, CategoryScene:
		return nil
	default:
		return fmt.Errorf("unknown category: %q", c)
	}
}

// ParseCategory converts a string into a Category, rejecting unknown values.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if err := c.Validate(); err != nil {
		return "", err
	}
	return c, nil
}

// ZoomLevel names one of the alternate renderings of a piece.
type ZoomLevel string

const (
	ZoomFar    ZoomLevel = "far"
	ZoomMedium ZoomLevel = "medium"
	ZoomClose  ZoomLevel = "close"
)

// ZoomLevels lists the levels from least to most detailed.
var ZoomLevels = []ZoomLevel{ZoomFar, ZoomMedium, ZoomClose}

// Zoom holds alternate renderings of a piece at different detail levels.
// Any subset of the levels may be set.
type Zoom struct {
	Far    string `json:"far,omitempty"`
	Medium string `json:"medium,omitempty"`
	Close  string `json:"close,omitempty"`
}

// Art returns the rendering for the given level, or "" if it is unset.
func (z *Zoom) Art(level ZoomLevel) string {
	if z == nil {
		return ""
	}
	switch level {
	case ZoomFar:
		return z.Far
	case ZoomMedium:
		return z.Medium
	case ZoomClose:
		return z.Close
	default:
		return ""
	}
}

// Levels yields every level with its art, from far to close. Unset levels
// yield "".
func (z *Zoom) Levels() iter.Seq2[ZoomLevel, string] {
	return func(yield func(ZoomLevel, string) bool) {
		for _, level := range ZoomLevels {
			if !yield(level, z.Art(level)) {
				return
			}
		}
	}
}

// IsEmpty reports whether no level has content.
func (z *Zoom) IsEmpty() bool {
	return z == nil || (z.Far == "" && z.Medium == "" && z.Close == "")
}

// ParseZoomLevel converts a string into a ZoomLevel.
func ParseZoomLevel(s string) (ZoomLevel, error) {
	switch l := ZoomLevel(strings.ToLower(s)); l {
	case ZoomFar, ZoomMedium, ZoomClose:
		return l, nil
	default:
		return "", fmt.Errorf("unknown zoom level: %q (must be 'far', 'medium', or 'close')", s)
	}
}

// Theme is a named, described collection of pieces.
// Piece order is the authoring order.
type Theme struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Pieces      []Piece `json:"pieces"`
}
