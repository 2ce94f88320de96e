package resolver

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dyluth/fathom/pkg/catalog"
)

// MinPrefixLength is the minimum length of a reference used as a prefix.
// Shorter references must match an ID or local name exactly.
const MinPrefixLength = 3

// maxListedMatches caps the candidates shown for an ambiguous reference.
const maxListedMatches = 10

// PieceSource is the read surface the resolver needs.
type PieceSource interface {
	GetByID(id string) (catalog.Piece, bool)
	Pieces() []catalog.Piece
}

// ResolvePieceID turns a user-typed reference into a full piece ID.
//
// The reference is tried, in order, as:
//  1. a full ID ("deep-sea:anglerfish")
//  2. a local name without the theme ("anglerfish"), case-insensitively
//  3. a prefix of a full ID or of a local name ("deep-sea:angl", "angl")
//
// The first step that yields exactly one piece wins. A step that yields
// several pieces fails with *AmbiguousError; no match at all fails with
// *NotFoundError.
func ResolvePieceID(src PieceSource, ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", fmt.Errorf("piece reference cannot be empty")
	}

	if _, ok := src.GetByID(ref); ok {
		return ref, nil
	}

	pieces := src.Pieces()
	lower := strings.ToLower(ref)

	var exact []string
	for _, p := range pieces {
		if strings.ToLower(p.LocalName()) == lower {
			exact = append(exact, p.ID)
		}
	}
	if len(exact) > 0 {
		return single(ref, exact)
	}

	if len(ref) < MinPrefixLength {
		return "", &NotFoundError{Ref: ref}
	}

	var prefixed []string
	for _, p := range pieces {
		if strings.HasPrefix(strings.ToLower(p.ID), lower) ||
			strings.HasPrefix(strings.ToLower(p.LocalName()), lower) {
			prefixed = append(prefixed, p.ID)
		}
	}
	if len(prefixed) == 0 {
		return "", &NotFoundError{Ref: ref}
	}
	return single(ref, prefixed)
}

func single(ref string, matches []string) (string, error) {
	if len(matches) == 1 {
		return matches[0], nil
	}
	return "", &AmbiguousError{Ref: ref, Matches: matches}
}

// NotFoundError indicates no piece matched the reference.
type NotFoundError struct {
	Ref string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no pieces found matching '%s'", e.Ref)
}

// AmbiguousError indicates several pieces matched the reference.
type AmbiguousError struct {
	Ref     string
	Matches []string
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("ambiguous reference '%s' matches %d pieces", e.Ref, len(e.Matches))
}

// FormatAmbiguousError creates a user-friendly message for an ambiguous reference.
// Lists matching IDs (up to 10, then "...and N more").
func FormatAmbiguousError(err *AmbiguousError) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Error: ambiguous reference '%s' matches %d pieces:\n", err.Ref, len(err.Matches))

	displayCount := min(len(err.Matches), maxListedMatches)
	for i := 0; i < displayCount; i++ {
		fmt.Fprintf(&b, "  %s\n", err.Matches[i])
	}
	if len(err.Matches) > maxListedMatches {
		fmt.Fprintf(&b, "  ...and %d more\n", len(err.Matches)-maxListedMatches)
	}

	b.WriteString("\nUse the full <theme>:<name> ID to pick one.")
	return b.String()
}

// IsNotFoundError checks if an error is a NotFoundError.
func IsNotFoundError(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

// IsAmbiguousError checks if an error is an AmbiguousError.
func IsAmbiguousError(err error) bool {
	var target *AmbiguousError
	return errors.As(err, &target)
}
