package catalog

import (
	"errors"
	"fmt"
)

// ThemeNotFoundError indicates an insertion targeted a theme that was never registered.
type ThemeNotFoundError struct {
	Theme string
}

func (e *ThemeNotFoundError) Error() string {
	return fmt.Sprintf("theme %q not registered", e.Theme)
}

// SchemaViolationError indicates a piece ID does not carry its theme prefix.
type SchemaViolationError struct {
	PieceID string
	Theme   string
}

func (e *SchemaViolationError) Error() string {
	return fmt.Sprintf("piece ID %q should start with %q for theme %q", e.PieceID, e.Theme+":", e.Theme)
}

// ConflictError indicates a piece ID is already present in the registry.
type ConflictError struct {
	PieceID string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("piece with ID %q already exists", e.PieceID)
}

// IsNotFound returns true if err is or wraps a ThemeNotFoundError.
func IsNotFound(err error) bool {
	var target *ThemeNotFoundError
	return errors.As(err, &target)
}

// IsSchemaViolation returns true if err is or wraps a SchemaViolationError.
func IsSchemaViolation(err error) bool {
	var target *SchemaViolationError
	return errors.As(err, &target)
}

// IsConflict returns true if err is or wraps a ConflictError.
func IsConflict(err error) bool {
	var target *ConflictError
	return errors.As(err, &target)
}
