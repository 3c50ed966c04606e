package service

import (
	"fmt"     // Error message formatting
	"sort"    // Stable field ordering in messages
	"strings" // Message assembly
)

// ValidationError reports malformed or out-of-range input, keyed by field name.
// It is always raised before any write happens, so the caller may correct the
// input and retry safely.
type ValidationError struct {
	Fields map[string]string // Field name -> human-readable problem
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		names = append(names, f)
	}
	sort.Strings(names)
	parts := make([]string, len(names))
	for i, f := range names {
		parts[i] = f + ": " + e.Fields[f]
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// NewValidationError builds a single-field validation error
func NewValidationError(field, problem string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: problem}}
}

// NotFoundError reports that a referenced entity does not exist.
type NotFoundError struct {
	Resource string // Entity kind, e.g. "wallet"
	ID       uint   // Requested identifier
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Resource, e.ID)
}

// AuthorizationError reports that a referenced entity exists but does not
// belong to the acting user.
type AuthorizationError struct {
	Resource string // Entity kind, e.g. "wallet"
	ID       uint   // Requested identifier
}

// Error implements the error interface
func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("%s %d does not belong to the acting user", e.Resource, e.ID)
}

// StorageError reports that the atomic unit of work failed to commit. The
// caller may retry the whole operation; no partial state persists.
type StorageError struct {
	Err error // Underlying storage failure
}

// Error implements the error interface
func (e *StorageError) Error() string {
	return "storage failure: " + e.Err.Error()
}

// Unwrap exposes the underlying error for errors.Is/As
func (e *StorageError) Unwrap() error {
	return e.Err
}
