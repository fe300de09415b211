package schema

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors for the schema package.
//
// These errors can be checked using errors.Is():
//
//	if errors.Is(err, schema.ErrTypeNotFound) {
//	    // module exists but does not expose the expected type
//	}
var (
	// ErrModuleNotFound is returned when no module is registered under the resolved name.
	ErrModuleNotFound = errors.New("schema: module not found")

	// ErrTypeNotFound is returned when a module does not expose the expected type.
	ErrTypeNotFound = errors.New("schema: type not found")

	// ErrModuleExists is returned when registering a module name twice.
	ErrModuleExists = errors.New("schema: module already registered")

	// ErrInvalidModule is returned when a module has no name or a nil type.
	ErrInvalidModule = errors.New("schema: invalid module")

	// ErrValidation is the sentinel wrapped by every *ValidationError.
	ErrValidation = errors.New("schema: validation failed")
)

// FieldError describes one failed check on one field.
type FieldError struct {
	// Field is the external (alias) name of the field, e.g. "timestamp.color".
	// Nested locations are joined with "/".
	Field string

	// Message is a human-readable description of the failure.
	Message string
}

func (f FieldError) String() string {
	if f.Field == "" {
		return f.Message
	}
	return f.Field + ": " + f.Message
}

// ValidationError reports that raw data does not satisfy a schema type.
type ValidationError struct {
	Type   string
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.String()
	}
	return fmt.Sprintf("schema: %s validation failed: %s", e.Type, strings.Join(parts, "; "))
}

// Unwrap lets callers match any ValidationError with errors.Is(err, ErrValidation).
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// FieldNames returns the distinct field names in the order they were reported.
func (e *ValidationError) FieldNames() []string {
	seen := make(map[string]bool, len(e.Fields))
	names := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		if f.Field == "" || seen[f.Field] {
			continue
		}
		seen[f.Field] = true
		names = append(names, f.Field)
	}
	return names
}
