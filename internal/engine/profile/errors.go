package profile

import "fmt"

// ValidationError reports an entity that violates a declared invariant.
// The offending value is rejected, never silently clamped.
type ValidationError struct {
	Entity string
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: invalid %s: %s", e.Entity, e.Field, e.Reason)
}

func invalid(entity, field, reason string) *ValidationError {
	return &ValidationError{Entity: entity, Field: field, Reason: reason}
}
