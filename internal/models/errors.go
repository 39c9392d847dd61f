// ABOUTME: Validation error type for rejected measurements.
// ABOUTME: Names the first failing field so callers can report it.
package models

import "fmt"

// ValidationError reports user input that cannot be stored.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
