package hub

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when an operation targets an id absent from its collection.
var ErrNotFound = errors.New("record not found")

// ValidationError reports a required form field that was missing or empty.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func required(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
