package products

import (
	"errors"
	"strings"
)

var (
	ErrNotFound         = errors.New("product not found")
	ErrDateNotParseable = errors.New("invalid expiry date format")
	ErrNoFieldsToUpdate = errors.New("no fields to update")
)

// ValidationError accumulates every field problem found in a request so the
// caller can report all of them at once.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Messages, ", ")
}
