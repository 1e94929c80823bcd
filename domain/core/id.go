package core

import (
	"github.com/google/uuid"
)

// ID identifies an uploaded table for the lifetime of its session.
type ID string

// NewID creates a time-ordered identifier. UUID v7 keeps IDs sortable by
// creation time; v4 is the fallback when the clock source fails.
func NewID() ID {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return ID(id.String())
}

// Parse validates a client-supplied identifier.
func Parse(s string) (ID, bool) {
	if _, err := uuid.Parse(s); err != nil {
		return "", false
	}
	return ID(s), true
}

// String returns the string representation.
func (id ID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty.
func (id ID) IsEmpty() bool {
	return id == ""
}
