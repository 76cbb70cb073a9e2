package view

import "github.com/google/uuid"

// ID is an opaque entity identifier. Values only come out of ParseID or
// NewID, so downstream code can trust them.
type ID string

func (id ID) String() string { return string(id) }

// ParseID validates an identifier from untrusted input. It rejects empty
// strings and anything that is not a canonical UUID.
func ParseID(raw string) (ID, error) {
	if raw == "" {
		return "", ErrInvalidID
	}
	u, err := uuid.Parse(raw)
	if err != nil {
		return "", ErrInvalidID
	}
	return ID(u.String()), nil
}

// NewID mints a fresh identifier.
func NewID() ID {
	return ID(uuid.NewString())
}
