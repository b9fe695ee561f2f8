package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Lookup errors shared by every collection
var (
	ErrNotFound    = errors.New("not found")
	ErrAmbiguousID = errors.New("ID prefix matches more than one item")
	ErrEmptyID     = errors.New("ID cannot be empty")
)

// newID returns a fresh random identifier.
func newID() string {
	return uuid.NewString()
}

// ShortID trims an ID for display. Prefixes of this length are usually unique.
func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// findIndex locates an item by exact ID or by a unique ID prefix.
func findIndex[T any](items []T, id string, idOf func(T) string) (int, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return -1, ErrEmptyID
	}

	for i, item := range items {
		if idOf(item) == id {
			return i, nil
		}
	}

	match := -1
	for i, item := range items {
		if strings.HasPrefix(idOf(item), id) {
			if match != -1 {
				return -1, fmt.Errorf("%w: %q", ErrAmbiguousID, id)
			}
			match = i
		}
	}

	if match == -1 {
		return -1, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return match, nil
}
