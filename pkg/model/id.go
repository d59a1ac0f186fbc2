package model

import "github.com/google/uuid"

// NewID returns a fresh identifier for a class or child entity.
// UUIDs guarantee uniqueness within any owning collection without the
// collection having to track used ids.
func NewID() string {
	return uuid.NewString()
}
