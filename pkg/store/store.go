// Package store persists saved diagrams: their name and canonical text
// source plus timestamps. Backends: in-memory (tests and dev), MongoDB
// (API server), SQLite (local CLI persistence).
package store

import (
	"context"
	"time"
)

// Record is one saved diagram document. Source is the canonical text
// notation; the model is reparsed on load, so storage stays schema-free.
type Record struct {
	ID        string    `json:"id" bson:"_id"`
	Name      string    `json:"name" bson:"name"`
	Source    string    `json:"source" bson:"source"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// Store is the diagram persistence interface. Get and Delete fail with
// ErrCodeDiagramNotFound for unknown ids.
type Store interface {
	// Put inserts or replaces a record by id.
	Put(ctx context.Context, rec Record) error

	// Get retrieves a record by id.
	Get(ctx context.Context, id string) (Record, error)

	// List returns all records ordered by creation time.
	List(ctx context.Context) ([]Record, error)

	// Delete removes a record by id.
	Delete(ctx context.Context, id string) error

	// Close releases any underlying resources.
	Close() error
}
