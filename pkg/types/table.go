package types

import (
	"context"
	"errors"
	"time"
)

// Entity is a value snapshot with a stable unique key. WithStamp returns a
// copy carrying the given identity and timestamps; the repository uses it to
// assign server-side fields on create and update.
type Entity[T any] interface {
	EntityID() string
	Timestamps() (createdAt, updatedAt time.Time)
	WithStamp(id string, createdAt, updatedAt time.Time) T
}

// Repository provides uniform CRUD operations for a single entity type.
// It is the only I/O collaborator of a store.
type Repository[T Entity[T]] interface {
	// List returns every entity in insertion order.
	List(ctx context.Context) ([]T, error)

	// GetByID retrieves the entity with the given ID.
	// Returns ErrNotFound if no entity exists with that ID.
	GetByID(ctx context.Context, id string) (T, error)

	// Create persists a new entity. The ID and timestamps of data are
	// ignored; the returned entity carries the assigned values.
	Create(ctx context.Context, data T) (T, error)

	// Update replaces the stored entity with data and returns the persisted
	// value. CreatedAt is preserved. Returns ErrNotFound if absent.
	Update(ctx context.Context, id string, data T) (T, error)

	// Delete removes the entity with the given ID.
	// Returns ErrNotFound if no entity exists with that ID.
	Delete(ctx context.Context, id string) error
}

// Repository operation errors.
var (
	ErrNotFound    = errors.New("entity not found")
	ErrInvalidID   = errors.New("invalid entity ID")
	ErrInvalidData = errors.New("invalid entity data")
)

// Entity method errors.
var (
	ErrInvalidStatus = errors.New("invalid status value")
	ErrInvalidName   = errors.New("invalid name")
	ErrInvalidFilter = errors.New("invalid filter value")
)
