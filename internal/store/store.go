// Package store defines the persistence contract for location records.
package store

import (
	"context"
	"errors"

	"github.com/swcatalog/location-server/internal/catalog"
)

var (
	// ErrLocationNotFound is returned when no location exists for an id.
	ErrLocationNotFound = errors.New("location not found")
	// ErrLocationAlreadyExists is returned when a location with the same
	// type and target is already persisted.
	ErrLocationAlreadyExists = errors.New("location already exists")
)

//go:generate mockgen -destination=mocks/mock_store.go -package=mocks -source=store.go Store

// Store persists location records. Implementations assign the record id
// on creation. All operations may fail with store-specific errors; the
// sentinel errors above are the ones callers branch on.
type Store interface {
	// CreateLocation persists a new location and returns the record with
	// its assigned id.
	CreateLocation(ctx context.Context, spec catalog.LocationSpec) (*catalog.Location, error)

	// ListLocations returns all persisted locations.
	ListLocations(ctx context.Context) ([]*catalog.Location, error)

	// GetLocation returns the location with the given id, or
	// ErrLocationNotFound.
	GetLocation(ctx context.Context, id string) (*catalog.Location, error)

	// DeleteLocation removes the location with the given id, or returns
	// ErrLocationNotFound.
	DeleteLocation(ctx context.Context, id string) error
}

// Pinger is implemented by stores that can report backend liveness, used
// by readiness checks.
type Pinger interface {
	Ping(ctx context.Context) error
}
