// Package service provides the business logic for the catalog location API.
package service

import (
	"context"

	"github.com/swcatalog/location-server/internal/catalog"
)

//go:generate mockgen -destination=mocks/mock_service.go -package=mocks -source=service.go LocationService

// CreateLocationResult is the outcome of a CreateLocation call.
type CreateLocationResult struct {
	// Location is the persisted record. Nil on the dry-run path, which
	// never persists anything.
	Location *catalog.Location `json:"location,omitempty"`

	// Exists reports whether a location with the same type+target was
	// already persisted when a dry run started. Always false on the
	// non-dry-run path.
	Exists bool `json:"exists,omitempty"`

	// Entities are the completed entities a dry run produced: the
	// synthetic Location entity followed by every successfully processed
	// deferred entity, in traversal order. Empty on the non-dry-run path.
	Entities []*catalog.Entity `json:"entities"`
}

// LocationService registers, lists and removes external catalog-metadata
// sources. It validates a location's declared type against configuration,
// optionally dry-runs ingestion through the processing orchestrator, and
// otherwise delegates persistence to the store.
type LocationService interface {
	// CheckReadiness checks if the service is ready to serve requests.
	CheckReadiness(ctx context.Context) error

	// CreateLocation validates the descriptor and either persists it
	// (dryRun=false) or simulates ingestion without persisting anything
	// (dryRun=true).
	CreateLocation(ctx context.Context, spec catalog.LocationSpec, dryRun bool) (*CreateLocationResult, error)

	// ListLocations returns all persisted locations.
	ListLocations(ctx context.Context) ([]*catalog.Location, error)

	// GetLocation returns the location with the given id.
	GetLocation(ctx context.Context, id string) (*catalog.Location, error)

	// DeleteLocation removes the location with the given id.
	DeleteLocation(ctx context.Context, id string) error
}
