// Package processing defines the contract between the location service
// and the entity-processing pipeline. The pipeline itself (fetching,
// parsing, validation) lives behind the Orchestrator interface; this
// package only owns the request/result shapes.
package processing

import (
	"context"

	"github.com/swcatalog/location-server/internal/catalog"
)

//go:generate mockgen -destination=mocks/mock_orchestrator.go -package=mocks -source=orchestrator.go Orchestrator

// Request is a single processing submission: one entity plus the opaque
// state threaded through the run.
type Request struct {
	Entity *catalog.Entity
	State  State
}

// DeferredEntity is an entity discovered while processing another
// entity's content (e.g. a component declared inside a catalog-info
// file), paired with the location key that produced it. It is queued for
// its own processing pass.
type DeferredEntity struct {
	Entity *catalog.Entity
	// LocationKey ties the entity back to the location that produced it,
	// in "<type>:<target>" form.
	LocationKey string
}

// Relation is a directed relation between two entities, expressed as
// entity refs.
type Relation struct {
	Type   string `json:"type"`
	Source string `json:"source"`
	Target string `json:"target"`
}

// Result is the tagged outcome of processing one entity. Either Ok is
// true and Completed carries the finished entity, or Ok is false and
// Errors carries at least one error. There is no partial third state.
type Result struct {
	Ok        bool
	Completed *catalog.Entity
	Deferred  []DeferredEntity
	Relations []Relation
	// Errors holds fatal errors when Ok is false, and non-fatal ones
	// when Ok is true.
	Errors []error
}

// Orchestrator runs an entity through the processing pipeline. Cancellation,
// retries and backpressure are the implementation's responsibility; callers
// only pass a context and inspect the result.
type Orchestrator interface {
	Process(ctx context.Context, req Request) (*Result, error)
}
