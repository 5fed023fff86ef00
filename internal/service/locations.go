package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/swcatalog/location-server/internal/catalog"
	"github.com/swcatalog/location-server/internal/config"
	"github.com/swcatalog/location-server/internal/otel"
	"github.com/swcatalog/location-server/internal/processing"
	"github.com/swcatalog/location-server/internal/store"
)

// options holds configuration options for the location service.
type options struct {
	store        store.Store
	orchestrator processing.Orchestrator
	config       *config.Config
	tracer       trace.Tracer
}

// Option is a functional option for configuring the location service.
type Option func(*options) error

// WithStore sets the persistence store. Required.
func WithStore(s store.Store) Option {
	return func(o *options) error {
		if s == nil {
			return fmt.Errorf("store is required")
		}
		o.store = s
		return nil
	}
}

// WithOrchestrator sets the processing orchestrator used by dry runs.
// Required.
func WithOrchestrator(orch processing.Orchestrator) Option {
	return func(o *options) error {
		if orch == nil {
			return fmt.Errorf("orchestrator is required")
		}
		o.orchestrator = orch
		return nil
	}
}

// WithConfig sets the service configuration. Required.
func WithConfig(cfg *config.Config) Option {
	return func(o *options) error {
		if cfg == nil {
			return fmt.Errorf("config is required")
		}
		o.config = cfg
		return nil
	}
}

// WithTracer sets the OpenTelemetry tracer. If not set, tracing is
// disabled (no-op).
func WithTracer(tracer trace.Tracer) Option {
	return func(o *options) error {
		o.tracer = tracer
		return nil
	}
}

// locationService implements the LocationService interface.
type locationService struct {
	store        store.Store
	orchestrator processing.Orchestrator
	config       *config.Config
	tracer       trace.Tracer
}

var _ LocationService = (*locationService)(nil)

// New creates a new location service with the given options.
func New(opts ...Option) (LocationService, error) {
	o := &options{}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}

	if o.store == nil {
		return nil, fmt.Errorf("store is required")
	}
	if o.orchestrator == nil {
		return nil, fmt.Errorf("orchestrator is required")
	}
	if o.config == nil {
		return nil, fmt.Errorf("config is required")
	}

	return &locationService{
		store:        o.store,
		orchestrator: o.orchestrator,
		config:       o.config,
		tracer:       o.tracer,
	}, nil
}

// CheckReadiness checks if the service is ready to serve requests.
func (s *locationService) CheckReadiness(ctx context.Context) error {
	if pinger, ok := s.store.(store.Pinger); ok {
		return pinger.Ping(ctx)
	}
	return nil
}

// CreateLocation validates the descriptor's type against configuration,
// then either persists the location or simulates its ingestion.
func (s *locationService) CreateLocation(
	ctx context.Context,
	spec catalog.LocationSpec,
	dryRun bool,
) (*CreateLocationResult, error) {
	ctx, span := otel.StartSpan(ctx, s.tracer, "locationService.CreateLocation",
		trace.WithAttributes(
			otel.AttrLocationType.String(spec.Type),
			otel.AttrLocationTarget.String(spec.Target),
			otel.AttrDryRun.Bool(dryRun),
		))
	defer span.End()
	start := time.Now()

	if !s.config.AllowsLocationType(spec.Type) {
		err := NewInputErrorf("unknown location type %s", spec.Type)
		otel.RecordError(span, err)
		return nil, err
	}

	if !dryRun {
		location, err := s.store.CreateLocation(ctx, spec)
		if err != nil {
			otel.RecordError(span, err)
			return nil, err
		}

		slog.InfoContext(ctx, "Location created",
			"duration_ms", time.Since(start).Milliseconds(),
			"id", location.ID,
			"type", location.Type,
			"target", location.Target,
		)
		return &CreateLocationResult{
			Location: location,
			Entities: []*catalog.Entity{},
		}, nil
	}

	result, err := s.dryRunLocation(ctx, spec)
	if err != nil {
		otel.RecordError(span, err)
		return nil, err
	}

	span.SetAttributes(otel.AttrResultCount.Int(len(result.Entities)))
	slog.InfoContext(ctx, "Location dry run completed",
		"duration_ms", time.Since(start).Milliseconds(),
		"type", spec.Type,
		"target", spec.Target,
		"exists", result.Exists,
		"entities", len(result.Entities),
	)
	return result, nil
}

// dryRunLocation simulates ingesting the descriptor: it processes the
// synthetic Location entity and every deferred entity the orchestrator
// discovers, without touching the store beyond the exists lookup.
func (s *locationService) dryRunLocation(
	ctx context.Context,
	spec catalog.LocationSpec,
) (*CreateLocationResult, error) {
	entity := catalog.NewLocationEntity(spec)

	// The exists lookup happens regardless of the processing outcome, so
	// callers learn about a pre-existing registration even when the dry
	// run itself fails later.
	exists, err := s.locationExists(ctx, spec)
	if err != nil {
		return nil, err
	}

	entities, err := s.processEntities(ctx, entity)
	if err != nil {
		return nil, err
	}

	return &CreateLocationResult{
		Exists:   exists,
		Entities: entities,
	}, nil
}

// locationExists reports whether the store already holds a record with
// the descriptor's type and target.
func (s *locationService) locationExists(ctx context.Context, spec catalog.LocationSpec) (bool, error) {
	locations, err := s.store.ListLocations(ctx)
	if err != nil {
		return false, err
	}
	for _, loc := range locations {
		if loc.Type == spec.Type && loc.Target == spec.Target {
			return true, nil
		}
	}
	return false, nil
}

// processEntities runs the root entity and, iteratively, every deferred
// entity the orchestrator returns through the pipeline. The worklist is
// FIFO so traversal preserves the orchestrator's deferred-entity order,
// which keeps duplicate detection deterministic: the first occurrence of
// an identity wins, the second one fails the run.
func (s *locationService) processEntities(
	ctx context.Context,
	root *catalog.Entity,
) ([]*catalog.Entity, error) {
	completed := make([]*catalog.Entity, 0, 1)
	seen := make(map[string]struct{})

	queue := []*catalog.Entity{root}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]

		result, err := s.orchestrator.Process(ctx, processing.Request{
			Entity: next,
			State:  processing.NewState(),
		})
		if err != nil {
			// Transport-level orchestrator failure, propagated unchanged.
			return nil, err
		}

		if !result.Ok {
			return nil, classifyProcessingError(result.Errors)
		}
		if result.Completed == nil {
			return nil, fmt.Errorf("orchestrator returned ok result without a completed entity for %s", next.Ref())
		}

		ref := result.Completed.Ref()
		if _, dup := seen[ref]; dup {
			return nil, NewInputErrorf("Duplicate nested entity: %s", ref)
		}
		seen[ref] = struct{}{}
		completed = append(completed, result.Completed)

		for _, deferred := range result.Deferred {
			queue = append(queue, deferred.Entity)
		}
	}

	return completed, nil
}

// classifyProcessingError surfaces the first reported error, wrapping it
// as an InputError when it is not already a recognized error kind.
func classifyProcessingError(errs []error) error {
	if len(errs) == 0 {
		return NewInputErrorf("processing failed without a reported error")
	}
	first := errs[0]
	if IsInputError(first) {
		return first
	}
	return WrapInputError(first)
}

// ListLocations returns all persisted locations. Store errors propagate
// unchanged.
func (s *locationService) ListLocations(ctx context.Context) ([]*catalog.Location, error) {
	ctx, span := otel.StartSpan(ctx, s.tracer, "locationService.ListLocations")
	defer span.End()

	locations, err := s.store.ListLocations(ctx)
	if err != nil {
		otel.RecordError(span, err)
		return nil, err
	}
	span.SetAttributes(otel.AttrResultCount.Int(len(locations)))
	return locations, nil
}

// GetLocation returns the location with the given id. Store errors
// propagate unchanged.
func (s *locationService) GetLocation(ctx context.Context, id string) (*catalog.Location, error) {
	ctx, span := otel.StartSpan(ctx, s.tracer, "locationService.GetLocation",
		trace.WithAttributes(otel.AttrLocationID.String(id)))
	defer span.End()

	location, err := s.store.GetLocation(ctx, id)
	if err != nil {
		otel.RecordError(span, err)
		return nil, err
	}
	return location, nil
}

// DeleteLocation removes the location with the given id. Store errors
// propagate unchanged.
func (s *locationService) DeleteLocation(ctx context.Context, id string) error {
	ctx, span := otel.StartSpan(ctx, s.tracer, "locationService.DeleteLocation",
		trace.WithAttributes(otel.AttrLocationID.String(id)))
	defer span.End()

	if err := s.store.DeleteLocation(ctx, id); err != nil {
		otel.RecordError(span, err)
		return err
	}

	slog.InfoContext(ctx, "Location deleted", "id", id)
	return nil
}
