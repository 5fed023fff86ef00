// Package postgres provides a PostgreSQL-backed implementation of the
// location store.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/trace"

	"github.com/swcatalog/location-server/internal/catalog"
	"github.com/swcatalog/location-server/internal/otel"
	"github.com/swcatalog/location-server/internal/store"
)

// pgUniqueViolation is the PostgreSQL error code for unique constraint
// violations.
const pgUniqueViolation = "23505"

// options holds configuration options for the postgres store.
type options struct {
	pool   *pgxpool.Pool
	tracer trace.Tracer
}

// Option is a functional option for configuring the postgres store.
type Option func(*options) error

// WithConnectionPool sets the pgx pool backing the store. The caller is
// responsible for closing the pool when it is done. Required.
func WithConnectionPool(pool *pgxpool.Pool) Option {
	return func(o *options) error {
		if pool == nil {
			return fmt.Errorf("pgx pool is required")
		}
		o.pool = pool
		return nil
	}
}

// WithTracer sets the OpenTelemetry tracer for the store. If not set,
// tracing is disabled (no-op).
func WithTracer(tracer trace.Tracer) Option {
	return func(o *options) error {
		o.tracer = tracer
		return nil
	}
}

// pgStore implements the Store interface using a PostgreSQL backend.
type pgStore struct {
	pool   *pgxpool.Pool
	tracer trace.Tracer
}

var _ store.Store = (*pgStore)(nil)
var _ store.Pinger = (*pgStore)(nil)

// New creates a new PostgreSQL-backed location store with the given
// options.
func New(opts ...Option) (store.Store, error) {
	o := &options{}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	if o.pool == nil {
		return nil, fmt.Errorf("pgx pool is required")
	}
	return &pgStore{pool: o.pool, tracer: o.tracer}, nil
}

// Ping checks database connectivity, used by readiness probes.
func (s *pgStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *pgStore) CreateLocation(ctx context.Context, spec catalog.LocationSpec) (*catalog.Location, error) {
	ctx, span := otel.StartSpan(ctx, s.tracer, "pgStore.CreateLocation",
		trace.WithAttributes(
			otel.AttrLocationType.String(spec.Type),
			otel.AttrLocationTarget.String(spec.Target),
		))
	defer span.End()
	start := time.Now()

	id := uuid.New()
	now := time.Now().UTC()

	_, err := s.pool.Exec(ctx,
		`INSERT INTO locations (id, type, target, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $4)`,
		id, spec.Type, spec.Target, now,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			err = fmt.Errorf("%w: %s", store.ErrLocationAlreadyExists, spec)
			otel.RecordError(span, err)
			return nil, err
		}
		otel.RecordError(span, err)
		return nil, fmt.Errorf("failed to insert location: %w", err)
	}

	slog.InfoContext(ctx, "Location persisted",
		"duration_ms", time.Since(start).Milliseconds(),
		"id", id.String(),
		"type", spec.Type,
		"target", spec.Target,
	)

	return &catalog.Location{
		ID:     id.String(),
		Type:   spec.Type,
		Target: spec.Target,
	}, nil
}

func (s *pgStore) ListLocations(ctx context.Context) ([]*catalog.Location, error) {
	ctx, span := otel.StartSpan(ctx, s.tracer, "pgStore.ListLocations")
	defer span.End()

	rows, err := s.pool.Query(ctx,
		`SELECT id, type, target FROM locations ORDER BY type, target`,
	)
	if err != nil {
		otel.RecordError(span, err)
		return nil, fmt.Errorf("failed to list locations: %w", err)
	}
	defer rows.Close()

	locations := make([]*catalog.Location, 0)
	for rows.Next() {
		var (
			id     uuid.UUID
			loc    catalog.Location
			locErr error
		)
		if locErr = rows.Scan(&id, &loc.Type, &loc.Target); locErr != nil {
			otel.RecordError(span, locErr)
			return nil, fmt.Errorf("failed to scan location: %w", locErr)
		}
		loc.ID = id.String()
		locations = append(locations, &loc)
	}
	if err := rows.Err(); err != nil {
		otel.RecordError(span, err)
		return nil, fmt.Errorf("failed to list locations: %w", err)
	}

	span.SetAttributes(otel.AttrResultCount.Int(len(locations)))
	return locations, nil
}

func (s *pgStore) GetLocation(ctx context.Context, id string) (*catalog.Location, error) {
	ctx, span := otel.StartSpan(ctx, s.tracer, "pgStore.GetLocation",
		trace.WithAttributes(otel.AttrLocationID.String(id)))
	defer span.End()

	locID, err := uuid.Parse(id)
	if err != nil {
		err = fmt.Errorf("%w: %s", store.ErrLocationNotFound, id)
		otel.RecordError(span, err)
		return nil, err
	}

	var loc catalog.Location
	err = s.pool.QueryRow(ctx,
		`SELECT type, target FROM locations WHERE id = $1`, locID,
	).Scan(&loc.Type, &loc.Target)
	if errors.Is(err, pgx.ErrNoRows) {
		err = fmt.Errorf("%w: %s", store.ErrLocationNotFound, id)
		otel.RecordError(span, err)
		return nil, err
	}
	if err != nil {
		otel.RecordError(span, err)
		return nil, fmt.Errorf("failed to get location: %w", err)
	}

	loc.ID = id
	return &loc, nil
}

func (s *pgStore) DeleteLocation(ctx context.Context, id string) error {
	ctx, span := otel.StartSpan(ctx, s.tracer, "pgStore.DeleteLocation",
		trace.WithAttributes(otel.AttrLocationID.String(id)))
	defer span.End()

	locID, err := uuid.Parse(id)
	if err != nil {
		err = fmt.Errorf("%w: %s", store.ErrLocationNotFound, id)
		otel.RecordError(span, err)
		return err
	}

	tag, err := s.pool.Exec(ctx, `DELETE FROM locations WHERE id = $1`, locID)
	if err != nil {
		otel.RecordError(span, err)
		return fmt.Errorf("failed to delete location: %w", err)
	}
	if tag.RowsAffected() == 0 {
		err = fmt.Errorf("%w: %s", store.ErrLocationNotFound, id)
		otel.RecordError(span, err)
		return err
	}

	slog.InfoContext(ctx, "Location deleted", "id", id)
	return nil
}
