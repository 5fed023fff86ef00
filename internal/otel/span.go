// Package otel provides OpenTelemetry instrumentation utilities for the
// location service.
package otel

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Common attribute keys for business context used across the application.
// Using shared keys ensures consistent attribute naming in traces.
const (
	AttrLocationType   = attribute.Key("location.type")
	AttrLocationTarget = attribute.Key("location.target")
	AttrLocationID     = attribute.Key("location.id")
	AttrDryRun         = attribute.Key("location.dry_run")
	AttrEntityRef      = attribute.Key("entity.ref")
	AttrResultCount    = attribute.Key("result.count")
)

// StartSpan starts a new span if the tracer is non-nil, otherwise returns
// a no-op span. This provides graceful degradation when tracing is
// disabled.
func StartSpan(
	ctx context.Context,
	tracer trace.Tracer,
	name string,
	opts ...trace.SpanStartOption,
) (context.Context, trace.Span) {
	if tracer == nil {
		return ctx, trace.SpanFromContext(ctx)
	}
	return tracer.Start(ctx, name, opts...)
}

// RecordError records an error on a span and sets the span status to
// error. It safely handles nil spans and nil errors. The status
// description is kept generic so connection strings and targets never
// leak into trace status; full details remain on the span event.
func RecordError(span trace.Span, err error) {
	if err != nil && span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "operation failed")
	}
}
