package observability

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Attribute keys.
const (
	AttrStage    = "pipeline.stage"
	AttrProvider = "provider.name"
	AttrOutcome  = "pipeline.outcome"
	AttrReportID = "report.id"
)

// Telemetry holds the tracer and counters the pipeline reports to.
type Telemetry struct {
	tracer           trace.Tracer
	runs             metric.Int64Counter
	providerFailures metric.Int64Counter
	degraded         metric.Int64Counter
}

// NewTelemetry builds instruments on the given providers.
func NewTelemetry(tp trace.TracerProvider, mp metric.MeterProvider) (*Telemetry, error) {
	meter := mp.Meter(instrumentationName)

	runs, err := meter.Int64Counter("pipeline.runs",
		metric.WithDescription("Pipeline runs by outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating pipeline.runs counter: %w", err)
	}
	providerFailures, err := meter.Int64Counter("provider.failures",
		metric.WithDescription("Failed provider attempts by provider"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating provider.failures counter: %w", err)
	}
	degraded, err := meter.Int64Counter("pipeline.degraded",
		metric.WithDescription("Stages that continued with a substitute value"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating pipeline.degraded counter: %w", err)
	}

	return &Telemetry{
		tracer:           tp.Tracer(instrumentationName),
		runs:             runs,
		providerFailures: providerFailures,
		degraded:         degraded,
	}, nil
}

// Global uses whatever providers are registered with otel.
func Global() *Telemetry {
	t, err := NewTelemetry(otel.GetTracerProvider(), otel.GetMeterProvider())
	if err != nil {
		// the global delegating meter does not fail instrument creation
		panic(err)
	}
	return t
}

func (t *Telemetry) StartStage(ctx context.Context, stage string) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, "pipeline."+stage, trace.WithAttributes(attribute.String(AttrStage, stage)))
}

func (t *Telemetry) StartAttempt(ctx context.Context, stage, provider string) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, "provider."+provider, trace.WithAttributes(
		attribute.String(AttrStage, stage),
		attribute.String(AttrProvider, provider),
	))
}

// EndSpan records err, if any, and ends the span.
func EndSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func (t *Telemetry) RecordRun(ctx context.Context, outcome string) {
	t.runs.Add(ctx, 1, metric.WithAttributes(attribute.String(AttrOutcome, outcome)))
}

func (t *Telemetry) RecordProviderFailure(ctx context.Context, stage, provider string) {
	t.providerFailures.Add(ctx, 1, metric.WithAttributes(
		attribute.String(AttrStage, stage),
		attribute.String(AttrProvider, provider),
	))
}

func (t *Telemetry) RecordDegraded(ctx context.Context, stage string) {
	t.degraded.Add(ctx, 1, metric.WithAttributes(attribute.String(AttrStage, stage)))
}

func ReportIDAttr(id string) attribute.KeyValue {
	return attribute.String(AttrReportID, id)
}
