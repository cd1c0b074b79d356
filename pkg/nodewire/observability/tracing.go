package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Tracer is the nodewire tracer instance.
// Uses the global OTel tracer provider.
var tracer = otel.Tracer("nodewire")

// SpanManager handles trace span lifecycle.
// Use NewSpanManager() for OTel tracing or NoopSpanManager{} when disabled.
type SpanManager interface {
	// StartConnectSpan starts a span for a link connect.
	// Returns the context with span and the span itself.
	StartConnectSpan(ctx context.Context, originID, targetID int64) (context.Context, trace.Span)

	// StartDisconnectSpan starts a span for a link disconnect.
	StartDisconnectSpan(ctx context.Context, linkID int64) (context.Context, trace.Span)

	// EndSpanWithError completes a span, optionally recording an error.
	EndSpanWithError(span trace.Span, err error)

	// AddSpanEvent adds an event to the current span in context.
	AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue)
}

// otelSpanManager implements SpanManager using OpenTelemetry.
type otelSpanManager struct{}

// NewSpanManager returns a SpanManager that uses OpenTelemetry.
//
// The span manager uses the global OTel tracer provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetTracerProvider(yourProvider)
func NewSpanManager() SpanManager {
	return &otelSpanManager{}
}

// StartConnectSpan starts a span for a link connect.
func (m *otelSpanManager) StartConnectSpan(ctx context.Context, originID, targetID int64) (context.Context, trace.Span) {
	return tracer.Start(ctx, "nodewire.connect",
		trace.WithAttributes(
			attribute.Int64("origin.id", originID),
			attribute.Int64("target.id", targetID),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// StartDisconnectSpan starts a span for a link disconnect.
func (m *otelSpanManager) StartDisconnectSpan(ctx context.Context, linkID int64) (context.Context, trace.Span) {
	return tracer.Start(ctx, "nodewire.disconnect",
		trace.WithAttributes(
			attribute.Int64("link.id", linkID),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// EndSpanWithError completes a span, optionally recording an error.
func (m *otelSpanManager) EndSpanWithError(span trace.Span, err error) {
	if span == nil {
		return
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// AddSpanEvent adds an event to the current span.
func (m *otelSpanManager) AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue) {
	span := trace.SpanFromContext(ctx)
	if span == nil || !span.IsRecording() {
		return
	}
	span.AddEvent(name, trace.WithAttributes(attrs...))
}
