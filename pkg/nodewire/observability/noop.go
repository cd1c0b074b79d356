package observability

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// NoopMetrics is a MetricsRecorder that does nothing.
// Use when metrics are disabled to avoid overhead.
type NoopMetrics struct{}

// Compile-time interface check.
var _ MetricsRecorder = NoopMetrics{}

// RecordLinkConnected does nothing.
func (NoopMetrics) RecordLinkConnected(_ context.Context, _ int) {}

// RecordLinkDisconnected does nothing.
func (NoopMetrics) RecordLinkDisconnected(_ context.Context) {}

// RecordFloatingLink does nothing.
func (NoopMetrics) RecordFloatingLink(_ context.Context) {}

// RecordRerouteCreated does nothing.
func (NoopMetrics) RecordRerouteCreated(_ context.Context) {}

// RecordRerouteRemoved does nothing.
func (NoopMetrics) RecordRerouteRemoved(_ context.Context) {}

// NoopSpanManager is a SpanManager that does nothing.
// Use when tracing is disabled to avoid overhead.
type NoopSpanManager struct{}

// Compile-time interface check.
var _ SpanManager = NoopSpanManager{}

// noopSpan is a span that does nothing.
// We use the OTel noop package for a proper no-op span implementation.
var noopSpan = noop.Span{}

// StartConnectSpan returns the context unchanged and a no-op span.
func (NoopSpanManager) StartConnectSpan(ctx context.Context, _, _ int64) (context.Context, trace.Span) {
	return ctx, noopSpan
}

// StartDisconnectSpan returns the context unchanged and a no-op span.
func (NoopSpanManager) StartDisconnectSpan(ctx context.Context, _ int64) (context.Context, trace.Span) {
	return ctx, noopSpan
}

// EndSpanWithError does nothing.
func (NoopSpanManager) EndSpanWithError(_ trace.Span, _ error) {}

// AddSpanEvent does nothing.
func (NoopSpanManager) AddSpanEvent(_ context.Context, _ string, _ ...attribute.KeyValue) {}
