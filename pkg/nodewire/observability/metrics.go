package observability

import (
	"context"
	"log/slog"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records nodewire topology metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordLinkConnected records a link registration and the depth of
	// the reroute chain it was threaded through.
	RecordLinkConnected(ctx context.Context, chainDepth int)

	// RecordLinkDisconnected records a link removal.
	RecordLinkDisconnected(ctx context.Context)

	// RecordFloatingLink records registration of a floating link.
	RecordFloatingLink(ctx context.Context)

	// RecordRerouteCreated records creation of a waypoint.
	RecordRerouteCreated(ctx context.Context)

	// RecordRerouteRemoved records removal of a waypoint.
	RecordRerouteRemoved(ctx context.Context)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	linksConnected    metric.Int64Counter
	linksDisconnected metric.Int64Counter
	floatingLinks     metric.Int64Counter
	reroutesCreated   metric.Int64Counter
	reroutesRemoved   metric.Int64Counter
	chainDepth        metric.Int64Histogram
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

// getDefaultMetrics returns the default OTel metrics instance.
// Lazily initializes the metrics on first call.
func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

// newOtelMetrics creates a new OTel metrics instance.
func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("nodewire")

	linksConnected, err := meter.Int64Counter("nodewire.links.connected",
		metric.WithDescription("Number of links connected"),
	)
	if err != nil {
		return nil, err
	}

	linksDisconnected, err := meter.Int64Counter("nodewire.links.disconnected",
		metric.WithDescription("Number of links disconnected"),
	)
	if err != nil {
		return nil, err
	}

	floatingLinks, err := meter.Int64Counter("nodewire.links.floating_created",
		metric.WithDescription("Number of floating links registered"),
	)
	if err != nil {
		return nil, err
	}

	reroutesCreated, err := meter.Int64Counter("nodewire.reroutes.created",
		metric.WithDescription("Number of reroutes created"),
	)
	if err != nil {
		return nil, err
	}

	reroutesRemoved, err := meter.Int64Counter("nodewire.reroutes.removed",
		metric.WithDescription("Number of reroutes removed"),
	)
	if err != nil {
		return nil, err
	}

	chainDepth, err := meter.Int64Histogram("nodewire.chain.depth",
		metric.WithDescription("Reroute chain depth at link connect"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		linksConnected:    linksConnected,
		linksDisconnected: linksDisconnected,
		floatingLinks:     floatingLinks,
		reroutesCreated:   reroutesCreated,
		reroutesRemoved:   reroutesRemoved,
		chainDepth:        chainDepth,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses OpenTelemetry.
// If metrics initialization fails, returns a no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

// RecordLinkConnected records a link registration.
func (m *otelMetrics) RecordLinkConnected(ctx context.Context, chainDepth int) {
	m.linksConnected.Add(ctx, 1)
	m.chainDepth.Record(ctx, int64(chainDepth))
}

// RecordLinkDisconnected records a link removal.
func (m *otelMetrics) RecordLinkDisconnected(ctx context.Context) {
	m.linksDisconnected.Add(ctx, 1)
}

// RecordFloatingLink records a floating link registration.
func (m *otelMetrics) RecordFloatingLink(ctx context.Context) {
	m.floatingLinks.Add(ctx, 1)
}

// RecordRerouteCreated records a waypoint creation.
func (m *otelMetrics) RecordRerouteCreated(ctx context.Context) {
	m.reroutesCreated.Add(ctx, 1)
}

// RecordRerouteRemoved records a waypoint removal.
func (m *otelMetrics) RecordRerouteRemoved(ctx context.Context) {
	m.reroutesRemoved.Add(ctx, 1)
}
