package nodewire

import (
	"log/slog"

	"github.com/randalmurphal/nodewire/pkg/nodewire/event"
	"github.com/randalmurphal/nodewire/pkg/nodewire/observability"
)

// networkConfig holds per-network configuration.
type networkConfig struct {
	resolver  NodeResolver
	logger    *slog.Logger
	metrics   observability.MetricsRecorder
	spans     observability.SpanManager
	publisher event.Publisher
}

// defaultNetworkConfig returns the default network configuration:
// no logging, no events, no-op metrics and tracing.
func defaultNetworkConfig() networkConfig {
	return networkConfig{
		metrics: observability.NoopMetrics{},
		spans:   observability.NoopSpanManager{},
	}
}

// Option configures a Network.
type Option func(*networkConfig)

// WithNodeResolver routes node lookups through an external resolver
// instead of the network's built-in registry. Use this when nodes live
// in a surrounding graph structure.
func WithNodeResolver(r NodeResolver) Option {
	return func(c *networkConfig) {
		c.resolver = r
	}
}

// WithLogger enables structured logging of topology mutations.
// A nil logger leaves logging disabled.
func WithLogger(logger *slog.Logger) Option {
	return func(c *networkConfig) {
		c.logger = logger
	}
}

// WithMetrics enables OpenTelemetry metrics for topology mutations.
//
// The recorder uses the global OTel meter provider. Configure the provider
// before creating the network:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetMeterProvider(yourProvider)
func WithMetrics(enabled bool) Option {
	return func(c *networkConfig) {
		if enabled {
			c.metrics = observability.NewMetricsRecorder()
		} else {
			c.metrics = observability.NoopMetrics{}
		}
	}
}

// WithTracing enables OpenTelemetry spans around connect and disconnect.
//
// The span manager uses the global OTel tracer provider. Configure the
// provider before creating the network:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetTracerProvider(yourProvider)
func WithTracing(enabled bool) Option {
	return func(c *networkConfig) {
		if enabled {
			c.spans = observability.NewSpanManager()
		} else {
			c.spans = observability.NoopSpanManager{}
		}
	}
}

// WithPublisher publishes a mutation event for every connect, disconnect,
// and reroute change. Publish errors are logged and never fail the
// mutation.
func WithPublisher(p event.Publisher) Option {
	return func(c *networkConfig) {
		c.publisher = p
	}
}
