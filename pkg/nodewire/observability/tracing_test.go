package observability

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// setupTracingTest creates a test tracer provider with an in-memory span recorder.
func setupTracingTest(t *testing.T) (*tracetest.InMemoryExporter, func()) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exporter),
	)

	originalProvider := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)

	// Update the package-level tracer
	tracer = otel.Tracer("nodewire")

	cleanup := func() {
		otel.SetTracerProvider(originalProvider)
		if err := tp.Shutdown(context.Background()); err != nil {
			t.Logf("Error shutting down tracer provider: %v", err)
		}
	}

	return exporter, cleanup
}

func TestStartConnectSpan(t *testing.T) {
	exporter, cleanup := setupTracingTest(t)
	defer cleanup()

	m := NewSpanManager()

	ctx := context.Background()
	newCtx, span := m.StartConnectSpan(ctx, 10, 20)
	require.NotNil(t, span)
	assert.NotEqual(t, ctx, newCtx)

	span.End()

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)

	s := spans[0]
	assert.Equal(t, "nodewire.connect", s.Name)

	var originID, targetID int64
	for _, attr := range s.Attributes {
		switch attr.Key {
		case "origin.id":
			originID = attr.Value.AsInt64()
		case "target.id":
			targetID = attr.Value.AsInt64()
		}
	}
	assert.Equal(t, int64(10), originID)
	assert.Equal(t, int64(20), targetID)
}

func TestStartDisconnectSpan(t *testing.T) {
	exporter, cleanup := setupTracingTest(t)
	defer cleanup()

	m := NewSpanManager()

	_, span := m.StartDisconnectSpan(context.Background(), 7)
	span.End()

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)

	s := spans[0]
	assert.Equal(t, "nodewire.disconnect", s.Name)

	var linkID int64
	for _, attr := range s.Attributes {
		if attr.Key == "link.id" {
			linkID = attr.Value.AsInt64()
		}
	}
	assert.Equal(t, int64(7), linkID)
}

func TestEndSpanWithError(t *testing.T) {
	exporter, cleanup := setupTracingTest(t)
	defer cleanup()

	m := NewSpanManager()

	t.Run("success sets ok status", func(t *testing.T) {
		exporter.Reset()

		_, span := m.StartConnectSpan(context.Background(), 1, 2)
		m.EndSpanWithError(span, nil)

		spans := exporter.GetSpans()
		require.Len(t, spans, 1)
		assert.Equal(t, codes.Ok, spans[0].Status.Code)
	})

	t.Run("error is recorded", func(t *testing.T) {
		exporter.Reset()

		_, span := m.StartDisconnectSpan(context.Background(), 7)
		m.EndSpanWithError(span, errors.New("reroute chain cycle detected"))

		spans := exporter.GetSpans()
		require.Len(t, spans, 1)
		assert.Equal(t, codes.Error, spans[0].Status.Code)
		assert.Equal(t, "reroute chain cycle detected", spans[0].Status.Description)
		require.NotEmpty(t, spans[0].Events)
	})

	t.Run("nil span is a no-op", func(t *testing.T) {
		assert.NotPanics(t, func() {
			m.EndSpanWithError(nil, errors.New("ignored"))
		})
	})
}

func TestAddSpanEvent(t *testing.T) {
	exporter, cleanup := setupTracingTest(t)
	defer cleanup()

	m := NewSpanManager()

	ctx, span := m.StartConnectSpan(context.Background(), 1, 2)
	m.AddSpanEvent(ctx, "reroute.visited", attribute.Int64("reroute.id", 3))
	span.End()

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	require.Len(t, spans[0].Events, 1)
	assert.Equal(t, "reroute.visited", spans[0].Events[0].Name)
}

func TestNoopSpanManager(t *testing.T) {
	m := NoopSpanManager{}

	ctx := context.Background()
	sameCtx, span := m.StartConnectSpan(ctx, 1, 2)
	assert.Equal(t, ctx, sameCtx)
	require.NotNil(t, span)

	assert.NotPanics(t, func() {
		m.EndSpanWithError(span, errors.New("ignored"))
		m.AddSpanEvent(ctx, "ignored")
	})
}
