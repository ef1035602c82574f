package adapters_test

import (
	"context"
	"errors"
	"testing"

	"github.com/dejobratic/tomoca/internal/cart/adapters"
	"github.com/dejobratic/tomoca/internal/cart/adapters/memory"
	"github.com/dejobratic/tomoca/internal/cart/ports"
	"github.com/dejobratic/tomoca/internal/database"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func setup(t *testing.T) (*adapters.ObservableStore, *tracetest.InMemoryExporter, *sdkmetric.ManualReader) {
	t.Helper()

	exp := tracetest.NewInMemoryExporter()
	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSyncer(exp)))
	t.Cleanup(func() { otel.SetTracerProvider(previous) })

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	metrics, err := database.NewMetrics(mp.Meter("test"))
	if err != nil {
		t.Fatalf("NewMetrics() failed: %v", err)
	}

	return adapters.NewObservableStore(memory.NewStore(), "memory", metrics), exp, reader
}

func TestObservableStore(t *testing.T) {
	t.Run("missing snapshot is not a span error", func(t *testing.T) {
		store, exp, _ := setup(t)

		_, err := store.Get(context.Background(), "tomoca-cart")
		if !errors.Is(err, ports.ErrSnapshotNotFound) {
			t.Fatalf("expected ErrSnapshotNotFound, got %v", err)
		}

		spans := exp.GetSpans()
		if len(spans) != 1 {
			t.Fatalf("expected 1 span, got %d", len(spans))
		}
		if spans[0].Name != "SnapshotStore.Get" {
			t.Errorf("unexpected span name %s", spans[0].Name)
		}
		if spans[0].Status.Code == codes.Error {
			t.Error("expected missing snapshot not to mark the span as failed")
		}
	})

	t.Run("records query durations per operation", func(t *testing.T) {
		store, exp, reader := setup(t)
		ctx := context.Background()

		if err := store.Put(ctx, "tomoca-cart", []byte(`[]`)); err != nil {
			t.Fatalf("put failed: %v", err)
		}
		if _, err := store.Get(ctx, "tomoca-cart"); err != nil {
			t.Fatalf("get failed: %v", err)
		}

		if len(exp.GetSpans()) != 2 {
			t.Errorf("expected 2 spans, got %d", len(exp.GetSpans()))
		}

		var rm metricdata.ResourceMetrics
		if err := reader.Collect(ctx, &rm); err != nil {
			t.Fatalf("Failed to collect metrics: %v", err)
		}

		found := false
		for _, sm := range rm.ScopeMetrics {
			for _, m := range sm.Metrics {
				if m.Name == "db_query_duration_seconds" {
					found = true
					histogram, ok := m.Data.(metricdata.Histogram[float64])
					if !ok {
						t.Fatal("Expected Histogram[float64] data type")
					}
					if len(histogram.DataPoints) != 2 {
						t.Errorf("Expected 2 data points, got %d", len(histogram.DataPoints))
					}
				}
			}
		}
		if !found {
			t.Error("db_query_duration_seconds metric not found")
		}
	})
}
