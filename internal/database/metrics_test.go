package database

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func TestRecordQuery(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	metrics, err := NewMetrics(mp.Meter("test"))
	if err != nil {
		t.Fatalf("NewMetrics() failed: %v", err)
	}

	ctx := context.Background()
	metrics.RecordQuery(ctx, "postgres", "put_cart_snapshot", 0.1)
	metrics.RecordQuery(ctx, "postgres", "get_cart_snapshot", 0.05)
	metrics.RecordQuery(ctx, "file", "get_cart_snapshot", 0.01)

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(ctx, &rm); err != nil {
		t.Fatalf("Failed to collect metrics: %v", err)
	}

	var histogram metricdata.Histogram[float64]
	found := false
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name == "db_query_duration_seconds" {
				found = true
				histogram, _ = m.Data.(metricdata.Histogram[float64])
			}
		}
	}
	if !found {
		t.Fatal("db_query_duration_seconds metric not found")
	}
	if len(histogram.DataPoints) != 3 {
		t.Fatalf("Expected 3 data points, got %d", len(histogram.DataPoints))
	}

	backends := map[string]int{}
	for _, dp := range histogram.DataPoints {
		if v, ok := dp.Attributes.Value(attribute.Key("backend")); ok {
			backends[v.AsString()]++
		}
	}
	if backends["postgres"] != 2 || backends["file"] != 1 {
		t.Errorf("unexpected backend split %v", backends)
	}
}
