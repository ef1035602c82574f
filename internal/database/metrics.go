package database

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics times storage calls, whichever backend serves them.
type Metrics struct {
	queryDuration metric.Float64Histogram
}

func NewMetrics(meter metric.Meter) (*Metrics, error) {
	queryDuration, err := meter.Float64Histogram(
		"db_query_duration_seconds",
		metric.WithDescription("Storage query duration"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("create db_query_duration histogram: %w", err)
	}

	return &Metrics{queryDuration: queryDuration}, nil
}

func (m *Metrics) RecordQuery(ctx context.Context, backend, operation string, durationSeconds float64) {
	m.queryDuration.Record(ctx, durationSeconds, metric.WithAttributes(
		attribute.String("backend", backend),
		attribute.String("operation", operation),
	))
}
