package events

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type Metrics struct {
	publishDuration metric.Float64Histogram
}

func NewMetrics(meter metric.Meter) (*Metrics, error) {
	publishDuration, err := meter.Float64Histogram(
		"event_publish_duration_seconds",
		metric.WithDescription("Event publish latency"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("create event_publish_duration histogram: %w", err)
	}

	return &Metrics{publishDuration: publishDuration}, nil
}

func (m *Metrics) RecordPublish(ctx context.Context, topic string, durationSeconds float64, success bool) {
	status := "success"
	if !success {
		status = "error"
	}
	m.publishDuration.Record(ctx, durationSeconds, metric.WithAttributes(
		attribute.String("event", topic),
		attribute.String("status", status),
	))
}
