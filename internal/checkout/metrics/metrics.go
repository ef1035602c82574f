package metrics

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type Metrics struct {
	ordersTotal     metric.Int64Counter
	stepTransitions metric.Int64Counter
	orderValue      metric.Float64Histogram
}

func NewMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}

	var err error

	m.ordersTotal, err = meter.Int64Counter(
		"checkout_orders_total",
		metric.WithDescription("Total number of checkout submissions"),
		metric.WithUnit("{order}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create checkout_orders_total counter: %w", err)
	}

	m.stepTransitions, err = meter.Int64Counter(
		"checkout_step_transitions_total",
		metric.WithDescription("Total number of checkout step changes"),
		metric.WithUnit("{transition}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create checkout_step_transitions_total counter: %w", err)
	}

	m.orderValue, err = meter.Float64Histogram(
		"checkout_order_value",
		metric.WithDescription("Final total of confirmed orders including shipping"),
		metric.WithUnit("{USD}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create checkout_order_value histogram: %w", err)
	}

	return m, nil
}

func (m *Metrics) RecordOrder(ctx context.Context, success bool) {
	status := "success"
	if !success {
		status = "error"
	}
	m.ordersTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("status", status),
	))
}

func (m *Metrics) RecordTransition(ctx context.Context, from, to string) {
	m.stepTransitions.Add(ctx, 1, metric.WithAttributes(
		attribute.String("from", from),
		attribute.String("to", to),
	))
}

func (m *Metrics) RecordOrderValue(ctx context.Context, value float64) {
	m.orderValue.Record(ctx, value)
}
