package metrics

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type Metrics struct {
	commandsTotal   metric.Int64Counter
	commandDuration metric.Float64Histogram
	cartItems       metric.Int64Gauge
}

func NewMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}

	var err error

	m.commandsTotal, err = meter.Int64Counter(
		"cart_commands_total",
		metric.WithDescription("Total number of cart commands handled"),
		metric.WithUnit("{command}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create cart_commands_total counter: %w", err)
	}

	m.commandDuration, err = meter.Float64Histogram(
		"cart_command_duration_seconds",
		metric.WithDescription("Duration of cart commands including the persistence write"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("create cart_command_duration histogram: %w", err)
	}

	m.cartItems, err = meter.Int64Gauge(
		"cart_items",
		metric.WithDescription("Item count of the cart after the last command"),
		metric.WithUnit("{item}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create cart_items gauge: %w", err)
	}

	return m, nil
}

func (m *Metrics) RecordCommand(ctx context.Context, command string, success bool) {
	status := "success"
	if !success {
		status = "error"
	}
	m.commandsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("command", command),
		attribute.String("status", status),
	))
}

func (m *Metrics) RecordCommandDuration(ctx context.Context, command string, durationSeconds float64) {
	m.commandDuration.Record(ctx, durationSeconds, metric.WithAttributes(
		attribute.String("command", command),
	))
}

func (m *Metrics) RecordItemCount(ctx context.Context, count int) {
	m.cartItems.Record(ctx, int64(count))
}
