package events

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/dejobratic/tomoca/internal/telemetry"
)

// Publisher is every event the storefront emits.
type Publisher interface {
	PublishCartCleared(ctx context.Context, itemCount int) error
	PublishOrderConfirmed(ctx context.Context, confirmationNumber string, itemCount int) error
}

// ObservableBus wraps a Publisher with spans and publish latency metrics.
type ObservableBus struct {
	bus     Publisher
	metrics *Metrics
}

func NewObservableBus(bus Publisher, metrics *Metrics) *ObservableBus {
	return &ObservableBus{bus: bus, metrics: metrics}
}

func (e *ObservableBus) PublishCartCleared(ctx context.Context, itemCount int) error {
	return e.observe(ctx, TopicCartCleared, []attribute.KeyValue{
		attribute.Int("cart.item_count", itemCount),
	}, func(ctx context.Context) error {
		return e.bus.PublishCartCleared(ctx, itemCount)
	})
}

func (e *ObservableBus) PublishOrderConfirmed(ctx context.Context, confirmationNumber string, itemCount int) error {
	return e.observe(ctx, TopicOrderConfirmed, []attribute.KeyValue{
		attribute.String("order.confirmation_number", confirmationNumber),
		attribute.Int("order.item_count", itemCount),
	}, func(ctx context.Context) error {
		return e.bus.PublishOrderConfirmed(ctx, confirmationNumber, itemCount)
	})
}

func (e *ObservableBus) observe(ctx context.Context, topic string, attrs []attribute.KeyValue, publish func(context.Context) error) error {
	ctx, span := telemetry.StartSpan(ctx, "EventBus.Publish")
	defer span.End()

	telemetry.AddSpanAttributes(span, attribute.String("event.type", topic))
	telemetry.AddSpanAttributes(span, attrs...)

	start := time.Now()
	err := publish(ctx)
	e.metrics.RecordPublish(ctx, topic, time.Since(start).Seconds(), err == nil)

	if err != nil {
		telemetry.RecordSpanError(span, err)
		return err
	}

	telemetry.SetSpanSuccess(span)
	return nil
}
