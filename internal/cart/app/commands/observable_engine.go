package commands

import (
	"context"
	"log/slog"
	"time"

	"github.com/dejobratic/tomoca/internal/cart/domain"
	"github.com/dejobratic/tomoca/internal/cart/metrics"
	"github.com/dejobratic/tomoca/internal/telemetry"
	"go.opentelemetry.io/otel/attribute"
)

type ObservableCommandHandler struct {
	handler CommandHandler
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func NewObservableCommandHandler(handler CommandHandler, logger *slog.Logger, metrics *metrics.Metrics) *ObservableCommandHandler {
	return &ObservableCommandHandler{
		handler: handler,
		logger:  logger,
		metrics: metrics,
	}
}

func (o *ObservableCommandHandler) Handle(ctx context.Context, cmd domain.Command) (domain.State, error) {
	ctx, span := telemetry.StartSpan(ctx, "CartCommand.Handle")
	defer span.End()

	name := cmd.Name()
	telemetry.AddSpanAttributes(span,
		attribute.String("cart.command", name),
		attribute.Bool("cart.persisted", cmd.AffectsItems()),
	)
	telemetry.AddSpanAttributes(span, commandAttributes(cmd)...)

	start := time.Now()
	var success bool
	defer func() {
		duration := time.Since(start).Seconds()
		o.metrics.RecordCommandDuration(ctx, name, duration)
		o.metrics.RecordCommand(ctx, name, success)
	}()

	state, err := o.handler.Handle(ctx, cmd)
	totals := state.Totals()
	o.metrics.RecordItemCount(ctx, totals.ItemCount)

	if err != nil {
		telemetry.RecordSpanError(span, err)
		o.logger.ErrorContext(ctx, "cart command failed",
			"error", err,
			"command", name,
		)
		return state, err
	}

	telemetry.AddSpanAttributes(span,
		attribute.Int("cart.line_items", len(state.Items)),
		attribute.Int("cart.item_count", totals.ItemCount),
		attribute.String("cart.total", totals.Total.StringFixed(2)),
		attribute.Bool("cart.open", state.IsOpen),
	)

	o.logger.InfoContext(ctx, "cart command handled",
		"command", name,
		"line_items", len(state.Items),
		"item_count", totals.ItemCount,
		"subtotal", totals.Subtotal.StringFixed(2),
	)

	success = true
	telemetry.SetSpanSuccess(span)

	return state, nil
}

func commandAttributes(cmd domain.Command) []attribute.KeyValue {
	switch c := cmd.(type) {
	case domain.AddItem:
		return []attribute.KeyValue{
			attribute.String("product.id", c.Product.ID),
			attribute.Int("cart.quantity", c.Quantity),
			attribute.String("cart.subscription_interval", c.Interval.String()),
		}
	case domain.RemoveItem:
		return []attribute.KeyValue{attribute.String("product.id", c.ProductID)}
	case domain.UpdateQuantity:
		return []attribute.KeyValue{
			attribute.String("product.id", c.ProductID),
			attribute.Int("cart.quantity", c.Quantity),
		}
	case domain.UpdateSubscription:
		return []attribute.KeyValue{
			attribute.String("product.id", c.ProductID),
			attribute.String("cart.subscription_interval", c.Interval.String()),
		}
	case domain.SetCartOpen:
		return []attribute.KeyValue{attribute.Bool("cart.open", c.Open)}
	case domain.LoadCart:
		return []attribute.KeyValue{attribute.Int("cart.line_items", len(c.Items))}
	default:
		return nil
	}
}
