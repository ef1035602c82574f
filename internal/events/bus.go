package events

import (
	"context"
	"log/slog"
)

const (
	TopicCartCleared    = "cart.cleared"
	TopicOrderConfirmed = "order.confirmed"
)

// LogBus writes storefront events to the log instead of a broker.
type LogBus struct {
	logger *slog.Logger
}

// NewLogBus returns a LogBus that logs through logger at debug level.
func NewLogBus(logger *slog.Logger) *LogBus {
	return &LogBus{logger: logger}
}

func (b *LogBus) PublishCartCleared(ctx context.Context, itemCount int) error {
	b.logger.DebugContext(ctx, "event::cart_cleared", "item_count", itemCount)
	return nil
}

func (b *LogBus) PublishOrderConfirmed(ctx context.Context, confirmationNumber string, itemCount int) error {
	b.logger.DebugContext(ctx, "event::order_confirmed",
		"confirmation_number", confirmationNumber,
		"item_count", itemCount,
	)
	return nil
}
