package ports

import "context"

// EventBus defines the contract for publishing checkout events.
type EventBus interface {
	PublishOrderConfirmed(ctx context.Context, confirmationNumber string, itemCount int) error
}
