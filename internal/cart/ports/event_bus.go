package ports

import "context"

// EventBus defines the contract for publishing cart lifecycle events.
type EventBus interface {
	PublishCartCleared(ctx context.Context, itemCount int) error
}
