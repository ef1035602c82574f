package ports

import (
	"context"
	"time"
)

// DefaultIdempotencyTTL is how long a submission key is remembered.
const DefaultIdempotencyTTL = 24 * time.Hour

// StoredResponse contains the response data to replay for a reused key.
type StoredResponse struct {
	StatusCode         int
	Body               []byte
	ConfirmationNumber string
}

// IdempotencyStore lets an order submission be retried without placing it twice.
// Keys older than the store's TTL read as unused and may be saved again.
type IdempotencyStore interface {
	Get(ctx context.Context, key string) (*StoredResponse, error)
	Save(ctx context.Context, key string, response StoredResponse) error
}
