package ports

import (
	"context"
	"errors"

	"github.com/dejobratic/tomoca/internal/cart/domain"
)

// CartRepository loads and saves the cart's line items under one storage key.
type CartRepository interface {
	// Load returns the saved items, or an empty list when nothing usable is stored.
	Load(ctx context.Context) ([]domain.LineItem, error)
	Save(ctx context.Context, items []domain.LineItem) error
}

// SnapshotStore is a key-value slot for serialized cart snapshots.
type SnapshotStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte) error
}

var (
	// ErrSnapshotNotFound is returned by a SnapshotStore when the key holds nothing.
	ErrSnapshotNotFound = errors.New("cart snapshot not found")

	// ErrSnapshotCorrupt is returned when the backing medium itself cannot be read back.
	ErrSnapshotCorrupt = errors.New("cart snapshot corrupt")

	// ErrInvalidItem is returned for cart input rejected at the boundary.
	ErrInvalidItem = errors.New("invalid cart item")
)
