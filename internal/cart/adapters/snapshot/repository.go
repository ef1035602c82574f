package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dejobratic/tomoca/internal/cart/domain"
	"github.com/dejobratic/tomoca/internal/cart/ports"
)

// DefaultKey is the storage key the storefront has always used.
const DefaultKey = "tomoca-cart"

// Repository implements ports.CartRepository as a JSON array under a single key.
type Repository struct {
	store  ports.SnapshotStore
	key    string
	logger *slog.Logger
}

// NewRepository binds the repository to one key of store.
func NewRepository(store ports.SnapshotStore, key string, logger *slog.Logger) *Repository {
	if key == "" {
		key = DefaultKey
	}
	return &Repository{store: store, key: key, logger: logger}
}

// Key is the storage key the repository reads and writes.
func (r *Repository) Key() string {
	return r.key
}

// Load returns the saved items. A missing or corrupt snapshot reads as an empty cart;
// corruption is logged and not returned. Store failures are returned.
func (r *Repository) Load(ctx context.Context) ([]domain.LineItem, error) {
	data, err := r.store.Get(ctx, r.key)
	switch {
	case errors.Is(err, ports.ErrSnapshotNotFound):
		return []domain.LineItem{}, nil
	case errors.Is(err, ports.ErrSnapshotCorrupt):
		r.discard(ctx, err)
		return []domain.LineItem{}, nil
	case err != nil:
		return nil, fmt.Errorf("read cart snapshot: %w", err)
	}

	items, err := Decode(data)
	if err != nil {
		r.discard(ctx, err)
		return []domain.LineItem{}, nil
	}
	return items, nil
}

// Save replaces the snapshot with items.
func (r *Repository) Save(ctx context.Context, items []domain.LineItem) error {
	data, err := Encode(items)
	if err != nil {
		return err
	}
	if err := r.store.Put(ctx, r.key, data); err != nil {
		return fmt.Errorf("write cart snapshot: %w", err)
	}
	return nil
}

func (r *Repository) discard(ctx context.Context, err error) {
	r.logger.WarnContext(ctx, "discarding unreadable cart snapshot",
		"key", r.key,
		"error", err,
	)
}

// Encode serializes items as a JSON array. A nil list encodes as [].
func Encode(items []domain.LineItem) ([]byte, error) {
	if items == nil {
		items = []domain.LineItem{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("encode cart snapshot: %w", err)
	}
	return data, nil
}

// Decode parses a snapshot and rejects it whole if any record is structurally invalid.
func Decode(data []byte) ([]domain.LineItem, error) {
	var items []domain.LineItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode cart snapshot: %w", err)
	}
	for i, item := range items {
		if err := item.Validate(); err != nil {
			return nil, fmt.Errorf("decode cart snapshot: record %d: %w", i, err)
		}
	}
	if items == nil {
		items = []domain.LineItem{}
	}
	return items, nil
}
