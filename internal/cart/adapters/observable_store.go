package adapters

import (
	"context"
	"errors"
	"time"

	"github.com/dejobratic/tomoca/internal/cart/ports"
	"github.com/dejobratic/tomoca/internal/database"
	"github.com/dejobratic/tomoca/internal/telemetry"
	"go.opentelemetry.io/otel/attribute"
)

// ObservableStore traces and times every snapshot store call.
type ObservableStore struct {
	store   ports.SnapshotStore
	backend string
	metrics *database.Metrics
}

func NewObservableStore(store ports.SnapshotStore, backend string, metrics *database.Metrics) *ObservableStore {
	return &ObservableStore{
		store:   store,
		backend: backend,
		metrics: metrics,
	}
}

func (s *ObservableStore) Get(ctx context.Context, key string) ([]byte, error) {
	ctx, span := telemetry.StartSpan(ctx, "SnapshotStore.Get")
	defer span.End()

	telemetry.AddSpanAttributes(span,
		attribute.String("cart.storage_key", key),
		attribute.String("store.backend", s.backend),
		attribute.String("operation", "get"),
	)

	start := time.Now()
	data, err := s.store.Get(ctx, key)
	duration := time.Since(start).Seconds()

	s.metrics.RecordQuery(ctx, s.backend, "get_cart_snapshot", duration)

	if err != nil {
		if errors.Is(err, ports.ErrSnapshotNotFound) {
			telemetry.AddSpanEvent(span, "snapshot.missing")
			telemetry.SetSpanSuccess(span)
			return nil, err
		}
		telemetry.RecordSpanError(span, err)
		return nil, err
	}

	telemetry.AddSpanAttributes(span, attribute.Int("snapshot.bytes", len(data)))
	telemetry.SetSpanSuccess(span)
	return data, nil
}

func (s *ObservableStore) Put(ctx context.Context, key string, data []byte) error {
	ctx, span := telemetry.StartSpan(ctx, "SnapshotStore.Put")
	defer span.End()

	telemetry.AddSpanAttributes(span,
		attribute.String("cart.storage_key", key),
		attribute.String("store.backend", s.backend),
		attribute.String("operation", "put"),
		attribute.Int("snapshot.bytes", len(data)),
	)

	start := time.Now()
	err := s.store.Put(ctx, key, data)
	duration := time.Since(start).Seconds()

	s.metrics.RecordQuery(ctx, s.backend, "put_cart_snapshot", duration)

	if err != nil {
		telemetry.RecordSpanError(span, err)
		return err
	}

	telemetry.SetSpanSuccess(span)
	return nil
}
