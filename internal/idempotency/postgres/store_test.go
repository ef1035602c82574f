//go:build integration

package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/dejobratic/tomoca/internal/checkout/ports"
	"github.com/dejobratic/tomoca/internal/database/databasetest"
	"github.com/dejobratic/tomoca/internal/idempotency/postgres"
)

func TestStoreSaveAndGet(t *testing.T) {
	store := postgres.NewStore(databasetest.NewPool(t), 0)
	ctx := context.Background()

	key := "checkout-submit-1"
	response := ports.StoredResponse{
		StatusCode:         201,
		Body:               []byte(`{"confirmation":{"confirmationNumber":"TMC-0000AAAA"}}`),
		ConfirmationNumber: "TMC-0000AAAA",
	}

	if err := store.Save(ctx, key, response); err != nil {
		t.Fatalf("failed to save idempotency key: %v", err)
	}

	retrieved, err := store.Get(ctx, key)
	if err != nil {
		t.Fatalf("failed to get idempotency key: %v", err)
	}
	if retrieved == nil {
		t.Fatal("expected response, got nil")
	}
	if retrieved.StatusCode != response.StatusCode {
		t.Errorf("expected status code %d, got %d", response.StatusCode, retrieved.StatusCode)
	}
	if string(retrieved.Body) != string(response.Body) {
		t.Errorf("expected body %s, got %s", response.Body, retrieved.Body)
	}
	if retrieved.ConfirmationNumber != response.ConfirmationNumber {
		t.Errorf("expected confirmation number %s, got %s", response.ConfirmationNumber, retrieved.ConfirmationNumber)
	}
}

func TestStoreGet_NotFound(t *testing.T) {
	store := postgres.NewStore(databasetest.NewPool(t), 0)

	retrieved, err := store.Get(context.Background(), "nonexistent-key")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if retrieved != nil {
		t.Errorf("expected nil response, got %v", retrieved)
	}
}

func TestStoreSave_Conflict(t *testing.T) {
	store := postgres.NewStore(databasetest.NewPool(t), 0)
	ctx := context.Background()

	key := "checkout-submit-conflict"
	first := ports.StoredResponse{StatusCode: 201, Body: []byte(`{}`), ConfirmationNumber: "TMC-1"}
	second := ports.StoredResponse{StatusCode: 200, Body: []byte(`{}`), ConfirmationNumber: "TMC-2"}

	if err := store.Save(ctx, key, first); err != nil {
		t.Fatalf("failed to save first response: %v", err)
	}
	if err := store.Save(ctx, key, second); err != nil {
		t.Fatalf("failed to save second response (conflict): %v", err)
	}

	retrieved, err := store.Get(ctx, key)
	if err != nil {
		t.Fatalf("failed to get response: %v", err)
	}
	if retrieved.ConfirmationNumber != first.ConfirmationNumber {
		t.Errorf("expected first response to be preserved, got %s", retrieved.ConfirmationNumber)
	}
}

func TestStoreExpiredKeyIsReusable(t *testing.T) {
	pool := databasetest.NewPool(t)
	store := postgres.NewStore(pool, time.Hour)
	ctx := context.Background()

	key := "checkout-submit-expired"
	if err := store.Save(ctx, key, ports.StoredResponse{StatusCode: 201, Body: []byte(`{}`), ConfirmationNumber: "TMC-OLD"}); err != nil {
		t.Fatalf("failed to save response: %v", err)
	}
	if _, err := pool.Exec(ctx, `UPDATE idempotency_keys SET created_at = NOW() - interval '2 hours' WHERE key = $1`, key); err != nil {
		t.Fatalf("failed to age key: %v", err)
	}

	retrieved, err := store.Get(ctx, key)
	if err != nil {
		t.Fatalf("failed to get response: %v", err)
	}
	if retrieved != nil {
		t.Fatalf("expected expired key to read as unused, got %+v", retrieved)
	}

	if err := store.Save(ctx, key, ports.StoredResponse{StatusCode: 201, Body: []byte(`{}`), ConfirmationNumber: "TMC-NEW"}); err != nil {
		t.Fatalf("failed to save over expired key: %v", err)
	}
	retrieved, err = store.Get(ctx, key)
	if err != nil || retrieved == nil {
		t.Fatalf("expected replacement response, got %v, %v", retrieved, err)
	}
	if retrieved.ConfirmationNumber != "TMC-NEW" {
		t.Errorf("expected TMC-NEW, got %s", retrieved.ConfirmationNumber)
	}
}
