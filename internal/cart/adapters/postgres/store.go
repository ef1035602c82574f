package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/dejobratic/tomoca/internal/cart/ports"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	query := `
		SELECT payload
		FROM cart_snapshots
		WHERE key = $1
	`

	var payload string
	err := s.pool.QueryRow(ctx, query, key).Scan(&payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ports.ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("select cart snapshot: %w", err)
	}

	return []byte(payload), nil
}

func (s *Store) Put(ctx context.Context, key string, data []byte) error {
	query := `
		INSERT INTO cart_snapshots (key, payload, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE
		SET payload = EXCLUDED.payload, updated_at = EXCLUDED.updated_at
	`

	_, err := s.pool.Exec(ctx, query, key, string(data))
	if err != nil {
		return fmt.Errorf("upsert cart snapshot: %w", err)
	}

	return nil
}
