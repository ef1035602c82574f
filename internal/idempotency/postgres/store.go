package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dejobratic/tomoca/internal/checkout/ports"
)

// Store keeps checkout submission responses in the idempotency_keys table.
type Store struct {
	pool *pgxpool.Pool
	ttl  time.Duration
}

// NewStore returns a Store. A ttl of zero or less uses ports.DefaultIdempotencyTTL.
func NewStore(pool *pgxpool.Pool, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = ports.DefaultIdempotencyTTL
	}
	return &Store{pool: pool, ttl: ttl}
}

func (s *Store) Get(ctx context.Context, key string) (*ports.StoredResponse, error) {
	query := `
		SELECT status_code, body, confirmation_number
		FROM idempotency_keys
		WHERE key = $1 AND created_at > NOW() - make_interval(secs => $2)
	`

	var resp ports.StoredResponse
	err := s.pool.QueryRow(ctx, query, key, s.ttl.Seconds()).Scan(
		&resp.StatusCode,
		&resp.Body,
		&resp.ConfirmationNumber,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select idempotency key: %w", err)
	}

	return &resp, nil
}

// Save keeps the first response for a live key and replaces an expired one.
func (s *Store) Save(ctx context.Context, key string, response ports.StoredResponse) error {
	query := `
		INSERT INTO idempotency_keys (key, status_code, body, confirmation_number)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (key) DO UPDATE
		SET status_code = EXCLUDED.status_code,
			body = EXCLUDED.body,
			confirmation_number = EXCLUDED.confirmation_number,
			created_at = NOW()
		WHERE idempotency_keys.created_at <= NOW() - make_interval(secs => $5)
	`

	_, err := s.pool.Exec(ctx, query, key, response.StatusCode, response.Body, response.ConfirmationNumber, s.ttl.Seconds())
	if err != nil {
		return fmt.Errorf("upsert idempotency key: %w", err)
	}

	return nil
}
