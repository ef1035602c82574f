package database

import (
	"context"
	"time"
)

const healthTimeout = 2 * time.Second

// Pinger is anything that can confirm its backing connection is alive.
type Pinger interface {
	Ping(ctx context.Context) error
}

// CheckHealth pings p with a short deadline.
func CheckHealth(ctx context.Context, p Pinger) error {
	ctx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()

	return p.Ping(ctx)
}
