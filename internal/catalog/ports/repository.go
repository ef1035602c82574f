package ports

import (
	"context"
	"errors"

	"github.com/dejobratic/tomoca/internal/catalog/domain"
)

// ProductRepository exposes the read-only catalog to the application layer.
type ProductRepository interface {
	List(ctx context.Context) ([]domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	Plans(ctx context.Context) ([]domain.SubscriptionPlan, error)
}

var (
	// ErrProductNotFound is returned when the requested product does not exist.
	ErrProductNotFound = errors.New("product not found")

	// ErrInvalidFilter is returned for unknown category, roast or sort values.
	ErrInvalidFilter = errors.New("invalid filter")
)
