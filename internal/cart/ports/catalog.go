package ports

import (
	"context"

	catalog "github.com/dejobratic/tomoca/internal/catalog/domain"
)

// ProductCatalog resolves product ids sent by callers into catalog records.
type ProductCatalog interface {
	GetByID(ctx context.Context, id string) (*catalog.Product, error)
}
