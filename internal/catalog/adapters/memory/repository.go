package memory

import (
	"context"
	"slices"

	"github.com/dejobratic/tomoca/internal/catalog/domain"
	"github.com/dejobratic/tomoca/internal/catalog/ports"
)

// Repository serves a catalog loaded once at start. Callers receive copies.
type Repository struct {
	catalog domain.Catalog
	index   map[string]int
}

// NewRepository validates the catalog and indexes it by product id.
func NewRepository(catalog domain.Catalog) (*Repository, error) {
	if err := catalog.Validate(); err != nil {
		return nil, err
	}
	index := make(map[string]int, len(catalog.Products))
	for i, product := range catalog.Products {
		index[product.ID] = i
	}
	return &Repository{catalog: catalog, index: index}, nil
}

// List returns every product in catalog order.
func (r *Repository) List(_ context.Context) ([]domain.Product, error) {
	return slices.Clone(r.catalog.Products), nil
}

// GetByID fetches a single product by identifier.
func (r *Repository) GetByID(_ context.Context, id string) (*domain.Product, error) {
	i, ok := r.index[id]
	if !ok {
		return nil, ports.ErrProductNotFound
	}
	product := r.catalog.Products[i]
	return &product, nil
}

// Plans returns the subscription plans in catalog order.
func (r *Repository) Plans(_ context.Context) ([]domain.SubscriptionPlan, error) {
	return slices.Clone(r.catalog.Plans), nil
}
