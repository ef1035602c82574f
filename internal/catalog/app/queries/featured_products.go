package queries

import (
	"context"
	"fmt"

	"github.com/dejobratic/tomoca/internal/catalog/domain"
	"github.com/dejobratic/tomoca/internal/catalog/ports"
)

// FeaturedProductsQueryHandler returns the best sellers shown on the home page.
type FeaturedProductsQueryHandler struct {
	repo ports.ProductRepository
}

func NewFeaturedProductsQueryHandler(repo ports.ProductRepository) *FeaturedProductsQueryHandler {
	return &FeaturedProductsQueryHandler{repo: repo}
}

func (h *FeaturedProductsQueryHandler) Handle(ctx context.Context) ([]domain.Product, error) {
	products, err := h.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return domain.Catalog{Products: products}.Featured(), nil
}
