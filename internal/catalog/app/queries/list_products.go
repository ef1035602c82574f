package queries

import (
	"context"
	"fmt"

	"github.com/dejobratic/tomoca/internal/catalog/domain"
	"github.com/dejobratic/tomoca/internal/catalog/ports"
)

// ListProductsQuery carries raw shop filter values as they arrive from a caller.
type ListProductsQuery struct {
	Category string
	Roast    string
	Sort     string
}

type shopFilter struct {
	category domain.Category
	roast    domain.RoastLevel
	sort     domain.SortKey
}

// Validate parses the filter values, rejecting unknown ones with ports.ErrInvalidFilter.
func (q ListProductsQuery) Validate() error {
	_, err := q.parse()
	return err
}

func (q ListProductsQuery) parse() (shopFilter, error) {
	category, err := domain.ParseCategory(q.Category)
	if err != nil {
		return shopFilter{}, fmt.Errorf("%w: %w", ports.ErrInvalidFilter, err)
	}
	roast, err := domain.ParseRoastLevel(q.Roast)
	if err != nil {
		return shopFilter{}, fmt.Errorf("%w: %w", ports.ErrInvalidFilter, err)
	}
	sort, err := domain.ParseSortKey(q.Sort)
	if err != nil {
		return shopFilter{}, fmt.Errorf("%w: %w", ports.ErrInvalidFilter, err)
	}
	return shopFilter{category: category, roast: roast, sort: sort}, nil
}

// ListProductsQueryHandler runs the shop filter and sort over the catalog.
type ListProductsQueryHandler struct {
	repo ports.ProductRepository
}

// NewListProductsQueryHandler constructs a ListProductsQueryHandler.
func NewListProductsQueryHandler(repo ports.ProductRepository) *ListProductsQueryHandler {
	return &ListProductsQueryHandler{repo: repo}
}

// Handle executes the query.
func (h *ListProductsQueryHandler) Handle(ctx context.Context, query ListProductsQuery) ([]domain.Product, error) {
	filter, err := query.parse()
	if err != nil {
		return nil, err
	}

	products, err := h.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	return domain.FilterAndSort(products, filter.category, filter.roast, filter.sort), nil
}
