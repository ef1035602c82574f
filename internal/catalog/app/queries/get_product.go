package queries

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dejobratic/tomoca/internal/catalog/domain"
	"github.com/dejobratic/tomoca/internal/catalog/ports"
	"github.com/shopspring/decimal"
)

// GetProductQuery represents a request for a product detail page.
type GetProductQuery struct {
	ProductID string
}

// Validate ensures the query has valid parameters.
func (q GetProductQuery) Validate() error {
	if strings.TrimSpace(q.ProductID) == "" {
		return errors.New("product_id is required")
	}
	return nil
}

// PlanPrice is the per-delivery price of a product under one subscription plan, rounded to cents.
type PlanPrice struct {
	Plan  domain.SubscriptionPlan `json:"plan"`
	Price decimal.Decimal         `json:"price"`
}

// ProductDetail is everything the product page shows.
type ProductDetail struct {
	Product    domain.Product   `json:"product"`
	PercentOff int64            `json:"percentOff"`
	Related    []domain.Product `json:"related"`
	PlanPrices []PlanPrice      `json:"planPrices"`
}

// GetProductQueryHandler loads a product with related products and plan prices.
type GetProductQueryHandler struct {
	repo ports.ProductRepository
}

// NewGetProductQueryHandler constructs a GetProductQueryHandler.
func NewGetProductQueryHandler(repo ports.ProductRepository) *GetProductQueryHandler {
	return &GetProductQueryHandler{repo: repo}
}

// Handle executes the query. Plan prices are only filled for subscribable products.
func (h *GetProductQueryHandler) Handle(ctx context.Context, query GetProductQuery) (*ProductDetail, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	product, err := h.repo.GetByID(ctx, query.ProductID)
	if err != nil {
		return nil, err
	}

	products, err := h.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	catalog := domain.Catalog{Products: products}

	detail := &ProductDetail{
		Product:    *product,
		PercentOff: product.PercentOff(),
		Related:    catalog.Related(*product),
		PlanPrices: []PlanPrice{},
	}

	if product.IsSubscriptionAvailable {
		plans, err := h.repo.Plans(ctx)
		if err != nil {
			return nil, fmt.Errorf("list plans: %w", err)
		}
		detail.PlanPrices = PlanPrices(*product, plans)
	}

	return detail, nil
}

// PlanPrices prices product under each plan in plan order.
func PlanPrices(product domain.Product, plans []domain.SubscriptionPlan) []PlanPrice {
	prices := make([]PlanPrice, 0, len(plans))
	for _, plan := range plans {
		prices = append(prices, PlanPrice{Plan: plan, Price: plan.Price(product).Round(2)})
	}
	return prices
}
