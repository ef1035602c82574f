package queries

import (
	"context"

	"github.com/dejobratic/tomoca/internal/catalog/domain"
	"github.com/dejobratic/tomoca/internal/catalog/ports"
)

// ListPlansQueryHandler returns the subscription plans on offer.
type ListPlansQueryHandler struct {
	repo ports.ProductRepository
}

func NewListPlansQueryHandler(repo ports.ProductRepository) *ListPlansQueryHandler {
	return &ListPlansQueryHandler{repo: repo}
}

func (h *ListPlansQueryHandler) Handle(ctx context.Context) ([]domain.SubscriptionPlan, error) {
	return h.repo.Plans(ctx)
}
