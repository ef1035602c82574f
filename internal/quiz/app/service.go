package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	cartapp "github.com/dejobratic/tomoca/internal/cart/app"
	cart "github.com/dejobratic/tomoca/internal/cart/domain"
	"github.com/dejobratic/tomoca/internal/catalog/app/queries"
	catalog "github.com/dejobratic/tomoca/internal/catalog/domain"
	catalogports "github.com/dejobratic/tomoca/internal/catalog/ports"
	"github.com/dejobratic/tomoca/internal/quiz/domain"
)

// DefaultPlan is preselected on the recommendation card.
const DefaultPlan = catalog.IntervalBiweekly

// ErrNoCoffee is returned when the catalog has no coffee to recommend.
var ErrNoCoffee = errors.New("catalog has no coffee to recommend")

// CartAdder adds a product to the shopper's cart.
type CartAdder interface {
	AddItem(ctx context.Context, input cartapp.AddItemInput) (cart.State, error)
}

// Service runs the subscription quiz over the catalog.
type Service struct {
	products catalogports.ProductRepository
	cart     CartAdder
	logger   *slog.Logger
}

// NewService wires required dependencies.
func NewService(products catalogports.ProductRepository, cart CartAdder, logger *slog.Logger) *Service {
	return &Service{products: products, cart: cart, logger: logger}
}

// Questions returns the quiz questions in order.
func (s *Service) Questions() []domain.Question {
	return domain.Questions()
}

// Recommendation is the coffee the quiz picked, with what it costs on each plan.
type Recommendation struct {
	Product     catalog.Product              `json:"product"`
	PlanPrices  []queries.PlanPrice          `json:"planPrices"`
	DefaultPlan catalog.SubscriptionInterval `json:"defaultPlan"`
}

// Recommend validates the answers and picks a coffee.
func (s *Service) Recommend(ctx context.Context, answers domain.Answers) (*Recommendation, error) {
	if err := answers.Validate(); err != nil {
		return nil, err
	}

	products, err := s.products.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	product, ok := domain.Recommend(catalog.Catalog{Products: products}.Coffee(), answers)
	if !ok {
		return nil, ErrNoCoffee
	}

	plans, err := s.products.Plans(ctx)
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}

	s.logger.InfoContext(ctx, "quiz recommendation",
		"product_id", product.ID,
		"strength", answers.Strength,
		"flavor", answers.Flavor,
	)

	return &Recommendation{
		Product:     product,
		PlanPrices:  queries.PlanPrices(product, plans),
		DefaultPlan: DefaultPlan,
	}, nil
}

// AddToCartInput is the answers plus the plan chosen on the recommendation card.
type AddToCartInput struct {
	Answers domain.Answers `json:"answers"`
	Plan    string         `json:"plan,omitempty"`
}

// AddToCart adds one unit of the recommended coffee on the chosen plan, biweekly by default.
// A one-time purchase is not offered here.
func (s *Service) AddToCart(ctx context.Context, input AddToCartInput) (cart.State, error) {
	interval := DefaultPlan
	if input.Plan != "" {
		parsed, err := catalog.ParseInterval(input.Plan)
		if err != nil || !parsed.IsSubscription() {
			return cart.State{}, fmt.Errorf("%w: unknown plan %q", domain.ErrInvalidAnswer, input.Plan)
		}
		interval = parsed
	}

	recommendation, err := s.Recommend(ctx, input.Answers)
	if err != nil {
		return cart.State{}, err
	}

	quantity := 1
	return s.cart.AddItem(ctx, cartapp.AddItemInput{
		ProductID:            recommendation.Product.ID,
		Quantity:             &quantity,
		SubscriptionInterval: string(interval),
	})
}
