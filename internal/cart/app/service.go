package app

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/dejobratic/tomoca/internal/cart/app/commands"
	"github.com/dejobratic/tomoca/internal/cart/app/queries"
	"github.com/dejobratic/tomoca/internal/cart/domain"
	"github.com/dejobratic/tomoca/internal/cart/metrics"
	"github.com/dejobratic/tomoca/internal/cart/ports"
	catalog "github.com/dejobratic/tomoca/internal/catalog/domain"
)

// Service bundles the cart use cases exposed to the HTTP API, the checkout flow and the quiz.
type Service struct {
	engine   *commands.Engine
	handler  commands.CommandHandler
	getCart  *queries.GetCartQueryHandler
	repo     ports.CartRepository
	products ports.ProductCatalog
	events   ports.EventBus
	logger   *slog.Logger
}

// NewService wires required dependencies around a fresh, empty engine.
func NewService(
	repo ports.CartRepository,
	products ports.ProductCatalog,
	events ports.EventBus,
	logger *slog.Logger,
	metrics *metrics.Metrics,
) *Service {
	engine := commands.NewEngine(repo)
	observableHandler := commands.NewObservableCommandHandler(engine, logger, metrics)

	return &Service{
		engine:   engine,
		handler:  observableHandler,
		getCart:  queries.NewGetCartQueryHandler(engine),
		repo:     repo,
		products: products,
		events:   events,
		logger:   logger,
	}
}

// Hydrate loads the saved line items into the engine. It runs once at startup.
func (s *Service) Hydrate(ctx context.Context) error {
	items, err := s.repo.Load(ctx)
	if err != nil {
		return fmt.Errorf("hydrate cart: %w", err)
	}
	_, err = s.handler.Handle(ctx, domain.LoadCart{Items: items})
	return err
}

// AddItemInput captures payload for adding a product to the cart.
type AddItemInput struct {
	ProductID            string `json:"productId"`
	Quantity             *int   `json:"quantity,omitempty"`
	SubscriptionInterval string `json:"subscriptionInterval,omitempty"`
}

// AddItem resolves the product and adds it. Quantity defaults to one.
func (s *Service) AddItem(ctx context.Context, input AddItemInput) (domain.State, error) {
	quantity := 1
	if input.Quantity != nil {
		quantity = *input.Quantity
	}
	if quantity < 1 {
		return domain.State{}, fmt.Errorf("%w: quantity must be at least 1", ports.ErrInvalidItem)
	}

	interval, err := catalog.ParseInterval(input.SubscriptionInterval)
	if err != nil {
		return domain.State{}, fmt.Errorf("%w: %w", ports.ErrInvalidItem, err)
	}

	product, err := s.products.GetByID(ctx, input.ProductID)
	if err != nil {
		return domain.State{}, err
	}
	if interval.IsSubscription() && !product.IsSubscriptionAvailable {
		return domain.State{}, fmt.Errorf("%w: %s is not available as a subscription", ports.ErrInvalidItem, product.ID)
	}
	if !product.InStock {
		return domain.State{}, fmt.Errorf("%w: %s is out of stock", ports.ErrInvalidItem, product.ID)
	}

	return s.handler.Handle(ctx, domain.AddItem{
		Product:  *product,
		Quantity: quantity,
		Interval: interval,
	})
}

// RemoveItem drops every line item for the product.
func (s *Service) RemoveItem(ctx context.Context, productID string) (domain.State, error) {
	return s.handler.Handle(ctx, domain.RemoveItem{ProductID: productID})
}

// UpdateItemInput changes quantity, subscription interval, or both. Absent fields are left alone.
type UpdateItemInput struct {
	Quantity             *int           `json:"quantity,omitempty"`
	SubscriptionInterval IntervalChange `json:"subscriptionInterval"`
}

// IntervalChange is a subscriptionInterval field that tells an explicit null, meaning a
// one-time purchase, apart from a field that was not sent.
type IntervalChange struct {
	Set   bool
	Value string
}

// ChangeInterval returns a present field holding value.
func ChangeInterval(value string) IntervalChange {
	return IntervalChange{Set: true, Value: value}
}

// UnmarshalJSON marks the field present and maps null to the empty interval.
func (c *IntervalChange) UnmarshalJSON(data []byte) error {
	c.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		c.Value = ""
		return nil
	}
	return json.Unmarshal(data, &c.Value)
}

// UpdateItem applies the subscription change first so that a quantity sent alongside it
// lands on the merged line.
func (s *Service) UpdateItem(ctx context.Context, productID string, input UpdateItemInput) (domain.State, error) {
	if input.Quantity == nil && !input.SubscriptionInterval.Set {
		return domain.State{}, fmt.Errorf("%w: quantity or subscriptionInterval is required", ports.ErrInvalidItem)
	}

	var (
		state domain.State
		err   error
	)

	if input.SubscriptionInterval.Set {
		interval, parseErr := catalog.ParseInterval(input.SubscriptionInterval.Value)
		if parseErr != nil {
			return domain.State{}, fmt.Errorf("%w: %w", ports.ErrInvalidItem, parseErr)
		}
		if err := s.checkSubscribable(productID, interval); err != nil {
			return domain.State{}, err
		}
		state, err = s.handler.Handle(ctx, domain.UpdateSubscription{ProductID: productID, Interval: interval})
		if err != nil {
			return state, err
		}
	}

	if input.Quantity != nil {
		state, err = s.handler.Handle(ctx, domain.UpdateQuantity{ProductID: productID, Quantity: *input.Quantity})
	}

	return state, err
}

// checkSubscribable rejects a subscription interval for a product in the cart that is
// not sold by subscription. Products not in the cart pass, the update is a no-op for them.
func (s *Service) checkSubscribable(productID string, interval catalog.SubscriptionInterval) error {
	if !interval.IsSubscription() {
		return nil
	}
	for _, item := range s.engine.State().Items {
		if item.Product.ID == productID && !item.Product.IsSubscriptionAvailable {
			return fmt.Errorf("%w: %s is not available as a subscription", ports.ErrInvalidItem, productID)
		}
	}
	return nil
}

// Clear empties the cart and announces it. A failed announcement is logged, not returned.
func (s *Service) Clear(ctx context.Context) (domain.State, error) {
	itemCount := s.engine.State().Totals().ItemCount

	state, err := s.handler.Handle(ctx, domain.ClearCart{})
	if err != nil {
		return state, err
	}

	if err := s.events.PublishCartCleared(ctx, itemCount); err != nil {
		s.logger.WarnContext(ctx, "cart cleared but failed to publish event", "error", err)
	}

	return state, nil
}

// Toggle flips visibility.
func (s *Service) Toggle(ctx context.Context) (domain.State, error) {
	return s.handler.Handle(ctx, domain.ToggleCart{})
}

// SetOpen sets visibility.
func (s *Service) SetOpen(ctx context.Context, open bool) (domain.State, error) {
	return s.handler.Handle(ctx, domain.SetCartOpen{Open: open})
}

// State returns a copy of the current cart.
func (s *Service) State() domain.State {
	return s.engine.State()
}

// View returns the cart with its derived totals rounded for display.
func (s *Service) View(ctx context.Context) (queries.CartView, error) {
	return s.getCart.Handle(ctx, queries.GetCartQuery{})
}
