package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	cart "github.com/dejobratic/tomoca/internal/cart/domain"
	"github.com/dejobratic/tomoca/internal/checkout/domain"
	"github.com/dejobratic/tomoca/internal/checkout/metrics"
	"github.com/dejobratic/tomoca/internal/checkout/ports"
	"github.com/dejobratic/tomoca/internal/telemetry"
)

// Service runs the single checkout session of the storefront.
type Service struct {
	mu      sync.Mutex
	session *domain.Session

	cart      ports.Cart
	events    ports.EventBus
	idemStore ports.IdempotencyStore
	policy    domain.ShippingPolicy
	logger    *slog.Logger
	metrics   *metrics.Metrics

	now       func() time.Time
	newNumber func() string
}

// Option customises a Service.
type Option func(*Service)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithConfirmationNumbers replaces the confirmation number generator.
func WithConfirmationNumbers(next func() string) Option {
	return func(s *Service) { s.newNumber = next }
}

// NewService wires required dependencies.
func NewService(
	cart ports.Cart,
	events ports.EventBus,
	idem ports.IdempotencyStore,
	policy domain.ShippingPolicy,
	logger *slog.Logger,
	metrics *metrics.Metrics,
	opts ...Option,
) *Service {
	s := &Service{
		cart:      cart,
		events:    events,
		idemStore: idem,
		policy:    policy,
		logger:    logger,
		metrics:   metrics,
		now:       func() time.Time { return time.Now().UTC() },
		newNumber: NewConfirmationNumber,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewConfirmationNumber returns "TMC-" followed by the first eight hex digits of a random UUID.
func NewConfirmationNumber() string {
	return "TMC-" + strings.ToUpper(uuid.NewString()[:8])
}

// View is the checkout as presented on every step.
type View struct {
	Step            domain.Step             `json:"step"`
	Information     *domain.Information     `json:"information,omitempty"`
	ShippingMethod  domain.ShippingMethod   `json:"shippingMethod"`
	ShippingOptions []domain.ShippingOption `json:"shippingOptions"`
	Quote           domain.Quote            `json:"quote"`
	Confirmation    *domain.Confirmation    `json:"confirmation,omitempty"`
}

// Start opens a fresh session on the information step, replacing any earlier one.
func (s *Service) Start(ctx context.Context) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cart.State().IsEmpty() {
		return View{}, ports.ErrEmptyCart
	}

	s.session = domain.NewSession()
	s.logger.InfoContext(ctx, "checkout started")
	return s.view(), nil
}

// Current returns the running session.
func (s *Service) Current(_ context.Context) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil {
		return View{}, ports.ErrNotStarted
	}
	return s.view(), nil
}

// SubmitInformation records contact details and moves to shipping.
func (s *Service) SubmitInformation(ctx context.Context, info domain.Information) (View, error) {
	return s.step(ctx, func(session *domain.Session) error {
		if session.Step == domain.StepInformation {
			if err := info.Validate(); err != nil {
				return fmt.Errorf("%w: %w", ports.ErrInvalidInput, err)
			}
		}
		return session.SubmitInformation(info)
	})
}

// ChooseShipping records the shipping method and moves to payment.
func (s *Service) ChooseShipping(ctx context.Context, method string) (View, error) {
	parsed, err := domain.ParseShippingMethod(method)
	if err != nil {
		return View{}, fmt.Errorf("%w: %w", ports.ErrInvalidInput, err)
	}
	return s.step(ctx, func(session *domain.Session) error {
		return session.ChooseShipping(parsed)
	})
}

// Back returns to the previous step.
func (s *Service) Back(ctx context.Context) (View, error) {
	return s.step(ctx, func(session *domain.Session) error {
		return session.Back()
	})
}

// Submit places the order: it confirms the session and clears the cart. The cart is
// cleared once per session because confirmation is terminal.
func (s *Service) Submit(ctx context.Context) (View, error) {
	ctx, span := telemetry.StartSpan(ctx, "Checkout.Submit")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	confirmation, err := s.submit(ctx)
	s.metrics.RecordOrder(ctx, err == nil)
	if err != nil {
		telemetry.RecordSpanError(span, err)
		s.logger.ErrorContext(ctx, "checkout submission failed", "error", err)
		return View{}, err
	}

	telemetry.AddSpanAttributes(span,
		attribute.String("checkout.confirmation_number", confirmation.Number),
		attribute.String("checkout.shipping_method", string(confirmation.Quote.ShippingMethod)),
		attribute.String("checkout.final_total", confirmation.Quote.FinalTotal.StringFixed(2)),
	)
	telemetry.SetSpanSuccess(span)

	s.metrics.RecordOrderValue(ctx, confirmation.Quote.FinalTotal.InexactFloat64())
	s.logger.InfoContext(ctx, "order confirmed",
		"confirmation_number", confirmation.Number,
		"item_count", confirmation.Quote.ItemCount,
		"final_total", confirmation.Quote.FinalTotal.StringFixed(2),
	)

	return s.view(), nil
}

func (s *Service) submit(ctx context.Context) (domain.Confirmation, error) {
	if s.session == nil {
		return domain.Confirmation{}, ports.ErrNotStarted
	}
	if s.session.Step != domain.StepPayment {
		return domain.Confirmation{}, fmt.Errorf("%w: cannot submit from %s", ports.ErrInvalidTransition, s.session.Step)
	}

	state := s.cart.State()
	if state.IsEmpty() {
		return domain.Confirmation{}, ports.ErrEmptyCart
	}

	placedAt := s.now()
	confirmation := domain.Confirmation{
		Number:            s.newNumber(),
		Email:             s.session.Information.Email,
		PlacedAt:          placedAt,
		EstimatedDelivery: domain.EstimatedDelivery(placedAt),
		Quote:             s.quote(state),
	}

	from := s.session.Step
	if err := s.session.Confirm(confirmation); err != nil {
		return domain.Confirmation{}, err
	}
	s.metrics.RecordTransition(ctx, string(from), string(s.session.Step))

	// The order is placed once the session is confirmed. A failed snapshot write leaves
	// the in-memory cart empty and is logged rather than undoing the confirmation.
	if _, err := s.cart.Clear(ctx); err != nil {
		s.logger.ErrorContext(ctx, "cart cleared but not persisted", "error", err)
	}

	if err := s.events.PublishOrderConfirmed(ctx, confirmation.Number, confirmation.Quote.ItemCount); err != nil {
		s.logger.WarnContext(ctx, "order confirmed but failed to publish event", "error", err)
	}

	return confirmation, nil
}

func (s *Service) step(ctx context.Context, apply func(*domain.Session) error) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil {
		return View{}, ports.ErrNotStarted
	}

	from := s.session.Step
	if err := apply(s.session); err != nil {
		return View{}, err
	}
	s.metrics.RecordTransition(ctx, string(from), string(s.session.Step))
	s.logger.DebugContext(ctx, "checkout step changed", "from", from, "to", s.session.Step)

	return s.view(), nil
}

func (s *Service) quote(state cart.State) domain.Quote {
	totals := state.Totals()
	return domain.NewQuote(domain.CartTotals{
		ItemCount:            totals.ItemCount,
		Subtotal:             totals.Subtotal,
		SubscriptionDiscount: totals.SubscriptionDiscount,
		Total:                totals.Total,
	}, s.session.ShippingMethod, s.policy)
}

// view must be called with s.mu held and a session present.
func (s *Service) view() View {
	v := View{
		Step:            s.session.Step,
		Information:     s.session.Information,
		ShippingMethod:  s.session.ShippingMethod,
		ShippingOptions: s.policy.Options(),
		Confirmation:    s.session.Confirmation,
	}
	if s.session.Confirmation != nil {
		v.Quote = s.session.Confirmation.Quote
	} else {
		v.Quote = s.quote(s.cart.State())
	}
	return v
}

// SaveIdempotentResponse writes response details for a key.
func (s *Service) SaveIdempotentResponse(ctx context.Context, key string, response ports.StoredResponse) error {
	return s.idemStore.Save(ctx, key, response)
}

// GetIdempotentResponse retrieves previously stored response data.
func (s *Service) GetIdempotentResponse(ctx context.Context, key string) (*ports.StoredResponse, error) {
	return s.idemStore.Get(ctx, key)
}
