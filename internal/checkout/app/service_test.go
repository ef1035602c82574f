package app_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"

	cart "github.com/dejobratic/tomoca/internal/cart/domain"
	catalog "github.com/dejobratic/tomoca/internal/catalog/domain"
	"github.com/dejobratic/tomoca/internal/checkout/app"
	"github.com/dejobratic/tomoca/internal/checkout/domain"
	"github.com/dejobratic/tomoca/internal/checkout/metrics"
	"github.com/dejobratic/tomoca/internal/checkout/ports"
	"github.com/dejobratic/tomoca/internal/idempotency/memory"
)

type fakeCart struct {
	state    cart.State
	clears   int
	clearErr error
}

func (f *fakeCart) State() cart.State { return f.state.Clone() }

func (f *fakeCart) Clear(context.Context) (cart.State, error) {
	f.clears++
	f.state = cart.Reduce(f.state, cart.ClearCart{})
	return f.state.Clone(), f.clearErr
}

type recordingBus struct {
	confirmed []string
	err       error
}

func (r *recordingBus) PublishOrderConfirmed(_ context.Context, number string, _ int) error {
	r.confirmed = append(r.confirmed, number)
	return r.err
}

var placedAt = time.Date(2026, 5, 4, 9, 30, 0, 0, time.UTC)

func cartWith(price string, quantity int, interval catalog.SubscriptionInterval) *fakeCart {
	product := catalog.Product{ID: "tomoca-espresso", Name: "Tomoca Espresso", Price: decimal.RequireFromString(price)}
	return &fakeCart{state: cart.Reduce(cart.State{}, cart.AddItem{Product: product, Quantity: quantity, Interval: interval})}
}

func newService(t *testing.T, c *fakeCart, bus *recordingBus) *app.Service {
	t.Helper()
	m, err := metrics.NewMetrics(noop.NewMeterProvider().Meter("test"))
	require.NoError(t, err)

	return app.NewService(c, bus, memory.NewStore(0), domain.NewShippingPolicy(decimal.NewFromInt(50)),
		slog.New(slog.NewTextHandler(io.Discard, nil)), m,
		app.WithClock(func() time.Time { return placedAt }),
		app.WithConfirmationNumbers(func() string { return "TMC-TEST0001" }),
	)
}

func information() domain.Information {
	return domain.Information{
		Email:     "selam@example.com",
		FirstName: "Selam",
		LastName:  "Tesfaye",
		Address:   "Bole Road 4",
		City:      "Addis Ababa",
		State:     "AA",
		Zip:       "1000",
	}
}

func TestCheckoutHappyPath(t *testing.T) {
	ctx := context.Background()
	c := cartWith("10.00", 2, catalog.IntervalWeekly)
	bus := &recordingBus{}
	svc := newService(t, c, bus)

	view, err := svc.Start(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.StepInformation, view.Step)
	assert.Len(t, view.ShippingOptions, 2)
	assert.True(t, view.Quote.Total.Equal(decimal.RequireFromString("16")))
	assert.True(t, view.Quote.Shipping.Equal(decimal.RequireFromString("5.99")))

	view, err = svc.SubmitInformation(ctx, information())
	require.NoError(t, err)
	assert.Equal(t, domain.StepShipping, view.Step)

	view, err = svc.ChooseShipping(ctx, "express")
	require.NoError(t, err)
	assert.Equal(t, domain.StepPayment, view.Step)
	assert.True(t, view.Quote.FinalTotal.Equal(decimal.RequireFromString("28.99")))

	view, err = svc.Submit(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.StepConfirmation, view.Step)
	require.NotNil(t, view.Confirmation)
	assert.Equal(t, "TMC-TEST0001", view.Confirmation.Number)
	assert.Equal(t, "selam@example.com", view.Confirmation.Email)
	assert.Equal(t, placedAt.AddDate(0, 0, 5), view.Confirmation.EstimatedDelivery)
	assert.True(t, view.Quote.FinalTotal.Equal(decimal.RequireFromString("28.99")), "quote is frozen at submission")

	assert.Equal(t, 1, c.clears)
	assert.True(t, c.state.IsEmpty())
	assert.Equal(t, []string{"TMC-TEST0001"}, bus.confirmed)
}

func TestCheckoutClearsCartOnce(t *testing.T) {
	ctx := context.Background()
	c := cartWith("60.00", 1, catalog.IntervalNone)
	svc := newService(t, c, &recordingBus{})

	_, err := svc.Start(ctx)
	require.NoError(t, err)
	_, err = svc.SubmitInformation(ctx, information())
	require.NoError(t, err)
	view, err := svc.ChooseShipping(ctx, "standard")
	require.NoError(t, err)
	assert.True(t, view.Quote.FreeShipping)

	_, err = svc.Submit(ctx)
	require.NoError(t, err)

	_, err = svc.Submit(ctx)
	assert.ErrorIs(t, err, ports.ErrInvalidTransition)
	_, err = svc.Back(ctx)
	assert.ErrorIs(t, err, ports.ErrInvalidTransition)

	assert.Equal(t, 1, c.clears)

	view, err = svc.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.StepConfirmation, view.Step)
}

func TestCheckoutGuards(t *testing.T) {
	ctx := context.Background()

	t.Run("empty cart cannot start", func(t *testing.T) {
		svc := newService(t, &fakeCart{}, &recordingBus{})
		_, err := svc.Start(ctx)
		assert.ErrorIs(t, err, ports.ErrEmptyCart)
	})

	t.Run("steps before start", func(t *testing.T) {
		svc := newService(t, cartWith("10.00", 1, catalog.IntervalNone), &recordingBus{})
		_, err := svc.Current(ctx)
		assert.ErrorIs(t, err, ports.ErrNotStarted)
		_, err = svc.SubmitInformation(ctx, information())
		assert.ErrorIs(t, err, ports.ErrNotStarted)
		_, err = svc.Submit(ctx)
		assert.ErrorIs(t, err, ports.ErrNotStarted)
	})

	t.Run("out of order", func(t *testing.T) {
		c := cartWith("10.00", 1, catalog.IntervalNone)
		svc := newService(t, c, &recordingBus{})
		_, err := svc.Start(ctx)
		require.NoError(t, err)

		_, err = svc.ChooseShipping(ctx, "standard")
		assert.ErrorIs(t, err, ports.ErrInvalidTransition)
		_, err = svc.Submit(ctx)
		assert.ErrorIs(t, err, ports.ErrInvalidTransition)
		_, err = svc.Back(ctx)
		assert.ErrorIs(t, err, ports.ErrInvalidTransition)
		assert.Zero(t, c.clears)
	})

	t.Run("invalid input", func(t *testing.T) {
		svc := newService(t, cartWith("10.00", 1, catalog.IntervalNone), &recordingBus{})
		_, err := svc.Start(ctx)
		require.NoError(t, err)

		_, err = svc.SubmitInformation(ctx, domain.Information{Email: "selam"})
		assert.ErrorIs(t, err, ports.ErrInvalidInput)

		_, err = svc.SubmitInformation(ctx, information())
		require.NoError(t, err)
		_, err = svc.ChooseShipping(ctx, "drone")
		assert.ErrorIs(t, err, ports.ErrInvalidInput)
	})

	t.Run("cart emptied mid-checkout", func(t *testing.T) {
		c := cartWith("10.00", 1, catalog.IntervalNone)
		svc := newService(t, c, &recordingBus{})
		_, err := svc.Start(ctx)
		require.NoError(t, err)
		_, err = svc.SubmitInformation(ctx, information())
		require.NoError(t, err)
		_, err = svc.ChooseShipping(ctx, "")
		require.NoError(t, err)

		c.state = cart.State{}
		_, err = svc.Submit(ctx)
		assert.ErrorIs(t, err, ports.ErrEmptyCart)
	})
}

func TestCheckoutSubmitToleratesDownstreamFailures(t *testing.T) {
	ctx := context.Background()
	c := cartWith("10.00", 1, catalog.IntervalNone)
	c.clearErr = errors.New("disk full")
	svc := newService(t, c, &recordingBus{err: errors.New("bus down")})

	_, err := svc.Start(ctx)
	require.NoError(t, err)
	_, err = svc.SubmitInformation(ctx, information())
	require.NoError(t, err)
	_, err = svc.ChooseShipping(ctx, "standard")
	require.NoError(t, err)

	view, err := svc.Submit(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.StepConfirmation, view.Step)
	assert.Equal(t, 1, c.clears)
}

func TestNewConfirmationNumber(t *testing.T) {
	a, b := app.NewConfirmationNumber(), app.NewConfirmationNumber()
	assert.Regexp(t, `^TMC-[0-9A-F]{8}$`, a)
	assert.NotEqual(t, a, b)
}
