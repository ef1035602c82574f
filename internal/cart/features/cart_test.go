package features

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/cucumber/godog"
	"github.com/shopspring/decimal"

	"github.com/dejobratic/tomoca/internal/cart/adapters/memory"
	"github.com/dejobratic/tomoca/internal/cart/adapters/snapshot"
	"github.com/dejobratic/tomoca/internal/cart/app/commands"
	"github.com/dejobratic/tomoca/internal/cart/domain"
	catalog "github.com/dejobratic/tomoca/internal/catalog/domain"
	checkout "github.com/dejobratic/tomoca/internal/checkout/domain"
)

type cartTestContext struct {
	store    *memory.Store
	engine   *commands.Engine
	products map[string]catalog.Product
	logger   *slog.Logger
}

func (c *cartTestContext) reset() {
	c.store = memory.NewStore()
	c.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	c.engine = commands.NewEngine(snapshot.NewRepository(c.store, "", c.logger))
	c.products = map[string]catalog.Product{}
}

func (c *cartTestContext) anEmptyCart() error {
	if !c.engine.State().IsEmpty() {
		return fmt.Errorf("expected an empty cart, got %d line items", len(c.engine.State().Items))
	}
	return nil
}

func (c *cartTestContext) aProductPricedAt(id, price string) error {
	amount, err := decimal.NewFromString(price)
	if err != nil {
		return err
	}
	c.products[id] = catalog.Product{
		ID:                      id,
		Name:                    id,
		Price:                   amount,
		Category:                catalog.CategoryCoffee,
		InStock:                 true,
		IsSubscriptionAvailable: true,
	}
	return nil
}

func (c *cartTestContext) theSavedCartIs(payload string) error {
	return c.store.Put(context.Background(), snapshot.DefaultKey, []byte(payload))
}

func (c *cartTestContext) handle(cmd domain.Command) error {
	_, err := c.engine.Handle(context.Background(), cmd)
	return err
}

func (c *cartTestContext) product(id string) (catalog.Product, error) {
	product, ok := c.products[id]
	if !ok {
		return catalog.Product{}, fmt.Errorf("product %q was not declared", id)
	}
	return product, nil
}

func (c *cartTestContext) iAddOf(quantity int, id string) error {
	product, err := c.product(id)
	if err != nil {
		return err
	}
	return c.handle(domain.AddItem{Product: product, Quantity: quantity})
}

func (c *cartTestContext) iAddOfOnASubscription(quantity int, id, interval string) error {
	product, err := c.product(id)
	if err != nil {
		return err
	}
	parsed, err := catalog.ParseInterval(interval)
	if err != nil {
		return err
	}
	return c.handle(domain.AddItem{Product: product, Quantity: quantity, Interval: parsed})
}

func (c *cartTestContext) iSetTheQuantityOfTo(id string, quantity int) error {
	return c.handle(domain.UpdateQuantity{ProductID: id, Quantity: quantity})
}

func (c *cartTestContext) iRemove(id string) error {
	return c.handle(domain.RemoveItem{ProductID: id})
}

func (c *cartTestContext) iChangeToASubscription(id, interval string) error {
	parsed, err := catalog.ParseInterval(interval)
	if err != nil {
		return err
	}
	return c.handle(domain.UpdateSubscription{ProductID: id, Interval: parsed})
}

func (c *cartTestContext) theStorefrontRestarts() error {
	repo := snapshot.NewRepository(c.store, "", c.logger)
	items, err := repo.Load(context.Background())
	if err != nil {
		return err
	}
	c.engine = commands.NewEngine(repo)
	return c.handle(domain.LoadCart{Items: items})
}

func (c *cartTestContext) theCartHasLineItems(count int) error {
	if got := len(c.engine.State().Items); got != count {
		return fmt.Errorf("expected %d line items, got %d", count, got)
	}
	return nil
}

func (c *cartTestContext) holds(quantity int, id string, interval catalog.SubscriptionInterval) error {
	for _, item := range c.engine.State().Items {
		if item.Product.ID == id && item.SubscriptionInterval == interval {
			if item.Quantity != quantity {
				return fmt.Errorf("expected %d of %s (%s), got %d", quantity, id, interval, item.Quantity)
			}
			return nil
		}
	}
	return fmt.Errorf("no line item for %s (%s)", id, interval)
}

func (c *cartTestContext) theCartHoldsOfBoughtOnce(quantity int, id string) error {
	return c.holds(quantity, id, catalog.IntervalNone)
}

func (c *cartTestContext) theCartHoldsOfOnASubscription(quantity int, id, interval string) error {
	parsed, err := catalog.ParseInterval(interval)
	if err != nil {
		return err
	}
	return c.holds(quantity, id, parsed)
}

func (c *cartTestContext) theCartDoesNotContain(id string) error {
	for _, item := range c.engine.State().Items {
		if item.Product.ID == id {
			return fmt.Errorf("expected %s to be gone, found %d", id, item.Quantity)
		}
	}
	return nil
}

func (c *cartTestContext) theItemCountIs(count int) error {
	if got := c.engine.State().Totals().ItemCount; got != count {
		return fmt.Errorf("expected item count %d, got %d", count, got)
	}
	return nil
}

func equalAmount(name string, got decimal.Decimal, want string) error {
	expected, err := decimal.NewFromString(want)
	if err != nil {
		return err
	}
	if !got.Equal(expected) {
		return fmt.Errorf("expected %s %s, got %s", name, expected, got)
	}
	return nil
}

func (c *cartTestContext) theSubtotalIs(amount string) error {
	return equalAmount("subtotal", c.engine.State().Totals().Subtotal, amount)
}

func (c *cartTestContext) theSubscriptionDiscountIs(amount string) error {
	return equalAmount("subscription discount", c.engine.State().Totals().SubscriptionDiscount, amount)
}

func (c *cartTestContext) theTotalIs(amount string) error {
	return equalAmount("total", c.engine.State().Totals().Total, amount)
}

func (c *cartTestContext) freeShipping(want bool) error {
	policy := checkout.NewShippingPolicy(checkout.DefaultFreeShippingThreshold)
	subtotal := c.engine.State().Totals().Subtotal
	if got := policy.FreeShipping(subtotal); got != want {
		return fmt.Errorf("expected free shipping %v at subtotal %s, got %v", want, subtotal, got)
	}
	return nil
}

func (c *cartTestContext) theOrderQualifiesForFreeShipping() error {
	return c.freeShipping(true)
}

func (c *cartTestContext) theOrderDoesNotQualifyForFreeShipping() error {
	return c.freeShipping(false)
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := &cartTestContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^an empty cart$`, tc.anEmptyCart)
	ctx.Step(`^a product "([^"]*)" priced at (\d+\.\d+)$`, tc.aProductPricedAt)
	ctx.Step(`^the saved cart is "([^"]*)"$`, tc.theSavedCartIs)

	// When steps
	ctx.Step(`^I add (\d+) of "([^"]*)"$`, tc.iAddOf)
	ctx.Step(`^I add (\d+) of "([^"]*)" on a (\w+) subscription$`, tc.iAddOfOnASubscription)
	ctx.Step(`^I set the quantity of "([^"]*)" to (-?\d+)$`, tc.iSetTheQuantityOfTo)
	ctx.Step(`^I remove "([^"]*)"$`, tc.iRemove)
	ctx.Step(`^I change "([^"]*)" to a (\w+) subscription$`, tc.iChangeToASubscription)
	ctx.Step(`^the storefront restarts$`, tc.theStorefrontRestarts)

	// Then steps
	ctx.Step(`^the cart has (\d+) line items?$`, tc.theCartHasLineItems)
	ctx.Step(`^the cart holds (\d+) of "([^"]*)" bought once$`, tc.theCartHoldsOfBoughtOnce)
	ctx.Step(`^the cart holds (\d+) of "([^"]*)" on a (\w+) subscription$`, tc.theCartHoldsOfOnASubscription)
	ctx.Step(`^the cart does not contain "([^"]*)"$`, tc.theCartDoesNotContain)
	ctx.Step(`^the item count is (\d+)$`, tc.theItemCountIs)
	ctx.Step(`^the subtotal is (\d+\.\d+)$`, tc.theSubtotalIs)
	ctx.Step(`^the subscription discount is (\d+\.\d+)$`, tc.theSubscriptionDiscountIs)
	ctx.Step(`^the total is (\d+\.\d+)$`, tc.theTotalIs)
	ctx.Step(`^the order qualifies for free shipping$`, tc.theOrderQualifiesForFreeShipping)
	ctx.Step(`^the order does not qualify for free shipping$`, tc.theOrderDoesNotQualifyForFreeShipping)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"cart.feature"},
			Strict:   true,
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
