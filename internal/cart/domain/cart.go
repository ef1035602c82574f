package domain

import (
	"errors"
	"fmt"
	"strings"

	catalog "github.com/dejobratic/tomoca/internal/catalog/domain"
	"github.com/shopspring/decimal"
)

// LineItem is one product at a quantity and subscription interval. The product is a
// catalog copy and is never changed by the cart.
type LineItem struct {
	Product              catalog.Product              `json:"product"`
	Quantity             int                          `json:"quantity"`
	SubscriptionInterval catalog.SubscriptionInterval `json:"subscriptionInterval"`
}

// Validate checks the structural rules a persisted line item must satisfy.
func (li LineItem) Validate() error {
	if strings.TrimSpace(li.Product.ID) == "" {
		return errors.New("line item product id is required")
	}
	if li.Quantity < 1 {
		return fmt.Errorf("line item %s: quantity must be at least 1", li.Product.ID)
	}
	if !li.SubscriptionInterval.Valid() {
		return fmt.Errorf("line item %s: unknown subscription interval %q", li.Product.ID, li.SubscriptionInterval)
	}
	return nil
}

// LineTotal is price × quantity before any subscription discount.
func (li LineItem) LineTotal() decimal.Decimal {
	return li.Product.Price.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// Discount is the subscription discount on the line, zero for one-time purchases.
func (li LineItem) Discount() decimal.Decimal {
	return li.SubscriptionInterval.Discount(li.LineTotal())
}

func (li LineItem) matches(productID string, interval catalog.SubscriptionInterval) bool {
	return li.Product.ID == productID && li.SubscriptionInterval == interval
}

// State is the whole cart: line items in insertion order and the visibility flag.
// IsOpen is never persisted.
type State struct {
	Items  []LineItem
	IsOpen bool
}

// Totals are the derived monetary values of a cart, kept exact. Round only for display.
type Totals struct {
	ItemCount            int
	Subtotal             decimal.Decimal
	SubscriptionDiscount decimal.Decimal
	Total                decimal.Decimal
}

// Totals computes item count, undiscounted subtotal, subscription discount and total.
func (s State) Totals() Totals {
	totals := Totals{
		Subtotal:             decimal.Zero,
		SubscriptionDiscount: decimal.Zero,
	}
	for _, item := range s.Items {
		totals.ItemCount += item.Quantity
		totals.Subtotal = totals.Subtotal.Add(item.LineTotal())
		if item.SubscriptionInterval.IsSubscription() {
			totals.SubscriptionDiscount = totals.SubscriptionDiscount.Add(item.Discount())
		}
	}
	totals.Total = totals.Subtotal.Sub(totals.SubscriptionDiscount)
	return totals
}

// IsEmpty reports whether the cart has no line items.
func (s State) IsEmpty() bool {
	return len(s.Items) == 0
}

// Clone returns a State whose item slice can be changed without touching s.
func (s State) Clone() State {
	items := make([]LineItem, len(s.Items))
	copy(items, s.Items)
	return State{Items: items, IsOpen: s.IsOpen}
}
