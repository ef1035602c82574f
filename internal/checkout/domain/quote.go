package domain

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Quote is the order summary shown beside every checkout step.
type Quote struct {
	ItemCount            int
	Subtotal             decimal.Decimal
	SubscriptionDiscount decimal.Decimal
	Total                decimal.Decimal
	ShippingMethod       ShippingMethod
	Shipping             decimal.Decimal
	FreeShipping         bool
	FinalTotal           decimal.Decimal
}

// CartTotals are the cart figures a quote is built from.
type CartTotals struct {
	ItemCount            int
	Subtotal             decimal.Decimal
	SubscriptionDiscount decimal.Decimal
	Total                decimal.Decimal
}

// NewQuote adds shipping for method on top of the cart total.
func NewQuote(totals CartTotals, method ShippingMethod, policy ShippingPolicy) Quote {
	shipping := policy.Cost(method, totals.Subtotal)
	return Quote{
		ItemCount:            totals.ItemCount,
		Subtotal:             totals.Subtotal,
		SubscriptionDiscount: totals.SubscriptionDiscount,
		Total:                totals.Total,
		ShippingMethod:       method,
		Shipping:             shipping,
		FreeShipping:         policy.FreeShipping(totals.Subtotal),
		FinalTotal:           totals.Total.Add(shipping),
	}
}

// MarshalJSON renders money rounded to cents.
func (q Quote) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ItemCount            int            `json:"itemCount"`
		Subtotal             string         `json:"subtotal"`
		SubscriptionDiscount string         `json:"subscriptionDiscount"`
		Total                string         `json:"total"`
		ShippingMethod       ShippingMethod `json:"shippingMethod"`
		Shipping             string         `json:"shipping"`
		FreeShipping         bool           `json:"freeShipping"`
		FinalTotal           string         `json:"finalTotal"`
	}{
		ItemCount:            q.ItemCount,
		Subtotal:             q.Subtotal.StringFixed(2),
		SubscriptionDiscount: q.SubscriptionDiscount.StringFixed(2),
		Total:                q.Total.StringFixed(2),
		ShippingMethod:       q.ShippingMethod,
		Shipping:             q.Shipping.StringFixed(2),
		FreeShipping:         q.FreeShipping,
		FinalTotal:           q.FinalTotal.StringFixed(2),
	})
}
