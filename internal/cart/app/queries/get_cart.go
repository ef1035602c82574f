package queries

import (
	"context"

	"github.com/dejobratic/tomoca/internal/cart/domain"
	catalog "github.com/dejobratic/tomoca/internal/catalog/domain"
)

// StateReader exposes the current cart without allowing mutation.
type StateReader interface {
	State() domain.State
}

// GetCartQuery asks for the cart with its derived totals.
type GetCartQuery struct{}

// LineItemView is one line item as presented to shoppers.
type LineItemView struct {
	Product              catalog.Product              `json:"product"`
	Quantity             int                          `json:"quantity"`
	SubscriptionInterval catalog.SubscriptionInterval `json:"subscriptionInterval"`
	UnitPrice            string                       `json:"unitPrice"`
	LineTotal            string                       `json:"lineTotal"`
	Discount             string                       `json:"discount"`
}

// CartView is the presentation shape of the cart. Money is rounded to cents here and
// nowhere earlier.
type CartView struct {
	Items                []LineItemView `json:"items"`
	ItemCount            int            `json:"itemCount"`
	Subtotal             string         `json:"subtotal"`
	SubscriptionDiscount string         `json:"subscriptionDiscount"`
	Total                string         `json:"total"`
	IsOpen               bool           `json:"isOpen"`
}

// GetCartQueryHandler renders the cart held by a StateReader.
type GetCartQueryHandler struct {
	cart StateReader
}

func NewGetCartQueryHandler(cart StateReader) *GetCartQueryHandler {
	return &GetCartQueryHandler{cart: cart}
}

func (h *GetCartQueryHandler) Handle(_ context.Context, _ GetCartQuery) (CartView, error) {
	return NewCartView(h.cart.State()), nil
}

// NewCartView derives the view of state. Items is never nil so it encodes as [].
func NewCartView(state domain.State) CartView {
	totals := state.Totals()
	items := make([]LineItemView, 0, len(state.Items))
	for _, item := range state.Items {
		items = append(items, LineItemView{
			Product:              item.Product,
			Quantity:             item.Quantity,
			SubscriptionInterval: item.SubscriptionInterval,
			UnitPrice:            item.Product.Price.StringFixed(2),
			LineTotal:            item.LineTotal().StringFixed(2),
			Discount:             item.Discount().StringFixed(2),
		})
	}

	return CartView{
		Items:                items,
		ItemCount:            totals.ItemCount,
		Subtotal:             totals.Subtotal.StringFixed(2),
		SubscriptionDiscount: totals.SubscriptionDiscount.StringFixed(2),
		Total:                totals.Total.StringFixed(2),
		IsOpen:               state.IsOpen,
	}
}
