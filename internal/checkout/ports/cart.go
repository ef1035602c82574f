package ports

import (
	"context"

	cart "github.com/dejobratic/tomoca/internal/cart/domain"
)

// Cart is the part of the cart engine checkout reads totals from and clears on submit.
type Cart interface {
	State() cart.State
	Clear(ctx context.Context) (cart.State, error)
}
