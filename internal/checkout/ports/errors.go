package ports

import (
	"errors"

	"github.com/dejobratic/tomoca/internal/checkout/domain"
)

var (
	// ErrEmptyCart is returned when checkout is started or submitted with nothing in the cart.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrNotStarted is returned for step operations before checkout has been started.
	ErrNotStarted = errors.New("checkout not started")

	// ErrInvalidInput wraps rejected contact details or an unknown shipping method.
	ErrInvalidInput = errors.New("invalid checkout input")

	// ErrInvalidTransition is returned when a step is requested out of order.
	ErrInvalidTransition = domain.ErrInvalidTransition
)
