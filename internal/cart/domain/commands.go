package domain

import (
	catalog "github.com/dejobratic/tomoca/internal/catalog/domain"
)

// Command is one cart operation. The set is closed: only the types below implement it.
type Command interface {
	// Name identifies the command in logs, spans and metrics.
	Name() string
	// AffectsItems reports whether the command must be followed by a persistence write.
	AffectsItems() bool

	command()
}

// AddItem merges into the line item with the same product id and interval, or appends one.
// It always opens the cart.
type AddItem struct {
	Product  catalog.Product
	Quantity int
	Interval catalog.SubscriptionInterval
}

// RemoveItem drops every line item for the product, whatever its interval.
type RemoveItem struct {
	ProductID string
}

// UpdateQuantity sets the first matching line item's quantity. Zero or less removes the product.
type UpdateQuantity struct {
	ProductID string
	Quantity  int
}

// UpdateSubscription retargets every line item for the product onto Interval.
type UpdateSubscription struct {
	ProductID string
	Interval  catalog.SubscriptionInterval
}

// ClearCart empties the line items and leaves visibility alone.
type ClearCart struct{}

// ToggleCart flips visibility.
type ToggleCart struct{}

// SetCartOpen sets visibility.
type SetCartOpen struct {
	Open bool
}

// LoadCart replaces the line items during hydration.
type LoadCart struct {
	Items []LineItem
}

func (AddItem) Name() string            { return "add_item" }
func (RemoveItem) Name() string         { return "remove_item" }
func (UpdateQuantity) Name() string     { return "update_quantity" }
func (UpdateSubscription) Name() string { return "update_subscription" }
func (ClearCart) Name() string          { return "clear_cart" }
func (ToggleCart) Name() string         { return "toggle_cart" }
func (SetCartOpen) Name() string        { return "set_cart_open" }
func (LoadCart) Name() string           { return "load_cart" }

func (AddItem) AffectsItems() bool            { return true }
func (RemoveItem) AffectsItems() bool         { return true }
func (UpdateQuantity) AffectsItems() bool     { return true }
func (UpdateSubscription) AffectsItems() bool { return true }
func (ClearCart) AffectsItems() bool          { return true }
func (ToggleCart) AffectsItems() bool         { return false }
func (SetCartOpen) AffectsItems() bool        { return false }
func (LoadCart) AffectsItems() bool           { return false }

func (AddItem) command()            {}
func (RemoveItem) command()         {}
func (UpdateQuantity) command()     {}
func (UpdateSubscription) command() {}
func (ClearCart) command()          {}
func (ToggleCart) command()         {}
func (SetCartOpen) command()        {}
func (LoadCart) command()           {}
