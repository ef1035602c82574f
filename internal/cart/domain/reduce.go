package domain

import (
	catalog "github.com/dejobratic/tomoca/internal/catalog/domain"
)

// Reduce applies cmd to state and returns the next state. It never mutates state and
// never fails: ids that match nothing leave the items unchanged.
func Reduce(state State, cmd Command) State {
	next := state.Clone()

	switch c := cmd.(type) {
	case AddItem:
		next.Items = addItem(next.Items, c)
		next.IsOpen = true
	case RemoveItem:
		next.Items = removeProduct(next.Items, c.ProductID)
	case UpdateQuantity:
		if c.Quantity <= 0 {
			next.Items = removeProduct(next.Items, c.ProductID)
			break
		}
		for i := range next.Items {
			if next.Items[i].Product.ID == c.ProductID {
				next.Items[i].Quantity = c.Quantity
				break
			}
		}
	case UpdateSubscription:
		next.Items = updateSubscription(next.Items, c.ProductID, c.Interval)
	case ClearCart:
		next.Items = []LineItem{}
	case ToggleCart:
		next.IsOpen = !next.IsOpen
	case SetCartOpen:
		next.IsOpen = c.Open
	case LoadCart:
		next.Items = make([]LineItem, len(c.Items))
		copy(next.Items, c.Items)
	}

	return next
}

func addItem(items []LineItem, c AddItem) []LineItem {
	for i := range items {
		if !items[i].matches(c.Product.ID, c.Interval) {
			continue
		}
		items[i].Quantity += c.Quantity
		if items[i].Quantity < 1 {
			return append(items[:i], items[i+1:]...)
		}
		return items
	}
	if c.Quantity < 1 {
		return items
	}
	return append(items, LineItem{
		Product:              c.Product,
		Quantity:             c.Quantity,
		SubscriptionInterval: c.Interval,
	})
}

func removeProduct(items []LineItem, productID string) []LineItem {
	kept := items[:0]
	for _, item := range items {
		if item.Product.ID != productID {
			kept = append(kept, item)
		}
	}
	return kept
}

// updateSubscription retargets the product's line items, then folds any that now share
// (id, interval) into the first of them so the add-time uniqueness rule still holds.
func updateSubscription(items []LineItem, productID string, interval catalog.SubscriptionInterval) []LineItem {
	merged := make([]LineItem, 0, len(items))
	for _, item := range items {
		if item.Product.ID != productID {
			merged = append(merged, item)
			continue
		}
		item.SubscriptionInterval = interval
		folded := false
		for i := range merged {
			if merged[i].matches(item.Product.ID, item.SubscriptionInterval) {
				merged[i].Quantity += item.Quantity
				folded = true
				break
			}
		}
		if !folded {
			merged = append(merged, item)
		}
	}
	return merged
}
