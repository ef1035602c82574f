package domain

import (
	"fmt"
)

const (
	relatedLimit  = 4
	featuredLimit = 4
)

// Catalog is the static product list plus the subscription plans offered with it.
type Catalog struct {
	Products []Product         `yaml:"products"`
	Plans    []SubscriptionPlan `yaml:"subscriptionPlans"`
}

// Validate checks every record and rejects duplicate product ids or plan intervals.
func (c Catalog) Validate() error {
	seen := make(map[string]struct{}, len(c.Products))
	for i, product := range c.Products {
		if err := product.Validate(); err != nil {
			return fmt.Errorf("product %d (%s): %w", i, product.ID, err)
		}
		if _, dup := seen[product.ID]; dup {
			return fmt.Errorf("product %d: duplicate id %q", i, product.ID)
		}
		seen[product.ID] = struct{}{}
	}

	intervals := make(map[SubscriptionInterval]struct{}, len(c.Plans))
	for i, plan := range c.Plans {
		if !plan.Interval.IsSubscription() || !plan.Interval.Valid() {
			return fmt.Errorf("plan %d (%s): invalid interval %q", i, plan.ID, plan.Interval)
		}
		if plan.Discount < 0 || plan.Discount > 100 {
			return fmt.Errorf("plan %d (%s): discount must be between 0 and 100", i, plan.ID)
		}
		if _, dup := intervals[plan.Interval]; dup {
			return fmt.Errorf("plan %d: duplicate interval %q", i, plan.Interval)
		}
		intervals[plan.Interval] = struct{}{}
	}
	return nil
}

// Product looks a product up by id.
func (c Catalog) Product(id string) (Product, bool) {
	for _, product := range c.Products {
		if product.ID == id {
			return product, true
		}
	}
	return Product{}, false
}

// Coffee returns coffee products in catalog order.
func (c Catalog) Coffee() []Product {
	var coffee []Product
	for _, product := range c.Products {
		if product.IsCoffee() {
			coffee = append(coffee, product)
		}
	}
	return coffee
}

// Featured returns the first best sellers in catalog order.
func (c Catalog) Featured() []Product {
	featured := make([]Product, 0, featuredLimit)
	for _, product := range c.Products {
		if len(featured) == featuredLimit {
			break
		}
		if product.IsBestSeller {
			featured = append(featured, product)
		}
	}
	return featured
}

// Related returns up to four other products from the same category.
func (c Catalog) Related(product Product) []Product {
	related := make([]Product, 0, relatedLimit)
	for _, candidate := range c.Products {
		if len(related) == relatedLimit {
			break
		}
		if candidate.Category == product.Category && candidate.ID != product.ID {
			related = append(related, candidate)
		}
	}
	return related
}

// Plan finds the plan for a subscription interval.
func (c Catalog) Plan(interval SubscriptionInterval) (SubscriptionPlan, bool) {
	for _, plan := range c.Plans {
		if plan.Interval == interval {
			return plan, true
		}
	}
	return SubscriptionPlan{}, false
}
