package domain

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// Category groups products on the shop page.
type Category string

const (
	CategoryAll         Category = "all"
	CategoryCoffee      Category = "coffee"
	CategoryEquipment   Category = "equipment"
	CategoryAccessories Category = "accessories"
	CategoryGifts       Category = "gifts"
)

// Valid reports whether c is a concrete product category. The "all" wildcard is not a category.
func (c Category) Valid() bool {
	switch c {
	case CategoryCoffee, CategoryEquipment, CategoryAccessories, CategoryGifts:
		return true
	default:
		return false
	}
}

// RoastLevel applies to coffee products only.
type RoastLevel string

const (
	RoastAll    RoastLevel = "all"
	RoastLight  RoastLevel = "light"
	RoastMedium RoastLevel = "medium"
	RoastDark   RoastLevel = "dark"
)

func (r RoastLevel) Valid() bool {
	switch r {
	case RoastLight, RoastMedium, RoastDark:
		return true
	default:
		return false
	}
}

// Product is an immutable catalog record. Products are shared by reference
// semantics across the cart and are never mutated after the catalog loads.
type Product struct {
	ID                      string           `json:"id" yaml:"id"`
	Name                    string           `json:"name" yaml:"name"`
	Description             string           `json:"description" yaml:"description"`
	LongDescription         string           `json:"longDescription,omitempty" yaml:"longDescription,omitempty"`
	Price                   decimal.Decimal  `json:"price" yaml:"price"`
	OriginalPrice           *decimal.Decimal `json:"originalPrice,omitempty" yaml:"originalPrice,omitempty"`
	Image                   string           `json:"image" yaml:"image"`
	Images                  []string         `json:"images,omitempty" yaml:"images,omitempty"`
	Category                Category         `json:"category" yaml:"category"`
	Subcategory             string           `json:"subcategory,omitempty" yaml:"subcategory,omitempty"`
	Weight                  string           `json:"weight,omitempty" yaml:"weight,omitempty"`
	Origin                  string           `json:"origin,omitempty" yaml:"origin,omitempty"`
	RoastLevel              RoastLevel       `json:"roastLevel,omitempty" yaml:"roastLevel,omitempty"`
	FlavorNotes             []string         `json:"flavorNotes,omitempty" yaml:"flavorNotes,omitempty"`
	Rating                  float64          `json:"rating" yaml:"rating"`
	ReviewCount             int              `json:"reviewCount" yaml:"reviewCount"`
	InStock                 bool             `json:"inStock" yaml:"inStock"`
	IsNew                   bool             `json:"isNew,omitempty" yaml:"isNew,omitempty"`
	IsBestSeller            bool             `json:"isBestSeller,omitempty" yaml:"isBestSeller,omitempty"`
	IsSubscriptionAvailable bool             `json:"isSubscriptionAvailable,omitempty" yaml:"isSubscriptionAvailable,omitempty"`
}

// Validate ensures the product adheres to catalog constraints.
func (p Product) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return errors.New("product id is required")
	}
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("product name is required")
	}
	if !p.Price.IsPositive() {
		return errors.New("product price must be positive")
	}
	if p.OriginalPrice != nil && !p.OriginalPrice.IsPositive() {
		return errors.New("product original price must be positive")
	}
	if !p.Category.Valid() {
		return errors.New("product category must be valid")
	}
	if p.RoastLevel != "" && !p.RoastLevel.Valid() {
		return errors.New("product roast level must be valid")
	}
	if p.Rating < 0 || p.Rating > 5 {
		return errors.New("product rating must be between 0 and 5")
	}
	if p.ReviewCount < 0 {
		return errors.New("product review count must not be negative")
	}
	return nil
}

// IsCoffee reports whether the roast filter applies to the product.
func (p Product) IsCoffee() bool {
	return p.Category == CategoryCoffee
}

// PercentOff is the rounded sale discount against the original price, or 0 when the product is not on sale.
func (p Product) PercentOff() int64 {
	if p.OriginalPrice == nil || !p.OriginalPrice.IsPositive() {
		return 0
	}
	ratio := p.Price.Div(*p.OriginalPrice)
	return decimal.NewFromInt(1).Sub(ratio).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

// SubscriptionPrice is the per-delivery unit price for the interval.
func (p Product) SubscriptionPrice(interval SubscriptionInterval) decimal.Decimal {
	return interval.Apply(p.Price)
}
