package domain

import (
	"cmp"
	"fmt"
	"slices"
)

// SortKey selects the ordering of the shop listing.
type SortKey string

const (
	SortFeatured  SortKey = "featured"
	SortNewest    SortKey = "newest"
	SortPriceAsc  SortKey = "price-asc"
	SortPriceDesc SortKey = "price-desc"
	SortRating    SortKey = "rating"
)

func (s SortKey) Valid() bool {
	switch s {
	case SortFeatured, SortNewest, SortPriceAsc, SortPriceDesc, SortRating:
		return true
	default:
		return false
	}
}

// ParseCategory accepts a concrete category or the "all" wildcard. Empty means all.
func ParseCategory(value string) (Category, error) {
	if value == "" {
		return CategoryAll, nil
	}
	c := Category(value)
	if c != CategoryAll && !c.Valid() {
		return "", fmt.Errorf("unknown category %q", value)
	}
	return c, nil
}

// ParseRoastLevel accepts a roast level or the "all" wildcard. Empty means all.
func ParseRoastLevel(value string) (RoastLevel, error) {
	if value == "" {
		return RoastAll, nil
	}
	r := RoastLevel(value)
	if r != RoastAll && !r.Valid() {
		return "", fmt.Errorf("unknown roast level %q", value)
	}
	return r, nil
}

// ParseSortKey accepts a known sort key. Empty means featured.
func ParseSortKey(value string) (SortKey, error) {
	if value == "" {
		return SortFeatured, nil
	}
	s := SortKey(value)
	if !s.Valid() {
		return "", fmt.Errorf("unknown sort key %q", value)
	}
	return s, nil
}

// FilterAndSort returns a new slice holding the products that pass the category and roast
// filters, ordered by sort. Every ordering is stable against the input order. The roast
// filter never drops non-coffee products. An unrecognised sort key orders as featured.
func FilterAndSort(products []Product, category Category, roast RoastLevel, sort SortKey) []Product {
	filtered := make([]Product, 0, len(products))
	for _, product := range products {
		if category != CategoryAll && category != "" && product.Category != category {
			continue
		}
		if roast != RoastAll && roast != "" && product.IsCoffee() && product.RoastLevel != roast {
			continue
		}
		filtered = append(filtered, product)
	}

	switch sort {
	case SortPriceAsc:
		slices.SortStableFunc(filtered, func(a, b Product) int {
			return a.Price.Cmp(b.Price)
		})
	case SortPriceDesc:
		slices.SortStableFunc(filtered, func(a, b Product) int {
			return b.Price.Cmp(a.Price)
		})
	case SortRating:
		slices.SortStableFunc(filtered, func(a, b Product) int {
			return cmp.Compare(b.Rating, a.Rating)
		})
	case SortNewest:
		filtered = partition(filtered, func(p Product) bool { return p.IsNew })
	default:
		filtered = partition(filtered, func(p Product) bool { return p.IsBestSeller })
	}

	return filtered
}

// partition moves every product matching first ahead of the rest, keeping relative order on both sides.
func partition(products []Product, first func(Product) bool) []Product {
	out := make([]Product, 0, len(products))
	for _, product := range products {
		if first(product) {
			out = append(out, product)
		}
	}
	for _, product := range products {
		if !first(product) {
			out = append(out, product)
		}
	}
	return out
}
