package domain_test

import (
	"testing"

	"github.com/dejobratic/tomoca/internal/catalog/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func shopFixture() []domain.Product {
	products := []domain.Product{
		{ID: "harrar", Category: domain.CategoryCoffee, RoastLevel: domain.RoastDark, Price: price("21.00"), Rating: 4.7},
		{ID: "jebena", Category: domain.CategoryEquipment, Price: price("45.00"), Rating: 4.9, IsNew: true},
		{ID: "espresso", Category: domain.CategoryCoffee, RoastLevel: domain.RoastDark, Price: price("19.50"), Rating: 4.9, IsBestSeller: true},
		{ID: "yirgacheffe", Category: domain.CategoryCoffee, RoastLevel: domain.RoastLight, Price: price("18.99"), Rating: 4.8, IsBestSeller: true, IsNew: true},
		{ID: "mug", Category: domain.CategoryAccessories, Price: price("14.00"), Rating: 4.5},
		{ID: "djimma", Category: domain.CategoryCoffee, RoastLevel: domain.RoastDark, Price: price("19.50"), Rating: 4.6},
		{ID: "gift-box", Category: domain.CategoryGifts, Price: price("59.00"), Rating: 4.9, IsBestSeller: true},
	}
	for i := range products {
		products[i].Name = products[i].ID
	}
	return products
}

func ids(products []domain.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

func TestFilterAndSort(t *testing.T) {
	tests := []struct {
		name     string
		category domain.Category
		roast    domain.RoastLevel
		sort     domain.SortKey
		want     []string
	}{
		{
			name:     "dark coffee by ascending price keeps catalog order on ties",
			category: domain.CategoryCoffee,
			roast:    domain.RoastDark,
			sort:     domain.SortPriceAsc,
			want:     []string{"espresso", "djimma", "harrar"},
		},
		{
			name:     "descending price",
			category: domain.CategoryAll,
			roast:    domain.RoastAll,
			sort:     domain.SortPriceDesc,
			want:     []string{"gift-box", "jebena", "harrar", "espresso", "djimma", "yirgacheffe", "mug"},
		},
		{
			name:     "roast filter keeps non-coffee products",
			category: domain.CategoryAll,
			roast:    domain.RoastLight,
			sort:     domain.SortFeatured,
			want:     []string{"yirgacheffe", "gift-box", "jebena", "mug"},
		},
		{
			name:     "rating descending is stable",
			category: domain.CategoryAll,
			roast:    domain.RoastAll,
			sort:     domain.SortRating,
			want:     []string{"jebena", "espresso", "gift-box", "yirgacheffe", "harrar", "djimma", "mug"},
		},
		{
			name:     "newest partitions new products first",
			category: domain.CategoryAll,
			roast:    domain.RoastAll,
			sort:     domain.SortNewest,
			want:     []string{"jebena", "yirgacheffe", "harrar", "espresso", "mug", "djimma", "gift-box"},
		},
		{
			name:     "featured partitions best sellers first",
			category: domain.CategoryAll,
			roast:    domain.RoastAll,
			sort:     domain.SortFeatured,
			want:     []string{"espresso", "yirgacheffe", "gift-box", "harrar", "jebena", "mug", "djimma"},
		},
		{
			name:     "unknown sort key orders as featured",
			category: domain.CategoryCoffee,
			roast:    domain.RoastAll,
			sort:     "alphabetical",
			want:     []string{"espresso", "yirgacheffe", "harrar", "djimma"},
		},
		{
			name:     "roast filter does not apply to gifts",
			category: domain.CategoryGifts,
			roast:    domain.RoastDark,
			sort:     domain.SortFeatured,
			want:     []string{"gift-box"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.FilterAndSort(shopFixture(), tt.category, tt.roast, tt.sort)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestFilterAndSortDoesNotReorderInput(t *testing.T) {
	products := shopFixture()
	before := ids(products)

	_ = domain.FilterAndSort(products, domain.CategoryAll, domain.RoastAll, domain.SortPriceAsc)

	assert.Equal(t, before, ids(products))
}

func TestParseShopInputs(t *testing.T) {
	category, err := domain.ParseCategory("")
	require.NoError(t, err)
	assert.Equal(t, domain.CategoryAll, category)

	_, err = domain.ParseCategory("tea")
	assert.Error(t, err)

	roast, err := domain.ParseRoastLevel("dark")
	require.NoError(t, err)
	assert.Equal(t, domain.RoastDark, roast)

	_, err = domain.ParseRoastLevel("blonde")
	assert.Error(t, err)

	sort, err := domain.ParseSortKey("")
	require.NoError(t, err)
	assert.Equal(t, domain.SortFeatured, sort)

	_, err = domain.ParseSortKey("cheapest")
	assert.Error(t, err)
}

func TestCatalogLookups(t *testing.T) {
	catalog := domain.Catalog{Products: shopFixture(), Plans: []domain.SubscriptionPlan{
		{ID: "weekly", Interval: domain.IntervalWeekly, Discount: 20},
		{ID: "biweekly", Interval: domain.IntervalBiweekly, Discount: 15},
	}}
	require.NoError(t, catalog.Validate())

	t.Run("featured returns best sellers", func(t *testing.T) {
		assert.Equal(t, []string{"espresso", "yirgacheffe", "gift-box"}, ids(catalog.Featured()))
	})

	t.Run("related excludes the product and other categories", func(t *testing.T) {
		harrar, ok := catalog.Product("harrar")
		require.True(t, ok)
		assert.Equal(t, []string{"espresso", "yirgacheffe", "djimma"}, ids(catalog.Related(harrar)))
	})

	t.Run("coffee keeps catalog order", func(t *testing.T) {
		assert.Equal(t, []string{"harrar", "espresso", "yirgacheffe", "djimma"}, ids(catalog.Coffee()))
	})

	t.Run("plan by interval", func(t *testing.T) {
		plan, ok := catalog.Plan(domain.IntervalBiweekly)
		require.True(t, ok)
		assert.Equal(t, int64(15), plan.Discount)

		_, ok = catalog.Plan(domain.IntervalMonthly)
		assert.False(t, ok)
	})

	t.Run("duplicate ids are rejected", func(t *testing.T) {
		dup := domain.Catalog{Products: append(shopFixture(), shopFixture()[0])}
		assert.Error(t, dup.Validate())
	})
}
