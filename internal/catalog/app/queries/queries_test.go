package queries_test

import (
	"context"
	"errors"
	"testing"

	"github.com/dejobratic/tomoca/internal/catalog/adapters/memory"
	"github.com/dejobratic/tomoca/internal/catalog/app/queries"
	"github.com/dejobratic/tomoca/internal/catalog/domain"
	"github.com/dejobratic/tomoca/internal/catalog/ports"
	"github.com/shopspring/decimal"
)

func newRepo(t *testing.T) *memory.Repository {
	t.Helper()
	original := decimal.RequireFromString("25.00")
	repo, err := memory.NewRepository(domain.Catalog{
		Products: []domain.Product{
			{ID: "sidamo", Name: "Sidamo", Price: decimal.RequireFromString("20.00"), OriginalPrice: &original, Category: domain.CategoryCoffee, RoastLevel: domain.RoastMedium, IsSubscriptionAvailable: true},
			{ID: "harrar", Name: "Harrar", Price: decimal.RequireFromString("21.50"), Category: domain.CategoryCoffee, RoastLevel: domain.RoastDark, IsBestSeller: true},
			{ID: "dripper", Name: "Dripper", Price: decimal.RequireFromString("28.00"), Category: domain.CategoryEquipment},
			{ID: "espresso", Name: "Espresso", Price: decimal.RequireFromString("19.99"), Category: domain.CategoryCoffee, RoastLevel: domain.RoastDark},
		},
		Plans: []domain.SubscriptionPlan{
			{ID: "weekly", Interval: domain.IntervalWeekly, Discount: 20},
			{ID: "monthly", Interval: domain.IntervalMonthly, Discount: 10},
		},
	})
	if err != nil {
		t.Fatalf("NewRepository() failed: %v", err)
	}
	return repo
}

type failingRepository struct{ err error }

func (f *failingRepository) List(context.Context) ([]domain.Product, error) { return nil, f.err }

func (f *failingRepository) GetByID(context.Context, string) (*domain.Product, error) {
	return &domain.Product{ID: "x"}, nil
}

func (f *failingRepository) Plans(context.Context) ([]domain.SubscriptionPlan, error) {
	return nil, f.err
}

func TestListProducts(t *testing.T) {
	handler := queries.NewListProductsQueryHandler(newRepo(t))

	t.Run("filters coffee by dark roast and sorts by price", func(t *testing.T) {
		products, err := handler.Handle(context.Background(), queries.ListProductsQuery{
			Category: "coffee",
			Roast:    "dark",
			Sort:     "price-asc",
		})
		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		if len(products) != 2 || products[0].ID != "espresso" || products[1].ID != "harrar" {
			t.Errorf("unexpected products: %+v", products)
		}
	})

	t.Run("empty query lists everything featured first", func(t *testing.T) {
		products, err := handler.Handle(context.Background(), queries.ListProductsQuery{})
		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		if len(products) != 4 || products[0].ID != "harrar" {
			t.Errorf("unexpected products: %+v", products)
		}
	})

	for _, query := range []queries.ListProductsQuery{
		{Category: "tea"},
		{Roast: "blonde"},
		{Sort: "cheapest"},
	} {
		t.Run("rejects invalid filter", func(t *testing.T) {
			_, err := handler.Handle(context.Background(), query)
			if !errors.Is(err, ports.ErrInvalidFilter) {
				t.Errorf("expected ErrInvalidFilter, got: %v", err)
			}
		})
	}

	t.Run("wraps repository errors", func(t *testing.T) {
		boom := errors.New("boom")
		_, err := queries.NewListProductsQueryHandler(&failingRepository{err: boom}).
			Handle(context.Background(), queries.ListProductsQuery{})
		if !errors.Is(err, boom) {
			t.Errorf("expected wrapped error, got: %v", err)
		}
	})
}

func TestGetProduct(t *testing.T) {
	handler := queries.NewGetProductQueryHandler(newRepo(t))

	t.Run("returns related products and plan prices", func(t *testing.T) {
		detail, err := handler.Handle(context.Background(), queries.GetProductQuery{ProductID: "sidamo"})
		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		if detail.PercentOff != 20 {
			t.Errorf("expected 20 percent off, got %d", detail.PercentOff)
		}
		if len(detail.Related) != 2 {
			t.Fatalf("expected 2 related coffees, got %d", len(detail.Related))
		}
		for _, related := range detail.Related {
			if related.ID == "sidamo" || related.Category != domain.CategoryCoffee {
				t.Errorf("unexpected related product %s", related.ID)
			}
		}
		if len(detail.PlanPrices) != 2 {
			t.Fatalf("expected 2 plan prices, got %d", len(detail.PlanPrices))
		}
		if !detail.PlanPrices[0].Price.Equal(decimal.RequireFromString("16")) {
			t.Errorf("expected weekly price 16, got %s", detail.PlanPrices[0].Price)
		}
	})

	t.Run("skips plan prices for one-time products", func(t *testing.T) {
		detail, err := handler.Handle(context.Background(), queries.GetProductQuery{ProductID: "dripper"})
		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		if len(detail.PlanPrices) != 0 {
			t.Errorf("expected no plan prices, got %d", len(detail.PlanPrices))
		}
		if len(detail.Related) != 0 {
			t.Errorf("expected no related equipment, got %d", len(detail.Related))
		}
	})

	t.Run("unknown product", func(t *testing.T) {
		_, err := handler.Handle(context.Background(), queries.GetProductQuery{ProductID: "nope"})
		if !errors.Is(err, ports.ErrProductNotFound) {
			t.Errorf("expected ErrProductNotFound, got: %v", err)
		}
	})

	t.Run("requires id", func(t *testing.T) {
		if _, err := handler.Handle(context.Background(), queries.GetProductQuery{ProductID: " "}); err == nil {
			t.Error("expected validation error")
		}
	})
}

func TestFeaturedAndPlans(t *testing.T) {
	repo := newRepo(t)

	featured, err := queries.NewFeaturedProductsQueryHandler(repo).Handle(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if len(featured) != 1 || featured[0].ID != "harrar" {
		t.Errorf("unexpected featured products: %+v", featured)
	}

	plans, err := queries.NewListPlansQueryHandler(repo).Handle(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if len(plans) != 2 {
		t.Errorf("expected 2 plans, got %d", len(plans))
	}
}
