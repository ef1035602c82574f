package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dejobratic/tomoca/internal/catalog/app/queries"
	"github.com/dejobratic/tomoca/internal/catalog/ports"
	"github.com/dejobratic/tomoca/internal/httpx"
)

// Handler exposes read-only catalog endpoints.
type Handler struct {
	list     *queries.ListProductsQueryHandler
	get      *queries.GetProductQueryHandler
	featured *queries.FeaturedProductsQueryHandler
	plans    *queries.ListPlansQueryHandler
}

// NewHandler wires the catalog query handlers over one repository.
func NewHandler(repo ports.ProductRepository) *Handler {
	return &Handler{
		list:     queries.NewListProductsQueryHandler(repo),
		get:      queries.NewGetProductQueryHandler(repo),
		featured: queries.NewFeaturedProductsQueryHandler(repo),
		plans:    queries.NewListPlansQueryHandler(repo),
	}
}

// Routes registers catalog endpoints under the provided router.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/products", h.listProducts)
	r.Get("/products/featured", h.featuredProducts)
	r.Get("/products/{productID}", h.getProduct)
	r.Get("/subscriptions/plans", h.listPlans)
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	products, err := h.list.Handle(r.Context(), queries.ListProductsQuery{
		Category: params.Get("category"),
		Roast:    params.Get("roast"),
		Sort:     params.Get("sort"),
	})
	if err != nil {
		if errors.Is(err, ports.ErrInvalidFilter) {
			httpx.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		httpx.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"products": products, "count": len(products)})
}

func (h *Handler) featuredProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.featured.Handle(r.Context())
	if err != nil {
		httpx.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"products": products})
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	detail, err := h.get.Handle(r.Context(), queries.GetProductQuery{ProductID: chi.URLParam(r, "productID")})
	if err != nil {
		if errors.Is(err, ports.ErrProductNotFound) {
			httpx.WriteError(w, http.StatusNotFound, "product not found")
			return
		}
		httpx.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	httpx.WriteJSON(w, http.StatusOK, detail)
}

func (h *Handler) listPlans(w http.ResponseWriter, r *http.Request) {
	plans, err := h.plans.Handle(r.Context())
	if err != nil {
		httpx.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"plans": plans})
}
