package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dejobratic/tomoca/internal/cart/app"
	"github.com/dejobratic/tomoca/internal/cart/app/queries"
	"github.com/dejobratic/tomoca/internal/cart/domain"
	"github.com/dejobratic/tomoca/internal/cart/ports"
	catalogports "github.com/dejobratic/tomoca/internal/catalog/ports"
	"github.com/dejobratic/tomoca/internal/httpx"
)

// Handler exposes HTTP endpoints for cart operations. Every response carries the whole cart.
type Handler struct {
	service *app.Service
}

// NewHandler constructs a Handler.
func NewHandler(service *app.Service) *Handler {
	return &Handler{service: service}
}

// Routes registers cart endpoints under the provided router.
func (h *Handler) Routes(r chi.Router) {
	r.Route("/cart", func(r chi.Router) {
		r.Get("/", h.getCart)
		r.Delete("/", h.clearCart)
		r.Post("/items", h.addItem)
		r.Patch("/items/{productID}", h.updateItem)
		r.Delete("/items/{productID}", h.removeItem)
		r.Post("/toggle", h.toggleCart)
		r.Put("/open", h.setOpen)
	})
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.View(r.Context())
	if err != nil {
		httpx.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	httpx.WriteJSON(w, http.StatusOK, view)
}

func (h *Handler) addItem(w http.ResponseWriter, r *http.Request) {
	var payload app.AddItemInput
	if err := httpx.DecodeJSON(r, &payload); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	if payload.ProductID == "" {
		httpx.WriteError(w, http.StatusBadRequest, "productId is required")
		return
	}

	state, err := h.service.AddItem(r.Context(), payload)
	h.respond(w, http.StatusCreated, state, err)
}

func (h *Handler) updateItem(w http.ResponseWriter, r *http.Request) {
	var payload app.UpdateItemInput
	if err := httpx.DecodeJSON(r, &payload); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	state, err := h.service.UpdateItem(r.Context(), chi.URLParam(r, "productID"), payload)
	h.respond(w, http.StatusOK, state, err)
}

func (h *Handler) removeItem(w http.ResponseWriter, r *http.Request) {
	state, err := h.service.RemoveItem(r.Context(), chi.URLParam(r, "productID"))
	h.respond(w, http.StatusOK, state, err)
}

func (h *Handler) clearCart(w http.ResponseWriter, r *http.Request) {
	state, err := h.service.Clear(r.Context())
	h.respond(w, http.StatusOK, state, err)
}

func (h *Handler) toggleCart(w http.ResponseWriter, r *http.Request) {
	state, err := h.service.Toggle(r.Context())
	h.respond(w, http.StatusOK, state, err)
}

type setOpenRequest struct {
	Open *bool `json:"open"`
}

func (h *Handler) setOpen(w http.ResponseWriter, r *http.Request) {
	var payload setOpenRequest
	if err := httpx.DecodeJSON(r, &payload); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	if payload.Open == nil {
		httpx.WriteError(w, http.StatusBadRequest, "open is required")
		return
	}

	state, err := h.service.SetOpen(r.Context(), *payload.Open)
	h.respond(w, http.StatusOK, state, err)
}

func (h *Handler) respond(w http.ResponseWriter, status int, state domain.State, err error) {
	if err != nil {
		switch {
		case errors.Is(err, ports.ErrInvalidItem):
			httpx.WriteError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, catalogports.ErrProductNotFound):
			httpx.WriteError(w, http.StatusNotFound, "product not found")
		default:
			httpx.WriteError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	httpx.WriteJSON(w, status, queries.NewCartView(state))
}
