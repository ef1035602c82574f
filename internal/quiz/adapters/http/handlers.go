package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	cartqueries "github.com/dejobratic/tomoca/internal/cart/app/queries"
	cartports "github.com/dejobratic/tomoca/internal/cart/ports"
	catalogports "github.com/dejobratic/tomoca/internal/catalog/ports"
	"github.com/dejobratic/tomoca/internal/httpx"
	"github.com/dejobratic/tomoca/internal/quiz/app"
	"github.com/dejobratic/tomoca/internal/quiz/domain"
)

// Handler exposes the subscription quiz.
type Handler struct {
	service *app.Service
}

// NewHandler constructs a Handler.
func NewHandler(service *app.Service) *Handler {
	return &Handler{service: service}
}

// Routes registers quiz endpoints under the provided router.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/quiz", h.questions)
	r.Post("/quiz/recommendation", h.recommend)
	r.Post("/quiz/recommendation/cart", h.addToCart)
}

func (h *Handler) questions(w http.ResponseWriter, _ *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"questions": h.service.Questions()})
}

func (h *Handler) recommend(w http.ResponseWriter, r *http.Request) {
	var payload domain.Answers
	if err := httpx.DecodeJSON(r, &payload); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	recommendation, err := h.service.Recommend(r.Context(), payload)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, recommendation)
}

func (h *Handler) addToCart(w http.ResponseWriter, r *http.Request) {
	var payload app.AddToCartInput
	if err := httpx.DecodeJSON(r, &payload); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	state, err := h.service.AddToCart(r.Context(), payload)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, cartqueries.NewCartView(state))
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidAnswer), errors.Is(err, cartports.ErrInvalidItem):
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, app.ErrNoCoffee), errors.Is(err, catalogports.ErrProductNotFound):
		httpx.WriteError(w, http.StatusNotFound, err.Error())
	default:
		httpx.WriteError(w, http.StatusInternalServerError, err.Error())
	}
}
