package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/dejobratic/tomoca/internal/checkout/app"
	"github.com/dejobratic/tomoca/internal/checkout/domain"
	"github.com/dejobratic/tomoca/internal/checkout/ports"
	"github.com/dejobratic/tomoca/internal/httpx"
)

// Handler exposes HTTP endpoints for the checkout wizard.
type Handler struct {
	service *app.Service

	// submitMu spans key lookup, submission and save so a retried key replays.
	submitMu sync.Mutex
}

// NewHandler constructs a Handler.
func NewHandler(service *app.Service) *Handler {
	return &Handler{service: service}
}

// Routes registers checkout endpoints under the provided router.
func (h *Handler) Routes(r chi.Router) {
	r.Route("/checkout", func(r chi.Router) {
		r.Post("/", h.start)
		r.Get("/", h.current)
		r.Post("/information", h.submitInformation)
		r.Post("/shipping", h.chooseShipping)
		r.Post("/back", h.back)
		r.Post("/submit", h.submit)
	})
}

func (h *Handler) start(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.Start(r.Context())
	h.respond(w, http.StatusCreated, view, err)
}

func (h *Handler) current(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.Current(r.Context())
	h.respond(w, http.StatusOK, view, err)
}

func (h *Handler) submitInformation(w http.ResponseWriter, r *http.Request) {
	var payload domain.Information
	if err := httpx.DecodeJSON(r, &payload); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	view, err := h.service.SubmitInformation(r.Context(), payload)
	h.respond(w, http.StatusOK, view, err)
}

type chooseShippingRequest struct {
	Method string `json:"method"`
}

func (h *Handler) chooseShipping(w http.ResponseWriter, r *http.Request) {
	var payload chooseShippingRequest
	if err := httpx.DecodeJSON(r, &payload); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	view, err := h.service.ChooseShipping(r.Context(), payload.Method)
	h.respond(w, http.StatusOK, view, err)
}

func (h *Handler) back(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.Back(r.Context())
	h.respond(w, http.StatusOK, view, err)
}

func (h *Handler) submit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	idemKey := strings.TrimSpace(r.Header.Get("Idempotency-Key"))
	if idemKey == "" {
		httpx.WriteError(w, http.StatusBadRequest, "Idempotency-Key header required")
		return
	}

	h.submitMu.Lock()
	defer h.submitMu.Unlock()

	if stored, err := h.service.GetIdempotentResponse(ctx, idemKey); err != nil {
		httpx.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	} else if stored != nil {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Idempotent-Replayed", "true")
		w.WriteHeader(stored.StatusCode)
		_, _ = w.Write(stored.Body)
		return
	}

	view, err := h.service.Submit(ctx)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	body, err := json.Marshal(view)
	if err != nil {
		httpx.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	stored := ports.StoredResponse{
		StatusCode:         http.StatusCreated,
		Body:               body,
		ConfirmationNumber: view.Confirmation.Number,
	}
	if err := h.service.SaveIdempotentResponse(ctx, idemKey, stored); err != nil {
		httpx.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_, _ = w.Write(body)
}

func (h *Handler) respond(w http.ResponseWriter, status int, view app.View, err error) {
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, status, view)
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ports.ErrInvalidInput):
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ports.ErrNotStarted):
		httpx.WriteError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ports.ErrEmptyCart), errors.Is(err, ports.ErrInvalidTransition):
		httpx.WriteError(w, http.StatusConflict, err.Error())
	default:
		httpx.WriteError(w, http.StatusInternalServerError, err.Error())
	}
}
