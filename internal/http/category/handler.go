package category

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/rmarques/smartbooks/internal/category"
	"github.com/rmarques/smartbooks/internal/ledger"
)

type Handler struct {
	svc *category.Service
}

func NewHandler(svc *category.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
}

type createRequest struct {
	Name string `json:"name"`
}

type categoryResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func toResponse(c *ledger.Category) categoryResponse {
	return categoryResponse{ID: c.ID, Name: c.Name, CreatedAt: c.CreatedAt}
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	cat, err := h.svc.Create(r.Context(), req.Name)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(cat)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	categories, err := h.svc.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	resp := make([]categoryResponse, 0, len(categories))
	for i := range categories {
		resp = append(resp, toResponse(&categories[i]))
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	cat, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			http.Error(w, "category not found", http.StatusNotFound)
			return
		}

		writeError(w, err)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(cat)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	var conflict *ledger.ConflictError
	if errors.As(err, &conflict) {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}

	if ledger.IsValidation(err) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	slog.Error("request failed", "error", err)
	http.Error(w, "internal error", http.StatusInternalServerError)
}
