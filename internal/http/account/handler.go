package account

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/rmarques/smartbooks/internal/account"
	"github.com/rmarques/smartbooks/internal/ledger"
)

type Handler struct {
	svc *account.Service
}

func NewHandler(svc *account.Service) *Handler {
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

type accountResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func toResponse(a *ledger.Account) accountResponse {
	return accountResponse{ID: a.ID, Name: a.Name, CreatedAt: a.CreatedAt}
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	acc, err := h.svc.Create(r.Context(), req.Name)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(acc)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.svc.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	resp := make([]accountResponse, 0, len(accounts))
	for i := range accounts {
		resp = append(resp, toResponse(&accounts[i]))
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

	acc, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			http.Error(w, "account not found", http.StatusNotFound)
			return
		}

		writeError(w, err)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(acc)); err != nil {
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
