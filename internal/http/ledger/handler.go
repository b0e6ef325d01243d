package ledger

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/rmarques/smartbooks/internal/ledger"
)

type Handler struct {
	svc *ledger.Service
}

func NewHandler(svc *ledger.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/summary", h.summary)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	tx, err := h.svc.Create(r.Context(), req.rawRecord())
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(tx)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	q, err := parseQuery(r)
	if err != nil {
		writeError(w, err)
		return
	}

	result, err := h.svc.List(r.Context(), q)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toListResponse(result)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	filter, err := ParseFilter(r)
	if err != nil {
		writeError(w, err)
		return
	}

	sum, err := h.svc.Summarize(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toSummaryResponse(sum)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	tx, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(tx)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req transactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	tx, err := h.svc.Update(r.Context(), id, req.rawRecord())
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(tx)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListTags serves the tag vocabulary, ordered by name.
func (h *Handler) ListTags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.svc.Tags(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	resp := make([]tagResponse, 0, len(tags))
	for _, tag := range tags {
		resp = append(resp, tagResponse{ID: tag.ID, Name: tag.Name})
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// parseQuery reads filter, sort and pagination parameters. Malformed values
// are errors, not silently dropped filters.
func parseQuery(r *http.Request) (ledger.Query, error) {
	filter, err := ParseFilter(r)
	if err != nil {
		return ledger.Query{}, err
	}

	sort, err := ledger.ParseSort(r.URL.Query().Get("sort"), r.URL.Query().Get("direction"))
	if err != nil {
		return ledger.Query{}, err
	}

	var page ledger.Page

	if page.Number, err = queryInt(r, "page"); err != nil {
		return ledger.Query{}, err
	}

	if page.Size, err = queryInt(r, "per_page"); err != nil {
		return ledger.Query{}, err
	}

	return ledger.Query{Filter: filter, Sort: sort, Page: page}, nil
}

func queryInt(r *http.Request, name string) (int, error) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return 0, nil
	}

	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, &ledger.InvalidFormatError{Field: name}
	}

	return n, nil
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ledger.ErrNotFound):
		http.Error(w, "transaction not found", http.StatusNotFound)
	case ledger.IsValidation(err):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		var conflict *ledger.ConflictError
		if errors.As(err, &conflict) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}

		slog.Error("request failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
