package export

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/rmarques/smartbooks/internal/export"
	"github.com/rmarques/smartbooks/internal/ledger"
	ledgerhttp "github.com/rmarques/smartbooks/internal/http/ledger"
)

type Handler struct {
	svc *export.Service
}

func NewHandler(svc *export.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/transactions.csv", h.exportCSV)
	r.Get("/summary.txt", h.exportSummary)
}

func (h *Handler) exportCSV(w http.ResponseWriter, r *http.Request) {
	filter, err := ledgerhttp.ParseFilter(r)
	if err != nil {
		writeError(w, err)
		return
	}

	filename := fmt.Sprintf("transactions_%s.csv", time.Now().Format("20060102"))

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)

	if _, err := h.svc.WriteCSV(r.Context(), w, filter); err != nil {
		// Headers are already out; all we can do is log.
		slog.Error("csv export failed", "error", err)
	}
}

func (h *Handler) exportSummary(w http.ResponseWriter, r *http.Request) {
	filter, err := ledgerhttp.ParseFilter(r)
	if err != nil {
		writeError(w, err)
		return
	}

	sum, err := h.svc.Summarize(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")

	if _, err := w.Write([]byte(export.FormatSummary(*sum))); err != nil {
		slog.Error("failed to write summary", "error", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	if ledger.IsValidation(err) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if errors.Is(err, ledger.ErrNotFound) {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}

	slog.Error("export failed", "error", err)
	http.Error(w, "internal error", http.StatusInternalServerError)
}
