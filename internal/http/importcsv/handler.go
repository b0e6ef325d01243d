package importcsv

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/rmarques/smartbooks/internal/importer"
	"github.com/rmarques/smartbooks/internal/ledger"
)

// Handler accepts a batch of raw transaction records, either as a multipart
// CSV upload or as a JSON list, and inserts them all-or-nothing.
type Handler struct {
	importSvc *importer.Service
	txSvc     *ledger.Service
}

func NewHandler(importSvc *importer.Service, txSvc *ledger.Service) *Handler {
	return &Handler{
		importSvc: importSvc,
		txSvc:     txSvc,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importBatch)
}

type batchResponse struct {
	BatchID  uuid.UUID `json:"batch_id"`
	Inserted int       `json:"inserted"`
}

func (h *Handler) importBatch(w http.ResponseWriter, r *http.Request) {
	var (
		records []ledger.RawRecord
		err     error
	)

	if isMultipart(r) {
		records, err = h.parseUpload(r)
	} else {
		records, err = parseJSONList(r)
	}

	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	batchID := uuid.New()

	inserted, err := h.txSvc.CreateBatch(r.Context(), records)
	if err != nil {
		writeError(w, err)
		return
	}

	slog.Info("batch import complete", "batch_id", batchID, "inserted", inserted)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(batchResponse{BatchID: batchID, Inserted: inserted}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func isMultipart(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data")
}

func (h *Handler) parseUpload(r *http.Request) ([]ledger.RawRecord, error) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		return nil, errors.New("failed to parse form: " + err.Error())
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		return nil, errors.New("file field is required")
	}
	defer file.Close()

	return h.importSvc.Import(importer.FormatCSV, file)
}

func parseJSONList(r *http.Request) ([]ledger.RawRecord, error) {
	var items []batchItem
	if err := json.NewDecoder(r.Body).Decode(&items); err != nil {
		return nil, errors.New("invalid request body: " + err.Error())
	}

	records := make([]ledger.RawRecord, 0, len(items))
	for _, item := range items {
		records = append(records, item.rawRecord())
	}

	return records, nil
}

func writeError(w http.ResponseWriter, err error) {
	if ledger.IsValidation(err) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var conflict *ledger.ConflictError
	if errors.As(err, &conflict) {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}

	slog.Error("batch import failed", "error", err)
	http.Error(w, "internal error", http.StatusInternalServerError)
}
