package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/tsethi/paysplit/internal/api/middleware"
	"github.com/tsethi/paysplit/internal/domain"
	"github.com/tsethi/paysplit/internal/pipeline"
	"github.com/tsethi/paysplit/internal/store"
)

// UploadHandler handles CSV upload endpoints.
type UploadHandler struct {
	ingestor *pipeline.Ingestor
	log      zerolog.Logger
}

// NewUploadHandler creates a new upload handler.
func NewUploadHandler(ingestor *pipeline.Ingestor, log zerolog.Logger) *UploadHandler {
	return &UploadHandler{
		ingestor: ingestor,
		log:      log,
	}
}

// Upload handles POST /api/v1/upload. It accepts a multipart form with a
// single "file" part, requires a .csv filename, and responds with the
// persisted records plus a count.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	file, header, err := r.FormFile("file")
	if err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "A file upload is required")
		return
	}
	defer file.Close()

	if !strings.HasSuffix(strings.ToLower(header.Filename), ".csv") {
		middleware.WriteError(w, http.StatusBadRequest, "File must be a CSV")
		return
	}

	content, err := io.ReadAll(file)
	if err != nil {
		h.log.Error().Err(err).Str("filename", header.Filename).Msg("Failed to read upload")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to read uploaded file")
		return
	}

	records, err := h.ingestor.Ingest(ctx, content)
	if err != nil {
		if errors.Is(err, pipeline.ErrDecode) {
			h.log.Warn().Err(err).Str("filename", header.Filename).Msg("Undecodable upload")
			middleware.WriteError(w, http.StatusBadRequest, "File content could not be decoded as CSV")
			return
		}
		h.log.Error().Err(err).Str("filename", header.Filename).Msg("Failed to process upload")
		middleware.WriteError(w, http.StatusInternalServerError, "Error processing file")
		return
	}

	h.log.Info().
		Str("filename", header.Filename).
		Int("count", len(records)).
		Msg("CSV processed")

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message":      "CSV processed successfully",
		"transactions": records,
		"count":        len(records),
	})
}

// TransactionsHandler handles transaction read and delete endpoints.
type TransactionsHandler struct {
	repo store.Repository
	log  zerolog.Logger
}

// NewTransactionsHandler creates a new transactions handler.
func NewTransactionsHandler(repo store.Repository, log zerolog.Logger) *TransactionsHandler {
	return &TransactionsHandler{
		repo: repo,
		log:  log,
	}
}

// List handles GET /api/v1/transactions. An optional ?limit= caps the
// result (default 100); an optional ?type= filters by exact transaction
// type.
func (h *TransactionsHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()

	limit := store.DefaultLimit
	if limitStr := query.Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 0 {
			middleware.WriteError(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = parsed
	}

	// A limit of zero is a valid request for zero records. Guard it here:
	// the repository treats limit <= 0 as "no cap".
	if limit == 0 {
		middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
			"transactions": []*domain.Transaction{},
			"count":        0,
		})
		return
	}

	var (
		transactions []*domain.Transaction
		err          error
	)
	if transactionType := query.Get("type"); transactionType != "" {
		transactions, err = h.repo.GetByType(ctx, transactionType)
	} else {
		transactions, err = h.repo.GetAll(ctx, limit)
	}
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list transactions")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to list transactions")
		return
	}

	if transactions == nil {
		transactions = []*domain.Transaction{}
	}
	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"transactions": transactions,
		"count":        len(transactions),
	})
}

// Summary handles GET /api/v1/transactions/summary. It aggregates over the
// full record set, not a page.
func (h *TransactionsHandler) Summary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	transactions, err := h.repo.GetAll(ctx, 0)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to load transactions for summary")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to compute summary")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, domain.Summarize(transactions))
}

// Get handles GET /api/v1/transactions/{id}.
func (h *TransactionsHandler) Get(w http.ResponseWriter, r *http.Request, id string) {
	ctx := r.Context()

	transaction, err := h.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			middleware.WriteError(w, http.StatusNotFound, "Transaction not found")
			return
		}
		h.log.Error().Err(err).Str("transaction_id", id).Msg("Failed to get transaction")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to get transaction")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, transaction)
}

// Delete handles DELETE /api/v1/transactions/{id}.
func (h *TransactionsHandler) Delete(w http.ResponseWriter, r *http.Request, id string) {
	ctx := r.Context()

	deleted, err := h.repo.Delete(ctx, id)
	if err != nil {
		h.log.Error().Err(err).Str("transaction_id", id).Msg("Failed to delete transaction")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to delete transaction")
		return
	}
	if !deleted {
		middleware.WriteError(w, http.StatusNotFound, "Transaction not found")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Transaction deleted",
		"id":      id,
	})
}
