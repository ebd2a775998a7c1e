package analytics

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"legacy_m/pkg/core/analytics"
	"legacy_m/pkg/core/category"
	"legacy_m/pkg/core/paging"
	"legacy_m/pkg/core/statement"
	"legacy_m/pkg/logger"
)

// maxUploadBytes caps a whole multipart upload.
const maxUploadBytes = 16 << 20

// TransactionStore abstracts transaction persistence.
type TransactionStore interface {
	SaveAll(ctx context.Context, txns []statement.Transaction) error
	ListAll(ctx context.Context) ([]statement.Transaction, error)
	UpdateCategory(ctx context.Context, id int64, category string) error
	Reset(ctx context.Context) error
}

// Assister optionally refines "other" categorizations with a model call.
type Assister interface {
	Categorize(ctx context.Context, descriptions []string) (map[string]string, error)
}

// Handler serves the bank statement analytics endpoints. Request-scoped
// loggers come from the request context (see logger.FromContext).
type Handler struct {
	parser         *statement.Parser
	rules          *category.Table
	store          TransactionStore
	assist         Assister // nil disables model-assisted categorization
	defaultPerPage int
}

func NewHandler(parser *statement.Parser, rules *category.Table, store TransactionStore, assist Assister, defaultPerPage int) *Handler {
	return &Handler{
		parser:         parser,
		rules:          rules,
		store:          store,
		assist:         assist,
		defaultPerPage: defaultPerPage,
	}
}

type uploadResponse struct {
	Success           bool   `json:"success"`
	Message           string `json:"message"`
	TransactionsCount int    `json:"transactions_count"`
	SkippedRows       int    `json:"skipped_rows"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// HandleUpload accepts one or more statement files. Each file is parsed,
// categorized and saved as one unit: a failing file stores none of its own
// rows and aborts the upload, but files saved before it stay committed.
// Skipped rows are reported, not fatal.
func (h *Handler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	if !begin(w, r, "POST") {
		return
	}
	log := logger.FromContext(r.Context())

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart request")
		return
	}
	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		writeError(w, http.StatusBadRequest, "no files selected")
		return
	}

	declaredBank := r.FormValue("bank")

	totalCount, totalSkipped := 0, 0
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("cannot open %s", fh.Filename))
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("cannot read %s", fh.Filename))
			return
		}

		result, err := h.parser.Parse(data, fh.Filename, declaredBank)
		if err != nil {
			var parseErr *statement.ParseError
			if errors.As(err, &parseErr) {
				writeError(w, http.StatusBadRequest, parseErr.Error())
				return
			}
			log.Error().Err(err).Str("file", fh.Filename).Msg("parse failed")
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		for i := range result.Transactions {
			result.Transactions[i].Category = h.rules.Categorize(result.Transactions[i].Description)
		}
		h.assistCategorize(r.Context(), result.Transactions)

		// One file, one store transaction.
		if err := h.store.SaveAll(r.Context(), result.Transactions); err != nil {
			log.Error().Err(err).Str("file", fh.Filename).Msg("save failed")
			writeError(w, http.StatusInternalServerError, "failed to store transactions")
			return
		}

		log.Info().
			Str("file", fh.Filename).
			Str("bank", result.Bank).
			Int("parsed", len(result.Transactions)).
			Int("skipped", result.Skipped).
			Msg("statement ingested")

		totalCount += len(result.Transactions)
		totalSkipped += result.Skipped
	}

	json.NewEncoder(w).Encode(uploadResponse{
		Success:           true,
		Message:           fmt.Sprintf("Обработано %d транзакций", totalCount),
		TransactionsCount: totalCount,
		SkippedRows:       totalSkipped,
	})
}

// assistCategorize asks the model about descriptions the rule table left in
// Other. Best effort: errors only log.
func (h *Handler) assistCategorize(ctx context.Context, txns []statement.Transaction) {
	if h.assist == nil {
		return
	}
	var unknown []string
	seen := make(map[string]bool)
	for _, t := range txns {
		if t.Category == category.Other && !seen[t.Description] {
			seen[t.Description] = true
			unknown = append(unknown, t.Description)
		}
	}
	if len(unknown) == 0 {
		return
	}

	mapping, err := h.assist.Categorize(ctx, unknown)
	if err != nil {
		log := logger.FromContext(ctx)
		log.Warn().Err(err).Msg("assisted categorization failed")
		return
	}
	for i := range txns {
		if txns[i].Category == category.Other {
			if label, ok := mapping[txns[i].Description]; ok {
				txns[i].Category = label
			}
		}
	}
}

// HandleSummary returns the overall totals.
func (h *Handler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	if !begin(w, r, "GET") {
		return
	}
	txns, ok := h.loadAll(w, r)
	if !ok {
		return
	}
	json.NewEncoder(w).Encode(analytics.NewAggregator(txns).Summary())
}

// HandleCategories returns signed per-category sums.
func (h *Handler) HandleCategories(w http.ResponseWriter, r *http.Request) {
	if !begin(w, r, "GET") {
		return
	}
	txns, ok := h.loadAll(w, r)
	if !ok {
		return
	}
	json.NewEncoder(w).Encode(analytics.NewAggregator(txns).ByCategory())
}

// HandleTrends returns average income/expense overall and over the last 90
// days, with direction markers.
func (h *Handler) HandleTrends(w http.ResponseWriter, r *http.Request) {
	if !begin(w, r, "GET") {
		return
	}
	txns, ok := h.loadAll(w, r)
	if !ok {
		return
	}
	json.NewEncoder(w).Encode(analytics.NewAggregator(txns).Trends())
}

// HandleMonthly returns chronological per-month balances.
func (h *Handler) HandleMonthly(w http.ResponseWriter, r *http.Request) {
	if !begin(w, r, "GET") {
		return
	}
	txns, ok := h.loadAll(w, r)
	if !ok {
		return
	}
	json.NewEncoder(w).Encode(analytics.NewAggregator(txns).ByMonth())
}

type transactionsResponse struct {
	Transactions []statement.Transaction `json:"transactions"`
	paging.Info
}

// HandleTransactions returns one page of the transaction list. Pages beyond
// the end return an empty list; page numbers below 1 are a client error.
func (h *Handler) HandleTransactions(w http.ResponseWriter, r *http.Request) {
	if !begin(w, r, "GET") {
		return
	}

	page := queryInt(r, "page", 1)
	perPage := queryInt(r, "per_page", h.defaultPerPage)

	txns, ok := h.loadAll(w, r)
	if !ok {
		return
	}

	slice, info, err := paging.Page(txns, page, perPage)
	if err != nil {
		if errors.Is(err, paging.ErrPageOutOfRange) {
			writeError(w, http.StatusBadRequest, "page number out of range")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	json.NewEncoder(w).Encode(transactionsResponse{Transactions: slice, Info: info})
}

// HandleExportCSV streams the full transaction set as a CSV attachment.
func (h *Handler) HandleExportCSV(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	txns, err := h.store.ListAll(r.Context())
	if err != nil {
		log := logger.FromContext(r.Context())
		log.Error().Err(err).Msg("list transactions failed")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	filename := fmt.Sprintf("transactions_%s.csv", time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)

	cw := csv.NewWriter(w)
	cw.Write([]string{"date", "description", "amount", "category", "bank", "source_file"})
	for _, t := range txns {
		cw.Write([]string{
			t.Date.Format("2006-01-02"),
			t.Description,
			strconv.FormatFloat(t.Amount, 'f', 2, 64),
			t.Category,
			t.Bank,
			t.SourceFile,
		})
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		// Headers are already sent; nothing left to do but record it.
		log := logger.FromContext(r.Context())
		log.Error().Err(err).Msg("csv export write failed")
	}
}

type updateCategoryRequest struct {
	TransactionID int64  `json:"transaction_id"`
	Category      string `json:"category"`
}

// HandleUpdateCategory manually reassigns one transaction's category.
func (h *Handler) HandleUpdateCategory(w http.ResponseWriter, r *http.Request) {
	if !begin(w, r, "POST") {
		return
	}

	var req updateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !h.rules.Valid(req.Category) {
		writeError(w, http.StatusBadRequest, "unknown category: "+req.Category)
		return
	}

	if err := h.store.UpdateCategory(r.Context(), req.TransactionID, req.Category); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	json.NewEncoder(w).Encode(map[string]bool{"success": true})
}

// HandleReset wipes all stored transactions. Explicit data-reset endpoint.
func (h *Handler) HandleReset(w http.ResponseWriter, r *http.Request) {
	if !begin(w, r, "POST") {
		return
	}
	if err := h.store.Reset(r.Context()); err != nil {
		log := logger.FromContext(r.Context())
		log.Error().Err(err).Msg("reset failed")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	json.NewEncoder(w).Encode(map[string]bool{"success": true})
}

func (h *Handler) loadAll(w http.ResponseWriter, r *http.Request) ([]statement.Transaction, bool) {
	txns, err := h.store.ListAll(r.Context())
	if err != nil {
		log := logger.FromContext(r.Context())
		log.Error().Err(err).Msg("list transactions failed")
		writeError(w, http.StatusInternalServerError, "internal error")
		return nil, false
	}
	return txns, true
}

// begin applies the shared CORS/method plumbing. Returns false when the
// request was already answered.
func begin(w http.ResponseWriter, r *http.Request, method string) bool {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", method+", OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return false
	}
	if r.Method != method {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	return true
}

func queryInt(r *http.Request, key string, def int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorResponse{Error: msg})
}
