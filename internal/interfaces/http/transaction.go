package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"moneta/internal/domain/ledger"
	"moneta/internal/shared/middleware"
)

type TransactionHandler struct {
	ledger *ledger.Service
}

func NewTransactionHandler(service *ledger.Service) *TransactionHandler {
	return &TransactionHandler{ledger: service}
}

type TransactionRequest struct {
	TransactionDate string  `json:"transactionDate"`
	Amount          float64 `json:"amount"`
	CategoryID      int64   `json:"categoryId"`
	AccountID       int64   `json:"accountId"`
	Note            string  `json:"note,omitempty"`
}

// HandleTransactions serves the collection endpoint: POST records a new
// transaction, GET lists the user's transactions, narrowed to one account
// when accountId is present.
func (h *TransactionHandler) HandleTransactions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.create(w, r)
	case http.MethodGet:
		h.list(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *TransactionHandler) create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req TransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	date, err := time.Parse(dateLayout, req.TransactionDate)
	if err != nil {
		http.Error(w, "Invalid transactionDate format (use YYYY-MM-DD)", http.StatusBadRequest)
		return
	}

	created, err := h.ledger.CreateTransaction(r.Context(), ledger.CreateParams{
		UserID:     userID,
		Date:       date,
		Amount:     req.Amount,
		CategoryID: req.CategoryID,
		AccountID:  req.AccountID,
		Note:       req.Note,
	})
	if err != nil {
		writeDomainError(w, err, "Failed to create transaction")
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

func (h *TransactionHandler) list(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	from, to, err := parseDateRange(r)
	if err != nil {
		writeDomainError(w, err, "Invalid date range")
		return
	}

	var transactions []*ledger.Transaction
	if accountStr := r.URL.Query().Get("accountId"); accountStr != "" {
		accountID, err := strconv.ParseInt(accountStr, 10, 64)
		if err != nil || accountID <= 0 {
			http.Error(w, "Invalid accountId", http.StatusBadRequest)
			return
		}
		transactions, err = h.ledger.ListByAccount(r.Context(), accountID, userID, from, to)
		if err != nil {
			writeDomainError(w, err, "Failed to list transactions")
			return
		}
	} else {
		transactions, err = h.ledger.ListByUser(r.Context(), userID, from, to)
		if err != nil {
			writeDomainError(w, err, "Failed to list transactions")
			return
		}
	}

	if transactions == nil {
		transactions = []*ledger.Transaction{}
	}
	writeJSON(w, http.StatusOK, transactions)
}

// HandleTransactionByID serves a single transaction: GET fetches it, PUT
// edits it, DELETE removes it. Edits and deletions keep the affected
// account balances consistent with the stored rows.
func (h *TransactionHandler) HandleTransactionByID(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	idStr := strings.TrimPrefix(r.URL.Path, "/api/transactions/")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "Invalid transaction ID", http.StatusBadRequest)
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.get(w, r, id, userID)
	case http.MethodPut:
		h.update(w, r, id, userID)
	case http.MethodDelete:
		h.delete(w, r, id, userID)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *TransactionHandler) get(w http.ResponseWriter, r *http.Request, id, userID int64) {
	transaction, err := h.ledger.GetTransaction(r.Context(), id, userID)
	if err != nil {
		writeDomainError(w, err, "Failed to get transaction")
		return
	}
	if transaction == nil {
		http.Error(w, "Transaction not found", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, transaction)
}

func (h *TransactionHandler) update(w http.ResponseWriter, r *http.Request, id, userID int64) {
	// The stored row is the pre-edit snapshot: its amount, account, and
	// operation type are what reversal must undo, regardless of what the
	// category's type is by the time the edit lands.
	existing, err := h.ledger.GetTransaction(r.Context(), id, userID)
	if err != nil {
		writeDomainError(w, err, "Failed to get transaction")
		return
	}
	if existing == nil {
		http.Error(w, "Transaction not found", http.StatusNotFound)
		return
	}

	var req TransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	date, err := time.Parse(dateLayout, req.TransactionDate)
	if err != nil {
		http.Error(w, "Invalid transactionDate format (use YYYY-MM-DD)", http.StatusBadRequest)
		return
	}

	err = h.ledger.UpdateTransaction(r.Context(), ledger.UpdateParams{
		ID:         id,
		UserID:     userID,
		Date:       date,
		Amount:     req.Amount,
		CategoryID: req.CategoryID,
		AccountID:  req.AccountID,
		Note:       req.Note,
		Previous: ledger.Snapshot{
			Amount:    existing.Amount,
			AccountID: existing.AccountID,
			Operation: existing.Operation,
		},
	})
	if err != nil {
		writeDomainError(w, err, "Failed to update transaction")
		return
	}

	updated, err := h.ledger.GetTransaction(r.Context(), id, userID)
	if err != nil || updated == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *TransactionHandler) delete(w http.ResponseWriter, r *http.Request, id, userID int64) {
	if err := h.ledger.DeleteTransaction(r.Context(), id, userID); err != nil {
		writeDomainError(w, err, "Failed to delete transaction")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
