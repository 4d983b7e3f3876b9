package http

import (
	"encoding/json"
	"net/http"

	"moneta/internal/domain/ledger"
	"moneta/internal/shared/middleware"
)

type AccountHandler struct {
	ledger *ledger.Service
}

func NewAccountHandler(service *ledger.Service) *AccountHandler {
	return &AccountHandler{ledger: service}
}

type CreateAccountRequest struct {
	Name          string  `json:"name"`
	AccountTypeID int64   `json:"accountTypeId"`
	Balance       float64 `json:"balance"`
	DisplayOrder  int     `json:"order"`
}

// HandleAccounts serves the account collection: GET lists the user's
// accounts with current balances, POST opens a new one.
func (h *AccountHandler) HandleAccounts(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	switch r.Method {
	case http.MethodGet:
		accounts, err := h.ledger.ListAccounts(r.Context(), userID)
		if err != nil {
			writeDomainError(w, err, "Failed to list accounts")
			return
		}
		if accounts == nil {
			accounts = []*ledger.Account{}
		}
		writeJSON(w, http.StatusOK, accounts)

	case http.MethodPost:
		var req CreateAccountRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		created, err := h.ledger.CreateAccount(r.Context(), ledger.CreateAccountParams{
			UserID:        userID,
			AccountTypeID: req.AccountTypeID,
			Name:          req.Name,
			Balance:       req.Balance,
			DisplayOrder:  req.DisplayOrder,
		})
		if err != nil {
			writeDomainError(w, err, "Failed to create account")
			return
		}
		writeJSON(w, http.StatusCreated, created)

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// HandleListAccountTypes returns the user's account types in display order.
func (h *AccountHandler) HandleListAccountTypes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	types, err := h.ledger.ListAccountTypes(r.Context(), userID)
	if err != nil {
		writeDomainError(w, err, "Failed to list account types")
		return
	}

	if types == nil {
		types = []*ledger.AccountType{}
	}
	writeJSON(w, http.StatusOK, types)
}
