package http

import (
	"net/http"

	"moneta/internal/domain/ledger"
	"moneta/internal/shared/middleware"
)

type CategoryHandler struct {
	ledger *ledger.Service
}

func NewCategoryHandler(service *ledger.Service) *CategoryHandler {
	return &CategoryHandler{ledger: service}
}

// HandleListCategories returns the user's categories with their operation
// types, which clients need to pick a category when recording a transaction.
func (h *CategoryHandler) HandleListCategories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	categories, err := h.ledger.ListCategories(r.Context(), userID)
	if err != nil {
		writeDomainError(w, err, "Failed to list categories")
		return
	}

	if categories == nil {
		categories = []*ledger.Category{}
	}
	writeJSON(w, http.StatusOK, categories)
}
