package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"moneta/internal/domain/ledger"
)

const dateLayout = "2006-01-02"

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// writeDomainError maps ledger errors to HTTP statuses. Anything not a
// known domain error is logged and reported as a 500 with the generic
// message only.
func writeDomainError(w http.ResponseWriter, err error, msg string) {
	switch {
	case errors.Is(err, ledger.ErrNotFound):
		http.Error(w, "Transaction not found", http.StatusNotFound)
	case errors.Is(err, ledger.ErrAccountNotOwned), errors.Is(err, ledger.ErrCategoryNotOwned):
		http.Error(w, "Forbidden", http.StatusForbidden)
	case errors.Is(err, ledger.ErrInvalidAmount),
		errors.Is(err, ledger.ErrInvalidDateRange),
		errors.Is(err, ledger.ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		log.Printf("%s: %v", msg, err)
		http.Error(w, msg, http.StatusInternalServerError)
	}
}

// parseDateRange reads optional from/to query parameters. When absent the
// range defaults to the start of the current month through now, matching
// the listing views' default window.
func parseDateRange(r *http.Request) (time.Time, time.Time, error) {
	now := time.Now().UTC()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	to := now

	if s := r.URL.Query().Get("from"); s != "" {
		t, err := time.Parse(dateLayout, s)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: invalid from date (use YYYY-MM-DD)", ledger.ErrInvalidInput)
		}
		from = t
	}
	if s := r.URL.Query().Get("to"); s != "" {
		t, err := time.Parse(dateLayout, s)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: invalid to date (use YYYY-MM-DD)", ledger.ErrInvalidInput)
		}
		to = t
	}

	return from, to, nil
}
