package http

import (
	"net/http"
	"strconv"
	"time"

	"moneta/internal/domain/ledger"
	"moneta/internal/shared/middleware"
)

type ReportHandler struct {
	ledger *ledger.Service
}

func NewReportHandler(service *ledger.Service) *ReportHandler {
	return &ReportHandler{ledger: service}
}

// HandleWeeklyReport returns per-week income and expense totals for the
// requested range. Weeks are numbered from 1 starting at the range's first
// day; weeks without transactions are omitted.
func (h *ReportHandler) HandleWeeklyReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

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

	sums, err := h.ledger.WeeklySums(r.Context(), userID, from, to)
	if err != nil {
		writeDomainError(w, err, "Failed to compute weekly report")
		return
	}

	if sums == nil {
		sums = []ledger.WeeklySum{}
	}
	writeJSON(w, http.StatusOK, sums)
}

// HandleMonthlyReport returns per-month income and expense totals for the
// requested year, defaulting to the current year. Months without
// transactions are omitted.
func (h *ReportHandler) HandleMonthlyReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	year := time.Now().UTC().Year()
	if s := r.URL.Query().Get("year"); s != "" {
		parsed, err := strconv.Atoi(s)
		if err != nil || parsed < 1 {
			http.Error(w, "Invalid year", http.StatusBadRequest)
			return
		}
		year = parsed
	}

	sums, err := h.ledger.MonthlySums(r.Context(), userID, year)
	if err != nil {
		writeDomainError(w, err, "Failed to compute monthly report")
		return
	}

	if sums == nil {
		sums = []ledger.MonthlySum{}
	}
	writeJSON(w, http.StatusOK, sums)
}
