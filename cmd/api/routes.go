package main

import (
	"log"
	"net/http"

	httphandlers "moneta/internal/interfaces/http"
	"moneta/internal/shared/config"
	"moneta/internal/shared/middleware"
)

// SetupRoutes configures all HTTP routes and returns the final handler with middleware.
func SetupRoutes(deps *Dependencies, cfg *config.Config) http.Handler {
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("/health", httphandlers.HandleHealth)

	// Protected routes require the gateway-asserted user identity
	identity := middleware.Identity

	mux.Handle("/api/transactions", identity(http.HandlerFunc(deps.TransactionHandler.HandleTransactions)))
	mux.Handle("/api/transactions/", identity(http.HandlerFunc(deps.TransactionHandler.HandleTransactionByID)))
	mux.Handle("/api/accounts", identity(http.HandlerFunc(deps.AccountHandler.HandleAccounts)))
	mux.Handle("/api/accounts/types", identity(http.HandlerFunc(deps.AccountHandler.HandleListAccountTypes)))
	mux.Handle("/api/categories", identity(http.HandlerFunc(deps.CategoryHandler.HandleListCategories)))
	mux.Handle("/api/reports/weekly", identity(http.HandlerFunc(deps.ReportHandler.HandleWeeklyReport)))
	mux.Handle("/api/reports/monthly", identity(http.HandlerFunc(deps.ReportHandler.HandleMonthlyReport)))

	// Apply global middleware. RequestID runs first so the access log can
	// carry the request identifier.
	handler := middleware.RequestID(middleware.Logging(middleware.CORS(cfg.Server.AllowedHosts)(mux)))

	// Request spans and metrics when the collector is configured
	if cfg.Telemetry.Enabled {
		handler = middleware.Telemetry(middleware.Metrics(handler))
	}

	// Apply security middleware when TLS is enabled
	if cfg.TLS.Enabled {
		handler = middleware.HSTS(handler)
		log.Println("TLS security middleware enabled (HSTS)")
	}

	return handler
}
