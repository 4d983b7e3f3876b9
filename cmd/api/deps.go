package main

import (
	"log"

	"moneta/internal/domain/ledger"
	"moneta/internal/events"
	"moneta/internal/infrastructure/postgres"
	httphandlers "moneta/internal/interfaces/http"
	"moneta/internal/shared/config"
)

// Dependencies holds all initialized application components.
type Dependencies struct {
	DB     *postgres.DB
	Events *events.Publisher

	// Handlers
	TransactionHandler *httphandlers.TransactionHandler
	AccountHandler     *httphandlers.AccountHandler
	CategoryHandler    *httphandlers.CategoryHandler
	ReportHandler      *httphandlers.ReportHandler
}

// NewDependencies initializes all application dependencies.
func NewDependencies(cfg *config.Config) (*Dependencies, error) {
	// Connect to database
	db, err := postgres.New(cfg.Database.ConnectionString())
	if err != nil {
		return nil, err
	}
	log.Println("Connected to database")

	if err := postgres.RunMigrations(db); err != nil {
		db.Close()
		return nil, err
	}

	// Initialize repositories
	transactionRepo := postgres.NewTransactionRepository(db)
	accountRepo := postgres.NewAccountRepository(db)
	categoryRepo := postgres.NewCategoryRepository(db)

	deps := &Dependencies{DB: db}

	// Event publishing is optional; without a broker URL mutations are
	// committed without notifying anyone.
	var publisher ledger.EventPublisher
	if cfg.Events.URL != "" {
		p, err := events.NewPublisher(cfg.Events.URL, cfg.Events.Exchange, cfg.Events.Queue)
		if err != nil {
			db.Close()
			return nil, err
		}
		deps.Events = p
		publisher = p
		log.Printf("Event publishing enabled (exchange=%s queue=%s)", cfg.Events.Exchange, cfg.Events.Queue)
	} else {
		log.Println("Event publishing disabled")
	}

	// Initialize domain service
	service := ledger.NewService(transactionRepo, accountRepo, categoryRepo, publisher)

	// Initialize handlers
	deps.TransactionHandler = httphandlers.NewTransactionHandler(service)
	deps.AccountHandler = httphandlers.NewAccountHandler(service)
	deps.CategoryHandler = httphandlers.NewCategoryHandler(service)
	deps.ReportHandler = httphandlers.NewReportHandler(service)

	return deps, nil
}

// Close releases all resources held by dependencies.
func (d *Dependencies) Close() {
	if d.Events != nil {
		d.Events.Close()
	}
	if d.DB != nil {
		d.DB.Close()
	}
}
