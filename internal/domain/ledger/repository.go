package ledger

import (
	"context"
	"time"
)

// TransactionRepository defines the storage contract for transactions.
// Every mutating operation commits the row change and the corresponding
// balance deltas as one atomic unit: either both persist or neither does.
// Lookup methods return (nil, nil) when no row matches.
type TransactionRepository interface {
	Create(ctx context.Context, params CreateParams) (*Transaction, error)
	Update(ctx context.Context, params UpdateParams) error
	Delete(ctx context.Context, id, userID int64) error
	GetByID(ctx context.Context, id, userID int64) (*Transaction, error)
	// ListByAccount returns one account's transactions inside the inclusive
	// date range [from, to].
	ListByAccount(ctx context.Context, accountID, userID int64, from, to time.Time) ([]*Transaction, error)
	// ListByUser returns all of a user's transactions inside [from, to],
	// ordered by transaction date descending. The ordering is a contract.
	ListByUser(ctx context.Context, userID int64, from, to time.Time) ([]*Transaction, error)
	WeeklySums(ctx context.Context, userID int64, from, to time.Time) ([]WeeklySum, error)
	MonthlySums(ctx context.Context, userID int64, year int) ([]MonthlySum, error)
}

// AccountRepository defines the storage contract for accounts and their
// display-metadata types.
type AccountRepository interface {
	Create(ctx context.Context, params CreateAccountParams) (*Account, error)
	GetByID(ctx context.Context, id int64) (*Account, error)
	ListByUser(ctx context.Context, userID int64) ([]*Account, error)
	ListTypesByUser(ctx context.Context, userID int64) ([]*AccountType, error)
}

// CategoryRepository defines the storage contract for categories.
type CategoryRepository interface {
	GetByID(ctx context.Context, id int64) (*Category, error)
	ListByUser(ctx context.Context, userID int64) ([]*Category, error)
}

// EventKind distinguishes ledger mutation events.
type EventKind string

const (
	EventTransactionCreated EventKind = "transaction.created"
	EventTransactionUpdated EventKind = "transaction.updated"
	EventTransactionDeleted EventKind = "transaction.deleted"
)

// Event describes a committed ledger mutation. AccountIDs lists every
// account whose balance the mutation touched.
type Event struct {
	Kind          EventKind `json:"kind"`
	TransactionID int64     `json:"transactionId"`
	UserID        int64     `json:"userId"`
	AccountIDs    []int64   `json:"accountIds"`
	At            time.Time `json:"at"`
}

// EventPublisher receives mutation events after commit. Publishing is
// best-effort and never affects the outcome of the mutation itself.
type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
}
