package ledger

import (
	"errors"
	"fmt"
	"time"
)

// Domain errors
var (
	ErrNotFound         = errors.New("transaction not found")
	ErrAccountNotOwned  = errors.New("account does not belong to user")
	ErrCategoryNotOwned = errors.New("category does not belong to user")
	ErrInvalidAmount    = errors.New("amount must be greater than zero")
	ErrInvalidDateRange = errors.New("date range start is after end")
	ErrInvalidInput     = errors.New("invalid input")
)

// AccountType is display metadata grouping a user's accounts (cash, bank,
// credit card, ...).
type AccountType struct {
	ID           int64  `json:"id"`
	UserID       int64  `json:"userId"`
	Name         string `json:"name"`
	DisplayOrder int    `json:"order"`
}

// Account holds a running balance. The balance is derivable state: it always
// equals the signed sum of the transactions currently referencing the account.
type Account struct {
	ID            int64   `json:"id"`
	UserID        int64   `json:"userId"`
	AccountTypeID int64   `json:"accountTypeId"`
	Name          string  `json:"name"`
	Balance       float64 `json:"balance"`
	DisplayOrder  int     `json:"order"`
}

// Category labels transactions and carries the operation type that decides
// their sign.
type Category struct {
	ID        int64         `json:"id"`
	UserID    int64         `json:"userId"`
	Name      string        `json:"name"`
	Operation OperationType `json:"operationType"`
	Icon      string        `json:"icon,omitempty"`
}

// Transaction is a single income or expense movement. Amount is always a
// positive magnitude; the sign is derived from the category's operation type.
// Category and account display names are populated on the read paths that
// join them.
type Transaction struct {
	ID         int64         `json:"id"`
	UserID     int64         `json:"userId"`
	Date       time.Time     `json:"transactionDate"`
	Amount     float64       `json:"amount"`
	CategoryID int64         `json:"categoryId"`
	AccountID  int64         `json:"accountId"`
	Note       string        `json:"note,omitempty"`
	Operation  OperationType `json:"operationType"`
	Category   string        `json:"category,omitempty"`
	Account    string        `json:"account,omitempty"`
}

// CreateAccountParams contains parameters for opening a new account.
// Balance is the starting balance; transactions move it from there.
type CreateAccountParams struct {
	UserID        int64
	AccountTypeID int64
	Name          string
	Balance       float64
	DisplayOrder  int
}

// CreateParams contains parameters for recording a new transaction.
// Operation is resolved from the category before the storage layer runs and
// decides the sign of the balance delta.
type CreateParams struct {
	UserID     int64
	Date       time.Time
	Amount     float64
	CategoryID int64
	AccountID  int64
	Note       string
	Operation  OperationType
}

// Snapshot captures the balance-relevant state of a transaction as it was
// read before an edit: amount, account, and the operation type in force at
// that time. Reversal on update uses exactly this snapshot, never a freshly
// re-derived sign, so a category whose type changed between read and write
// cannot double-count.
type Snapshot struct {
	Amount    float64
	AccountID int64
	Operation OperationType
}

// UpdateParams contains the edited transaction plus the pre-edit Snapshot.
type UpdateParams struct {
	ID         int64
	UserID     int64
	Date       time.Time
	Amount     float64
	CategoryID int64
	AccountID  int64
	Note       string
	Operation  OperationType
	Previous   Snapshot
}

// WeeklySum is the total amount of one operation type inside one 7-day
// bucket. Week numbering starts at 1 on the range's first day. Buckets with
// no transactions are absent, not zero.
type WeeklySum struct {
	Week      int           `json:"week"`
	Amount    float64       `json:"amount"`
	Operation OperationType `json:"operationType"`
}

// WeekBucket returns the 1-based 7-day bucket a transaction date falls into
// when bucketing is anchored at from: from itself opens bucket 1, from+7d
// opens bucket 2. Both arguments are calendar dates at midnight UTC. The
// weekly aggregate query in the postgres repository groups by this same rule.
func WeekBucket(date, from time.Time) int {
	days := int(date.Sub(from).Hours() / 24)
	return days/7 + 1
}

// MonthlySum is the total amount of one operation type in one calendar month
// (1-12) of the queried year. Months with no transactions are absent.
type MonthlySum struct {
	Month     int           `json:"month"`
	Amount    float64       `json:"amount"`
	Operation OperationType `json:"operationType"`
}

// Validate checks create parameters before they reach storage.
func (p CreateParams) Validate() error {
	if p.UserID <= 0 {
		return fmt.Errorf("%w: valid user ID is required", ErrInvalidInput)
	}
	if p.Amount <= 0 {
		return ErrInvalidAmount
	}
	if p.CategoryID <= 0 {
		return fmt.Errorf("%w: category ID is required", ErrInvalidInput)
	}
	if p.AccountID <= 0 {
		return fmt.Errorf("%w: account ID is required", ErrInvalidInput)
	}
	if p.Date.IsZero() {
		return fmt.Errorf("%w: transaction date is required", ErrInvalidInput)
	}
	return nil
}

// Validate checks update parameters, including the pre-edit snapshot.
func (p UpdateParams) Validate() error {
	if p.ID <= 0 {
		return fmt.Errorf("%w: transaction ID is required", ErrInvalidInput)
	}
	if p.UserID <= 0 {
		return fmt.Errorf("%w: valid user ID is required", ErrInvalidInput)
	}
	if p.Amount <= 0 {
		return ErrInvalidAmount
	}
	if p.CategoryID <= 0 {
		return fmt.Errorf("%w: category ID is required", ErrInvalidInput)
	}
	if p.AccountID <= 0 {
		return fmt.Errorf("%w: account ID is required", ErrInvalidInput)
	}
	if p.Date.IsZero() {
		return fmt.Errorf("%w: transaction date is required", ErrInvalidInput)
	}
	if p.Previous.Amount <= 0 || p.Previous.AccountID <= 0 {
		return fmt.Errorf("%w: previous amount and account are required", ErrInvalidInput)
	}
	if !p.Previous.Operation.Valid() {
		return fmt.Errorf("%w: previous operation type is required", ErrInvalidInput)
	}
	return nil
}
