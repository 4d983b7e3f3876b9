package ledger

import (
	"context"
	"fmt"
	"log"
	"time"
)

// Service contains the business logic for ledger operations. It enforces
// cross-user isolation before any storage call runs: a transaction may only
// reference an account and a category owned by the same user the caller
// asserts.
type Service struct {
	transactions TransactionRepository
	accounts     AccountRepository
	categories   CategoryRepository
	events       EventPublisher
}

// NewService creates a new ledger service. events may be nil, in which case
// mutation events are not published.
func NewService(transactions TransactionRepository, accounts AccountRepository, categories CategoryRepository, events EventPublisher) *Service {
	return &Service{
		transactions: transactions,
		accounts:     accounts,
		categories:   categories,
		events:       events,
	}
}

// CreateTransaction records a new transaction and applies its signed amount
// to the target account's balance.
func (s *Service) CreateTransaction(ctx context.Context, params CreateParams) (*Transaction, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	category, err := s.ownedCategory(ctx, params.CategoryID, params.UserID)
	if err != nil {
		return nil, err
	}
	if _, err := s.ownedAccount(ctx, params.AccountID, params.UserID); err != nil {
		return nil, err
	}

	params.Operation = category.Operation

	created, err := s.transactions.Create(ctx, params)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, Event{
		Kind:          EventTransactionCreated,
		TransactionID: created.ID,
		UserID:        created.UserID,
		AccountIDs:    []int64{created.AccountID},
		At:            time.Now().UTC(),
	})

	return created, nil
}

// UpdateTransaction edits a transaction in place. params.Previous must hold
// the amount, account, and operation type read before the edit; the previous
// contribution is reversed with that snapshot and the new signed amount is
// applied to the (possibly different) new account, all in one atomic unit.
func (s *Service) UpdateTransaction(ctx context.Context, params UpdateParams) error {
	if err := params.Validate(); err != nil {
		return err
	}

	category, err := s.ownedCategory(ctx, params.CategoryID, params.UserID)
	if err != nil {
		return err
	}
	if _, err := s.ownedAccount(ctx, params.AccountID, params.UserID); err != nil {
		return err
	}
	// The reversal target must belong to the same user too; the snapshot is
	// caller-supplied and not trusted on its own.
	if params.Previous.AccountID != params.AccountID {
		if _, err := s.ownedAccount(ctx, params.Previous.AccountID, params.UserID); err != nil {
			return err
		}
	}

	params.Operation = category.Operation

	if err := s.transactions.Update(ctx, params); err != nil {
		return err
	}

	accountIDs := []int64{params.AccountID}
	if params.Previous.AccountID != params.AccountID {
		accountIDs = append(accountIDs, params.Previous.AccountID)
	}
	s.publish(ctx, Event{
		Kind:          EventTransactionUpdated,
		TransactionID: params.ID,
		UserID:        params.UserID,
		AccountIDs:    accountIDs,
		At:            time.Now().UTC(),
	})

	return nil
}

// DeleteTransaction removes a transaction and reverses its balance
// contribution atomically.
func (s *Service) DeleteTransaction(ctx context.Context, id, userID int64) error {
	if id <= 0 || userID <= 0 {
		return ErrInvalidInput
	}

	existing, err := s.transactions.GetByID(ctx, id, userID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNotFound
	}

	if err := s.transactions.Delete(ctx, id, userID); err != nil {
		return err
	}

	s.publish(ctx, Event{
		Kind:          EventTransactionDeleted,
		TransactionID: id,
		UserID:        userID,
		AccountIDs:    []int64{existing.AccountID},
		At:            time.Now().UTC(),
	})

	return nil
}

// GetTransaction returns one transaction scoped to the requesting user,
// joined with its category's operation type. Returns (nil, nil) when no row
// matches both id and user.
func (s *Service) GetTransaction(ctx context.Context, id, userID int64) (*Transaction, error) {
	if id <= 0 || userID <= 0 {
		return nil, ErrInvalidInput
	}
	return s.transactions.GetByID(ctx, id, userID)
}

// ListByAccount returns one account's transactions inside the inclusive
// range [from, to], after verifying the account belongs to userID.
func (s *Service) ListByAccount(ctx context.Context, accountID, userID int64, from, to time.Time) ([]*Transaction, error) {
	if from.After(to) {
		return nil, ErrInvalidDateRange
	}
	if _, err := s.ownedAccount(ctx, accountID, userID); err != nil {
		return nil, err
	}
	return s.transactions.ListByAccount(ctx, accountID, userID, from, to)
}

// ListByUser returns all of a user's transactions inside [from, to], most
// recent first.
func (s *Service) ListByUser(ctx context.Context, userID int64, from, to time.Time) ([]*Transaction, error) {
	if userID <= 0 {
		return nil, ErrInvalidInput
	}
	if from.After(to) {
		return nil, ErrInvalidDateRange
	}
	return s.transactions.ListByUser(ctx, userID, from, to)
}

// WeeklySums groups a user's transactions into 7-day buckets anchored at
// from and sums amounts per bucket and operation type. Empty buckets are
// absent from the result; an inverted range yields an empty result, not an
// error.
func (s *Service) WeeklySums(ctx context.Context, userID int64, from, to time.Time) ([]WeeklySum, error) {
	if userID <= 0 {
		return nil, ErrInvalidInput
	}
	if from.After(to) {
		return []WeeklySum{}, nil
	}
	return s.transactions.WeeklySums(ctx, userID, from, to)
}

// MonthlySums sums a user's transactions per calendar month and operation
// type for one year. Empty months are absent from the result.
func (s *Service) MonthlySums(ctx context.Context, userID int64, year int) ([]MonthlySum, error) {
	if userID <= 0 {
		return nil, ErrInvalidInput
	}
	return s.transactions.MonthlySums(ctx, userID, year)
}

// CreateAccount opens a new account for the user. The account type must
// belong to the same user.
func (s *Service) CreateAccount(ctx context.Context, params CreateAccountParams) (*Account, error) {
	if params.UserID <= 0 || params.AccountTypeID <= 0 || params.Name == "" {
		return nil, fmt.Errorf("%w: user, account type, and name are required", ErrInvalidInput)
	}

	types, err := s.accounts.ListTypesByUser(ctx, params.UserID)
	if err != nil {
		return nil, err
	}
	owned := false
	for _, t := range types {
		if t.ID == params.AccountTypeID {
			owned = true
			break
		}
	}
	if !owned {
		return nil, ErrAccountNotOwned
	}

	return s.accounts.Create(ctx, params)
}

// ListAccounts returns a user's accounts.
func (s *Service) ListAccounts(ctx context.Context, userID int64) ([]*Account, error) {
	if userID <= 0 {
		return nil, ErrInvalidInput
	}
	return s.accounts.ListByUser(ctx, userID)
}

// ListAccountTypes returns a user's account types.
func (s *Service) ListAccountTypes(ctx context.Context, userID int64) ([]*AccountType, error) {
	if userID <= 0 {
		return nil, ErrInvalidInput
	}
	return s.accounts.ListTypesByUser(ctx, userID)
}

// ListCategories returns a user's categories.
func (s *Service) ListCategories(ctx context.Context, userID int64) ([]*Category, error) {
	if userID <= 0 {
		return nil, ErrInvalidInput
	}
	return s.categories.ListByUser(ctx, userID)
}

func (s *Service) ownedAccount(ctx context.Context, accountID, userID int64) (*Account, error) {
	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account == nil || account.UserID != userID {
		return nil, ErrAccountNotOwned
	}
	return account, nil
}

func (s *Service) ownedCategory(ctx context.Context, categoryID, userID int64) (*Category, error) {
	category, err := s.categories.GetByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if category == nil || category.UserID != userID {
		return nil, ErrCategoryNotOwned
	}
	return category, nil
}

func (s *Service) publish(ctx context.Context, event Event) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, event); err != nil {
		log.Printf("Failed to publish %s event for transaction %d: %v", event.Kind, event.TransactionID, err)
	}
}
