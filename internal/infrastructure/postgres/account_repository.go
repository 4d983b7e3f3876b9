package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"moneta/internal/domain/ledger"
)

type AccountRepository struct {
	db *DB
}

func NewAccountRepository(db *DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// Create inserts a new account with its starting balance.
func (r *AccountRepository) Create(ctx context.Context, params ledger.CreateAccountParams) (*ledger.Account, error) {
	var id int64
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO accounts (user_id, account_type_id, name, balance, display_order)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, params.UserID, params.AccountTypeID, params.Name, params.Balance, params.DisplayOrder).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	return &ledger.Account{
		ID:            id,
		UserID:        params.UserID,
		AccountTypeID: params.AccountTypeID,
		Name:          params.Name,
		Balance:       params.Balance,
		DisplayOrder:  params.DisplayOrder,
	}, nil
}

// GetByID returns an account by id. Returns (nil, nil) when it does not
// exist; ownership is checked by the caller against UserID.
func (r *AccountRepository) GetByID(ctx context.Context, id int64) (*ledger.Account, error) {
	var account ledger.Account

	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, account_type_id, name, balance, display_order
		FROM accounts
		WHERE id = $1
	`, id).Scan(
		&account.ID, &account.UserID, &account.AccountTypeID,
		&account.Name, &account.Balance, &account.DisplayOrder,
	)
	if err == sql.ErrNoRows {
		return nil, nil // Not found
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	return &account, nil
}

// ListByUser returns a user's accounts ordered for display.
func (r *AccountRepository) ListByUser(ctx context.Context, userID int64) ([]*ledger.Account, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, account_type_id, name, balance, display_order
		FROM accounts
		WHERE user_id = $1
		ORDER BY display_order, name
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []*ledger.Account
	for rows.Next() {
		var account ledger.Account
		err := rows.Scan(
			&account.ID, &account.UserID, &account.AccountTypeID,
			&account.Name, &account.Balance, &account.DisplayOrder,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, &account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating accounts: %w", err)
	}

	return accounts, nil
}

// ListTypesByUser returns a user's account types ordered for display.
func (r *AccountRepository) ListTypesByUser(ctx context.Context, userID int64) ([]*ledger.AccountType, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, name, display_order
		FROM account_types
		WHERE user_id = $1
		ORDER BY display_order, name
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list account types: %w", err)
	}
	defer rows.Close()

	var types []*ledger.AccountType
	for rows.Next() {
		var t ledger.AccountType
		if err := rows.Scan(&t.ID, &t.UserID, &t.Name, &t.DisplayOrder); err != nil {
			return nil, fmt.Errorf("failed to scan account type: %w", err)
		}
		types = append(types, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account types: %w", err)
	}

	return types, nil
}
