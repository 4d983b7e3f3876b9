package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"moneta/internal/domain/ledger"
)

type TransactionRepository struct {
	db *DB
}

func NewTransactionRepository(db *DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// Create inserts the transaction row and applies its signed amount to the
// target account inside one database transaction. On any failure nothing is
// visible: no row, no balance change.
func (r *TransactionRepository) Create(ctx context.Context, params ledger.CreateParams) (*ledger.Transaction, error) {
	created := &ledger.Transaction{
		UserID:     params.UserID,
		Date:       params.Date,
		Amount:     params.Amount,
		CategoryID: params.CategoryID,
		AccountID:  params.AccountID,
		Note:       params.Note,
		Operation:  params.Operation,
	}

	err := r.db.WithinTx(ctx, "ledger.CreateTransaction", func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx, `
			INSERT INTO transactions (user_id, transaction_date, amount, category_id, account_id, note)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id
		`, params.UserID, params.Date, params.Amount, params.CategoryID, params.AccountID, params.Note,
		).Scan(&created.ID)
		if err != nil {
			return fmt.Errorf("failed to insert transaction: %w", err)
		}

		delta := ledger.CreateDelta(params.Operation, params.Amount, params.AccountID)
		return applyDelta(ctx, tx, delta)
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

// Update rewrites the transaction row, reverses the previous balance
// contribution using the caller's pre-edit snapshot, and applies the new
// signed amount, all as one atomic unit.
func (r *TransactionRepository) Update(ctx context.Context, params ledger.UpdateParams) error {
	return r.db.WithinTx(ctx, "ledger.UpdateTransaction", func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `
			UPDATE transactions
			SET transaction_date = $1, amount = $2, category_id = $3, account_id = $4, note = $5
			WHERE id = $6 AND user_id = $7
		`, params.Date, params.Amount, params.CategoryID, params.AccountID, params.Note, params.ID, params.UserID)
		if err != nil {
			return fmt.Errorf("failed to update transaction: %w", err)
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get affected rows: %w", err)
		}
		if rows == 0 {
			return ledger.ErrNotFound
		}

		for _, delta := range ledger.UpdateDeltas(params.Previous, params.Operation, params.Amount, params.AccountID) {
			if err := applyDelta(ctx, tx, delta); err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete removes the transaction row and reverses its balance contribution
// atomically. The amount, account, and operation type are read inside the
// same database transaction that deletes the row.
func (r *TransactionRepository) Delete(ctx context.Context, id, userID int64) error {
	return r.db.WithinTx(ctx, "ledger.DeleteTransaction", func(tx *sql.Tx) error {
		var (
			amount    float64
			accountID int64
			opType    string
		)
		err := tx.QueryRowContext(ctx, `
			SELECT t.amount, t.account_id, c.operation_type
			FROM transactions t
			INNER JOIN categories c ON c.id = t.category_id
			WHERE t.id = $1 AND t.user_id = $2
		`, id, userID).Scan(&amount, &accountID, &opType)
		if err == sql.ErrNoRows {
			return ledger.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to load transaction for delete: %w", err)
		}

		op, err := ledger.ParseOperationType(opType)
		if err != nil {
			return fmt.Errorf("failed to parse stored operation type: %w", err)
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM transactions WHERE id = $1`, id); err != nil {
			return fmt.Errorf("failed to delete transaction: %w", err)
		}

		return applyDelta(ctx, tx, ledger.DeleteDelta(op, amount, accountID))
	})
}

// GetByID returns the transaction joined with its category's operation type,
// scoped to the requesting user. Returns (nil, nil) when no row matches.
func (r *TransactionRepository) GetByID(ctx context.Context, id, userID int64) (*ledger.Transaction, error) {
	var (
		t      ledger.Transaction
		opType string
	)

	err := r.db.QueryRowContext(ctx, `
		SELECT t.id, t.user_id, t.transaction_date, t.amount, t.category_id, t.account_id, t.note,
		       c.operation_type
		FROM transactions t
		INNER JOIN categories c ON c.id = t.category_id
		WHERE t.id = $1 AND t.user_id = $2
	`, id, userID).Scan(
		&t.ID, &t.UserID, &t.Date, &t.Amount, &t.CategoryID, &t.AccountID, &t.Note, &opType,
	)
	if err == sql.ErrNoRows {
		return nil, nil // Not found
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}

	t.Operation, err = ledger.ParseOperationType(opType)
	if err != nil {
		return nil, fmt.Errorf("failed to parse stored operation type: %w", err)
	}

	return &t, nil
}

// ListByAccount returns one account's transactions within the inclusive
// range [from, to], joined with category and account display names.
func (r *TransactionRepository) ListByAccount(ctx context.Context, accountID, userID int64, from, to time.Time) ([]*ledger.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT t.id, t.user_id, t.transaction_date, t.amount, t.category_id, t.account_id, t.note,
		       c.operation_type, c.name AS category, a.name AS account
		FROM transactions t
		INNER JOIN categories c ON c.id = t.category_id
		INNER JOIN accounts a ON a.id = t.account_id
		WHERE t.account_id = $1 AND t.user_id = $2
		AND t.transaction_date BETWEEN $3 AND $4
	`, accountID, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	return scanTransactions(rows)
}

// ListByUser returns all of a user's transactions within [from, to], ordered
// by transaction date descending. The ordering is part of the contract.
func (r *TransactionRepository) ListByUser(ctx context.Context, userID int64, from, to time.Time) ([]*ledger.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT t.id, t.user_id, t.transaction_date, t.amount, t.category_id, t.account_id, t.note,
		       c.operation_type, c.name AS category, a.name AS account
		FROM transactions t
		INNER JOIN categories c ON c.id = t.category_id
		INNER JOIN accounts a ON a.id = t.account_id
		WHERE t.user_id = $1
		AND t.transaction_date BETWEEN $2 AND $3
		ORDER BY t.transaction_date DESC
	`, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	return scanTransactions(rows)
}

// WeeklySums buckets transactions into 7-day windows anchored at from and
// sums amounts per bucket and operation type. The bucket expression follows
// ledger.WeekBucket (days since from / 7, 1-based). Empty buckets produce no
// row.
func (r *TransactionRepository) WeeklySums(ctx context.Context, userID int64, from, to time.Time) ([]ledger.WeeklySum, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT ((t.transaction_date::date - $2::date) / 7) + 1 AS week,
		       SUM(t.amount) AS amount, c.operation_type
		FROM transactions t
		INNER JOIN categories c ON c.id = t.category_id
		WHERE t.user_id = $1
		AND t.transaction_date BETWEEN $2 AND $3
		GROUP BY week, c.operation_type
		ORDER BY week
	`, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query weekly sums: %w", err)
	}
	defer rows.Close()

	var sums []ledger.WeeklySum
	for rows.Next() {
		var (
			s      ledger.WeeklySum
			opType string
		)
		if err := rows.Scan(&s.Week, &s.Amount, &opType); err != nil {
			return nil, fmt.Errorf("failed to scan weekly sum: %w", err)
		}
		if s.Operation, err = ledger.ParseOperationType(opType); err != nil {
			return nil, fmt.Errorf("failed to parse stored operation type: %w", err)
		}
		sums = append(sums, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating weekly sums: %w", err)
	}

	return sums, nil
}

// MonthlySums sums transactions per calendar month (1-12) and operation type
// for one year. Empty months produce no row.
func (r *TransactionRepository) MonthlySums(ctx context.Context, userID int64, year int) ([]ledger.MonthlySum, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT EXTRACT(MONTH FROM t.transaction_date)::int AS month,
		       SUM(t.amount) AS amount, c.operation_type
		FROM transactions t
		INNER JOIN categories c ON c.id = t.category_id
		WHERE t.user_id = $1
		AND EXTRACT(YEAR FROM t.transaction_date)::int = $2
		GROUP BY month, c.operation_type
		ORDER BY month
	`, userID, year)
	if err != nil {
		return nil, fmt.Errorf("failed to query monthly sums: %w", err)
	}
	defer rows.Close()

	var sums []ledger.MonthlySum
	for rows.Next() {
		var (
			s      ledger.MonthlySum
			opType string
		)
		if err := rows.Scan(&s.Month, &s.Amount, &opType); err != nil {
			return nil, fmt.Errorf("failed to scan monthly sum: %w", err)
		}
		if s.Operation, err = ledger.ParseOperationType(opType); err != nil {
			return nil, fmt.Errorf("failed to parse stored operation type: %w", err)
		}
		sums = append(sums, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating monthly sums: %w", err)
	}

	return sums, nil
}

// applyDelta executes one atomic balance increment. The increment runs as a
// single UPDATE expression inside the enclosing transaction, never a
// read-modify-write pair, so concurrent mutations against the same account
// serialize in the database.
func applyDelta(ctx context.Context, tx *sql.Tx, delta ledger.BalanceDelta) error {
	result, err := tx.ExecContext(ctx, `
		UPDATE accounts SET balance = balance + $1 WHERE id = $2
	`, delta.Delta, delta.AccountID)
	if err != nil {
		return fmt.Errorf("failed to adjust balance of account %d: %w", delta.AccountID, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("failed to adjust balance: account %d not found", delta.AccountID)
	}
	return nil
}

func scanTransactions(rows *sql.Rows) ([]*ledger.Transaction, error) {
	var transactions []*ledger.Transaction
	for rows.Next() {
		var (
			t      ledger.Transaction
			opType string
		)
		err := rows.Scan(
			&t.ID, &t.UserID, &t.Date, &t.Amount, &t.CategoryID, &t.AccountID, &t.Note,
			&opType, &t.Category, &t.Account,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}

		if t.Operation, err = ledger.ParseOperationType(opType); err != nil {
			return nil, fmt.Errorf("failed to parse stored operation type: %w", err)
		}

		transactions = append(transactions, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}

	return transactions, nil
}
