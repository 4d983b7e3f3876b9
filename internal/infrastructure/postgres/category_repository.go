package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"moneta/internal/domain/ledger"
)

type CategoryRepository struct {
	db *DB
}

func NewCategoryRepository(db *DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// GetByID returns a category by id. Returns (nil, nil) when it does not
// exist; ownership is checked by the caller against UserID.
func (r *CategoryRepository) GetByID(ctx context.Context, id int64) (*ledger.Category, error) {
	var (
		category ledger.Category
		opType   string
	)

	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, name, operation_type, icon
		FROM categories
		WHERE id = $1
	`, id).Scan(&category.ID, &category.UserID, &category.Name, &opType, &category.Icon)
	if err == sql.ErrNoRows {
		return nil, nil // Not found
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	category.Operation, err = ledger.ParseOperationType(opType)
	if err != nil {
		return nil, fmt.Errorf("failed to parse stored operation type: %w", err)
	}

	return &category, nil
}

// ListByUser returns a user's categories ordered by name.
func (r *CategoryRepository) ListByUser(ctx context.Context, userID int64) ([]*ledger.Category, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, name, operation_type, icon
		FROM categories
		WHERE user_id = $1
		ORDER BY name
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var categories []*ledger.Category
	for rows.Next() {
		var (
			category ledger.Category
			opType   string
		)
		if err := rows.Scan(&category.ID, &category.UserID, &category.Name, &opType, &category.Icon); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		if category.Operation, err = ledger.ParseOperationType(opType); err != nil {
			return nil, fmt.Errorf("failed to parse stored operation type: %w", err)
		}
		categories = append(categories, &category)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	return categories, nil
}
