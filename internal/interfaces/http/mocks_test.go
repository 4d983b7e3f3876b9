package http

import (
	"context"
	"time"

	"moneta/internal/domain/ledger"
)

// MockTransactionRepo implements ledger.TransactionRepository for testing
type MockTransactionRepo struct {
	CreateFunc        func(ctx context.Context, params ledger.CreateParams) (*ledger.Transaction, error)
	UpdateFunc        func(ctx context.Context, params ledger.UpdateParams) error
	DeleteFunc        func(ctx context.Context, id, userID int64) error
	GetByIDFunc       func(ctx context.Context, id, userID int64) (*ledger.Transaction, error)
	ListByAccountFunc func(ctx context.Context, accountID, userID int64, from, to time.Time) ([]*ledger.Transaction, error)
	ListByUserFunc    func(ctx context.Context, userID int64, from, to time.Time) ([]*ledger.Transaction, error)
	WeeklySumsFunc    func(ctx context.Context, userID int64, from, to time.Time) ([]ledger.WeeklySum, error)
	MonthlySumsFunc   func(ctx context.Context, userID int64, year int) ([]ledger.MonthlySum, error)
}

func (m *MockTransactionRepo) Create(ctx context.Context, params ledger.CreateParams) (*ledger.Transaction, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, params)
	}
	return nil, nil
}

func (m *MockTransactionRepo) Update(ctx context.Context, params ledger.UpdateParams) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, params)
	}
	return nil
}

func (m *MockTransactionRepo) Delete(ctx context.Context, id, userID int64) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id, userID)
	}
	return nil
}

func (m *MockTransactionRepo) GetByID(ctx context.Context, id, userID int64) (*ledger.Transaction, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id, userID)
	}
	return nil, nil
}

func (m *MockTransactionRepo) ListByAccount(ctx context.Context, accountID, userID int64, from, to time.Time) ([]*ledger.Transaction, error) {
	if m.ListByAccountFunc != nil {
		return m.ListByAccountFunc(ctx, accountID, userID, from, to)
	}
	return nil, nil
}

func (m *MockTransactionRepo) ListByUser(ctx context.Context, userID int64, from, to time.Time) ([]*ledger.Transaction, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID, from, to)
	}
	return nil, nil
}

func (m *MockTransactionRepo) WeeklySums(ctx context.Context, userID int64, from, to time.Time) ([]ledger.WeeklySum, error) {
	if m.WeeklySumsFunc != nil {
		return m.WeeklySumsFunc(ctx, userID, from, to)
	}
	return nil, nil
}

func (m *MockTransactionRepo) MonthlySums(ctx context.Context, userID int64, year int) ([]ledger.MonthlySum, error) {
	if m.MonthlySumsFunc != nil {
		return m.MonthlySumsFunc(ctx, userID, year)
	}
	return nil, nil
}

// MockAccountRepo implements ledger.AccountRepository for testing
type MockAccountRepo struct {
	CreateFunc          func(ctx context.Context, params ledger.CreateAccountParams) (*ledger.Account, error)
	GetByIDFunc         func(ctx context.Context, id int64) (*ledger.Account, error)
	ListByUserFunc      func(ctx context.Context, userID int64) ([]*ledger.Account, error)
	ListTypesByUserFunc func(ctx context.Context, userID int64) ([]*ledger.AccountType, error)
}

func (m *MockAccountRepo) Create(ctx context.Context, params ledger.CreateAccountParams) (*ledger.Account, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, params)
	}
	return nil, nil
}

func (m *MockAccountRepo) GetByID(ctx context.Context, id int64) (*ledger.Account, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockAccountRepo) ListByUser(ctx context.Context, userID int64) ([]*ledger.Account, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockAccountRepo) ListTypesByUser(ctx context.Context, userID int64) ([]*ledger.AccountType, error) {
	if m.ListTypesByUserFunc != nil {
		return m.ListTypesByUserFunc(ctx, userID)
	}
	return nil, nil
}

// MockCategoryRepo implements ledger.CategoryRepository for testing
type MockCategoryRepo struct {
	GetByIDFunc    func(ctx context.Context, id int64) (*ledger.Category, error)
	ListByUserFunc func(ctx context.Context, userID int64) ([]*ledger.Category, error)
}

func (m *MockCategoryRepo) GetByID(ctx context.Context, id int64) (*ledger.Category, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockCategoryRepo) ListByUser(ctx context.Context, userID int64) ([]*ledger.Category, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID)
	}
	return nil, nil
}

// ownedAccount and ownedCategory return mocks that accept any ID as
// belonging to the given user.
func ownedAccount(userID int64) *MockAccountRepo {
	return &MockAccountRepo{
		GetByIDFunc: func(ctx context.Context, id int64) (*ledger.Account, error) {
			return &ledger.Account{ID: id, UserID: userID}, nil
		},
	}
}

func ownedCategory(userID int64, op ledger.OperationType) *MockCategoryRepo {
	return &MockCategoryRepo{
		GetByIDFunc: func(ctx context.Context, id int64) (*ledger.Category, error) {
			return &ledger.Category{ID: id, UserID: userID, Operation: op}, nil
		},
	}
}
