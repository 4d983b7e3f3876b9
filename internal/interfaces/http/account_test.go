package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"moneta/internal/domain/ledger"
)

func TestHandleListAccounts(t *testing.T) {
	tests := []struct {
		name           string
		userID         int64
		accRepo        *MockAccountRepo
		expectedStatus int
		expectedCount  int
	}{
		{
			name:   "Success",
			userID: 1,
			accRepo: &MockAccountRepo{
				ListByUserFunc: func(ctx context.Context, userID int64) ([]*ledger.Account, error) {
					return []*ledger.Account{
						{ID: 1, UserID: userID, Name: "Checking", Balance: 120.50},
						{ID: 2, UserID: userID, Name: "Savings", Balance: 900},
					}, nil
				},
			},
			expectedStatus: http.StatusOK,
			expectedCount:  2,
		},
		{
			name:           "Empty",
			userID:         1,
			accRepo:        &MockAccountRepo{},
			expectedStatus: http.StatusOK,
			expectedCount:  0,
		},
		{
			name:   "Repository Error",
			userID: 1,
			accRepo: &MockAccountRepo{
				ListByUserFunc: func(ctx context.Context, userID int64) ([]*ledger.Account, error) {
					return nil, errors.New("connection refused")
				},
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := ledger.NewService(&MockTransactionRepo{}, tt.accRepo, &MockCategoryRepo{}, nil)
			handler := NewAccountHandler(svc)

			req := requestWithUser(http.MethodGet, "/api/accounts", nil, tt.userID)
			rr := httptest.NewRecorder()
			handler.HandleAccounts(rr, req)

			if rr.Code != tt.expectedStatus {
				t.Fatalf("handler returned wrong status code: got %v want %v", rr.Code, tt.expectedStatus)
			}

			if tt.expectedStatus == http.StatusOK {
				var accounts []*ledger.Account
				if err := json.NewDecoder(rr.Body).Decode(&accounts); err != nil {
					t.Fatalf("failed to decode response: %v", err)
				}
				if len(accounts) != tt.expectedCount {
					t.Errorf("expected %d accounts, got %d", tt.expectedCount, len(accounts))
				}
			}
		})
	}
}

func TestHandleListAccountTypes(t *testing.T) {
	accRepo := &MockAccountRepo{
		ListTypesByUserFunc: func(ctx context.Context, userID int64) ([]*ledger.AccountType, error) {
			return []*ledger.AccountType{
				{ID: 1, UserID: userID, Name: "Cash", DisplayOrder: 1},
				{ID: 2, UserID: userID, Name: "Bank", DisplayOrder: 2},
			}, nil
		},
	}
	svc := ledger.NewService(&MockTransactionRepo{}, accRepo, &MockCategoryRepo{}, nil)
	handler := NewAccountHandler(svc)

	req := requestWithUser(http.MethodGet, "/api/accounts/types", nil, 1)
	rr := httptest.NewRecorder()
	handler.HandleListAccountTypes(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	var types []*ledger.AccountType
	if err := json.NewDecoder(rr.Body).Decode(&types); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(types) != 2 {
		t.Errorf("expected 2 account types, got %d", len(types))
	}
}

func TestHandleCreateAccount(t *testing.T) {
	accRepo := &MockAccountRepo{
		CreateFunc: func(ctx context.Context, params ledger.CreateAccountParams) (*ledger.Account, error) {
			return &ledger.Account{
				ID:            10,
				UserID:        params.UserID,
				AccountTypeID: params.AccountTypeID,
				Name:          params.Name,
				Balance:       params.Balance,
			}, nil
		},
		ListTypesByUserFunc: func(ctx context.Context, userID int64) ([]*ledger.AccountType, error) {
			return []*ledger.AccountType{{ID: 2, UserID: userID, Name: "Bank"}}, nil
		},
	}
	svc := ledger.NewService(&MockTransactionRepo{}, accRepo, &MockCategoryRepo{}, nil)
	handler := NewAccountHandler(svc)

	t.Run("Success", func(t *testing.T) {
		body, _ := json.Marshal(map[string]interface{}{
			"name":          "Checking",
			"accountTypeId": int64(2),
			"balance":       250.0,
		})
		req := requestWithUser(http.MethodPost, "/api/accounts", body, 1)
		rr := httptest.NewRecorder()
		handler.HandleAccounts(rr, req)

		if rr.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
		}

		var got ledger.Account
		if err := json.NewDecoder(rr.Body).Decode(&got); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if got.ID != 10 || got.Balance != 250 {
			t.Errorf("unexpected account in response: %+v", got)
		}
	})

	t.Run("Foreign Account Type", func(t *testing.T) {
		body, _ := json.Marshal(map[string]interface{}{
			"name":          "Checking",
			"accountTypeId": int64(99),
		})
		req := requestWithUser(http.MethodPost, "/api/accounts", body, 1)
		rr := httptest.NewRecorder()
		handler.HandleAccounts(rr, req)

		if rr.Code != http.StatusForbidden {
			t.Errorf("expected 403, got %d", rr.Code)
		}
	})

	t.Run("Missing Name", func(t *testing.T) {
		body, _ := json.Marshal(map[string]interface{}{
			"accountTypeId": int64(2),
		})
		req := requestWithUser(http.MethodPost, "/api/accounts", body, 1)
		rr := httptest.NewRecorder()
		handler.HandleAccounts(rr, req)

		if rr.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rr.Code)
		}
	})
}

func TestHandleAccounts_MethodNotAllowed(t *testing.T) {
	svc := ledger.NewService(&MockTransactionRepo{}, &MockAccountRepo{}, &MockCategoryRepo{}, nil)
	handler := NewAccountHandler(svc)

	req := requestWithUser(http.MethodPut, "/api/accounts", nil, 1)
	rr := httptest.NewRecorder()
	handler.HandleAccounts(rr, req)

	if rr.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", rr.Code)
	}
}
