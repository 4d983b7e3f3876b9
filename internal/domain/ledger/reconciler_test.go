package ledger

import (
	"testing"
	"time"
)

func TestOperationTypeSign(t *testing.T) {
	if got := OperationIncome.Sign(); got != 1 {
		t.Errorf("Income sign = %v, want 1", got)
	}
	if got := OperationExpense.Sign(); got != -1 {
		t.Errorf("Expense sign = %v, want -1", got)
	}
}

func TestParseOperationType(t *testing.T) {
	tests := []struct {
		input   string
		want    OperationType
		wantErr bool
	}{
		{"INCOME", OperationIncome, false},
		{"EXPENSE", OperationExpense, false},
		{"income", "", true},
		{"", "", true},
		{"TRANSFER", "", true},
	}

	for _, tt := range tests {
		got, err := ParseOperationType(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseOperationType(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseOperationType(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestCreateDelta(t *testing.T) {
	tests := []struct {
		name      string
		op        OperationType
		amount    float64
		accountID int64
		want      float64
	}{
		{"Income adds", OperationIncome, 100, 1, 100},
		{"Expense subtracts", OperationExpense, 30, 1, -30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := CreateDelta(tt.op, tt.amount, tt.accountID)
			if d.AccountID != tt.accountID || d.Delta != tt.want {
				t.Errorf("CreateDelta = %+v, want account %d delta %v", d, tt.accountID, tt.want)
			}
		})
	}
}

func TestDeleteDeltaReversesCreate(t *testing.T) {
	for _, op := range []OperationType{OperationIncome, OperationExpense} {
		create := CreateDelta(op, 42.5, 7)
		del := DeleteDelta(op, 42.5, 7)
		if create.Delta+del.Delta != 0 {
			t.Errorf("%s: create %v + delete %v != 0", op, create.Delta, del.Delta)
		}
	}
}

func TestUpdateDeltas(t *testing.T) {
	tests := []struct {
		name      string
		prev      Snapshot
		op        OperationType
		amount    float64
		accountID int64
		want      map[int64]float64
	}{
		{
			name:      "Same account amount change",
			prev:      Snapshot{Amount: 30, AccountID: 1, Operation: OperationExpense},
			op:        OperationExpense,
			amount:    50,
			accountID: 1,
			// reverse +30, apply -50
			want: map[int64]float64{1: -20},
		},
		{
			name:      "Unchanged transaction is a no-op delta",
			prev:      Snapshot{Amount: 100, AccountID: 1, Operation: OperationIncome},
			op:        OperationIncome,
			amount:    100,
			accountID: 1,
			want:      map[int64]float64{1: 0},
		},
		{
			name:      "Moved to another account",
			prev:      Snapshot{Amount: 100, AccountID: 1, Operation: OperationIncome},
			op:        OperationIncome,
			amount:    100,
			accountID: 2,
			want:      map[int64]float64{1: -100, 2: 100},
		},
		{
			name:      "Moved and amount changed",
			prev:      Snapshot{Amount: 20, AccountID: 1, Operation: OperationExpense},
			op:        OperationExpense,
			amount:    80,
			accountID: 3,
			want:      map[int64]float64{1: 20, 3: -80},
		},
		{
			name: "Category type changed between read and write reverses with the snapshot sign",
			prev: Snapshot{Amount: 60, AccountID: 1, Operation: OperationExpense},
			op:   OperationIncome,
			// the old -60 effect is undone with the expense sign captured at
			// read time, then +60 applied
			amount:    60,
			accountID: 1,
			want:      map[int64]float64{1: 120},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deltas := UpdateDeltas(tt.prev, tt.op, tt.amount, tt.accountID)
			if len(deltas) != len(tt.want) {
				t.Fatalf("got %d deltas, want %d: %+v", len(deltas), len(tt.want), deltas)
			}
			for _, d := range deltas {
				want, ok := tt.want[d.AccountID]
				if !ok {
					t.Errorf("unexpected delta for account %d", d.AccountID)
					continue
				}
				if d.Delta != want {
					t.Errorf("account %d delta = %v, want %v", d.AccountID, d.Delta, want)
				}
			}
		})
	}
}

// Moving a transaction between accounts must conserve the combined balance:
// whatever X loses, Y gains.
func TestUpdateDeltasConserveTotal(t *testing.T) {
	prev := Snapshot{Amount: 75, AccountID: 1, Operation: OperationIncome}
	deltas := UpdateDeltas(prev, OperationIncome, 75, 2)

	var total float64
	for _, d := range deltas {
		total += d.Delta
	}
	if total != 0 {
		t.Errorf("account move changed combined balance by %v, want 0", total)
	}
}

// Replays a typical editing session as a pure-delta sequence: starting from zero,
// +100 income, -30 expense, edit the expense to 50, then delete the income.
func TestDeltaSequence(t *testing.T) {
	const account = int64(1)
	balance := 0.0

	apply := func(deltas ...BalanceDelta) {
		for _, d := range deltas {
			if d.AccountID == account {
				balance += d.Delta
			}
		}
	}

	apply(CreateDelta(OperationIncome, 100, account))
	if balance != 100 {
		t.Fatalf("after income create balance = %v, want 100", balance)
	}

	apply(CreateDelta(OperationExpense, 30, account))
	if balance != 70 {
		t.Fatalf("after expense create balance = %v, want 70", balance)
	}

	prev := Snapshot{Amount: 30, AccountID: account, Operation: OperationExpense}
	apply(UpdateDeltas(prev, OperationExpense, 50, account)...)
	if balance != 50 {
		t.Fatalf("after expense update balance = %v, want 50", balance)
	}

	apply(DeleteDelta(OperationIncome, 100, account))
	if balance != -50 {
		t.Fatalf("after income delete balance = %v, want -50", balance)
	}
}

func TestWeekBucket(t *testing.T) {
	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		date time.Time
		want int
	}{
		{"Range start opens bucket 1", from, 1},
		{"Sixth day after start stays in bucket 1", from.AddDate(0, 0, 6), 1},
		{"Seventh day after start opens bucket 2", from.AddDate(0, 0, 7), 2},
		{"Thirteenth day stays in bucket 2", from.AddDate(0, 0, 13), 2},
		{"Fourteenth day opens bucket 3", from.AddDate(0, 0, 14), 3},
		{"Month boundary does not reset the bucket", time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC), 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WeekBucket(tt.date, from); got != tt.want {
				t.Errorf("WeekBucket(%s) = %d, want %d", tt.date.Format("2006-01-02"), got, tt.want)
			}
		})
	}
}
