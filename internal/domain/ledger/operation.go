package ledger

import "fmt"

// OperationType tags a category as money coming in or going out. It decides
// the sign a transaction amount carries when it is applied to an account
// balance or summed in a report.
type OperationType string

const (
	OperationIncome  OperationType = "INCOME"
	OperationExpense OperationType = "EXPENSE"
)

// Sign returns the balance contribution factor: +1 for income, -1 for expense.
func (o OperationType) Sign() float64 {
	if o == OperationExpense {
		return -1
	}
	return 1
}

// Valid reports whether o is one of the two known operation types.
func (o OperationType) Valid() bool {
	return o == OperationIncome || o == OperationExpense
}

// ParseOperationType converts a stored or user-supplied string into an
// OperationType.
func ParseOperationType(s string) (OperationType, error) {
	switch OperationType(s) {
	case OperationIncome:
		return OperationIncome, nil
	case OperationExpense:
		return OperationExpense, nil
	}
	return "", fmt.Errorf("unknown operation type %q", s)
}
