package ledger

// BalanceDelta is a single atomic increment to apply to an account's stored
// balance. The storage layer executes it as
// "UPDATE accounts SET balance = balance + delta" inside the same database
// transaction as the row change, so the balance invariant survives
// concurrent mutations and partial failures alike.
type BalanceDelta struct {
	AccountID int64
	Delta     float64
}

// CreateDelta returns the balance effect of recording a new transaction:
// the signed amount applied to the target account.
func CreateDelta(op OperationType, amount float64, accountID int64) BalanceDelta {
	return BalanceDelta{AccountID: accountID, Delta: op.Sign() * amount}
}

// DeleteDelta returns the balance effect of removing a transaction: the
// exact reverse of its original contribution.
func DeleteDelta(op OperationType, amount float64, accountID int64) BalanceDelta {
	return BalanceDelta{AccountID: accountID, Delta: -op.Sign() * amount}
}

// UpdateDeltas returns the balance effects of editing a transaction: the
// previous contribution is reversed on the previous account using the
// snapshot's operation type, and the new signed amount is applied to the new
// account. When both target the same account the two effects collapse into
// one delta, so at most one increment runs per account.
func UpdateDeltas(prev Snapshot, op OperationType, amount float64, accountID int64) []BalanceDelta {
	reverse := DeleteDelta(prev.Operation, prev.Amount, prev.AccountID)
	apply := CreateDelta(op, amount, accountID)

	if reverse.AccountID == apply.AccountID {
		return []BalanceDelta{{AccountID: apply.AccountID, Delta: reverse.Delta + apply.Delta}}
	}
	return []BalanceDelta{reverse, apply}
}
