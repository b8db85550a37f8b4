package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a double-entry posting: one debit account, one credit
// account, equal amount. Amount is always strictly positive.
type Transaction struct {
	ID        int64
	Date      time.Time
	Amount    decimal.Decimal
	DebitID   int64
	CreditID  int64
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Reversed returns the corrective counterpart of t: debit and credit
// swapped, equal amount, dated on the given open-period date.
func (t Transaction) Reversed(date time.Time, notes string) Transaction {
	return Transaction{
		Date:     date,
		Amount:   t.Amount,
		DebitID:  t.CreditID,
		CreditID: t.DebitID,
		Notes:    notes,
	}
}
