package ledger

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/WinterJet2021/BahtBuddy/internal/validation"
)

// exportHeader is the CSV header of a transaction export.
var exportHeader = []string{"date", "amount", "debit_account", "credit_account", "notes"}

// ExportCSV writes the transactions matching q as CSV, one row per
// transaction with account names resolved, in Search's default order.
func (s *Service) ExportCSV(w io.Writer, q Query) error {
	txns, err := s.Search(q)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(exportHeader); err != nil {
		return fmt.Errorf("writing export header: %w", err)
	}

	names := make(map[int64]string)
	name := func(id int64) (string, error) {
		if n, ok := names[id]; ok {
			return n, nil
		}
		acct, err := s.store.AccountByID(id)
		if err != nil {
			return "", err
		}
		names[id] = acct.Name
		return acct.Name, nil
	}

	for _, txn := range txns {
		debitName, err := name(txn.DebitID)
		if err != nil {
			return err
		}
		creditName, err := name(txn.CreditID)
		if err != nil {
			return err
		}
		row := []string{
			txn.Date.Format(validation.DateLayout),
			txn.Amount.StringFixed(2),
			debitName,
			creditName,
			txn.Notes,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing export row for txn %d: %w", txn.ID, err)
		}
	}
	return cw.Error()
}
