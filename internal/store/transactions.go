package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/WinterJet2021/BahtBuddy/internal/apperrors"
	"github.com/WinterJet2021/BahtBuddy/internal/model"
	"github.com/WinterJet2021/BahtBuddy/internal/validation"
)

// TxnFilter narrows a transaction search. Zero values mean "no filter".
// Dates are inclusive YYYY-MM-DD bounds.
type TxnFilter struct {
	Text      string // matched against notes and both account names
	AccountID int64  // on either side
	DebitID   int64
	CreditID  int64
	DateFrom  string
	DateTo    string
	Limit     int
	Offset    int
}

// DefaultSearchLimit bounds searches that pass no explicit limit.
const DefaultSearchLimit = 200

// InsertTransaction persists a posting and returns its new id.
func (s *Store) InsertTransaction(t model.Transaction) (int64, error) {
	now := time.Now().UTC().Format(timeLayout)
	res, err := s.db.Exec(
		`INSERT INTO transactions(date, amount, debit_account_id, credit_account_id, notes, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		dateString(t.Date), t.Amount.String(), t.DebitID, t.CreditID, t.Notes, now, now)
	if err != nil {
		return 0, fmt.Errorf("inserting transaction: %w", err)
	}
	return res.LastInsertId()
}

// TransactionByID fetches one posting. Missing ids map to apperrors.ErrNotFound.
func (s *Store) TransactionByID(id int64) (model.Transaction, error) {
	row := s.db.QueryRow(
		`SELECT txn_id, date, amount, debit_account_id, credit_account_id, notes, created_at, updated_at
		 FROM transactions WHERE txn_id = ?`, id)
	txn, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Transaction{}, fmt.Errorf("transaction %d: %w", id, apperrors.ErrNotFound)
	}
	if err != nil {
		return model.Transaction{}, fmt.Errorf("querying transaction %d: %w", id, err)
	}
	return txn, nil
}

// UpdateTransaction overwrites the mutable fields of a posting and
// refreshes its updated timestamp.
func (s *Store) UpdateTransaction(t model.Transaction) error {
	res, err := s.db.Exec(
		`UPDATE transactions
		 SET date = ?, amount = ?, debit_account_id = ?, credit_account_id = ?, notes = ?, updated_at = ?
		 WHERE txn_id = ?`,
		dateString(t.Date), t.Amount.String(), t.DebitID, t.CreditID, t.Notes,
		time.Now().UTC().Format(timeLayout), t.ID)
	if err != nil {
		return fmt.Errorf("updating transaction %d: %w", t.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating transaction %d: %w", t.ID, err)
	}
	if n == 0 {
		return fmt.Errorf("transaction %d: %w", t.ID, apperrors.ErrNotFound)
	}
	return nil
}

// DeleteTransaction removes a posting.
func (s *Store) DeleteTransaction(id int64) error {
	res, err := s.db.Exec(`DELETE FROM transactions WHERE txn_id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting transaction %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting transaction %d: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("transaction %d: %w", id, apperrors.ErrNotFound)
	}
	return nil
}

// SearchTransactions returns postings matching the filter, ordered by date
// ascending with ties broken by insertion order.
func (s *Store) SearchTransactions(f TxnFilter) ([]model.Transaction, error) {
	var (
		clauses []string
		args    []any
	)
	query := `SELECT t.txn_id, t.date, t.amount, t.debit_account_id, t.credit_account_id, t.notes, t.created_at, t.updated_at
		 FROM transactions t
		 JOIN accounts d ON d.account_id = t.debit_account_id
		 JOIN accounts c ON c.account_id = t.credit_account_id`

	if f.Text != "" {
		pattern := "%" + f.Text + "%"
		clauses = append(clauses, `(t.notes LIKE ? OR d.name LIKE ? OR c.name LIKE ?)`)
		args = append(args, pattern, pattern, pattern)
	}
	if f.AccountID != 0 {
		clauses = append(clauses, `(t.debit_account_id = ? OR t.credit_account_id = ?)`)
		args = append(args, f.AccountID, f.AccountID)
	}
	if f.DebitID != 0 {
		clauses = append(clauses, `t.debit_account_id = ?`)
		args = append(args, f.DebitID)
	}
	if f.CreditID != 0 {
		clauses = append(clauses, `t.credit_account_id = ?`)
		args = append(args, f.CreditID)
	}
	if f.DateFrom != "" {
		clauses = append(clauses, `t.date >= ?`)
		args = append(args, f.DateFrom)
	}
	if f.DateTo != "" {
		clauses = append(clauses, `t.date <= ?`)
		args = append(args, f.DateTo)
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}

	limit := f.Limit
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	query += ` ORDER BY t.date ASC, t.txn_id ASC LIMIT ? OFFSET ?`
	args = append(args, limit, f.Offset)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("searching transactions: %w", err)
	}
	defer rows.Close()

	var txns []model.Transaction
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}
		txns = append(txns, txn)
	}
	return txns, rows.Err()
}

func scanTransaction(r rowScanner) (model.Transaction, error) {
	var (
		txn     model.Transaction
		date    string
		amount  string
		created string
		updated string
	)
	if err := r.Scan(&txn.ID, &date, &amount, &txn.DebitID, &txn.CreditID, &txn.Notes, &created, &updated); err != nil {
		return model.Transaction{}, err
	}

	var err error
	if txn.Date, err = time.Parse(validation.DateLayout, date); err != nil {
		return model.Transaction{}, fmt.Errorf("corrupt date %q: %w", date, err)
	}
	if txn.Amount, err = decimal.NewFromString(amount); err != nil {
		return model.Transaction{}, fmt.Errorf("corrupt amount %q: %w", amount, err)
	}
	if txn.CreatedAt, err = time.Parse(timeLayout, created); err != nil {
		return model.Transaction{}, fmt.Errorf("corrupt created_at %q: %w", created, err)
	}
	if txn.UpdatedAt, err = time.Parse(timeLayout, updated); err != nil {
		return model.Transaction{}, fmt.Errorf("corrupt updated_at %q: %w", updated, err)
	}
	return txn, nil
}
