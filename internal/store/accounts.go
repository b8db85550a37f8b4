package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/WinterJet2021/BahtBuddy/internal/apperrors"
	"github.com/WinterJet2021/BahtBuddy/internal/model"
	"github.com/WinterJet2021/BahtBuddy/internal/validation"
)

const timeLayout = time.RFC3339

// InsertAccount adds one account and returns its id. A (name, type)
// collision maps to apperrors.ErrDuplicateAccount.
func (s *Store) InsertAccount(name string, typ model.AccountType) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO accounts(name, type, created_at) VALUES (?, ?, ?)`,
		name, string(typ), time.Now().UTC().Format(timeLayout),
	)
	if isUniqueViolation(err) {
		return 0, fmt.Errorf("account %q (%s): %w", name, typ, apperrors.ErrDuplicateAccount)
	}
	if err != nil {
		return 0, fmt.Errorf("inserting account: %w", err)
	}
	return res.LastInsertId()
}

// BulkInsertAccounts adds a batch of (name, type) pairs inside one
// database transaction. Rows whose (name, type) already exists are left
// untouched and counted as skipped.
func (s *Store) BulkInsertAccounts(rows []model.Account) (added, skipped int, err error) {
	now := time.Now().UTC().Format(timeLayout)
	err = s.InTx(func(tx *sql.Tx) error {
		stmt, err := tx.Prepare(
			`INSERT OR IGNORE INTO accounts(name, type, created_at) VALUES (?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("preparing account insert: %w", err)
		}
		defer stmt.Close()

		for _, a := range rows {
			res, err := stmt.Exec(a.Name, string(a.Type), now)
			if err != nil {
				return fmt.Errorf("inserting account %q: %w", a.Name, err)
			}
			n, err := res.RowsAffected()
			if err != nil {
				return fmt.Errorf("inserting account %q: %w", a.Name, err)
			}
			if n == 0 {
				skipped++
			} else {
				added++
			}
		}
		return nil
	})
	if err != nil {
		return 0, 0, err
	}
	return added, skipped, nil
}

// AccountByID fetches one account. Missing ids map to apperrors.ErrNotFound.
func (s *Store) AccountByID(id int64) (model.Account, error) {
	row := s.db.QueryRow(
		`SELECT account_id, name, type, opening_balance, created_at
		 FROM accounts WHERE account_id = ?`, id)
	acct, err := scanAccount(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Account{}, fmt.Errorf("account %d: %w", id, apperrors.ErrNotFound)
	}
	if err != nil {
		return model.Account{}, fmt.Errorf("querying account %d: %w", id, err)
	}
	return acct, nil
}

// AccountExists reports whether an account id exists.
func (s *Store) AccountExists(id int64) (bool, error) {
	var one int
	err := s.db.QueryRow(`SELECT 1 FROM accounts WHERE account_id = ?`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking account %d: %w", id, err)
	}
	return true, nil
}

// ListAccounts returns accounts ordered by type then name, optionally
// filtered by type.
func (s *Store) ListAccounts(filter *model.AccountType) ([]model.Account, error) {
	query := `SELECT account_id, name, type, opening_balance, created_at FROM accounts`
	var args []any
	if filter != nil {
		query += ` WHERE type = ?`
		args = append(args, string(*filter))
	}
	query += ` ORDER BY type, name`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing accounts: %w", err)
	}
	defer rows.Close()

	var accounts []model.Account
	for rows.Next() {
		acct, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning account: %w", err)
		}
		accounts = append(accounts, acct)
	}
	return accounts, rows.Err()
}

// SetOpeningBalance overwrites an account's opening balance.
func (s *Store) SetOpeningBalance(id int64, amount decimal.Decimal) error {
	res, err := s.db.Exec(
		`UPDATE accounts SET opening_balance = ? WHERE account_id = ?`,
		amount.String(), id)
	if err != nil {
		return fmt.Errorf("setting opening balance: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("setting opening balance: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("account %d: %w", id, apperrors.ErrNotFound)
	}
	return nil
}

// AccountSums returns the total debits to and credits from one account.
func (s *Store) AccountSums(id int64) (debits, credits decimal.Decimal, err error) {
	debits, err = s.sumAmounts(
		`SELECT amount FROM transactions WHERE debit_account_id = ?`, id)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("summing debits for account %d: %w", id, err)
	}
	credits, err = s.sumAmounts(
		`SELECT amount FROM transactions WHERE credit_account_id = ?`, id)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("summing credits for account %d: %w", id, err)
	}
	return debits, credits, nil
}

// sumAmounts adds up a single amount column with decimal arithmetic.
func (s *Store) sumAmounts(query string, args ...any) (decimal.Decimal, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return decimal.Zero, err
	}
	defer rows.Close()

	total := decimal.Zero
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return decimal.Zero, err
		}
		amount, err := decimal.NewFromString(raw)
		if err != nil {
			return decimal.Zero, fmt.Errorf("corrupt amount %q: %w", raw, err)
		}
		total = total.Add(amount)
	}
	return total, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(r rowScanner) (model.Account, error) {
	var (
		acct    model.Account
		typ     string
		opening string
		created string
	)
	if err := r.Scan(&acct.ID, &acct.Name, &typ, &opening, &created); err != nil {
		return model.Account{}, err
	}
	acct.Type = model.AccountType(typ)

	var err error
	if acct.OpeningBalance, err = decimal.NewFromString(opening); err != nil {
		return model.Account{}, fmt.Errorf("corrupt opening balance %q: %w", opening, err)
	}
	if acct.CreatedAt, err = time.Parse(timeLayout, created); err != nil {
		return model.Account{}, fmt.Errorf("corrupt created_at %q: %w", created, err)
	}
	return acct, nil
}

// dateString formats a transaction date for storage.
func dateString(t time.Time) string {
	return t.Format(validation.DateLayout)
}
