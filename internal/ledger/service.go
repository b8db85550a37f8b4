// Package ledger posts, modifies, deletes, and searches double-entry
// transactions, and administers period locks.
package ledger

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/WinterJet2021/BahtBuddy/internal/apperrors"
	"github.com/WinterJet2021/BahtBuddy/internal/model"
	"github.com/WinterJet2021/BahtBuddy/internal/period"
	"github.com/WinterJet2021/BahtBuddy/internal/store"
	"github.com/WinterJet2021/BahtBuddy/internal/validation"
)

// Store is the slice of the ledger store the transaction service needs.
type Store interface {
	InsertTransaction(t model.Transaction) (int64, error)
	TransactionByID(id int64) (model.Transaction, error)
	UpdateTransaction(t model.Transaction) error
	DeleteTransaction(id int64) error
	SearchTransactions(f store.TxnFilter) ([]model.Transaction, error)
	AccountByID(id int64) (model.Account, error)
	IsPeriodLocked(p string) (bool, error)
	LockPeriod(p string) error
	UnlockPeriod(p string) error
}

// Service provides transaction operations over a ledger store.
type Service struct {
	store Store
	log   zerolog.Logger
}

// NewService creates a transaction Service.
func NewService(store Store, log zerolog.Logger) *Service {
	return &Service{store: store, log: log}
}

// PostParams holds the input of one double-entry posting.
type PostParams struct {
	Date     string // YYYY-MM-DD
	Amount   decimal.Decimal
	DebitID  int64
	CreditID int64
	Notes    string
}

// Add validates and posts a transaction, returning its new id. The checks
// run in a fixed order: same-account posting, account existence, date and
// amount shape, the category-posting rule, then the period lock.
func (s *Service) Add(p PostParams) (int64, error) {
	if p.DebitID == p.CreditID {
		return 0, fmt.Errorf("%w: debit and credit accounts must differ", apperrors.ErrInvalidPosting)
	}

	debit, err := s.store.AccountByID(p.DebitID)
	if err != nil {
		return 0, err
	}
	credit, err := s.store.AccountByID(p.CreditID)
	if err != nil {
		return 0, err
	}

	date, err := validation.ParseDate(p.Date)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	if err := validation.Amount(p.Amount); err != nil {
		return 0, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}

	if err := checkPostingRule(debit, credit); err != nil {
		return 0, err
	}

	if err := s.checkOpen(date); err != nil {
		return 0, err
	}

	id, err := s.store.InsertTransaction(model.Transaction{
		Date:     date,
		Amount:   p.Amount,
		DebitID:  p.DebitID,
		CreditID: p.CreditID,
		Notes:    p.Notes,
	})
	if err != nil {
		return 0, err
	}
	s.log.Info().
		Int64("txn_id", id).
		Str("date", p.Date).
		Str("amount", p.Amount.String()).
		Int64("debit", p.DebitID).
		Int64("credit", p.CreditID).
		Msg("transaction posted")
	return id, nil
}

// checkPostingRule rejects the two category combinations that would
// silently shrink a category total: crediting an expense account and
// debiting an income account.
func checkPostingRule(debit, credit model.Account) error {
	if credit.Type == model.AccountTypeExpense {
		return fmt.Errorf("%w: expense account %q cannot be credited", apperrors.ErrInvalidPosting, credit.Name)
	}
	if debit.Type == model.AccountTypeIncome {
		return fmt.Errorf("%w: income account %q cannot be debited", apperrors.ErrInvalidPosting, debit.Name)
	}
	return nil
}

// Update carries the modifiable fields of a transaction; nil means leave
// unchanged. The field set is closed: anything else a caller tries to
// modify is rejected before an Update is ever built (see ParseUpdate).
type Update struct {
	Date     *string
	Amount   *decimal.Decimal
	DebitID  *int64
	CreditID *int64
	Notes    *string
}

// Modify revalidates and applies an Update to a posted transaction.
// Both the transaction's current date and its new date must be in open
// periods.
func (s *Service) Modify(id int64, u Update) error {
	txn, err := s.store.TransactionByID(id)
	if err != nil {
		return err
	}
	if err := s.checkOpen(txn.Date); err != nil {
		return err
	}

	if u.Date != nil {
		date, err := validation.ParseDate(*u.Date)
		if err != nil {
			return fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
		}
		txn.Date = date
	}
	if u.Amount != nil {
		if err := validation.Amount(*u.Amount); err != nil {
			return fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
		}
		txn.Amount = *u.Amount
	}
	if u.DebitID != nil {
		txn.DebitID = *u.DebitID
	}
	if u.CreditID != nil {
		txn.CreditID = *u.CreditID
	}
	if u.Notes != nil {
		txn.Notes = *u.Notes
	}

	if txn.DebitID == txn.CreditID {
		return fmt.Errorf("%w: debit and credit accounts must differ", apperrors.ErrInvalidPosting)
	}
	debit, err := s.store.AccountByID(txn.DebitID)
	if err != nil {
		return err
	}
	credit, err := s.store.AccountByID(txn.CreditID)
	if err != nil {
		return err
	}
	if err := checkPostingRule(debit, credit); err != nil {
		return err
	}
	if err := s.checkOpen(txn.Date); err != nil {
		return err
	}

	if err := s.store.UpdateTransaction(txn); err != nil {
		return err
	}
	s.log.Info().Int64("txn_id", id).Msg("transaction modified")
	return nil
}

// Delete removes a posted transaction unless its period is locked.
func (s *Service) Delete(id int64) error {
	txn, err := s.store.TransactionByID(id)
	if err != nil {
		return err
	}
	if err := s.checkOpen(txn.Date); err != nil {
		return err
	}
	if err := s.store.DeleteTransaction(id); err != nil {
		return err
	}
	s.log.Info().Int64("txn_id", id).Msg("transaction deleted")
	return nil
}

// Reverse posts the corrective counterpart of a transaction: debit and
// credit swapped, equal amount, dated in an open period. This is the one
// sanctioned way to offset a locked-period entry, so the category-posting
// rule does not apply; the reversal date itself must still be open.
func (s *Service) Reverse(id int64, date, notes string) (int64, error) {
	txn, err := s.store.TransactionByID(id)
	if err != nil {
		return 0, err
	}
	d, err := validation.ParseDate(date)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	if err := s.checkOpen(d); err != nil {
		return 0, err
	}

	if notes == "" {
		notes = fmt.Sprintf("reversal of txn %d", id)
	}
	revID, err := s.store.InsertTransaction(txn.Reversed(d, notes))
	if err != nil {
		return 0, err
	}
	s.log.Info().Int64("txn_id", revID).Int64("reverses", id).Msg("reversal posted")
	return revID, nil
}

// Get fetches one posted transaction.
func (s *Service) Get(id int64) (model.Transaction, error) {
	return s.store.TransactionByID(id)
}

// Query narrows a transaction search. Zero values mean "no filter";
// dates are inclusive YYYY-MM-DD bounds.
type Query struct {
	Text      string
	AccountID int64
	DebitID   int64
	CreditID  int64
	From      string
	To        string
	Limit     int
	Offset    int
}

// Search returns matching transactions in date order, ties broken by
// insertion order.
func (s *Service) Search(q Query) ([]model.Transaction, error) {
	for _, d := range []string{q.From, q.To} {
		if d == "" {
			continue
		}
		if err := validation.Date(d); err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
		}
	}
	return s.store.SearchTransactions(store.TxnFilter{
		Text:      q.Text,
		AccountID: q.AccountID,
		DebitID:   q.DebitID,
		CreditID:  q.CreditID,
		DateFrom:  q.From,
		DateTo:    q.To,
		Limit:     q.Limit,
		Offset:    q.Offset,
	})
}

// Lock marks a month as locked; transactions dated inside it can no
// longer be modified or deleted. Locking is pure metadata, independent of
// the transactions themselves.
func (s *Service) Lock(m period.Month) error {
	if err := s.store.LockPeriod(m.String()); err != nil {
		return err
	}
	s.log.Info().Str("period", m.String()).Msg("period locked")
	return nil
}

// Unlock reopens a locked month.
func (s *Service) Unlock(m period.Month) error {
	if err := s.store.UnlockPeriod(m.String()); err != nil {
		return err
	}
	s.log.Info().Str("period", m.String()).Msg("period unlocked")
	return nil
}

// IsLocked reports whether a month is locked.
func (s *Service) IsLocked(m period.Month) (bool, error) {
	return s.store.IsPeriodLocked(m.String())
}

// checkOpen maps a date inside a locked period to ErrPeriodLocked.
func (s *Service) checkOpen(date time.Time) error {
	m := period.Of(date)
	locked, err := s.store.IsPeriodLocked(m.String())
	if err != nil {
		return err
	}
	if locked {
		return fmt.Errorf("%w: period %s is locked", apperrors.ErrPeriodLocked, m)
	}
	return nil
}
