package store

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WinterJet2021/BahtBuddy/internal/apperrors"
	"github.com/WinterJet2021/BahtBuddy/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestInsertAccount_Duplicate(t *testing.T) {
	s := newTestStore(t)

	id, err := s.InsertAccount("Cash", model.AccountTypeAsset)
	require.NoError(t, err)
	assert.Positive(t, id)

	_, err = s.InsertAccount("Cash", model.AccountTypeAsset)
	assert.ErrorIs(t, err, apperrors.ErrDuplicateAccount)

	// Same name under a different type is a distinct account.
	_, err = s.InsertAccount("Cash", model.AccountTypeExpense)
	assert.NoError(t, err)
}

func TestBulkInsertAccounts_SkipsExisting(t *testing.T) {
	s := newTestStore(t)

	_, err := s.InsertAccount("Cash", model.AccountTypeAsset)
	require.NoError(t, err)

	added, skipped, err := s.BulkInsertAccounts([]model.Account{
		{Name: "Cash", Type: model.AccountTypeAsset},
		{Name: "Groceries", Type: model.AccountTypeExpense},
		{Name: "Salary", Type: model.AccountTypeIncome},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, added)
	assert.Equal(t, 1, skipped)
}

func TestAccountByID_NotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.AccountByID(99)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	ok, err := s.AccountExists(99)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSetOpeningBalance(t *testing.T) {
	s := newTestStore(t)

	id, err := s.InsertAccount("Credit Card - KTC", model.AccountTypeLiability)
	require.NoError(t, err)

	require.NoError(t, s.SetOpeningBalance(id, dec("-1200.50")))

	acct, err := s.AccountByID(id)
	require.NoError(t, err)
	assert.True(t, acct.OpeningBalance.Equal(dec("-1200.50")))

	assert.ErrorIs(t, s.SetOpeningBalance(99, dec("1")), apperrors.ErrNotFound)
}

func TestListAccounts_OrderedByTypeThenName(t *testing.T) {
	s := newTestStore(t)

	for _, a := range []struct {
		name string
		typ  model.AccountType
	}{
		{"Groceries", model.AccountTypeExpense},
		{"Cash", model.AccountTypeAsset},
		{"Bank - KBank", model.AccountTypeAsset},
	} {
		_, err := s.InsertAccount(a.name, a.typ)
		require.NoError(t, err)
	}

	all, err := s.ListAccounts(nil)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Bank - KBank", all[0].Name)
	assert.Equal(t, "Cash", all[1].Name)
	assert.Equal(t, "Groceries", all[2].Name)

	expense := model.AccountTypeExpense
	filtered, err := s.ListAccounts(&expense)
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "Groceries", filtered[0].Name)
}

func TestTransactionRoundTrip(t *testing.T) {
	s := newTestStore(t)

	cash, err := s.InsertAccount("Cash", model.AccountTypeAsset)
	require.NoError(t, err)
	groceries, err := s.InsertAccount("Groceries", model.AccountTypeExpense)
	require.NoError(t, err)

	id, err := s.InsertTransaction(model.Transaction{
		Date:     date(2025, 10, 14),
		Amount:   dec("350.25"),
		DebitID:  groceries,
		CreditID: cash,
		Notes:    "market run",
	})
	require.NoError(t, err)

	txn, err := s.TransactionByID(id)
	require.NoError(t, err)
	assert.Equal(t, "market run", txn.Notes)
	assert.True(t, txn.Amount.Equal(dec("350.25")))
	assert.Equal(t, date(2025, 10, 14), txn.Date)

	txn.Notes = "weekly market run"
	require.NoError(t, s.UpdateTransaction(txn))
	txn, err = s.TransactionByID(id)
	require.NoError(t, err)
	assert.Equal(t, "weekly market run", txn.Notes)

	require.NoError(t, s.DeleteTransaction(id))
	_, err = s.TransactionByID(id)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.ErrorIs(t, s.DeleteTransaction(id), apperrors.ErrNotFound)
}

func TestAccountSums(t *testing.T) {
	s := newTestStore(t)

	cash, err := s.InsertAccount("Cash", model.AccountTypeAsset)
	require.NoError(t, err)
	groceries, err := s.InsertAccount("Groceries", model.AccountTypeExpense)
	require.NoError(t, err)

	for _, amount := range []string{"100.10", "200.20"} {
		_, err := s.InsertTransaction(model.Transaction{
			Date: date(2025, 10, 1), Amount: dec(amount), DebitID: groceries, CreditID: cash,
		})
		require.NoError(t, err)
	}

	debits, credits, err := s.AccountSums(groceries)
	require.NoError(t, err)
	assert.True(t, debits.Equal(dec("300.30")), "got %s", debits)
	assert.True(t, credits.IsZero())

	debits, credits, err = s.AccountSums(cash)
	require.NoError(t, err)
	assert.True(t, debits.IsZero())
	assert.True(t, credits.Equal(dec("300.30")))
}

func TestSearchTransactions(t *testing.T) {
	s := newTestStore(t)

	cash, err := s.InsertAccount("Cash", model.AccountTypeAsset)
	require.NoError(t, err)
	groceries, err := s.InsertAccount("Groceries", model.AccountTypeExpense)
	require.NoError(t, err)
	rent, err := s.InsertAccount("Rent", model.AccountTypeExpense)
	require.NoError(t, err)

	// Inserted out of date order to exercise the ordering clause.
	_, err = s.InsertTransaction(model.Transaction{
		Date: date(2025, 10, 20), Amount: dec("9000"), DebitID: rent, CreditID: cash, Notes: "october rent",
	})
	require.NoError(t, err)
	_, err = s.InsertTransaction(model.Transaction{
		Date: date(2025, 10, 5), Amount: dec("350"), DebitID: groceries, CreditID: cash, Notes: "market",
	})
	require.NoError(t, err)
	_, err = s.InsertTransaction(model.Transaction{
		Date: date(2025, 11, 2), Amount: dec("400"), DebitID: groceries, CreditID: cash, Notes: "market again",
	})
	require.NoError(t, err)

	all, err := s.SearchTransactions(TxnFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, date(2025, 10, 5), all[0].Date)
	assert.Equal(t, date(2025, 10, 20), all[1].Date)
	assert.Equal(t, date(2025, 11, 2), all[2].Date)

	// Free text matches account names as well as notes.
	byName, err := s.SearchTransactions(TxnFilter{Text: "Rent"})
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, dec("9000").String(), byName[0].Amount.String())

	byNotes, err := s.SearchTransactions(TxnFilter{Text: "market"})
	require.NoError(t, err)
	assert.Len(t, byNotes, 2)

	october, err := s.SearchTransactions(TxnFilter{DateFrom: "2025-10-01", DateTo: "2025-10-31"})
	require.NoError(t, err)
	assert.Len(t, october, 2)

	byAccount, err := s.SearchTransactions(TxnFilter{AccountID: cash})
	require.NoError(t, err)
	assert.Len(t, byAccount, 3)

	byDebit, err := s.SearchTransactions(TxnFilter{DebitID: groceries})
	require.NoError(t, err)
	assert.Len(t, byDebit, 2)
}

func TestBudgets(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.UpsertBudget("2025-10", "Groceries", dec("5000")))
	require.NoError(t, s.UpsertBudget("2025-10", "Groceries", dec("5500")))

	budgets, err := s.BudgetsForPeriod("2025-10")
	require.NoError(t, err)
	require.Len(t, budgets, 1)
	assert.True(t, budgets[0].Amount.Equal(dec("5500")))

	added, err := s.InsertBudgetIfAbsent("2025-10", "Groceries", dec("9999"))
	require.NoError(t, err)
	assert.False(t, added, "existing row must not be overwritten")

	added, err = s.InsertBudgetIfAbsent("2025-10", "Rent", dec("9000"))
	require.NoError(t, err)
	assert.True(t, added)
}

func TestActualsByCategory(t *testing.T) {
	s := newTestStore(t)

	cash, err := s.InsertAccount("Cash", model.AccountTypeAsset)
	require.NoError(t, err)
	groceries, err := s.InsertAccount("Groceries", model.AccountTypeExpense)
	require.NoError(t, err)
	_, err = s.InsertAccount("Rent", model.AccountTypeExpense)
	require.NoError(t, err)

	_, err = s.InsertTransaction(model.Transaction{
		Date: date(2025, 10, 5), Amount: dec("350.50"), DebitID: groceries, CreditID: cash,
	})
	require.NoError(t, err)
	_, err = s.InsertTransaction(model.Transaction{
		Date: date(2025, 10, 18), Amount: dec("150"), DebitID: groceries, CreditID: cash,
	})
	require.NoError(t, err)
	// Outside the period.
	_, err = s.InsertTransaction(model.Transaction{
		Date: date(2025, 11, 1), Amount: dec("75"), DebitID: groceries, CreditID: cash,
	})
	require.NoError(t, err)

	actuals, err := s.ActualsByCategory("2025-10")
	require.NoError(t, err)
	assert.True(t, actuals["Groceries"].Equal(dec("500.50")), "got %s", actuals["Groceries"])
	assert.True(t, actuals["Rent"].IsZero(), "expense accounts with no postings report zero")
	_, hasCash := actuals["Cash"]
	assert.False(t, hasCash, "asset accounts are not categories")
}

func TestInTx_KeepsErrorKindWhenRollbackFails(t *testing.T) {
	s := newTestStore(t)

	sentinel := errors.New("boom")
	// Rolling back inside fn makes InTx's own rollback fail too; the
	// original error kind must still be matchable.
	err := s.InTx(func(tx *sql.Tx) error {
		require.NoError(t, tx.Rollback())
		return fmt.Errorf("inserting row: %w", sentinel)
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, sentinel)
}

func TestPeriodLocks(t *testing.T) {
	s := newTestStore(t)

	locked, err := s.IsPeriodLocked("2025-10")
	require.NoError(t, err)
	assert.False(t, locked)

	require.NoError(t, s.LockPeriod("2025-10"))
	require.NoError(t, s.LockPeriod("2025-10")) // idempotent

	locked, err = s.IsPeriodLocked("2025-10")
	require.NoError(t, err)
	assert.True(t, locked)

	require.NoError(t, s.UnlockPeriod("2025-10"))
	locked, err = s.IsPeriodLocked("2025-10")
	require.NoError(t, err)
	assert.False(t, locked)
}
