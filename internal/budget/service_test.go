package budget

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WinterJet2021/BahtBuddy/internal/apperrors"
	"github.com/WinterJet2021/BahtBuddy/internal/logging"
	"github.com/WinterJet2021/BahtBuddy/internal/model"
	"github.com/WinterJet2021/BahtBuddy/internal/period"
	"github.com/WinterJet2021/BahtBuddy/internal/store"
)

func newTestService(t *testing.T) (*Service, *store.Store) {
	t.Helper()
	st, err := store.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return NewService(st, logging.Nop()), st
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func month(s string) period.Month {
	m, err := period.Parse(s)
	if err != nil {
		panic(err)
	}
	return m
}

func date(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

// spend posts an expense transaction directly so the report has actuals
// to work with.
func spend(t *testing.T, st *store.Store, day, amount string, debit, credit int64) {
	t.Helper()
	_, err := st.InsertTransaction(model.Transaction{
		Date:     date(day),
		Amount:   dec(amount),
		DebitID:  debit,
		CreditID: credit,
	})
	require.NoError(t, err)
}

func TestSet(t *testing.T) {
	svc, _ := newTestService(t)
	oct := month("2025-10")

	require.NoError(t, svc.Set("Groceries", oct, dec("4000")))

	// Overwrites, no duplicate row.
	require.NoError(t, svc.Set("Groceries", oct, dec("4500")))

	rows, err := svc.List(oct)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].Amount.Equal(dec("4500")))

	// Zero is a valid budget.
	require.NoError(t, svc.Set("Entertainment", oct, decimal.Zero))

	assert.ErrorIs(t, svc.Set("Rent", oct, dec("-1")), apperrors.ErrInvalidAmount)
	assert.ErrorIs(t, svc.Set("  ", oct, dec("100")), apperrors.ErrInvalidInput)
}

func TestCopyForward_Additive(t *testing.T) {
	svc, _ := newTestService(t)
	oct, nov := month("2025-10"), month("2025-11")

	require.NoError(t, svc.Set("Groceries", oct, dec("4000")))
	require.NoError(t, svc.Set("Rent", oct, dec("12000")))
	require.NoError(t, svc.Set("Transport", oct, dec("1500")))

	// November already has its own Groceries figure.
	require.NoError(t, svc.Set("Groceries", nov, dec("5000")))

	res, err := svc.CopyForward(oct, nov)
	require.NoError(t, err)
	assert.Equal(t, CopyResult{Copied: 2, Skipped: 1}, res)

	rows, err := svc.List(nov)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	byCat := make(map[string]decimal.Decimal)
	for _, b := range rows {
		byCat[b.Category] = b.Amount
	}
	assert.True(t, byCat["Groceries"].Equal(dec("5000")), "existing target row must survive")
	assert.True(t, byCat["Rent"].Equal(dec("12000")))

	// Running it again copies nothing new.
	res, err = svc.CopyForward(oct, nov)
	require.NoError(t, err)
	assert.Equal(t, CopyResult{Copied: 0, Skipped: 3}, res)

	_, err = svc.CopyForward(oct, oct)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestReport(t *testing.T) {
	svc, st := newTestService(t)
	oct := month("2025-10")

	cash, err := st.InsertAccount("Cash", model.AccountTypeAsset)
	require.NoError(t, err)
	groceries, err := st.InsertAccount("Groceries", model.AccountTypeExpense)
	require.NoError(t, err)
	rent, err := st.InsertAccount("Rent", model.AccountTypeExpense)
	require.NoError(t, err)
	transport, err := st.InsertAccount("Transport", model.AccountTypeExpense)
	require.NoError(t, err)

	require.NoError(t, svc.Set("Groceries", oct, dec("4000")))
	require.NoError(t, svc.Set("Rent", oct, dec("12000")))

	spend(t, st, "2025-10-05", "4500", groceries, cash)   // overspent by 500
	spend(t, st, "2025-10-01", "12000", rent, cash)       // exactly on budget
	spend(t, st, "2025-10-12", "300", transport, cash)    // unbudgeted spending
	spend(t, st, "2025-11-02", "9999", groceries, cash)   // next month, ignored

	rows, err := svc.Report(oct)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	// Variance ascending: worst overspend first.
	assert.Equal(t, "Groceries", rows[0].Category)
	assert.True(t, rows[0].Variance.Equal(dec("-500")))
	assert.True(t, rows[0].PctOfBudget.Valid)
	assert.Equal(t, "112.5%", rows[0].PctOfBudget.String())

	assert.Equal(t, "Transport", rows[1].Category)
	assert.True(t, rows[1].Budgeted.IsZero())
	assert.True(t, rows[1].Variance.Equal(dec("-300")))
	assert.False(t, rows[1].PctOfBudget.Valid, "zero budget has no percentage")
	assert.Equal(t, "n/a", rows[1].PctOfBudget.String())

	assert.Equal(t, "Rent", rows[2].Category)
	assert.True(t, rows[2].Variance.IsZero())
	assert.Equal(t, "100.0%", rows[2].PctOfBudget.String())
}

func TestReport_BudgetedButUnspent(t *testing.T) {
	svc, st := newTestService(t)
	oct := month("2025-10")

	_, err := st.InsertAccount("Groceries", model.AccountTypeExpense)
	require.NoError(t, err)
	_, err = st.InsertAccount("Utilities", model.AccountTypeExpense)
	require.NoError(t, err)

	require.NoError(t, svc.Set("Groceries", oct, dec("4000")))

	rows, err := svc.Report(oct)
	require.NoError(t, err)

	// Utilities has no budget and no spending; it stays out.
	require.Len(t, rows, 1)
	assert.Equal(t, "Groceries", rows[0].Category)
	assert.True(t, rows[0].Actual.IsZero())
	assert.True(t, rows[0].Variance.Equal(dec("4000")))
	assert.Equal(t, "0.0%", rows[0].PctOfBudget.String())
}

func TestReport_Empty(t *testing.T) {
	svc, _ := newTestService(t)

	rows, err := svc.Report(month("2025-10"))
	require.NoError(t, err)
	assert.Empty(t, rows)
}
