package accounts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WinterJet2021/BahtBuddy/internal/apperrors"
)

func TestImportChart_PartialFailure(t *testing.T) {
	svc, _ := newTestService(t)

	rows := []Row{
		{Line: 2, Name: "Cash", Type: "asset"},
		{Line: 3, Name: "Bank - KBank", Type: "asset"},
		{Line: 4, Name: "Salary", Type: "income"},
		{Line: 5, Name: "", Type: "expense"},        // missing name
		{Line: 6, Name: "Groceries", Type: "expense"},
		{Line: 7, Name: "Rent", Type: "expense"},
		{Line: 8, Name: "Mystery", Type: "stocks"},  // unknown type
		{Line: 9, Name: "Utilities", Type: "expense"},
	}

	summary, err := svc.ImportChart(rows)
	require.NoError(t, err)
	assert.Equal(t, 6, summary.Added)
	assert.Zero(t, summary.Skipped)
	require.Len(t, summary.Errors, 2)
	assert.Equal(t, 5, summary.Errors[0].Line)
	assert.Equal(t, 8, summary.Errors[1].Line)
	assert.Contains(t, summary.Errors[1].Reason, "stocks")
}

func TestImportChart_DuplicatesAreSkipCounts(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.CreateAccount("Cash", "asset")
	require.NoError(t, err)

	summary, err := svc.ImportChart([]Row{
		{Name: "Cash", Type: "asset"},
		{Name: "Groceries", Type: "expense"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Added)
	assert.Equal(t, 1, summary.Skipped)
	assert.Empty(t, summary.Errors)
}

func TestImportChart_NoValidRows(t *testing.T) {
	svc, _ := newTestService(t)

	summary, err := svc.ImportChart([]Row{
		{Line: 2, Name: "", Type: ""},
		{Line: 3, Name: "X", Type: "nonsense"},
	})
	assert.ErrorIs(t, err, apperrors.ErrNoValidAccounts)
	assert.Len(t, summary.Errors, 2)

	_, err = svc.ImportChart(nil)
	assert.ErrorIs(t, err, apperrors.ErrNoValidAccounts)
}

func TestImportChart_CaseFoldsTypes(t *testing.T) {
	svc, _ := newTestService(t)

	summary, err := svc.ImportChart([]Row{
		{Name: "Cash", Type: "ASSET"},
		{Name: "Groceries", Type: "Expense"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Added)

	all, err := svc.List(nil)
	require.NoError(t, err)
	for _, a := range all {
		assert.True(t, a.Type.Valid(), "stored type %q must be folded", a.Type)
	}
}

func TestReadRows(t *testing.T) {
	input := "name,type\nCash,asset\nGroceries,expense\n"
	rows, readErrs, err := ReadRows(strings.NewReader(input))
	require.NoError(t, err)
	assert.Empty(t, readErrs)
	require.Len(t, rows, 2)
	assert.Equal(t, Row{Line: 2, Name: "Cash", Type: "asset"}, rows[0])
	assert.Equal(t, Row{Line: 3, Name: "Groceries", Type: "expense"}, rows[1])
}

func TestReadRows_RaggedLines(t *testing.T) {
	input := "name,type\nCash,asset\nGroceries,expense,extra\nRent\nUtilities,expense\n"
	rows, readErrs, err := ReadRows(strings.NewReader(input))
	require.NoError(t, err, "a ragged line must not abort the batch")

	require.Len(t, rows, 2)
	assert.Equal(t, Row{Line: 2, Name: "Cash", Type: "asset"}, rows[0])
	assert.Equal(t, Row{Line: 5, Name: "Utilities", Type: "expense"}, rows[1])

	require.Len(t, readErrs, 2)
	assert.Equal(t, 3, readErrs[0].Line)
	assert.Contains(t, readErrs[0].Reason, "got 3")
	assert.Equal(t, 4, readErrs[1].Line)
	assert.Contains(t, readErrs[1].Reason, "got 1")
}

func TestReadRows_MissingHeader(t *testing.T) {
	_, _, err := ReadRows(strings.NewReader("Cash,asset\n"))
	assert.Error(t, err)

	// A ragged first line is a format failure, not a row error.
	_, _, err = ReadRows(strings.NewReader("name\nCash,asset\n"))
	assert.Error(t, err)
}

func TestReadRows_Empty(t *testing.T) {
	rows, readErrs, err := ReadRows(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, rows)
	assert.Empty(t, readErrs)
}

func TestReadRowsJSON(t *testing.T) {
	input := `[{"name":"Cash","type":"asset"},{"name":"Groceries","type":"expense"}]`
	rows, err := ReadRowsJSON(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, Row{Line: 1, Name: "Cash", Type: "asset"}, rows[0])
	assert.Equal(t, Row{Line: 2, Name: "Groceries", Type: "expense"}, rows[1])
}

func TestReadRowsJSON_Malformed(t *testing.T) {
	_, err := ReadRowsJSON(strings.NewReader(`{"name":"Cash"}`))
	assert.Error(t, err)
}
