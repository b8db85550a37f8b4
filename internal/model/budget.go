package model

import (
	"github.com/shopspring/decimal"
)

// Budget is a monthly spending target for one expense category.
type Budget struct {
	ID       int64
	Category string
	Period   string // YYYY-MM
	Amount   decimal.Decimal
}

// Percentage is a percent-of-budget figure that may be undefined: a
// category with a zero budget has no meaningful percentage.
type Percentage struct {
	Value decimal.Decimal
	Valid bool
}

// String renders the percentage with one decimal place, or "n/a" when
// undefined.
func (p Percentage) String() string {
	if !p.Valid {
		return "n/a"
	}
	return p.Value.StringFixed(1) + "%"
}

// PercentageOf computes actual as a percentage of budgeted. The result
// is undefined when budgeted is zero.
func PercentageOf(actual, budgeted decimal.Decimal) Percentage {
	if budgeted.IsZero() {
		return Percentage{}
	}
	return Percentage{
		Value: actual.Mul(decimal.NewFromInt(100)).Div(budgeted),
		Valid: true,
	}
}

// ReportRow is one line of a budget-versus-actual report.
type ReportRow struct {
	Category    string
	Budgeted    decimal.Decimal
	Actual      decimal.Decimal
	Variance    decimal.Decimal // Budgeted - Actual; negative means overspent
	PctOfBudget Percentage
}
