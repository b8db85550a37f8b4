// Package validation holds the pure input checks shared by the domain
// services. Every check reports failure as an ordinary error value with a
// human-readable reason; malformed input never panics.
package validation

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/WinterJet2021/BahtBuddy/internal/model"
)

// DateLayout is the textual date format used across the ledger.
const DateLayout = "2006-01-02"

var validate = validator.New()

// Date checks that s is a real calendar date in YYYY-MM-DD form.
// Zero padding is required: "2025-1-1" is rejected.
func Date(s string) error {
	if len(s) != len(DateLayout) {
		return fmt.Errorf("date %q is not in YYYY-MM-DD format", s)
	}
	if err := validate.Var(s, "required,datetime=2006-01-02"); err != nil {
		return fmt.Errorf("date %q is not a valid calendar date", s)
	}
	return nil
}

// ParseDate validates and parses a YYYY-MM-DD date.
func ParseDate(s string) (time.Time, error) {
	if err := Date(s); err != nil {
		return time.Time{}, err
	}
	return time.Parse(DateLayout, s)
}

// Amount checks that d is strictly positive. Transaction amounts are never
// zero or negative; the direction of money is carried by the debit/credit
// sides instead.
func Amount(d decimal.Decimal) error {
	if d.Sign() <= 0 {
		return fmt.Errorf("amount %s must be greater than zero", d)
	}
	return nil
}

// OpeningAmount checks an opening balance. Opening balances may be zero or
// negative so liability and contra accounts can carry natural openings;
// decimal.Decimal values are always finite, so every value passes.
func OpeningAmount(decimal.Decimal) error {
	return nil
}

// BudgetAmount checks a budgeted amount, which may be zero but not negative.
func BudgetAmount(d decimal.Decimal) error {
	if d.Sign() < 0 {
		return fmt.Errorf("budget amount %s must not be negative", d)
	}
	return nil
}

// AccountType case-folds s and checks it against the five recognized
// types. Input is matched case-insensitively and stored lowercase.
func AccountType(s string) (model.AccountType, error) {
	t := model.AccountType(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("account type %q is not one of asset, liability, equity, income, expense", s)
	}
	return t, nil
}

// ID checks that an account or transaction identifier is well-formed.
func ID(id int64) error {
	if id <= 0 {
		return fmt.Errorf("identifier %d must be a positive integer", id)
	}
	return nil
}

// accountRow mirrors one candidate row of a chart-of-accounts import.
type accountRow struct {
	Name string `validate:"required"`
	Type string `validate:"required,oneof=asset liability equity income expense"`
}

// Row checks one (name, type) chart-of-accounts candidate row. The type is
// case-folded before matching.
func Row(name, typ string) error {
	row := accountRow{
		Name: strings.TrimSpace(name),
		Type: strings.ToLower(strings.TrimSpace(typ)),
	}
	if err := validate.Struct(row); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			switch verrs[0].Field() {
			case "Name":
				return fmt.Errorf("account name is required")
			case "Type":
				return fmt.Errorf("account type %q is not one of asset, liability, equity, income, expense", typ)
			}
		}
		return fmt.Errorf("invalid account row: %w", err)
	}
	return nil
}
