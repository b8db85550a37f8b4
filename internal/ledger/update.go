package ledger

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/WinterJet2021/BahtBuddy/internal/apperrors"
)

// ParseUpdate builds an Update from textual field/value pairs, e.g. from
// "field=value" CLI arguments. The whitelist is closed: date, amount,
// debit, credit, notes. Any other key is ErrInvalidField; values that do
// not parse are ErrInvalidInput. Full validation happens later in Modify.
func ParseUpdate(fields map[string]string) (Update, error) {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var u Update
	for _, key := range keys {
		value := fields[key]
		switch key {
		case "date":
			v := value
			u.Date = &v
		case "amount":
			amount, err := decimal.NewFromString(value)
			if err != nil {
				return Update{}, fmt.Errorf("%w: amount %q is not a number", apperrors.ErrInvalidInput, value)
			}
			u.Amount = &amount
		case "debit":
			id, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return Update{}, fmt.Errorf("%w: debit %q is not an account id", apperrors.ErrInvalidInput, value)
			}
			u.DebitID = &id
		case "credit":
			id, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return Update{}, fmt.Errorf("%w: credit %q is not an account id", apperrors.ErrInvalidInput, value)
			}
			u.CreditID = &id
		case "notes":
			v := value
			u.Notes = &v
		default:
			return Update{}, fmt.Errorf("%w: %q (want date, amount, debit, credit, or notes)", apperrors.ErrInvalidField, key)
		}
	}
	return u, nil
}
