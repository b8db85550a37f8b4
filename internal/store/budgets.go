package store

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/WinterJet2021/BahtBuddy/internal/model"
)

// UpsertBudget creates or overwrites the budget row for (period, category).
func (s *Store) UpsertBudget(period, category string, amount decimal.Decimal) error {
	_, err := s.db.Exec(
		`INSERT INTO budgets(period, category, amount) VALUES (?, ?, ?)
		 ON CONFLICT(period, category) DO UPDATE SET amount = excluded.amount`,
		period, category, amount.String())
	if err != nil {
		return fmt.Errorf("upserting budget %s/%s: %w", period, category, err)
	}
	return nil
}

// InsertBudgetIfAbsent adds a budget row only when (period, category) has
// none yet. It reports whether a row was added; copy-forward uses this to
// stay additive.
func (s *Store) InsertBudgetIfAbsent(period, category string, amount decimal.Decimal) (bool, error) {
	res, err := s.db.Exec(
		`INSERT OR IGNORE INTO budgets(period, category, amount) VALUES (?, ?, ?)`,
		period, category, amount.String())
	if err != nil {
		return false, fmt.Errorf("inserting budget %s/%s: %w", period, category, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("inserting budget %s/%s: %w", period, category, err)
	}
	return n > 0, nil
}

// BudgetsForPeriod returns the budget rows of one period ordered by category.
func (s *Store) BudgetsForPeriod(period string) ([]model.Budget, error) {
	rows, err := s.db.Query(
		`SELECT budget_id, category, period, amount FROM budgets
		 WHERE period = ? ORDER BY category`, period)
	if err != nil {
		return nil, fmt.Errorf("listing budgets for %s: %w", period, err)
	}
	defer rows.Close()

	var budgets []model.Budget
	for rows.Next() {
		var (
			b   model.Budget
			raw string
		)
		if err := rows.Scan(&b.ID, &b.Category, &b.Period, &raw); err != nil {
			return nil, fmt.Errorf("scanning budget: %w", err)
		}
		if b.Amount, err = decimal.NewFromString(raw); err != nil {
			return nil, fmt.Errorf("corrupt budget amount %q: %w", raw, err)
		}
		budgets = append(budgets, b)
	}
	return budgets, rows.Err()
}

// ActualsByCategory sums, per expense account name, the posted amounts
// debiting that account within one YYYY-MM period. Every expense account
// appears in the result, zero when nothing was spent.
func (s *Store) ActualsByCategory(period string) (map[string]decimal.Decimal, error) {
	rows, err := s.db.Query(
		`SELECT a.name, t.amount
		 FROM accounts a
		 LEFT JOIN transactions t
		   ON a.account_id = t.debit_account_id AND substr(t.date, 1, 7) = ?
		 WHERE a.type = 'expense'`, period)
	if err != nil {
		return nil, fmt.Errorf("summing actuals for %s: %w", period, err)
	}
	defer rows.Close()

	actuals := make(map[string]decimal.Decimal)
	for rows.Next() {
		var (
			name string
			raw  *string
		)
		if err := rows.Scan(&name, &raw); err != nil {
			return nil, fmt.Errorf("scanning actual: %w", err)
		}
		if _, ok := actuals[name]; !ok {
			actuals[name] = decimal.Zero
		}
		if raw == nil {
			continue
		}
		amount, err := decimal.NewFromString(*raw)
		if err != nil {
			return nil, fmt.Errorf("corrupt amount %q: %w", *raw, err)
		}
		actuals[name] = actuals[name].Add(amount)
	}
	return actuals, rows.Err()
}
