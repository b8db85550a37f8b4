// Package budget manages monthly per-category budgets and builds
// budget-versus-actual reports.
package budget

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/WinterJet2021/BahtBuddy/internal/apperrors"
	"github.com/WinterJet2021/BahtBuddy/internal/model"
	"github.com/WinterJet2021/BahtBuddy/internal/period"
	"github.com/WinterJet2021/BahtBuddy/internal/validation"
)

// Store is the slice of the ledger store the budget service needs.
type Store interface {
	UpsertBudget(period, category string, amount decimal.Decimal) error
	InsertBudgetIfAbsent(period, category string, amount decimal.Decimal) (bool, error)
	BudgetsForPeriod(period string) ([]model.Budget, error)
	ActualsByCategory(period string) (map[string]decimal.Decimal, error)
}

// Service provides budget operations over a ledger store.
type Service struct {
	store Store
	log   zerolog.Logger
}

// NewService creates a budget Service.
func NewService(store Store, log zerolog.Logger) *Service {
	return &Service{store: store, log: log}
}

// Set creates or overwrites the budget for one category in one month.
// A zero amount is a deliberate "budget nothing here"; negative amounts
// are rejected.
func (s *Service) Set(category string, m period.Month, amount decimal.Decimal) error {
	category = strings.TrimSpace(category)
	if category == "" {
		return fmt.Errorf("%w: category is required", apperrors.ErrInvalidInput)
	}
	if err := validation.BudgetAmount(amount); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrInvalidAmount, err)
	}
	if err := s.store.UpsertBudget(m.String(), category, amount); err != nil {
		return err
	}
	s.log.Info().
		Str("period", m.String()).
		Str("category", category).
		Str("amount", amount.String()).
		Msg("budget set")
	return nil
}

// CopyResult summarizes one copy-forward run.
type CopyResult struct {
	Copied  int
	Skipped int
}

// CopyForward clones the budget rows of one month into another. It is
// additive: categories already budgeted in the target month keep their
// amounts and are counted as skipped.
func (s *Service) CopyForward(from, to period.Month) (CopyResult, error) {
	if from == to {
		return CopyResult{}, fmt.Errorf("%w: source and target month must differ", apperrors.ErrInvalidInput)
	}
	rows, err := s.store.BudgetsForPeriod(from.String())
	if err != nil {
		return CopyResult{}, err
	}

	var res CopyResult
	for _, b := range rows {
		added, err := s.store.InsertBudgetIfAbsent(to.String(), b.Category, b.Amount)
		if err != nil {
			return res, err
		}
		if added {
			res.Copied++
		} else {
			res.Skipped++
		}
	}
	s.log.Info().
		Str("from", from.String()).
		Str("to", to.String()).
		Int("copied", res.Copied).
		Int("skipped", res.Skipped).
		Msg("budgets copied forward")
	return res, nil
}

// List returns the budget rows of one month, ordered by category.
func (s *Service) List(m period.Month) ([]model.Budget, error) {
	return s.store.BudgetsForPeriod(m.String())
}

// Report builds the budget-versus-actual rows for one month. Every
// category that is either budgeted or has posted spending appears once.
// Rows are sorted by variance ascending so the worst overspend leads.
func (s *Service) Report(m period.Month) ([]model.ReportRow, error) {
	budgets, err := s.store.BudgetsForPeriod(m.String())
	if err != nil {
		return nil, err
	}
	actuals, err := s.store.ActualsByCategory(m.String())
	if err != nil {
		return nil, err
	}

	budgeted := make(map[string]decimal.Decimal, len(budgets))
	for _, b := range budgets {
		budgeted[b.Category] = b.Amount
	}

	seen := make(map[string]bool)
	var rows []model.ReportRow
	add := func(category string) {
		if seen[category] {
			return
		}
		seen[category] = true
		b := budgeted[category]
		a := actuals[category]
		rows = append(rows, model.ReportRow{
			Category:    category,
			Budgeted:    b,
			Actual:      a,
			Variance:    b.Sub(a),
			PctOfBudget: model.PercentageOf(a, b),
		})
	}
	for category := range budgeted {
		add(category)
	}
	for category, actual := range actuals {
		// Unbudgeted categories with no spending stay out of the report.
		if !actual.IsZero() {
			add(category)
		}
	}

	sort.Slice(rows, func(i, j int) bool {
		if c := rows[i].Variance.Cmp(rows[j].Variance); c != 0 {
			return c < 0
		}
		return rows[i].Category < rows[j].Category
	})
	return rows, nil
}
