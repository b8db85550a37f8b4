// Package accounts manages the chart of accounts: seeding, import,
// opening balances, and balance derivation.
package accounts

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/WinterJet2021/BahtBuddy/internal/apperrors"
	"github.com/WinterJet2021/BahtBuddy/internal/model"
	"github.com/WinterJet2021/BahtBuddy/internal/validation"
)

// Store is the slice of the ledger store the account service needs.
type Store interface {
	InsertAccount(name string, typ model.AccountType) (int64, error)
	BulkInsertAccounts(rows []model.Account) (added, skipped int, err error)
	AccountByID(id int64) (model.Account, error)
	ListAccounts(filter *model.AccountType) ([]model.Account, error)
	SetOpeningBalance(id int64, amount decimal.Decimal) error
	AccountSums(id int64) (debits, credits decimal.Decimal, err error)
}

// Service provides chart-of-accounts operations over a ledger store.
type Service struct {
	store Store
	log   zerolog.Logger
}

// NewService creates an account Service.
func NewService(store Store, log zerolog.Logger) *Service {
	return &Service{store: store, log: log}
}

// SeedResult reports what a default-chart seeding run did.
type SeedResult struct {
	Added    int
	Existing int
}

// InitDefaultChart seeds the built-in chart of accounts. Running it again
// adds nothing: accounts already present are only counted.
func (s *Service) InitDefaultChart() (SeedResult, error) {
	added, existing, err := s.store.BulkInsertAccounts(DefaultChart())
	if err != nil {
		return SeedResult{}, fmt.Errorf("seeding default chart: %w", err)
	}
	s.log.Info().Int("added", added).Int("existing", existing).Msg("default chart seeded")
	return SeedResult{Added: added, Existing: existing}, nil
}

// CreateAccount adds one account by hand.
func (s *Service) CreateAccount(name, typ string) (model.Account, error) {
	accountType, err := validation.AccountType(typ)
	if err != nil {
		return model.Account{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	if name == "" {
		return model.Account{}, fmt.Errorf("%w: account name is required", apperrors.ErrInvalidInput)
	}

	id, err := s.store.InsertAccount(name, accountType)
	if err != nil {
		return model.Account{}, err
	}
	s.log.Info().Int64("account_id", id).Str("name", name).Str("type", string(accountType)).Msg("account created")
	return s.store.AccountByID(id)
}

// SetOpeningBalance overwrites an account's opening balance. Zero and
// negative openings are allowed so liability and contra accounts can carry
// natural starting positions; this is the one amount field where
// positivity is not required.
func (s *Service) SetOpeningBalance(id int64, amount decimal.Decimal) error {
	if err := validation.ID(id); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	if err := validation.OpeningAmount(amount); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrInvalidAmount, err)
	}
	if err := s.store.SetOpeningBalance(id, amount); err != nil {
		return err
	}
	s.log.Info().Int64("account_id", id).Str("amount", amount.String()).Msg("opening balance set")
	return nil
}

// Balance derives an account's current balance with the category-aware
// sign convention: asset and expense accounts grow with debits, liability,
// equity and income accounts grow with credits.
func (s *Service) Balance(id int64) (decimal.Decimal, error) {
	acct, err := s.store.AccountByID(id)
	if err != nil {
		return decimal.Zero, err
	}
	debits, credits, err := s.store.AccountSums(id)
	if err != nil {
		return decimal.Zero, err
	}
	if acct.Type.DebitNormal() {
		return acct.OpeningBalance.Add(debits).Sub(credits), nil
	}
	return acct.OpeningBalance.Add(credits).Sub(debits), nil
}

// List returns accounts ordered by type then name, optionally filtered by
// type.
func (s *Service) List(filter *model.AccountType) ([]model.Account, error) {
	return s.store.ListAccounts(filter)
}

// Get fetches one account.
func (s *Service) Get(id int64) (model.Account, error) {
	return s.store.AccountByID(id)
}
