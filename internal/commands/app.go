package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/WinterJet2021/BahtBuddy/internal/accounts"
	"github.com/WinterJet2021/BahtBuddy/internal/budget"
	"github.com/WinterJet2021/BahtBuddy/internal/config"
	"github.com/WinterJet2021/BahtBuddy/internal/ledger"
	"github.com/WinterJet2021/BahtBuddy/internal/logging"
	"github.com/WinterJet2021/BahtBuddy/internal/store"
)

// app bundles the opened store and the services a subcommand needs.
type app struct {
	cfg      *config.Config
	store    *store.Store
	log      zerolog.Logger
	accounts *accounts.Service
	ledger   *ledger.Service
	budget   *budget.Service
}

// openApp loads the config from dir and opens the ledger store.
// Commands other than init require an initialized directory.
func openApp(dir string) (*app, error) {
	cfgPath := filepath.Join(dir, config.DefaultFileName)
	cfg, err := config.Load(cfgPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("no %s in %s (run \"bahtbuddy init\" first)", config.DefaultFileName, dir)
		}
		return nil, err
	}

	log := logging.New(cfg.Log.Level)
	st, err := store.Open(cfg.DatabasePath())
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:      cfg,
		store:    st,
		log:      log,
		accounts: accounts.NewService(st, log),
		ledger:   ledger.NewService(st, log),
		budget:   budget.NewService(st, log),
	}, nil
}

func (a *app) close() {
	if err := a.store.Close(); err != nil {
		a.log.Warn().Err(err).Msg("closing store")
	}
}
