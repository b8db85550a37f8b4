package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/WinterJet2021/BahtBuddy/internal/accounts"
	"github.com/WinterJet2021/BahtBuddy/internal/config"
	"github.com/WinterJet2021/BahtBuddy/internal/logging"
	"github.com/WinterJet2021/BahtBuddy/internal/store"
)

func newInitCommand(dir *string) *cobra.Command {
	var skipChart bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a bahtbuddy ledger directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			absDir, err := filepath.Abs(*dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}
			return runInit(cmd, absDir, skipChart)
		},
	}

	cmd.Flags().BoolVar(&skipChart, "skip-chart", false, "do not seed the default chart of accounts")

	return cmd
}

func runInit(cmd *cobra.Command, dir string, skipChart bool) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}

	cfgPath := filepath.Join(dir, config.DefaultFileName)
	if _, err := os.Stat(cfgPath); err == nil {
		return fmt.Errorf("%s already exists in %s", config.DefaultFileName, dir)
	}

	cfg := config.Default(dir)
	if err := config.Save(cfgPath, cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	// Opening the store creates the schema.
	st, err := store.Open(cfg.DatabasePath())
	if err != nil {
		return err
	}
	defer st.Close()

	if !skipChart {
		svc := accounts.NewService(st, logging.New(cfg.Log.Level))
		res, err := svc.InitDefaultChart()
		if err != nil {
			return err
		}
		cmd.Printf("Seeded default chart: %d accounts added\n", res.Added)
	}

	cmd.Printf("Initialized bahtbuddy ledger at %s\n", dir)
	return nil
}
