// Package commands wires the CLI surface over the domain services.
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/WinterJet2021/BahtBuddy/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	var dir string

	rootCmd := &cobra.Command{
		Use:     "bahtbuddy",
		Short:   "Personal double-entry ledger with monthly budgets",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&dir, "dir", ".", "bahtbuddy data directory")

	rootCmd.AddCommand(newInitCommand(&dir))
	rootCmd.AddCommand(newAccountsCommand(&dir))
	rootCmd.AddCommand(newTxnCommand(&dir))
	rootCmd.AddCommand(newBudgetCommand(&dir))
	rootCmd.AddCommand(newLockCommand(&dir))
	rootCmd.AddCommand(newUnlockCommand(&dir))
	rootCmd.AddCommand(newLockedCommand(&dir))

	return rootCmd
}
