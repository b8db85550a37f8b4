package commands

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/WinterJet2021/BahtBuddy/internal/accounts"
	"github.com/WinterJet2021/BahtBuddy/internal/model"
	"github.com/WinterJet2021/BahtBuddy/internal/validation"
)

func newAccountsCommand(dir *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "Manage the chart of accounts",
	}

	cmd.AddCommand(newAccountsListCommand(dir))
	cmd.AddCommand(newAccountsAddCommand(dir))
	cmd.AddCommand(newAccountsImportCommand(dir))
	cmd.AddCommand(newAccountsSetOpeningCommand(dir))
	cmd.AddCommand(newAccountsBalanceCommand(dir))

	return cmd
}

func newAccountsListCommand(dir *string) *cobra.Command {
	var typ string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List accounts, ordered by type then name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(*dir)
			if err != nil {
				return err
			}
			defer a.close()

			var filter *model.AccountType
			if typ != "" {
				t, err := validation.AccountType(typ)
				if err != nil {
					return err
				}
				filter = &t
			}

			all, err := a.accounts.List(filter)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tTYPE\tNAME\tOPENING")
			for _, acct := range all {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n",
					acct.ID, acct.Type, acct.Name, acct.OpeningBalance.StringFixed(2))
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&typ, "type", "", "filter by account type")

	return cmd
}

func newAccountsAddCommand(dir *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add NAME TYPE",
		Short: "Add one account",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(*dir)
			if err != nil {
				return err
			}
			defer a.close()

			acct, err := a.accounts.CreateAccount(args[0], args[1])
			if err != nil {
				return err
			}
			cmd.Printf("Added account %d: %s (%s)\n", acct.ID, acct.Name, acct.Type)
			return nil
		},
	}
	return cmd
}

func newAccountsImportCommand(dir *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Import a chart of accounts from a CSV or JSON file",
		Long: `Import a chart of accounts from FILE. A .json file must hold an array
of {"name", "type"} objects; anything else is read as CSV with a
name,type header. Bad rows are reported and skipped, not fatal.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(*dir)
			if err != nil {
				return err
			}
			defer a.close()

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening chart file: %w", err)
			}
			defer f.Close()

			var (
				rows     []accounts.Row
				readErrs []accounts.RowError
			)
			if strings.HasSuffix(strings.ToLower(args[0]), ".json") {
				rows, err = accounts.ReadRowsJSON(f)
			} else {
				rows, readErrs, err = accounts.ReadRows(f)
			}
			if err != nil {
				return err
			}

			summary, err := a.accounts.ImportChart(rows)
			badRows := append(readErrs, summary.Errors...)
			for _, re := range badRows {
				cmd.PrintErrf("skipped %s\n", re.Error())
			}
			if err != nil {
				return err
			}
			cmd.Printf("Imported %d accounts (%d already present, %d bad rows)\n",
				summary.Added, summary.Skipped, len(badRows))
			return nil
		},
	}
	return cmd
}

func newAccountsSetOpeningCommand(dir *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set-opening ID AMOUNT",
		Short: "Set an account's opening balance",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(*dir)
			if err != nil {
				return err
			}
			defer a.close()

			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			amount, err := decimal.NewFromString(args[1])
			if err != nil {
				return fmt.Errorf("amount %q is not a number", args[1])
			}

			if err := a.accounts.SetOpeningBalance(id, amount); err != nil {
				return err
			}
			cmd.Printf("Opening balance of account %d set to %s\n", id, amount.StringFixed(2))
			return nil
		},
	}
	return cmd
}

func newAccountsBalanceCommand(dir *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "balance ID",
		Short: "Show an account's derived balance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(*dir)
			if err != nil {
				return err
			}
			defer a.close()

			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			acct, err := a.accounts.Get(id)
			if err != nil {
				return err
			}
			balance, err := a.accounts.Balance(id)
			if err != nil {
				return err
			}
			cmd.Printf("%s (%s): %s %s\n", acct.Name, acct.Type, balance.StringFixed(2), a.cfg.Defaults.Currency)
			return nil
		},
	}
	return cmd
}
