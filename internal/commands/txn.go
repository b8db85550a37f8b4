package commands

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/WinterJet2021/BahtBuddy/internal/ledger"
	"github.com/WinterJet2021/BahtBuddy/internal/validation"
)

func newTxnCommand(dir *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "txn",
		Short: "Post, change, and search transactions",
	}

	cmd.AddCommand(newTxnAddCommand(dir))
	cmd.AddCommand(newTxnModifyCommand(dir))
	cmd.AddCommand(newTxnDeleteCommand(dir))
	cmd.AddCommand(newTxnSearchCommand(dir))
	cmd.AddCommand(newTxnReverseCommand(dir))
	cmd.AddCommand(newTxnExportCommand(dir))

	return cmd
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a numeric id", s)
	}
	return id, nil
}

func newTxnAddCommand(dir *string) *cobra.Command {
	var notes string

	cmd := &cobra.Command{
		Use:   "add DATE AMOUNT DEBIT_ID CREDIT_ID",
		Short: "Post a double-entry transaction",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(*dir)
			if err != nil {
				return err
			}
			defer a.close()

			amount, err := decimal.NewFromString(args[1])
			if err != nil {
				return fmt.Errorf("amount %q is not a number", args[1])
			}
			debitID, err := parseID(args[2])
			if err != nil {
				return err
			}
			creditID, err := parseID(args[3])
			if err != nil {
				return err
			}

			id, err := a.ledger.Add(ledger.PostParams{
				Date:     args[0],
				Amount:   amount,
				DebitID:  debitID,
				CreditID: creditID,
				Notes:    notes,
			})
			if err != nil {
				return err
			}
			cmd.Printf("Posted transaction %d\n", id)
			return nil
		},
	}

	cmd.Flags().StringVar(&notes, "notes", "", "free-form notes")

	return cmd
}

func newTxnModifyCommand(dir *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "modify ID FIELD=VALUE...",
		Short: "Modify fields of a posted transaction",
		Long: `Modify a posted transaction. Fields are given as FIELD=VALUE pairs;
the recognized fields are date, amount, debit, credit, and notes.`,
		Args: cobra.MinimumNArgs(2),
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

			fields := make(map[string]string, len(args)-1)
			for _, arg := range args[1:] {
				key, value, ok := strings.Cut(arg, "=")
				if !ok {
					return fmt.Errorf("%q is not a FIELD=VALUE pair", arg)
				}
				fields[key] = value
			}

			u, err := ledger.ParseUpdate(fields)
			if err != nil {
				return err
			}
			if err := a.ledger.Modify(id, u); err != nil {
				return err
			}
			cmd.Printf("Modified transaction %d\n", id)
			return nil
		},
	}
	return cmd
}

func newTxnDeleteCommand(dir *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a posted transaction",
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
			if err := a.ledger.Delete(id); err != nil {
				return err
			}
			cmd.Printf("Deleted transaction %d\n", id)
			return nil
		},
	}
	return cmd
}

func newTxnReverseCommand(dir *string) *cobra.Command {
	var notes string

	cmd := &cobra.Command{
		Use:   "reverse ID DATE",
		Short: "Post the reversal of a transaction on a new date",
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
			revID, err := a.ledger.Reverse(id, args[1], notes)
			if err != nil {
				return err
			}
			cmd.Printf("Posted reversal %d of transaction %d\n", revID, id)
			return nil
		},
	}

	cmd.Flags().StringVar(&notes, "notes", "", "notes for the reversal entry")

	return cmd
}

func searchFlags(cmd *cobra.Command, q *ledger.Query) {
	cmd.Flags().StringVar(&q.Text, "text", "", "match against notes and account names")
	cmd.Flags().Int64Var(&q.AccountID, "account", 0, "match either side of the posting")
	cmd.Flags().Int64Var(&q.DebitID, "debit", 0, "match the debit account")
	cmd.Flags().Int64Var(&q.CreditID, "credit", 0, "match the credit account")
	cmd.Flags().StringVar(&q.From, "from", "", "earliest date, inclusive (YYYY-MM-DD)")
	cmd.Flags().StringVar(&q.To, "to", "", "latest date, inclusive (YYYY-MM-DD)")
	cmd.Flags().IntVar(&q.Limit, "limit", 0, "maximum rows (0 uses the default)")
	cmd.Flags().IntVar(&q.Offset, "offset", 0, "rows to skip")
}

func newTxnSearchCommand(dir *string) *cobra.Command {
	var q ledger.Query

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search transactions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(*dir)
			if err != nil {
				return err
			}
			defer a.close()

			if q.Limit == 0 {
				q.Limit = a.cfg.Defaults.SearchLimit
			}
			txns, err := a.ledger.Search(q)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tDATE\tAMOUNT\tDEBIT\tCREDIT\tNOTES")
			for _, txn := range txns {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%d\t%s\n",
					txn.ID, txn.Date.Format(validation.DateLayout),
					txn.Amount.StringFixed(2), txn.DebitID, txn.CreditID, txn.Notes)
			}
			return tw.Flush()
		},
	}

	searchFlags(cmd, &q)

	return cmd
}

func newTxnExportCommand(dir *string) *cobra.Command {
	var (
		q   ledger.Query
		out string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export matching transactions as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(*dir)
			if err != nil {
				return err
			}
			defer a.close()

			w := cmd.OutOrStdout()
			if out != "" {
				f, err := os.Create(out)
				if err != nil {
					return fmt.Errorf("creating export file: %w", err)
				}
				defer f.Close()
				w = f
			}
			return a.ledger.ExportCSV(w, q)
		},
	}

	searchFlags(cmd, &q)
	cmd.Flags().StringVarP(&out, "output", "o", "", "write to a file instead of stdout")

	return cmd
}
