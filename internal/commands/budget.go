package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/WinterJet2021/BahtBuddy/internal/period"
)

func newBudgetCommand(dir *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "budget",
		Short: "Set monthly budgets and report against actuals",
	}

	cmd.AddCommand(newBudgetSetCommand(dir))
	cmd.AddCommand(newBudgetCopyCommand(dir))
	cmd.AddCommand(newBudgetListCommand(dir))
	cmd.AddCommand(newBudgetReportCommand(dir))

	return cmd
}

func newBudgetSetCommand(dir *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set MONTH CATEGORY AMOUNT",
		Short: "Set the budget for one category in one month",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(*dir)
			if err != nil {
				return err
			}
			defer a.close()

			m, err := period.Parse(args[0])
			if err != nil {
				return err
			}
			amount, err := decimal.NewFromString(args[2])
			if err != nil {
				return fmt.Errorf("amount %q is not a number", args[2])
			}
			if err := a.budget.Set(args[1], m, amount); err != nil {
				return err
			}
			cmd.Printf("Budget for %s in %s set to %s\n", args[1], m, amount.StringFixed(2))
			return nil
		},
	}
	return cmd
}

func newBudgetCopyCommand(dir *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "copy FROM_MONTH TO_MONTH",
		Short: "Copy one month's budgets into another, keeping existing rows",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(*dir)
			if err != nil {
				return err
			}
			defer a.close()

			from, err := period.Parse(args[0])
			if err != nil {
				return err
			}
			to, err := period.Parse(args[1])
			if err != nil {
				return err
			}
			res, err := a.budget.CopyForward(from, to)
			if err != nil {
				return err
			}
			cmd.Printf("Copied %d budgets from %s to %s (%d already set)\n",
				res.Copied, from, to, res.Skipped)
			return nil
		},
	}
	return cmd
}

func newBudgetListCommand(dir *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list MONTH",
		Short: "List the budgets of one month",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(*dir)
			if err != nil {
				return err
			}
			defer a.close()

			m, err := period.Parse(args[0])
			if err != nil {
				return err
			}
			budgets, err := a.budget.List(m)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "CATEGORY\tAMOUNT")
			for _, b := range budgets {
				fmt.Fprintf(tw, "%s\t%s\n", b.Category, b.Amount.StringFixed(2))
			}
			return tw.Flush()
		},
	}
	return cmd
}

func newBudgetReportCommand(dir *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report MONTH",
		Short: "Show budget versus actual spending for one month",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(*dir)
			if err != nil {
				return err
			}
			defer a.close()

			m, err := period.Parse(args[0])
			if err != nil {
				return err
			}
			rows, err := a.budget.Report(m)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "CATEGORY\tBUDGETED\tACTUAL\tVARIANCE\t% OF BUDGET")
			for _, r := range rows {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
					r.Category, r.Budgeted.StringFixed(2), r.Actual.StringFixed(2),
					r.Variance.StringFixed(2), r.PctOfBudget)
			}
			return tw.Flush()
		},
	}
	return cmd
}
