package commands

import (
	"github.com/spf13/cobra"

	"github.com/WinterJet2021/BahtBuddy/internal/period"
)

func newLockCommand(dir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "lock MONTH",
		Short: "Lock a month against modification and deletion",
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
			if err := a.ledger.Lock(m); err != nil {
				return err
			}
			cmd.Printf("Locked %s\n", m)
			return nil
		},
	}
}

func newUnlockCommand(dir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "unlock MONTH",
		Short: "Reopen a locked month",
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
			if err := a.ledger.Unlock(m); err != nil {
				return err
			}
			cmd.Printf("Unlocked %s\n", m)
			return nil
		},
	}
}

func newLockedCommand(dir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "locked MONTH",
		Short: "Show whether a month is locked",
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
			locked, err := a.ledger.IsLocked(m)
			if err != nil {
				return err
			}
			if locked {
				cmd.Printf("%s is locked\n", m)
			} else {
				cmd.Printf("%s is open\n", m)
			}
			return nil
		},
	}
}
