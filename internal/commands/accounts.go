package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/books/internal/accounts"
	"github.com/cleared-dev/books/internal/render"
)

func newAccountsCommand(g *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "Work with the chart of accounts",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List accounts with their balances",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				w, err := openWorkspace(cmd, g)
				if err != nil {
					return err
				}
				defer w.Close()

				render.Accounts(cmd.OutOrStdout(), w.Store.Accounts(), w.Store.Engine().Balance)
				return nil
			},
		},
		&cobra.Command{
			Use:   "rename <account id|code> <name>",
			Short: "Rename an account",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				w, err := openWorkspace(cmd, g)
				if err != nil {
					return err
				}
				defer w.Close()

				acct, err := resolveAccount(w.Store, args[0])
				if err != nil {
					return err
				}
				if _, err := w.RenameAccount(cmd.Context(), acct.ID, args[1]); err != nil {
					return err
				}
				render.Success(cmd.OutOrStdout(), "Renamed %s to %s", acct.Code, args[1])
				return nil
			},
		},
		&cobra.Command{
			Use:   "export [file]",
			Short: "Export the chart of accounts as CSV",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				w, err := openWorkspace(cmd, g)
				if err != nil {
					return err
				}
				defer w.Close()

				chart := w.Store.Accounts()
				return writeExport(cmd, args, func(out io.Writer) error {
					return accounts.WriteAccounts(out, chart)
				})
			},
		},
	)
	return cmd
}

func newBalanceCommand(g *globalFlags) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "balance <account id|code>",
		Short: "Show an account balance",
		Long: `Show an account balance. By default the balance is shown in the
account's natural sign; --raw shows debits minus credits.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := openWorkspace(cmd, g)
			if err != nil {
				return err
			}
			defer w.Close()

			acct, err := resolveAccount(w.Store, args[0])
			if err != nil {
				return err
			}
			bal := w.Store.Balance(acct.ID)
			if !raw {
				bal = acct.Type.Natural(bal)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s: %s\n", acct.Code, acct.Name, render.Money(bal))
			return nil
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "show debits minus credits")
	return cmd
}
