package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/books/internal/render"
	"github.com/cleared-dev/books/internal/statement"
)

func newReportCommand(g *globalFlags) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Produce financial statements",
	}
	cmd.PersistentFlags().BoolVar(&asJSON, "json", false, "write JSON instead of a table")

	sub := func(use, short string, pick func(statement.Report) any, draw func(cmd *cobra.Command, r statement.Report)) *cobra.Command {
		return &cobra.Command{
			Use:   use,
			Short: short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				w, err := openWorkspace(cmd, g)
				if err != nil {
					return err
				}
				defer w.Close()

				r := statement.Compile(w.Store.Snapshot(), w.Config.Roles)
				if asJSON {
					enc := json.NewEncoder(cmd.OutOrStdout())
					enc.SetIndent("", "  ")
					if err := enc.Encode(pick(r)); err != nil {
						return fmt.Errorf("encoding report: %w", err)
					}
					return nil
				}
				draw(cmd, r)
				return nil
			},
		}
	}

	cmd.AddCommand(
		sub("pl", "Profit & Loss",
			func(r statement.Report) any { return r.ProfitLoss },
			func(cmd *cobra.Command, r statement.Report) {
				render.ProfitAndLoss(cmd.OutOrStdout(), r.Company.Name, r.ProfitLoss)
			}),
		sub("bs", "Balance Sheet",
			func(r statement.Report) any { return r.BalanceSheet },
			func(cmd *cobra.Command, r statement.Report) {
				render.BalanceSheet(cmd.OutOrStdout(), r.Company.Name, r.BalanceSheet)
			}),
		sub("tb", "Trial balance",
			func(r statement.Report) any { return r.TrialBalance },
			func(cmd *cobra.Command, r statement.Report) {
				render.TrialBalance(cmd.OutOrStdout(), r.Company.Name, r.TrialBalance)
			}),
		sub("vat", "VAT return (T1, T2, T3)",
			func(r statement.Report) any { return r.VAT },
			func(cmd *cobra.Command, r statement.Report) {
				render.VATReturn(cmd.OutOrStdout(), r.Company.Name, r.VAT)
			}),
		sub("dashboard", "Headline figures and recent activity",
			func(r statement.Report) any { return r.Dashboard },
			func(cmd *cobra.Command, r statement.Report) {
				render.Dashboard(cmd.OutOrStdout(), r.Company.Name, r.Dashboard)
			}),
		sub("all", "Every statement",
			func(r statement.Report) any { return r },
			func(cmd *cobra.Command, r statement.Report) {
				out := cmd.OutOrStdout()
				render.ProfitAndLoss(out, r.Company.Name, r.ProfitLoss)
				fmt.Fprintln(out)
				render.BalanceSheet(out, r.Company.Name, r.BalanceSheet)
				fmt.Fprintln(out)
				render.VATReturn(out, r.Company.Name, r.VAT)
			}),
	)
	return cmd
}
