package commands

import (
	"fmt"
	"io"
	"os"
	"slices"
	"time"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/books/internal/id"
	"github.com/cleared-dev/books/internal/journal"
	"github.com/cleared-dev/books/internal/ledger"
	"github.com/cleared-dev/books/internal/model"
	"github.com/cleared-dev/books/internal/render"
)

func newJournalCommand(g *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Work with journal transactions directly",
	}
	cmd.AddCommand(
		newJournalAddCommand(g),
		newJournalListCommand(g),
		newJournalShowCommand(g),
		newJournalExportCommand(g),
	)
	return cmd
}

func newJournalAddCommand(g *globalFlags) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "add <journal.csv>",
		Short: "Post manual journal entries from a CSV file",
		Long: `Post manual journal entries from a CSV file with the header

  ` + journal.Header + `

Rows sharing a transaction_id form one transaction; the id only groups rows
and is replaced on posting. account_id may be an account id or code.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening journal file: %w", err)
			}
			defer f.Close()

			txns, err := journal.ReadTransactions(f)
			if err != nil {
				return err
			}
			if len(txns) == 0 {
				return fmt.Errorf("%s contains no journal lines", args[0])
			}

			w, err := openWorkspace(cmd, g)
			if err != nil {
				return err
			}
			defer w.Close()

			now := time.Now().UTC()
			for i := range txns {
				prepareManual(w.Store, &txns[i], now)
			}

			out := cmd.OutOrStdout()
			for _, tx := range txns {
				render.Journal(out, tx, accountName(w.Store))
			}
			if dryRun {
				render.Muted(out, "Dry run: nothing posted")
				return nil
			}

			msg := fmt.Sprintf("journal: add %d manual transaction(s)", len(txns))
			if _, err := w.Post(cmd.Context(), "journal", msg, txns...); err != nil {
				return err
			}
			render.Success(out, "Posted %d transaction(s)", len(txns))
			return nil
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "show the journal without posting")
	return cmd
}

// prepareManual gives a CSV-read transaction fresh ids and the Manual source,
// and resolves account codes to ids.
func prepareManual(store *ledger.Store, tx *model.Transaction, now time.Time) {
	tx.ID = id.NewTransaction()
	tx.Source = model.SourceManual
	tx.CreatedAt = now
	for i := range tx.Lines {
		l := &tx.Lines[i]
		l.ID = id.NewLine()
		l.TransactionID = tx.ID
		if acct, err := resolveAccount(store, l.AccountID); err == nil {
			l.AccountID = acct.ID
		}
	}
}

func newJournalListCommand(g *globalFlags) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := openWorkspace(cmd, g)
			if err != nil {
				return err
			}
			defer w.Close()

			txns := w.Store.Transactions()
			if limit > 0 && len(txns) > limit {
				txns = txns[:limit]
			}
			if len(txns) == 0 {
				render.Muted(cmd.OutOrStdout(), "No transactions yet")
				return nil
			}
			render.Transactions(cmd.OutOrStdout(), txns)
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "show at most n transactions")
	return cmd
}

func newJournalShowCommand(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "show <transaction id|reference>",
		Short: "Show the journal lines of a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := openWorkspace(cmd, g)
			if err != nil {
				return err
			}
			defer w.Close()

			for _, tx := range w.Store.Transactions() {
				if tx.ID == args[0] || tx.Reference == args[0] {
					render.Journal(cmd.OutOrStdout(), tx, accountName(w.Store))
					return nil
				}
			}
			return &model.NotFoundError{Kind: "transaction", ID: args[0]}
		},
	}
}

func newJournalExportCommand(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "export [file]",
		Short: "Export the journal as CSV, oldest first",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := openWorkspace(cmd, g)
			if err != nil {
				return err
			}
			defer w.Close()

			txns := w.Store.Transactions()
			slices.Reverse(txns)
			return writeExport(cmd, args, func(out io.Writer) error {
				return journal.WriteTransactions(out, txns)
			})
		},
	}
}

// writeExport writes to the file named in args, or stdout when none is given.
func writeExport(cmd *cobra.Command, args []string, write func(io.Writer) error) error {
	if len(args) == 0 {
		return write(cmd.OutOrStdout())
	}
	f, err := os.Create(args[0])
	if err != nil {
		return fmt.Errorf("creating %s: %w", args[0], err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", args[0], err)
	}
	render.Success(cmd.ErrOrStderr(), "Wrote %s", args[0])
	return nil
}
