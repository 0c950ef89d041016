package commands

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/books/internal/importer"
	"github.com/cleared-dev/books/internal/model"
	"github.com/cleared-dev/books/internal/render"
)

func newImportCommand(g *globalFlags) *cobra.Command {
	var format string
	var bank string
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import [bank.csv...]",
		Short: "Import bank statement lines as transactions",
		Long: `Import bank statement lines as transactions. With no arguments, every CSV
in the import/ directory is imported and then moved to import/processed/.

Lines whose reference is already in the ledger are skipped, so importing the
same statement twice is harmless.

Lines are posted to the bank account in books.yaml whose last_four appears
in the file name (e.g. Chase1234_Activity.CSV), else to the bank role.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := openWorkspace(cmd, g)
			if err != nil {
				return err
			}
			defer w.Close()

			explicit := format != ""
			if !explicit {
				format = w.Config.Import.Format
			}

			// Files picked up from import/ are moved once posted.
			var processed []string
			paths := args
			if len(paths) == 0 {
				files, err := importer.Scan(w.Dir)
				if err != nil {
					return err
				}
				for _, f := range files {
					paths = append(paths, f.Path)
					processed = append(processed, f.Name)
				}
			}
			out := cmd.OutOrStdout()
			if len(paths) == 0 {
				render.Muted(out, "Nothing to import")
				return nil
			}

			bankID := ""
			if bank != "" {
				acct, err := resolveAccount(w.Store, bank)
				if err != nil {
					return err
				}
				bankID = acct.ID
			}

			reg := importer.DefaultRegistry()
			var bts []model.BankTransaction
			for _, path := range paths {
				var p importer.Parser
				if !explicit {
					if p, err = reg.Detect(path); err != nil {
						return err
					}
				}
				if p == nil {
					p = reg.Get(format)
				}
				if p == nil {
					return fmt.Errorf("%s: unknown bank format %q", filepath.Base(path), format)
				}
				lines, err := importer.ParseFile(p, path)
				if err != nil {
					return err
				}
				accountID := bankID
				if ba, ok := w.Config.BankAccountForFile(path); ok && accountID == "" {
					accountID = ba.AccountID
				}
				for i := range lines {
					lines[i].AccountID = accountID
				}
				slog.Debug("parsed bank file", "file", filepath.Base(path), "format", p.Format(), "lines", len(lines), "bank", accountID)
				bts = append(bts, lines...)
			}

			cat := importer.NewCategorizer(w.Compiler(), w.Config.Import)
			res, err := cat.Plan(w.Store.Transactions(), bts)
			if err != nil {
				return err
			}

			if len(res.New) > 0 {
				render.Transactions(out, res.New)
			}
			if dryRun {
				render.Muted(out, "Dry run: %d new, %d already imported", len(res.New), len(res.Skipped))
				return nil
			}

			if len(res.New) > 0 {
				msg := fmt.Sprintf("import: %d bank transaction(s)", len(res.New))
				if _, err := w.Post(cmd.Context(), "import", msg, res.New...); err != nil {
					return err
				}
			}
			for _, name := range processed {
				if err := importer.MarkProcessed(w.Dir, name); err != nil {
					return err
				}
			}
			render.Success(out, "Imported %d transaction(s), skipped %d already in the ledger", len(res.New), len(res.Skipped))
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "bank format when it cannot be detected (default from books.yaml)")
	cmd.Flags().StringVar(&bank, "bank", "", "bank account id or code for every file (overrides bank_accounts)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "show what would be imported without posting")
	return cmd
}
