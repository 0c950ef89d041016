package commands_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/books/internal/accounts"
	"github.com/cleared-dev/books/internal/commands"
	"github.com/cleared-dev/books/internal/config"
	"github.com/cleared-dev/books/internal/journal"
	"github.com/cleared-dev/books/internal/model"
	"github.com/cleared-dev/books/internal/workspace"
)

func runBooks(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := commands.NewRootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

// initBooks creates books in a temp dir with auto-commit off.
func initBooks(t *testing.T, extra ...string) string {
	t.Helper()
	t.Setenv(config.EnvAutoCommit, "false")
	dir := t.TempDir()
	args := append([]string{"init", dir, "--name", "Emerald Tech Solutions Ltd"}, extra...)
	_, err := runBooks(t, args...)
	require.NoError(t, err)
	return dir
}

func reportJSON(t *testing.T, dir, name string, v any) {
	t.Helper()
	out, err := runBooks(t, "-C", dir, "report", name, "--json")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), v))
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(want).Equal(got), "want %s, got %s", want, got)
}

func TestInit_CreatesStructure(t *testing.T) {
	dir := initBooks(t)

	for _, d := range []string{"accounts", "logs", "import", filepath.Join("import", "processed")} {
		info, err := os.Stat(filepath.Join(dir, d))
		require.NoError(t, err, "directory %s should exist", d)
		assert.True(t, info.IsDir(), "%s should be a directory", d)
	}
	for _, f := range []string{config.FileName, "books.json", workspace.ChartPath, ".gitignore", filepath.Join("import", ".gitkeep")} {
		_, err := os.Stat(filepath.Join(dir, f))
		assert.NoError(t, err, "file %s should exist", f)
	}
}

func TestInit_Config(t *testing.T) {
	dir := initBooks(t)

	data, err := os.ReadFile(filepath.Join(dir, config.FileName))
	require.NoError(t, err)
	contents := string(data)
	assert.Contains(t, contents, "name: Emerald Tech Solutions Ltd")
	assert.Contains(t, contents, "entity_type: ie_ltd")
}

func TestInit_Accounts(t *testing.T) {
	dir := initBooks(t)

	chart, err := accounts.LoadChart(filepath.Join(dir, workspace.ChartPath))
	require.NoError(t, err)
	assert.Equal(t, accounts.DefaultChart("ie_ltd"), chart)
}

func TestInit_RefusesExisting(t *testing.T) {
	dir := initBooks(t)
	_, err := runBooks(t, "init", dir, "--name", "Again")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestInit_RequiresName(t *testing.T) {
	_, err := runBooks(t, "init", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name")
}

func TestOpen_NotInitialized(t *testing.T) {
	_, err := runBooks(t, "-C", t.TempDir(), "journal", "list")
	assert.ErrorIs(t, err, workspace.ErrNotInitialized)
}

func TestPost_Invoice(t *testing.T) {
	dir := initBooks(t)

	out, err := runBooks(t, "-C", dir, "post", "invoice",
		"--amount", "1230", "--vat", "vat_23", "--date", "2026-03-02", "--description", "Web development")
	require.NoError(t, err)
	assert.Contains(t, out, "INV-2026-001")
	assert.Contains(t, out, "1,230.00")

	out, err = runBooks(t, "-C", dir, "balance", "1100")
	require.NoError(t, err)
	assert.Contains(t, out, "Accounts Receivable: 1,230.00")

	out, err = runBooks(t, "-C", dir, "balance", "acc_2100")
	require.NoError(t, err)
	assert.Contains(t, out, "230.00")

	out, err = runBooks(t, "-C", dir, "balance", "acc_4000", "--raw")
	require.NoError(t, err)
	assert.Contains(t, out, "-1,000.00")

	var vat struct {
		T1 decimal.Decimal `json:"t1"`
		T2 decimal.Decimal `json:"t2"`
		T3 decimal.Decimal `json:"t3"`
	}
	reportJSON(t, dir, "vat", &vat)
	assertDecimal(t, "230", vat.T1)
	assertDecimal(t, "0", vat.T2)
	assertDecimal(t, "230", vat.T3)
}

func TestPost_ReferencesIncrement(t *testing.T) {
	dir := initBooks(t)

	for _, want := range []string{"EXP-2026-001", "EXP-2026-002"} {
		out, err := runBooks(t, "-C", dir, "post", "expense",
			"--amount", "113.50", "--vat", "vat_135", "--account", "6200", "--date", "2026-01-05", "--description", "ESB")
		require.NoError(t, err)
		assert.Contains(t, out, want)
	}

	out, err := runBooks(t, "-C", dir, "balance", "acc_6200")
	require.NoError(t, err)
	assert.Contains(t, out, "200.00")
}

func TestPost_DryRun(t *testing.T) {
	dir := initBooks(t)

	out, err := runBooks(t, "-C", dir, "post", "payment", "--amount", "500", "--description", "Customer paid", "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "Dry run")

	out, err = runBooks(t, "-C", dir, "journal", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No transactions yet")
}

func TestPost_PayrollWarnsOnMismatch(t *testing.T) {
	dir := initBooks(t)

	out, err := runBooks(t, "-C", dir, "post", "payroll",
		"--amount", "4800", "--employer-prsi", "550", "--net-pay", "3300",
		"--paye", "900", "--usc", "200", "--employee-prsi", "100",
		"--date", "2026-03-31", "--description", "March payroll")
	require.NoError(t, err)
	assert.Contains(t, out, "do not match")

	out, err = runBooks(t, "-C", dir, "balance", "acc_2200")
	require.NoError(t, err)
	assert.Contains(t, out, "2,050.00")
}

func TestPost_Errors(t *testing.T) {
	dir := initBooks(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown kind", []string{"post", "refund", "--amount", "1", "--description", "x"}, "refund"},
		{"zero amount", []string{"post", "payment", "--amount", "0", "--description", "x"}, "amount"},
		{"bad amount", []string{"post", "payment", "--amount", "lots", "--description", "x"}, "amount"},
		{"bad date", []string{"post", "payment", "--amount", "1", "--date", "31/03/2026", "--description", "x"}, "date"},
		{"missing vat", []string{"post", "invoice", "--amount", "100", "--description", "x"}, "VAT"},
		{"unknown account", []string{"post", "expense", "--amount", "10", "--vat", "vat_0", "--account", "9999", "--description", "x"}, "9999"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runBooks(t, append([]string{"-C", dir}, tt.args...)...)
			require.Error(t, err)
			assert.Contains(t, strings.ToLower(err.Error()), strings.ToLower(tt.want))
		})
	}

	out, err := runBooks(t, "-C", dir, "journal", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No transactions yet")
}

func TestPost_TypedErrors(t *testing.T) {
	dir := initBooks(t)

	_, err := runBooks(t, "-C", dir, "post", "payment", "--amount=-5", "--description", "x")
	var ve *model.ValidationError
	require.True(t, errors.As(err, &ve), "got %v", err)
	assert.Equal(t, "amount", ve.Field)

	_, err = runBooks(t, "-C", dir, "post", "expense", "--amount", "10", "--vat", "vat_99", "--description", "x")
	var ue *model.UnknownVatCodeError
	require.True(t, errors.As(err, &ue), "got %v", err)
	assert.Equal(t, "vat_99", ue.VatCodeID)
}

func writeJournalCSV(t *testing.T, rows ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "journal.csv")
	content := journal.Header + "\n" + strings.Join(rows, "\n") + "\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestJournalAdd(t *testing.T) {
	dir := initBooks(t)
	path := writeJournalCSV(t,
		"j1,2026-01-01,SC-1,,Share capital issued,,3000,,100,,,",
		"j1,2026-01-01,SC-1,,Share capital issued,,acc_1000,100,,,,",
	)

	out, err := runBooks(t, "-C", dir, "journal", "add", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Posted 1 transaction(s)")

	w, err := workspace.Open(context.Background(), dir)
	require.NoError(t, err)
	defer w.Close()

	txns := w.Store.Transactions()
	require.Len(t, txns, 1)
	tx := txns[0]
	assert.Equal(t, model.SourceManual, tx.Source)
	assert.NotEqual(t, "j1", tx.ID)
	assert.Equal(t, "acc_3000", tx.Lines[0].AccountID)
	for _, l := range tx.Lines {
		assert.Equal(t, tx.ID, l.TransactionID)
		assert.NotEmpty(t, l.ID)
	}
}

func TestJournalAdd_RejectsUnbalanced(t *testing.T) {
	dir := initBooks(t)
	path := writeJournalCSV(t,
		"j1,2026-01-01,,,Broken,,acc_3000,,100,,,",
		"j1,2026-01-01,,,Broken,,acc_1000,90,,,,",
	)

	_, err := runBooks(t, "-C", dir, "journal", "add", path)
	var ve *model.ValidationError
	require.True(t, errors.As(err, &ve), "got %v", err)
}

func TestJournalExportAndShow(t *testing.T) {
	dir := initBooks(t, "--demo")

	exportPath := filepath.Join(t.TempDir(), "journal.csv")
	_, err := runBooks(t, "-C", dir, "journal", "export", exportPath)
	require.NoError(t, err)

	f, err := os.Open(exportPath)
	require.NoError(t, err)
	defer f.Close()
	exported, err := journal.ReadTransactions(f)
	require.NoError(t, err)
	require.Len(t, exported, 5)
	assert.False(t, exported[0].Date.After(exported[4].Date), "export should be oldest first")

	out, err := runBooks(t, "-C", dir, "journal", "show", exported[0].ID)
	require.NoError(t, err)
	assert.Contains(t, out, exported[0].Description)

	_, err = runBooks(t, "-C", dir, "journal", "show", "tx_missing")
	var nf *model.NotFoundError
	require.True(t, errors.As(err, &nf), "got %v", err)
}

func TestAccountsRenameAndExport(t *testing.T) {
	dir := initBooks(t)

	_, err := runBooks(t, "-C", dir, "accounts", "rename", "1000", "AIB Current Account")
	require.NoError(t, err)

	out, err := runBooks(t, "-C", dir, "accounts", "export")
	require.NoError(t, err)
	chart, err := accounts.ReadAccounts(strings.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, "AIB Current Account", chart[0].Name)

	saved, err := accounts.LoadChart(filepath.Join(dir, workspace.ChartPath))
	require.NoError(t, err)
	assert.Equal(t, "AIB Current Account", saved[0].Name)

	out, err = runBooks(t, "-C", dir, "accounts", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "AIB Current Account")

	_, err = runBooks(t, "-C", dir, "accounts", "rename", "acc_missing", "x")
	var nf *model.NotFoundError
	require.True(t, errors.As(err, &nf), "got %v", err)
}

func TestReport_DemoDashboard(t *testing.T) {
	dir := initBooks(t, "--demo")

	var dash struct {
		BankBalance  decimal.Decimal `json:"bankBalance"`
		DirectorLoan decimal.Decimal `json:"directorLoan"`
		Overdrawn    bool            `json:"overdrawn"`
	}
	reportJSON(t, dir, "dashboard", &dash)
	assertDecimal(t, "10730", dash.BankBalance)
	assertDecimal(t, "500", dash.DirectorLoan)
	assert.True(t, dash.Overdrawn)

	var bs struct {
		BalanceCheck decimal.Decimal `json:"balanceCheck"`
	}
	reportJSON(t, dir, "bs", &bs)
	assertDecimal(t, "0", bs.BalanceCheck)

	for _, name := range []string{"pl", "bs", "tb", "vat", "dashboard", "all"} {
		out, err := runBooks(t, "-C", dir, "report", name)
		require.NoError(t, err, name)
		assert.NotEmpty(t, out, name)
	}
}

func TestImport(t *testing.T) {
	dir := initBooks(t)

	src, err := os.ReadFile(filepath.Join("..", "importer", "testdata", "chase_checking.csv"))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "import", "chase.csv"), src, 0o644))

	out, err := runBooks(t, "-C", dir, "import")
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 7 transaction(s)")

	_, err = os.Stat(filepath.Join(dir, "import", "processed", "chase.csv"))
	assert.NoError(t, err)

	out, err = runBooks(t, "-C", dir, "balance", "acc_1000")
	require.NoError(t, err)
	assert.Contains(t, out, "3,300.60")

	// Importing the same statement again posts nothing.
	out, err = runBooks(t, "-C", dir, "import", filepath.Join(dir, "import", "processed", "chase.csv"))
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 0 transaction(s), skipped 7")

	w, err := workspace.Open(context.Background(), dir)
	require.NoError(t, err)
	defer w.Close()
	assert.Equal(t, 7, w.Store.Len())
	for _, tx := range w.Store.Transactions() {
		assert.Equal(t, model.SourceImport, tx.Source)
	}
}

func TestImport_BankAccountFromFileName(t *testing.T) {
	dir := initBooks(t)

	cfgPath := filepath.Join(dir, config.FileName)
	cfg, err := config.Load(cfgPath)
	require.NoError(t, err)
	cfg.BankAccounts = []config.BankAccount{{Name: "Cash account", LastFour: "1010", AccountID: "acc_1010"}}
	require.NoError(t, config.Save(cfgPath, cfg))

	src, err := os.ReadFile(filepath.Join("..", "importer", "testdata", "chase_checking.csv"))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "import", "Chase1010_Activity_20260131.CSV"), src, 0o644))

	_, err = runBooks(t, "-C", dir, "import")
	require.NoError(t, err)

	out, err := runBooks(t, "-C", dir, "balance", "acc_1010")
	require.NoError(t, err)
	assert.Contains(t, out, "3,300.60")

	out, err = runBooks(t, "-C", dir, "balance", "acc_1000")
	require.NoError(t, err)
	assert.Contains(t, out, ": 0.00")
}

func TestPost_BankOverride(t *testing.T) {
	dir := initBooks(t)

	_, err := runBooks(t, "-C", dir, "post", "payment", "--amount", "75", "--bank", "1010", "--description", "Paid in cash")
	require.NoError(t, err)

	out, err := runBooks(t, "-C", dir, "balance", "acc_1010")
	require.NoError(t, err)
	assert.Contains(t, out, "75.00")
}

func TestPost_VatRequiredForVatBearingKinds(t *testing.T) {
	dir := initBooks(t)

	for _, kind := range []string{"invoice", "bill", "expense", "dla_spend", "asset_purchase"} {
		_, err := runBooks(t, "-C", dir, "post", kind, "--amount", "100", "--description", "x")
		var verr *model.ValidationError
		require.ErrorAs(t, err, &verr, kind)
		assert.Equal(t, "vat_code", verr.Field, kind)
	}

	_, err := runBooks(t, "-C", dir, "post", "payment", "--amount", "100", "--description", "x")
	require.NoError(t, err, "non-VAT kinds need no --vat")
}

func TestBackends(t *testing.T) {
	for _, backend := range []string{"file", "bolt", "sqlite"} {
		t.Run(backend, func(t *testing.T) {
			dir := initBooks(t, "--backend", backend)

			_, err := runBooks(t, "-C", dir, "post", "dla_withdraw", "--amount", "250", "--description", "Director drawing")
			require.NoError(t, err)

			out, err := runBooks(t, "-C", dir, "balance", "acc_3200", "--raw")
			require.NoError(t, err)
			assert.Contains(t, out, "250.00")
			assert.NotContains(t, out, "-250.00")
		})
	}
}

func TestLog(t *testing.T) {
	dir := initBooks(t)
	_, err := runBooks(t, "-C", dir, "post", "payment", "--amount", "500", "--description", "Customer paid")
	require.NoError(t, err)

	out, err := runBooks(t, "-C", dir, "log")
	require.NoError(t, err)
	assert.Contains(t, out, "init")
	assert.Contains(t, out, "PAY-")
}

func TestVersion(t *testing.T) {
	out, err := runBooks(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "books dev")
}
