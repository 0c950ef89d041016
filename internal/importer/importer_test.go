package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/books/internal/model"
)

const chaseHeader = "Details,Posting Date,Description,Amount,Type,Balance,Check or Slip #\n"

func parseFixture(t *testing.T) []model.BankTransaction {
	t.Helper()
	txns, err := ParseFile(&ChaseParser{}, filepath.Join("testdata", "chase_checking.csv"))
	require.NoError(t, err)
	return txns
}

func TestChaseParser_Parse(t *testing.T) {
	txns := parseFixture(t)
	assert.Len(t, txns, 7)

	// First: GITHUB subscription
	assert.Equal(t, "GITHUB *PRO SUBSCRIPTION", txns[0].Description)
	assert.Equal(t, "-4.00", txns[0].Amount.StringFixed(2))
	assert.Equal(t, "ACH_DEBIT", txns[0].Type)
	assert.Equal(t, 2026, txns[0].Date.Year())
	assert.Equal(t, 1, int(txns[0].Date.Month()))
	assert.Equal(t, 3, txns[0].Date.Day())

	// Fourth: ACME income (positive)
	assert.Equal(t, "ACME CONSULTING INVOICE 1042", txns[3].Description)
	assert.True(t, txns[3].Amount.IsPositive())
	assert.Equal(t, "3500.00", txns[3].Amount.StringFixed(2))

	last := txns[6]
	assert.Equal(t, 22, last.Date.Day())
}

func TestChaseParser_NegativePositiveAmounts(t *testing.T) {
	for _, txn := range parseFixture(t) {
		if txn.Description == "ACME CONSULTING INVOICE 1042" {
			assert.True(t, txn.Amount.IsPositive())
		} else {
			assert.True(t, txn.Amount.IsNegative(), "expected negative for %s", txn.Description)
		}
	}
}

func TestChaseParser_EmptyFile(t *testing.T) {
	p := &ChaseParser{}
	txns, err := p.Parse(strings.NewReader(chaseHeader))
	require.NoError(t, err)
	assert.Nil(t, txns)
}

func TestChaseParser_BadDate(t *testing.T) {
	csv := chaseHeader + "DEBIT,NOTADATE,desc,-4.00,ACH_DEBIT,100.00,\n"
	p := &ChaseParser{}
	_, err := p.Parse(strings.NewReader(csv))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "parsing date")
}

func TestChaseParser_BadAmount(t *testing.T) {
	csv := chaseHeader + "DEBIT,01/03/2026,desc,NOTANUMBER,ACH_DEBIT,100.00,\n"
	p := &ChaseParser{}
	_, err := p.Parse(strings.NewReader(csv))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "parsing amount")
}

func TestChaseParser_Reference(t *testing.T) {
	txns := parseFixture(t)

	// Reference format: chase_YYYYMMDD_<prefix>
	assert.Equal(t, "chase_20260103_GITHUBPROS", txns[0].Reference)
	assert.Equal(t, "chase_20260115_CAFENERO", txns[4].Reference)
	assert.Equal(t, "chase_20260115_CAFENERO_2", txns[5].Reference)
}

func TestChaseParser_Matches(t *testing.T) {
	p := &ChaseParser{}
	assert.True(t, p.Matches(strings.Split(strings.TrimSpace(chaseHeader), ",")))
	assert.False(t, p.Matches([]string{"Date", "Description", "Amount"}))
}

func TestRegistry_GetUnknown(t *testing.T) {
	r := NewRegistry()
	assert.Nil(t, r.Get("nonexistent"))
}

func TestRegistry_CaseInsensitive(t *testing.T) {
	r := NewRegistry()
	r.Register(&ChaseParser{})
	assert.NotNil(t, r.Get("Chase"))
	assert.NotNil(t, r.Get("CHASE"))
}

func TestRegistry_DuplicatePanics(t *testing.T) {
	r := NewRegistry()
	r.Register(&ChaseParser{})
	assert.Panics(t, func() { r.Register(&ChaseParser{}) })
}

func TestRegistry_Detect(t *testing.T) {
	r := DefaultRegistry()

	p, err := r.Detect(filepath.Join("testdata", "chase_checking.csv"))
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "chase", p.Format())

	other := filepath.Join(t.TempDir(), "other.csv")
	require.NoError(t, os.WriteFile(other, []byte("Date,Narrative,Debit,Credit\n"), 0o644))
	p, err = r.Detect(other)
	require.NoError(t, err)
	assert.Nil(t, p)

	_, err = r.Detect(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}

func TestScan_FindsCSVs(t *testing.T) {
	dir := t.TempDir()
	importDir := filepath.Join(dir, "import")
	require.NoError(t, os.MkdirAll(importDir, 0o755))

	require.NoError(t, os.WriteFile(filepath.Join(importDir, "bank.csv"), []byte("data"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(importDir, "other.txt"), []byte("data"), 0o644))

	files, err := Scan(dir)
	require.NoError(t, err)
	assert.Len(t, files, 1)
	assert.Equal(t, "bank.csv", files[0].Name)
}

func TestScan_IgnoresProcessedDir(t *testing.T) {
	dir := t.TempDir()
	processedDir := filepath.Join(dir, "import", "processed")
	require.NoError(t, os.MkdirAll(processedDir, 0o755))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "import", "new.csv"), []byte("data"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(processedDir, "old.csv"), []byte("data"), 0o644))

	files, err := Scan(dir)
	require.NoError(t, err)
	assert.Len(t, files, 1)
	assert.Equal(t, "new.csv", files[0].Name)
}

func TestScan_EmptyDir(t *testing.T) {
	files, err := Scan(t.TempDir())
	require.NoError(t, err)
	assert.Nil(t, files)
}

func TestMarkProcessed(t *testing.T) {
	dir := t.TempDir()
	importDir := filepath.Join(dir, "import")
	require.NoError(t, os.MkdirAll(importDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(importDir, "bank.csv"), []byte("data"), 0o644))

	require.NoError(t, MarkProcessed(dir, "bank.csv"))

	_, err := os.Stat(filepath.Join(importDir, "bank.csv"))
	assert.True(t, os.IsNotExist(err))

	info, err := os.Stat(filepath.Join(dir, "import", "processed", "bank.csv"))
	require.NoError(t, err)
	assert.False(t, info.IsDir())
}
