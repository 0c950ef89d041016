package persist

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/books/internal/ledger"
	"github.com/cleared-dev/books/internal/model"
	"github.com/cleared-dev/books/internal/testutil"
)

func openAll(t *testing.T) map[Backend]Persister {
	t.Helper()
	dir := t.TempDir()
	out := make(map[Backend]Persister)
	for _, b := range Backends() {
		p, err := Open(b, filepath.Join(dir, "data", b.DefaultPath()))
		require.NoError(t, err, b)
		t.Cleanup(func() { p.Close() })
		out[b] = p
	}
	return out
}

func TestLoad_Absent(t *testing.T) {
	for b, p := range openAll(t) {
		snap, err := p.Load(context.Background())
		require.NoError(t, err, b)
		assert.Nil(t, snap, b)
	}
}

func TestRoundTrip(t *testing.T) {
	ctx := context.Background()
	want := testutil.PalletCoSnapshot()

	for b, p := range openAll(t) {
		t.Run(string(b), func(t *testing.T) {
			require.NoError(t, p.Save(ctx, &want))

			got, err := p.Load(ctx)
			require.NoError(t, err)
			require.NotNil(t, got)

			wantJSON, err := encode(&want)
			require.NoError(t, err)
			gotJSON, err := encode(got)
			require.NoError(t, err)
			assert.JSONEq(t, string(wantJSON), string(gotJSON))

			assert.Equal(t, model.SnapshotVersion, got.Version)
			assert.Equal(t, want.Company, got.Company)
			assert.Equal(t, want.Accounts, got.Accounts)
			require.Len(t, got.Transactions, len(want.Transactions))
			assert.Equal(t, want.Transactions[0].ID, got.Transactions[0].ID)

			store, err := ledger.New(*got)
			require.NoError(t, err)
			assert.True(t, store.Balance("acc_bank").Equal(ledger.Balance(testutil.PalletCoTransactions(), "acc_bank")))
		})
	}
}

func TestSave_Overwrites(t *testing.T) {
	ctx := context.Background()

	for b, p := range openAll(t) {
		t.Run(string(b), func(t *testing.T) {
			first := testutil.PalletCoSnapshot()
			require.NoError(t, p.Save(ctx, &first))

			second := testutil.PalletCoSnapshot()
			second.Company.Name = "Renamed Pallets Ltd"
			second.Transactions = second.Transactions[:3]
			require.NoError(t, p.Save(ctx, &second))

			got, err := p.Load(ctx)
			require.NoError(t, err)
			assert.Equal(t, "Renamed Pallets Ltd", got.Company.Name)
			assert.Len(t, got.Transactions, 3)
		})
	}
}

func TestSave_DoesNotMutateInput(t *testing.T) {
	snap := testutil.PalletCoSnapshot()
	snap.Version = 0
	p := NewFileStore(filepath.Join(t.TempDir(), "books.json"))
	require.NoError(t, p.Save(context.Background(), &snap))
	assert.Equal(t, 0, snap.Version)
}

func TestSave_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	snap := testutil.PalletCoSnapshot()
	for b, p := range openAll(t) {
		assert.Error(t, p.Save(ctx, &snap), b)
	}
}

func TestFileStore_NewerVersionRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "books.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"version": 99, "accounts": []}`), 0o644))

	_, err := NewFileStore(path).Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "newer")
}

func TestFileStore_MissingVersionTreatedAsCurrent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "books.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"company": {"name": "Old Ltd"}}`), 0o644))

	snap, err := NewFileStore(path).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.SnapshotVersion, snap.Version)
	assert.Equal(t, "Old Ltd", snap.Company.Name)
}

func TestFileStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "books.json")
	require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0o644))

	_, err := NewFileStore(path).Load(context.Background())
	assert.ErrorContains(t, err, "decoding snapshot")
}

func TestFileStore_NoTempFilesLeft(t *testing.T) {
	dir := t.TempDir()
	p := NewFileStore(filepath.Join(dir, "books.json"))
	snap := testutil.PalletCoSnapshot()
	require.NoError(t, p.Save(context.Background(), &snap))
	require.NoError(t, p.Save(context.Background(), &snap))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "books.json", entries[0].Name())
}

func TestOpen_UnknownBackend(t *testing.T) {
	_, err := Open("postgres", "x")
	assert.ErrorContains(t, err, "unknown storage backend")
}

func TestBolt_ReopenKeepsSnapshot(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "books.db")

	p, err := OpenBolt(path)
	require.NoError(t, err)
	snap := testutil.PalletCoSnapshot()
	require.NoError(t, p.Save(ctx, &snap))
	require.NoError(t, p.Close())

	p, err = OpenBolt(path)
	require.NoError(t, err)
	defer p.Close()
	got, err := p.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, snap.Company.Name, got.Company.Name)
}

func TestSQLite_ReopenKeepsSnapshot(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "books.sqlite")

	p, err := OpenSQLite(path)
	require.NoError(t, err)
	snap := testutil.PalletCoSnapshot()
	require.NoError(t, p.Save(ctx, &snap))
	require.NoError(t, p.Close())

	p, err = OpenSQLite(path)
	require.NoError(t, err)
	defer p.Close()

	var rows int
	require.NoError(t, p.db.QueryRow(`SELECT COUNT(*) FROM snapshots`).Scan(&rows))
	assert.Equal(t, 1, rows)

	got, err := p.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, got.Transactions, len(snap.Transactions))
}
