// Package workspace ties a books directory together: its config, snapshot
// storage, in-memory ledger, activity log and git history.
package workspace

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/cleared-dev/books/internal/accounts"
	"github.com/cleared-dev/books/internal/activity"
	"github.com/cleared-dev/books/internal/config"
	"github.com/cleared-dev/books/internal/gitops"
	"github.com/cleared-dev/books/internal/id"
	"github.com/cleared-dev/books/internal/intent"
	"github.com/cleared-dev/books/internal/ledger"
	"github.com/cleared-dev/books/internal/model"
	"github.com/cleared-dev/books/internal/persist"
)

// ChartPath is the exported chart of accounts, relative to the books directory.
const ChartPath = "accounts/chart-of-accounts.csv"

// ErrNotInitialized is returned by Open when dir holds no books.
var ErrNotInitialized = errors.New("no books found; run 'books init' first")

// Workspace is an open books directory.
type Workspace struct {
	Dir    string
	Config *config.Config
	Store  *ledger.Store

	persister persist.Persister
	now       func() time.Time
}

// InitOptions configures a new books directory.
type InitOptions struct {
	Name       string
	EntityType string
	Backend    string // overrides the default file backend
	ChartPath  string // CSV chart to use instead of the default chart
	Demo       bool   // seed demo transactions
	Now        func() time.Time
}

// Init creates books in dir: config, chart export, an empty or demo ledger,
// and a git repository with an initial commit when git is available.
func Init(ctx context.Context, dir string, opts InitOptions) (*Workspace, error) {
	if _, err := os.Stat(filepath.Join(dir, config.FileName)); err == nil {
		return nil, fmt.Errorf("%s already exists in %s", config.FileName, dir)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	for _, d := range []string{"accounts", "logs", "import", filepath.Join("import", "processed")} {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return nil, fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	cfg := config.Default(opts.Name, opts.EntityType)
	if opts.Backend != "" {
		cfg.Storage.Backend = opts.Backend
		cfg.Storage.Path = persist.Backend(opts.Backend).DefaultPath()
	}
	if err := config.Save(filepath.Join(dir, config.FileName), cfg); err != nil {
		return nil, err
	}

	snap := accounts.NewSnapshot(opts.Name, opts.EntityType)
	if opts.ChartPath != "" {
		chart, err := accounts.LoadChart(opts.ChartPath)
		if err != nil {
			return nil, err
		}
		snap.Accounts = chart
	}
	if opts.Demo {
		snap.Transactions = accounts.DemoTransactions(opts.Now())
	}

	store, err := ledger.New(snap)
	if err != nil {
		return nil, err
	}
	p, err := persist.Open(persist.Backend(cfg.Storage.Backend), filepath.Join(dir, cfg.Storage.Path))
	if err != nil {
		return nil, err
	}

	w := &Workspace{Dir: dir, Config: cfg, Store: store, persister: p, now: opts.Now}
	if err := w.writeGitignore(); err != nil {
		w.Close()
		return nil, err
	}
	if err := os.WriteFile(filepath.Join(dir, "import", ".gitkeep"), nil, 0o644); err != nil {
		w.Close()
		return nil, fmt.Errorf("writing .gitkeep: %w", err)
	}

	if gitops.Available() && !gitops.IsRepo(dir) {
		if err := gitops.Init(ctx, dir); err != nil {
			w.Close()
			return nil, err
		}
	}

	entry := activity.Entry{Action: "init", Details: fmt.Sprintf("Initialized books for %s", opts.Name)}
	if _, err := w.Record(ctx, "init: Initialize "+opts.Name, entry); err != nil {
		w.Close()
		return nil, err
	}
	return w, nil
}

// writeGitignore keeps database side files out of history.
func (w *Workspace) writeGitignore() error {
	content := "exports/\n.env\n*.sqlite-journal\n"
	if err := os.WriteFile(filepath.Join(w.Dir, ".gitignore"), []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing .gitignore: %w", err)
	}
	return nil
}

// Open loads the books in dir. Settings from dir/.env and the environment
// override books.yaml.
func Open(ctx context.Context, dir string) (*Workspace, error) {
	cfgPath := filepath.Join(dir, config.FileName)
	if _, err := os.Stat(cfgPath); errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotInitialized
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(filepath.Join(dir, config.EnvFileName)); err != nil {
		return nil, err
	}

	path := cfg.Storage.Path
	if path == "" {
		path = persist.Backend(cfg.Storage.Backend).DefaultPath()
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(dir, path)
	}
	p, err := persist.Open(persist.Backend(cfg.Storage.Backend), path)
	if err != nil {
		return nil, err
	}

	snap, err := p.Load(ctx)
	if err != nil {
		p.Close()
		return nil, fmt.Errorf("loading books: %w", err)
	}
	if snap == nil {
		p.Close()
		return nil, ErrNotInitialized
	}
	store, err := ledger.New(*snap)
	if err != nil {
		p.Close()
		return nil, fmt.Errorf("loading books: %w", err)
	}

	slog.Debug("opened books", "dir", dir, "backend", cfg.Storage.Backend, "transactions", store.Len())
	return &Workspace{Dir: dir, Config: cfg, Store: store, persister: p, now: time.Now}, nil
}

// Close releases the storage backend.
func (w *Workspace) Close() error {
	return w.persister.Close()
}

// Compiler returns an intent compiler bound to the ledger and configured roles.
func (w *Workspace) Compiler(opts ...intent.Option) *intent.Compiler {
	return intent.NewCompiler(w.Config.Roles, w.Store, opts...)
}

// NextReference returns the next unused document reference for kind in the
// fiscal year containing date, e.g. "INV-2026-004".
func (w *Workspace) NextReference(kind intent.Kind, date time.Time) (string, error) {
	year, err := w.Config.FiscalYear(date)
	if err != nil {
		return "", err
	}
	txns := w.Store.Transactions()
	refs := make([]string, 0, len(txns))
	for _, tx := range txns {
		refs = append(refs, tx.Reference)
	}
	return id.NextReference(refs, kind.ReferencePrefix(), year), nil
}

// Post appends txns to the ledger as one batch and records the change. If
// any transaction is rejected, none are posted and nothing is saved.
func (w *Workspace) Post(ctx context.Context, action, message string, txns ...model.Transaction) (string, error) {
	if err := w.Store.AppendTransactions(txns...); err != nil {
		return "", err
	}
	entries := make([]activity.Entry, 0, len(txns))
	for _, tx := range txns {
		slog.Debug("posted transaction", "id", tx.ID, "reference", tx.Reference, "source", tx.Source, "debit", tx.TotalDebit())
		entries = append(entries, activity.Entry{
			Action:        action,
			Source:        string(tx.Source),
			TransactionID: tx.ID,
			Reference:     tx.Reference,
			Details:       fmt.Sprintf("%s (%s)", tx.Description, tx.TotalDebit().StringFixed(2)),
		})
	}
	return w.Record(ctx, message, entries...)
}

// RenameAccount changes an account's display name and records the change.
func (w *Workspace) RenameAccount(ctx context.Context, accountID, name string) (string, error) {
	acct, ok := w.Store.FindAccount(accountID)
	if !ok {
		return "", &model.NotFoundError{Kind: "account", ID: accountID}
	}
	old := acct.Name
	acct.Name = name
	if err := w.Store.ReplaceAccount(acct); err != nil {
		return "", err
	}
	entry := activity.Entry{Action: "rename", Details: fmt.Sprintf("%s %s: %q -> %q", acct.Code, acct.ID, old, name)}
	return w.Record(ctx, fmt.Sprintf("accounts: rename %s to %s", acct.Code, name), entry)
}

// Record saves the ledger, exports the chart, appends entries to the
// activity log and, when auto-commit is on, commits everything. It returns
// the commit hash, or "" when nothing was committed.
func (w *Workspace) Record(ctx context.Context, message string, entries ...activity.Entry) (string, error) {
	snap := w.Store.Snapshot()
	if err := w.persister.Save(ctx, &snap); err != nil {
		return "", fmt.Errorf("saving books: %w", err)
	}
	if err := accounts.SaveChart(filepath.Join(w.Dir, ChartPath), snap.Accounts); err != nil {
		return "", err
	}

	now := w.now().UTC()
	for i := range entries {
		if entries[i].Timestamp.IsZero() {
			entries[i].Timestamp = now
		}
	}
	if err := activity.Append(w.Dir, entries...); err != nil {
		return "", err
	}
	slog.Debug("saved books", "transactions", len(snap.Transactions), "backend", w.Config.Storage.Backend)

	return w.commit(ctx, message)
}

func (w *Workspace) commit(ctx context.Context, message string) (string, error) {
	if !w.Config.Git.AutoCommit || !gitops.Available() || !gitops.IsRepo(w.Dir) {
		return "", nil
	}
	hash, err := gitops.CommitAll(ctx, w.Dir, message, w.Config.Git.AuthorName, w.Config.Git.AuthorEmail)
	if errors.Is(err, gitops.ErrNothingToCommit) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	slog.Info("committed", "hash", hash, "message", message)
	return hash, nil
}
