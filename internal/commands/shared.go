package commands

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/cleared-dev/books/internal/ledger"
	"github.com/cleared-dev/books/internal/model"
	"github.com/cleared-dev/books/internal/workspace"
)

const dateFormat = "2006-01-02"

func openWorkspace(cmd *cobra.Command, g *globalFlags) (*workspace.Workspace, error) {
	dir, err := filepath.Abs(g.dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}
	return workspace.Open(cmd.Context(), dir)
}

// parseDate accepts YYYY-MM-DD; empty means today.
func parseDate(s string) (time.Time, error) {
	if s == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	d, err := time.Parse(dateFormat, s)
	if err != nil {
		return time.Time{}, &model.ValidationError{Field: "date", Reason: fmt.Sprintf("%q is not a YYYY-MM-DD date", s)}
	}
	return d, nil
}

// parseAmount accepts "1230", "1,230.00" or "€1,230.00"; empty means zero.
func parseAmount(field, s string) (decimal.Decimal, error) {
	clean := strings.NewReplacer(",", "", "€", "", " ", "").Replace(s)
	if clean == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, &model.ValidationError{Field: field, Reason: fmt.Sprintf("%q is not an amount", s)}
	}
	return d, nil
}

// resolveAccount finds an account by id or by code.
func resolveAccount(store *ledger.Store, s string) (model.Account, error) {
	if a, ok := store.FindAccount(s); ok {
		return a, nil
	}
	for _, a := range store.Accounts() {
		if a.Code == s {
			return a, nil
		}
	}
	return model.Account{}, &model.NotFoundError{Kind: "account", ID: s}
}

// accountName returns a lookup that renders "code name" for an account id.
func accountName(store *ledger.Store) func(string) string {
	return func(id string) string {
		if a, ok := store.FindAccount(id); ok {
			return a.Code + " " + a.Name
		}
		return id
	}
}
