package accounts

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cleared-dev/books/internal/model"
)

// Validate checks that a chart has unique ids and codes, and known types.
func Validate(chart []model.Account) error {
	ids := make(map[string]bool, len(chart))
	codes := make(map[string]bool, len(chart))
	for _, a := range chart {
		if a.ID == "" {
			return &model.ValidationError{Field: "account.id", Reason: fmt.Sprintf("account %q has no id", a.Name)}
		}
		if ids[a.ID] {
			return &model.ValidationError{Field: "account.id", Reason: fmt.Sprintf("duplicate account id %q", a.ID)}
		}
		ids[a.ID] = true

		if a.Code == "" {
			return &model.ValidationError{Field: "account.code", Reason: fmt.Sprintf("account %q has no code", a.ID)}
		}
		if codes[a.Code] {
			return &model.ValidationError{Field: "account.code", Reason: fmt.Sprintf("duplicate account code %q", a.Code)}
		}
		codes[a.Code] = true

		if !a.Type.Valid() {
			return &model.ValidationError{Field: "account.type", Reason: fmt.Sprintf("account %q has invalid type %q", a.ID, a.Type)}
		}
	}
	return nil
}

// LoadChart reads and validates a chart-of-accounts CSV file.
func LoadChart(path string) ([]model.Account, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening chart of accounts: %w", err)
	}
	defer f.Close()

	chart, err := ReadAccounts(f)
	if err != nil {
		return nil, fmt.Errorf("reading chart of accounts: %w", err)
	}
	if err := Validate(chart); err != nil {
		return nil, fmt.Errorf("chart of accounts %s: %w", path, err)
	}
	return chart, nil
}

// SaveChart writes the chart of accounts to path, creating parent directories.
func SaveChart(path string, chart []model.Account) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating accounts dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating chart of accounts file: %w", err)
	}
	defer f.Close()

	if err := WriteAccounts(f, chart); err != nil {
		return fmt.Errorf("writing chart of accounts: %w", err)
	}
	return f.Close()
}
