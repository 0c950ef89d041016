package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/cleared-dev/books/internal/intent"
)

const (
	// FileName is the config file at the root of a books directory.
	FileName = "books.yaml"
	// EnvFileName is the optional environment overlay next to it.
	EnvFileName = ".env"
)

// Environment variables that override the config file.
const (
	EnvStorageBackend = "BOOKS_STORAGE_BACKEND"
	EnvStoragePath    = "BOOKS_STORAGE_PATH"
	EnvAutoCommit     = "BOOKS_AUTO_COMMIT"
)

// Config represents the top-level books.yaml configuration.
type Config struct {
	Business     BusinessConfig `yaml:"business"`
	Fiscal       FiscalConfig   `yaml:"fiscal"`
	Storage      StorageConfig  `yaml:"storage"`
	Roles        intent.Roles   `yaml:"roles"`
	BankAccounts []BankAccount  `yaml:"bank_accounts,omitempty"`
	Import       ImportConfig   `yaml:"import"`
	Git          GitConfig      `yaml:"git"`
}

// BusinessConfig identifies the business entity.
type BusinessConfig struct {
	Name       string `yaml:"name"`
	EntityType string `yaml:"entity_type"`
}

// FiscalConfig defines the fiscal year boundaries.
type FiscalConfig struct {
	YearStart string `yaml:"year_start"` // "MM-DD" format, e.g. "01-01"
}

// StorageConfig selects where the ledger snapshot lives.
type StorageConfig struct {
	Backend string `yaml:"backend"` // file, bolt or sqlite
	Path    string `yaml:"path"`    // relative to the books directory
}

// BankAccount maps a bank feed to a chart-of-accounts entry. Statement
// files are matched to it by LastFour in the file name, as in
// "Chase1234_Activity_20260131.CSV".
type BankAccount struct {
	Name      string `yaml:"name"`
	Type      string `yaml:"type"`
	LastFour  string `yaml:"last_four"`
	AccountID string `yaml:"account_id"`
}

// BankAccountForFile returns the bank account whose last four digits appear
// in the base name of path as a standalone run of digits.
func (c *Config) BankAccountForFile(path string) (BankAccount, bool) {
	name := filepath.Base(path)
	for _, ba := range c.BankAccounts {
		if ba.LastFour != "" && containsDigits(name, ba.LastFour) {
			return ba, true
		}
	}
	return BankAccount{}, false
}

// containsDigits reports whether digits occurs in s not adjacent to
// another digit, so "1234" matches "Chase1234_x" but not "x_12345".
func containsDigits(s, digits string) bool {
	isDigit := func(i int) bool { return i >= 0 && i < len(s) && s[i] >= '0' && s[i] <= '9' }
	for from := 0; ; {
		i := strings.Index(s[from:], digits)
		if i < 0 {
			return false
		}
		i += from
		if !isDigit(i-1) && !isDigit(i+len(digits)) {
			return true
		}
		from = i + 1
	}
}

// ImportConfig sets how bank lines are categorised. Money out goes to the
// first rule whose match appears in the description, else ExpenseAccount.
type ImportConfig struct {
	Format         string       `yaml:"format"`
	ExpenseAccount string       `yaml:"expense_account"`
	VatCode        string       `yaml:"vat_code"`
	Rules          []ImportRule `yaml:"rules,omitempty"`
}

// ImportRule routes matching bank lines to an account.
type ImportRule struct {
	Match   string `yaml:"match"`
	Account string `yaml:"account"`
	VatCode string `yaml:"vat_code,omitempty"`
}

// GitConfig controls git integration.
type GitConfig struct {
	AutoCommit  bool   `yaml:"auto_commit"`
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
}

// Load reads a books.yaml file from disk. Missing posting roles are filled
// from intent.DefaultRoles.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.Roles = cfg.Roles.WithDefaults(intent.DefaultRoles())
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new set of books.
func Default(businessName, entityType string) *Config {
	return &Config{
		Business: BusinessConfig{
			Name:       businessName,
			EntityType: entityType,
		},
		Fiscal: FiscalConfig{
			YearStart: "01-01",
		},
		Storage: StorageConfig{
			Backend: "file",
			Path:    "books.json",
		},
		Roles: intent.DefaultRoles(),
		Import: ImportConfig{
			Format:         "chase",
			ExpenseAccount: "acc_6700",
			VatCode:        "vat_oos",
		},
		Git: GitConfig{
			AutoCommit:  true,
			AuthorName:  "Books",
			AuthorEmail: "books@cleared.dev",
		},
	}
}

// ApplyEnv overlays BOOKS_* settings onto cfg. Values come from the process
// environment first and then from the .env file at envPath, which may be
// absent.
func (c *Config) ApplyEnv(envPath string) error {
	file := map[string]string{}
	if envPath != "" {
		vals, err := godotenv.Read(envPath)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return fmt.Errorf("failed to load .env file: %w", err)
		default:
			file = vals
		}
	}
	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			return v, true
		}
		v, ok := file[key]
		return v, ok && v != ""
	}

	if v, ok := lookup(EnvStorageBackend); ok {
		c.Storage.Backend = v
	}
	if v, ok := lookup(EnvStoragePath); ok {
		c.Storage.Path = v
	}
	if v, ok := lookup(EnvAutoCommit); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid boolean value for %s: %s", EnvAutoCommit, v)
		}
		c.Git.AutoCommit = b
	}
	return nil
}

// FiscalYear returns the fiscal year a date falls in, named by the calendar
// year in which that fiscal year starts.
func (c *Config) FiscalYear(d time.Time) (int, error) {
	start := c.Fiscal.YearStart
	if start == "" {
		start = "01-01"
	}
	md, err := time.Parse("01-02", start)
	if err != nil {
		return 0, fmt.Errorf("invalid fiscal year_start %q: %w", start, err)
	}
	begins := time.Date(d.Year(), md.Month(), md.Day(), 0, 0, 0, 0, d.Location())
	if d.Before(begins) {
		return d.Year() - 1, nil
	}
	return d.Year(), nil
}
