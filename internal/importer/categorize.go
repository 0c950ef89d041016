package importer

import (
	"fmt"
	"strings"

	"github.com/cleared-dev/books/internal/config"
	"github.com/cleared-dev/books/internal/intent"
	"github.com/cleared-dev/books/internal/model"
)

// Categorizer turns bank lines into ledger transactions.
type Categorizer struct {
	compiler *intent.Compiler
	cfg      config.ImportConfig
}

// NewCategorizer returns a Categorizer that posts through compiler.
func NewCategorizer(compiler *intent.Compiler, cfg config.ImportConfig) *Categorizer {
	return &Categorizer{compiler: compiler, cfg: cfg}
}

// Categorize builds the transaction for one bank line. Money in is posted as
// a customer payment; money out as an expense paid from the bank, routed by
// the first matching rule. Bank legs go to bt.AccountID when set, else the
// Bank role. The result has Source Import and the bank reference.
func (c *Categorizer) Categorize(bt model.BankTransaction) (model.Transaction, error) {
	if bt.Amount.IsZero() {
		return model.Transaction{}, &model.ValidationError{Field: "amount", Reason: fmt.Sprintf("bank line %s has no amount", bt.Reference)}
	}

	var in intent.Intent
	if bt.Amount.IsPositive() {
		in = intent.Payment{Amount: bt.Amount}
	} else {
		account, vat := c.route(bt.Description)
		in = intent.Expense{Gross: bt.Amount.Neg(), VatCodeID: vat, Account: account}
	}

	desc := strings.TrimSpace(bt.Description)
	if desc == "" {
		desc = "Bank " + bt.Type
	}
	tx, err := c.compiler.WithBank(bt.AccountID).Compile(intent.Header{Date: bt.Date, Description: desc, Reference: bt.Reference}, in)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("categorizing %s: %w", bt.Reference, err)
	}
	tx.Source = model.SourceImport
	return tx, nil
}

func (c *Categorizer) route(desc string) (account, vatCode string) {
	upper := strings.ToUpper(desc)
	for _, r := range c.cfg.Rules {
		if r.Match == "" || !strings.Contains(upper, strings.ToUpper(r.Match)) {
			continue
		}
		vat := r.VatCode
		if vat == "" {
			vat = c.cfg.VatCode
		}
		return r.Account, vat
	}
	return c.cfg.ExpenseAccount, c.cfg.VatCode
}

// Result is the outcome of planning an import.
type Result struct {
	New     []model.Transaction
	Skipped []model.BankTransaction // already in the ledger
}

// Plan categorizes every bank line whose reference is not already used by a
// transaction in existing. Nothing is written.
func (c *Categorizer) Plan(existing []model.Transaction, bts []model.BankTransaction) (Result, error) {
	refs := make(map[string]bool, len(existing))
	for _, tx := range existing {
		if tx.Reference != "" {
			refs[tx.Reference] = true
		}
	}

	var res Result
	for _, bt := range bts {
		if refs[bt.Reference] {
			res.Skipped = append(res.Skipped, bt)
			continue
		}
		tx, err := c.Categorize(bt)
		if err != nil {
			return Result{}, err
		}
		refs[bt.Reference] = true
		res.New = append(res.New, tx)
	}
	return res, nil
}
