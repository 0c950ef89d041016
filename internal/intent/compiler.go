package intent

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/books/internal/id"
	"github.com/cleared-dev/books/internal/model"
)

// Lookup resolves account and VAT code ids. *ledger.Store satisfies it.
type Lookup interface {
	FindAccount(id string) (model.Account, bool)
	FindVatCode(id string) (model.VatCode, bool)
}

// Compiler turns intents into balanced transactions. It never writes to
// the ledger; callers append the result themselves.
type Compiler struct {
	roles  Roles
	lookup Lookup
	newID  func(prefix string) string
	now    func() time.Time
}

// Option configures a Compiler.
type Option func(*Compiler)

// WithIDFunc replaces the id generator.
func WithIDFunc(f func(prefix string) string) Option {
	return func(c *Compiler) { c.newID = f }
}

// WithClock replaces the clock used for CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(c *Compiler) { c.now = now }
}

// NewCompiler creates a Compiler that resolves roles against lookup.
func NewCompiler(roles Roles, lookup Lookup, opts ...Option) *Compiler {
	c := &Compiler{
		roles:  roles,
		lookup: lookup,
		newID:  id.New,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithBank returns a copy of c that posts bank legs to accountID instead of
// the Bank role. An empty accountID returns c unchanged.
func (c *Compiler) WithBank(accountID string) *Compiler {
	if accountID == "" {
		return c
	}
	cp := *c
	cp.roles.Bank = accountID
	return &cp
}

// Compile builds the transaction for in. The result has Source Guided and
// fresh transaction and line ids.
func (c *Compiler) Compile(h Header, in Intent) (model.Transaction, error) {
	if strings.TrimSpace(h.Description) == "" {
		return model.Transaction{}, &model.ValidationError{Field: "description", Reason: "description is required"}
	}

	var (
		p   posting
		err error
	)
	switch in := in.(type) {
	case Invoice:
		err = c.invoice(&p, in)
	case Payment:
		err = c.transfer(&p, in.Amount, "bank", c.roles.Bank, "receivable", c.roles.Receivable)
	case Bill:
		err = c.purchase(&p, in.Gross, in.VatCodeID, in.Account, c.roles.DefaultExpense, "payable", c.roles.Payable, expenseOrAsset)
	case BillPayment:
		err = c.transfer(&p, in.Amount, "payable", c.roles.Payable, "bank", c.roles.Bank)
	case Expense:
		err = c.purchase(&p, in.Gross, in.VatCodeID, in.Account, c.roles.DefaultExpense, "bank", c.roles.Bank, expenseOrAsset)
	case Payroll:
		err = c.payroll(&p, in)
	case DirectorLoanSpend:
		err = c.purchase(&p, in.Gross, in.VatCodeID, in.Account, c.roles.DefaultDirectorSpend, "director_loan", c.roles.DirectorLoan, expenseOrAsset)
	case DirectorLoanWithdraw:
		err = c.transfer(&p, in.Amount, "director_loan", c.roles.DirectorLoan, "bank", c.roles.Bank)
	case AssetPurchase:
		err = c.purchase(&p, in.Gross, in.VatCodeID, in.Account, c.roles.FixedAssets, "bank", c.roles.Bank, assetOnly)
	case nil:
		err = &model.ValidationError{Field: "type", Reason: "no transaction type given"}
	default:
		err = &model.ValidationError{Field: "type", Reason: fmt.Sprintf("unsupported transaction type %T", in)}
	}
	if err != nil {
		return model.Transaction{}, err
	}

	tx := model.Transaction{
		ID:          c.newID(id.PrefixTransaction),
		Date:        h.Date,
		Description: h.Description,
		Reference:   h.Reference,
		Source:      model.SourceGuided,
		CreatedAt:   c.now().UTC(),
		Lines:       p.lines,
	}
	for i := range tx.Lines {
		tx.Lines[i].ID = c.newID(id.PrefixLine)
		tx.Lines[i].TransactionID = tx.ID
	}
	return tx, nil
}

var (
	expenseOrAsset = []model.AccountType{model.AccountTypeExpense, model.AccountTypeAsset}
	assetOnly      = []model.AccountType{model.AccountTypeAsset}
	revenueOnly    = []model.AccountType{model.AccountTypeRevenue}
)

// posting accumulates journal lines.
type posting struct {
	lines []model.JournalLine
}

func (p *posting) debit(account string, amt decimal.Decimal) *model.JournalLine {
	p.lines = append(p.lines, model.JournalLine{AccountID: account, Debit: amt, Credit: decimal.Zero, VatAmount: decimal.Zero})
	return &p.lines[len(p.lines)-1]
}

func (p *posting) credit(account string, amt decimal.Decimal) *model.JournalLine {
	p.lines = append(p.lines, model.JournalLine{AccountID: account, Debit: decimal.Zero, Credit: amt, VatAmount: decimal.Zero})
	return &p.lines[len(p.lines)-1]
}

// transfer posts Dr debitAcct / Cr creditAcct for a positive amount.
func (c *Compiler) transfer(p *posting, amount decimal.Decimal, debitRole, debitAcct, creditRole, creditAcct string) error {
	if err := positive("amount", amount); err != nil {
		return err
	}
	dr, err := c.role(debitRole, debitAcct)
	if err != nil {
		return err
	}
	cr, err := c.role(creditRole, creditAcct)
	if err != nil {
		return err
	}
	p.debit(dr, amount)
	p.credit(cr, amount)
	return nil
}

func (c *Compiler) invoice(p *posting, in Invoice) error {
	if err := positive("amount", in.Gross); err != nil {
		return err
	}
	rate, err := c.vatRate(in.VatCodeID)
	if err != nil {
		return err
	}
	receivable, err := c.role("receivable", c.roles.Receivable)
	if err != nil {
		return err
	}
	sales, err := c.target("sales", in.SalesAccount, c.roles.Sales, revenueOnly)
	if err != nil {
		return err
	}
	vatPayable, err := c.role("vat_payable", c.roles.VatPayable)
	if err != nil {
		return err
	}

	net, vat := SplitGross(in.Gross, rate)
	p.debit(receivable, in.Gross)
	line := p.credit(sales, net)
	line.VatCodeID = in.VatCodeID
	line.VatAmount = vat
	if !vat.IsZero() {
		p.credit(vatPayable, vat)
	}
	return nil
}

// purchase posts Dr target (net) + Dr VAT Recoverable (vat) / Cr creditRole (gross).
func (c *Compiler) purchase(p *posting, gross decimal.Decimal, vatCodeID, account, fallback, creditRole, creditAcct string, allowed []model.AccountType) error {
	if err := positive("amount", gross); err != nil {
		return err
	}
	rate, err := c.vatRate(vatCodeID)
	if err != nil {
		return err
	}
	target, err := c.target("account", account, fallback, allowed)
	if err != nil {
		return err
	}
	vatRecoverable, err := c.role("vat_recoverable", c.roles.VatRecoverable)
	if err != nil {
		return err
	}
	cr, err := c.role(creditRole, creditAcct)
	if err != nil {
		return err
	}

	net, vat := SplitGross(gross, rate)
	line := p.debit(target, net)
	line.VatCodeID = vatCodeID
	line.VatAmount = vat
	if !vat.IsZero() {
		p.debit(vatRecoverable, vat)
	}
	p.credit(cr, gross)
	return nil
}

func (c *Compiler) payroll(p *posting, in Payroll) error {
	if err := positive("gross", in.Gross); err != nil {
		return err
	}
	for _, f := range []struct {
		name string
		v    decimal.Decimal
	}{
		{"employer_prsi", in.EmployerPRSI},
		{"net_pay", in.NetPay},
		{"paye", in.PAYE},
		{"usc", in.USC},
		{"employee_prsi", in.EmployeePRSI},
	} {
		if f.v.IsNegative() {
			return &model.ValidationError{Field: f.name, Reason: "must not be negative"}
		}
	}

	wages, err := c.role("wages", c.roles.Wages)
	if err != nil {
		return err
	}
	liabilities, err := c.role("payroll_liabilities", c.roles.PayrollLiabilities)
	if err != nil {
		return err
	}

	p.debit(wages, in.Gross)
	if in.EmployerPRSI.IsPositive() {
		prsi, err := c.role("employer_prsi", c.roles.EmployerPRSI)
		if err != nil {
			return err
		}
		p.debit(prsi, in.EmployerPRSI)
	}
	if in.NetPay.IsPositive() {
		bank, err := c.role("bank", c.roles.Bank)
		if err != nil {
			return err
		}
		p.credit(bank, in.NetPay)
	}

	// Net pay above cost flips the liability to a debit rather than
	// posting a negative credit.
	switch liability := in.Liability(); {
	case liability.IsPositive():
		p.credit(liabilities, liability)
	case liability.IsNegative():
		p.debit(liabilities, liability.Neg())
	}
	return nil
}

// role resolves a fixed posting role.
func (c *Compiler) role(name, accountID string) (string, error) {
	if _, ok := c.lookup.FindAccount(accountID); !ok {
		return "", &model.UnknownAccountError{AccountID: accountID, Role: name}
	}
	return accountID, nil
}

// target resolves a caller-chosen account, falling back to a role default,
// and checks its type.
func (c *Compiler) target(name, accountID, fallback string, allowed []model.AccountType) (string, error) {
	if accountID == "" {
		accountID = fallback
	}
	if accountID == "" {
		return "", &model.ValidationError{Field: name, Reason: "an account is required"}
	}
	acct, ok := c.lookup.FindAccount(accountID)
	if !ok {
		return "", &model.UnknownAccountError{AccountID: accountID, Role: name}
	}
	if !slices.Contains(allowed, acct.Type) {
		return "", &model.ValidationError{
			Field:  name,
			Reason: fmt.Sprintf("account %s (%s) is %s, want one of %v", acct.Code, acct.Name, acct.Type, allowed),
		}
	}
	return accountID, nil
}

func (c *Compiler) vatRate(vatCodeID string) (decimal.Decimal, error) {
	vc, ok := c.lookup.FindVatCode(vatCodeID)
	if !ok {
		return decimal.Zero, &model.UnknownVatCodeError{VatCodeID: vatCodeID}
	}
	return vc.Rate, nil
}

func positive(field string, amt decimal.Decimal) error {
	if !amt.IsPositive() {
		return &model.ValidationError{Field: field, Reason: "must be greater than 0"}
	}
	return nil
}
