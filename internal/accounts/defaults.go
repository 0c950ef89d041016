package accounts

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/books/internal/id"
	"github.com/cleared-dev/books/internal/model"
)

// DefaultChart returns the default chart of accounts for an entity type.
func DefaultChart(entityType string) []model.Account {
	switch entityType {
	case "ie_ltd":
		return irishLtdChart()
	default:
		return irishLtdChart()
	}
}

func irishLtdChart() []model.Account {
	return []model.Account{
		{ID: "acc_1000", Code: "1000", Name: "Bank Current Account", Type: model.AccountTypeAsset},
		{ID: "acc_1010", Code: "1010", Name: "Cash", Type: model.AccountTypeAsset},
		{ID: "acc_1100", Code: "1100", Name: "Accounts Receivable", Type: model.AccountTypeAsset, IsControl: true},
		{ID: "acc_1200", Code: "1200", Name: "Prepayments", Type: model.AccountTypeAsset},
		{ID: "acc_1300", Code: "1300", Name: "VAT Recoverable (Input)", Type: model.AccountTypeAsset, IsControl: true},
		{ID: "acc_1500", Code: "1500", Name: "Fixed Assets - Computer Equipment", Type: model.AccountTypeAsset},
		{ID: "acc_1510", Code: "1510", Name: "Fixed Assets - Office Equipment", Type: model.AccountTypeAsset},
		{ID: "acc_1590", Code: "1590", Name: "Accumulated Depreciation", Type: model.AccountTypeAsset, IsControl: true},

		{ID: "acc_2000", Code: "2000", Name: "Accounts Payable", Type: model.AccountTypeLiability, IsControl: true},
		{ID: "acc_2100", Code: "2100", Name: "VAT Payable (Output)", Type: model.AccountTypeLiability, IsControl: true},
		{ID: "acc_2200", Code: "2200", Name: "Payroll Liabilities", Type: model.AccountTypeLiability, IsControl: true},
		{ID: "acc_2300", Code: "2300", Name: "Corporation Tax Payable", Type: model.AccountTypeLiability},
		{ID: "acc_2400", Code: "2400", Name: "Loans Payable", Type: model.AccountTypeLiability},

		{ID: "acc_3000", Code: "3000", Name: "Share Capital", Type: model.AccountTypeEquity},
		{ID: "acc_3100", Code: "3100", Name: "Retained Earnings", Type: model.AccountTypeEquity},
		{ID: "acc_3200", Code: "3200", Name: "Director Loan Account", Type: model.AccountTypeEquity},

		{ID: "acc_4000", Code: "4000", Name: "Sales - Services", Type: model.AccountTypeRevenue},
		{ID: "acc_4010", Code: "4010", Name: "Sales - Products", Type: model.AccountTypeRevenue},
		{ID: "acc_4900", Code: "4900", Name: "Other Income", Type: model.AccountTypeRevenue},

		{ID: "acc_5000", Code: "5000", Name: "Cost of Sales", Type: model.AccountTypeExpense},
		{ID: "acc_6000", Code: "6000", Name: "Wages & Salaries", Type: model.AccountTypeExpense},
		{ID: "acc_6010", Code: "6010", Name: "Employer PRSI", Type: model.AccountTypeExpense},
		{ID: "acc_6100", Code: "6100", Name: "Rent", Type: model.AccountTypeExpense},
		{ID: "acc_6200", Code: "6200", Name: "Utilities", Type: model.AccountTypeExpense},
		{ID: "acc_6300", Code: "6300", Name: "Marketing", Type: model.AccountTypeExpense},
		{ID: "acc_6400", Code: "6400", Name: "Software & Subscriptions", Type: model.AccountTypeExpense},
		{ID: "acc_6500", Code: "6500", Name: "Professional Fees", Type: model.AccountTypeExpense},
		{ID: "acc_6600", Code: "6600", Name: "Travel", Type: model.AccountTypeExpense},
		{ID: "acc_6700", Code: "6700", Name: "Bank Charges", Type: model.AccountTypeExpense},
		{ID: "acc_6800", Code: "6800", Name: "Depreciation", Type: model.AccountTypeExpense},
	}
}

// DefaultVatCodes returns the Irish VAT rates.
func DefaultVatCodes() []model.VatCode {
	return []model.VatCode{
		{ID: "vat_23", Code: "S23", Description: "Standard Rate", Rate: decimal.RequireFromString("0.23")},
		{ID: "vat_135", Code: "R13_5", Description: "Reduced Rate", Rate: decimal.RequireFromString("0.135")},
		{ID: "vat_9", Code: "SR9", Description: "Second Reduced Rate", Rate: decimal.RequireFromString("0.09")},
		{ID: "vat_0", Code: "Z0", Description: "Zero Rate", Rate: decimal.Zero},
		{ID: "vat_exempt", Code: "EXEMPT", Description: "Exempt", Rate: decimal.Zero},
		{ID: "vat_oos", Code: "OOS", Description: "Outside Scope", Rate: decimal.Zero},
	}
}

// DefaultCompany returns company metadata for a new VAT-registered Irish company.
func DefaultCompany(name string) model.Company {
	return model.Company{
		ID:            id.New("comp"),
		Name:          name,
		Currency:      "EUR",
		VatRegistered: true,
		Country:       "IE",
	}
}

// NewSnapshot returns an empty set of books on the default chart.
func NewSnapshot(name, entityType string) model.Snapshot {
	return model.Snapshot{
		Version:  model.SnapshotVersion,
		Company:  DefaultCompany(name),
		Accounts: DefaultChart(entityType),
		VatCodes: DefaultVatCodes(),
	}
}

// DemoTransactions returns a small trading history ending near now, newest first.
func DemoTransactions(now time.Time) []model.Transaction {
	day := func(offset int) time.Time {
		d := now.AddDate(0, 0, -offset)
		return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	}
	amt := decimal.NewFromInt
	vat23 := "vat_23"

	type line struct {
		account       string
		debit, credit int64
		vatCode       string
		vatAmount     int64
	}
	build := func(date time.Time, desc, ref string, src model.Source, lines ...line) model.Transaction {
		tx := model.Transaction{
			ID:          id.NewTransaction(),
			Date:        date,
			Description: desc,
			Reference:   ref,
			Source:      src,
			CreatedAt:   now.UTC(),
		}
		for _, l := range lines {
			tx.Lines = append(tx.Lines, model.JournalLine{
				ID:            id.NewLine(),
				TransactionID: tx.ID,
				AccountID:     l.account,
				Debit:         amt(l.debit),
				Credit:        amt(l.credit),
				VatCodeID:     l.vatCode,
				VatAmount:     amt(l.vatAmount),
			})
		}
		return tx
	}

	txns := []model.Transaction{
		build(day(5), "Director Cash Withdrawal", "DLA-001", model.SourceGuided,
			line{account: "acc_3200", debit: 500},
			line{account: "acc_1000", credit: 500},
		),
		build(day(20), "Monthly Software Subscription", "SUB-001", model.SourceGuided,
			line{account: "acc_6400", debit: 100, vatCode: vat23, vatAmount: 23},
			line{account: "acc_1300", debit: 23},
			line{account: "acc_2000", credit: 123},
		),
		build(day(30), "Payment for INV-2024-001", "PAY-001", model.SourceGuided,
			line{account: "acc_1000", debit: 1230},
			line{account: "acc_1100", credit: 1230},
		),
		build(day(45), "Web Development Services - Client A", "INV-2024-001", model.SourceGuided,
			line{account: "acc_1100", debit: 1230},
			line{account: "acc_4000", credit: 1000, vatCode: vat23, vatAmount: 230},
			line{account: "acc_2100", credit: 230},
		),
		build(now.AddDate(0, -3, 0).UTC().Truncate(24*time.Hour), "Initial Share Capital", "INC-001", model.SourceManual,
			line{account: "acc_1000", debit: 10000},
			line{account: "acc_3000", credit: 10000},
		),
	}
	return txns
}
