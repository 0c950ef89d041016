package intent

import (
	"time"

	"github.com/shopspring/decimal"
)

// Header carries the caller-supplied fields shared by every intent.
type Header struct {
	Date        time.Time
	Description string
	Reference   string
}

// Intent is one of the guided transaction variants below. The set is closed.
type Intent interface {
	Kind() Kind
	isIntent()
}

// Invoice records a sales invoice: Dr Receivable / Cr Sales + VAT Payable.
type Invoice struct {
	Gross        decimal.Decimal
	VatCodeID    string
	SalesAccount string // optional, defaults to the Sales role
}

// Payment records a customer payment: Dr Bank / Cr Receivable.
type Payment struct {
	Amount decimal.Decimal
}

// Bill records a supplier bill on credit: Dr Expense + VAT Recoverable / Cr Payable.
type Bill struct {
	Gross     decimal.Decimal
	VatCodeID string
	Account   string // expense or asset; defaults to the DefaultExpense role
}

// BillPayment records paying a supplier: Dr Payable / Cr Bank.
type BillPayment struct {
	Amount decimal.Decimal
}

// Expense records a purchase paid from the bank: Dr Expense + VAT Recoverable / Cr Bank.
type Expense struct {
	Gross     decimal.Decimal
	VatCodeID string
	Account   string // expense or asset; defaults to the DefaultExpense role
}

// Payroll records a payroll journal. Inputs are trusted as entered: the
// liability line is whatever balances the entry.
type Payroll struct {
	Gross        decimal.Decimal
	EmployerPRSI decimal.Decimal
	NetPay       decimal.Decimal
	PAYE         decimal.Decimal // informational
	USC          decimal.Decimal // informational
	EmployeePRSI decimal.Decimal // informational
}

// Liability is the payroll liabilities credit: gross + employer PRSI - net pay.
func (p Payroll) Liability() decimal.Decimal {
	return p.Gross.Add(p.EmployerPRSI).Sub(p.NetPay)
}

// ExpectedLiability is what the entered deductions say is owed to Revenue.
func (p Payroll) ExpectedLiability() decimal.Decimal {
	return p.PAYE.Add(p.USC).Add(p.EmployeePRSI).Add(p.EmployerPRSI)
}

// DirectorLoanSpend records a business expense the director paid personally:
// Dr Expense + VAT Recoverable / Cr Director Loan.
type DirectorLoanSpend struct {
	Gross     decimal.Decimal
	VatCodeID string
	Account   string // expense or asset; defaults to the DefaultDirectorSpend role
}

// DirectorLoanWithdraw records the director taking money out: Dr Director Loan / Cr Bank.
type DirectorLoanWithdraw struct {
	Amount decimal.Decimal
}

// AssetPurchase records buying a fixed asset from the bank:
// Dr Fixed Asset + VAT Recoverable / Cr Bank.
type AssetPurchase struct {
	Gross     decimal.Decimal
	VatCodeID string
	Account   string // asset; defaults to the FixedAssets role
}

func (Invoice) Kind() Kind              { return KindInvoice }
func (Payment) Kind() Kind              { return KindPayment }
func (Bill) Kind() Kind                 { return KindBill }
func (BillPayment) Kind() Kind          { return KindBillPayment }
func (Expense) Kind() Kind              { return KindExpense }
func (Payroll) Kind() Kind              { return KindPayroll }
func (DirectorLoanSpend) Kind() Kind    { return KindDirectorLoanSpend }
func (DirectorLoanWithdraw) Kind() Kind { return KindDirectorLoanWithdraw }
func (AssetPurchase) Kind() Kind        { return KindAssetPurchase }

func (Invoice) isIntent()              {}
func (Payment) isIntent()              {}
func (Bill) isIntent()                 {}
func (BillPayment) isIntent()          {}
func (Expense) isIntent()              {}
func (Payroll) isIntent()              {}
func (DirectorLoanSpend) isIntent()    {}
func (DirectorLoanWithdraw) isIntent() {}
func (AssetPurchase) isIntent()        {}
