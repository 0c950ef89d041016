package intent

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/books/internal/model"
)

// Params is the flat payload a form or command line collects. Which fields
// matter depends on the kind.
type Params struct {
	Amount       decimal.Decimal // gross for VAT-bearing kinds and payroll
	VatCodeID    string
	AccountID    string // target expense/asset/revenue account
	NetPay       decimal.Decimal
	EmployerPRSI decimal.Decimal
	PAYE         decimal.Decimal
	USC          decimal.Decimal
	EmployeePRSI decimal.Decimal
}

// FromParams builds the intent for kind from a flat payload.
func FromParams(kind Kind, p Params) (Intent, error) {
	switch kind {
	case KindInvoice:
		return Invoice{Gross: p.Amount, VatCodeID: p.VatCodeID, SalesAccount: p.AccountID}, nil
	case KindPayment:
		return Payment{Amount: p.Amount}, nil
	case KindBill:
		return Bill{Gross: p.Amount, VatCodeID: p.VatCodeID, Account: p.AccountID}, nil
	case KindBillPayment:
		return BillPayment{Amount: p.Amount}, nil
	case KindExpense:
		return Expense{Gross: p.Amount, VatCodeID: p.VatCodeID, Account: p.AccountID}, nil
	case KindPayroll:
		return Payroll{
			Gross:        p.Amount,
			EmployerPRSI: p.EmployerPRSI,
			NetPay:       p.NetPay,
			PAYE:         p.PAYE,
			USC:          p.USC,
			EmployeePRSI: p.EmployeePRSI,
		}, nil
	case KindDirectorLoanSpend:
		return DirectorLoanSpend{Gross: p.Amount, VatCodeID: p.VatCodeID, Account: p.AccountID}, nil
	case KindDirectorLoanWithdraw:
		return DirectorLoanWithdraw{Amount: p.Amount}, nil
	case KindAssetPurchase:
		return AssetPurchase{Gross: p.Amount, VatCodeID: p.VatCodeID, Account: p.AccountID}, nil
	}
	return nil, &model.ValidationError{Field: "type", Reason: fmt.Sprintf("unknown transaction type %q", kind)}
}
