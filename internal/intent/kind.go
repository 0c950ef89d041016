package intent

import (
	"fmt"
	"strings"

	"github.com/cleared-dev/books/internal/model"
)

// Kind names a guided transaction type.
type Kind string

const (
	KindInvoice              Kind = "invoice"
	KindPayment              Kind = "payment"
	KindBill                 Kind = "bill"
	KindBillPayment          Kind = "bill_payment"
	KindExpense              Kind = "expense"
	KindPayroll              Kind = "payroll"
	KindDirectorLoanSpend    Kind = "dla_spend"
	KindDirectorLoanWithdraw Kind = "dla_withdraw"
	KindAssetPurchase        Kind = "asset_purchase"
)

// Kinds returns every kind in menu order.
func Kinds() []Kind {
	return []Kind{
		KindInvoice,
		KindPayment,
		KindBill,
		KindBillPayment,
		KindExpense,
		KindPayroll,
		KindDirectorLoanSpend,
		KindDirectorLoanWithdraw,
		KindAssetPurchase,
	}
}

// ParseKind accepts a kind name, case-insensitively, with '-' or '_'.
func ParseKind(s string) (Kind, error) {
	norm := Kind(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_"))
	for _, k := range Kinds() {
		if k == norm {
			return k, nil
		}
	}
	return "", &model.ValidationError{Field: "type", Reason: fmt.Sprintf("unknown transaction type %q", s)}
}

// VatBearing reports whether the kind splits a gross amount into net and VAT.
func (k Kind) VatBearing() bool {
	switch k {
	case KindInvoice, KindBill, KindExpense, KindDirectorLoanSpend, KindAssetPurchase:
		return true
	}
	return false
}

// Label is the human-readable name of the kind.
func (k Kind) Label() string {
	switch k {
	case KindInvoice:
		return "Sales Invoice"
	case KindPayment:
		return "Customer Payment"
	case KindBill:
		return "Supplier Bill"
	case KindBillPayment:
		return "Pay Supplier"
	case KindExpense:
		return "Expense (Paid from Bank)"
	case KindPayroll:
		return "Payroll Journal"
	case KindDirectorLoanSpend:
		return "Director Paid Expense"
	case KindDirectorLoanWithdraw:
		return "Director Withdrawal"
	case KindAssetPurchase:
		return "Fixed Asset Purchase"
	}
	return string(k)
}

// ReferencePrefix is the document prefix used for generated references.
func (k Kind) ReferencePrefix() string {
	switch k {
	case KindInvoice:
		return "INV"
	case KindPayment:
		return "PAY"
	case KindBill:
		return "BILL"
	case KindBillPayment:
		return "BPAY"
	case KindExpense:
		return "EXP"
	case KindPayroll:
		return "PAYROLL"
	case KindDirectorLoanSpend, KindDirectorLoanWithdraw:
		return "DLA"
	case KindAssetPurchase:
		return "FA"
	}
	return "TX"
}
