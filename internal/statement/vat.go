package statement

import (
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/books/internal/model"
)

// VATRow totals the lines tagged with one VAT code.
type VATRow struct {
	VatCode     model.VatCode   `json:"vatCode"`
	SalesNet    decimal.Decimal `json:"salesNet"`
	SalesVat    decimal.Decimal `json:"salesVat"`
	PurchaseNet decimal.Decimal `json:"purchaseNet"`
	PurchaseVat decimal.Decimal `json:"purchaseVat"`
}

// Empty reports whether no line used the code.
func (r VATRow) Empty() bool {
	return r.SalesNet.IsZero() && r.SalesVat.IsZero() && r.PurchaseNet.IsZero() && r.PurchaseVat.IsZero()
}

// VATReturn summarises output and input VAT. T1 is VAT on sales, T2 VAT on
// purchases and T3 the difference; positive T3 is owed by the company.
type VATReturn struct {
	Rows []VATRow        `json:"rows"`
	T1   decimal.Decimal `json:"t1"`
	T2   decimal.Decimal `json:"t2"`
	T3   decimal.Decimal `json:"t3"`
}

// Payable reports whether the company owes VAT for the period.
func (v VATReturn) Payable() bool {
	return v.T3.IsPositive()
}

// ComputeVATReturn scans every line carrying a VAT code. Lines on Revenue
// accounts are sales; lines on Expense or Asset accounts are purchases.
// Lines on other account types, and lines whose code is not in vatCodes,
// are ignored.
func ComputeVATReturn(accts []model.Account, vatCodes []model.VatCode, txns []model.Transaction) VATReturn {
	types := make(map[string]model.AccountType, len(accts))
	for _, a := range accts {
		types[a.ID] = a.Type
	}

	rows := make([]VATRow, len(vatCodes))
	idx := make(map[string]int, len(vatCodes))
	for i, vc := range vatCodes {
		rows[i] = VATRow{
			VatCode:     vc,
			SalesNet:    decimal.Zero,
			SalesVat:    decimal.Zero,
			PurchaseNet: decimal.Zero,
			PurchaseVat: decimal.Zero,
		}
		idx[vc.ID] = i
	}

	for _, tx := range txns {
		for _, line := range tx.Lines {
			if line.VatCodeID == "" {
				continue
			}
			i, ok := idx[line.VatCodeID]
			if !ok {
				continue
			}
			row := &rows[i]
			switch types[line.AccountID] {
			case model.AccountTypeRevenue:
				row.SalesNet = row.SalesNet.Add(line.Credit.Sub(line.Debit))
				row.SalesVat = row.SalesVat.Add(line.VatAmount)
			case model.AccountTypeExpense, model.AccountTypeAsset:
				row.PurchaseNet = row.PurchaseNet.Add(line.Debit.Sub(line.Credit))
				row.PurchaseVat = row.PurchaseVat.Add(line.VatAmount)
			}
		}
	}

	ret := VATReturn{Rows: rows, T1: decimal.Zero, T2: decimal.Zero}
	for _, r := range rows {
		ret.T1 = ret.T1.Add(r.SalesVat)
		ret.T2 = ret.T2.Add(r.PurchaseVat)
	}
	ret.T3 = ret.T1.Sub(ret.T2)
	return ret
}
