package model

import "github.com/shopspring/decimal"

// AccountType classifies accounts in the chart of accounts.
type AccountType string

const (
	AccountTypeAsset     AccountType = "Asset"
	AccountTypeLiability AccountType = "Liability"
	AccountTypeEquity    AccountType = "Equity"
	AccountTypeRevenue   AccountType = "Revenue"
	AccountTypeExpense   AccountType = "Expense"
)

// AccountTypes lists every account type in statement order.
func AccountTypes() []AccountType {
	return []AccountType{
		AccountTypeAsset,
		AccountTypeLiability,
		AccountTypeEquity,
		AccountTypeRevenue,
		AccountTypeExpense,
	}
}

// Valid reports whether t is one of the five account types.
func (t AccountType) Valid() bool {
	switch t {
	case AccountTypeAsset, AccountTypeLiability, AccountTypeEquity, AccountTypeRevenue, AccountTypeExpense:
		return true
	}
	return false
}

// DebitNormal reports whether a positive debit-minus-credit balance is
// economically positive for accounts of this type.
func (t AccountType) DebitNormal() bool {
	return t == AccountTypeAsset || t == AccountTypeExpense
}

// Natural converts a raw debit-minus-credit balance into the figure shown
// on statements for an account of this type.
func (t AccountType) Natural(raw decimal.Decimal) decimal.Decimal {
	if t.DebitNormal() {
		return raw
	}
	return raw.Neg()
}

// Account is one entry in the chart of accounts.
type Account struct {
	ID        string      `json:"id"`
	Code      string      `json:"code"`
	Name      string      `json:"name"`
	Type      AccountType `json:"type"`
	IsControl bool        `json:"isControl"` // informational only
}

// VatCode is a VAT rate that journal lines may reference.
type VatCode struct {
	ID          string          `json:"id"`
	Code        string          `json:"code"`
	Description string          `json:"description"`
	Rate        decimal.Decimal `json:"rate"` // fraction, 0.23 = 23%
}

// Company identifies the business whose books these are.
type Company struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Currency      string `json:"currency"`
	VatRegistered bool   `json:"vatRegistered"`
	Country       string `json:"country"`
}
