package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// BankTransaction represents a parsed bank CSV row.
type BankTransaction struct {
	Date        time.Time
	Description string
	Amount      decimal.Decimal // negative = money out, positive = money in
	Reference   string
	Type        string // bank transaction type (ACH_DEBIT, etc.)
	AccountID   string // ledger bank account; empty means the Bank role
}
