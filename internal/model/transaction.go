package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// tolerance is the largest debit/credit difference still treated as equal.
var tolerance = decimal.New(1, -2)

// Tolerance returns the largest difference treated as equal, 0.01.
func Tolerance() decimal.Decimal {
	return tolerance
}

// WithinTolerance reports whether |d| <= 0.01.
func WithinTolerance(d decimal.Decimal) bool {
	return d.Abs().LessThanOrEqual(tolerance)
}

// Source records how a transaction was entered.
type Source string

const (
	SourceManual Source = "Manual"
	SourceGuided Source = "Guided"
	SourceImport Source = "Import"
)

// JournalLine is one side of a double-entry posting.
type JournalLine struct {
	ID            string          `json:"id"`
	TransactionID string          `json:"transactionId"`
	AccountID     string          `json:"accountId"`
	Debit         decimal.Decimal `json:"debit"`  // zero if credit side
	Credit        decimal.Decimal `json:"credit"` // zero if debit side
	VatCodeID     string          `json:"vatCodeId,omitempty"`
	VatAmount     decimal.Decimal `json:"vatAmount"`
	Description   string          `json:"description,omitempty"`
}

// Net returns debit minus credit.
func (l JournalLine) Net() decimal.Decimal {
	return l.Debit.Sub(l.Credit)
}

// Transaction is a balanced set of journal lines posted together.
type Transaction struct {
	ID          string        `json:"id"`
	Date        time.Time     `json:"date"`
	Description string        `json:"description"`
	Reference   string        `json:"reference,omitempty"`
	Source      Source        `json:"source"`
	Lines       []JournalLine `json:"lines"`
	CreatedAt   time.Time     `json:"createdAt"`
}

// TotalDebit sums the debit side of every line.
func (t Transaction) TotalDebit() decimal.Decimal {
	total := decimal.Zero
	for _, l := range t.Lines {
		total = total.Add(l.Debit)
	}
	return total
}

// TotalCredit sums the credit side of every line.
func (t Transaction) TotalCredit() decimal.Decimal {
	total := decimal.Zero
	for _, l := range t.Lines {
		total = total.Add(l.Credit)
	}
	return total
}

// Imbalance returns total debits minus total credits.
func (t Transaction) Imbalance() decimal.Decimal {
	return t.TotalDebit().Sub(t.TotalCredit())
}

// Balanced reports whether debits equal credits within 0.01.
func (t Transaction) Balanced() bool {
	return WithinTolerance(t.Imbalance())
}

// Clone returns a copy that shares no line storage with t.
func (t Transaction) Clone() Transaction {
	c := t
	c.Lines = append([]JournalLine(nil), t.Lines...)
	return c
}
