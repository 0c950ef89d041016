package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/books/internal/model"
)

// Balance returns sum(debit) - sum(credit) over every line that posts to
// accountID. An unknown id has no activity and yields zero.
func Balance(txns []model.Transaction, accountID string) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range txns {
		for _, line := range tx.Lines {
			if line.AccountID == accountID {
				total = total.Add(line.Net())
			}
		}
	}
	return total
}

// Engine answers balance queries against a fixed set of transactions.
type Engine struct {
	txns []model.Transaction
}

// NewEngine returns an Engine over txns. The slice must not be modified afterwards.
func NewEngine(txns []model.Transaction) *Engine {
	return &Engine{txns: txns}
}

// Balance returns the raw debit-minus-credit balance of an account.
func (e *Engine) Balance(accountID string) decimal.Decimal {
	return Balance(e.txns, accountID)
}

// Transactions returns the transactions the engine reads from.
func (e *Engine) Transactions() []model.Transaction {
	return e.txns
}

// Engine returns a balance engine bound to the store's current state.
// Later appends are not visible to it.
func (s *Store) Engine() *Engine {
	return NewEngine(s.load().transactions)
}

// Balance returns the raw balance of an account in the current state.
func (s *Store) Balance(accountID string) decimal.Decimal {
	return Balance(s.load().transactions, accountID)
}
