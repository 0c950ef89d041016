// Package ledger holds the chart of accounts, VAT codes and posted
// transactions for one set of books, and derives account balances from them.
package ledger

import (
	"fmt"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/cleared-dev/books/internal/accounts"
	"github.com/cleared-dev/books/internal/journal"
	"github.com/cleared-dev/books/internal/model"
)

// state is an immutable view of the books. A new state is published on
// every mutation; readers keep whichever one they loaded.
type state struct {
	company      model.Company
	accounts     []model.Account
	accountIdx   map[string]int
	vatCodes     []model.VatCode
	vatIdx       map[string]int
	transactions []model.Transaction // insertion order, oldest first
}

func (st *state) FindAccount(id string) (model.Account, bool) {
	i, ok := st.accountIdx[id]
	if !ok {
		return model.Account{}, false
	}
	return st.accounts[i], true
}

func (st *state) FindVatCode(id string) (model.VatCode, bool) {
	i, ok := st.vatIdx[id]
	if !ok {
		return model.VatCode{}, false
	}
	return st.vatCodes[i], true
}

// Store is the in-memory ledger. Mutations are serialised; reads are
// lock-free and always observe a complete state.
type Store struct {
	mu  sync.Mutex // held by writers only
	cur atomic.Pointer[state]
}

// New builds a Store from a snapshot. Snapshot transactions are newest
// first; they are not re-validated.
func New(snap model.Snapshot) (*Store, error) {
	if err := accounts.Validate(snap.Accounts); err != nil {
		return nil, fmt.Errorf("loading chart of accounts: %w", err)
	}

	vatIdx := make(map[string]int, len(snap.VatCodes))
	for i, v := range snap.VatCodes {
		if _, dup := vatIdx[v.ID]; dup {
			return nil, &model.ValidationError{Field: "vatCode.id", Reason: fmt.Sprintf("duplicate VAT code id %q", v.ID)}
		}
		if v.Rate.IsNegative() {
			return nil, &model.ValidationError{Field: "vatCode.rate", Reason: fmt.Sprintf("VAT code %q has negative rate", v.ID)}
		}
		vatIdx[v.ID] = i
	}

	txns := make([]model.Transaction, len(snap.Transactions))
	for i, tx := range snap.Transactions {
		txns[len(txns)-1-i] = tx.Clone()
	}

	st := &state{
		company:      snap.Company,
		accounts:     slices.Clone(snap.Accounts),
		vatCodes:     slices.Clone(snap.VatCodes),
		vatIdx:       vatIdx,
		transactions: txns,
	}
	st.accountIdx = indexAccounts(st.accounts)

	s := &Store{}
	s.cur.Store(st)
	return s, nil
}

func indexAccounts(accts []model.Account) map[string]int {
	idx := make(map[string]int, len(accts))
	for i, a := range accts {
		idx[a.ID] = i
	}
	return idx
}

func (s *Store) load() *state {
	return s.cur.Load()
}

// Company returns the company metadata.
func (s *Store) Company() model.Company {
	return s.load().company
}

// Accounts returns all accounts in chart order.
func (s *Store) Accounts() []model.Account {
	return slices.Clone(s.load().accounts)
}

// FindAccount returns an account by id.
func (s *Store) FindAccount(id string) (model.Account, bool) {
	return s.load().FindAccount(id)
}

// AccountsByType returns all accounts of the given type in chart order.
func (s *Store) AccountsByType(t model.AccountType) []model.Account {
	var result []model.Account
	for _, a := range s.load().accounts {
		if a.Type == t {
			result = append(result, a)
		}
	}
	return result
}

// VatCodes returns all VAT codes.
func (s *Store) VatCodes() []model.VatCode {
	return slices.Clone(s.load().vatCodes)
}

// FindVatCode returns a VAT code by id.
func (s *Store) FindVatCode(id string) (model.VatCode, bool) {
	return s.load().FindVatCode(id)
}

// Transactions returns every transaction, most recently appended first.
func (s *Store) Transactions() []model.Transaction {
	return newestFirst(s.load().transactions)
}

func newestFirst(txns []model.Transaction) []model.Transaction {
	out := make([]model.Transaction, len(txns))
	for i, tx := range txns {
		out[len(txns)-1-i] = tx.Clone()
	}
	return out
}

// Len returns the number of posted transactions.
func (s *Store) Len() int {
	return len(s.load().transactions)
}

// AppendTransaction validates tx and posts it. On error the store is unchanged.
func (s *Store) AppendTransaction(tx model.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	old := s.load()
	if err := old.check(tx, nil); err != nil {
		return err
	}
	s.publish(old, tx)
	return nil
}

// AppendTransactions validates every transaction against the current
// ledger and the rest of the batch, then posts them all at once. If any is
// rejected, none are posted.
func (s *Store) AppendTransactions(txns ...model.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	old := s.load()
	batch := make(map[string]bool, len(txns))
	for _, tx := range txns {
		if err := old.check(tx, batch); err != nil {
			return fmt.Errorf("posting %q: %w", tx.Description, err)
		}
		batch[tx.ID] = true
	}
	s.publish(old, txns...)
	return nil
}

// check validates tx against st. batch holds ids already accepted in the
// same call.
func (st *state) check(tx model.Transaction, batch map[string]bool) error {
	if err := journal.Err(journal.ValidateTransaction(tx, st)); err != nil {
		return err
	}
	duplicate := &model.ValidationError{Field: "id", Reason: fmt.Sprintf("transaction %q already posted", tx.ID)}
	if batch[tx.ID] {
		return duplicate
	}
	for _, existing := range st.transactions {
		if existing.ID == tx.ID {
			return duplicate
		}
	}
	return nil
}

// publish swaps in a new state with txns appended. Callers hold s.mu.
func (s *Store) publish(old *state, txns ...model.Transaction) {
	next := *old
	next.transactions = slices.Clip(old.transactions)
	for _, tx := range txns {
		next.transactions = append(next.transactions, tx.Clone())
	}
	s.cur.Store(&next)
}

// ReplaceAccount updates the mutable fields of an existing account. Only
// the name may change; id, code, type and control flag are kept.
func (s *Store) ReplaceAccount(acct model.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	old := s.load()
	i, ok := old.accountIdx[acct.ID]
	if !ok {
		return &model.NotFoundError{Kind: "account", ID: acct.ID}
	}
	if acct.Name == "" {
		return &model.ValidationError{Field: "name", Reason: "account name must not be empty"}
	}

	next := *old
	next.accounts = slices.Clone(old.accounts)
	next.accounts[i].Name = acct.Name
	s.cur.Store(&next)
	return nil
}

// Snapshot returns a deep copy of the full state, transactions newest first.
func (s *Store) Snapshot() model.Snapshot {
	st := s.load()
	return model.Snapshot{
		Version:      model.SnapshotVersion,
		Company:      st.company,
		Accounts:     slices.Clone(st.accounts),
		VatCodes:     slices.Clone(st.vatCodes),
		Transactions: newestFirst(st.transactions),
	}
}
