// Package statement derives financial reports from account metadata and
// raw ledger balances. Every report is recomputed from scratch.
package statement

import (
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/books/internal/model"
)

// Balancer returns the raw debit-minus-credit balance of an account.
type Balancer interface {
	Balance(accountID string) decimal.Decimal
}

// Line is one account on a statement, in its natural sign.
type Line struct {
	AccountID string            `json:"accountId"`
	Code      string            `json:"code"`
	Name      string            `json:"name"`
	Type      model.AccountType `json:"type"`
	Amount    decimal.Decimal   `json:"amount"`
}

// section collects the accounts of one type. Zero balances count towards
// the total but are left out of the lines.
func section(accts []model.Account, t model.AccountType, bal Balancer) ([]Line, decimal.Decimal) {
	var lines []Line
	total := decimal.Zero
	for _, a := range accts {
		if a.Type != t {
			continue
		}
		amt := t.Natural(bal.Balance(a.ID))
		total = total.Add(amt)
		if amt.IsZero() {
			continue
		}
		lines = append(lines, Line{AccountID: a.ID, Code: a.Code, Name: a.Name, Type: a.Type, Amount: amt})
	}
	return lines, total
}

// ProfitAndLoss is the income statement.
type ProfitAndLoss struct {
	Revenue       []Line          `json:"revenue"`
	Expenses      []Line          `json:"expenses"`
	TotalRevenue  decimal.Decimal `json:"totalRevenue"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	NetProfit     decimal.Decimal `json:"netProfit"`
}

// ComputeProfitAndLoss sums Revenue accounts credit-positive and Expense
// accounts debit-positive.
func ComputeProfitAndLoss(accts []model.Account, bal Balancer) ProfitAndLoss {
	var pl ProfitAndLoss
	pl.Revenue, pl.TotalRevenue = section(accts, model.AccountTypeRevenue, bal)
	pl.Expenses, pl.TotalExpenses = section(accts, model.AccountTypeExpense, bal)
	pl.NetProfit = pl.TotalRevenue.Sub(pl.TotalExpenses)
	return pl
}

// BalanceSheet is the statement of financial position. Current-period
// profit is shown as its own equity line rather than folded into the
// equity accounts.
type BalanceSheet struct {
	Assets           []Line          `json:"assets"`
	Liabilities      []Line          `json:"liabilities"`
	Equity           []Line          `json:"equity"`
	TotalAssets      decimal.Decimal `json:"totalAssets"`
	TotalLiabilities decimal.Decimal `json:"totalLiabilities"`
	TotalEquity      decimal.Decimal `json:"totalEquity"`
	NetProfit        decimal.Decimal `json:"netProfit"`

	// BalanceCheck is assets - (liabilities + equity + net profit). A
	// structurally valid ledger keeps it within 0.01 of zero.
	BalanceCheck decimal.Decimal `json:"balanceCheck"`
}

// ComputeBalanceSheet builds the balance sheet. A non-zero BalanceCheck is
// reported, not treated as an error.
func ComputeBalanceSheet(accts []model.Account, bal Balancer) BalanceSheet {
	var bs BalanceSheet
	bs.Assets, bs.TotalAssets = section(accts, model.AccountTypeAsset, bal)
	bs.Liabilities, bs.TotalLiabilities = section(accts, model.AccountTypeLiability, bal)
	bs.Equity, bs.TotalEquity = section(accts, model.AccountTypeEquity, bal)
	bs.NetProfit = ComputeProfitAndLoss(accts, bal).NetProfit
	bs.BalanceCheck = bs.TotalAssets.Sub(bs.TotalLiabilities.Add(bs.TotalEquity).Add(bs.NetProfit))
	return bs
}

// EquityWithProfit is total equity including the current-period result.
func (bs BalanceSheet) EquityWithProfit() decimal.Decimal {
	return bs.TotalEquity.Add(bs.NetProfit)
}

// LiabilitiesAndEquity is the right-hand side of the accounting equation.
func (bs BalanceSheet) LiabilitiesAndEquity() decimal.Decimal {
	return bs.TotalLiabilities.Add(bs.EquityWithProfit())
}

// Balanced reports whether BalanceCheck is within tolerance.
func (bs BalanceSheet) Balanced() bool {
	return model.WithinTolerance(bs.BalanceCheck)
}

// TrialBalanceRow is one account with its balance in the debit or credit column.
type TrialBalanceRow struct {
	AccountID string            `json:"accountId"`
	Code      string            `json:"code"`
	Name      string            `json:"name"`
	Type      model.AccountType `json:"type"`
	Debit     decimal.Decimal   `json:"debit"`
	Credit    decimal.Decimal   `json:"credit"`
}

// TrialBalance lists every account with activity.
type TrialBalance struct {
	Rows        []TrialBalanceRow `json:"rows"`
	TotalDebit  decimal.Decimal   `json:"totalDebit"`
	TotalCredit decimal.Decimal   `json:"totalCredit"`
}

// ComputeTrialBalance places each raw balance in the debit column when
// positive and the credit column when negative.
func ComputeTrialBalance(accts []model.Account, bal Balancer) TrialBalance {
	tb := TrialBalance{TotalDebit: decimal.Zero, TotalCredit: decimal.Zero}
	for _, a := range accts {
		raw := bal.Balance(a.ID)
		if raw.IsZero() {
			continue
		}
		row := TrialBalanceRow{AccountID: a.ID, Code: a.Code, Name: a.Name, Type: a.Type, Debit: decimal.Zero, Credit: decimal.Zero}
		if raw.IsPositive() {
			row.Debit = raw
		} else {
			row.Credit = raw.Neg()
		}
		tb.TotalDebit = tb.TotalDebit.Add(row.Debit)
		tb.TotalCredit = tb.TotalCredit.Add(row.Credit)
		tb.Rows = append(tb.Rows, row)
	}
	return tb
}

// Balanced reports whether the debit and credit columns agree within tolerance.
func (tb TrialBalance) Balanced() bool {
	return model.WithinTolerance(tb.TotalDebit.Sub(tb.TotalCredit))
}
