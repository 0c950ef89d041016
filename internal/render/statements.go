package render

import (
	"fmt"
	"io"

	"github.com/cleared-dev/books/internal/statement"
)

// ProfitAndLoss writes the income statement.
func ProfitAndLoss(w io.Writer, company string, pl statement.ProfitAndLoss) {
	Title(w, "Profit & Loss", company)
	g := newGrid([]string{"Code", "Account", "Amount"}, 2)
	g.addTotal("", "Revenue", "")
	for _, l := range pl.Revenue {
		g.add(l.Code, l.Name, Money(l.Amount))
	}
	g.addTotal("", "Total Revenue", Money(pl.TotalRevenue))
	g.addTotal("", "Expenses", "")
	for _, l := range pl.Expenses {
		g.add(l.Code, l.Name, Money(l.Amount))
	}
	g.addTotal("", "Total Expenses", Money(pl.TotalExpenses))
	g.addTotal("", "Net Profit", Money(pl.NetProfit))
	g.write(w)
}

// BalanceSheet writes the balance sheet and flags a non-zero balance check.
func BalanceSheet(w io.Writer, company string, bs statement.BalanceSheet) {
	Title(w, "Balance Sheet", company)
	g := newGrid([]string{"Code", "Account", "Amount"}, 2)
	g.addTotal("", "Assets", "")
	for _, l := range bs.Assets {
		g.add(l.Code, l.Name, Money(l.Amount))
	}
	g.addTotal("", "Total Assets", Money(bs.TotalAssets))
	g.addTotal("", "Liabilities", "")
	for _, l := range bs.Liabilities {
		g.add(l.Code, l.Name, Money(l.Amount))
	}
	g.addTotal("", "Total Liabilities", Money(bs.TotalLiabilities))
	g.addTotal("", "Equity", "")
	for _, l := range bs.Equity {
		g.add(l.Code, l.Name, Money(l.Amount))
	}
	g.add("", "Current Year Earnings", Money(bs.NetProfit))
	g.addTotal("", "Total Equity", Money(bs.EquityWithProfit()))
	g.addTotal("", "Total Liabilities & Equity", Money(bs.LiabilitiesAndEquity()))
	g.write(w)

	if bs.Balanced() {
		Success(w, "Balance check: %s", Money(bs.BalanceCheck))
	} else {
		fmt.Fprintln(w, errorStyle.Render("✗ ")+fmt.Sprintf("Balance check: %s (assets do not equal liabilities + equity)", Money(bs.BalanceCheck)))
	}
}

// TrialBalance writes every account with activity in debit and credit columns.
func TrialBalance(w io.Writer, company string, tb statement.TrialBalance) {
	Title(w, "Trial Balance", company)
	g := newGrid([]string{"Code", "Account", "Type", "Debit", "Credit"}, 3, 4)
	for _, r := range tb.Rows {
		g.add(r.Code, r.Name, string(r.Type), moneyOrBlank(r.Debit), moneyOrBlank(r.Credit))
	}
	g.addTotal("", "Total", "", Money(tb.TotalDebit), Money(tb.TotalCredit))
	g.write(w)
}

// VATReturn writes the per-code summary and the T1/T2/T3 boxes. Codes no
// line used are skipped.
func VATReturn(w io.Writer, company string, v statement.VATReturn) {
	Title(w, "VAT Return", company)
	g := newGrid([]string{"Code", "Rate", "Sales Net", "Sales VAT", "Purchase Net", "Purchase VAT"}, 1, 2, 3, 4, 5)
	for _, r := range v.Rows {
		if r.Empty() {
			continue
		}
		rate := r.VatCode.Rate.Shift(2).String() + "%"
		g.add(r.VatCode.Code, rate, Money(r.SalesNet), Money(r.SalesVat), Money(r.PurchaseNet), Money(r.PurchaseVat))
	}
	g.write(w)

	boxes := newGrid([]string{"Box", "Description", "Amount"}, 2)
	boxes.add("T1", "VAT on sales", Money(v.T1))
	boxes.add("T2", "VAT on purchases", Money(v.T2))
	if v.Payable() {
		boxes.addTotal("T3", "Net VAT payable", Money(v.T3))
	} else {
		boxes.addTotal("T3", "Net VAT repayable", Money(v.T3.Neg()))
	}
	boxes.write(w)
}

// Dashboard writes the headline figures and recent activity.
func Dashboard(w io.Writer, company string, d statement.Dashboard) {
	Title(w, "Dashboard", company)
	g := newGrid([]string{"Figure", "Amount"}, 1)
	g.add("Bank Balance", Money(d.BankBalance))
	g.add("Revenue", Money(d.Revenue))
	g.add("Expenses", Money(d.Expenses))
	g.addTotal("Net Profit", Money(d.NetProfit))
	g.add("VAT Due", Money(d.VatDue))
	g.write(w)

	if d.Overdrawn {
		Warning(w, "Director loan overdrawn: director owes the company %s (Dr)", Money(d.DirectorLoan))
	} else {
		Success(w, "Director loan: company owes the director %s (Cr)", Money(d.DirectorLoan.Abs()))
	}

	if len(d.Recent) > 0 {
		fmt.Fprintln(w)
		Title(w, "Recent Transactions", "")
		Transactions(w, d.Recent)
	}
}
