package render

import (
	"io"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/books/internal/activity"
	"github.com/cleared-dev/books/internal/model"
)

const dateFormat = "2006-01-02"

// Accounts writes the chart with each account's balance in its natural sign.
func Accounts(w io.Writer, accts []model.Account, balance func(string) decimal.Decimal) {
	g := newGrid([]string{"Code", "Account", "Type", "Control", "Balance"}, 4)
	for _, a := range accts {
		control := ""
		if a.IsControl {
			control = "yes"
		}
		g.add(a.Code, a.Name, string(a.Type), control, Money(a.Type.Natural(balance(a.ID))))
	}
	g.write(w)
}

// Transactions writes one row per transaction.
func Transactions(w io.Writer, txns []model.Transaction) {
	g := newGrid([]string{"Date", "Reference", "Description", "Source", "Amount"}, 4)
	for _, tx := range txns {
		g.add(tx.Date.Format(dateFormat), tx.Reference, tx.Description, string(tx.Source), Money(tx.TotalDebit()))
	}
	g.write(w)
}

// Journal writes the lines of a transaction. name resolves account ids.
func Journal(w io.Writer, tx model.Transaction, name func(string) string) {
	Title(w, tx.Description, tx.Date.Format(dateFormat)+"  "+tx.Reference)
	g := newGrid([]string{"Account", "Debit", "Credit", "VAT Code", "VAT"}, 1, 2, 4)
	for _, l := range tx.Lines {
		g.add(name(l.AccountID), moneyOrBlank(l.Debit), moneyOrBlank(l.Credit), l.VatCodeID, moneyOrBlank(l.VatAmount))
	}
	g.addTotal("Total", Money(tx.TotalDebit()), Money(tx.TotalCredit()), "", "")
	g.write(w)
}

// Activity writes the activity log, newest last.
func Activity(w io.Writer, entries []activity.Entry) {
	g := newGrid([]string{"Time", "Action", "Source", "Reference", "Details"})
	for _, e := range entries {
		g.add(e.Timestamp.Local().Format("2006-01-02 15:04"), e.Action, e.Source, e.Reference, e.Details)
	}
	g.write(w)
}
