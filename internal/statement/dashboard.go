package statement

import (
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/books/internal/intent"
	"github.com/cleared-dev/books/internal/model"
)

// RecentLimit is how many transactions the dashboard lists.
const RecentLimit = 5

// Dashboard is the at-a-glance summary of the books.
type Dashboard struct {
	BankBalance decimal.Decimal `json:"bankBalance"`
	Revenue     decimal.Decimal `json:"revenue"`
	Expenses    decimal.Decimal `json:"expenses"`
	NetProfit   decimal.Decimal `json:"netProfit"`
	VatDue      decimal.Decimal `json:"vatDue"`

	// DirectorLoan is the raw balance of the director loan account. A debit
	// balance means the director owes the company.
	DirectorLoan decimal.Decimal     `json:"directorLoan"`
	Overdrawn    bool                `json:"overdrawn"`
	Recent       []model.Transaction `json:"recent"`
}

// ComputeDashboard summarises the books. txns must be newest first.
func ComputeDashboard(accts []model.Account, vatCodes []model.VatCode, txns []model.Transaction, bal Balancer, roles intent.Roles) Dashboard {
	pl := ComputeProfitAndLoss(accts, bal)
	dla := bal.Balance(roles.DirectorLoan)
	return Dashboard{
		BankBalance:  bal.Balance(roles.Bank),
		Revenue:      pl.TotalRevenue,
		Expenses:     pl.TotalExpenses,
		NetProfit:    pl.NetProfit,
		VatDue:       ComputeVATReturn(accts, vatCodes, txns).T3,
		DirectorLoan: dla,
		Overdrawn:    dla.IsPositive(),
		Recent:       txns[:min(len(txns), RecentLimit)],
	}
}
