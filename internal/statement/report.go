package statement

import (
	"github.com/cleared-dev/books/internal/intent"
	"github.com/cleared-dev/books/internal/ledger"
	"github.com/cleared-dev/books/internal/model"
)

// Report bundles every statement computed from one snapshot.
type Report struct {
	Company      model.Company `json:"company"`
	ProfitLoss   ProfitAndLoss `json:"profitAndLoss"`
	BalanceSheet BalanceSheet  `json:"balanceSheet"`
	TrialBalance TrialBalance  `json:"trialBalance"`
	VAT          VATReturn     `json:"vat"`
	Dashboard    Dashboard     `json:"dashboard"`
}

// Compile derives all statements from snap. Transactions in snap are
// expected newest first, as ledger.Store.Snapshot returns them.
func Compile(snap model.Snapshot, roles intent.Roles) Report {
	eng := ledger.NewEngine(snap.Transactions)
	return Report{
		Company:      snap.Company,
		ProfitLoss:   ComputeProfitAndLoss(snap.Accounts, eng),
		BalanceSheet: ComputeBalanceSheet(snap.Accounts, eng),
		TrialBalance: ComputeTrialBalance(snap.Accounts, eng),
		VAT:          ComputeVATReturn(snap.Accounts, snap.VatCodes, snap.Transactions),
		Dashboard:    ComputeDashboard(snap.Accounts, snap.VatCodes, snap.Transactions, eng, roles),
	}
}
