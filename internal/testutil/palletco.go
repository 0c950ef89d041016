// Package testutil provides ledger fixtures shared by package tests.
package testutil

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/books/internal/accounts"
	"github.com/cleared-dev/books/internal/model"
)

// PalletCoAccounts is the chart of a small pallet manufacturer.
func PalletCoAccounts() []model.Account {
	return []model.Account{
		{ID: "acc_bank", Code: "1000", Name: "Bank Current Account", Type: model.AccountTypeAsset},
		{ID: "acc_inv_raw", Code: "1500", Name: "Inventory - Raw Materials", Type: model.AccountTypeAsset},
		{ID: "acc_inv_fin", Code: "1510", Name: "Inventory - Finished Goods", Type: model.AccountTypeAsset},
		{ID: "acc_fa_plant", Code: "1600", Name: "Fixed Assets - Plant & Machinery", Type: model.AccountTypeAsset},
		{ID: "acc_acc_dep", Code: "1690", Name: "Accumulated Depreciation", Type: model.AccountTypeAsset, IsControl: true},
		{ID: "acc_ar", Code: "1100", Name: "Accounts Receivable", Type: model.AccountTypeAsset, IsControl: true},
		{ID: "acc_vat_in", Code: "1300", Name: "VAT Recoverable (Input)", Type: model.AccountTypeAsset, IsControl: true},

		{ID: "acc_ap", Code: "2000", Name: "Accounts Payable", Type: model.AccountTypeLiability, IsControl: true},
		{ID: "acc_vat_out", Code: "2100", Name: "VAT Payable (Output)", Type: model.AccountTypeLiability, IsControl: true},
		{ID: "acc_pay_liab", Code: "2200", Name: "Payroll Liabilities", Type: model.AccountTypeLiability, IsControl: true},

		{ID: "acc_share_cap", Code: "3000", Name: "Share Capital", Type: model.AccountTypeEquity},
		{ID: "acc_ret_earn", Code: "3100", Name: "Retained Earnings", Type: model.AccountTypeEquity},

		{ID: "acc_rev_wood", Code: "4000", Name: "Sales - Wood Pallets", Type: model.AccountTypeRevenue},
		{ID: "acc_rev_plas", Code: "4010", Name: "Sales - Plastic Pallets", Type: model.AccountTypeRevenue},

		{ID: "acc_cogs_mat", Code: "5000", Name: "COGS - Materials", Type: model.AccountTypeExpense},
		{ID: "acc_wages", Code: "6000", Name: "Wages & Salaries", Type: model.AccountTypeExpense},
		{ID: "acc_prsi_er", Code: "6010", Name: "Employer PRSI", Type: model.AccountTypeExpense},
		{ID: "acc_util", Code: "6200", Name: "Utilities/Energy", Type: model.AccountTypeExpense},
		{ID: "acc_dep_exp", Code: "6800", Name: "Depreciation Expense", Type: model.AccountTypeExpense},
	}
}

// Line is a compact journal line for building fixtures.
type Line struct {
	Account   string
	Debit     int64
	Credit    int64
	VatCode   string
	VatAmount int64
}

// Txn builds a transaction dated on day in January 2026.
func Txn(txID string, day int, desc string, src model.Source, lines ...Line) model.Transaction {
	d := time.Date(2026, time.January, day, 0, 0, 0, 0, time.UTC)
	tx := model.Transaction{
		ID:          txID,
		Date:        d,
		Description: desc,
		Source:      src,
		CreatedAt:   d.Add(9 * time.Hour),
	}
	for i, l := range lines {
		tx.Lines = append(tx.Lines, model.JournalLine{
			ID:            txID + "_" + string(rune('a'+i)),
			TransactionID: txID,
			AccountID:     l.Account,
			Debit:         decimal.NewFromInt(l.Debit),
			Credit:        decimal.NewFromInt(l.Credit),
			VatCodeID:     l.VatCode,
			VatAmount:     decimal.NewFromInt(l.VatAmount),
		})
	}
	return tx
}

// PalletCoTransactions is one month of trading, oldest first.
func PalletCoTransactions() []model.Transaction {
	return []model.Transaction{
		Txn("t_open", 1, "Opening Balances", model.SourceManual,
			Line{Account: "acc_bank", Debit: 200000},
			Line{Account: "acc_inv_raw", Debit: 60000},
			Line{Account: "acc_inv_fin", Debit: 40000},
			Line{Account: "acc_fa_plant", Debit: 500000},
			Line{Account: "acc_acc_dep", Credit: 150000},
			Line{Account: "acc_share_cap", Credit: 100000},
			Line{Account: "acc_ret_earn", Credit: 550000},
		),
		Txn("t_buy_mat", 5, "Purchase Raw Materials", model.SourceGuided,
			Line{Account: "acc_inv_raw", Debit: 50000, VatCode: "vat_23", VatAmount: 11500},
			Line{Account: "acc_vat_in", Debit: 11500},
			Line{Account: "acc_ap", Credit: 61500},
		),
		Txn("t_pay_sup", 6, "Pay Supplier", model.SourceGuided,
			Line{Account: "acc_ap", Debit: 61500},
			Line{Account: "acc_bank", Credit: 61500},
		),
		Txn("t_issue_mat", 10, "Issue Materials to Production", model.SourceManual,
			Line{Account: "acc_cogs_mat", Debit: 30000},
			Line{Account: "acc_inv_raw", Credit: 30000},
		),
		Txn("t_sale_a", 15, "Sale Wood Pallets", model.SourceGuided,
			Line{Account: "acc_ar", Debit: 98400},
			Line{Account: "acc_rev_wood", Credit: 80000, VatCode: "vat_23", VatAmount: 18400},
			Line{Account: "acc_vat_out", Credit: 18400},
		),
		Txn("t_sale_b", 16, "Sale Plastic Pallets", model.SourceGuided,
			Line{Account: "acc_ar", Debit: 61500},
			Line{Account: "acc_rev_plas", Credit: 50000, VatCode: "vat_23", VatAmount: 11500},
			Line{Account: "acc_vat_out", Credit: 11500},
		),
		Txn("t_rec_a", 20, "Payment Cust A", model.SourceGuided,
			Line{Account: "acc_bank", Debit: 98400},
			Line{Account: "acc_ar", Credit: 98400},
		),
		Txn("t_rec_b", 20, "Payment Cust B", model.SourceGuided,
			Line{Account: "acc_bank", Debit: 61500},
			Line{Account: "acc_ar", Credit: 61500},
		),
		Txn("t_payroll", 25, "Jan Payroll", model.SourceGuided,
			Line{Account: "acc_wages", Debit: 480000},
			Line{Account: "acc_prsi_er", Debit: 55000},
			Line{Account: "acc_bank", Credit: 330000},
			Line{Account: "acc_pay_liab", Credit: 205000},
		),
		Txn("t_pay_tax", 28, "Pay Payroll Taxes", model.SourceGuided,
			Line{Account: "acc_pay_liab", Debit: 205000},
			Line{Account: "acc_bank", Credit: 205000},
		),
		Txn("t_util", 29, "Utilities Bill Paid", model.SourceGuided,
			Line{Account: "acc_util", Debit: 20000, VatCode: "vat_23", VatAmount: 4600},
			Line{Account: "acc_vat_in", Debit: 4600},
			Line{Account: "acc_bank", Credit: 24600},
		),
		Txn("t_dep", 31, "Jan Depreciation", model.SourceManual,
			Line{Account: "acc_dep_exp", Debit: 8000},
			Line{Account: "acc_acc_dep", Credit: 8000},
		),
	}
}

// PalletCoSnapshot returns the pallet company books, transactions newest first.
func PalletCoSnapshot() model.Snapshot {
	txns := PalletCoTransactions()
	newest := make([]model.Transaction, len(txns))
	for i, tx := range txns {
		newest[len(txns)-1-i] = tx
	}
	return model.Snapshot{
		Version: model.SnapshotVersion,
		Company: model.Company{
			ID:            "comp_pallet",
			Name:          "Irish Pallet Co Ltd",
			Currency:      "EUR",
			VatRegistered: true,
			Country:       "IE",
		},
		Accounts:     PalletCoAccounts(),
		VatCodes:     accounts.DefaultVatCodes(),
		Transactions: newest,
	}
}
