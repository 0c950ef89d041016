package journal

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/books/internal/model"
)

// mockRefs implements References for testing.
type mockRefs struct {
	accounts map[string]bool
	vatCodes map[string]bool
}

func (m *mockRefs) FindAccount(id string) (model.Account, bool) {
	return model.Account{ID: id}, m.accounts[id]
}

func (m *mockRefs) FindVatCode(id string) (model.VatCode, bool) {
	return model.VatCode{ID: id}, m.vatCodes[id]
}

func newMockRefs(accountIDs ...string) *mockRefs {
	m := &mockRefs{accounts: make(map[string]bool), vatCodes: map[string]bool{"vat_23": true}}
	for _, id := range accountIDs {
		m.accounts[id] = true
	}
	return m
}

var defaultRefs = newMockRefs("acc_1000", "acc_1100", "acc_2100", "acc_4000", "acc_6400")

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func balancedTxn(debitAcct, creditAcct, amount string) model.Transaction {
	return model.Transaction{
		ID:          "t1",
		Date:        date(2026, 1, 15),
		Description: "Test entry",
		Source:      model.SourceManual,
		Lines: []model.JournalLine{
			{ID: "l1", AccountID: debitAcct, Debit: dec(amount)},
			{ID: "l2", AccountID: creditAcct, Credit: dec(amount)},
		},
	}
}

func invariants(issues []Issue) []int {
	var out []int
	for _, i := range issues {
		out = append(out, i.Invariant)
	}
	return out
}

func TestValidate_Balanced(t *testing.T) {
	issues := ValidateTransaction(balancedTxn("acc_6400", "acc_1000", "100.00"), defaultRefs)
	assert.Empty(t, issues)
	assert.NoError(t, Err(issues))
}

func TestValidate_Invariant1_Unbalanced(t *testing.T) {
	tx := balancedTxn("acc_6400", "acc_1000", "100.00")
	tx.Lines[1].Credit = dec("99.00")

	issues := ValidateTransaction(tx, defaultRefs)
	require.Equal(t, []int{InvBalanced}, invariants(issues))
	assert.Contains(t, issues[0].Description, "debits (100.00) != credits (99.00)")

	var verr *model.ValidationError
	require.ErrorAs(t, Err(issues), &verr)
	assert.Equal(t, "lines", verr.Field)
}

func TestValidate_Invariant1_WithinTolerance(t *testing.T) {
	tx := balancedTxn("acc_6400", "acc_1000", "100.00")
	tx.Lines[1].Credit = dec("99.99")

	issues := ValidateTransaction(tx, defaultRefs)
	assert.NotContains(t, invariants(issues), InvBalanced)
}

func TestValidate_Invariant2_OneSidedIsWarning(t *testing.T) {
	tx := balancedTxn("acc_6400", "acc_1000", "100.00")
	tx.Lines = append(tx.Lines, model.JournalLine{ID: "l3", AccountID: "acc_1100"})

	issues := ValidateTransaction(tx, defaultRefs)
	require.Equal(t, []int{InvOneSided}, invariants(issues))
	assert.True(t, issues[0].Warning)
	assert.Empty(t, Blocking(issues))
	assert.NoError(t, Err(issues))
}

func TestValidate_Invariant3_UnknownAccount(t *testing.T) {
	issues := ValidateTransaction(balancedTxn("acc_9999", "acc_1000", "10"), defaultRefs)
	require.Equal(t, []int{InvAccountRef}, invariants(issues))

	var unknown *model.UnknownAccountError
	require.ErrorAs(t, Err(issues), &unknown)
	assert.Equal(t, "acc_9999", unknown.AccountID)

	var verr *model.ValidationError
	require.ErrorAs(t, Err(issues), &verr)
	assert.Equal(t, "line", verr.Field)
}

func TestValidate_Invariant4_UnknownVatCode(t *testing.T) {
	tx := balancedTxn("acc_6400", "acc_1000", "10")
	tx.Lines[0].VatCodeID = "vat_99"

	issues := ValidateTransaction(tx, defaultRefs)
	require.Equal(t, []int{InvVatCodeRef}, invariants(issues))

	var unknown *model.UnknownVatCodeError
	require.ErrorAs(t, Err(issues), &unknown)
	assert.Equal(t, "vat_99", unknown.VatCodeID)

	var verr *model.ValidationError
	assert.ErrorAs(t, Err(issues), &verr)
}

func TestValidate_Invariant5_Negative(t *testing.T) {
	tx := balancedTxn("acc_6400", "acc_1000", "-10")
	issues := ValidateTransaction(tx, defaultRefs)
	assert.Contains(t, invariants(issues), InvNonNegative)

	var verr *model.ValidationError
	assert.ErrorAs(t, Err(issues), &verr)
}

func TestValidate_Invariant6_EmptyDescription(t *testing.T) {
	tx := balancedTxn("acc_6400", "acc_1000", "10")
	tx.Description = "   "

	issues := ValidateTransaction(tx, defaultRefs)
	require.Equal(t, []int{InvDescription}, invariants(issues))

	var verr *model.ValidationError
	require.ErrorAs(t, Err(issues), &verr)
	assert.Equal(t, "description", verr.Field)
}

func TestValidate_Invariant7_TooFewLines(t *testing.T) {
	tx := balancedTxn("acc_6400", "acc_1000", "10")
	tx.Lines = nil

	issues := ValidateTransaction(tx, defaultRefs)
	assert.Equal(t, []int{InvMinLines}, invariants(issues))
}

func TestValidate_Invariant8_ExtraDecimalsIsWarning(t *testing.T) {
	tx := balancedTxn("acc_6400", "acc_1000", "10.005")
	issues := ValidateTransaction(tx, defaultRefs)
	require.Len(t, issues, 2)
	for _, i := range issues {
		assert.Equal(t, InvTwoDecimals, i.Invariant)
		assert.True(t, i.Warning)
	}
}

func TestErr_ReferencesTakePrecedence(t *testing.T) {
	tx := balancedTxn("acc_9999", "acc_1000", "10")
	tx.Description = ""

	var unknown *model.UnknownAccountError
	assert.ErrorAs(t, Err(ValidateTransaction(tx, defaultRefs)), &unknown)
}

func TestIssueError(t *testing.T) {
	assert.Equal(t, "invariant 3 [l1]: unknown account \"x\"",
		Issue{Invariant: 3, LineID: "l1", Description: "unknown account \"x\""}.Error())
	assert.Equal(t, "invariant 6: description must not be empty",
		Issue{Invariant: 6, Description: "description must not be empty"}.Error())
}
