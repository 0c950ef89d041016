package journal

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/books/internal/model"
)

// Invariant numbers checked by ValidateTransaction.
const (
	InvBalanced    = 1 // sum(debit) == sum(credit) within tolerance
	InvOneSided    = 2 // each line has exactly one of debit or credit (warning)
	InvAccountRef  = 3 // each line references a known account
	InvVatCodeRef  = 4 // each VAT code reference resolves
	InvNonNegative = 5 // debit, credit and VAT amounts are >= 0
	InvDescription = 6 // transaction description is non-empty
	InvMinLines    = 7 // at least two lines
	InvTwoDecimals = 8 // amounts have at most 2 decimal places (warning)
)

const (
	minLinesPerTxn  = 2
	maxAmountPlaces = 2
)

// Issue describes a single invariant violation.
type Issue struct {
	Invariant   int
	LineID      string
	Ref         string // offending account or VAT code id
	Description string
	Warning     bool // warnings never block a posting
}

func (i Issue) Error() string {
	if i.LineID == "" {
		return fmt.Sprintf("invariant %d: %s", i.Invariant, i.Description)
	}
	return fmt.Sprintf("invariant %d [%s]: %s", i.Invariant, i.LineID, i.Description)
}

// References resolves the ids a transaction may point at.
type References interface {
	FindAccount(id string) (model.Account, bool)
	FindVatCode(id string) (model.VatCode, bool)
}

// ValidateTransaction checks tx against the structural invariants.
func ValidateTransaction(tx model.Transaction, refs References) []Issue {
	var issues []Issue

	if strings.TrimSpace(tx.Description) == "" {
		issues = append(issues, Issue{
			Invariant:   InvDescription,
			Description: "description must not be empty",
		})
	}

	if len(tx.Lines) < minLinesPerTxn {
		issues = append(issues, Issue{
			Invariant:   InvMinLines,
			Description: fmt.Sprintf("transaction has %d lines, need at least %d", len(tx.Lines), minLinesPerTxn),
		})
	}

	if !tx.Balanced() {
		issues = append(issues, Issue{
			Invariant: InvBalanced,
			Description: fmt.Sprintf("debits (%s) != credits (%s)",
				tx.TotalDebit().StringFixed(2), tx.TotalCredit().StringFixed(2)),
		})
	}

	for _, line := range tx.Lines {
		if _, ok := refs.FindAccount(line.AccountID); !ok {
			issues = append(issues, Issue{
				Invariant:   InvAccountRef,
				LineID:      line.ID,
				Ref:         line.AccountID,
				Description: fmt.Sprintf("unknown account %q", line.AccountID),
			})
		}

		if line.VatCodeID != "" {
			if _, ok := refs.FindVatCode(line.VatCodeID); !ok {
				issues = append(issues, Issue{
					Invariant:   InvVatCodeRef,
					LineID:      line.ID,
					Ref:         line.VatCodeID,
					Description: fmt.Sprintf("unknown VAT code %q", line.VatCodeID),
				})
			}
		}

		if line.Debit.IsNegative() || line.Credit.IsNegative() || line.VatAmount.IsNegative() {
			issues = append(issues, Issue{
				Invariant:   InvNonNegative,
				LineID:      line.ID,
				Description: "debit, credit and VAT amount must not be negative",
			})
		}

		hasDebit := !line.Debit.IsZero()
		hasCredit := !line.Credit.IsZero()
		if hasDebit == hasCredit {
			issues = append(issues, Issue{
				Invariant:   InvOneSided,
				LineID:      line.ID,
				Description: "line should have exactly one of debit or credit",
				Warning:     true,
			})
		}

		for _, amt := range []decimal.Decimal{line.Debit, line.Credit} {
			if !amt.Equal(amt.Truncate(maxAmountPlaces)) {
				issues = append(issues, Issue{
					Invariant:   InvTwoDecimals,
					LineID:      line.ID,
					Description: fmt.Sprintf("amount %s has more than %d decimal places", amt, maxAmountPlaces),
					Warning:     true,
				})
			}
		}
	}

	return issues
}

// Blocking returns the issues that are not warnings.
func Blocking(issues []Issue) []Issue {
	var out []Issue
	for _, i := range issues {
		if !i.Warning {
			out = append(out, i)
		}
	}
	return out
}

// Err converts the first blocking issue into a typed error, or returns nil.
// Dangling references take precedence and wrap the typed reference error,
// so callers can match either.
func Err(issues []Issue) error {
	blocking := Blocking(issues)
	if len(blocking) == 0 {
		return nil
	}
	for _, i := range blocking {
		switch i.Invariant {
		case InvAccountRef:
			return &model.ValidationError{Field: "line", Err: &model.UnknownAccountError{AccountID: i.Ref}}
		case InvVatCodeRef:
			return &model.ValidationError{Field: "line", Err: &model.UnknownVatCodeError{VatCodeID: i.Ref}}
		}
	}

	msgs := make([]string, len(blocking))
	for n, i := range blocking {
		msgs[n] = i.Error()
	}
	return &model.ValidationError{Field: fieldFor(blocking[0].Invariant), Reason: strings.Join(msgs, "; ")}
}

func fieldFor(invariant int) string {
	switch invariant {
	case InvDescription:
		return "description"
	case InvBalanced, InvMinLines:
		return "lines"
	default:
		return "line"
	}
}
