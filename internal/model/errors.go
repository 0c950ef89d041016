package model

import "fmt"

// ValidationError reports malformed or out-of-range input. Err, when set,
// is the more specific cause, e.g. an *UnknownAccountError on a line.
type ValidationError struct {
	Field  string
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	reason := e.Reason
	if reason == "" && e.Err != nil {
		reason = e.Err.Error()
	}
	if e.Field == "" {
		return "validation: " + reason
	}
	return fmt.Sprintf("validation: %s: %s", e.Field, reason)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// UnknownAccountError reports a reference to an account that is not in the chart.
type UnknownAccountError struct {
	AccountID string
	Role      string // posting role that failed to resolve, if any
}

func (e *UnknownAccountError) Error() string {
	if e.Role != "" {
		return fmt.Sprintf("unknown account %q for role %s", e.AccountID, e.Role)
	}
	return fmt.Sprintf("unknown account %q", e.AccountID)
}

// UnknownVatCodeError reports a reference to a VAT code that does not exist.
type UnknownVatCodeError struct {
	VatCodeID string
}

func (e *UnknownVatCodeError) Error() string {
	return fmt.Sprintf("unknown VAT code %q", e.VatCodeID)
}

// NotFoundError reports an operation that targets a missing entity.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}
