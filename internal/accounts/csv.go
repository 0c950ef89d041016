package accounts

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/cleared-dev/books/internal/model"
)

// Header is the CSV header for chart-of-accounts.csv.
var Header = []string{"account_id", "code", "account_name", "account_type", "is_control"}

const (
	numFields  = 5
	colID      = 0
	colCode    = 1
	colName    = 2
	colType    = 3
	colControl = 4
)

// ReadAccounts reads chart-of-accounts.csv.
func ReadAccounts(r io.Reader) ([]model.Account, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading accounts CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	var accounts []model.Account
	for i, rec := range records[1:] {
		acct, err := UnmarshalAccount(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		accounts = append(accounts, acct)
	}
	return accounts, nil
}

// WriteAccounts writes chart-of-accounts.csv.
func WriteAccounts(w io.Writer, accounts []model.Account) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, acct := range accounts {
		if err := cw.Write(MarshalAccount(acct)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalAccount converts an Account to a CSV row.
func MarshalAccount(acct model.Account) []string {
	row := make([]string, numFields)
	row[colID] = acct.ID
	row[colCode] = acct.Code
	row[colName] = acct.Name
	row[colType] = string(acct.Type)
	row[colControl] = strconv.FormatBool(acct.IsControl)
	return row
}

// UnmarshalAccount converts a CSV row to an Account.
func UnmarshalAccount(record []string) (model.Account, error) {
	if len(record) != numFields {
		return model.Account{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	typ := model.AccountType(record[colType])
	if !typ.Valid() {
		return model.Account{}, fmt.Errorf("invalid account_type %q", record[colType])
	}

	var control bool
	if record[colControl] != "" {
		var err error
		control, err = strconv.ParseBool(record[colControl])
		if err != nil {
			return model.Account{}, fmt.Errorf("parsing is_control %q: %w", record[colControl], err)
		}
	}

	return model.Account{
		ID:        record[colID],
		Code:      record[colCode],
		Name:      record[colName],
		Type:      typ,
		IsControl: control,
	}, nil
}
