package journal

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/books/internal/model"
)

// Header is the CSV header for journal.csv. One row per journal line;
// rows sharing a transaction_id form one transaction.
const Header = "transaction_id,date,reference,source,description,line_id,account_id,debit,credit,vat_code_id,vat_amount,line_description"

const (
	numFields   = 12
	dateFormat  = "2006-01-02"
	colTxnID    = 0
	colDate     = 1
	colRef      = 2
	colSource   = 3
	colDesc     = 4
	colLineID   = 5
	colAcctID   = 6
	colDebit    = 7
	colCredit   = 8
	colVatCode  = 9
	colVatAmt   = 10
	colLineDesc = 11
)

// ReadTransactions reads journal.csv rows and groups them into transactions
// in file order. Header fields are taken from the first row of each group.
func ReadTransactions(r io.Reader) ([]model.Transaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading journal CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	// Skip header row.
	var txns []model.Transaction
	index := make(map[string]int)
	for i, rec := range records[1:] {
		tx, line, err := UnmarshalRow(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		if tx.ID == "" {
			return nil, fmt.Errorf("row %d: transaction_id is required", i+2)
		}
		n, seen := index[tx.ID]
		if !seen {
			n = len(txns)
			index[tx.ID] = n
			txns = append(txns, tx)
		}
		txns[n].Lines = append(txns[n].Lines, line)
	}
	return txns, nil
}

// WriteTransactions writes transactions to a journal.csv writer (including header).
func WriteTransactions(w io.Writer, txns []model.Transaction) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	row := 2
	for _, tx := range txns {
		for _, line := range tx.Lines {
			if err := cw.Write(MarshalRow(tx, line)); err != nil {
				return fmt.Errorf("writing row %d: %w", row, err)
			}
			row++
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalRow converts one line of tx to a CSV row.
func MarshalRow(tx model.Transaction, line model.JournalLine) []string {
	row := make([]string, numFields)
	row[colTxnID] = tx.ID
	row[colDate] = tx.Date.Format(dateFormat)
	row[colRef] = tx.Reference
	row[colSource] = string(tx.Source)
	row[colDesc] = tx.Description
	row[colLineID] = line.ID
	row[colAcctID] = line.AccountID

	if !line.Debit.IsZero() {
		row[colDebit] = line.Debit.StringFixed(2)
	}
	if !line.Credit.IsZero() {
		row[colCredit] = line.Credit.StringFixed(2)
	}

	row[colVatCode] = line.VatCodeID
	if !line.VatAmount.IsZero() {
		row[colVatAmt] = line.VatAmount.StringFixed(2)
	}
	row[colLineDesc] = line.Description

	return row
}

// UnmarshalRow converts a CSV row to its transaction header and line.
// The returned transaction has no lines.
func UnmarshalRow(record []string) (model.Transaction, model.JournalLine, error) {
	if len(record) != numFields {
		return model.Transaction{}, model.JournalLine{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	date, err := time.Parse(dateFormat, record[colDate])
	if err != nil {
		return model.Transaction{}, model.JournalLine{}, fmt.Errorf("parsing date %q: %w", record[colDate], err)
	}

	source := model.Source(record[colSource])
	switch source {
	case "":
		source = model.SourceManual
	case model.SourceManual, model.SourceGuided, model.SourceImport:
	default:
		return model.Transaction{}, model.JournalLine{}, fmt.Errorf("invalid source %q", record[colSource])
	}

	amounts := make(map[int]decimal.Decimal, 3)
	for _, col := range []int{colDebit, colCredit, colVatAmt} {
		if record[col] == "" {
			amounts[col] = decimal.Zero
			continue
		}
		d, err := decimal.NewFromString(record[col])
		if err != nil {
			return model.Transaction{}, model.JournalLine{}, fmt.Errorf("parsing amount %q: %w", record[col], err)
		}
		amounts[col] = d
	}

	tx := model.Transaction{
		ID:          record[colTxnID],
		Date:        date,
		Description: record[colDesc],
		Reference:   record[colRef],
		Source:      source,
	}
	line := model.JournalLine{
		ID:            record[colLineID],
		TransactionID: record[colTxnID],
		AccountID:     record[colAcctID],
		Debit:         amounts[colDebit],
		Credit:        amounts[colCredit],
		VatCodeID:     record[colVatCode],
		VatAmount:     amounts[colVatAmt],
		Description:   record[colLineDesc],
	}
	return tx, line, nil
}
