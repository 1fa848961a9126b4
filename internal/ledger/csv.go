package ledger

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/finlens-dev/finlens/internal/model"
)

// Header is the CSV header for transactions.csv.
const Header = "id,date,raw_date,amount,category_parent,category_child,payer,wallet,note"

const (
	numFields  = 9
	dateFormat = "2006-01-02"
	colID      = 0
	colDate    = 1
	colRawDate = 2
	colAmount  = 3
	colParent  = 4
	colChild   = 5
	colPayer   = 6
	colWallet  = 7
	colNote    = 8
)

// ReadTxs reads all transactions from a transactions.csv reader.
func ReadTxs(r io.Reader) ([]model.Tx, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading transactions CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	// Skip header row.
	var txns []model.Tx
	for i, rec := range records[1:] {
		tx, err := UnmarshalTx(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		txns = append(txns, tx)
	}
	return txns, nil
}

// WriteTxs writes transactions to a transactions.csv writer (with header).
func WriteTxs(w io.Writer, txns []model.Tx) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, tx := range txns {
		if err := cw.Write(MarshalTx(tx)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// MarshalTx converts a Tx to a CSV row.
func MarshalTx(tx model.Tx) []string {
	row := make([]string, numFields)
	row[colID] = tx.ID
	row[colDate] = tx.Date.Format(dateFormat)
	row[colRawDate] = tx.RawDate
	row[colAmount] = strconv.FormatInt(tx.Amount, 10)
	row[colParent] = tx.CategoryParent
	row[colChild] = tx.CategoryChild
	row[colPayer] = tx.Payer
	row[colWallet] = tx.Wallet
	row[colNote] = tx.Note
	return row
}

// UnmarshalTx converts a CSV row to a Tx.
func UnmarshalTx(record []string) (model.Tx, error) {
	if len(record) != numFields {
		return model.Tx{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	date, err := time.Parse(dateFormat, record[colDate])
	if err != nil {
		return model.Tx{}, fmt.Errorf("parsing date %q: %w", record[colDate], err)
	}

	amount, err := strconv.ParseInt(record[colAmount], 10, 64)
	if err != nil {
		return model.Tx{}, fmt.Errorf("parsing amount %q: %w", record[colAmount], err)
	}

	return model.Tx{
		ID:             record[colID],
		Date:           date,
		RawDate:        record[colRawDate],
		Amount:         amount,
		CategoryParent: record[colParent],
		CategoryChild:  record[colChild],
		Payer:          record[colPayer],
		Wallet:         record[colWallet],
		Note:           record[colNote],
	}, nil
}
