package model

import "time"

// DefaultPayer labels transactions whose source row has no payer column.
const DefaultPayer = "You"

// Tx is one imported income/expense record. Amounts are whole VND (the
// currency has no minor unit); negative = expense, positive = income.
// Transactions are immutable after import; the next import replaces the
// working set wholesale.
type Tx struct {
	ID             string
	Date           time.Time
	RawDate        string // original CSV text, kept for display, never reparsed
	Amount         int64
	CategoryParent string
	CategoryChild  string
	Payer          string
	Wallet         string
	Note           string
}

// MonthKey returns the canonical "YYYY-MM" key for the transaction's date.
// Lexicographic order of month keys equals chronological order.
func (t Tx) MonthKey() string {
	return t.Date.Format("2006-01")
}

// MonthKeyOf returns the canonical "YYYY-MM" key for a date.
func MonthKeyOf(d time.Time) string {
	return d.Format("2006-01")
}
