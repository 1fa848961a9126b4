package importer

import (
	"encoding/csv"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/finlens-dev/finlens/internal/id"
	"github.com/finlens-dev/finlens/internal/model"
	"github.com/finlens-dev/finlens/internal/taxonomy"
)

// IssueKind classifies a per-row import problem.
type IssueKind string

const (
	// IssueMissingField: a required column is absent or unusable; row dropped.
	IssueMissingField IssueKind = "missing-field"
	// IssueBadAmount: amount text unparseable; row dropped.
	IssueBadAmount IssueKind = "bad-amount"
	// IssueUnresolvedCategory: category not in the taxonomy; row kept and
	// reclassified as Uncategorized. Financial records must not silently
	// disappear.
	IssueUnresolvedCategory IssueKind = "unresolved-category"
)

// Issue reports one problem row. Row is the 1-based row number in the
// source CSV, counting the header row if present.
type Issue struct {
	Kind   IssueKind
	Row    int
	Detail string
}

func (i Issue) Error() string {
	return fmt.Sprintf("row %d: %s: %s", i.Row, i.Kind, i.Detail)
}

// Result is the outcome of one CSV import. Row problems never abort the
// import; only a structurally unreadable file does.
type Result struct {
	Transactions    []model.Tx
	MonthsAvailable []string // distinct month keys, sorted ascending
	Issues          []Issue
}

// Positional fallback schema, used when the first row is not a header.
const (
	colDate     = 0
	colAmount   = 1
	colCategory = 2
	colType     = 3
	colPayer    = 4
	colWallet   = 5
	colNote     = 6
)

// columns maps the expected schema onto column indexes; -1 = absent.
type columns struct {
	date, amount, category, typ, payer, wallet, note int
}

var dateFormats = []string{
	"2006-01-02",
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	"2006/01/02",
}

// Import parses raw CSV text into normalized transactions. Individual row
// problems are collected into Result.Issues; a non-nil error means the input
// could not be read as CSV at all and no transactions were produced.
func Import(rawText string, tax *taxonomy.Taxonomy) (*Result, error) {
	cr := csv.NewReader(strings.NewReader(rawText))
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing CSV: %w", err)
	}

	res := &Result{}
	if len(records) == 0 {
		return res, nil
	}

	cols, dataStart := mapColumns(records[0])

	months := make(map[string]bool)
	for i := dataStart; i < len(records); i++ {
		rec := records[i]
		row := i + 1

		if isBlank(rec) {
			continue
		}

		tx, issue := parseRow(rec, row, cols, tax)
		if issue != nil {
			res.Issues = append(res.Issues, *issue)
			if issue.Kind != IssueUnresolvedCategory {
				continue
			}
		}
		if tx == nil {
			continue
		}
		if tx.Amount == 0 {
			continue
		}
		months[tx.MonthKey()] = true
		res.Transactions = append(res.Transactions, *tx)
	}

	res.MonthsAvailable = make([]string, 0, len(months))
	for m := range months {
		res.MonthsAvailable = append(res.MonthsAvailable, m)
	}
	sort.Strings(res.MonthsAvailable)

	return res, nil
}

// mapColumns inspects the first record. A recognized header row yields a
// name-based mapping and dataStart=1; otherwise the positional schema
// applies from row one.
func mapColumns(first []string) (columns, int) {
	cols := columns{date: -1, amount: -1, category: -1, typ: -1, payer: -1, wallet: -1, note: -1}
	headerHit := false

	for idx, cell := range first {
		switch normalizeHeader(cell) {
		case "date", "ngay":
			cols.date = idx
			headerHit = true
		case "amount", "sotien":
			cols.amount = idx
			headerHit = true
		case "category", "danhmuc":
			cols.category = idx
			headerHit = true
		case "type", "loai":
			cols.typ = idx
			headerHit = true
		case "payer", "nguoichi":
			cols.payer = idx
			headerHit = true
		case "wallet", "vi":
			cols.wallet = idx
			headerHit = true
		case "note", "ghichu":
			cols.note = idx
			headerHit = true
		}
	}

	if headerHit {
		return cols, 1
	}
	return columns{
		date:     colDate,
		amount:   colAmount,
		category: colCategory,
		typ:      colType,
		payer:    colPayer,
		wallet:   colWallet,
		note:     colNote,
	}, 0
}

func normalizeHeader(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Map(func(r rune) rune {
		if r == ' ' || r == '_' || r == '-' {
			return -1
		}
		return r
	}, s)
}

func isBlank(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

func field(rec []string, idx int) string {
	if idx < 0 || idx >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[idx])
}

// parseRow converts one CSV record. It returns a transaction, or an issue,
// or both for a kept-but-reclassified row (unresolved category).
func parseRow(rec []string, row int, cols columns, tax *taxonomy.Taxonomy) (*model.Tx, *Issue) {
	rawDate := field(rec, cols.date)
	if rawDate == "" {
		return nil, &Issue{Kind: IssueMissingField, Row: row, Detail: "missing date"}
	}

	date, ok := parseDate(rawDate)
	if !ok {
		return nil, &Issue{Kind: IssueMissingField, Row: row, Detail: fmt.Sprintf("unusable date %q", rawDate)}
	}

	rawAmount := field(rec, cols.amount)
	if rawAmount == "" {
		return nil, &Issue{Kind: IssueMissingField, Row: row, Detail: "missing amount"}
	}

	amount, err := ParseAmount(rawAmount, field(rec, cols.typ))
	if err != nil {
		return nil, &Issue{Kind: IssueBadAmount, Row: row, Detail: err.Error()}
	}

	rawCategory := field(rec, cols.category)
	if rawCategory == "" {
		return nil, &Issue{Kind: IssueMissingField, Row: row, Detail: "missing category"}
	}

	parent, child := splitCategory(rawCategory)
	parent, child, resolved := tax.Resolve(parent, child)

	payer := field(rec, cols.payer)
	if payer == "" {
		payer = model.DefaultPayer
	}

	monthKey := model.MonthKeyOf(date)
	tx := &model.Tx{
		ID:             id.FormatTxID(monthKey, row),
		Date:           date,
		RawDate:        rawDate,
		Amount:         amount,
		CategoryParent: parent,
		CategoryChild:  child,
		Payer:          payer,
		Wallet:         field(rec, cols.wallet),
		Note:           field(rec, cols.note),
	}

	if !resolved {
		return tx, &Issue{Kind: IssueUnresolvedCategory, Row: row, Detail: fmt.Sprintf("unknown category %q", rawCategory)}
	}
	return tx, nil
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateFormats {
		if d, err := time.Parse(layout, s); err == nil {
			return d, true
		}
	}
	return time.Time{}, false
}

// splitCategory splits a combined "Parent/Child" field. A value without a
// slash is treated as a child-only lookup.
func splitCategory(s string) (parent, child string) {
	if p, c, ok := strings.Cut(s, "/"); ok {
		return strings.TrimSpace(p), strings.TrimSpace(c)
	}
	return "", strings.TrimSpace(s)
}
