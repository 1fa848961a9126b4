// Package analytics contains the pure aggregation functions: monthly
// income/expense/balance series, per-parent expense breakdowns, and
// guardrailed cap suggestions. Everything here only reads its inputs and is
// safe to call repeatedly; degenerate inputs yield empty results, never
// errors.
package analytics

import (
	"sort"

	"github.com/finlens-dev/finlens/internal/model"
)

// MonthlySeries is one month's aggregate. Income and Expense are both
// non-negative; Balance = Income - Expense.
type MonthlySeries struct {
	Month   string
	Income  int64
	Expense int64
	Balance int64
}

// NameValue is one slice of a breakdown (parent category -> total expense).
type NameValue struct {
	Name  string
	Value int64
}

// AggregateByMonth computes the monthly series over transactions whose child
// category is not excluded. Months with no matching transactions are omitted,
// not zero-filled. Output is sorted ascending by month key.
func AggregateByMonth(txns []model.Tx, excluded map[string]struct{}) []MonthlySeries {
	byMonth := make(map[string]*MonthlySeries)
	for _, tx := range txns {
		if _, skip := excluded[tx.CategoryChild]; skip {
			continue
		}
		m := tx.MonthKey()
		s := byMonth[m]
		if s == nil {
			s = &MonthlySeries{Month: m}
			byMonth[m] = s
		}
		if tx.Amount > 0 {
			s.Income += tx.Amount
		} else {
			s.Expense += -tx.Amount
		}
	}

	series := make([]MonthlySeries, 0, len(byMonth))
	for _, s := range byMonth {
		s.Balance = s.Income - s.Expense
		series = append(series, *s)
	}
	sort.Slice(series, func(i, j int) bool { return series[i].Month < series[j].Month })
	return series
}

// ParentBreakdown totals the given month's non-excluded expenses per parent
// category. Entries appear in order of first occurrence; renderers apply
// their own sort and coloring.
func ParentBreakdown(txns []model.Tx, month string, excluded map[string]struct{}) []NameValue {
	totals := make(map[string]int64)
	var order []string
	for _, tx := range txns {
		if tx.Amount >= 0 || tx.MonthKey() != month {
			continue
		}
		if _, skip := excluded[tx.CategoryChild]; skip {
			continue
		}
		if _, seen := totals[tx.CategoryParent]; !seen {
			order = append(order, tx.CategoryParent)
		}
		totals[tx.CategoryParent] += -tx.Amount
	}

	out := make([]NameValue, 0, len(order))
	for _, name := range order {
		if totals[name] == 0 {
			continue
		}
		out = append(out, NameValue{Name: name, Value: totals[name]})
	}
	return out
}
