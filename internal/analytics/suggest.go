package analytics

import (
	"github.com/shopspring/decimal"

	"github.com/finlens-dev/finlens/internal/model"
)

// Tunables surfaced through finlens.yaml; these are the fallbacks.
const (
	// DefaultGuardrailPct bounds how far a suggestion may move from a
	// previously confirmed cap.
	DefaultGuardrailPct = 0.2
	// DefaultNet is the assumed monthly net income (VND) consumers may fall
	// back to when a month has no income transactions at all. It never feeds
	// into AggregateByMonth, which always reports computed income.
	DefaultNet int64 = 10_000_000
)

var thousand = decimal.NewFromInt(1000)

// SuggestCaps proposes a budget cap per parent category for the given month.
// The baseline is the trailing average expense over prior months with data,
// or the month's own expense when no prior history exists. When priorCaps
// holds a cap for the category, the suggestion is clamped to within
// guardrailPct of it. Results are rounded to the nearest 1000 VND.
// Categories with no expense history up to the month are omitted.
func SuggestCaps(txns []model.Tx, month string, priorCaps map[string]int64, guardrailPct float64) map[string]int64 {
	// parent -> month -> expense total, months <= month only.
	history := make(map[string]map[string]int64)
	for _, tx := range txns {
		if tx.Amount >= 0 {
			continue
		}
		m := tx.MonthKey()
		if m > month {
			continue
		}
		byMonth := history[tx.CategoryParent]
		if byMonth == nil {
			byMonth = make(map[string]int64)
			history[tx.CategoryParent] = byMonth
		}
		byMonth[m] += -tx.Amount
	}

	pct := decimal.NewFromFloat(guardrailPct)
	out := make(map[string]int64, len(history))
	for parent, byMonth := range history {
		baseline := trailingAverage(byMonth, month)

		if prior, ok := priorCaps[parent]; ok {
			capDec := decimal.NewFromInt(prior)
			lo := capDec.Mul(decimal.NewFromInt(1).Sub(pct))
			hi := capDec.Mul(decimal.NewFromInt(1).Add(pct))
			if baseline.LessThan(lo) {
				baseline = lo
			}
			if baseline.GreaterThan(hi) {
				baseline = hi
			}
		}

		out[parent] = round1000Dec(baseline)
	}
	return out
}

// trailingAverage averages the expense over months strictly before month; if
// there are none, the month's own expense stands in.
func trailingAverage(byMonth map[string]int64, month string) decimal.Decimal {
	sum := decimal.Zero
	n := 0
	for m, total := range byMonth {
		if m < month {
			sum = sum.Add(decimal.NewFromInt(total))
			n++
		}
	}
	if n == 0 {
		return decimal.NewFromInt(byMonth[month])
	}
	return sum.Div(decimal.NewFromInt(int64(n)))
}

// Round1000 rounds to the nearest multiple of 1000, ties away from zero.
func Round1000(v int64) int64 {
	return round1000Dec(decimal.NewFromInt(v))
}

func round1000Dec(d decimal.Decimal) int64 {
	return d.DivRound(thousand, 0).Mul(thousand).IntPart()
}

// Clamp bounds v to [lo, hi]. Callers must keep lo <= hi.
func Clamp(v, lo, hi int64) int64 {
	if lo > hi {
		panic("analytics: Clamp called with lo > hi")
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
