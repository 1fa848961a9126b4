package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finlens-dev/finlens/internal/model"
)

func TestSuggestCapsTrailingAverage(t *testing.T) {
	txns := []model.Tx{
		tx("2024-01-05", -100000, "Food", "Lunch"),
		tx("2024-02-05", -200000, "Food", "Lunch"),
		tx("2024-03-05", -999000, "Food", "Lunch"), // current month, not in baseline
	}

	got := SuggestCaps(txns, "2024-03", nil, DefaultGuardrailPct)
	require.Contains(t, got, "Food")
	// Average of 100000 and 200000.
	assert.Equal(t, int64(150000), got["Food"])
}

func TestSuggestCapsNoPriorHistoryUsesCurrentMonth(t *testing.T) {
	txns := []model.Tx{
		tx("2024-03-05", -123400, "Food", "Lunch"),
	}

	got := SuggestCaps(txns, "2024-03", nil, DefaultGuardrailPct)
	assert.Equal(t, int64(123000), got["Food"])
}

func TestSuggestCapsGuardrail(t *testing.T) {
	txns := []model.Tx{
		tx("2024-01-05", -100000, "Food", "Lunch"),
		tx("2024-02-05", -1000000, "Food", "Lunch"),
	}
	priorCaps := map[string]int64{"Food": 200000}

	// Baseline for 2024-02 is 100000, below the guardrail floor of
	// 200000 * 0.8 = 160000.
	got := SuggestCaps(txns, "2024-02", priorCaps, 0.2)
	assert.Equal(t, int64(160000), got["Food"])

	// Baseline for 2024-03 is (100000+1000000)/2 = 550000, above the
	// ceiling of 200000 * 1.2 = 240000.
	got = SuggestCaps(txns, "2024-03", priorCaps, 0.2)
	assert.Equal(t, int64(240000), got["Food"])
}

func TestSuggestCapsWithinGuardrailBounds(t *testing.T) {
	txns := []model.Tx{
		tx("2024-01-05", -180000, "Food", "Lunch"),
		tx("2024-02-05", -220000, "Food", "Dinner"),
		tx("2024-03-05", -190000, "Food", "Coffee"),
	}
	priorCaps := map[string]int64{"Food": 200000}
	const pct = 0.2

	got := SuggestCaps(txns, "2024-04", priorCaps, pct)
	require.Contains(t, got, "Food")

	lo := int64(float64(priorCaps["Food"])*(1-pct)) - 500
	hi := int64(float64(priorCaps["Food"])*(1+pct)) + 500
	assert.GreaterOrEqual(t, got["Food"], lo)
	assert.LessOrEqual(t, got["Food"], hi)
}

func TestSuggestCapsNoHistoryOmitted(t *testing.T) {
	txns := []model.Tx{
		tx("2024-01-05", -100000, "Food", "Lunch"),
		tx("2024-01-10", 1500000, "Income", "Salary"),
	}

	got := SuggestCaps(txns, "2024-01", map[string]int64{"Transport": 500000}, 0.2)
	assert.Contains(t, got, "Food")
	assert.NotContains(t, got, "Transport") // cap but no history
	assert.NotContains(t, got, "Income")    // income never suggests a cap
}

func TestSuggestCapsIgnoresFutureMonths(t *testing.T) {
	txns := []model.Tx{
		tx("2024-05-05", -500000, "Food", "Lunch"),
	}

	got := SuggestCaps(txns, "2024-03", nil, 0.2)
	assert.Empty(t, got)
}

func TestSuggestCapsEmpty(t *testing.T) {
	assert.Empty(t, SuggestCaps(nil, "2024-01", nil, 0.2))
}

func TestRound1000(t *testing.T) {
	tests := []struct {
		in   int64
		want int64
	}{
		{0, 0},
		{499, 0},
		{500, 1000}, // tie rounds away from zero
		{501, 1000},
		{1499, 1000},
		{1500, 2000},
		{-499, 0},
		{-500, -1000},
		{-1500, -2000},
		{123456, 123000},
		{123500, 124000},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Round1000(tt.in), "Round1000(%d)", tt.in)
	}
}

func TestRound1000Idempotent(t *testing.T) {
	for _, v := range []int64{-1500, -1, 0, 499, 500, 1234, 999999, 1000000} {
		once := Round1000(v)
		assert.Equal(t, once, Round1000(once), "Round1000 not idempotent for %d", v)
	}
}

func TestClamp(t *testing.T) {
	assert.Equal(t, int64(5), Clamp(3, 5, 10))
	assert.Equal(t, int64(10), Clamp(12, 5, 10))
	assert.Equal(t, int64(7), Clamp(7, 5, 10))
	assert.Equal(t, int64(5), Clamp(7, 5, 5))
}

func TestClampBadBoundsPanics(t *testing.T) {
	assert.Panics(t, func() { Clamp(1, 10, 5) })
}
