package commands_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "export.csv")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

const januaryCSV = "date,amount,category\n" +
	"2024-01-05,-100000,Food/Lunch\n" +
	"2024-01-10,1500000,Income/Salary\n" +
	"2024-01-15,abc,Food/Dinner\n"

func TestImport_Summary(t *testing.T) {
	dir := initDir(t)
	csv := writeCSV(t, januaryCSV)

	out, err := runFinlens(t, "import", csv, "--dir", dir)
	require.NoError(t, err, out)

	assert.Contains(t, out, "2 rows imported, 1 skipped")
	assert.Contains(t, out, "bad-amount")
	assert.Contains(t, out, "Months available: 2024-01 .. 2024-01")

	// The import run is recorded in the audit log.
	logData, err := os.ReadFile(filepath.Join(dir, "logs", "import-log.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(logData), "export.csv,2,1")
}

func TestImport_ReplacesWorkingSet(t *testing.T) {
	dir := initDir(t)

	out, err := runFinlens(t, "import", writeCSV(t, januaryCSV), "--dir", dir)
	require.NoError(t, err, out)

	out, err = runFinlens(t, "import", writeCSV(t, "2024-02-01,-50000,Food/Coffee\n"), "--dir", dir)
	require.NoError(t, err, out)

	out, err = runFinlens(t, "report", "--dir", dir)
	require.NoError(t, err, out)
	assert.Contains(t, out, "2024-02")
	assert.NotContains(t, out, "2024-01")
}

func TestReport_MonthlySeries(t *testing.T) {
	dir := initDir(t)
	out, err := runFinlens(t, "import", writeCSV(t, januaryCSV), "--dir", dir)
	require.NoError(t, err, out)

	out, err = runFinlens(t, "report", "--dir", dir)
	require.NoError(t, err, out)

	assert.Contains(t, out, "2024-01")
	assert.Contains(t, out, "1.500.000 ₫")
	assert.Contains(t, out, "100.000 ₫")
	assert.Contains(t, out, "1.400.000 ₫")
}

func TestReport_MonthBreakdown(t *testing.T) {
	dir := initDir(t)
	out, err := runFinlens(t, "import", writeCSV(t, januaryCSV), "--dir", dir)
	require.NoError(t, err, out)

	out, err = runFinlens(t, "report", "--dir", dir, "--month", "2024-01")
	require.NoError(t, err, out)

	assert.Contains(t, out, "Expenses by category for 2024-01")
	assert.Contains(t, out, "Food")
	assert.Contains(t, out, "categories included in analytics")
}

func TestScope_ExclusionAffectsReport(t *testing.T) {
	dir := initDir(t)
	out, err := runFinlens(t, "import", writeCSV(t, januaryCSV), "--dir", dir)
	require.NoError(t, err, out)

	out, err = runFinlens(t, "scope", "toggle", "Lunch", "--dir", dir)
	require.NoError(t, err, out)
	assert.Contains(t, out, "Lunch excluded")

	out, err = runFinlens(t, "report", "--dir", dir)
	require.NoError(t, err, out)
	assert.Contains(t, out, "0 ₫") // expense drops to zero, income remains

	out, err = runFinlens(t, "scope", "status", "--dir", dir)
	require.NoError(t, err, out)
	assert.Contains(t, out, "Mode: global")
	assert.Contains(t, out, "Excluded: Lunch")
}

func TestCaps_SuggestAndSet(t *testing.T) {
	dir := initDir(t)
	out, err := runFinlens(t, "import", writeCSV(t, januaryCSV), "--dir", dir)
	require.NoError(t, err, out)

	out, err = runFinlens(t, "caps", "set", "--dir", dir,
		"--month", "2024-01", "--category", "Food", "--amount", "200000")
	require.NoError(t, err, out)
	assert.Contains(t, out, "200.000 ₫")

	// Baseline is the month's own 100000 expense, clamped up to the
	// guardrail floor 200000 * 0.8.
	out, err = runFinlens(t, "caps", "suggest", "--dir", dir, "--month", "2024-01")
	require.NoError(t, err, out)
	assert.Contains(t, out, "160.000 ₫")

	out, err = runFinlens(t, "caps", "list", "--dir", dir, "--month", "2024-01")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Food")
	assert.Contains(t, out, "200.000 ₫")
}

func TestCaps_SetRejectsNegative(t *testing.T) {
	dir := initDir(t)

	out, err := runFinlens(t, "caps", "set", "--dir", dir,
		"--month", "2024-01", "--category", "Food", "--amount", "-5")
	require.Error(t, err)
	assert.Contains(t, out, "non-negative")
}

func TestImport_StructuralFailureLoadsNothing(t *testing.T) {
	dir := initDir(t)

	out, err := runFinlens(t, "import", writeCSV(t, "a,\"b\nc"), "--dir", dir)
	require.Error(t, err)
	assert.Contains(t, out, "no transactions loaded")

	_, statErr := os.Stat(filepath.Join(dir, "transactions.csv"))
	assert.True(t, os.IsNotExist(statErr))
}
