package id

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatTxID returns a transaction ID like "2024-01#0042": the month key
// plus the 1-based row number in the source CSV. IDs are stable within an
// import session and unique because row numbers are.
func FormatTxID(monthKey string, row int) string {
	return fmt.Sprintf("%s#%04d", monthKey, row)
}

// ParseTxID parses "2024-01#0042" into month key and source row number.
func ParseTxID(txID string) (monthKey string, row int, err error) {
	base, seq, ok := strings.Cut(txID, "#")
	if !ok {
		return "", 0, fmt.Errorf("invalid transaction ID format: %q", txID)
	}

	parts := strings.SplitN(base, "-", 2)
	if len(parts) != 2 {
		return "", 0, fmt.Errorf("invalid month key in transaction ID %q", txID)
	}
	if _, err := strconv.Atoi(parts[0]); err != nil {
		return "", 0, fmt.Errorf("invalid year in transaction ID %q: %w", txID, err)
	}
	if _, err := strconv.Atoi(parts[1]); err != nil {
		return "", 0, fmt.Errorf("invalid month in transaction ID %q: %w", txID, err)
	}

	row, err = strconv.Atoi(seq)
	if err != nil {
		return "", 0, fmt.Errorf("invalid row in transaction ID %q: %w", txID, err)
	}

	return base, row, nil
}
