package importer

import (
	"fmt"
	"strconv"
	"strings"
)

var currencySuffixes = []string{"₫", "VNĐ", "VND", "vnđ", "vnd", "đ", "d"}

// ParseAmount converts amount text to signed whole VND. It tolerates
// thousands separators ('.', ',', spaces), a currency suffix, an explicit
// sign or accounting parentheses, and an optional type column value
// ("income"/"expense" and Vietnamese equivalents) that forces the sign.
func ParseAmount(text, kind string) (int64, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return 0, fmt.Errorf("empty amount")
	}

	neg := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		neg = true
		s = strings.TrimSpace(s[1 : len(s)-1])
	}

	for _, suffix := range currencySuffixes {
		if strings.HasSuffix(s, suffix) {
			s = strings.TrimSpace(strings.TrimSuffix(s, suffix))
			break
		}
	}

	switch {
	case strings.HasPrefix(s, "-"):
		neg = true
		s = s[1:]
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	}

	// VND has no minor unit, so '.' and ',' are both thousands separators.
	s = strings.Map(func(r rune) rune {
		if r == '.' || r == ',' || r == ' ' {
			return -1
		}
		return r
	}, s)

	// The explicit sign was consumed above; anything left is garbage.
	if s == "" || strings.ContainsAny(s, "+-") {
		return 0, fmt.Errorf("unparseable amount %q", text)
	}

	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("unparseable amount %q", text)
	}
	if neg {
		v = -v
	}

	switch normalizeKind(kind) {
	case "income":
		if v < 0 {
			v = -v
		}
	case "expense":
		if v > 0 {
			v = -v
		}
	}
	return v, nil
}

func normalizeKind(kind string) string {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "income", "in", "credit", "thu":
		return "income"
	case "expense", "out", "debit", "chi":
		return "expense"
	default:
		return ""
	}
}
