package analytics

import "strconv"

// FormatVND renders a whole-VND amount for display: thousands grouped with
// dots and the đồng sign appended, e.g. -1234567 -> "-1.234.567 ₫".
// Display only, not a parser inverse.
func FormatVND(v int64) string {
	neg := v < 0
	if neg {
		v = -v
	}

	digits := strconv.FormatInt(v, 10)
	var out []byte
	for i, d := range []byte(digits) {
		if i > 0 && (len(digits)-i)%3 == 0 {
			out = append(out, '.')
		}
		out = append(out, d)
	}

	s := string(out) + " ₫"
	if neg {
		return "-" + s
	}
	return s
}
