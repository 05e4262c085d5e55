package core

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatWon renders an amount as a won string, e.g. "₩1,234,567".
func FormatWon(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return sign + "₩" + groupThousands(amount)
}

// FormatWonOrDash is FormatWon except that a zero amount renders as
// "-", which is how reports mark an empty cell.
func FormatWonOrDash(amount int64) string {
	if amount == 0 {
		return "-"
	}
	return FormatWon(amount)
}

// ParseWon is the inverse of FormatWonOrDash. It accepts plain digits,
// formatted won strings and the "-" empty marker.
func ParseWon(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "-" {
		return 0, nil
	}
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	s = strings.TrimPrefix(s, "₩")
	s = strings.ReplaceAll(s, ",", "")
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse won %q: %w", s, err)
	}
	if neg {
		v = -v
	}
	return v, nil
}

func groupThousands(v int64) string {
	s := strconv.FormatInt(v, 10)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	head := len(s) % 3
	if head > 0 {
		b.WriteString(s[:head])
	}
	for i := head; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
