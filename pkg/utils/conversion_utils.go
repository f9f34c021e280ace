package utils

import (
	"strconv"
	"strings"
)

// ParseOptionalNumber parses a decimal field from a CSV cell.
// The second return value reports whether the cell held a usable number;
// empty or malformed cells return (0, false) so callers can choose the default.
func ParseOptionalNumber(s string) (float64, bool) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// NumberOrZero applies the silent-default policy for aggregate math:
// any cell that does not parse as a number counts as 0.
func NumberOrZero(s string) float64 {
	n, _ := ParseOptionalNumber(s)
	return n
}
