package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Sentinel strings that mean "no date" in the source exports.
const (
	NoDateDisplay     = "--"
	UnlimitedSentinel = "Unlimited"
)

const dayDuration = 24 * time.Hour

// ParseOptionalDate parses a DD/MM/YY or DD/MM/YYYY cell. Two-digit years are
// taken as 20xx. Empty cells, "--" and "Unlimited" carry no date and return
// (zero, false). Non-numeric parts also return (zero, false) rather than a
// garbage date.
func ParseOptionalDate(s string) (time.Time, bool) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" || trimmed == NoDateDisplay || trimmed == UnlimitedSentinel {
		return time.Time{}, false
	}

	parts := strings.Split(trimmed, "/")
	if len(parts) != 3 {
		return time.Time{}, false
	}

	day, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return time.Time{}, false
	}
	month, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return time.Time{}, false
	}
	year, err := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err != nil {
		return time.Time{}, false
	}
	if year < 100 {
		year += 2000
	}

	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local), true
}

// FormatDate renders a date as zero-padded DD/MM/YY, or "--" for the zero time.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return NoDateDisplay
	}
	return fmt.Sprintf("%02d/%02d/%02d", t.Day(), int(t.Month()), t.Year()%100)
}

// DaysBetween returns the ceiling of the absolute whole-day difference between
// two dates. Either input being the zero time means the answer is unknown.
func DaysBetween(a, b time.Time) (int, bool) {
	if a.IsZero() || b.IsZero() {
		return 0, false
	}
	diff := b.Sub(a)
	if diff < 0 {
		diff = -diff
	}
	return int(math.Ceil(diff.Hours() / 24)), true
}

// Midnight truncates a timestamp to the start of its local calendar day.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DaysUntilExpiry computes how many whole days remain until endDateStr,
// measured from the midnight of ref. Already-passed dates yield negative
// values. A cell that does not split into exactly three numeric parts carries
// no expiry and returns (0, false).
func DaysUntilExpiry(endDateStr string, ref time.Time) (int, bool) {
	end, ok := ParseOptionalDate(endDateStr)
	if !ok {
		return 0, false
	}
	diff := end.Sub(Midnight(ref))
	return int(math.Ceil(diff.Hours() / 24)), true
}
