package utils

import (
	"fmt"
	"strings"
	"time"
)

// FormatDate formats a time.Time as YYYY-MM-DD
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// FormatTimestamp formats a time.Time as an ISO 8601 timestamp
func FormatTimestamp(t time.Time) string {
	return t.Format(time.RFC3339)
}

// ParseDate parses a date string in YYYY-MM-DD format
func ParseDate(dateStr string) (time.Time, error) {
	return time.Parse("2006-01-02", dateStr)
}

// MonthKey returns the YYYY-MM key for a time
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}

// NormalizePostDate rewrites a post date into YYYY-MM-DD form.
//
// Input grammar: "YYYY-MM-DD", "DD/MM/YYYY", or "DD-MM-YYYY". A string
// containing "/" is day-first; so is a "-" string whose first segment is at
// most two characters. Anything else is returned unchanged. This is used for
// calendar-day matching only; month filtering compares the raw string prefix.
func NormalizePostDate(dateStr string) string {
	dateStr = strings.TrimSpace(dateStr)
	if dateStr == "" {
		return ""
	}

	var parts []string
	switch {
	case strings.Contains(dateStr, "/"):
		parts = strings.Split(dateStr, "/")
	case strings.Contains(dateStr, "-"):
		segs := strings.Split(dateStr, "-")
		if len(segs[0]) > 2 {
			return dateStr // already year-first
		}
		parts = segs
	default:
		return dateStr
	}

	if len(parts) != 3 {
		return dateStr
	}
	day, month, year := parts[0], parts[1], parts[2]
	if len(day) == 1 {
		day = "0" + day
	}
	if len(month) == 1 {
		month = "0" + month
	}
	return fmt.Sprintf("%s-%s-%s", year, month, day)
}

// ParsePostDate parses a post date in any of the supported formats
func ParsePostDate(dateStr string) (time.Time, error) {
	normalized := NormalizePostDate(dateStr)
	if len(normalized) > 10 {
		// Timestamps keep only the date part
		normalized = normalized[:10]
	}
	return ParseDate(normalized)
}

// SameCalendarDay reports whether two times fall on the same calendar day
func SameCalendarDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// WithinTrailingWeek reports whether t falls inside the trailing 7x24h window
// ending at now.
func WithinTrailingWeek(t, now time.Time) bool {
	start := now.Add(-7 * 24 * time.Hour)
	return !t.Before(start) && !t.After(now)
}

// DaysInMonth returns the number of days in the month named by a YYYY-MM key
func DaysInMonth(monthKey string) (int, error) {
	first, err := time.Parse("2006-01", monthKey)
	if err != nil {
		return 0, fmt.Errorf("invalid month key %q: %w", monthKey, err)
	}
	return first.AddDate(0, 1, -1).Day(), nil
}

// PreviousMonthKey returns the YYYY-MM key of the month before now
func PreviousMonthKey(now time.Time) string {
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return MonthKey(firstOfMonth.AddDate(0, 0, -1))
}
