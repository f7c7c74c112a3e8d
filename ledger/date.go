package ledger

import (
	"fmt"
	"time"
)

const (
	// DateLayout is the day-month-year layout used in the expense file.
	DateLayout = "02-01-2006"
	// MonthLayout is the month-year layout used for savings queries.
	MonthLayout = "01-2006"

	// parseLayout also accepts a day or month without its leading zero.
	parseLayout = "2-1-2006"
)

// Day truncates t to its calendar date at midnight UTC so that two times on
// the same local day compare equal as map keys.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a DD-MM-YYYY date. Unpadded forms such as 5-3-2024 are
// accepted.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(parseLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected DD-MM-YYYY): %w", s, err)
	}
	return d, nil
}

// FormatDate formats d as DD-MM-YYYY.
func FormatDate(d time.Time) string {
	return d.Format(DateLayout)
}

// MonthKey formats d as MM-YYYY.
func MonthKey(d time.Time) string {
	return d.Format(MonthLayout)
}

// IsMonthKey reports whether s parses as an MM-YYYY token.
func IsMonthKey(s string) bool {
	_, err := time.Parse(MonthLayout, s)
	return err == nil
}
