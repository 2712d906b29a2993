package finance

import (
	"errors"
	"strings"
	"time"
)

const (
	DateKeyLayout = "2006-01-02"
	MonthLayout   = "2006-01"
)

var ErrInvalidMonth = errors.New("month must be formatted as YYYY-MM")

// Layouts accepted by ParseAppDate when the value carries no zone.
var zonelessLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
	DateKeyLayout,
}

// ParseAppDate parses a stored or submitted timestamp. Values without a zone
// are read as UTC. Empty or unparsable input yields the Unix epoch.
func ParseAppDate(value string) time.Time {
	if t, ok := TryParseAppDate(value); ok {
		return t
	}
	return time.Unix(0, 0).UTC()
}

// TryParseAppDate is ParseAppDate that reports whether value was understood.
func TryParseAppDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}

	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t.UTC(), true
	}

	for _, layout := range zonelessLayouts {
		if t, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

// ParseDateKey parses a YYYY-MM-DD calendar day as midnight in loc.
func ParseDateKey(value string, loc *time.Location) (time.Time, bool) {
	if loc == nil {
		loc = time.UTC
	}
	t, err := time.ParseInLocation(DateKeyLayout, strings.TrimSpace(value), loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// LocalDateKey returns the YYYY-MM-DD calendar day of t in loc.
func LocalDateKey(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(DateKeyLayout)
}

// MonthStart returns midnight of the first day of now's month in loc.
func MonthStart(now time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	local := now.In(loc)
	return time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, loc)
}

// MonthRange returns [start, end) for a YYYY-MM month in loc.
func MonthRange(month string, loc *time.Location) (time.Time, time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	start, err := time.ParseInLocation(MonthLayout, strings.TrimSpace(month), loc)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidMonth
	}
	return start, start.AddDate(0, 1, 0), nil
}

// DaysBack returns the instant n days before now.
func DaysBack(now time.Time, n int) time.Time {
	return now.Add(-time.Duration(n) * 24 * time.Hour)
}
