package utils

import "time"

// DateLayout is the wire format for calendar dates (pickup, return, expiry, expense dates).
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD string in UTC.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// DaysBetween counts whole rental days from start to end, with a minimum of one.
func DaysBetween(start, end time.Time) int {
	days := int(end.Sub(start).Hours() / 24)
	if days < 1 {
		return 1
	}
	return days
}
