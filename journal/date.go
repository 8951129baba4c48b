package journal

import (
	"fmt"
	"time"
)

// Date represents a calendar date. Journal extracts are exported from a range
// of ERP systems, so parsing accepts the handful of layouts seen in practice
// rather than a single ISO form. The zero Date means the cell was blank or
// unparseable.
type Date struct {
	time.Time
}

// dateLayouts are tried in order when parsing a raw date cell.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"2006.01.02",
	"20060102",
	"2006-01-02 15:04:05",
}

// ParseDate parses a raw date cell. An empty cell returns the zero Date with
// no error; an unparseable cell returns the zero Date and an error.
func ParseDate(s string) (Date, error) {
	if s == "" {
		return Date{}, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Date{Time: t}, nil
		}
	}
	return Date{}, fmt.Errorf("invalid date: %s", s)
}

// MustDate parses an ISO date, panicking on failure. Intended for tests and
// fixed configuration values such as a fiscal year end.
func MustDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// NewDateFromTime wraps a time.Time, truncating to the date.
func NewDateFromTime(t time.Time) Date {
	return Date{Time: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

// IsZero reports whether the date is unset.
func (d Date) IsZero() bool {
	return d.Time.IsZero()
}

// Equal reports whether two dates represent the same instant.
func (d Date) Equal(o Date) bool {
	return d.Time.Equal(o.Time)
}

// After reports whether d falls strictly after o.
func (d Date) After(o Date) bool {
	return d.Time.After(o.Time)
}

// OnOrBefore reports whether d falls on or before o.
func (d Date) OnOrBefore(o Date) bool {
	return !d.Time.After(o.Time)
}

// String formats the date as ISO 8601, or empty for the zero Date.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format("2006-01-02")
}
