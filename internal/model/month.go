package model

import (
	"fmt"
	"time"
)

const monthLayout = "2006-01"

// Month is a calendar month in YYYY-MM form, the granularity used by budgets
// and the metrics engine.
type Month string

// ParseMonth validates s as a YYYY-MM month.
func ParseMonth(s string) (Month, error) {
	if _, err := time.Parse(monthLayout, s); err != nil {
		return "", fmt.Errorf("invalid month %q, expected YYYY-MM: %w", s, err)
	}
	return Month(s), nil
}

// MonthOf returns the month containing t.
func MonthOf(t time.Time) Month {
	return Month(t.Format(monthLayout))
}

// Contains reports whether the calendar day of t falls inside the month.
func (m Month) Contains(t time.Time) bool {
	return MonthOf(t) == m
}

// Start returns midnight UTC on the first day of the month. Invalid months
// return the zero time.
func (m Month) Start() time.Time {
	t, err := time.Parse(monthLayout, string(m))
	if err != nil {
		return time.Time{}
	}
	return t
}

// Next returns the following month.
func (m Month) Next() Month {
	return MonthOf(m.Start().AddDate(0, 1, 0))
}

func (m Month) String() string {
	return string(m)
}
