package models

import (
	"fmt"
	"time"
)

// Month identifies a calendar month. Its wire format is the canonical
// "YYYY-MM" token used everywhere payments, arrears and reporting
// interchange month identifiers.
type Month struct {
	Year int
	Mon  time.Month
}

// ParseMonth parses a "YYYY-MM" token.
func ParseMonth(s string) (Month, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Month{}, fmt.Errorf("invalid month token %q: expected YYYY-MM", s)
	}
	return Month{Year: t.Year(), Mon: t.Month()}, nil
}

// MonthOf returns the month containing t.
func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Mon: t.Month()}
}

// String formats the month as its "YYYY-MM" token.
func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Mon))
}

// Time returns the first day of the month at midnight UTC.
func (m Month) Time() time.Time {
	return time.Date(m.Year, m.Mon, 1, 0, 0, 0, 0, time.UTC)
}

// Next returns the following calendar month.
func (m Month) Next() Month {
	if m.Mon == time.December {
		return Month{Year: m.Year + 1, Mon: time.January}
	}
	return Month{Year: m.Year, Mon: m.Mon + 1}
}

// Before reports whether m precedes other.
func (m Month) Before(other Month) bool {
	if m.Year != other.Year {
		return m.Year < other.Year
	}
	return m.Mon < other.Mon
}

// MaxMonth returns the latest month in the list.
func MaxMonth(months []Month) Month {
	max := months[0]
	for _, m := range months[1:] {
		if max.Before(m) {
			max = m
		}
	}
	return max
}

// ParseMonths parses a list of tokens, rejecting duplicates.
func ParseMonths(tokens []string) ([]Month, error) {
	months := make([]Month, 0, len(tokens))
	seen := make(map[string]bool, len(tokens))
	for _, tok := range tokens {
		m, err := ParseMonth(tok)
		if err != nil {
			return nil, err
		}
		if seen[m.String()] {
			return nil, fmt.Errorf("duplicate month token %q", tok)
		}
		seen[m.String()] = true
		months = append(months, m)
	}
	return months, nil
}
