// Package period provides the YYYY-MM calendar month used for budgets and
// period locks.
package period

import (
	"fmt"
	"time"
)

const layout = "2006-01"

// Month identifies one calendar month, e.g. 2025-10.
type Month struct {
	Year  int
	Month time.Month
}

// Parse parses a YYYY-MM string into a Month. Zero padding is required:
// "2025-1" is rejected.
func Parse(s string) (Month, error) {
	if len(s) != len(layout) {
		return Month{}, fmt.Errorf("invalid period %q (want YYYY-MM)", s)
	}
	t, err := time.Parse(layout, s)
	if err != nil {
		return Month{}, fmt.Errorf("invalid period %q (want YYYY-MM): %w", s, err)
	}
	return Month{Year: t.Year(), Month: t.Month()}, nil
}

// Of returns the Month containing t.
func Of(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// Next returns the following calendar month.
func (m Month) Next() Month {
	if m.Month == time.December {
		return Month{Year: m.Year + 1, Month: time.January}
	}
	return Month{Year: m.Year, Month: m.Month + 1}
}

// Contains reports whether t falls inside the month.
func (m Month) Contains(t time.Time) bool {
	return t.Year() == m.Year && t.Month() == m.Month
}

// IsZero reports whether m is the zero Month.
func (m Month) IsZero() bool {
	return m.Year == 0 && m.Month == 0
}
